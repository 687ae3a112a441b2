//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package input

import (
	"github.com/togglebyte/mixel/pkg/keymap"
	"github.com/togglebyte/mixel/pkg/types"
)

// The Handler remembers the most recent input and resolves characters to actions.
type Handler struct {
	keys      *keymap.Set
	lastCh    rune // last character received
	leftCtrl  bool
	rightCtrl bool
}

func NewHandler(keys *keymap.Set) *Handler {
	return &Handler{keys: keys}
}

func (h *Handler) Update(ch rune) {
	h.lastCh = ch
}

func (h *Handler) LastChar() rune {
	return h.lastCh
}

// UpdateModifier records a press or release of a control key.
func (h *Handler) UpdateModifier(key types.Key, pressed bool) {
	switch key {
	case types.KeyLeftCtrl:
		h.leftCtrl = pressed
	case types.KeyRightCtrl:
		h.rightCtrl = pressed
	}
}

// Ctrl reports whether either control key is held.
func (h *Handler) Ctrl() bool {
	return h.leftCtrl || h.rightCtrl
}

// Resolve looks ch up in the keymap for mode.
// Command mode input is raw text and never resolves.
func (h *Handler) Resolve(ch rune, mode types.Mode) (types.Action, bool) {
	if mode == types.ModeCommand {
		return types.ActionNoop, false
	}
	return h.keys.For(mode).Lookup(ch)
}
