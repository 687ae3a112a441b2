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

// Package keymap maps characters to actions for each editing mode.
// Keymaps are built once from a configuration table and never change;
// entries that cannot be interpreted are left unmapped.
package keymap

import (
	"sort"
	"unicode/utf8"

	"github.com/togglebyte/mixel/pkg/types"
)

// Section names recognized in the configuration table.
const (
	SectionNormal = "normal"
	SectionInsert = "insert"
	SectionVisual = "visual"
)

var actionNames = map[string]types.Action{
	"left":          types.ActionMoveLeft,
	"right":         types.ActionMoveRight,
	"up":            types.ActionMoveUp,
	"down":          types.ActionMoveDown,
	"draw":          types.ActionDraw,
	"command":       types.ActionEnterCommand,
	"close-command": types.ActionCloseCommand,
	"noop":          types.ActionNoop,
}

// ActionNamed returns the action for a configuration name.
// Unknown names map to ActionNoop.
func ActionNamed(name string) types.Action {
	if action, ok := actionNames[name]; ok {
		return action
	}
	return types.ActionNoop
}

// A KeyMap maps single characters to actions.
type KeyMap struct {
	bindings map[rune]types.Action
}

// New builds a keymap from a section that binds action names to key strings.
// Only the first character of a key string is used. When two actions name the
// same key, the action whose name sorts first keeps it.
func New(section map[string]string) *KeyMap {
	k := &KeyMap{bindings: make(map[rune]types.Action)}
	names := make([]string, 0, len(section))
	for name := range section {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ch, size := utf8.DecodeRuneInString(section[name])
		if size == 0 || ch == utf8.RuneError {
			continue
		}
		if _, taken := k.bindings[ch]; taken {
			continue
		}
		k.bindings[ch] = ActionNamed(name)
	}
	return k
}

// Lookup returns the action bound to ch.
func (k *KeyMap) Lookup(ch rune) (types.Action, bool) {
	if k == nil {
		return types.ActionNoop, false
	}
	action, ok := k.bindings[ch]
	return action, ok
}

func (k *KeyMap) Len() int {
	if k == nil {
		return 0
	}
	return len(k.bindings)
}

// A Set holds the keymaps of the modes that use them.
// Command mode has no keymap.
type Set struct {
	normal *KeyMap
	insert *KeyMap
	visual *KeyMap
}

// NewSet builds keymaps from a table of sections. Missing sections give empty keymaps.
func NewSet(table map[string]map[string]string) *Set {
	return &Set{
		normal: New(table[SectionNormal]),
		insert: New(table[SectionInsert]),
		visual: New(table[SectionVisual]),
	}
}

// For returns the keymap for a mode, or nil for command mode.
func (s *Set) For(mode types.Mode) *KeyMap {
	if s == nil {
		return nil
	}
	switch mode {
	case types.ModeNormal:
		return s.normal
	case types.ModeInsert:
		return s.insert
	case types.ModeVisual:
		return s.visual
	default:
		return nil
	}
}
