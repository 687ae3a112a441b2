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

// Package screen draws an editor on a terminal and reads terminal input.
// Each canvas pixel is drawn as a run of background-colored cells; the
// last two rows hold an info bar and the message bar.
package screen

import (
	"fmt"
	"unicode"

	"github.com/togglebyte/mixel/pkg/types"
)

// A Screen draws the state of an editor and produces its input events.
type Screen interface {
	Render(v types.View)
	GetNextEvent() *types.Event
	Close()
}

// New opens a screen using the named backend.
func New(backend string, pixelSize int) (Screen, error) {
	switch backend {
	case "", "termbox":
		return NewTermbox(pixelSize)
	case "tcell":
		return NewTcell(pixelSize)
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}

// viewport returns the canvas area of a terminal, measured in canvas pixels.
func viewport(cols, rows, pixelSize int) types.Size {
	return types.Size{Width: cols / pixelSize, Height: rows - 2}
}

func resizeEvent(cols, rows, pixelSize int) *types.Event {
	return &types.Event{
		Type:     types.EventResize,
		Width:    cols,
		Height:   rows,
		Viewport: viewport(cols, rows, pixelSize),
	}
}

// ctrlChord wraps a ctrl chord in a ctrl press and release. Only a control
// character is passed on between them; a plain letter is dropped.
func ctrlChord(ch rune) []*types.Event {
	events := []*types.Event{{Type: types.EventModifier, Key: types.KeyLeftCtrl, Pressed: true}}
	if unicode.IsControl(ch) {
		events = append(events, &types.Event{Type: types.EventChar, Ch: ch})
	}
	return append(events, &types.Event{Type: types.EventModifier, Key: types.KeyLeftCtrl, Pressed: false})
}
