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

package screen

import (
	"github.com/nsf/termbox-go"

	"github.com/togglebyte/mixel/pkg/types"
)

// Termbox draws with termbox in 256-color mode.
type Termbox struct {
	pixelSize int
	pending   []*types.Event // events waiting to be returned
}

func NewTermbox(pixelSize int) (*Termbox, error) {
	// Open the terminal.
	if err := termbox.Init(); err != nil {
		return nil, err
	}
	termbox.SetOutputMode(termbox.Output256)
	termbox.SetInputMode(termbox.InputEsc)
	cols, rows := termbox.Size()
	return &Termbox{
		pixelSize: pixelSize,
		pending:   []*types.Event{resizeEvent(cols, rows, pixelSize)},
	}, nil
}

func (s *Termbox) Close() {
	termbox.Close()
}

func (s *Termbox) Render(v types.View) {
	termbox.Clear(termbox.ColorWhite, termbox.ColorBlack)
	paint(s, v, s.pixelSize)
	termbox.HideCursor()
	termbox.Flush()
}

func (s *Termbox) size() (int, int) {
	return termbox.Size()
}

func (s *Termbox) setPixel(x, y int, px types.Pixel) {
	termbox.SetCell(x, y, ' ', termbox.ColorDefault, attribute256(px))
}

func (s *Termbox) setText(x, y int, ch rune, inverse bool) {
	if inverse {
		termbox.SetCell(x, y, ch, termbox.ColorBlack, termbox.ColorWhite)
	} else {
		termbox.SetCell(x, y, ch, termbox.ColorWhite, termbox.ColorBlack)
	}
}

// attribute256 returns the closest color of the 6x6x6 cube in the 256-color palette.
func attribute256(px types.Pixel) termbox.Attribute {
	level := func(c uint8) int {
		return (int(c)*5 + 127) / 255
	}
	// termbox attributes are palette indexes plus one
	return termbox.Attribute(16 + 36*level(px.R) + 6*level(px.G) + level(px.B) + 1)
}

func (s *Termbox) GetNextEvent() *types.Event {
	if len(s.pending) > 0 {
		event := s.pending[0]
		s.pending = s.pending[1:]
		return event
	}
	event := termbox.PollEvent()
	switch event.Type {
	case termbox.EventResize:
		termbox.Flush()
		return resizeEvent(event.Width, event.Height, s.pixelSize)
	case termbox.EventKey:
		events := keyEvents(event)
		if len(events) == 0 {
			return &types.Event{Type: types.EventNone}
		}
		s.pending = append(s.pending, events[1:]...)
		return events[0]
	default:
		return &types.Event{Type: types.EventNone}
	}
}

func keyEvents(event termbox.Event) []*types.Event {
	if event.Ch != 0 {
		return []*types.Event{{Type: types.EventChar, Ch: event.Ch}}
	}
	switch event.Key {
	case termbox.KeyEsc:
		return []*types.Event{{Type: types.EventChar, Ch: types.CharEscape}}
	case termbox.KeyEnter:
		return []*types.Event{{Type: types.EventChar, Ch: types.CharEnter}}
	case termbox.KeyBackspace, termbox.KeyBackspace2:
		return []*types.Event{{Type: types.EventChar, Ch: types.CharBackspace}}
	case termbox.KeySpace:
		return []*types.Event{{Type: types.EventChar, Ch: ' '}}
	case termbox.KeyTab:
		return nil
	}
	if event.Key >= termbox.KeyCtrlA && event.Key <= termbox.KeyCtrlZ {
		return ctrlChord(rune(event.Key))
	}
	return nil
}
