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
	"github.com/gdamore/tcell/v2"

	"github.com/togglebyte/mixel/pkg/types"
)

// Tcell draws with tcell in true color.
type Tcell struct {
	screen    tcell.Screen
	pixelSize int
	pending   []*types.Event
}

func NewTcell(pixelSize int) (*Tcell, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	cols, rows := screen.Size()
	return &Tcell{
		screen:    screen,
		pixelSize: pixelSize,
		pending:   []*types.Event{resizeEvent(cols, rows, pixelSize)},
	}, nil
}

func (s *Tcell) Close() {
	s.screen.Fini()
}

func (s *Tcell) Render(v types.View) {
	s.screen.Clear()
	paint(s, v, s.pixelSize)
	s.screen.HideCursor()
	s.screen.Show()
}

func (s *Tcell) size() (int, int) {
	return s.screen.Size()
}

func (s *Tcell) setPixel(x, y int, px types.Pixel) {
	color := tcell.NewRGBColor(int32(px.R), int32(px.G), int32(px.B))
	s.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(color))
}

var textStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)

func (s *Tcell) setText(x, y int, ch rune, inverse bool) {
	s.screen.SetContent(x, y, ch, nil, textStyle.Reverse(inverse))
}

func (s *Tcell) GetNextEvent() *types.Event {
	if len(s.pending) > 0 {
		event := s.pending[0]
		s.pending = s.pending[1:]
		return event
	}
	switch event := s.screen.PollEvent().(type) {
	case *tcell.EventResize:
		s.screen.Sync()
		cols, rows := event.Size()
		return resizeEvent(cols, rows, s.pixelSize)
	case *tcell.EventKey:
		events := tcellKeyEvents(event)
		if len(events) == 0 {
			return &types.Event{Type: types.EventNone}
		}
		s.pending = append(s.pending, events[1:]...)
		return events[0]
	default:
		return &types.Event{Type: types.EventNone}
	}
}

func tcellKeyEvents(event *tcell.EventKey) []*types.Event {
	key := event.Key()
	switch key {
	case tcell.KeyRune:
		if event.Modifiers()&tcell.ModCtrl != 0 {
			return ctrlChord(event.Rune())
		}
		return []*types.Event{{Type: types.EventChar, Ch: event.Rune()}}
	case tcell.KeyEscape:
		return []*types.Event{{Type: types.EventChar, Ch: types.CharEscape}}
	case tcell.KeyEnter:
		return []*types.Event{{Type: types.EventChar, Ch: types.CharEnter}}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return []*types.Event{{Type: types.EventChar, Ch: types.CharBackspace}}
	case tcell.KeyTab:
		return nil
	}
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return ctrlChord(rune(key))
	}
	return nil
}
