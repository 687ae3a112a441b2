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
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/nsf/termbox-go"
	"go.uber.org/zap/zaptest"

	"github.com/togglebyte/mixel/pkg/canvas"
	"github.com/togglebyte/mixel/pkg/editor"
	"github.com/togglebyte/mixel/pkg/keymap"
	"github.com/togglebyte/mixel/pkg/types"
)

type cell struct {
	ch      rune
	pixel   types.Pixel
	inverse bool
}

// grid is an in-memory terminal.
type grid struct {
	cols, rows int
	cells      map[types.Point]cell
}

func newGrid(cols, rows int) *grid {
	return &grid{cols: cols, rows: rows, cells: make(map[types.Point]cell)}
}

func (g *grid) size() (int, int) {
	return g.cols, g.rows
}

func (g *grid) setPixel(x, y int, px types.Pixel) {
	g.cells[types.Point{X: x, Y: y}] = cell{pixel: px}
}

func (g *grid) setText(x, y int, ch rune, inverse bool) {
	g.cells[types.Point{X: x, Y: y}] = cell{ch: ch, inverse: inverse}
}

func (g *grid) row(y int) string {
	var b strings.Builder
	for x := 0; x < g.cols; x++ {
		if c, ok := g.cells[types.Point{X: x, Y: y}]; ok && c.ch != 0 {
			b.WriteRune(c.ch)
		} else {
			b.WriteRune('.')
		}
	}
	return b.String()
}

type view struct {
	sprites []types.Sprite
	mode    types.Mode
	cursor  types.Point
	line    string
	message string
}

func (v *view) Sprites() []types.Sprite { return v.sprites }
func (v *view) GetMode() types.Mode { return v.mode }
func (v *view) GetCursor() types.Point { return v.cursor }
func (v *view) GetCommandLine() string { return v.line }
func (v *view) GetMessage() string { return v.message }

var (
	blue = types.Pixel{B: 255, A: 255}
	red  = types.Pixel{R: 255, A: 255}
)

func TestPaintSprites(t *testing.T) {
	g := newGrid(10, 5)
	v := &view{
		sprites: []types.Sprite{
			{Pixels: []types.Pixel{red}, Size: types.Size{Width: 1, Height: 1}, Offset: types.Point{X: 1, Y: 1}, ZIndex: 100},
			{Pixels: []types.Pixel{blue, blue, types.Transparent, blue}, Size: types.Size{Width: 2, Height: 2}, Offset: types.Point{X: 1, Y: 0}, ZIndex: 10},
		},
	}
	paint(g, v, 2)
	expected := map[types.Point]types.Pixel{
		{X: 2, Y: 0}: blue, {X: 3, Y: 0}: blue, {X: 4, Y: 0}: blue, {X: 5, Y: 0}: blue,
		{X: 2, Y: 1}: red, {X: 3, Y: 1}: red, {X: 4, Y: 1}: blue, {X: 5, Y: 1}: blue,
	}
	got := make(map[types.Point]types.Pixel)
	for p, c := range g.cells {
		if p.Y < 3 {
			got[p] = c.pixel
		}
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestPaintClipsSprites(t *testing.T) {
	g := newGrid(4, 4)
	v := &view{
		sprites: []types.Sprite{
			{Pixels: []types.Pixel{red, red, red, red}, Size: types.Size{Width: 2, Height: 2}, Offset: types.Point{X: -1, Y: 1}},
		},
	}
	paint(g, v, 2)
	for p, c := range g.cells {
		if p.Y >= 2 && c.ch == 0 {
			t.Errorf("Sprite drawn over the bars at %+v", p)
		}
		if p.X < 0 || p.X >= 4 {
			t.Errorf("Sprite drawn outside the screen at %+v", p)
		}
	}
	if _, ok := g.cells[types.Point{X: 0, Y: 1}]; !ok {
		t.Errorf("Visible part of the sprite was not drawn")
	}
}

func TestPaintBars(t *testing.T) {
	g := newGrid(24, 4)
	v := &view{mode: types.ModeInsert, cursor: types.Point{X: 3, Y: 4}, message: "wrote a.png"}
	paint(g, v, 2)
	if row := g.row(2); row != " mixel - insert     3,4 " {
		t.Errorf("Info bar %q", row)
	}
	if row := g.row(3); row != "wrote a.png............." {
		t.Errorf("Message bar %q", row)
	}

	g = newGrid(24, 4)
	v = &view{mode: types.ModeCommand, line: ":w a.png", message: "hidden"}
	paint(g, v, 2)
	if row := g.row(3); row != ":w a.png ..............." {
		t.Errorf("Command line %q", row)
	}
	if c := g.cells[types.Point{X: 8, Y: 3}]; !c.inverse {
		t.Errorf("Command line cursor should be inverse")
	}
}

func TestViewport(t *testing.T) {
	event := resizeEvent(80, 24, 2)
	if event.Viewport != (types.Size{Width: 40, Height: 22}) {
		t.Errorf("Viewport %+v", event.Viewport)
	}
}

func TestTermboxKeys(t *testing.T) {
	tests := []struct {
		event  termbox.Event
		events []*types.Event
	}{
		{termbox.Event{Type: termbox.EventKey, Ch: 'h'}, []*types.Event{{Type: types.EventChar, Ch: 'h'}}},
		{termbox.Event{Type: termbox.EventKey, Key: termbox.KeyEsc}, []*types.Event{{Type: types.EventChar, Ch: types.CharEscape}}},
		{termbox.Event{Type: termbox.EventKey, Key: termbox.KeyEnter}, []*types.Event{{Type: types.EventChar, Ch: types.CharEnter}}},
		{termbox.Event{Type: termbox.EventKey, Key: termbox.KeyBackspace2}, []*types.Event{{Type: types.EventChar, Ch: types.CharBackspace}}},
		{termbox.Event{Type: termbox.EventKey, Key: termbox.KeySpace}, []*types.Event{{Type: types.EventChar, Ch: ' '}}},
		{termbox.Event{Type: termbox.EventKey, Key: termbox.KeyCtrlS}, []*types.Event{
			{Type: types.EventModifier, Key: types.KeyLeftCtrl, Pressed: true},
			{Type: types.EventChar, Ch: '\x13'},
			{Type: types.EventModifier, Key: types.KeyLeftCtrl, Pressed: false},
		}},
		{termbox.Event{Type: termbox.EventKey, Key: termbox.KeyArrowUp}, nil},
	}
	for _, test := range tests {
		if diff := cmp.Diff(test.events, keyEvents(test.event)); diff != "" {
			t.Errorf("keyEvents(%+v) mismatch (-want +got):\n%s", test.event, diff)
		}
	}
}

func TestTcellKeys(t *testing.T) {
	tests := []struct {
		event  *tcell.EventKey
		events []*types.Event
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone), []*types.Event{{Type: types.EventChar, Ch: 'l'}}},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), []*types.Event{{Type: types.EventChar, Ch: types.CharEscape}}},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), []*types.Event{{Type: types.EventChar, Ch: types.CharEnter}}},
		{tcell.NewEventKey(tcell.KeyCtrlW, 0, tcell.ModCtrl), ctrlChord('\x17')},
		{tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModCtrl), []*types.Event{
			{Type: types.EventModifier, Key: types.KeyLeftCtrl, Pressed: true},
			{Type: types.EventModifier, Key: types.KeyLeftCtrl, Pressed: false},
		}},
	}
	for _, test := range tests {
		if diff := cmp.Diff(test.events, tcellKeyEvents(test.event)); diff != "" {
			t.Errorf("tcellKeyEvents mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestCtrlChordsDoNotTypeLetters(t *testing.T) {
	logger := zaptest.NewLogger(t).Sugar()
	c := canvas.NewCanvas(canvas.DefaultOptions(), nil, logger)
	keys := keymap.NewSet(map[string]map[string]string{
		keymap.SectionNormal: {"left": "h", "down": "j", "up": "k", "right": "l"},
	})
	e := editor.NewEditor(c, keys, logger)

	start := e.GetCursor()
	for _, event := range keyEvents(termbox.Event{Type: termbox.EventKey, Key: termbox.KeyCtrlL}) {
		e.ProcessEvent(event)
	}
	if e.GetCursor() != start {
		t.Errorf("Ctrl-L moved the cursor from %+v to %+v", start, e.GetCursor())
	}

	e.ProcessChar(':')
	e.ProcessChar('w')
	for _, event := range keyEvents(termbox.Event{Type: termbox.EventKey, Key: termbox.KeyCtrlW}) {
		e.ProcessEvent(event)
	}
	if e.CommandInput().Text() != ":w" {
		t.Errorf("Ctrl-W changed the command line to %q", e.CommandInput().Text())
	}
	if e.InputHandler().Ctrl() {
		t.Errorf("Ctrl should be released after the chord")
	}
}

func TestAttribute256(t *testing.T) {
	tests := []struct {
		pixel     types.Pixel
		attribute termbox.Attribute
	}{
		{types.Pixel{A: 255}, 17},
		{types.Pixel{R: 255, G: 255, B: 255, A: 255}, 232},
		{types.Pixel{R: 255, A: 255}, 197},
	}
	for _, test := range tests {
		if got := attribute256(test.pixel); got != test.attribute {
			t.Errorf("attribute256(%+v) = %d, expected %d", test.pixel, got, test.attribute)
		}
	}
}
