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

package editor

import (
	"errors"
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"

	"github.com/togglebyte/mixel/pkg/canvas"
	"github.com/togglebyte/mixel/pkg/keymap"
	"github.com/togglebyte/mixel/pkg/types"
)

type memorySink struct {
	paths []string
	err   error
}

func (s *memorySink) Write(path string, img image.Image) error {
	if s.err != nil {
		return s.err
	}
	s.paths = append(s.paths, path)
	return nil
}

var bindings = map[string]map[string]string{
	keymap.SectionNormal: {"left": "h", "down": "j", "up": "k", "right": "l"},
	keymap.SectionInsert: {"left": "h", "down": "j", "up": "k", "right": "l", "draw": " "},
	keymap.SectionVisual: {"left": "h", "down": "j", "up": "k", "right": "l"},
}

func setup(t *testing.T) (*Editor, *memorySink) {
	sink := &memorySink{}
	logger := zaptest.NewLogger(t).Sugar()
	c := canvas.NewCanvas(canvas.DefaultOptions(), sink, logger)
	return NewEditor(c, keymap.NewSet(bindings), logger), sink
}

func typeText(e *Editor, text string) {
	for _, ch := range text {
		e.ProcessChar(ch)
	}
}

func TestInsertAndEscape(t *testing.T) {
	e, _ := setup(t)
	e.ProcessChar('i')
	if e.GetMode() != types.ModeInsert {
		t.Fatalf("Expected insert mode, got %v", e.GetMode())
	}
	e.ProcessChar(types.CharEscape)
	if e.GetMode() != types.ModeNormal {
		t.Errorf("Expected normal mode, got %v", e.GetMode())
	}
	if e.InputHandler().LastChar() != types.CharEscape {
		t.Errorf("Input handler should remember the escape")
	}
}

func TestEscapeReachesCanvasBeforeModeChange(t *testing.T) {
	keys := map[string]map[string]string{
		keymap.SectionInsert: {"right": "\x1b"},
	}
	c := canvas.NewCanvas(canvas.DefaultOptions(), &memorySink{}, nil)
	e := NewEditor(c, keymap.NewSet(keys), nil)
	start := c.GetCursor()
	e.ProcessChar('i')
	e.ProcessChar(types.CharEscape)
	moved := start.Add(types.Point{X: 1})
	if c.GetCursor() != moved {
		t.Errorf("Canvas did not see the escape: cursor %+v", c.GetCursor())
	}
	if px, _ := c.PixelAt(0, moved); px != canvas.DefaultOptions().Ink {
		t.Errorf("Escape should be handled in insert mode, pixel %+v", px)
	}
	if e.GetMode() != types.ModeNormal {
		t.Errorf("Expected normal mode, got %v", e.GetMode())
	}
}

func TestInsertTransitionDoesNotDraw(t *testing.T) {
	e, _ := setup(t)
	before := e.Sprites()
	e.ProcessChar('i')
	if diff := cmp.Diff(before, e.Sprites()); diff != "" {
		t.Errorf("Entering insert mode changed the canvas (-before +after):\n%s", diff)
	}
}

func TestInsertPaintsWhileMoving(t *testing.T) {
	e, _ := setup(t)
	start := e.GetCursor()
	typeText(e, "ill")
	ink := canvas.DefaultOptions().Ink
	for _, x := range []int{1, 2} {
		at := start.Add(types.Point{X: x})
		if px, _ := e.Canvas().PixelAt(0, at); px != ink {
			t.Errorf("Pixel at %+v: %+v", at, px)
		}
	}
	if px, _ := e.Canvas().PixelAt(0, start); px == ink {
		t.Errorf("Starting pixel should not be drawn")
	}
}

func TestNormalModeMoves(t *testing.T) {
	e, _ := setup(t)
	start := e.GetCursor()
	typeText(e, "hhjjjkl")
	if expected := start.Add(types.Point{X: -1, Y: 2}); e.GetCursor() != expected {
		t.Errorf("Cursor %+v, expected %+v", e.GetCursor(), expected)
	}
	if e.GetMode() != types.ModeNormal {
		t.Errorf("Expected normal mode, got %v", e.GetMode())
	}
}

func TestUnmappedKeys(t *testing.T) {
	e, _ := setup(t)
	before := e.Sprites()
	typeText(e, "zqx")
	if diff := cmp.Diff(before, e.Sprites()); diff != "" {
		t.Errorf("Unmapped keys changed the canvas (-before +after):\n%s", diff)
	}
	if e.GetMode() != types.ModeNormal {
		t.Errorf("Expected normal mode, got %v", e.GetMode())
	}
}

func TestWriteCommand(t *testing.T) {
	e, sink := setup(t)
	typeText(e, ":")
	if e.GetMode() != types.ModeCommand {
		t.Fatalf("Expected command mode, got %v", e.GetMode())
	}
	if e.CommandInput().Text() != ":" {
		t.Errorf("Command line should start with ':', got %q", e.CommandInput().Text())
	}
	typeText(e, "w a.png")
	if e.GetCommandLine() != ":w a.png" {
		t.Errorf("Command line %q", e.GetCommandLine())
	}
	e.ProcessChar(types.CharEnter)
	if e.GetMode() != types.ModeNormal {
		t.Errorf("Expected normal mode, got %v", e.GetMode())
	}
	if diff := cmp.Diff([]string{"a.png"}, sink.paths); diff != "" {
		t.Errorf("Written paths mismatch (-want +got):\n%s", diff)
	}
	if e.CommandInput().Text() != "" {
		t.Errorf("Command line should be empty, got %q", e.CommandInput().Text())
	}
	if e.GetMessage() != "wrote a.png" {
		t.Errorf("Message %q", e.GetMessage())
	}
}

func TestCommandModeKeysAreText(t *testing.T) {
	e, _ := setup(t)
	start := e.GetCursor()
	typeText(e, ":hjkl")
	if e.GetCursor() != start {
		t.Errorf("Command mode input moved the cursor")
	}
	if e.CommandInput().Text() != ":hjkl" {
		t.Errorf("Command line %q", e.CommandInput().Text())
	}
}

func TestWriteFailureKeepsSession(t *testing.T) {
	e, sink := setup(t)
	sink.err = errors.New("read-only file system")
	typeText(e, "il")
	before := e.Sprites()
	typeText(e, "\x1b:w\r")
	if e.GetMessage() != canvas.ErrNoPath.Error() {
		t.Errorf("Message %q", e.GetMessage())
	}
	typeText(e, ":w out.png\r")
	if e.GetMessage() == "" || e.GetMessage() == "wrote out.png" {
		t.Errorf("Message should report the failure, got %q", e.GetMessage())
	}
	if !e.IsRunning() || e.GetMode() != types.ModeNormal {
		t.Errorf("Failed writes should not end the session")
	}
	if diff := cmp.Diff(before, e.Sprites()); diff != "" {
		t.Errorf("Failed writes changed the canvas (-before +after):\n%s", diff)
	}
}

func TestQuit(t *testing.T) {
	e, _ := setup(t)
	typeText(e, ":q")
	if !e.IsRunning() {
		t.Fatalf("Quit should wait for enter")
	}
	e.ProcessChar(types.CharEnter)
	if e.IsRunning() {
		t.Errorf("Editor should stop after :q")
	}
}

func TestQuitWithTrailingSpace(t *testing.T) {
	e, _ := setup(t)
	typeText(e, ":q \r")
	if e.IsRunning() {
		t.Errorf("Editor should stop after \":q \"")
	}
}

func TestEscapeDiscardsCommand(t *testing.T) {
	e, _ := setup(t)
	typeText(e, ":q\x1b")
	if !e.IsRunning() || e.GetMode() != types.ModeNormal {
		t.Errorf("Escape should discard the command")
	}
	if e.CommandInput().Text() != "" {
		t.Errorf("Command line %q", e.CommandInput().Text())
	}
}

func TestVisualMode(t *testing.T) {
	e, _ := setup(t)
	e.SetMode(types.ModeVisual)
	start := e.GetCursor()
	typeText(e, "li")
	if e.GetMode() != types.ModeVisual {
		t.Errorf("'i' should not leave visual mode, got %v", e.GetMode())
	}
	if e.GetCursor() != start.Add(types.Point{X: 1}) {
		t.Errorf("Visual mode should move the cursor")
	}
	e.ProcessChar(types.CharEscape)
	if e.GetMode() != types.ModeNormal {
		t.Errorf("Expected normal mode, got %v", e.GetMode())
	}
	e.SetMode(types.ModeVisual)
	e.ProcessChar(':')
	if e.GetMode() != types.ModeCommand || e.CommandInput().Text() != ":" {
		t.Errorf("':' should open the command line from visual mode")
	}
}

func TestModifierAndResizeEvents(t *testing.T) {
	e, _ := setup(t)
	e.ProcessEvent(&types.Event{Type: types.EventModifier, Key: types.KeyRightCtrl, Pressed: true})
	if !e.InputHandler().Ctrl() {
		t.Errorf("Ctrl should be held")
	}
	e.ProcessEvent(&types.Event{Type: types.EventModifier, Key: types.KeyRightCtrl, Pressed: false})
	if e.InputHandler().Ctrl() {
		t.Errorf("Ctrl should be released")
	}
	e.ProcessEvent(&types.Event{Type: types.EventResize, Width: 6, Height: 20, Viewport: types.Size{Width: 32, Height: 32}})
	typeText(e, ":w abcdef")
	if e.GetCommandLine() != "bcdef" {
		t.Errorf("Command line %q", e.GetCommandLine())
	}
	if e.Canvas().GetPosition() != (types.Point{}) {
		t.Errorf("Canvas position %+v", e.Canvas().GetPosition())
	}
}
