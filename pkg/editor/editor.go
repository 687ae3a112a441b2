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
	"fmt"

	"go.uber.org/zap"

	"github.com/togglebyte/mixel/pkg/canvas"
	"github.com/togglebyte/mixel/pkg/commander"
	"github.com/togglebyte/mixel/pkg/input"
	"github.com/togglebyte/mixel/pkg/keymap"
	"github.com/togglebyte/mixel/pkg/types"
)

// The Editor converts user input into changes to the canvas.
type Editor struct {
	mode         types.Mode
	input        *input.Handler
	canvas       *canvas.Canvas
	commandInput *commander.CommandInput
	handlers     []types.Handler // receive characters that don't change the mode
	running      bool
	message      string // status message
	logger       *zap.SugaredLogger
}

func NewEditor(c *canvas.Canvas, keys *keymap.Set, logger *zap.SugaredLogger) *Editor {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	e := &Editor{
		mode:         types.ModeNormal,
		input:        input.NewHandler(keys),
		canvas:       c,
		commandInput: commander.NewCommandInput(commander.DefaultWidth),
		running:      true,
		logger:       logger,
	}
	e.handlers = []types.Handler{e.canvas, e.commandInput}
	return e
}

func (e *Editor) IsRunning() bool {
	return e.running
}

func (e *Editor) GetMode() types.Mode {
	return e.mode
}

// SetMode switches modes directly. Entering command mode starts an empty command line.
func (e *Editor) SetMode(m types.Mode) {
	if m == types.ModeCommand && e.mode != types.ModeCommand {
		e.commandInput.Clear()
	}
	e.setMode(m)
}

func (e *Editor) setMode(m types.Mode) {
	if m != e.mode {
		e.logger.Debugw("mode", "from", e.mode.String(), "to", m.String())
	}
	e.mode = m
}

func (e *Editor) Canvas() *canvas.Canvas {
	return e.canvas
}

func (e *Editor) CommandInput() *commander.CommandInput {
	return e.commandInput
}

func (e *Editor) InputHandler() *input.Handler {
	return e.input
}

func (e *Editor) ProcessEvent(event *types.Event) error {
	switch event.Type {
	case types.EventChar:
		e.ProcessChar(event.Ch)
	case types.EventModifier:
		e.input.UpdateModifier(event.Key, event.Pressed)
	case types.EventResize:
		e.processResize(event)
	}
	return nil
}

func (e *Editor) processResize(event *types.Event) {
	e.commandInput.SetWidth(event.Width)
	e.canvas.Center(event.Viewport)
}

// ProcessChar handles one character. Characters that end a mode are delivered
// to the component of the current mode before the mode changes.
func (e *Editor) ProcessChar(ch rune) {
	e.input.Update(ch)

	switch e.mode {
	case types.ModeNormal:
		switch ch {
		case 'i':
			e.setMode(types.ModeInsert)
			return
		case ':':
			e.enterCommandMode(ch)
			return
		}
	case types.ModeVisual:
		switch ch {
		case ':':
			e.enterCommandMode(ch)
			return
		case types.CharEscape:
			e.deliver(e.canvas, ch)
			e.setMode(types.ModeNormal)
			return
		}
	case types.ModeInsert:
		if ch == types.CharEscape {
			e.deliver(e.canvas, ch)
			e.setMode(types.ModeNormal)
			return
		}
	case types.ModeCommand:
		switch ch {
		case types.CharEnter, types.CharEscape:
			command := e.deliver(e.commandInput, ch)
			e.setMode(types.ModeNormal)
			e.Execute(command)
			return
		}
	}

	for _, h := range e.handlers {
		e.Execute(e.deliver(h, ch))
	}
}

func (e *Editor) enterCommandMode(ch rune) {
	e.commandInput.Clear()
	e.setMode(types.ModeCommand)
	e.deliver(e.commandInput, ch)
}

func (e *Editor) deliver(h types.Handler, ch rune) types.Command {
	return h.Input(ch, e.mode, e.input)
}

// Execute performs a parsed command.
func (e *Editor) Execute(command types.Command) {
	switch command.Kind {
	case types.CommandQuit:
		e.logger.Infow("quit")
		e.running = false
	case types.CommandWrite:
		if err := e.canvas.Exec(command); err != nil {
			e.message = err.Error()
		} else {
			e.message = fmt.Sprintf("wrote %s", command.Path)
		}
	}
}

func (e *Editor) GetMessage() string {
	return e.message
}

func (e *Editor) GetCommandLine() string {
	return e.commandInput.VisibleText()
}

func (e *Editor) GetCursor() types.Point {
	return e.canvas.GetCursor()
}

func (e *Editor) Sprites() []types.Sprite {
	return e.canvas.Sprites()
}
