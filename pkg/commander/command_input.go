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

package commander

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/togglebyte/mixel/pkg/types"
)

const (
	DefaultWidth = 80
	cursorWidth  = 1 // cells taken by the cursor glyph after the text
)

// CommandInput collects command mode text.
type CommandInput struct {
	textBuffer  string // everything typed since command mode was entered
	visibleText string // suffix of textBuffer that fits on screen
	width       int    // available display width in cells
}

func NewCommandInput(width int) *CommandInput {
	return &CommandInput{width: width}
}

func (ci *CommandInput) Text() string {
	return ci.textBuffer
}

func (ci *CommandInput) VisibleText() string {
	return ci.visibleText
}

func (ci *CommandInput) Clear() {
	ci.textBuffer = ""
	ci.visibleText = ""
}

// SetWidth changes the display width and clips the visible text again.
func (ci *CommandInput) SetWidth(width int) {
	ci.width = width
	ci.visibleText = ci.textBuffer
	ci.clip()
}

// clip drops leading characters until the text and cursor fit.
func (ci *CommandInput) clip() {
	for ci.visibleText != "" && runewidth.StringWidth(ci.visibleText)+cursorWidth > ci.width {
		_, size := utf8.DecodeRuneInString(ci.visibleText)
		ci.visibleText = ci.visibleText[size:]
	}
}

// Input edits the buffer. Enter returns the parsed command and clears the
// buffer; escape clears it without parsing. Input outside command mode is ignored.
func (ci *CommandInput) Input(ch rune, mode types.Mode, r types.Resolver) types.Command {
	if mode != types.ModeCommand {
		return types.NoopCommand
	}
	switch ch {
	case types.CharBackspace:
		if ci.textBuffer != "" {
			_, size := utf8.DecodeLastRuneInString(ci.textBuffer)
			ci.textBuffer = ci.textBuffer[:len(ci.textBuffer)-size]
		}
		ci.visibleText = ci.textBuffer
		ci.clip()
	case types.CharEnter:
		command := Parse(ci.textBuffer)
		ci.Clear()
		return command
	case types.CharEscape:
		ci.Clear()
	default:
		if !unicode.IsControl(ch) {
			ci.textBuffer += string(ch)
			ci.visibleText += string(ch)
			ci.clip()
		}
	}
	return types.NoopCommand
}

// Parse converts command text into a command. Text that is not a
// recognized command parses as a noop.
func Parse(s string) types.Command {
	s = strings.TrimSpace(s)
	if s == ":q" {
		return types.QuitCommand
	}
	parts := strings.Fields(s)
	if len(parts) > 0 && parts[0] == ":w" {
		var path string
		if len(parts) > 1 {
			path = parts[1]
		}
		return types.WriteCommand(path)
	}
	return types.NoopCommand
}
