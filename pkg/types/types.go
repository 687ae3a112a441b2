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

package types

import (
	"fmt"
	"image/color"
)

// Mode is the current modal editing context.
type Mode int

// Editor modes
const (
	ModeNormal Mode = iota
	ModeInsert
	ModeVisual
	ModeCommand
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeInsert:
		return "insert"
	case ModeVisual:
		return "visual"
	case ModeCommand:
		return "command"
	default:
		return "unknown"
	}
}

// ParseMode returns the mode with the given name.
func ParseMode(name string) (Mode, error) {
	for _, m := range []Mode{ModeNormal, ModeInsert, ModeVisual, ModeCommand} {
		if m.String() == name {
			return m, nil
		}
	}
	return ModeNormal, fmt.Errorf("unknown mode %q", name)
}

// Action is a semantic editing operation produced by a keymap lookup.
type Action int

// Actions
const (
	ActionMoveLeft Action = iota
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionDraw
	ActionEnterCommand
	ActionCloseCommand
	ActionNoop
)

func (a Action) String() string {
	switch a {
	case ActionMoveLeft:
		return "left"
	case ActionMoveRight:
		return "right"
	case ActionMoveUp:
		return "up"
	case ActionMoveDown:
		return "down"
	case ActionDraw:
		return "draw"
	case ActionEnterCommand:
		return "command"
	case ActionCloseCommand:
		return "close-command"
	default:
		return "noop"
	}
}

// A CommandKind identifies the directive carried by a Command.
type CommandKind int

// Command kinds
const (
	CommandNoop CommandKind = iota
	CommandQuit
	CommandWrite
)

// A Command is a parsed directive from the command line.
type Command struct {
	Kind CommandKind
	Path string // only used by CommandWrite
}

// NoopCommand has no effect and QuitCommand stops the editor.
var (
	NoopCommand = Command{Kind: CommandNoop}
	QuitCommand = Command{Kind: CommandQuit}
)

// WriteCommand saves the canvas to path.
func WriteCommand(path string) Command {
	return Command{Kind: CommandWrite, Path: path}
}

func (c Command) String() string {
	switch c.Kind {
	case CommandQuit:
		return "quit"
	case CommandWrite:
		return fmt.Sprintf("write(%q)", c.Path)
	default:
		return "noop"
	}
}

// Characters with special meaning to the mode machine.
const (
	CharBackspace = '\b'
	CharEnter     = '\r'
	CharEscape    = '\x1b'
)

// A Point is a grid position. X grows to the right and Y grows downward.
type Point struct {
	X int
	Y int
}

// Add returns the sum of p and q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// A Size is the extent of a rectangle.
type Size struct {
	Width  int
	Height int
}

// Contains reports whether p lies inside a rectangle of this size at the origin.
func (s Size) Contains(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < s.Width && p.Y < s.Height
}

// A Pixel is an RGBA color with 8 bits per channel.
type Pixel struct {
	R, G, B, A uint8
}

// Transparent is the zero pixel.
var Transparent = Pixel{}

// IsTransparent reports whether the pixel has zero alpha.
func (p Pixel) IsTransparent() bool {
	return p.A == 0
}

// RGBA converts the pixel to its image/color equivalent.
func (p Pixel) RGBA() color.RGBA {
	return color.RGBA{R: p.R, G: p.G, B: p.B, A: p.A}
}

// A Sprite is a rectangular pixel buffer plus placement metadata for a renderer.
// Pixels are stored row by row starting at the top left.
type Sprite struct {
	Pixels []Pixel
	Size   Size
	Offset Point // placement in canvas pixels
	ZIndex int   // sprites with higher values are drawn later
}

// At returns the pixel at x, y in sprite coordinates.
func (s Sprite) At(x, y int) Pixel {
	return s.Pixels[y*s.Size.Width+x]
}

// Event types
const (
	EventNone = iota
	EventChar
	EventModifier
	EventResize
)

// Modifier keys
type Key int

const (
	KeyNone Key = iota
	KeyLeftCtrl
	KeyRightCtrl
)

type Event struct {
	Type     int
	Ch       rune // EventChar
	Key      Key  // EventModifier
	Pressed  bool // EventModifier
	Width    int  // EventResize, in terminal cells
	Height   int  // EventResize, in terminal cells
	Viewport Size // EventResize, in canvas pixels
}

// A Resolver maps a character to an Action for a mode.
// The second result is false when the character is unmapped.
type Resolver interface {
	Resolve(ch rune, mode Mode) (Action, bool)
}

// A Handler reacts to raw input for the current mode.
type Handler interface {
	Input(ch rune, mode Mode, r Resolver) Command
}

// A View is the state that a screen reads to draw an editor.
type View interface {
	Sprites() []Sprite
	GetMode() Mode
	GetCursor() Point
	GetCommandLine() string
	GetMessage() string
}
