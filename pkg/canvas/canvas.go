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

package canvas

import (
	"errors"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/togglebyte/mixel/pkg/operations"
	"github.com/togglebyte/mixel/pkg/types"
)

const (
	layerZIndex  = 10
	cursorZIndex = 100
)

var (
	ErrNoPath  = errors.New("no file name")
	ErrNoLayer = errors.New("no such layer")
)

// A Sink writes a flattened image to a path.
type Sink interface {
	Write(path string, img image.Image) error
}

type Options struct {
	Size       types.Size
	Ink        types.Pixel // color written by Draw
	Background types.Pixel // fill of the bottom layer
	Highlight  types.Pixel // cursor color
}

func DefaultOptions() Options {
	return Options{
		Size:       types.Size{Width: 32, Height: 32},
		Ink:        types.Pixel{R: 255, G: 255, B: 255, A: 255},
		Background: types.Pixel{B: 128, A: 255},
		Highlight:  types.Pixel{R: 255, A: 255},
	}
}

// The Canvas holds the layers being edited and the cursor that edits them.
type Canvas struct {
	size     types.Size
	layers   []*Layer
	active   int // index of the layer that receives drawing
	cursor   cursor
	ink      types.Pixel
	position types.Point            // placement of the canvas for renderers
	undo     []operations.Operation // stack of operations to undo
	surface  Surface                // offscreen target used when saving
	sink     Sink
	logger   *zap.SugaredLogger
}

func NewCanvas(opts Options, sink Sink, logger *zap.SugaredLogger) *Canvas {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Canvas{
		size:    opts.Size,
		layers:  []*Layer{newLayer(opts.Size, opts.Background)},
		cursor:  cursor{position: types.Point{X: opts.Size.Width / 2, Y: opts.Size.Height / 2}, color: opts.Highlight},
		ink:     opts.Ink,
		surface: NewFramebuffer(),
		sink:    sink,
		logger:  logger,
	}
}

// SetSurface replaces the offscreen surface used by Save.
func (c *Canvas) SetSurface(s Surface) {
	c.surface = s
}

func (c *Canvas) GetSize() types.Size {
	return c.size
}

func (c *Canvas) GetCursor() types.Point {
	return c.cursor.position
}

// MoveCursor adds delta to the cursor position.
// The cursor may leave the grid; drawing there has no effect.
func (c *Canvas) MoveCursor(delta types.Point) {
	c.cursor.position = c.cursor.position.Add(delta)
}

// Draw writes the ink color into the active layer under the cursor.
func (c *Canvas) Draw() {
	c.Perform(operations.NewPaint(c.active, c.cursor.position, c.ink))
}

// Erase zeroes the pixel of the active layer under the cursor.
func (c *Canvas) Erase() {
	c.Perform(operations.NewErase(c.active, c.cursor.position))
}

// Perform performs op and saves its inverse for undo.
func (c *Canvas) Perform(op operations.Operation) {
	inverse := op.Perform(c)
	if inverse != nil {
		c.undo = append(c.undo, inverse)
	}
}

// Undo reverts the most recent operation. It returns false when there is nothing to undo.
func (c *Canvas) Undo() bool {
	if len(c.undo) == 0 {
		return false
	}
	op := c.undo[len(c.undo)-1]
	c.undo = c.undo[:len(c.undo)-1]
	op.Perform(c)
	return true
}

func (c *Canvas) PixelAt(layer int, p types.Point) (types.Pixel, bool) {
	if layer < 0 || layer >= len(c.layers) {
		return types.Transparent, false
	}
	return c.layers[layer].at(p)
}

func (c *Canvas) SetPixelAt(layer int, p types.Point, px types.Pixel) bool {
	if layer < 0 || layer >= len(c.layers) {
		return false
	}
	return c.layers[layer].set(p, px)
}

// AddLayer appends a transparent layer and returns its index.
func (c *Canvas) AddLayer() int {
	c.layers = append(c.layers, newLayer(c.size, types.Transparent))
	return len(c.layers) - 1
}

// SelectLayer makes layer i the target of drawing.
func (c *Canvas) SelectLayer(i int) error {
	if i < 0 || i >= len(c.layers) {
		return fmt.Errorf("%w: %d", ErrNoLayer, i)
	}
	c.active = i
	return nil
}

func (c *Canvas) ActiveLayer() int {
	return c.active
}

func (c *Canvas) LayerCount() int {
	return len(c.layers)
}

// Input applies the action that ch resolves to. Command mode input is ignored.
// In insert mode every resolved key also draws at the (possibly moved) cursor.
func (c *Canvas) Input(ch rune, mode types.Mode, r types.Resolver) types.Command {
	if mode == types.ModeCommand {
		return types.NoopCommand
	}
	action, ok := r.Resolve(ch, mode)
	if !ok {
		return types.NoopCommand
	}
	switch action {
	case types.ActionMoveLeft:
		c.MoveCursor(types.Point{X: -1, Y: 0})
	case types.ActionMoveRight:
		c.MoveCursor(types.Point{X: 1, Y: 0})
	case types.ActionMoveUp:
		c.MoveCursor(types.Point{X: 0, Y: -1})
	case types.ActionMoveDown:
		c.MoveCursor(types.Point{X: 0, Y: 1})
	}
	if mode == types.ModeInsert {
		c.Draw()
	}
	return types.NoopCommand
}

// Exec runs the commands that concern the canvas. Only writes have an effect.
// A failed write is logged and returned; the canvas is not changed.
func (c *Canvas) Exec(cmd types.Command) error {
	if cmd.Kind != types.CommandWrite {
		return nil
	}
	err := c.Save(cmd.Path)
	if err != nil {
		c.logger.Errorw("write failed", "path", cmd.Path, "error", err)
		return err
	}
	c.logger.Infow("wrote canvas", "path", cmd.Path, "layers", len(c.layers))
	return nil
}

// Save flattens all layers and hands the result to the sink.
func (c *Canvas) Save(path string) error {
	if path == "" {
		return ErrNoPath
	}
	if c.sink == nil {
		return errors.New("no sink for writing")
	}
	img, err := c.flatten()
	if err != nil {
		return err
	}
	if err := c.sink.Write(path, img); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Composite returns the layers flattened into one image.
func (c *Canvas) Composite() (*image.RGBA, error) {
	return c.flatten()
}

// flatten renders every layer into the surface, bottom layer first, and reads it back.
// The surface is released on every path.
func (c *Canvas) flatten() (*image.RGBA, error) {
	if err := c.surface.Bind(c.size); err != nil {
		return nil, fmt.Errorf("bind surface: %w", err)
	}
	defer c.surface.Unbind()
	for i, l := range c.layers {
		c.surface.DrawSprite(l.sprite(types.Point{}, layerZIndex+i))
	}
	img, err := c.surface.ReadPixels()
	if err != nil {
		return nil, fmt.Errorf("read surface: %w", err)
	}
	return img, nil
}

// Center places the canvas in the middle of a viewport measured in canvas pixels.
func (c *Canvas) Center(viewport types.Size) {
	c.position = types.Point{
		X: viewport.Width/2 - c.size.Width/2,
		Y: viewport.Height/2 - c.size.Height/2,
	}
}

func (c *Canvas) GetPosition() types.Point {
	return c.position
}

// Sprites returns a copy of every layer and the cursor, placed for rendering.
func (c *Canvas) Sprites() []types.Sprite {
	sprites := make([]types.Sprite, 0, len(c.layers)+1)
	for i, l := range c.layers {
		sprites = append(sprites, l.sprite(c.position, layerZIndex+i))
	}
	return append(sprites, c.cursor.sprite(c.position))
}
