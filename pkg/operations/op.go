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

package operations

import (
	"github.com/togglebyte/mixel/pkg/types"
)

// A Paintable holds layers of pixels that operations modify.
type Paintable interface {
	PixelAt(layer int, p types.Point) (types.Pixel, bool)
	SetPixelAt(layer int, p types.Point, px types.Pixel) bool
}

type Operation interface {
	Perform(p Paintable) Operation // performs the operation and returns its inverse
}

type operation struct {
	Layer int
	Point types.Point
	Undo  bool
}

func (op *operation) copyForUndo(other *operation) {
	op.Layer = other.Layer
	op.Point = other.Point
	op.Undo = true
}

// Paint replaces a single pixel. Painting outside the layer does nothing
// and has no inverse.
type Paint struct {
	operation
	Pixel types.Pixel
}

func NewPaint(layer int, at types.Point, px types.Pixel) *Paint {
	return &Paint{operation: operation{Layer: layer, Point: at}, Pixel: px}
}

func (op *Paint) Perform(p Paintable) Operation {
	old, ok := p.PixelAt(op.Layer, op.Point)
	if !ok || !p.SetPixelAt(op.Layer, op.Point, op.Pixel) {
		return nil
	}
	inverse := &Paint{Pixel: old}
	inverse.copyForUndo(&op.operation)
	return inverse
}

// Erase zeroes a pixel.
type Erase struct {
	operation
}

func NewErase(layer int, at types.Point) *Erase {
	return &Erase{operation: operation{Layer: layer, Point: at}}
}

func (op *Erase) Perform(p Paintable) Operation {
	paint := &Paint{operation: op.operation, Pixel: types.Transparent}
	return paint.Perform(p)
}
