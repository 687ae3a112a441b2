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
	"github.com/togglebyte/mixel/pkg/types"
)

// A Layer is a fixed-size grid of pixels with its origin at the top left.
type Layer struct {
	size   types.Size
	pixels []types.Pixel
}

func newLayer(size types.Size, fill types.Pixel) *Layer {
	l := &Layer{size: size, pixels: make([]types.Pixel, size.Width*size.Height)}
	for i := range l.pixels {
		l.pixels[i] = fill
	}
	return l
}

func (l *Layer) at(p types.Point) (types.Pixel, bool) {
	if !l.size.Contains(p) {
		return types.Transparent, false
	}
	return l.pixels[p.Y*l.size.Width+p.X], true
}

func (l *Layer) set(p types.Point, px types.Pixel) bool {
	if !l.size.Contains(p) {
		return false
	}
	l.pixels[p.Y*l.size.Width+p.X] = px
	return true
}

func (l *Layer) sprite(offset types.Point, z int) types.Sprite {
	pixels := make([]types.Pixel, len(l.pixels))
	copy(pixels, l.pixels)
	return types.Sprite{Pixels: pixels, Size: l.size, Offset: offset, ZIndex: z}
}
