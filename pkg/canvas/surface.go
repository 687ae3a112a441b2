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
	"image"
	"image/draw"

	"github.com/togglebyte/mixel/pkg/types"
)

var ErrSurfaceBound = errors.New("surface is already bound")
var ErrSurfaceUnbound = errors.New("surface is not bound")

// A Surface is an offscreen target that layers are rendered into when saving.
// Every successful Bind must be paired with an Unbind.
type Surface interface {
	Bind(size types.Size) error
	DrawSprite(s types.Sprite)
	ReadPixels() (*image.RGBA, error)
	Unbind()
}

// Framebuffer is a Surface in memory.
type Framebuffer struct {
	img *image.RGBA
}

func NewFramebuffer() *Framebuffer {
	return &Framebuffer{}
}

func (f *Framebuffer) Bind(size types.Size) error {
	if f.img != nil {
		return ErrSurfaceBound
	}
	f.img = image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	return nil
}

func (f *Framebuffer) Bound() bool {
	return f.img != nil
}

// DrawSprite overwrites the framebuffer with every pixel of s that is not transparent.
func (f *Framebuffer) DrawSprite(s types.Sprite) {
	if f.img == nil {
		return
	}
	bounds := f.img.Bounds()
	for y := 0; y < s.Size.Height; y++ {
		for x := 0; x < s.Size.Width; x++ {
			px := s.At(x, y)
			if px.IsTransparent() {
				continue
			}
			at := image.Pt(s.Offset.X+x, s.Offset.Y+y)
			if !at.In(bounds) {
				continue
			}
			f.img.SetRGBA(at.X, at.Y, px.RGBA())
		}
	}
}

func (f *Framebuffer) ReadPixels() (*image.RGBA, error) {
	if f.img == nil {
		return nil, ErrSurfaceUnbound
	}
	out := image.NewRGBA(f.img.Bounds())
	draw.Draw(out, out.Bounds(), f.img, image.Point{}, draw.Src)
	return out, nil
}

func (f *Framebuffer) Unbind() {
	f.img = nil
}
