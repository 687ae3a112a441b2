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
	"fmt"
	"sort"

	"github.com/mattn/go-runewidth"

	"github.com/togglebyte/mixel/pkg/types"
)

// cells is the drawing surface that a backend provides.
type cells interface {
	size() (cols, rows int)
	setPixel(x, y int, px types.Pixel)
	setText(x, y int, ch rune, inverse bool)
}

func paint(c cells, v types.View, pixelSize int) {
	cols, rows := c.size()
	paintSprites(c, v.Sprites(), cols, rows-2, pixelSize)
	paintInfoBar(c, v, cols, rows-2)
	paintMessageBar(c, v, cols, rows-1)
}

func paintSprites(c cells, sprites []types.Sprite, cols, rows, pixelSize int) {
	sort.SliceStable(sprites, func(i, j int) bool {
		return sprites[i].ZIndex < sprites[j].ZIndex
	})
	for _, s := range sprites {
		for y := 0; y < s.Size.Height; y++ {
			row := s.Offset.Y + y
			if row < 0 || row >= rows {
				continue
			}
			for x := 0; x < s.Size.Width; x++ {
				px := s.At(x, y)
				if px.IsTransparent() {
					continue
				}
				for i := 0; i < pixelSize; i++ {
					col := (s.Offset.X+x)*pixelSize + i
					if col >= 0 && col < cols {
						c.setPixel(col, row, px)
					}
				}
			}
		}
	}
}

func paintInfoBar(c cells, v types.View, cols, row int) {
	if row < 0 {
		return
	}
	cursor := v.GetCursor()
	finalText := fmt.Sprintf(" %d,%d ", cursor.X, cursor.Y)
	text := " mixel - " + v.GetMode().String() + " "
	text = runewidth.FillRight(text, cols-runewidth.StringWidth(finalText)) + finalText
	text = runewidth.Truncate(text, cols, "")
	paintText(c, text, row, true)
}

func paintMessageBar(c cells, v types.View, cols, row int) {
	if row < 0 {
		return
	}
	if v.GetMode() != types.ModeCommand {
		paintText(c, runewidth.Truncate(v.GetMessage(), cols, ""), row, false)
		return
	}
	x := paintText(c, v.GetCommandLine(), row, false)
	if x < cols {
		c.setText(x, row, ' ', true)
	}
}

// paintText writes text at the start of row and returns the column after it.
func paintText(c cells, text string, row int, inverse bool) int {
	x := 0
	for _, ch := range text {
		c.setText(x, row, ch, inverse)
		x += runewidth.RuneWidth(ch)
	}
	return x
}
