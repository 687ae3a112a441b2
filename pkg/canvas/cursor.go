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

type cursor struct {
	position types.Point
	color    types.Pixel
}

func (c *cursor) sprite(offset types.Point) types.Sprite {
	return types.Sprite{
		Pixels: []types.Pixel{c.color},
		Size:   types.Size{Width: 1, Height: 1},
		Offset: offset.Add(c.position),
		ZIndex: cursorZIndex,
	}
}
