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

// Package script lets lisp programs drive an editor without a screen.
// Scripts type keys, inspect the mode and cursor, manage layers, and write
// the canvas, which makes them useful for batch drawing and for testing.
package script

import (
	"errors"
	"fmt"
	"os"

	"github.com/steelseries/golisp"

	"github.com/togglebyte/mixel/pkg/editor"
	"github.com/togglebyte/mixel/pkg/types"
)

// target is the editor that primitives act on.
var target *editor.Editor

var errNoEditor = errors.New("no editor is bound")

func init() {
	golisp.MakePrimitiveFunction("keys", "1", KeysImpl)
	golisp.MakePrimitiveFunction("key", "1", KeyImpl)
	golisp.MakePrimitiveFunction("mode", "0", ModeImpl)
	golisp.MakePrimitiveFunction("set-mode", "1", SetModeImpl)
	golisp.MakePrimitiveFunction("cursor", "0", CursorImpl)
	golisp.MakePrimitiveFunction("pixel", "2", PixelImpl)
	golisp.MakePrimitiveFunction("add-layer", "0", AddLayerImpl)
	golisp.MakePrimitiveFunction("select-layer", "1", SelectLayerImpl)
	golisp.MakePrimitiveFunction("layer", "0", LayerImpl)
	golisp.MakePrimitiveFunction("erase", "0", EraseImpl)
	golisp.MakePrimitiveFunction("undo", "0", UndoImpl)
	golisp.MakePrimitiveFunction("write", "1", WriteImpl)
	golisp.MakePrimitiveFunction("message", "0", MessageImpl)
	golisp.MakePrimitiveFunction("running", "0", RunningImpl)
}

// Bind makes e the editor that scripts act on.
func Bind(e *editor.Editor) {
	target = e
}

// Eval runs every expression in source against e and returns the last value.
func Eval(e *editor.Editor, source string) (*golisp.Data, error) {
	Bind(e)
	return golisp.ParseAndEval("(begin " + source + "\n)")
}

func EvalFile(e *editor.Editor, path string) (*golisp.Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Eval(e, string(b))
}

func stringArg(d *golisp.Data) (string, error) {
	if !golisp.StringP(d) {
		return "", fmt.Errorf("expected a string, got %s", golisp.String(d))
	}
	return golisp.StringValue(d), nil
}

func intArg(d *golisp.Data) (int, error) {
	switch {
	case golisp.IntegerP(d):
		return int(golisp.IntegerValue(d)), nil
	case golisp.FloatP(d):
		return int(golisp.FloatValue(d)), nil
	}
	return 0, fmt.Errorf("expected a number, got %s", golisp.String(d))
}

var namedKeys = map[string]rune{
	"escape":    types.CharEscape,
	"enter":     types.CharEnter,
	"backspace": types.CharBackspace,
	"space":     ' ',
}

func KeysImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if target == nil {
		return nil, errNoEditor
	}
	text, err := stringArg(golisp.Car(args))
	if err != nil {
		return nil, err
	}
	for _, ch := range text {
		target.ProcessChar(ch)
	}
	return golisp.StringWithValue(target.GetMode().String()), nil
}

func KeyImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if target == nil {
		return nil, errNoEditor
	}
	name, err := stringArg(golisp.Car(args))
	if err != nil {
		return nil, err
	}
	ch, ok := namedKeys[name]
	if !ok {
		return nil, fmt.Errorf("unknown key %q", name)
	}
	target.ProcessChar(ch)
	return golisp.StringWithValue(target.GetMode().String()), nil
}

func ModeImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if target == nil {
		return nil, errNoEditor
	}
	return golisp.StringWithValue(target.GetMode().String()), nil
}

func SetModeImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if target == nil {
		return nil, errNoEditor
	}
	name, err := stringArg(golisp.Car(args))
	if err != nil {
		return nil, err
	}
	mode, err := types.ParseMode(name)
	if err != nil {
		return nil, err
	}
	target.SetMode(mode)
	return golisp.StringWithValue(mode.String()), nil
}

func CursorImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if target == nil {
		return nil, errNoEditor
	}
	cursor := target.GetCursor()
	return golisp.ArrayToList([]*golisp.Data{
		golisp.IntegerWithValue(int64(cursor.X)),
		golisp.IntegerWithValue(int64(cursor.Y)),
	}), nil
}

// PixelImpl returns the flattened color at a point as "#rrggbbaa".
func PixelImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if target == nil {
		return nil, errNoEditor
	}
	x, err := intArg(golisp.Car(args))
	if err != nil {
		return nil, err
	}
	y, err := intArg(golisp.Cadr(args))
	if err != nil {
		return nil, err
	}
	img, err := target.Canvas().Composite()
	if err != nil {
		return nil, err
	}
	c := img.RGBAAt(x, y)
	return golisp.StringWithValue(fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)), nil
}

func AddLayerImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if target == nil {
		return nil, errNoEditor
	}
	return golisp.IntegerWithValue(int64(target.Canvas().AddLayer())), nil
}

func SelectLayerImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if target == nil {
		return nil, errNoEditor
	}
	i, err := intArg(golisp.Car(args))
	if err != nil {
		return nil, err
	}
	if err := target.Canvas().SelectLayer(i); err != nil {
		return nil, err
	}
	return golisp.IntegerWithValue(int64(i)), nil
}

func LayerImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if target == nil {
		return nil, errNoEditor
	}
	return golisp.IntegerWithValue(int64(target.Canvas().ActiveLayer())), nil
}

func EraseImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if target == nil {
		return nil, errNoEditor
	}
	target.Canvas().Erase()
	return golisp.BooleanWithValue(true), nil
}

func UndoImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if target == nil {
		return nil, errNoEditor
	}
	return golisp.BooleanWithValue(target.Canvas().Undo()), nil
}

func WriteImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if target == nil {
		return nil, errNoEditor
	}
	path, err := stringArg(golisp.Car(args))
	if err != nil {
		return nil, err
	}
	target.Execute(types.WriteCommand(path))
	return golisp.StringWithValue(target.GetMessage()), nil
}

func MessageImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if target == nil {
		return nil, errNoEditor
	}
	return golisp.StringWithValue(target.GetMessage()), nil
}

func RunningImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if target == nil {
		return nil, errNoEditor
	}
	return golisp.BooleanWithValue(target.IsRunning()), nil
}
