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
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/steelseries/golisp"

	"github.com/togglebyte/mixel/pkg/canvas"
	"github.com/togglebyte/mixel/pkg/config"
	"github.com/togglebyte/mixel/pkg/editor"
	"github.com/togglebyte/mixel/pkg/screen"
	"github.com/togglebyte/mixel/pkg/script"
	"github.com/togglebyte/mixel/pkg/sink"
)

func main() {
	config.Flags(pflag.CommandLine)
	pflag.Parse()

	cfg, err := config.Load(pflag.CommandLine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mixel: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.LogPath, cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mixel: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Infow("loaded configuration", "file", cfg.File, "canvas", cfg.Canvas.Size)

	// The canvas holds the pixels; the editor converts user input into changes to it.
	c := canvas.NewCanvas(cfg.Canvas, sink.PNG{}, logger)
	e := editor.NewEditor(c, cfg.KeyMaps(), logger)

	if cfg.Eval != "" {
		// Run a mixel script and exit.
		value, err := script.EvalFile(e, cfg.Eval)
		if err != nil {
			logger.Errorw("script failed", "file", cfg.Eval, "error", err)
			fmt.Fprintf(os.Stderr, "mixel: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(golisp.String(value))
		return
	}

	// Create a screen to manage display.
	s, err := screen.New(cfg.Backend, cfg.PixelSize)
	if err != nil {
		logger.Errorw("unable to open screen", "backend", cfg.Backend, "error", err)
		fmt.Fprintf(os.Stderr, "mixel: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	// Run the main event loop.
	for e.IsRunning() {
		s.Render(e)
		if err := e.ProcessEvent(s.GetNextEvent()); err != nil {
			logger.Errorw("event failed", "error", err)
		}
	}
}
