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

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/togglebyte/mixel/pkg/canvas"
	"github.com/togglebyte/mixel/pkg/keymap"
	"github.com/togglebyte/mixel/pkg/types"
)

var ErrNoConfig = errors.New("no configuration file")

// Config holds everything mixel reads at startup.
type Config struct {
	Keys      map[string]map[string]string // keymap sections by mode name
	Canvas    canvas.Options
	PixelSize int    // terminal cells per canvas pixel, horizontally
	Backend   string // termbox or tcell
	LogPath   string
	Debug     bool
	Eval      string // script to run instead of the interactive editor
	File      string // configuration file that was read
}

// Flags defines the command line flags that Load understands.
func Flags(flagSet *pflag.FlagSet) {
	flagSet.StringP("config", "c", "", "configuration file")
	flagSet.String("eval", "", "run a lisp script and exit")
	flagSet.String("log", "", "log file (default $HOME/.mixellog)")
	flagSet.Bool("debug", false, "log debugging information")
	flagSet.String("backend", "termbox", "terminal backend: termbox or tcell")
}

// Load reads the configuration file and merges in flags and MIXEL_ environment variables.
// A missing or malformed file is an error.
func Load(flagSet *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setupViper(v, flagSet)
	if err := v.BindPFlags(flagSet); err != nil {
		return nil, fmt.Errorf("unable to bind flags: %w", err)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", ErrNoConfig, err)
		}
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	cfg := &Config{
		Keys:      make(map[string]map[string]string),
		PixelSize: v.GetInt("canvas.pixel-size"),
		Backend:   v.GetString("backend"),
		LogPath:   v.GetString("log"),
		Debug:     v.GetBool("debug"),
		Eval:      v.GetString("eval"),
		File:      v.ConfigFileUsed(),
	}
	for _, section := range []string{keymap.SectionNormal, keymap.SectionInsert, keymap.SectionVisual} {
		cfg.Keys[section] = v.GetStringMapString(section)
	}
	if err := loadCanvas(v, cfg); err != nil {
		return nil, err
	}
	if cfg.LogPath == "" {
		cfg.LogPath = defaultLogPath()
	}
	return cfg, nil
}

func setupViper(v *viper.Viper, flagSet *pflag.FlagSet) {
	v.SetConfigName("mixel")
	v.SetConfigType("toml")
	v.AddConfigPath("$HOME/.config/mixel")
	v.AddConfigPath("$HOME/.mixel")
	v.AddConfigPath(".")
	if flag := flagSet.Lookup("config"); flag != nil && flag.Changed {
		v.SetConfigFile(flag.Value.String())
	}

	v.SetEnvPrefix("MIXEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	defaults := canvas.DefaultOptions()
	v.SetDefault("canvas.width", defaults.Size.Width)
	v.SetDefault("canvas.height", defaults.Size.Height)
	v.SetDefault("canvas.ink", "#ffffff")
	v.SetDefault("canvas.background", "#000080")
	v.SetDefault("canvas.cursor", "#ff0000")
	v.SetDefault("canvas.pixel-size", 2)
}

func loadCanvas(v *viper.Viper, cfg *Config) error {
	opts := canvas.Options{
		Size: types.Size{Width: v.GetInt("canvas.width"), Height: v.GetInt("canvas.height")},
	}
	if opts.Size.Width <= 0 || opts.Size.Height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", opts.Size.Width, opts.Size.Height)
	}
	if cfg.PixelSize <= 0 {
		return fmt.Errorf("invalid pixel size %d", cfg.PixelSize)
	}
	colors := []struct {
		key   string
		pixel *types.Pixel
	}{
		{"canvas.ink", &opts.Ink},
		{"canvas.background", &opts.Background},
		{"canvas.cursor", &opts.Highlight},
	}
	for _, c := range colors {
		px, err := ParseColor(v.GetString(c.key))
		if err != nil {
			return fmt.Errorf("%s: %w", c.key, err)
		}
		*c.pixel = px
	}
	cfg.Canvas = opts
	return nil
}

// ParseColor converts a hex color such as "#ff8000" into an opaque pixel.
func ParseColor(s string) (types.Pixel, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return types.Pixel{}, err
	}
	r, g, b := c.RGB255()
	return types.Pixel{R: r, G: g, B: b, A: 255}, nil
}

// KeyMaps builds the keymaps described by the configuration.
func (c *Config) KeyMaps() *keymap.Set {
	return keymap.NewSet(c.Keys)
}

func defaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mixellog"
	}
	return filepath.Join(home, ".mixellog")
}

// NewLogger builds a development logger that writes to path.
func NewLogger(path string, debug bool) (*zap.SugaredLogger, error) {
	loggerCfg := zap.NewDevelopmentConfig()
	loggerCfg.OutputPaths = []string{path}
	loggerCfg.ErrorOutputPaths = []string{path}
	loggerCfg.Level.SetLevel(zap.InfoLevel)
	if debug {
		loggerCfg.Level.SetLevel(zap.DebugLevel)
	}
	logger, err := loggerCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Sugar(), nil
}
