// Package config loads the demo's settings from an optional YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tinyrange/texquad/internal/gowin/graphics"
	"github.com/tinyrange/texquad/internal/gowin/window"
)

// MaxTextureUnit is the highest texture unit index accepted. OpenGL 3.3
// guarantees at least 16 fragment texture units.
const MaxTextureUnit = 15

// Config holds every tunable of the demo. The zero value is not valid; start
// from Default.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Shaders ShaderConfig  `yaml:"shaders"`
	Texture TextureConfig `yaml:"texture"`

	ClearColor [4]float32 `yaml:"clear_color"`

	// MaxFrames stops the render loop after this many frames. Zero runs
	// until the window is closed.
	MaxFrames int `yaml:"max_frames"`
}

type WindowConfig struct {
	Title        string `yaml:"title"`
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	SwapInterval int    `yaml:"swap_interval"`
	Hidden       bool   `yaml:"hidden,omitempty"`
}

// ShaderConfig names the shader source files. Empty paths select the
// embedded shaders.
type ShaderConfig struct {
	Vertex   string `yaml:"vertex,omitempty"`
	Fragment string `yaml:"fragment,omitempty"`
}

// TextureConfig names the image drawn on the quad. An empty path selects the
// embedded container texture.
type TextureConfig struct {
	Path  string `yaml:"path,omitempty"`
	Unit  uint32 `yaml:"unit"`
	Alpha bool   `yaml:"alpha"`
}

// Default returns the built-in configuration: an 800x600 window, embedded
// assets on texture unit 0 and a dark teal background.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:        "LearnOpenGL",
			Width:        800,
			Height:       600,
			SwapInterval: -1,
		},
		ClearColor: graphics.BackgroundColor,
	}
}

// Load reads path and applies it on top of Default. Keys missing from the
// file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.MaxFrames < 0 {
		return fmt.Errorf("max_frames must not be negative, got %d", c.MaxFrames)
	}
	if c.Texture.Unit > MaxTextureUnit {
		return fmt.Errorf("texture unit %d out of range 0-%d", c.Texture.Unit, MaxTextureUnit)
	}
	if (c.Shaders.Vertex == "") != (c.Shaders.Fragment == "") {
		return fmt.Errorf("shaders.vertex and shaders.fragment must be set together")
	}
	for i, v := range c.ClearColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("clear_color[%d] = %v, want a value in [0, 1]", i, v)
		}
	}
	return nil
}

// WindowConfig converts the window section to a platform window request for
// an OpenGL 3.3 core context.
func (c Config) WindowConfig() window.Config {
	wc := window.DefaultConfig()
	wc.Title = c.Window.Title
	wc.Width = c.Window.Width
	wc.Height = c.Window.Height
	wc.SwapInterval = c.Window.SwapInterval
	wc.Visible = !c.Window.Hidden
	return wc
}

// Marshal renders the configuration as YAML, for writing a starting config file.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Overrides are command-line values applied on top of a loaded config. Zero
// sizes and negative frame counts leave the config untouched.
type Overrides struct {
	Width     int
	Height    int
	MaxFrames int
}

// Apply returns c with the overrides applied and validated.
func (o Overrides) Apply(c Config) (Config, error) {
	if o.Width > 0 {
		c.Window.Width = o.Width
	}
	if o.Height > 0 {
		c.Window.Height = o.Height
	}
	if o.MaxFrames >= 0 {
		c.MaxFrames = o.MaxFrames
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
