// Package config handles demo configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/multierr"

	"github.com/Faultbox/regl/pkg/regl"
)

// Window backends.
const (
	BackendSDL  = "sdl"
	BackendGLFW = "glfw"
)

// Demo scenes.
const (
	SceneCube   = "cube"
	ScenePoints = "points"
)

// Config holds all demo settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Render  RenderConfig  `yaml:"render"`
	Shaders ShaderConfig  `yaml:"shaders"`
	Demo    DemoConfig    `yaml:"demo"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	Backend    string `yaml:"backend"`   // sdl or glfw
	FPSLimit   int    `yaml:"fps_limit"` // 0 = unlimited
}

// RenderConfig holds engine settings.
type RenderConfig struct {
	ClearColor  [4]float32  `yaml:"clear_color"`
	DepthTest   bool        `yaml:"depth_test"`
	CheckErrors bool        `yaml:"check_errors"` // glGetError after every call
	TextureMin  regl.Filter `yaml:"texture_min"`
	TextureMag  regl.Filter `yaml:"texture_mag"`
	TextureWrap regl.Wrap   `yaml:"texture_wrap"`
}

// ShaderConfig selects where shader sources come from.
type ShaderConfig struct {
	Dir   string `yaml:"dir"`   // empty = embedded sources
	Watch bool   `yaml:"watch"` // reload on change, needs Dir
}

// DemoConfig holds sample scene settings.
type DemoConfig struct {
	Scene         string `yaml:"scene"`
	Texture       string `yaml:"texture"` // image file, empty = generated checkerboard
	Points        int    `yaml:"points"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:   "regl",
			Width:   1280,
			Height:  720,
			VSync:   true,
			Backend: BackendSDL,
		},
		Render: RenderConfig{
			ClearColor:  [4]float32{0.1, 0.1, 0.12, 1},
			DepthTest:   true,
			TextureMin:  regl.FilterLinearMipmapLinear,
			TextureMag:  regl.FilterLinear,
			TextureWrap: regl.WrapRepeat,
		},
		Demo: DemoConfig{
			Scene:         SceneCube,
			Points:        2000,
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var err error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("window: invalid size %dx%d", c.Window.Width, c.Window.Height))
	}
	if !slices.Contains([]string{BackendSDL, BackendGLFW}, c.Window.Backend) {
		err = multierr.Append(err, fmt.Errorf("window: unknown backend %q", c.Window.Backend))
	}
	if c.Window.FPSLimit < 0 {
		err = multierr.Append(err, fmt.Errorf("window: negative fps limit %d", c.Window.FPSLimit))
	}
	if c.Render.TextureMag != regl.FilterNearest && c.Render.TextureMag != regl.FilterLinear {
		err = multierr.Append(err, fmt.Errorf("render: texture_mag %q is not a magnification filter", c.Render.TextureMag))
	}
	if c.Shaders.Watch && c.Shaders.Dir == "" {
		err = multierr.Append(err, errors.New("shaders: watch needs a shader dir"))
	}
	if !slices.Contains([]string{SceneCube, ScenePoints}, c.Demo.Scene) {
		err = multierr.Append(err, fmt.Errorf("demo: unknown scene %q", c.Demo.Scene))
	}
	if c.Demo.Points < 0 {
		err = multierr.Append(err, fmt.Errorf("demo: negative point count %d", c.Demo.Points))
	}
	return err
}
