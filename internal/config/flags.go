package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging and GL error checks")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagBackend    = flag.String("backend", "", "Window backend (sdl, glfw)")
	flagScene      = flag.String("scene", "", "Demo scene (cube, points)")
	flagShaders    = flag.String("shaders", "", "Load shaders from this directory instead of the embedded set")
	flagWatch      = flag.Bool("watch", false, "Reload shaders when files in the shader directory change")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Render.CheckErrors = true
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagBackend != "" {
		cfg.Window.Backend = *flagBackend
	}
	if *flagScene != "" {
		cfg.Demo.Scene = *flagScene
	}
	if *flagShaders != "" {
		cfg.Shaders.Dir = *flagShaders
	}
	if *flagWatch {
		cfg.Shaders.Watch = true
	}
}
