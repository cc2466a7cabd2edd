package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvConfig names an environment variable holding a config path. The
// -config flag wins over it.
const EnvConfig = "REGL_CONFIG"

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	path := ConfigPath()
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	// Flags override the file
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing candidate: $REGL_CONFIG,
// regl.yaml or config.yaml in the working directory, then config.yaml in
// ConfigDir.
func findConfigFile() string {
	var candidates []string
	if env := os.Getenv(EnvConfig); env != "" {
		candidates = append(candidates, env)
	}
	candidates = append(candidates,
		"regl.yaml",
		"config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	)

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user config directory for the demo.
func ConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "regl")
}

// loadFromFile decodes path over cfg, keeping values the file leaves out.
// Unknown keys are rejected.
func loadFromFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
