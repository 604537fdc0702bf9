package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// EnvConfig names an environment variable holding a config path. It is
// consulted when --config is not given.
const EnvConfig = "EMOJI_VEND_CONFIG"

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

	applyFlags(cfg)
	return cfg, nil
}

// findConfigFile returns the first existing candidate: $EMOJI_VEND_CONFIG,
// ./config.yaml, then the OS config directory.
func findConfigFile() string {
	candidates := []string{
		os.Getenv(EnvConfig),
		"config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "EmojiVend")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "EmojiVend")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "emoji-vend")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "emoji-vend")
	}
}

// loadFromFile merges the YAML file at path over cfg. Unknown keys are an
// error so a misspelled section does not silently keep its defaults.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
