// Package config handles application configuration loading and management.
package config

import "time"

// Config holds all application settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Audio   AudioConfig   `yaml:"audio"`
	Assets  AssetsConfig  `yaml:"assets"`
	Machine MachineConfig `yaml:"machine"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// AudioConfig holds feedback sound settings.
type AudioConfig struct {
	Volume float64 `yaml:"volume"` // 0.0 to 1.0
	Muted  bool    `yaml:"muted"`
}

// AssetsConfig locates the scene descriptor and sound clips.
type AssetsConfig struct {
	Roots []string          `yaml:"roots"` // searched last to first
	Scene string            `yaml:"scene"` // empty uses the built-in scene
	Cues  map[string]string `yaml:"cues"`  // cue name -> WAV path
}

// MachineConfig tunes the vending machine's timings.
type MachineConfig struct {
	FirstSegment    time.Duration `yaml:"first_segment"`
	CompletionDelay time.Duration `yaml:"completion_delay"`
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
			Title:      "Emoji Vending Machine",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Audio: AudioConfig{
			Volume: 0.8,
			Muted:  false,
		},
		Assets: AssetsConfig{
			Roots: []string{"assets"},
			Cues: map[string]string{
				"emoji":  "gen_emoji.wav",
				"check":  "gen_check.wav",
				"cancel": "gen_cancel.wav",
			},
		},
		Machine: MachineConfig{
			FirstSegment:    500 * time.Millisecond,
			CompletionDelay: 1500 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
