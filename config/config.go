package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// LaunchpadConfig controls mirroring the lights onto a grid controller
type LaunchpadConfig struct {
	AutoConnect bool   `json:"autoConnect"`
	PortMatch   string `json:"portMatch,omitempty"` // substring of the MIDI port name
}

// Config holds startup preferences. Light settings (rows, pattern) are not
// stored here: every run starts from the defaults.
type Config struct {
	TickMillis           int             `json:"tickMillis,omitempty"`
	LayoutThrottleMillis int             `json:"layoutThrottleMillis,omitempty"`
	Palette              string          `json:"palette,omitempty"` // GPL file for the light colours
	Theme                string          `json:"theme,omitempty"`   // GPL file for the UI
	Launchpad            LaunchpadConfig `json:"launchpad"`
	Debug                bool            `json:"debug,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		TickMillis:           250,
		LayoutThrottleMillis: 100,
		Launchpad: LaunchpadConfig{
			AutoConnect: true,
			PortMatch:   "launchpad",
		},
	}
}

// TickInterval returns the animation period
func (c *Config) TickInterval() time.Duration {
	if c.TickMillis <= 0 {
		return 250 * time.Millisecond
	}
	return time.Duration(c.TickMillis) * time.Millisecond
}

// LayoutThrottle returns the minimum time between layout recomputations
func (c *Config) LayoutThrottle() time.Duration {
	if c.LayoutThrottleMillis <= 0 {
		return 100 * time.Millisecond
	}
	return time.Duration(c.LayoutThrottleMillis) * time.Millisecond
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-lights"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	// unset fields keep their defaults
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
