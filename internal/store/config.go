package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the user-level configuration file. Flags and environment
// variables override it.
type Config struct {
	BoardsURL  string `yaml:"boardsURL,omitempty"`
	Storage    string `yaml:"storage,omitempty"`
	RedisURL   string `yaml:"redisURL,omitempty"`
	LogLevel   string `yaml:"logLevel,omitempty"`
	LogJSON    bool   `yaml:"logJSON,omitempty"`
	FetchLimit int    `yaml:"fetchLimit,omitempty"`

	TUI *TUIConfig `yaml:"tui,omitempty"`
}

type TUIConfig struct {
	// ColorProfile forces a termenv profile ("ascii", "ansi", "ansi256", "truecolor").
	ColorProfile string `yaml:"colorProfile,omitempty"`
	// SyncOnStart fetches the remote when the TUI opens. Defaults to true.
	SyncOnStart *bool `yaml:"syncOnStart,omitempty"`
}

func (c *Config) SyncOnStart() bool {
	if c == nil || c.TUI == nil || c.TUI.SyncOnStart == nil {
		return true
	}
	return *c.TUI.SyncOnStart
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.taskboard).
	if v := strings.TrimSpace(os.Getenv("TASKBOARD_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".taskboard"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadConfig reads path, or the default config path when path is empty. A
// missing file is an empty config.
func LoadConfig(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	// Unique temp name so concurrent CLI and TUI writes never interleave.
	return atomicWriteFile(dir, "config.yaml.*.tmp", path, b, 0o600)
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
