package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

type Config struct {
	// Observer is the default observer name for new observations.
	Observer string `json:"observer,omitempty"`

	// LogLevel is one of debug|info|warn|error (default info).
	LogLevel string `json:"logLevel,omitempty"`
	// LogFile receives logs while the TUI owns the terminal. Empty discards them.
	LogFile string `json:"logFile,omitempty"`

	// TUI holds optional user preferences for the interactive editor.
	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// Profile is the appearance profile id ("default", "neon").
	Profile string `json:"profile,omitempty"`
	// Glyphs selects the glyph set ("unicode", "ascii").
	Glyphs string `json:"glyphs,omitempty"`
}

func (c *Config) TUIProfile() string {
	if c == nil || c.TUI == nil {
		return ""
	}
	return strings.TrimSpace(c.TUI.Profile)
}

func (c *Config) TUIGlyphs() string {
	if c == nil || c.TUI == nil {
		return ""
	}
	return strings.TrimSpace(c.TUI.Glyphs)
}

func Dir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.geomag).
	if v := strings.TrimSpace(os.Getenv("GEOMAG_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve home dir")
	}
	return filepath.Join(home, ".geomag"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config file. A missing file yields the zero config.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, errors.Wrapf(err, "read %s", path)
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return &cfg, nil
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

func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create config dir")
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return errors.Wrap(atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600), "write config")
}

// Set assigns one dotted key. Known keys: observer, logLevel, logFile,
// tui.profile, tui.glyphs.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch strings.TrimSpace(key) {
	case "observer":
		c.Observer = value
	case "logLevel":
		if _, err := ParseLevel(value); err != nil {
			return err
		}
		c.LogLevel = value
	case "logFile":
		c.LogFile = value
	case "tui.profile":
		switch value {
		case "", "default", "neon":
		default:
			return errors.Errorf("unknown profile: %q (expected default|neon)", value)
		}
		c.tui().Profile = value
	case "tui.glyphs":
		switch value {
		case "", "unicode", "ascii":
		default:
			return errors.Errorf("unknown glyphs: %q (expected unicode|ascii)", value)
		}
		c.tui().Glyphs = value
	default:
		return errors.Errorf("unknown config key: %q", key)
	}
	return nil
}

func (c *Config) tui() *TUIConfig {
	if c.TUI == nil {
		c.TUI = &TUIConfig{}
	}
	return c.TUI
}
