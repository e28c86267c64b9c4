/*
Package config manages the TOML config for PokeShowdown Helper.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/chenwei791129/pokehelper/pkg/pokeshowdown"
)

// Config holds the entire config structure
type Config struct {
	AutoFill AutoFillConfig `toml:"autofill"`
	Showdown ShowdownConfig `toml:"showdown"`
	Pokedex  PokedexConfig  `toml:"pokedex"`
	UI       UIConfig       `toml:"ui"`
}

// AutoFillConfig has options for the name entry.
type AutoFillConfig struct {
	MaxShown       int    `toml:"max_shown"`
	KeepOnTypo     bool   `toml:"keep_on_typo"`
	Alphabetical   bool   `toml:"alphabetical"`
	AlwaysComplete bool   `toml:"always_complete"`
	CandidatesFile string `toml:"candidates_file"`
}

// ShowdownConfig has battle log polling options.
type ShowdownConfig struct {
	PollInterval Duration `toml:"poll_interval"`
	LoadDelay    Duration `toml:"load_delay"`
	EventBuffer  int      `toml:"event_buffer"`
}

// PokedexConfig has PokeAPI client options.
type PokedexConfig struct {
	BaseURL  string   `toml:"base_url"`
	Timeout  Duration `toml:"timeout"`
	CacheTTL Duration `toml:"cache_ttl"`
}

// UIConfig has window options.
type UIConfig struct {
	DarkTheme  bool    `toml:"dark_theme"`
	ShowStats  bool    `toml:"show_stats"`
	EntryWidth float32 `toml:"entry_width"`
}

// Duration is a time.Duration written as a Go duration string, e.g. "2s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		AutoFill: AutoFillConfig{
			MaxShown:       4,
			KeepOnTypo:     true,
			Alphabetical:   true,
			AlwaysComplete: false,
		},
		Showdown: ShowdownConfig{
			PollInterval: Duration{pokeshowdown.DefaultPollInterval},
			LoadDelay:    Duration{pokeshowdown.DefaultLoadDelay},
			EventBuffer:  pokeshowdown.DefaultEventBuffer,
		},
		Pokedex: PokedexConfig{
			BaseURL:  pokeshowdown.DefaultPokeAPIURL,
			Timeout:  Duration{10 * time.Second},
			CacheTTL: Duration{time.Hour},
		},
		UI: UIConfig{
			DarkTheme:  true,
			ShowStats:  true,
			EntryWidth: 200,
		},
	}
}

// Validate rejects values the app cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.AutoFill.MaxShown < 1 {
		errs = append(errs, fmt.Errorf("autofill.max_shown must be at least 1, got %d", c.AutoFill.MaxShown))
	}
	if c.Showdown.PollInterval.Duration <= 0 {
		errs = append(errs, errors.New("showdown.poll_interval must be positive"))
	}
	if c.Showdown.LoadDelay.Duration < 0 {
		errs = append(errs, errors.New("showdown.load_delay must not be negative"))
	}
	if c.Showdown.EventBuffer < 1 {
		errs = append(errs, fmt.Errorf("showdown.event_buffer must be at least 1, got %d", c.Showdown.EventBuffer))
	}
	if c.Pokedex.BaseURL == "" {
		errs = append(errs, errors.New("pokedex.base_url must be set"))
	}
	if c.Pokedex.Timeout.Duration <= 0 {
		errs = append(errs, errors.New("pokedex.timeout must be positive"))
	}
	if c.UI.EntryWidth <= 0 {
		errs = append(errs, errors.New("ui.entry_width must be positive"))
	}
	return errors.Join(errs...)
}

// Load reads path on top of the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath returns [UserConfigDir]/pokehelper/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config dir: %w", err)
	}
	return filepath.Join(dir, "pokehelper", "config.toml"), nil
}

// LoadWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path
// 3. Builtin defaults
//
// A custom path that does not exist or does not parse is an error, a
// missing default file is not.
func LoadWithPriority(customPath string, logger *zap.Logger) (*Config, string, error) {
	if customPath != "" {
		cfg, err := Load(customPath)
		if err != nil {
			return nil, "", err
		}
		logger.Debug("Loaded config", zap.String("path", customPath))
		return cfg, customPath, nil
	}

	defaultPath, err := DefaultPath()
	if err != nil {
		logger.Warn("Using built-in config defaults", zap.Error(err))
		return DefaultConfig(), "", nil
	}
	if _, err := os.Stat(defaultPath); errors.Is(err, os.ErrNotExist) {
		logger.Debug("No config file, using built-in defaults", zap.String("path", defaultPath))
		return DefaultConfig(), "", nil
	}

	cfg, err := Load(defaultPath)
	if err != nil {
		return nil, "", err
	}
	logger.Debug("Loaded config", zap.String("path", defaultPath))
	return cfg, defaultPath, nil
}

// Save writes cfg as TOML, creating the parent directory.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close config file: %w", err)
	}
	return nil
}
