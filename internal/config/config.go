package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrInvalid is returned by Validate for unusable settings.
var ErrInvalid = errors.New("invalid config")

const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig selects the contact store.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Title         string        `mapstructure:"title"`
	ToastDuration time.Duration `mapstructure:"toast_duration"`
	AltScreen     bool          `mapstructure:"alt_screen"`
}

// LogConfig holds logging settings. File is only used by the TUI.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Load reads configuration from file and env. Env var overrides use prefix AGENDA_.
// path wins over the default location; AGENDA_CONFIG wins over both.
func Load(path string) (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "agenda", "agenda.db"))
	v.SetDefault("ui.title", "Contact Book")
	v.SetDefault("ui.toast_duration", "1500ms")
	v.SetDefault("ui.alt_screen", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(home, ".local", "state", "agenda", "agenda.log"))

	v.SetConfigType("toml")

	if env := os.Getenv("AGENDA_CONFIG"); env != "" {
		path = env
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "agenda"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("AGENDA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	return c, nil
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.Database.Path) == "" {
			return fmt.Errorf("%w: database.path is required for the sqlite driver", ErrInvalid)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: unknown database.driver %q", ErrInvalid, c.Database.Driver)
	}
	if c.UI.ToastDuration <= 0 {
		return fmt.Errorf("%w: ui.toast_duration must be positive", ErrInvalid)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log.level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

// Save writes the provided config to path, creating the directory if needed.
func Save(cfg Config, path string) error {
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "agenda", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.driver", cfg.Database.Driver)
	v.Set("database.path", cfg.Database.Path)
	v.Set("ui.title", cfg.UI.Title)
	v.Set("ui.toast_duration", cfg.UI.ToastDuration.String())
	v.Set("ui.alt_screen", cfg.UI.AltScreen)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
