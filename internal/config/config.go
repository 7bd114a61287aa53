package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Route    RouteConfig
	Log      LogConfig
	Timers   TimersConfig
	Keys     []KeyOverride `mapstructure:"keys"`
}

// DatabaseConfig selects the store driver. Path is used by sqlite3, DSN by postgres.
type DatabaseConfig struct {
	Driver  string
	Path    string
	DSN     string
	Migrate bool
	Seed    bool
}

// RouteConfig points at the route-planning service.
type RouteConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LogConfig holds log sink settings.
type LogConfig struct {
	File  string
	Level string
}

// TimersConfig holds per-purpose tick rates and the tick counts that expire
// the login and delivery popups.
type TimersConfig struct {
	Resize        time.Duration `mapstructure:"resize"`
	Cube          time.Duration `mapstructure:"cube"`
	Login         time.Duration `mapstructure:"login"`
	Delivery      time.Duration `mapstructure:"delivery"`
	LoginTicks    uint8         `mapstructure:"login_ticks"`
	DeliveryTicks uint8         `mapstructure:"delivery_ticks"`
}

// KeyOverride rebinds one action within one key scope of the UI.
type KeyOverride struct {
	Scope  string
	Action string
	Keys   []string
}

const envPrefix = "RUSHCARGO"

// Load reads configuration from file and env. Env var overrides use prefix RUSHCARGO_.
func Load() (Config, error) {
	return LoadWith(New())
}

// New returns a viper instance with defaults, file lookup and env binding set up.
// Callers may bind CLI flags into it before handing it to LoadWith.
func New() *viper.Viper {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "rushcargo", "rushcargo.db"))
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.migrate", true)
	v.SetDefault("database.seed", false)
	v.SetDefault("route.base_url", "http://localhost:8080/graph/shortest")
	v.SetDefault("route.timeout", "5s")
	v.SetDefault("log.file", filepath.Join(home, ".local", "state", "rushcargo", "rushcargo.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("timers.resize", "100ms")
	v.SetDefault("timers.cube", "60ms")
	v.SetDefault("timers.login", "1s")
	v.SetDefault("timers.delivery", "700ms")
	v.SetDefault("timers.login_ticks", 2)
	v.SetDefault("timers.delivery_ticks", 3)

	v.SetConfigType("toml")

	if cfgPath := os.Getenv(envPrefix + "_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "rushcargo"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// LoadWith reads the config file if present and unmarshals v.
func LoadWith(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil && !configMissing(err) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects combinations the store cannot open.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite3":
		if strings.TrimSpace(c.Database.Path) == "" {
			return fmt.Errorf("database.path required for sqlite3")
		}
	case "postgres":
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database.dsn required for postgres")
		}
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}
	if strings.TrimSpace(c.Route.BaseURL) == "" {
		return fmt.Errorf("route.base_url required")
	}
	return nil
}

// Watch re-reads the config file whenever it changes and hands the fresh
// route URL to onRoute. It is a no-op when no config file was found.
func Watch(v *viper.Viper, onRoute func(baseURL string)) {
	if v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		onRoute(v.GetString("route.base_url"))
	})
	v.WatchConfig()
}

// Path returns the default config file location.
func Path() string {
	if p := os.Getenv(envPrefix + "_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "rushcargo", "config.toml")
}

// SaveRoute writes the route service URL into the config file v was loaded
// from, or Path when v found none. Only route.base_url changes; the rest of
// the file is kept and flag or env overrides never reach disk.
func SaveRoute(v *viper.Viper, baseURL string) error {
	path := v.ConfigFileUsed()
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	file := viper.New()
	file.SetConfigType("toml")
	file.SetConfigFile(path)
	if err := file.ReadInConfig(); err != nil && !configMissing(err) {
		return fmt.Errorf("read config: %w", err)
	}
	file.Set("route.base_url", baseURL)
	if err := file.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// configMissing reports whether err only means there is no file to read yet.
func configMissing(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}
