// Package config loads settings from defaults, a TOML file, TABS_ environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nikbrunner/tabs/internal/model"
)

// Host backends.
const (
	BackendMemory = "memory"
	BackendBridge = "bridge"
	BackendCDP    = "cdp"
)

// Config holds application configuration.
type Config struct {
	Host     HostConfig     `mapstructure:"host"`
	Keyboard KeyboardConfig `mapstructure:"keyboard"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`
}

// HostConfig selects and configures the browser connection.
type HostConfig struct {
	Backend  string        `mapstructure:"backend"`
	Addr     string        `mapstructure:"addr"`
	CDPURL   string        `mapstructure:"cdp_url"`
	Snapshot string        `mapstructure:"snapshot"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// KeyboardConfig tunes key handling.
type KeyboardConfig struct {
	IgnoreModifiers bool `mapstructure:"ignore_modifiers"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	ListView string `mapstructure:"list_view"`
}

// LogConfig controls the log file.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// flagKeys maps command-line flags to config keys.
var flagKeys = map[string]string{
	"host":     "host.backend",
	"addr":     "host.addr",
	"cdp-url":  "host.cdp_url",
	"snapshot": "host.snapshot",
}

// Default returns the default configuration.
func Default() Config {
	logFile := ""
	if dir, err := os.UserCacheDir(); err == nil {
		logFile = filepath.Join(dir, "tabs", "tabs.log")
	}
	return Config{
		Host: HostConfig{
			Backend: BackendBridge,
			Addr:    "127.0.0.1:19191",
			CDPURL:  "http://127.0.0.1:9222",
			Timeout: 5 * time.Second,
		},
		UI:  UIConfig{ListView: model.ListViewList.String()},
		Log: LogConfig{File: logFile, Level: "info"},
	}
}

// DefaultConfigFilePath returns the default config path: ~/.config/tabs/config.toml
func DefaultConfigFilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "tabs", "config.toml"), nil
}

// Load reads the configuration. An explicit path must exist; otherwise the
// default file is used when present. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else if def, err := DefaultConfigFilePath(); err == nil {
		v.AddConfigPath(filepath.Dir(def))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TABS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
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

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("host.backend", c.Host.Backend)
	v.SetDefault("host.addr", c.Host.Addr)
	v.SetDefault("host.cdp_url", c.Host.CDPURL)
	v.SetDefault("host.snapshot", c.Host.Snapshot)
	v.SetDefault("host.timeout", c.Host.Timeout)
	v.SetDefault("keyboard.ignore_modifiers", c.Keyboard.IgnoreModifiers)
	v.SetDefault("ui.list_view", c.UI.ListView)
	v.SetDefault("log.file", c.Log.File)
	v.SetDefault("log.level", c.Log.Level)
}

// Validate rejects values the application cannot act on.
func (c Config) Validate() error {
	switch c.Host.Backend {
	case BackendMemory, BackendBridge, BackendCDP:
	default:
		return fmt.Errorf("invalid host.backend %q (want memory, bridge or cdp)", c.Host.Backend)
	}
	if c.Host.Timeout <= 0 {
		return fmt.Errorf("invalid host.timeout %s", c.Host.Timeout)
	}
	if _, err := model.ParseListView(c.UI.ListView); err != nil {
		return fmt.Errorf("invalid ui.list_view: %w", err)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return fmt.Errorf("invalid log.level: %w", err)
	}
	return nil
}

// ListView returns the configured initial layout.
func (c Config) ListView() model.ListView {
	v, _ := model.ParseListView(c.UI.ListView)
	return v
}

// SlogLevel parses Level ("debug", "info", "warn", "error").
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	err := lvl.UnmarshalText([]byte(l.Level))
	return lvl, err
}

// Save writes cfg as TOML, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("host.backend", cfg.Host.Backend)
	v.Set("host.addr", cfg.Host.Addr)
	v.Set("host.cdp_url", cfg.Host.CDPURL)
	v.Set("host.snapshot", cfg.Host.Snapshot)
	v.Set("host.timeout", cfg.Host.Timeout.String())
	v.Set("keyboard.ignore_modifiers", cfg.Keyboard.IgnoreModifiers)
	v.Set("ui.list_view", cfg.UI.ListView)
	v.Set("log.file", cfg.Log.File)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
