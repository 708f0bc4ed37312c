// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

// Package config loads overlay host configuration with Viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	weboverlay "github.com/YindSoft/ultralight-weboverlay"
	"github.com/YindSoft/ultralight-weboverlay/internal/logging"
)

// EnvPrefix prefixes environment overrides, e.g. WEBOVERLAY_OVERLAY_URL.
const EnvPrefix = "WEBOVERLAY"

// Config is the complete host configuration.
type Config struct {
	Overlay OverlayConfig `mapstructure:"overlay" yaml:"overlay"`
	Bridge  BridgeConfig  `mapstructure:"bridge" yaml:"bridge"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// OverlayConfig holds the initial page and placement of the overlay.
// A non-positive width or height means fullscreen; non-zero percentages
// take precedence over the fixed rectangle.
type OverlayConfig struct {
	URL             string  `mapstructure:"url" yaml:"url"`
	Channel         string  `mapstructure:"channel" yaml:"channel"`
	UserAgentSuffix string  `mapstructure:"user_agent_suffix" yaml:"user_agent_suffix"`
	Left            int     `mapstructure:"left" yaml:"left"`
	Top             int     `mapstructure:"top" yaml:"top"`
	Width           int     `mapstructure:"width" yaml:"width"`
	Height          int     `mapstructure:"height" yaml:"height"`
	WidthPercent    float64 `mapstructure:"width_percent" yaml:"width_percent"`
	HeightPercent   float64 `mapstructure:"height_percent" yaml:"height_percent"`
	DismissSize     float64 `mapstructure:"dismiss_size" yaml:"dismiss_size"`
	DismissMargin   float64 `mapstructure:"dismiss_margin" yaml:"dismiss_margin"`
}

// BridgeConfig locates the Ultralight bridge library.
type BridgeConfig struct {
	BaseDir string `mapstructure:"base_dir" yaml:"base_dir"`
	Debug   bool   `mapstructure:"debug" yaml:"debug"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	dismiss := weboverlay.DefaultDismissControl()
	return &Config{
		Overlay: OverlayConfig{
			URL:             "https://example.com",
			Channel:         weboverlay.DefaultChannel,
			UserAgentSuffix: weboverlay.DefaultSettings().UserAgentSuffix,
			DismissSize:     dismiss.Size,
			DismissMargin:   dismiss.Margin,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks values Viper cannot check by itself.
func (c *Config) Validate() error {
	var errs []error
	if c.Overlay.Channel == "" {
		errs = append(errs, errors.New("overlay.channel must not be empty"))
	}
	if c.Overlay.WidthPercent < 0 || c.Overlay.WidthPercent > 1 {
		errs = append(errs, fmt.Errorf("overlay.width_percent must be within [0,1], got %v", c.Overlay.WidthPercent))
	}
	if c.Overlay.HeightPercent < 0 || c.Overlay.HeightPercent > 1 {
		errs = append(errs, fmt.Errorf("overlay.height_percent must be within [0,1], got %v", c.Overlay.HeightPercent))
	}
	if c.Overlay.DismissSize <= 0 {
		errs = append(errs, fmt.Errorf("overlay.dismiss_size must be positive, got %v", c.Overlay.DismissSize))
	}
	if c.Overlay.DismissMargin < 0 {
		errs = append(errs, fmt.Errorf("overlay.dismiss_margin must not be negative, got %v", c.Overlay.DismissMargin))
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}

// Settings returns the browser capability set with the configured user
// agent suffix.
func (c *Config) Settings() weboverlay.Settings {
	s := weboverlay.DefaultSettings()
	s.UserAgentSuffix = c.Overlay.UserAgentSuffix
	return s
}

// Dismiss returns the dismiss control with the configured geometry.
func (c *Config) Dismiss() weboverlay.DismissControl {
	d := weboverlay.DefaultDismissControl()
	d.Size = c.Overlay.DismissSize
	d.Margin = c.Overlay.DismissMargin
	return d
}

// LoggingConfig returns the logging.Config matching the configuration.
func (c *Config) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	if lvl, err := logging.ParseLevel(c.Logging.Level); err == nil {
		cfg.Level = lvl
	}
	cfg.Format = c.Logging.Format
	return cfg
}

// Manager loads configuration from an optional file plus environment
// variables and reloads it when the file changes.
type Manager struct {
	path  string
	viper *viper.Viper

	mu  sync.RWMutex
	cfg *Config
}

// NewManager creates a manager. An empty path means defaults and
// environment only.
func NewManager(path string) *Manager {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, Defaults())
	if path != "" {
		v.SetConfigFile(path)
	}
	return &Manager{path: path, viper: v, cfg: Defaults()}
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("overlay.url", d.Overlay.URL)
	v.SetDefault("overlay.channel", d.Overlay.Channel)
	v.SetDefault("overlay.user_agent_suffix", d.Overlay.UserAgentSuffix)
	v.SetDefault("overlay.left", d.Overlay.Left)
	v.SetDefault("overlay.top", d.Overlay.Top)
	v.SetDefault("overlay.width", d.Overlay.Width)
	v.SetDefault("overlay.height", d.Overlay.Height)
	v.SetDefault("overlay.width_percent", d.Overlay.WidthPercent)
	v.SetDefault("overlay.height_percent", d.Overlay.HeightPercent)
	v.SetDefault("overlay.dismiss_size", d.Overlay.DismissSize)
	v.SetDefault("overlay.dismiss_margin", d.Overlay.DismissMargin)
	v.SetDefault("bridge.base_dir", d.Bridge.BaseDir)
	v.SetDefault("bridge.debug", d.Bridge.Debug)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

// Load reads the file (if any) and the environment, validates the result
// and makes it current.
func (m *Manager) Load() error {
	if m.path != "" {
		if err := m.viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", m.path, err)
		}
	}
	cfg, err := m.decode()
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.cfg = cfg
	m.mu.Unlock()
	return nil
}

func (m *Manager) decode() (*Config, error) {
	cfg := &Config{}
	if err := m.viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// Watch calls fn with each valid configuration read after the file
// changes. Invalid edits are reported to onErr and ignored. It does nothing
// without a file.
func (m *Manager) Watch(fn func(*Config), onErr func(error)) {
	if m.path == "" {
		return
	}
	m.viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		m.reload(fn, onErr)
	})
	m.viper.WatchConfig()
}

// reload decodes what Viper last read and makes it current.
func (m *Manager) reload(fn func(*Config), onErr func(error)) {
	cfg, err := m.decode()
	if err != nil {
		if onErr != nil {
			onErr(err)
		}
		return
	}
	m.mu.Lock()
	m.cfg = cfg
	m.mu.Unlock()
	if fn != nil {
		fn(cfg)
	}
}

// FollowURL returns a Watch callback that calls load only when overlay.url
// differs from the last URL it saw, starting from initial. Edits to other
// keys never reach load.
func FollowURL(initial string, load func(url string)) func(*Config) {
	var (
		mu   sync.Mutex
		last = initial
	)
	return func(cfg *Config) {
		mu.Lock()
		url := cfg.Overlay.URL
		changed := url != last
		last = url
		mu.Unlock()
		if changed {
			load(url)
		}
	}
}

// WriteDefault writes the built-in configuration as YAML to path, creating
// parent directories. It refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	}
	data, err := yaml.Marshal(Defaults())
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
