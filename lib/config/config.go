// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "STENCIL_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local editing against a site file or a
	// service on the same machine.
	Development Environment = "development"
	// Production is for editors working against a shared service.
	Production Environment = "production"
)

// ServiceKind selects the content service backend.
type ServiceKind string

const (
	// ServiceSocket talks CBOR to a stencil-serve Unix socket.
	ServiceSocket ServiceKind = "socket"
	// ServiceHTTP talks JSON to a REST endpoint.
	ServiceHTTP ServiceKind = "http"
	// ServiceFile edits a site file in process.
	ServiceFile ServiceKind = "file"
)

// Config is the composer configuration.
type Config struct {
	// Environment identifies the deployment type.
	Environment Environment `yaml:"environment"`

	Service ServiceConfig `yaml:"service"`
	UI      UIConfig      `yaml:"ui"`
	Log     LogConfig     `yaml:"log"`

	// Per-environment overrides, applied after the base config is
	// loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ServiceConfig configures the connection to the content service.
type ServiceConfig struct {
	// Kind is socket, http, or file. Default: socket.
	Kind ServiceKind `yaml:"kind"`

	// SocketPath is the stencil-serve socket, used by kind socket.
	SocketPath string `yaml:"socket_path"`

	// URL is the REST base URL, used by kind http.
	URL string `yaml:"url"`

	// SiteFile is the site file, used by kind file and by
	// stencil-serve.
	SiteFile string `yaml:"site_file"`

	// Timeout bounds each service call. Default: 30s
	Timeout string `yaml:"timeout"`
}

// UIConfig configures the terminal UI.
type UIConfig struct {
	// DevMode starts the session with dev-mode entities visible.
	DevMode bool `yaml:"dev_mode"`

	// Locale is the initial locale filter. Empty shows every article.
	Locale string `yaml:"locale"`

	// AltScreen runs the UI in the terminal's alternate screen.
	AltScreen bool `yaml:"alt_screen"`

	// RefreshInterval is how often the site is reloaded in the
	// background. "0s" disables the refresh loop.
	RefreshInterval string `yaml:"refresh_interval"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is debug, info, warn, or error. Default: info
	Level string `yaml:"level"`

	// File receives log output. Empty means stderr, except in the TUI,
	// where records are shown in the status bar instead.
	File string `yaml:"file"`
}

// ConfigOverrides contains fields that can be overridden per
// environment. Empty strings and nil pointers leave the base value.
type ConfigOverrides struct {
	Service *ServiceConfig `yaml:"service,omitempty"`
	UI      *UIOverrides   `yaml:"ui,omitempty"`
	Log     *LogConfig     `yaml:"log,omitempty"`
}

// UIOverrides is UIConfig with optional booleans.
type UIOverrides struct {
	DevMode         *bool  `yaml:"dev_mode,omitempty"`
	Locale          string `yaml:"locale,omitempty"`
	AltScreen       *bool  `yaml:"alt_screen,omitempty"`
	RefreshInterval string `yaml:"refresh_interval,omitempty"`
}

// Default returns the default configuration, the base the config file
// is merged into. Its paths are already expanded.
func Default() *Config {
	cfg := &Config{
		Environment: Development,
		Service: ServiceConfig{
			Kind:       ServiceSocket,
			SocketPath: "${XDG_RUNTIME_DIR:-/run}/stencil/stencil.sock",
			SiteFile:   "site.json",
			Timeout:    "30s",
		},
		UI: UIConfig{
			AltScreen:       true,
			RefreshInterval: "1m",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
	cfg.expandVariables()
	return cfg
}

// Load loads configuration from the file named by STENCIL_CONFIG.
// There is no discovery: if the variable is unset, Load fails.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your composer.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from path, applies the overrides for
// the configured environment, and expands ${VAR} references in paths.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()
	return cfg, nil
}

// applyEnvironmentOverrides applies the section matching Environment.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Production:
		overrides = c.Production
		// Production hides dev-mode entities unless asked otherwise.
		if overrides == nil {
			off := false
			overrides = &ConfigOverrides{UI: &UIOverrides{DevMode: &off}}
		}
	}
	if overrides == nil {
		return
	}

	if service := overrides.Service; service != nil {
		override(&c.Service.Kind, service.Kind)
		override(&c.Service.SocketPath, service.SocketPath)
		override(&c.Service.URL, service.URL)
		override(&c.Service.SiteFile, service.SiteFile)
		override(&c.Service.Timeout, service.Timeout)
	}
	if ui := overrides.UI; ui != nil {
		if ui.DevMode != nil {
			c.UI.DevMode = *ui.DevMode
		}
		if ui.AltScreen != nil {
			c.UI.AltScreen = *ui.AltScreen
		}
		override(&c.UI.Locale, ui.Locale)
		override(&c.UI.RefreshInterval, ui.RefreshInterval)
	}
	if log := overrides.Log; log != nil {
		override(&c.Log.Level, log.Level)
		override(&c.Log.File, log.File)
	}
}

func override[T ~string](target *T, value T) {
	if value != "" {
		*target = value
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} in path fields.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Service.SocketPath = expandVars(c.Service.SocketPath, vars)
	c.Service.SiteFile = expandVars(c.Service.SiteFile, vars)
	c.Service.URL = expandVars(c.Service.URL, vars)
	c.Log.File = expandVars(c.Log.File, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns. Names are
// looked up in vars first, then the process environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name, defaultValue := parts[1], parts[2]
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// ServiceTimeout returns the parsed service timeout.
func (c *Config) ServiceTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Service.Timeout)
}

// RefreshInterval returns the parsed refresh interval. Zero disables
// background refresh.
func (c *Config) RefreshInterval() (time.Duration, error) {
	return time.ParseDuration(c.UI.RefreshInterval)
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.Log.Level))
	return level, err
}

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	kinds := []ServiceKind{ServiceSocket, ServiceHTTP, ServiceFile}
	if !slices.Contains(kinds, c.Service.Kind) {
		errs = append(errs, fmt.Errorf("service.kind must be one of: %v", kinds))
	}
	switch c.Service.Kind {
	case ServiceSocket:
		if c.Service.SocketPath == "" {
			errs = append(errs, errors.New("service.socket_path is required for kind socket"))
		}
	case ServiceHTTP:
		if c.Service.URL == "" {
			errs = append(errs, errors.New("service.url is required for kind http"))
		}
	case ServiceFile:
		if c.Service.SiteFile == "" {
			errs = append(errs, errors.New("service.site_file is required for kind file"))
		}
	}

	if timeout, err := c.ServiceTimeout(); err != nil {
		errs = append(errs, fmt.Errorf("service.timeout: %w", err))
	} else if timeout <= 0 {
		errs = append(errs, fmt.Errorf("service.timeout must be positive, got %s", timeout))
	}
	if interval, err := c.RefreshInterval(); err != nil {
		errs = append(errs, fmt.Errorf("ui.refresh_interval: %w", err))
	} else if interval < 0 {
		errs = append(errs, fmt.Errorf("ui.refresh_interval must not be negative, got %s", interval))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	return errors.Join(errs...)
}
