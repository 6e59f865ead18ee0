// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "composer.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Environment != Development {
		t.Errorf("expected environment=development, got %s", cfg.Environment)
	}
	if cfg.Service.Kind != ServiceSocket {
		t.Errorf("expected service.kind=socket, got %s", cfg.Service.Kind)
	}
	if !cfg.UI.AltScreen {
		t.Error("expected alt_screen=true")
	}
}

func TestLoad_RequiresStencilConfig(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when STENCIL_CONFIG not set, got nil")
	}
	if !strings.HasPrefix(err.Error(), "STENCIL_CONFIG environment variable not set") {
		t.Errorf("unexpected error message: %q", err)
	}
}

func TestLoad_WithStencilConfig(t *testing.T) {
	path := writeConfig(t, `
service:
  kind: http
  url: http://localhost:8080
`)
	t.Setenv(EnvironmentVariable, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Service.Kind != ServiceHTTP || cfg.Service.URL != "http://localhost:8080" {
		t.Errorf("service = %+v", cfg.Service)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "service: [unclosed")
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, `
environment: development
ui:
  dev_mode: false
  refresh_interval: 1m
development:
  ui:
    dev_mode: true
    refresh_interval: 10s
  log:
    level: debug
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if !cfg.UI.DevMode {
		t.Error("development override did not enable dev_mode")
	}
	if interval, _ := cfg.RefreshInterval(); interval != 10*time.Second {
		t.Errorf("refresh interval = %s, want 10s", interval)
	}
	if level, _ := cfg.LogLevel(); level != slog.LevelDebug {
		t.Errorf("log level = %v, want debug", level)
	}
	// AltScreen is untouched by a section that does not mention it.
	if !cfg.UI.AltScreen {
		t.Error("alt_screen lost its default")
	}
}

func TestProductionDefaults(t *testing.T) {
	path := writeConfig(t, `
environment: production
ui:
  dev_mode: true
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.UI.DevMode {
		t.Error("production without overrides should turn dev_mode off")
	}
}

func TestExpandVariables(t *testing.T) {
	t.Setenv("HOME", "/home/editor")
	t.Setenv("STENCIL_TEST_RUNTIME", "")
	path := writeConfig(t, `
service:
  kind: file
  site_file: ${HOME}/sites/main.json
  socket_path: ${STENCIL_TEST_RUNTIME:-/tmp}/stencil.sock
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Service.SiteFile != "/home/editor/sites/main.json" {
		t.Errorf("site_file = %s", cfg.Service.SiteFile)
	}
	if cfg.Service.SocketPath != "/tmp/stencil.sock" {
		t.Errorf("socket_path = %s", cfg.Service.SocketPath)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   []string
	}{
		{"defaults", func(*Config) {}, nil},
		{"bad environment", func(c *Config) { c.Environment = "staging" }, []string{"invalid environment"}},
		{"unknown kind", func(c *Config) { c.Service.Kind = "grpc" }, []string{"service.kind"}},
		{"http without url", func(c *Config) { c.Service.Kind = ServiceHTTP }, []string{"service.url"}},
		{"file without path", func(c *Config) {
			c.Service.Kind = ServiceFile
			c.Service.SiteFile = ""
		}, []string{"service.site_file"}},
		{"several problems", func(c *Config) {
			c.Service.Timeout = "soon"
			c.UI.RefreshInterval = "-1s"
			c.Log.Level = "chatty"
		}, []string{"service.timeout", "ui.refresh_interval", "log.level"}},
		{"zero timeout", func(c *Config) { c.Service.Timeout = "0s" }, []string{"must be positive"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.modify(cfg)
			err := cfg.Validate()
			if len(test.want) == 0 {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate succeeded, want errors mentioning %v", test.want)
			}
			for _, fragment := range test.want {
				if !strings.Contains(err.Error(), fragment) {
					t.Errorf("error %q does not mention %q", err, fragment)
				}
			}
		})
	}
}
