// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

// stencil-serve serves a site file as a content service. Composers
// connect over a Unix socket (CBOR) and, with --http, over a REST
// endpoint (JSON). Edits made to the file by other tools are picked up
// without a restart.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/stencilcms/composer/lib/config"
	"github.com/stencilcms/composer/lib/stencil"
	"github.com/stencilcms/composer/lib/version"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		configPath  string
		siteFile    string
		socketPath  string
		httpAddress string
		showVersion bool
	)

	flagSet := pflag.NewFlagSet("stencil-serve", pflag.ContinueOnError)
	flagSet.StringVarP(&configPath, "config", "c", "", "path to composer.yaml (default: $"+config.EnvironmentVariable+")")
	flagSet.StringVar(&siteFile, "site", "", "site file to serve (default: service.site_file)")
	flagSet.StringVar(&socketPath, "socket", "", "Unix socket to listen on (default: service.socket_path)")
	flagSet.StringVar(&httpAddress, "http", "", "also serve the REST API on this address, e.g. localhost:8080")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if showVersion {
		fmt.Println(version.Line("stencil-serve"))
		return nil
	}

	var cfg *config.Config
	var err error
	switch {
	case configPath != "":
		cfg, err = config.LoadFile(configPath)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return err
	}
	if siteFile != "" {
		cfg.Service.SiteFile = siteFile
	}
	if socketPath != "" {
		cfg.Service.SocketPath = socketPath
	}
	if cfg.Service.SiteFile == "" {
		return errors.New("--site is required")
	}
	if cfg.Service.SocketPath == "" {
		return errors.New("--socket is required")
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	service, err := stencil.OpenFile(cfg.Service.SiteFile, stencil.FileConfig{Logger: logger})
	if err != nil {
		return fmt.Errorf("opening site file: %w", err)
	}
	logger.Info("site file loaded",
		"path", service.Path(),
		"version", version.Info(),
	)

	if err := os.MkdirAll(filepath.Dir(cfg.Service.SocketPath), 0o755); err != nil {
		return fmt.Errorf("creating socket directory: %w", err)
	}

	socketServer := stencil.NewSocketServer(cfg.Service.SocketPath, logger)
	stencil.RegisterService(socketServer, service)

	if httpAddress != "" {
		httpServer := stencil.NewHTTPServer(httpAddress, stencil.NewHTTPHandler(service, logger), logger)
		go func() {
			if err := httpServer.Serve(ctx); err != nil {
				logger.Error("http server failed", "error", err)
				stop()
			}
		}()
	}

	changes, err := service.Watch(ctx)
	if err != nil {
		logger.Warn("site file watch unavailable, external edits need a restart", "error", err)
	} else {
		go func() {
			for range changes {
				logger.Debug("site file reloaded", "path", service.Path())
			}
		}()
	}

	err = socketServer.Serve(ctx)
	logger.Info("shutting down")
	return err
}
