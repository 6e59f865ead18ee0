// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

// stencil-composer is the terminal editor for a Stencil site. It loads
// the site graph from a content service, shows the article tree with
// links, workflows, releases and search, and edits page content in
// tabs.
//
// The content service is one of:
//
// socket (default): a stencil-serve process on a Unix socket.
//
// http: a REST endpoint serving the same operations as JSON.
//
// file: a site file edited in process. Changes made to the file by
// other tools are picked up through inotify.
//
// When stdout is not a terminal, or with --dump, the composer loads the
// site once and prints the article tree instead of starting the UI.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/stencilcms/composer/lib/clock"
	"github.com/stencilcms/composer/lib/composer"
	"github.com/stencilcms/composer/lib/composerui"
	"github.com/stencilcms/composer/lib/config"
	"github.com/stencilcms/composer/lib/schema/site"
	"github.com/stencilcms/composer/lib/stencil"
	"github.com/stencilcms/composer/lib/version"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// flags holds command-line overrides. Empty values leave the config
// file's setting in place.
type flags struct {
	configPath string
	kind       string
	socketPath string
	url        string
	siteFile   string
	locale     string
	logFile    string
	devMode    bool
	dump       bool
	noAlt      bool
}

func parseFlags(args []string) (*flags, bool, error) {
	var options flags
	var showVersion bool

	flagSet := pflag.NewFlagSet("stencil-composer", pflag.ContinueOnError)
	flagSet.StringVarP(&options.configPath, "config", "c", "", "path to composer.yaml (default: $"+config.EnvironmentVariable+")")
	flagSet.StringVar(&options.kind, "kind", "", "content service kind: socket, http, or file")
	flagSet.StringVar(&options.socketPath, "socket", "", "stencil-serve socket path (implies --kind socket)")
	flagSet.StringVar(&options.url, "url", "", "REST base URL (implies --kind http)")
	flagSet.StringVar(&options.siteFile, "site", "", "site file to edit in process (implies --kind file)")
	flagSet.StringVar(&options.locale, "locale", "", "initial locale filter")
	flagSet.StringVar(&options.logFile, "log-file", "", "write JSON log records to this file")
	flagSet.BoolVar(&options.devMode, "dev", false, "show dev-mode links and workflows")
	flagSet.BoolVar(&options.dump, "dump", false, "print the article tree and exit")
	flagSet.BoolVar(&options.noAlt, "no-alt-screen", false, "run the UI in the main screen buffer")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")

	if err := flagSet.Parse(args); err != nil {
		return nil, false, err
	}
	if extra := flagSet.Args(); len(extra) > 0 {
		return nil, false, fmt.Errorf("unexpected argument: %s", extra[0])
	}
	return &options, showVersion, nil
}

// loadConfig reads the config named by --config or STENCIL_CONFIG,
// falling back to the defaults when neither is set, then layers the
// flags on top.
func loadConfig(options *flags) (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case options.configPath != "":
		cfg, err = config.LoadFile(options.configPath)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, err
	}

	switch {
	case options.siteFile != "":
		cfg.Service.Kind = config.ServiceFile
		cfg.Service.SiteFile = options.siteFile
	case options.url != "":
		cfg.Service.Kind = config.ServiceHTTP
		cfg.Service.URL = options.url
	case options.socketPath != "":
		cfg.Service.Kind = config.ServiceSocket
		cfg.Service.SocketPath = options.socketPath
	}
	if options.kind != "" {
		cfg.Service.Kind = config.ServiceKind(options.kind)
	}
	if options.locale != "" {
		cfg.UI.Locale = options.locale
	}
	if options.devMode {
		cfg.UI.DevMode = true
	}
	if options.noAlt {
		cfg.UI.AltScreen = false
	}
	if options.logFile != "" {
		cfg.Log.File = options.logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func run(args []string) error {
	options, showVersion, err := parseFlags(args)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	cfg, err := loadConfig(options)
	if err != nil {
		if showVersion {
			fmt.Println(version.Line("stencil-composer"))
			return nil
		}
		return err
	}
	level, _ := cfg.LogLevel()
	timeout, _ := cfg.ServiceTimeout()
	interval, _ := cfg.RefreshInterval()

	if showVersion {
		return printVersions(cfg, timeout)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	interactive := !options.dump && term.IsTerminal(int(os.Stdout.Fd()))

	var tuiHandler *composerui.TUILogHandler
	var handlers []slog.Handler
	if interactive {
		tuiHandler = composerui.NewTUILogHandler(max(level, slog.LevelWarn))
		handlers = append(handlers, tuiHandler)
	} else if cfg.Log.File == "" {
		handlers = append(handlers, newStderrHandler(level))
	}
	if cfg.Log.File != "" {
		fileHandler, closeFile, err := openFileLogHandler(cfg.Log.File, level)
		if err != nil {
			return fmt.Errorf("opening log file %s: %w", cfg.Log.File, err)
		}
		defer closeFile()
		handlers = append(handlers, fileHandler)
	}
	logger := slog.New(fanoutHandler(handlers))
	slog.SetDefault(logger)

	service, watch, err := openService(cfg, timeout, logger)
	if err != nil {
		return err
	}

	store := composer.NewStore(nil)
	actions := composer.NewActions(store, service, logger)
	actions.HandleDevMode(cfg.UI.DevMode)
	actions.HandleLocaleFilter(site.LocaleID(cfg.UI.Locale))

	if !interactive {
		loadContext, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		if err := actions.HandleLoad(loadContext); err != nil {
			return err
		}
		return composerui.RenderTree(os.Stdout, store.Session(), termenv.Ascii)
	}

	if watch != nil {
		changes, err := watch(ctx)
		if err != nil {
			logger.Warn("watching site file", "error", err)
		} else {
			go actions.ReloadOn(ctx, changes)
		}
	}
	if interval > 0 {
		go actions.RefreshLoop(ctx, clock.Real(), interval)
	}

	model := composerui.NewModel(actions, composerui.Options{Context: ctx, Timeout: timeout})
	programOptions := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UI.AltScreen {
		programOptions = append(programOptions, tea.WithAltScreen())
	}
	program := tea.NewProgram(model, programOptions...)
	tuiHandler.SetProgram(program)

	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// openService builds the content service the config selects. For file
// services it also returns the watch function that reports external
// edits.
func openService(cfg *config.Config, timeout time.Duration, logger *slog.Logger) (stencil.Service, func(context.Context) (<-chan struct{}, error), error) {
	switch cfg.Service.Kind {
	case config.ServiceHTTP:
		return stencil.NewHTTPClient(cfg.Service.URL, timeout), nil, nil
	case config.ServiceFile:
		service, err := stencil.OpenFile(cfg.Service.SiteFile, stencil.FileConfig{Logger: logger})
		if err != nil {
			return nil, nil, fmt.Errorf("opening site file %s: %w", cfg.Service.SiteFile, err)
		}
		return service, service.Watch, nil
	default:
		return stencil.NewSocketClient(cfg.Service.SocketPath), nil, nil
	}
}

// printVersions prints the composer's version and, when the configured
// service answers, the service's.
func printVersions(cfg *config.Config, timeout time.Duration) error {
	fmt.Println(version.Line("stencil-composer"))

	service, _, err := openService(cfg, timeout, slog.New(slog.DiscardHandler))
	if err != nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), min(timeout, 2*time.Second))
	defer cancel()
	info, err := service.Version(ctx)
	if err != nil {
		fmt.Printf("service: unavailable (%v)\n", err)
		return nil
	}
	fmt.Printf("service: %s (built %s)\n", info.Version, info.Built)
	return nil
}
