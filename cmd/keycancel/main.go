// Package main is an interactive demo for the key-cancellation engine: it
// simulates matrix press/release events from terminal input, runs them
// through the filter, and shows the resulting host report live.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"

	"github.com/dshills/keycancel/internal/cancel"
	"github.com/dshills/keycancel/internal/config"
	"github.com/dshills/keycancel/internal/hook"
	"github.com/dshills/keycancel/internal/input/key"
	"github.com/dshills/keycancel/internal/report"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	logger, closeLog, err := newLogger(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	store := config.NewFile(opts.ConfigPath)

	rules, err := store.Rules()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if len(rules) == 0 {
		// No authored rules: opposing WASD pairs, the canonical use case.
		rules = append(cancel.Opposing(key.KeyW, key.KeyS), cancel.Opposing(key.KeyA, key.KeyD)...)
	}

	engineOpts := []cancel.Option{
		cancel.WithFlagStore(store),
		cancel.WithLogger(logger),
	}
	if opts.VetoScript != "" {
		veto, err := hook.LoadLua(opts.VetoScript, hook.WithLogger(logger))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer veto.Close()
		engineOpts = append(engineOpts, cancel.WithAllowFunc(veto.Allow))
	}

	rep := report.New()
	engine := cancel.New(rules, rep, engineOpts...)

	sim := newSimulator(engine, rep, rules, logger)
	if err := sim.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// Options holds the parsed command line.
type Options struct {
	ConfigPath string
	VetoScript string
	LogPath    string
	LogLevel   string
}

func parseFlags() Options {
	var opts Options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", config.DefaultPath(), "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", config.DefaultPath(), "Path to configuration file (shorthand)")
	flag.StringVar(&opts.VetoScript, "veto", "", "Path to a Lua veto script defining allow(key, pressed)")
	flag.StringVar(&opts.LogPath, "log", "", "Write logs to this file (default: discard)")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "keycancel - key cancellation demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: keycancel [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys inside the demo:\n")
		fmt.Fprintf(os.Stderr, "  letters/arrows   toggle the key held/released\n")
		fmt.Fprintf(os.Stderr, "  F1               toggle cancellation\n")
		fmt.Fprintf(os.Stderr, "  F2               toggle recovery\n")
		fmt.Fprintf(os.Stderr, "  F5               toggle turbo click\n")
		fmt.Fprintf(os.Stderr, "  Esc              quit\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("keycancel %s (%s)\n", version, commit)
		os.Exit(0)
	}

	return opts
}

// newLogger builds a tint-backed slog logger. Without a log file everything
// is discarded; the terminal belongs to the UI.
func newLogger(opts Options) (*slog.Logger, func(), error) {
	if opts.LogPath == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	f, err := os.OpenFile(opts.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	var level slog.Level
	switch opts.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		f.Close()
		return nil, nil, fmt.Errorf("unknown log level %q", opts.LogLevel)
	}

	logger := slog.New(tint.NewHandler(f, &tint.Options{
		Level:   level,
		NoColor: !isTerminal(f),
	}))
	return logger, func() { f.Close() }, nil
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
