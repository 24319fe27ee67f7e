package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/internal/config"
)

// ExitError is an error that carries the process exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Options holds the parsed flags.
type Options struct {
	ConfigPath string
	Viewport   config.Viewport
	LogFormat  string
	LogLevel   string

	// Headless runner.
	Runs    int
	Workers int
	PNG     string
	Watch   bool

	cols       int
	rows       int
	resolution float64
	seed       uint64
	scatter    bool
	tick       time.Duration
	addr       string
	set        map[string]bool
}

// Parse processes args. It returns the options, whether the program should
// exit cleanly (help was requested), or an *ExitError.
func Parse(name string, args []string, output io.Writer) (*Options, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprintf(output, `
%s - incremental A* on a grid.

Usage:
  %s [options]

Options:
`, name, name)
		flagSet.PrintDefaults()
	}

	opts := &Options{set: make(map[string]bool)}
	flagSet.StringVar(&opts.ConfigPath, "config", "", "Path to an HCL config file.")
	flagSet.Float64Var(&opts.Viewport.Width, "width", config.DefaultViewport.Width, "Viewport width in pixels.")
	flagSet.Float64Var(&opts.Viewport.Height, "height", config.DefaultViewport.Height, "Viewport height in pixels.")
	flagSet.StringVar(&opts.LogFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flagSet.StringVar(&opts.LogLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flagSet.IntVar(&opts.Runs, "runs", 1, "Number of boards to solve.")
	flagSet.IntVar(&opts.Workers, "workers", 0, "Concurrent solvers for -runs. 0 uses every CPU.")
	flagSet.BoolVar(&opts.Watch, "watch", false, "Step a single board once per tick instead of solving at full speed.")
	flagSet.StringVar(&opts.PNG, "png", "", "Write the final frame of the first board to this PNG file.")
	flagSet.IntVar(&opts.cols, "cols", 0, "Grid columns. Overrides the config file.")
	flagSet.IntVar(&opts.rows, "rows", 0, "Grid rows. Overrides the config file.")
	flagSet.Float64Var(&opts.resolution, "resolution", gridastar.DefaultResolution, "Cell size in pixels. Overrides the config file.")
	flagSet.Uint64Var(&opts.seed, "seed", 0, "Random seed. Overrides the config file.")
	flagSet.BoolVar(&opts.scatter, "scatter", false, "Scatter random obstacles. Overrides the config file.")
	flagSet.DurationVar(&opts.tick, "tick", config.DefaultTick, "Delay between steps. Overrides the config file.")
	flagSet.StringVar(&opts.addr, "addr", config.DefaultAddr, "Listen address. Overrides the config file.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if flagSet.NArg() > 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected argument %q", flagSet.Arg(0))}
	}
	flagSet.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	opts.LogFormat = strings.ToLower(opts.LogFormat)
	if opts.LogFormat != "text" && opts.LogFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	opts.LogLevel = strings.ToLower(opts.LogLevel)
	switch opts.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	if opts.Runs < 1 {
		return nil, false, &ExitError{Code: 2, Message: "invalid runs: must be at least 1"}
	}
	if opts.Watch && opts.Runs > 1 {
		return nil, false, &ExitError{Code: 2, Message: "invalid watch: only a single board can be watched, drop -runs"}
	}
	if opts.Workers < 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid workers: must not be negative"}
	}

	slog.Debug("CLI parser finished successfully.", "set", opts.set)
	return opts, false, nil
}

// Config loads the config file, or the defaults when none was given, and
// applies the explicitly set flags on top.
func (o *Options) Config() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.ConfigPath != "" {
		cfg, err = config.Load(o.ConfigPath, o.Viewport)
	} else {
		cfg, err = config.Default(o.Viewport)
	}
	if err != nil {
		return nil, &ExitError{Code: 1, Message: err.Error()}
	}

	if o.set["resolution"] {
		if o.resolution <= 0 {
			return nil, &ExitError{Code: 2, Message: "invalid resolution: must be positive"}
		}
		cfg.Resolution = o.resolution
		// a new cell size refits the grid to the viewport
		cfg.Cols, cfg.Rows = gridastar.FitViewport(o.Viewport.Width, o.Viewport.Height, cfg.Resolution)
	}
	if o.set["cols"] {
		cfg.Cols = o.cols
	}
	if o.set["rows"] {
		cfg.Rows = o.rows
	}
	if cfg.Cols < 1 || cfg.Rows < 1 || cfg.Cols*cfg.Rows < 2 {
		return nil, &ExitError{Code: 2, Message: fmt.Sprintf("invalid grid %dx%d: need room for a source and a destination", cfg.Cols, cfg.Rows)}
	}
	if o.set["seed"] {
		seed := o.seed
		cfg.Seed = &seed
	}
	if o.set["scatter"] {
		cfg.Scatter = o.scatter
	}
	if o.set["tick"] {
		if o.tick <= 0 {
			return nil, &ExitError{Code: 2, Message: "invalid tick: must be positive"}
		}
		cfg.Tick = o.tick
	}
	if o.set["addr"] {
		cfg.Addr = o.addr
	}
	return cfg, nil
}
