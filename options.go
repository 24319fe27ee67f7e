package gridastar

import (
	"log/slog"
	"math/rand/v2"
	"runtime"
)

// DefaultResolution is the cell edge length, in pixels, used when none is given.
const DefaultResolution = 30

// Options defines parameters for sessions and batch runs.
type Options struct {
	Resolution      float64
	Heuristic       Heuristic
	Source          *Coord
	Destination     *Coord
	Rand            *rand.Rand
	Logger          *slog.Logger
	NumberOfWorkers int
}

// Option is a function that modifies Options.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		Resolution:      DefaultResolution,
		Heuristic:       Manhattan,
		NumberOfWorkers: runtime.NumCPU(),
	}
}

func applyOptions(options []Option) Options {
	opts := defaultOptions()
	for _, option := range options {
		option(&opts)
	}
	if opts.Heuristic == nil {
		opts.Heuristic = Manhattan
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.NumberOfWorkers < 1 {
		opts.NumberOfWorkers = 1
	}
	return opts
}

// WithResolution sets the pixel size of a cell.
func WithResolution(resolution float64) Option {
	return func(options *Options) { options.Resolution = resolution }
}

// WithHeuristic replaces the Manhattan estimator.
func WithHeuristic(heuristic Heuristic) Option {
	return func(options *Options) { options.Heuristic = heuristic }
}

// WithSource pins the source cell instead of placing it at random.
func WithSource(c Coord) Option {
	return func(options *Options) { options.Source = &c }
}

// WithDestination pins the destination cell instead of placing it at random.
func WithDestination(c Coord) Option {
	return func(options *Options) { options.Destination = &c }
}

// WithRand sets the generator used for endpoint placement.
func WithRand(rng *rand.Rand) Option {
	return func(options *Options) { options.Rand = rng }
}

// WithLogger sets the logger lifecycle events are written to.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// WithWorkers specifies how many goroutines SolveAll runs sessions on.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}
