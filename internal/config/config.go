// Package config loads board and server settings from an HCL file.
//
// Expressions are evaluated with the display measurements in scope, so a file
// can size the grid from the viewport the way the browser canvas does:
//
//	grid {
//	  resolution = 30
//	  cols       = floor(viewport.width / 30)
//	  rows       = floor(viewport.height * 0.8 / 30)
//	}
package config

import (
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/pdrpinto/gridastar"
)

const (
	DefaultAddr = ":8080"
	DefaultTick = 16 * time.Millisecond
)

// Viewport is the drawable area, in pixels, the grid has to fit.
type Viewport struct {
	Width  float64
	Height float64
}

// DefaultViewport matches a typical laptop canvas.
var DefaultViewport = Viewport{Width: 1200, Height: 720}

// Config is the resolved, validated configuration.
type Config struct {
	Cols        int
	Rows        int
	Resolution  float64
	Source      *gridastar.Coord
	Destination *gridastar.Coord

	Scatter         bool
	ObstacleWeights []gridastar.Weighted
	Seed            *uint64

	Addr string
	Tick time.Duration
}

// SessionOptions translates the grid settings into session options.
func (c *Config) SessionOptions() []gridastar.Option {
	options := []gridastar.Option{gridastar.WithResolution(c.Resolution)}
	if c.Source != nil {
		options = append(options, gridastar.WithSource(*c.Source))
	}
	if c.Destination != nil {
		options = append(options, gridastar.WithDestination(*c.Destination))
	}
	return options
}

type hclFile struct {
	Grid      *hclGrid      `hcl:"grid,block"`
	Obstacles *hclObstacles `hcl:"obstacles,block"`
	Server    *hclServer    `hcl:"server,block"`
}

type hclGrid struct {
	Cols        int      `hcl:"cols,optional"`
	Rows        int      `hcl:"rows,optional"`
	Resolution  *float64 `hcl:"resolution,optional"`
	Source      []int    `hcl:"source,optional"`
	Destination []int    `hcl:"destination,optional"`
}

type hclObstacles struct {
	Scatter        bool   `hcl:"scatter,optional"`
	ObstacleWeight *int   `hcl:"obstacle_weight,optional"`
	FreeWeight     *int   `hcl:"free_weight,optional"`
	Seed           *int64 `hcl:"seed,optional"`
}

type hclServer struct {
	Addr string `hcl:"addr,optional"`
	Tick string `hcl:"tick,optional"`
}

// Default returns the configuration used when no file is given.
func Default(viewport Viewport) (*Config, error) {
	return resolve(&hclFile{}, viewport)
}

// Load parses and resolves the HCL file at path.
func Load(path string, viewport Viewport) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}
	return decode(file, path, viewport)
}

// Parse is Load for in-memory sources; filename only labels diagnostics.
func Parse(src []byte, filename string, viewport Viewport) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filename, diags)
	}
	return decode(file, filename, viewport)
}

func decode(file *hcl.File, filename string, viewport Viewport) (*Config, error) {
	var parsed hclFile
	if diags := gohcl.DecodeBody(file.Body, evalContext(viewport), &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %w", filename, diags)
	}
	cfg, err := resolve(&parsed, viewport)
	if err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filename, err)
	}
	return cfg, nil
}

func evalContext(viewport Viewport) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"viewport": cty.ObjectVal(map[string]cty.Value{
				"width":  cty.NumberFloatVal(viewport.Width),
				"height": cty.NumberFloatVal(viewport.Height),
			}),
		},
		Functions: map[string]function.Function{
			"floor": stdlib.FloorFunc,
			"ceil":  stdlib.CeilFunc,
			"min":   stdlib.MinFunc,
			"max":   stdlib.MaxFunc,
		},
	}
}

func resolve(parsed *hclFile, viewport Viewport) (*Config, error) {
	cfg := &Config{
		Resolution: gridastar.DefaultResolution,
		ObstacleWeights: []gridastar.Weighted{
			{Label: gridastar.LabelObstacle, Weight: gridastar.DefaultObstacleWeights[0].Weight},
			{Label: gridastar.LabelNonObstacle, Weight: gridastar.DefaultObstacleWeights[1].Weight},
		},
		Addr: DefaultAddr,
		Tick: DefaultTick,
	}

	if g := parsed.Grid; g != nil {
		if g.Resolution != nil {
			cfg.Resolution = *g.Resolution
		}
		cfg.Cols, cfg.Rows = g.Cols, g.Rows
		var err error
		if cfg.Source, err = coordFrom("source", g.Source); err != nil {
			return nil, err
		}
		if cfg.Destination, err = coordFrom("destination", g.Destination); err != nil {
			return nil, err
		}
	}
	if cfg.Resolution <= 0 {
		return nil, fmt.Errorf("grid.resolution must be positive, got %g", cfg.Resolution)
	}
	cols, rows := gridastar.FitViewport(viewport.Width, viewport.Height, cfg.Resolution)
	if cfg.Cols == 0 {
		cfg.Cols = cols
	}
	if cfg.Rows == 0 {
		cfg.Rows = rows
	}
	if cfg.Cols < 1 || cfg.Rows < 1 || cfg.Cols*cfg.Rows < 2 {
		return nil, fmt.Errorf("grid of %dx%d cannot hold a source and a destination", cfg.Cols, cfg.Rows)
	}

	if o := parsed.Obstacles; o != nil {
		cfg.Scatter = o.Scatter
		if o.ObstacleWeight != nil {
			cfg.ObstacleWeights[0].Weight = *o.ObstacleWeight
		}
		if o.FreeWeight != nil {
			cfg.ObstacleWeights[1].Weight = *o.FreeWeight
		}
		if o.Seed != nil {
			seed := uint64(*o.Seed)
			cfg.Seed = &seed
		}
	}
	for _, w := range cfg.ObstacleWeights {
		if w.Weight < 0 {
			return nil, fmt.Errorf("obstacles: weight for %q must not be negative", w.Label)
		}
	}
	if cfg.ObstacleWeights[0].Weight+cfg.ObstacleWeights[1].Weight == 0 {
		return nil, fmt.Errorf("obstacles: weights must not both be zero")
	}

	if s := parsed.Server; s != nil {
		if s.Addr != "" {
			cfg.Addr = s.Addr
		}
		if s.Tick != "" {
			tick, err := time.ParseDuration(s.Tick)
			if err != nil {
				return nil, fmt.Errorf("server.tick: %w", err)
			}
			if tick <= 0 {
				return nil, fmt.Errorf("server.tick must be positive, got %s", tick)
			}
			cfg.Tick = tick
		}
	}
	return cfg, nil
}

func coordFrom(name string, values []int) (*gridastar.Coord, error) {
	if values == nil {
		return nil, nil
	}
	if len(values) != 2 {
		return nil, fmt.Errorf("grid.%s must be [i, j], got %d values", name, len(values))
	}
	return &gridastar.Coord{I: values[0], J: values[1]}, nil
}
