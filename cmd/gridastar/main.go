// Command gridastar solves boards without a browser. It prints one line per
// board and can save the first board's final frame as a PNG.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/internal/cli"
	"github.com/pdrpinto/gridastar/internal/config"
	"github.com/pdrpinto/gridastar/internal/ctxlog"
	"github.com/pdrpinto/gridastar/internal/render"
)

func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the program so tests can drive it with plain writers.
func run(ctx context.Context, outW, logW io.Writer, args []string) error {
	opts, shouldExit, err := cli.Parse("gridastar", args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logger := ctxlog.New(logW, opts.LogFormat, opts.LogLevel)
	ctx = ctxlog.WithLogger(ctx, logger)

	cfg, err := opts.Config()
	if err != nil {
		return err
	}

	sessions := make([]*gridastar.Session, opts.Runs)
	for i := range sessions {
		if sessions[i], err = newBoard(cfg, i, logger); err != nil {
			return err
		}
	}

	var outcomes []gridastar.SolveOutcome
	if opts.Watch {
		result, err := watch(ctx, sessions[0], cfg.Tick)
		outcomes = []gridastar.SolveOutcome{{Index: 0, Result: result, Err: err}}
	} else {
		batch := []gridastar.Option{gridastar.WithLogger(logger)}
		if opts.Workers > 0 {
			batch = append(batch, gridastar.WithWorkers(opts.Workers))
		}
		outcomes = gridastar.SolveAll(ctx, sessions, batch...)
	}

	solved := 0
	for _, outcome := range outcomes {
		session := sessions[outcome.Index]
		switch {
		case outcome.Err == nil:
			solved++
			fmt.Fprintf(outW, "board %d: %v -> %v cost=%g edges=%d expanded=%d steps=%d\n",
				outcome.Index, session.Source(), session.Destination(),
				outcome.Result.TotalCost, outcome.Result.Path.Len(), outcome.Result.ExpandedNodes, outcome.Result.Steps)
		case errors.Is(outcome.Err, gridastar.ErrNoPath):
			fmt.Fprintf(outW, "board %d: %v -> %v %s expanded=%d steps=%d\n",
				outcome.Index, session.Source(), session.Destination(),
				gridastar.NoSolutionNotice, outcome.Result.ExpandedNodes, outcome.Result.Steps)
		default:
			return fmt.Errorf("board %d: %w", outcome.Index, outcome.Err)
		}
	}
	logger.Info("Run complete", "boards", len(outcomes), "solved", solved)

	if opts.PNG != "" {
		frame, err := sessions[0].Frame()
		if err != nil {
			return fmt.Errorf("failed to snapshot board 0: %w", err)
		}
		if err := render.New(render.DefaultPalette).SavePNG(opts.PNG, frame); err != nil {
			return fmt.Errorf("failed to write %s: %w", opts.PNG, err)
		}
		logger.Info("Frame written", "path", opts.PNG)
	}
	return nil
}

func newBoard(cfg *config.Config, index int, logger *slog.Logger) (*gridastar.Session, error) {
	seed := rand.Uint64()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	rng := rand.New(rand.NewPCG(seed, uint64(index)))

	options := append(cfg.SessionOptions(),
		gridastar.WithRand(rng),
		gridastar.WithLogger(logger.With("board", index)),
	)
	session, err := gridastar.NewSession(cfg.Cols, cfg.Rows, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create board %d: %w", index, err)
	}
	if cfg.Scatter {
		gridastar.NewEditor(session).Scatter(gridastar.NewWeightedPicker(rng), cfg.ObstacleWeights)
	}
	return session, nil
}

// watch steps the session once per tick and then reports it the way Solve
// would.
func watch(ctx context.Context, session *gridastar.Session, tick time.Duration) (gridastar.Result, error) {
	if err := session.Start(); err != nil {
		return gridastar.Result{}, err
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for !session.State().Terminal() {
		select {
		case <-ctx.Done():
			return gridastar.Result{Steps: session.Steps()}, ctx.Err()
		case <-ticker.C:
			if _, err := session.Step(); err != nil {
				return gridastar.Result{}, err
			}
		}
	}
	return gridastar.Solve(ctx, session)
}
