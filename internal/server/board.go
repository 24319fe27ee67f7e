package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/internal/metrics"
)

// EmitFunc delivers one event to the board's client.
type EmitFunc func(event string, payload any)

// Board is one client's session with its editor and stepping loop. All
// methods are safe for concurrent use.
type Board struct {
	id      string
	tick    time.Duration
	picker  gridastar.ObstacleSource
	weights []gridastar.Weighted
	emit    EmitFunc
	metrics *metrics.Metrics
	logger  *slog.Logger

	// emitMu is held from frame capture until the frame is emitted so the
	// client sees frames in the order the board produced them. Lock it
	// before mu.
	emitMu  sync.Mutex
	mu      sync.Mutex
	session *gridastar.Session
	editor  *gridastar.Editor
	stop    context.CancelFunc
}

func (b *Board) ID() string { return b.id }

// Frame snapshots the board.
func (b *Board) Frame() (gridastar.Frame, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.session.Frame()
}

func (b *Board) Press(x, y float64)   { b.edit(func() { b.editor.Press(x, y) }) }
func (b *Board) Drag(x, y float64)    { b.edit(func() { b.editor.Drag(x, y) }) }
func (b *Board) Release(x, y float64) { b.edit(func() { b.editor.Release(x, y) }) }

// Reset stops any run and clears the board.
func (b *Board) Reset() {
	b.edit(func() {
		b.halt()
		b.session.Reset()
	})
}

// Rewind stops any run and keeps the painted obstacles.
func (b *Board) Rewind() {
	b.edit(func() {
		b.halt()
		b.session.Rewind()
	})
}

// Scatter stops any run and repaints random obstacles.
func (b *Board) Scatter() {
	b.edit(func() {
		b.halt()
		b.editor.Scatter(b.picker, b.weights)
	})
}

// Resize fits the grid to a viewport of width x height pixels.
func (b *Board) Resize(width, height float64) error {
	var err error
	b.edit(func() {
		b.halt()
		cols, rows := gridastar.FitViewport(width, height, b.session.Grid().Resolution())
		err = b.session.Resize(cols, rows)
	})
	return err
}

// Start begins a search and steps it once per tick until it ends, the board
// is edited, or ctx is done.
func (b *Board) Start(ctx context.Context) error {
	b.mu.Lock()
	if err := b.session.Start(); err != nil {
		b.mu.Unlock()
		return err
	}
	b.halt()
	runCtx, cancel := context.WithCancel(ctx)
	b.stop = cancel
	b.mu.Unlock()

	go b.run(runCtx)
	return nil
}

func (b *Board) run(ctx context.Context) {
	ticker := time.NewTicker(b.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			state, err := b.step(ctx)
			if err != nil || state.Terminal() {
				return
			}
		}
	}
}

// Step advances the search by one node and publishes the frame.
func (b *Board) Step() (gridastar.State, error) {
	return b.step(context.Background())
}

func (b *Board) step(ctx context.Context) (gridastar.State, error) {
	b.emitMu.Lock()
	defer b.emitMu.Unlock()

	b.mu.Lock()
	if err := ctx.Err(); err != nil {
		b.mu.Unlock()
		return gridastar.StateIdle, err
	}
	previous := b.session.State()
	state, err := b.session.Step()
	if err != nil {
		b.mu.Unlock()
		return state, err
	}
	if previous == gridastar.StateRunning {
		b.metrics.Step()
	}
	frame, ferr := b.session.Frame()
	b.mu.Unlock()

	if ferr != nil {
		b.logger.Error("Frame has a broken path", "error", ferr)
	}
	b.publish(frame)
	if state != previous && state.Terminal() {
		b.metrics.Finished(state, len(frame.Closed))
		if state == gridastar.StateExhausted {
			b.emit(EventNotice, gridastar.NoSolutionNotice)
		}
	}
	return state, nil
}

// Publish sends the current frame to the client.
func (b *Board) Publish() { b.edit(func() {}) }

// Close stops the board's loop.
func (b *Board) Close() {
	b.mu.Lock()
	b.halt()
	b.mu.Unlock()
	b.metrics.BoardClosed()
}

// halt cancels the running loop. Callers hold mu.
func (b *Board) halt() {
	if b.stop != nil {
		b.stop()
		b.stop = nil
	}
}

func (b *Board) edit(fn func()) {
	b.emitMu.Lock()
	defer b.emitMu.Unlock()

	b.mu.Lock()
	fn()
	frame, err := b.session.Frame()
	b.mu.Unlock()

	if err != nil {
		b.logger.Error("Frame has a broken path", "error", err)
	}
	b.publish(frame)
}

func (b *Board) publish(frame gridastar.Frame) {
	b.emit(EventFrame, newFrameMessage(b.id, frame))
}
