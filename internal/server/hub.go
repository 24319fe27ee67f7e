// Package server streams boards to browsers over socket.io.
//
// Every connection gets its own board. The browser sends pointer and control
// events; the board answers with a frame event after each edit and each step.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zishang520/socket.io/v2/socket"

	"github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/internal/config"
	"github.com/pdrpinto/gridastar/internal/ctxlog"
	"github.com/pdrpinto/gridastar/internal/metrics"
	"github.com/pdrpinto/gridastar/internal/render"
)

// Hub owns the boards of all connected clients.
type Hub struct {
	ctx      context.Context
	cfg      *config.Config
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	renderer *render.Renderer
	logger   *slog.Logger

	nextID atomic.Uint64
	mu     sync.Mutex
	boards map[string]*Board
}

// New creates a hub. Board loops stop when ctx is done.
func New(ctx context.Context, cfg *config.Config) *Hub {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Hub{
		ctx:      ctx,
		cfg:      cfg,
		registry: registry,
		metrics:  metrics.New(registry),
		renderer: render.New(render.DefaultPalette),
		logger:   ctxlog.FromContext(ctx).With("component", "hub"),
		boards:   make(map[string]*Board),
	}
}

// NewBoard creates and registers a board whose events go to emit.
func (h *Hub) NewBoard(emit EmitFunc) (*Board, error) {
	n := h.nextID.Add(1)
	id := strconv.FormatUint(n, 10)
	logger := h.logger.With("board", id)

	seed := rand.Uint64()
	if h.cfg.Seed != nil {
		seed = *h.cfg.Seed
	}
	rng := rand.New(rand.NewPCG(seed, n))

	options := append(h.cfg.SessionOptions(), gridastar.WithRand(rng), gridastar.WithLogger(logger))
	session, err := gridastar.NewSession(h.cfg.Cols, h.cfg.Rows, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create board %s: %w", id, err)
	}

	board := &Board{
		id:      id,
		tick:    h.cfg.Tick,
		picker:  gridastar.NewWeightedPicker(rng),
		weights: h.cfg.ObstacleWeights,
		emit:    emit,
		metrics: h.metrics,
		logger:  logger,
		session: session,
		editor:  gridastar.NewEditor(session),
	}
	if h.cfg.Scatter {
		board.editor.Scatter(board.picker, board.weights)
	}

	h.mu.Lock()
	h.boards[id] = board
	h.mu.Unlock()
	h.metrics.BoardOpened()
	return board, nil
}

// Board looks up a live board by id.
func (h *Hub) Board(id string) (*Board, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	board, ok := h.boards[id]
	return board, ok
}

// Remove stops and forgets a board.
func (h *Hub) Remove(id string) {
	h.mu.Lock()
	board, ok := h.boards[id]
	delete(h.boards, id)
	h.mu.Unlock()
	if ok {
		board.Close()
	}
}

// Handler serves socket.io, Prometheus metrics and PNG frames.
func (h *Hub) Handler() http.Handler {
	opts := socket.DefaultServerOptions()
	opts.SetServeClient(true)
	io := socket.NewServer(nil, opts)
	io.On("connection", h.onConnection)
	return h.routes(io.ServeHandler(opts))
}

func (h *Hub) routes(socketHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/socket.io/", socketHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/frame.png", h.handleFramePNG)
	return mux
}

func (h *Hub) handleFramePNG(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "missing board id", http.StatusBadRequest)
		return
	}
	board, ok := h.Board(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	frame, err := board.Frame()
	if err != nil {
		h.logger.Warn("Rendering frame with a broken path", "board", id, "error", err)
	}
	w.Header().Set("Content-Type", "image/png")
	if err := h.renderer.WritePNG(w, frame); err != nil {
		h.logger.Error("Failed to write frame", "board", id, "error", err)
	}
}

func (h *Hub) onConnection(clients ...any) {
	if len(clients) == 0 {
		return
	}
	client, ok := clients[0].(*socket.Socket)
	if !ok {
		return
	}

	board, err := h.NewBoard(func(event string, payload any) { client.Emit(event, payload) })
	if err != nil {
		h.logger.Error("Failed to create board", "error", err)
		return
	}
	h.logger.Info("Client connected", "board", board.ID(), "socket", client.Id())

	client.On(EventPress, func(args ...any) { h.dispatch(board, EventPress, args) })
	client.On(EventDrag, func(args ...any) { h.dispatch(board, EventDrag, args) })
	client.On(EventRelease, func(args ...any) { h.dispatch(board, EventRelease, args) })
	client.On(EventStart, func(args ...any) { h.dispatch(board, EventStart, args) })
	client.On(EventReset, func(args ...any) { h.dispatch(board, EventReset, args) })
	client.On(EventRewind, func(args ...any) { h.dispatch(board, EventRewind, args) })
	client.On(EventScatter, func(args ...any) { h.dispatch(board, EventScatter, args) })
	client.On(EventResize, func(args ...any) { h.dispatch(board, EventResize, args) })
	client.On("disconnect", func(...any) {
		h.logger.Info("Client disconnected", "board", board.ID())
		h.Remove(board.ID())
	})

	client.Emit(EventBoard, board.ID())
	board.Publish()
}

// dispatch applies one client event to board.
func (h *Hub) dispatch(board *Board, event string, args []any) {
	switch event {
	case EventPress, EventDrag, EventRelease:
		x, y, ok := pointer(args)
		if !ok {
			board.logger.Warn("Ignoring malformed pointer event", "event", event)
			return
		}
		switch event {
		case EventPress:
			board.Press(x, y)
		case EventDrag:
			board.Drag(x, y)
		default:
			board.Release(x, y)
		}
	case EventStart:
		if err := board.Start(h.ctx); err != nil {
			board.logger.Warn("Start rejected", "error", err)
		}
	case EventReset:
		board.Reset()
	case EventRewind:
		board.Rewind()
	case EventScatter:
		board.Scatter()
	case EventResize:
		values, ok := numbers(args, "width", "height")
		if !ok {
			board.logger.Warn("Ignoring malformed resize event")
			return
		}
		if err := board.Resize(values[0], values[1]); err != nil {
			board.logger.Warn("Resize rejected", "error", err)
		}
	default:
		board.logger.Warn("Ignoring unknown event", "event", event)
	}
}
