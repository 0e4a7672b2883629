package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/specialistvlad/novagraph/internal/config"
	"github.com/specialistvlad/novagraph/internal/ctxlog"
	"github.com/specialistvlad/novagraph/internal/executor"
	"github.com/specialistvlad/novagraph/internal/graph"
	"github.com/specialistvlad/novagraph/internal/planstore"
	"github.com/specialistvlad/novagraph/internal/queue"
)

// Option customises an App.
type Option func(*options)

type options struct {
	loader config.Loader
	units  graph.UnitFactory
}

// WithLoader replaces the default extension-dispatching layout loader.
func WithLoader(l config.Loader) Option {
	return func(o *options) { o.loader = l }
}

// WithUnits resolves synth definitions to audio units. Without it every
// synth is silent.
func WithUnits(f graph.UnitFactory) Option {
	return func(o *options) { o.units = f }
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	ctx        context.Context
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	graph      *graph.NodeGraph
	executor   *executor.Executor
	plans      *planstore.Store
	httpServer *http.Server

	block atomic.Int64
	// current is the plan dispatched by the latest block.
	current  atomic.Pointer[queue.Queue]
	lastPlan string
}

// NewApp is the constructor for the main application. It builds the logger,
// loads the layout into a fresh node graph and opens the plan journal.
func NewApp(outW io.Writer, cfg *Config, opts ...Option) (*App, error) {
	o := options{loader: newLayoutLoader()}
	for _, opt := range opts {
		opt(&o)
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	a := &App{
		ctx:    ctx,
		outW:   outW,
		logger: logger,
		config: cfg,
		graph: graph.New(
			graph.WithUnits(o.units),
			graph.WithValidation(cfg.ValidatePlans),
		),
		executor: executor.New(cfg.WorkerCount),
	}

	if len(cfg.LayoutPaths) > 0 {
		model, err := o.loader.Load(ctx, cfg.LayoutPaths...)
		if err != nil {
			return nil, fmt.Errorf("failed to load layout: %w", err)
		}
		if err := a.graph.Apply(ctx, model); err != nil {
			return nil, fmt.Errorf("failed to apply layout: %w", err)
		}
		synths, groups := a.graph.Counts()
		logger.Info("Layout loaded.", "synths", synths, "groups", groups)
	}

	if cfg.PlanDB != "" {
		store, err := planstore.Open(ctx, cfg.PlanDB)
		if err != nil {
			return nil, err
		}
		a.plans = store
		logger.Debug("Plan journal opened.", "path", cfg.PlanDB)
	}

	return a, nil
}

// Graph returns the node graph, for control-layer edits between blocks.
func (a *App) Graph() *graph.NodeGraph {
	return a.graph
}

// Block returns the number of blocks dispatched so far.
func (a *App) Block() int64 {
	return a.block.Load()
}

// Plans returns the plan journal, or nil when it is disabled.
func (a *App) Plans() *planstore.Store {
	return a.plans
}

// Close releases the plan journal.
func (a *App) Close() error {
	if a.plans == nil {
		return nil
	}
	return a.plans.Close()
}
