package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/specialistvlad/novagraph/internal/ctxlog"
)

const shutdownTimeout = 5 * time.Second

// routes serves liveness on /health and a summary of the plan being
// dispatched on /plan.
func (app *App) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", app.healthHandler)
	mux.HandleFunc("GET /plan", app.planHandler)
	return mux
}

func (app *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctxlog.FromContext(app.ctx).Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK blocks=%d\n", app.Block())
}

func (app *App) planHandler(w http.ResponseWriter, r *http.Request) {
	q := app.current.Load()
	if q == nil {
		http.Error(w, "no plan compiled yet", http.StatusServiceUnavailable)
		return
	}
	fmt.Fprintf(w, "plan=%s items=%d runnable=%d edges=%d\n",
		q.ID(), q.Len(), len(q.Runnable()), q.Edges())
}

// healthCheckServer starts the HTTP server in the background when a port is
// configured.
func (app *App) healthCheckServer() {
	logger := ctxlog.FromContext(app.ctx)
	if app.config.HealthcheckPort <= 0 {
		logger.Debug("Health check server disabled.")
		return
	}

	addr := fmt.Sprintf(":%d", app.config.HealthcheckPort)
	app.httpServer = &http.Server{
		Addr:              addr,
		Handler:           app.routes(),
		ReadHeaderTimeout: time.Second,
	}

	go func(srv *http.Server) {
		logger.Info("🩺 Health check server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Health check server failed unexpectedly", "error", err)
		}
	}(app.httpServer)
}

func (app *App) closeHealthCheckServer() {
	if app.httpServer == nil {
		return
	}
	logger := ctxlog.FromContext(app.ctx)

	// Run's context is usually cancelled by now.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(app.ctx), shutdownTimeout)
	defer cancel()

	logger.Info("🩺 Shutting down health check server...")
	if err := app.httpServer.Shutdown(ctx); err != nil {
		logger.Error("Health check server shutdown failed", "error", err)
	}
	app.httpServer = nil
}
