package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/delta-iot/pingwatch/internal/dashboard"
	pingdomain "github.com/delta-iot/pingwatch/internal/domain/ping"
	"github.com/delta-iot/pingwatch/internal/model"
)

// IngestService records validated pings.
type IngestService interface {
	Record(ctx context.Context, data map[string]any) (string, error)
}

// StatusService builds status snapshots for the read path.
type StatusService interface {
	Snapshot(ctx context.Context) (model.Overview, error)
}

// HealthChecker reports store reachability.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// API wires the ping service surface onto HTTP.
type API struct {
	ingest       IngestService
	status       StatusService
	health       HealthChecker
	logger       *slog.Logger
	feedInterval time.Duration
	page         *template.Template
}

// New creates the API. feedInterval controls how often the WebSocket feed
// pushes fresh snapshots.
func New(ingest IngestService, status StatusService, health HealthChecker, logger *slog.Logger, feedInterval time.Duration) *API {
	return &API{
		ingest:       ingest,
		status:       status,
		health:       health,
		logger:       logger,
		feedInterval: feedInterval,
		page:         template.Must(template.ParseFS(dashboard.Assets, "assets/dashboard.html")),
	}
}

// Handler builds the router.
func (a *API) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RecoverJSON(a.logger))
	r.Use(RequestLogger(a.logger))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Post("/ping", a.receivePing)
	r.Get("/health", a.healthCheck)
	r.Get("/", a.renderDashboard)
	r.Get("/dashboard", a.renderDashboard)
	r.Get("/api/status", a.statusSnapshot)
	r.Get("/api/ws", a.statusFeed)
	return r
}

func (a *API) receivePing(w http.ResponseWriter, r *http.Request) {
	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		data = nil
	}

	if _, err := a.ingest.Record(r.Context(), data); err != nil {
		if verr := pingdomain.AsValidation(err); verr != nil {
			writeError(w, http.StatusBadRequest, verr.Message)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Ping received"})
}

func (a *API) healthCheck(w http.ResponseWriter, r *http.Request) {
	if err := a.health.Ping(r.Context()); err != nil {
		a.logger.Warn("health check failed", "err", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "healthy",
		"database": "connected",
	})
}

func (a *API) statusSnapshot(w http.ResponseWriter, r *http.Request) {
	overview, err := a.status.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, statusPayload(overview))
}

func (a *API) renderDashboard(w http.ResponseWriter, r *http.Request) {
	overview, err := a.status.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.page.Execute(w, overview); err != nil {
		a.logger.Error("dashboard render failed", "err", err)
	}
}

// statusPayload flattens an overview into the wire shape shared by
// /api/status and the WebSocket feed.
func statusPayload(overview model.Overview) map[string]any {
	return map[string]any{
		"devices":         overview.Devices,
		"total_devices":   overview.Counts.TotalDevices,
		"online_devices":  overview.Counts.OnlineDevices,
		"offline_devices": overview.Counts.OfflineDevices,
		"generated_at":    overview.GeneratedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}

// RunServer serves until ctx is cancelled, then shuts down gracefully.
func RunServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err != nil {
			logger.Error("http server failed", "err", err)
			return err
		}
		return nil
	}
}
