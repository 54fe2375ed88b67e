package httpapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/delta-iot/pingwatch/internal/model"
	"github.com/delta-iot/pingwatch/internal/services/ingest"
	"github.com/delta-iot/pingwatch/internal/services/status"
	"github.com/delta-iot/pingwatch/internal/storage"
)

func TestPingThenDashboardEndToEnd(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := storage.New(context.Background(), filepath.Join(t.TempDir(), "pings.db"), 5*time.Second, logger)
	if err != nil {
		t.Fatalf("storage.New() failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	api := New(
		ingest.New(store, logger),
		status.NewService(store, model.DefaultStatusThresholds(), logger),
		store,
		logger,
		time.Second,
	)
	handler := api.Handler()

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/ping", strings.NewReader(`{"device_id":"watch-1"}`))
		req.Header.Set("Content-Type", "application/json")
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("ping %d status = %d, body %s", i, rec.Code, rec.Body.String())
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status read = %d", rec.Code)
	}
	payload := decodeBody(t, rec.Body)
	devices, _ := payload["devices"].([]any)
	if len(devices) != 1 {
		t.Fatalf("devices = %v, want exactly one", payload["devices"])
	}
	device, _ := devices[0].(map[string]any)
	if device["device_id"] != "watch-1" {
		t.Fatalf("device_id = %v", device["device_id"])
	}
	if device["total_pings"] != float64(2) {
		t.Fatalf("total_pings = %v, want 2", device["total_pings"])
	}
	if device["status"] != "online" {
		t.Fatalf("status = %v, want online", device["status"])
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "watch-1") || !strings.Contains(body, "Just now") {
		t.Fatalf("dashboard missing freshly pinged device")
	}

	// Health is independent of ping activity and tracks store reachability.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("health while store open = %d", rec.Code)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("store.Close() failed: %v", err)
	}
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("health after store close = %d, want 503", rec.Code)
	}
}
