package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	pingdomain "github.com/delta-iot/pingwatch/internal/domain/ping"
	"github.com/delta-iot/pingwatch/internal/model"
)

func testRepository(t *testing.T) *Repository {
	t.Helper()

	repo, err := New(
		context.Background(),
		filepath.Join(t.TempDir(), "pings.db"),
		5*time.Second,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestInsertPingAppendsRows(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	if err := repo.InsertPing(ctx, "watch-1", model.StatusReceived); err != nil {
		t.Fatalf("InsertPing() failed: %v", err)
	}
	if err := repo.InsertPing(ctx, "watch-1", ""); err != nil {
		t.Fatalf("InsertPing() failed: %v", err)
	}

	rows, err := repo.LatestPerDevice(ctx)
	if err != nil {
		t.Fatalf("LatestPerDevice() failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 device, got %d", len(rows))
	}
	if rows[0].DeviceID != "watch-1" || rows[0].TotalPings != 2 {
		t.Fatalf("aggregate = %+v, want watch-1 with 2 pings", rows[0])
	}

	var status string
	if err := repo.SQLDB().QueryRow(`SELECT status FROM pings ORDER BY id DESC LIMIT 1`).Scan(&status); err != nil {
		t.Fatalf("status query failed: %v", err)
	}
	if status != model.StatusReceived {
		t.Fatalf("empty status not defaulted: got %q", status)
	}
}

func TestLatestPerDeviceOrdersByRecency(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	seed := []struct {
		deviceID string
		at       time.Time
	}{
		{"watch-old", base.Add(-3 * time.Hour)},
		{"watch-old", base.Add(-2 * time.Hour)},
		{"watch-new", base.Add(-time.Minute)},
		{"watch-b", base.Add(-time.Hour)},
		{"watch-a", base.Add(-time.Hour)},
	}
	for _, row := range seed {
		if err := repo.insertAt(ctx, row.deviceID, model.StatusReceived, row.at); err != nil {
			t.Fatalf("insertAt(%s) failed: %v", row.deviceID, err)
		}
	}

	rows, err := repo.LatestPerDevice(ctx)
	if err != nil {
		t.Fatalf("LatestPerDevice() failed: %v", err)
	}

	wantOrder := []string{"watch-new", "watch-a", "watch-b", "watch-old"}
	if len(rows) != len(wantOrder) {
		t.Fatalf("expected %d devices, got %d", len(wantOrder), len(rows))
	}
	for i, want := range wantOrder {
		if rows[i].DeviceID != want {
			t.Fatalf("row %d = %q, want %q (rows: %+v)", i, rows[i].DeviceID, want, rows)
		}
	}
	if !rows[3].LastPing.Equal(base.Add(-2 * time.Hour)) {
		t.Fatalf("watch-old last ping = %v, want max of its timestamps", rows[3].LastPing)
	}
}

func TestLatestPerDeviceEmptyStore(t *testing.T) {
	repo := testRepository(t)

	rows, err := repo.LatestPerDevice(context.Background())
	if err != nil {
		t.Fatalf("LatestPerDevice() failed: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestPingReportsReachability(t *testing.T) {
	repo := testRepository(t)

	if err := repo.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() on open store failed: %v", err)
	}

	if err := repo.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	err := repo.Ping(context.Background())
	if !errors.Is(err, pingdomain.ErrStoreUnavailable) {
		t.Fatalf("Ping() after close = %v, want ErrStoreUnavailable", err)
	}
}

func TestInsertPingAfterCloseWrapsWriteError(t *testing.T) {
	repo := testRepository(t)
	if err := repo.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	err := repo.InsertPing(context.Background(), "watch-1", model.StatusReceived)
	if !errors.Is(err, pingdomain.ErrStoreWrite) {
		t.Fatalf("InsertPing() after close = %v, want ErrStoreWrite", err)
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	ts := time.Date(2026, 3, 14, 12, 34, 56, 789000000, time.UTC)
	parsed, err := parseTimestamp(formatTimestamp(ts))
	if err != nil {
		t.Fatalf("parseTimestamp() failed: %v", err)
	}
	if !parsed.Equal(ts.Truncate(time.Second)) {
		t.Fatalf("round trip = %v, want %v", parsed, ts.Truncate(time.Second))
	}
}
