package storage

import (
	"context"
	"fmt"
	"time"

	pingdomain "github.com/delta-iot/pingwatch/internal/domain/ping"
	"github.com/delta-iot/pingwatch/internal/model"
)

// InsertPing appends one event stamped with the current UTC time. The
// connection is taken from the pool for this call only and returned on
// every exit path.
func (r *Repository) InsertPing(ctx context.Context, deviceID, status string) error {
	if status == "" {
		status = model.StatusReceived
	}
	return r.insertAt(ctx, deviceID, status, time.Now().UTC())
}

func (r *Repository) insertAt(ctx context.Context, deviceID, status string, ts time.Time) error {
	opCtx, cancel := r.opContext(ctx)
	defer cancel()

	_, err := r.db.ExecContext(
		opCtx,
		`INSERT INTO pings (device_id, timestamp, status) VALUES (?, ?, ?)`,
		deviceID,
		formatTimestamp(ts),
		status,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", pingdomain.ErrStoreWrite, err)
	}
	return nil
}

// LatestPerDevice groups all events by device and returns the newest
// timestamp and total count per device, most recently active first. Ties
// on the timestamp fall back to device id ascending so the ordering is
// deterministic.
func (r *Repository) LatestPerDevice(ctx context.Context) ([]model.DeviceAggregate, error) {
	opCtx, cancel := r.opContext(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(opCtx, `
		SELECT device_id, MAX(timestamp) AS last_ping, COUNT(*) AS total_pings
		FROM pings
		GROUP BY device_id
		ORDER BY last_ping DESC, device_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pingdomain.ErrStoreRead, err)
	}
	defer rows.Close()

	var result []model.DeviceAggregate
	for rows.Next() {
		var (
			agg      model.DeviceAggregate
			lastPing string
		)
		if err := rows.Scan(&agg.DeviceID, &lastPing, &agg.TotalPings); err != nil {
			return nil, fmt.Errorf("%w: %v", pingdomain.ErrStoreRead, err)
		}
		ts, err := parseTimestamp(lastPing)
		if err != nil {
			return nil, fmt.Errorf("%w: bad timestamp for %s: %v", pingdomain.ErrStoreRead, agg.DeviceID, err)
		}
		agg.LastPing = ts
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", pingdomain.ErrStoreRead, err)
	}
	return result, nil
}

// Ping reports whether the store answers on a fresh connection. It says
// nothing about schema state.
func (r *Repository) Ping(ctx context.Context) error {
	opCtx, cancel := r.opContext(ctx)
	defer cancel()

	if err := r.db.PingContext(opCtx); err != nil {
		return fmt.Errorf("%w: %v", pingdomain.ErrStoreUnavailable, err)
	}
	return nil
}
