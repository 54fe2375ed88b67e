package ping

import "github.com/delta-iot/pingwatch/internal/model"

// Status is derived device liveness state.
type Status = model.Status

const (
	// StatusOnline indicates a ping inside the online window.
	StatusOnline = model.StatusOnline
	// StatusWarning indicates a stale but recent ping.
	StatusWarning = model.StatusWarning
	// StatusOffline indicates no ping inside the offline window, or none at all.
	StatusOffline = model.StatusOffline
)

// Event is one persisted liveness signal.
type Event = model.PingEvent

// Aggregate is the latest-ping-per-device store read model.
type Aggregate = model.DeviceAggregate

// Summary is the derived per-device API/dashboard read model.
type Summary = model.DeviceSummary

// Thresholds defines status transition windows.
type Thresholds = model.StatusThresholds
