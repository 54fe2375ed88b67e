package model

import "time"

// StatusReceived is the default tag stored with every ingested ping.
const StatusReceived = "received"

// Status is derived device liveness state reported to API and dashboard.
type Status string

const (
	StatusOnline  Status = "online"
	StatusWarning Status = "warning"
	StatusOffline Status = "offline"
)

// PingEvent is one persisted liveness signal. Rows are append-only and
// never mutated after insert.
type PingEvent struct {
	ID        int64     `json:"id"`
	DeviceID  string    `json:"device_id"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}

// DeviceAggregate is the store read model: one row per device with the
// most recent ping timestamp and total event count.
type DeviceAggregate struct {
	DeviceID   string
	LastPing   time.Time
	TotalPings int64
}

// DeviceSummary is the derived per-device view. Status and TimeAgo are
// functions of LastPing and the evaluation time only.
type DeviceSummary struct {
	DeviceID   string     `json:"device_id"`
	LastPing   *time.Time `json:"last_ping,omitempty"`
	TotalPings int64      `json:"total_pings"`
	Status     Status     `json:"status"`
	TimeAgo    string     `json:"time_ago"`
}

// FleetCounts aggregates summary rows for the dashboard header. Offline is
// total minus online, so warning devices count as offline here while their
// per-device status still reports warning. Dashboards depend on this
// arithmetic; keep it.
type FleetCounts struct {
	TotalDevices   int `json:"total_devices"`
	OnlineDevices  int `json:"online_devices"`
	OfflineDevices int `json:"offline_devices"`
}

// Overview is one full status snapshot handed to the dashboard and the
// WebSocket feed.
type Overview struct {
	Devices     []DeviceSummary `json:"devices"`
	Counts      FleetCounts     `json:"counts"`
	GeneratedAt time.Time       `json:"generated_at"`
}
