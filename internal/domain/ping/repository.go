package ping

import "context"

// Store defines persistent storage operations for the ping domain. The
// store owns durability only; status derivation happens above it.
type Store interface {
	// InsertPing appends one event stamped with the current UTC time.
	InsertPing(ctx context.Context, deviceID, status string) error
	// LatestPerDevice returns one aggregate per device, ordered by last
	// ping descending with ties broken by device id ascending.
	LatestPerDevice(ctx context.Context) ([]Aggregate, error)
	// Ping reports store reachability without asserting schema state.
	Ping(ctx context.Context) error
}
