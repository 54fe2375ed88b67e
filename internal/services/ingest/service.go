// Package ingest implements the ping write path: payload validation
// followed by a single append to the store. Validation always runs before
// any store interaction.
package ingest

import (
	"context"
	"log/slog"

	pingdomain "github.com/delta-iot/pingwatch/internal/domain/ping"
	"github.com/delta-iot/pingwatch/internal/model"
)

// Service records validated pings.
type Service struct {
	store  pingdomain.Store
	logger *slog.Logger
}

// New creates the ingest service.
func New(store pingdomain.Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Record validates the decoded payload and appends one ping event. It
// returns the accepted device id, a *ping.ValidationError for client
// mistakes, or a wrapped store error.
func (s *Service) Record(ctx context.Context, data map[string]any) (string, error) {
	deviceID, err := Validate(data)
	if err != nil {
		s.logger.Warn("invalid ping payload", "err", err)
		return "", err
	}

	if err := s.store.InsertPing(ctx, deviceID, model.StatusReceived); err != nil {
		s.logger.Error("failed to record ping", "device_id", deviceID, "err", err)
		return "", err
	}

	s.logger.Info("ping recorded", "device_id", deviceID)
	return deviceID, nil
}
