package status

import (
	"context"
	"log/slog"
	"time"

	pingdomain "github.com/delta-iot/pingwatch/internal/domain/ping"
	"github.com/delta-iot/pingwatch/internal/model"
)

// Service builds full status snapshots from the store. Each call performs
// a fresh read and compute; nothing is cached between requests.
type Service struct {
	store  pingdomain.Store
	engine *Engine
	logger *slog.Logger
}

// NewService creates the read-path service.
func NewService(store pingdomain.Store, thresholds model.StatusThresholds, logger *slog.Logger) *Service {
	return &Service{store: store, engine: New(thresholds), logger: logger}
}

// Snapshot reads all device aggregates and runs them through the engine.
func (s *Service) Snapshot(ctx context.Context) (model.Overview, error) {
	rows, err := s.store.LatestPerDevice(ctx)
	if err != nil {
		s.logger.Error("failed to load device aggregates", "err", err)
		return model.Overview{}, err
	}

	now := time.Now().UTC()
	summaries, counts := s.engine.Summarize(rows, now)
	return model.Overview{
		Devices:     summaries,
		Counts:      counts,
		GeneratedAt: now,
	}, nil
}
