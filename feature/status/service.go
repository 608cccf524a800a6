package status

import (
	"context"

	"country-api/feature/countries/models"

	"go.uber.org/zap"
)

// StatsSource supplies aggregate store state.
type StatsSource interface {
	Stats(ctx context.Context) (*models.Stats, error)
}

// Service reports the health of the dataset.
type Service struct {
	source StatsSource
	logger *zap.Logger
}

// NewService creates a new status service.
func NewService(source StatsSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, logger: logger}
}

// Status returns the row count and the latest refresh time.
func (s *Service) Status(ctx context.Context) (*models.Stats, error) {
	return s.source.Stats(ctx)
}
