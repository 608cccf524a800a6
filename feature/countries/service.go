package countries

import (
	"context"

	"country-api/core/reconcile"
	"country-api/feature/countries/models"
	"country-api/feature/snapshot"

	"go.uber.org/zap"
)

// Refresher runs one refresh of the dataset.
type Refresher interface {
	Refresh(ctx context.Context) (*reconcile.RefreshResult, error)
}

// SummaryReader returns the latest stored summary.
type SummaryReader interface {
	Latest(ctx context.Context) (*snapshot.Summary, error)
}

// Service handles country operations.
type Service struct {
	store     *Store
	refresher Refresher
	summaries SummaryReader
	logger    *zap.Logger
}

// NewService creates a new countries service.
func NewService(store *Store, refresher Refresher, summaries SummaryReader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:     store,
		refresher: refresher,
		summaries: summaries,
		logger:    logger,
	}
}

// Refresh pulls both sources and commits the reconciled countries.
func (s *Service) Refresh(ctx context.Context) (*reconcile.RefreshResult, error) {
	return s.refresher.Refresh(ctx)
}

// List returns countries matching q.
func (s *Service) List(ctx context.Context, q models.Query) ([]models.Country, error) {
	return s.store.List(ctx, q)
}

// Get returns a single country by exact name.
func (s *Service) Get(ctx context.Context, name string) (*models.Country, error) {
	return s.store.FindByName(ctx, name)
}

// Delete removes a country by exact name.
func (s *Service) Delete(ctx context.Context, name string) error {
	return s.store.DeleteByName(ctx, name)
}

// Summary returns the latest stored summary.
func (s *Service) Summary(ctx context.Context) (*snapshot.Summary, error) {
	return s.summaries.Latest(ctx)
}
