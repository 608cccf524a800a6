package countries

import (
	"context"
	"sync"
	"time"

	"country-api/core/reconcile"
	"country-api/feature/countries/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// upsertColumns are overwritten when a row with the same name exists.
var upsertColumns = []string{
	"capital", "region", "population", "currency_code",
	"exchange_rate", "estimated_gdp", "flag_url", "last_refreshed_at",
}

// Store persists countries keyed by name.
type Store struct {
	db  *gorm.DB
	now func() time.Time

	mu        sync.Mutex
	lastStamp time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock overrides the clock used to stamp last_refreshed_at.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// NewStore creates a store over db.
func NewStore(db *gorm.DB, opts ...StoreOption) *Store {
	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// stamp returns a millisecond timestamp strictly after the previous one.
func (s *Store) stamp() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC().Truncate(time.Millisecond)
	if !now.After(s.lastStamp) {
		now = s.lastStamp.Add(time.Millisecond)
	}
	s.lastStamp = now
	return now
}

// Upsert inserts c or overwrites the row with the same name, keeping its id.
func (s *Store) Upsert(ctx context.Context, c *reconcile.Country) error {
	c.LastRefreshedAt = s.stamp()
	row := models.FromReconciled(*c)

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).
		Create(&row).Error
	return reconcile.AsStorageError("upsert "+c.Name, err)
}

// FindByName returns the country named exactly name.
func (s *Store) FindByName(ctx context.Context, name string) (*models.Country, error) {
	var rows []models.Country
	if err := s.db.WithContext(ctx).Where("name = ?", name).Find(&rows).Error; err != nil {
		return nil, reconcile.AsStorageError("find "+name, err)
	}
	// Collations may compare case-insensitively; the key is exact.
	for i := range rows {
		if rows[i].Name == name {
			return &rows[i], nil
		}
	}
	return nil, reconcile.ErrNotFound
}

// List returns countries matching q.
func (s *Store) List(ctx context.Context, q models.Query) ([]models.Country, error) {
	tx := s.db.WithContext(ctx).Model(&models.Country{})
	if q.Region != "" {
		tx = tx.Where("region = ?", q.Region)
	}
	if q.Currency != "" {
		tx = tx.Where("currency_code = ?", q.Currency)
	}
	if q.SortByGDPDesc {
		tx = tx.Order("estimated_gdp DESC").Order("name ASC")
	} else {
		tx = tx.Order("id ASC")
	}

	var rows []models.Country
	if err := tx.Find(&rows).Error; err != nil {
		return nil, reconcile.AsStorageError("list countries", err)
	}

	out := make([]models.Country, 0, len(rows))
	for _, row := range rows {
		if q.Region != "" && (row.Region == nil || *row.Region != q.Region) {
			continue
		}
		if q.Currency != "" && (row.CurrencyCode == nil || *row.CurrencyCode != q.Currency) {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

// DeleteByName removes the country named exactly name.
func (s *Store) DeleteByName(ctx context.Context, name string) error {
	row, err := s.FindByName(ctx, name)
	if err != nil {
		return err
	}

	res := s.db.WithContext(ctx).Delete(&models.Country{}, row.ID)
	if res.Error != nil {
		return reconcile.AsStorageError("delete "+name, res.Error)
	}
	if res.RowsAffected == 0 {
		return reconcile.ErrNotFound
	}
	return nil
}

// Stats returns the row count and the latest refresh stamp.
func (s *Store) Stats(ctx context.Context) (*models.Stats, error) {
	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Country{}).Count(&total).Error; err != nil {
		return nil, reconcile.AsStorageError("count countries", err)
	}

	stats := &models.Stats{TotalCountries: total}
	if total == 0 {
		return stats, nil
	}

	// Read the newest row rather than MAX() so drivers keep the column type.
	var latest []models.Country
	if err := db.Select("last_refreshed_at").Order("last_refreshed_at DESC").Limit(1).Find(&latest).Error; err != nil {
		return nil, reconcile.AsStorageError("latest refresh", err)
	}
	if len(latest) == 1 {
		ts := latest[0].LastRefreshedAt
		stats.LastRefreshedAt = &ts
	}
	return stats, nil
}

// TopByGDP returns the n countries with the highest estimated GDP.
func (s *Store) TopByGDP(ctx context.Context, n int) ([]models.Country, error) {
	var rows []models.Country
	err := s.db.WithContext(ctx).
		Order("estimated_gdp DESC").Order("name ASC").
		Limit(n).
		Find(&rows).Error
	if err != nil {
		return nil, reconcile.AsStorageError("top countries", err)
	}
	return rows, nil
}
