package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"country-api/core/storage"
	"country-api/feature/countries/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const defaultTopN = 5

// ErrNotFound is returned when no summary has been generated yet.
var ErrNotFound = errors.New("summary not found")

// Source supplies the aggregates a summary is built from.
type Source interface {
	Stats(ctx context.Context) (*models.Stats, error)
	TopByGDP(ctx context.Context, n int) ([]models.Country, error)
}

// TopCountry is one ranked entry of a summary.
type TopCountry struct {
	Name         string  `json:"name"`
	EstimatedGDP float64 `json:"estimated_gdp"`
}

// Summary is the stored artifact.
type Summary struct {
	TotalCountries int64        `json:"total_countries"`
	TopCountries   []TopCountry `json:"top_countries"`
	GeneratedAt    time.Time    `json:"generated_at"`
}

// Reporter renders summaries into object storage.
type Reporter struct {
	source Source
	client storage.Client
	bucket string
	cfg    Config
	logger *zap.Logger
	now    func() time.Time

	mu          sync.Mutex
	bucketReady bool
}

// NewReporter creates a reporter writing to bucket.
func NewReporter(source Source, client storage.Client, bucket string, cfg Config, logger *zap.Logger) *Reporter {
	if cfg.TopN <= 0 {
		cfg.TopN = defaultTopN
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reporter{
		source: source,
		client: client,
		bucket: bucket,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Build assembles a summary from the current store state.
func (r *Reporter) Build(ctx context.Context) (*Summary, error) {
	stats, err := r.source.Stats(ctx)
	if err != nil {
		return nil, err
	}
	top, err := r.source.TopByGDP(ctx, r.cfg.TopN)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		TotalCountries: stats.TotalCountries,
		TopCountries:   make([]TopCountry, 0, len(top)),
		GeneratedAt:    r.now().UTC(),
	}
	for _, c := range top {
		summary.TopCountries = append(summary.TopCountries, TopCountry{Name: c.Name, EstimatedGDP: c.EstimatedGDP})
	}
	return summary, nil
}

// Regenerate builds a fresh summary and overwrites the stored one.
func (r *Reporter) Regenerate(ctx context.Context) error {
	summary, err := r.Build(ctx)
	if err != nil {
		return fmt.Errorf("failed to build summary: %w", err)
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	if err := r.ensureBucket(ctx); err != nil {
		return err
	}

	_, err = r.client.PutObject(ctx, r.bucket, r.cfg.ObjectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to upload summary: %w", err)
	}

	r.logger.Info("Summary regenerated",
		zap.String("object", r.cfg.ObjectName),
		zap.Int64("total_countries", summary.TotalCountries),
	)
	return nil
}

// Latest reads the stored summary.
func (r *Reporter) Latest(ctx context.Context) (*Summary, error) {
	obj, err := r.client.GetObject(ctx, r.bucket, r.cfg.ObjectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, r.readError(err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, r.readError(err)
	}

	var summary Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to decode summary: %w", err)
	}
	return &summary, nil
}

func (r *Reporter) readError(err error) error {
	if storage.IsNotFound(err) {
		return ErrNotFound
	}
	return fmt.Errorf("failed to read summary: %w", err)
}

func (r *Reporter) ensureBucket(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.bucketReady {
		return nil
	}

	exists, err := r.client.BucketExists(ctx, r.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", r.bucket, err)
	}
	if !exists {
		if err := r.client.MakeBucket(ctx, r.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", r.bucket, err)
		}
		r.logger.Info("Created snapshot bucket", zap.String("bucket", r.bucket))
	}
	r.bucketReady = true
	return nil
}
