package reconcile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"country-api/core/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Engine runs the refresh pipeline: fetch both sources, reconcile each country
// against the rate table and commit it to the store.
type Engine struct {
	countries   CountrySource
	rates       RateSource
	store       Upserter
	reporter    Reporter
	multipliers MultiplierSource
	logger      *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithReporter sets the snapshot reporter invoked after a successful refresh.
func WithReporter(r Reporter) Option {
	return func(e *Engine) { e.reporter = r }
}

// WithMultiplier replaces the time-seeded multiplier source.
func WithMultiplier(m MultiplierSource) Option {
	return func(e *Engine) { e.multipliers = m }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates a refresh engine.
func NewEngine(countries CountrySource, rates RateSource, store Upserter, opts ...Option) *Engine {
	e := &Engine{
		countries:   countries,
		rates:       rates,
		store:       store,
		multipliers: NewTimeSeededMultiplier(),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Refresh fetches both sources and commits every reconciled country in source order.
//
// A source failure aborts before anything is committed. A storage failure aborts
// the rest of the batch; rows committed earlier in the run are kept.
func (e *Engine) Refresh(ctx context.Context) (*RefreshResult, error) {
	start := time.Now()
	e.logger.Info("Refresh started",
		zap.String("countries_source", e.countries.Endpoint()),
		zap.String("rates_source", e.rates.Endpoint()),
	)

	raws, rates, err := e.fetch(ctx)
	if err != nil {
		e.logger.Error("Refresh aborted, source unavailable", zap.Error(err))
		return nil, err
	}

	result := &RefreshResult{Fetched: len(raws)}
	for _, raw := range raws {
		if strings.TrimSpace(raw.Name) == "" {
			result.Skipped++
			e.logger.Warn("Skipping country without name", zap.String("region", raw.Region))
			continue
		}

		country := Reconcile(raw, rates, e.multipliers.Next())
		if err := e.store.Upsert(ctx, &country); err != nil {
			e.logger.Error("Refresh aborted, commit failed",
				zap.String("country", country.Name),
				zap.Int("committed", result.Committed),
				zap.Error(err),
			)
			return result, AsStorageError(fmt.Sprintf("upsert %s", country.Name), err)
		}

		result.Committed++
		if country.ExchangeRate == nil {
			result.WithoutRate++
		}
	}

	if e.reporter != nil {
		if err := e.reporter.Regenerate(ctx); err != nil {
			e.logger.Warn("Snapshot regeneration failed", zap.Error(err))
		}
	}

	result.Duration = time.Since(start)
	e.logger.Info("Refresh completed",
		zap.Int("fetched", result.Fetched),
		zap.Int("committed", result.Committed),
		zap.Int("skipped", result.Skipped),
		zap.Int("without_rate", result.WithoutRate),
		zap.Duration("duration", result.Duration),
	)
	return result, nil
}

// fetch loads both datasets concurrently and fails on the first error.
func (e *Engine) fetch(ctx context.Context) ([]RawCountry, RateTable, error) {
	var (
		raws  []RawCountry
		rates RateTable
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		raws, err = e.countries.FetchCountries(gctx)
		return AsSourceUnavailable(e.countries.Endpoint(), err)
	})

	g.Go(func() error {
		var err error
		rates, err = e.rates.FetchRates(gctx)
		return AsSourceUnavailable(e.rates.Endpoint(), err)
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return raws, rates, nil
}

// Reconcile joins a raw country with the rate table and derives its GDP
// using the given multiplier.
func Reconcile(raw RawCountry, rates RateTable, multiplier float64) Country {
	code := raw.CurrencyCode()
	rate := rates.Lookup(code)
	population := utils.ToNonNegativeInt64(raw.Population)

	return Country{
		Name:         raw.Name,
		Capital:      utils.OptionalString(raw.Capital),
		Region:       utils.OptionalString(raw.Region),
		Population:   population,
		CurrencyCode: code,
		ExchangeRate: rate,
		EstimatedGDP: EstimateGDP(population, rate, multiplier),
		FlagURL:      utils.OptionalString(raw.Flag),
	}
}
