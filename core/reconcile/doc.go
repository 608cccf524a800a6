// Package reconcile implements the country refresh pipeline.
//
// A refresh joins two independent upstream datasets, country metadata and an
// exchange-rate table, by currency code, derives an estimated GDP for every
// country and commits the result to a store keyed by country name.
//
// # Architecture
//
// The package consists of three parts:
//
// 1. Sources: CountrySource and RateSource fetch the raw datasets. Both are
//    fetched concurrently; the first failure cancels the other and aborts the
//    refresh before any commit.
//
// 2. Reconcile: a pure function from (RawCountry, RateTable, multiplier) to a
//    Country. Missing currency, missing rate and zero rate all yield a GDP of 0.
//
// 3. Engine: drives fetch, reconcile and commit. Commits are sequential and
//    independent; a storage failure stops the batch without rolling back rows
//    committed earlier in the same run. After a complete batch the Reporter
//    regenerates the snapshot; its failure is logged, not returned.
//
// # GDP multiplier
//
// The multiplier is drawn once per country from [1000, 2000). It comes from a
// MultiplierSource so tests can pin it (FixedMultiplier) or seed it
// (NewRandomMultiplier). EstimateGDP is the single place the formula lives.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(countrySrc, rateSrc, store,
//	    reconcile.WithReporter(reporter),
//	    reconcile.WithLogger(logger),
//	)
//	result, err := engine.Refresh(ctx)
//
//	var su *reconcile.SourceUnavailableError
//	if errors.As(err, &su) {
//	    // su.Endpoint names the failing upstream
//	}
package reconcile
