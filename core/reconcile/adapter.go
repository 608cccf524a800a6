package reconcile

import "context"

// CountrySource fetches the raw country dataset.
type CountrySource interface {
	// Endpoint identifies the source in SourceUnavailableError.
	Endpoint() string

	// FetchCountries returns the full country dataset in source order.
	FetchCountries(ctx context.Context) ([]RawCountry, error)
}

// RateSource fetches the exchange-rate table.
type RateSource interface {
	// Endpoint identifies the source in SourceUnavailableError.
	Endpoint() string

	// FetchRates returns the rate table relative to the base currency.
	FetchRates(ctx context.Context) (RateTable, error)
}

// Upserter commits a reconciled country keyed by name.
// Implementations stamp LastRefreshedAt and must be safe for concurrent calls.
type Upserter interface {
	Upsert(ctx context.Context, country *Country) error
}

// Reporter regenerates the snapshot artifact after a successful refresh.
type Reporter interface {
	Regenerate(ctx context.Context) error
}
