package reconcile

import "time"

// RawCountry is a country record as delivered by the country source.
// Population is left untyped because upstream sends both numbers and numeric strings.
type RawCountry struct {
	// Name is the natural key of the country.
	Name string `json:"name"`

	// Capital is the capital city, empty when unknown.
	Capital string `json:"capital"`

	// Region is the continental region (e.g. "Africa").
	Region string `json:"region"`

	// Population is coerced to a non-negative integer during reconciliation.
	Population any `json:"population"`

	// Currencies is ordered; only the first entry is used.
	Currencies []RawCurrency `json:"currencies"`

	// Flag is a URL to the flag image.
	Flag string `json:"flag"`
}

// RawCurrency is a single currency entry of a RawCountry.
type RawCurrency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// CurrencyCode returns the first currency code, or nil when the country has none.
func (c RawCountry) CurrencyCode() *string {
	if len(c.Currencies) == 0 || c.Currencies[0].Code == "" {
		return nil
	}
	code := c.Currencies[0].Code
	return &code
}

// RateTable maps currency codes to their rate against the base currency.
type RateTable map[string]float64

// Lookup returns the rate for code. Absence is reported as nil, never as zero.
func (t RateTable) Lookup(code *string) *float64 {
	if code == nil {
		return nil
	}
	rate, ok := t[*code]
	if !ok {
		return nil
	}
	return &rate
}

// Country is a reconciled country record, ready to be committed.
type Country struct {
	Name         string
	Capital      *string
	Region       *string
	Population   int64
	CurrencyCode *string
	ExchangeRate *float64
	EstimatedGDP float64
	FlagURL      *string

	// LastRefreshedAt is stamped by the store on commit.
	LastRefreshedAt time.Time
}

// RefreshResult summarizes a completed refresh run.
type RefreshResult struct {
	// Fetched is the number of country records received from the source.
	Fetched int `json:"fetched"`

	// Committed is the number of records upserted into the store.
	Committed int `json:"committed"`

	// Skipped counts records that could not be keyed (blank name).
	Skipped int `json:"skipped"`

	// WithoutRate counts committed records whose GDP could not be derived.
	WithoutRate int `json:"without_rate"`

	// Duration is the wall time of the whole run.
	Duration time.Duration `json:"-"`
}
