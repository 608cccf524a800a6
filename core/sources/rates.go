package sources

import (
	"context"
	"errors"
	"fmt"

	"country-api/core/reconcile"
)

// ratesPayload is the open.er-api "latest" document.
type ratesPayload struct {
	Result   string             `json:"result"`
	BaseCode string             `json:"base_code"`
	Rates    map[string]float64 `json:"rates"`
}

// RateSource reads an open.er-api style exchange-rate document.
type RateSource struct {
	client *Client
	url    string
}

// NewRateSource creates a rate source for url.
func NewRateSource(client *Client, url string) *RateSource {
	return &RateSource{client: client, url: url}
}

// Endpoint returns the source URL.
func (s *RateSource) Endpoint() string {
	return s.url
}

// FetchRates returns the rate table. A document that does not report success
// or carries no rates counts as malformed.
func (s *RateSource) FetchRates(ctx context.Context) (reconcile.RateTable, error) {
	var payload ratesPayload
	if err := s.client.getJSON(ctx, s.url, &payload); err != nil {
		return nil, reconcile.AsSourceUnavailable(s.url, err)
	}

	if payload.Result != "" && payload.Result != "success" {
		return nil, reconcile.AsSourceUnavailable(s.url, fmt.Errorf("provider reported result %q", payload.Result))
	}
	if payload.Rates == nil {
		return nil, reconcile.AsSourceUnavailable(s.url, errors.New("response has no rates"))
	}

	return reconcile.RateTable(payload.Rates), nil
}

// New builds both sources sharing one rate-limited client.
func New(cfg Config, client *Client) (*CountrySource, *RateSource) {
	return NewCountrySource(client, cfg.CountriesURL), NewRateSource(client, cfg.RatesURL)
}
