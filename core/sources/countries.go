package sources

import (
	"context"

	"country-api/core/reconcile"
)

// CountrySource reads the restcountries v2 dataset.
type CountrySource struct {
	client *Client
	url    string
}

// NewCountrySource creates a country source for url.
func NewCountrySource(client *Client, url string) *CountrySource {
	return &CountrySource{client: client, url: url}
}

// Endpoint returns the source URL.
func (s *CountrySource) Endpoint() string {
	return s.url
}

// FetchCountries returns the full country list in upstream order.
func (s *CountrySource) FetchCountries(ctx context.Context) ([]reconcile.RawCountry, error) {
	var countries []reconcile.RawCountry
	if err := s.client.getJSON(ctx, s.url, &countries); err != nil {
		return nil, reconcile.AsSourceUnavailable(s.url, err)
	}
	return countries, nil
}
