// Package sources implements the upstream dataset adapters used by the refresh pipeline.
//
//   - CountrySource: restcountries v2 (name, capital, region, population, flag, currencies).
//   - RateSource: open.er-api "latest" rates relative to one base currency.
//
// Both share a Client that applies a token-bucket rate limit and a request
// timeout. There is no retry: any network, status or decoding failure is
// returned as a reconcile.SourceUnavailableError naming the endpoint.
package sources
