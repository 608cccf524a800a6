package sources

// Config holds configuration for the upstream datasets.
type Config struct {
	// CountriesURL is the country metadata endpoint.
	CountriesURL string `mapstructure:"countries_url" default:"https://restcountries.com/v2/all?fields=name,capital,region,population,flag,currencies"`
	// RatesURL is the exchange-rate endpoint (rates relative to a single base currency).
	RatesURL string `mapstructure:"rates_url" default:"https://open.er-api.com/v6/latest/USD"`
	// TimeoutSeconds bounds each upstream request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// RateLimitPerSec caps outbound requests per second across both sources.
	RateLimitPerSec int `mapstructure:"rate_limit_per_sec" default:"5"`
	// UserAgent is sent with every upstream request.
	UserAgent string `mapstructure:"user_agent" default:"country-api/1.0"`
}
