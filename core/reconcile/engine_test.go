package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCountrySource is a simple test source
type fakeCountrySource struct {
	countries []RawCountry
	err       error
	fetchFunc func(context.Context) ([]RawCountry, error)
}

func (f *fakeCountrySource) Endpoint() string { return "https://countries.test/all" }

func (f *fakeCountrySource) FetchCountries(ctx context.Context) ([]RawCountry, error) {
	if f.fetchFunc != nil {
		return f.fetchFunc(ctx)
	}
	return f.countries, f.err
}

type fakeRateSource struct {
	rates     RateTable
	err       error
	fetchFunc func(context.Context) (RateTable, error)
}

func (f *fakeRateSource) Endpoint() string { return "https://rates.test/latest/USD" }

func (f *fakeRateSource) FetchRates(ctx context.Context) (RateTable, error) {
	if f.fetchFunc != nil {
		return f.fetchFunc(ctx)
	}
	return f.rates, f.err
}

// memoryStore records upserts in commit order and can fail on a given name.
type memoryStore struct {
	mu      sync.Mutex
	rows    map[string]Country
	order   []string
	failOn  string
	failErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{rows: make(map[string]Country)}
}

func (m *memoryStore) Upsert(ctx context.Context, c *Country) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.Name == m.failOn {
		return m.failErr
	}
	c.LastRefreshedAt = time.Now()
	m.rows[c.Name] = *c
	m.order = append(m.order, c.Name)
	return nil
}

type fakeReporter struct {
	calls int
	err   error
}

func (f *fakeReporter) Regenerate(ctx context.Context) error {
	f.calls++
	return f.err
}

func sampleCountries() []RawCountry {
	return []RawCountry{
		{Name: "Nigeria", Capital: "Abuja", Region: "Africa", Population: float64(1000000), Currencies: []RawCurrency{{Code: "NGN"}}, Flag: "https://flags.test/ng.svg"},
		{Name: "Ghana", Capital: "Accra", Region: "Africa", Population: "2000", Currencies: []RawCurrency{{Code: "GHS"}}},
		{Name: "Antarctica", Region: "Polar", Population: 1000},
	}
}

func sampleRates() RateTable {
	return RateTable{"NGN": 1600, "GHS": 15.5}
}

func TestReconcile_NoCurrency(t *testing.T) {
	for _, currencies := range [][]RawCurrency{nil, {}, {{Code: ""}}} {
		c := Reconcile(RawCountry{Name: "Nowhere", Population: 10, Currencies: currencies}, sampleRates(), 1500)
		assert.Nil(t, c.CurrencyCode)
		assert.Nil(t, c.ExchangeRate)
		assert.Equal(t, 0.0, c.EstimatedGDP)
	}
}

func TestReconcile_UnknownCurrency(t *testing.T) {
	c := Reconcile(RawCountry{Name: "Zimbabwe", Population: 10, Currencies: []RawCurrency{{Code: "ZWL"}}}, sampleRates(), 1500)
	require.NotNil(t, c.CurrencyCode)
	assert.Equal(t, "ZWL", *c.CurrencyCode)
	assert.Nil(t, c.ExchangeRate)
	assert.Equal(t, 0.0, c.EstimatedGDP)
}

func TestReconcile_ZeroRate(t *testing.T) {
	rates := RateTable{"XXX": 0}
	c := Reconcile(RawCountry{Name: "Zero", Population: 10, Currencies: []RawCurrency{{Code: "XXX"}}}, rates, 1500)
	require.NotNil(t, c.ExchangeRate, "a zero rate is present, not absent")
	assert.Equal(t, 0.0, *c.ExchangeRate)
	assert.Equal(t, 0.0, c.EstimatedGDP)
}

func TestReconcile_OnlyFirstCurrencyIsUsed(t *testing.T) {
	raw := RawCountry{Name: "Zimbabwe", Population: 1000, Currencies: []RawCurrency{{Code: "ZWL"}, {Code: "NGN"}}}
	c := Reconcile(raw, sampleRates(), 1500)
	assert.Equal(t, "ZWL", *c.CurrencyCode)
	assert.Nil(t, c.ExchangeRate)
}

func TestReconcile_Normalization(t *testing.T) {
	c := Reconcile(RawCountry{Name: "Blank", Population: "unknown"}, sampleRates(), 1500)
	assert.Equal(t, int64(0), c.Population)
	assert.Nil(t, c.Capital)
	assert.Nil(t, c.Region)
	assert.Nil(t, c.FlagURL)

	c = Reconcile(RawCountry{Name: "Negative", Population: -20}, sampleRates(), 1500)
	assert.Equal(t, int64(0), c.Population)

	c = Reconcile(sampleCountries()[1], sampleRates(), 1500)
	assert.Equal(t, int64(2000), c.Population)
	assert.Equal(t, "Accra", *c.Capital)
}

func TestEstimateGDP(t *testing.T) {
	rate := 1600.0
	assert.Equal(t, 937500.0, EstimateGDP(1000000, &rate, 1500))
	assert.Equal(t, 0.0, EstimateGDP(1000000, nil, 1500))

	zero := 0.0
	assert.Equal(t, 0.0, EstimateGDP(1000000, &zero, 1500))

	negative := -3.0
	assert.Equal(t, 0.0, EstimateGDP(1000000, &negative, 1500))
}

func TestReconcile_FixedMultiplier(t *testing.T) {
	c := Reconcile(sampleCountries()[0], sampleRates(), FixedMultiplier(1500).Next())
	assert.Equal(t, 937500.0, c.EstimatedGDP)
}

func TestRandomMultiplier(t *testing.T) {
	m := NewRandomMultiplier(42)
	for i := 0; i < 10000; i++ {
		v := m.Next()
		assert.GreaterOrEqual(t, v, MultiplierMin)
		assert.Less(t, v, MultiplierMax)
	}

	a, b := NewRandomMultiplier(7), NewRandomMultiplier(7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestRefresh_CommitsInSourceOrder(t *testing.T) {
	store := newMemoryStore()
	reporter := &fakeReporter{}
	engine := NewEngine(
		&fakeCountrySource{countries: sampleCountries()},
		&fakeRateSource{rates: sampleRates()},
		store,
		WithMultiplier(FixedMultiplier(1500)),
		WithReporter(reporter),
	)

	result, err := engine.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Nigeria", "Ghana", "Antarctica"}, store.order)
	assert.Equal(t, 3, result.Fetched)
	assert.Equal(t, 3, result.Committed)
	assert.Equal(t, 1, result.WithoutRate)
	assert.Equal(t, 1, reporter.calls)

	assert.Equal(t, 937500.0, store.rows["Nigeria"].EstimatedGDP)
	assert.Equal(t, 0.0, store.rows["Antarctica"].EstimatedGDP)
	assert.False(t, store.rows["Ghana"].LastRefreshedAt.IsZero())
}

func TestRefresh_FreshMultiplierPerCountry(t *testing.T) {
	store := newMemoryStore()
	raws := []RawCountry{
		{Name: "A", Population: 1000, Currencies: []RawCurrency{{Code: "NGN"}}},
		{Name: "B", Population: 1000, Currencies: []RawCurrency{{Code: "NGN"}}},
	}
	engine := NewEngine(&fakeCountrySource{countries: raws}, &fakeRateSource{rates: sampleRates()}, store,
		WithMultiplier(NewRandomMultiplier(1)))

	_, err := engine.Refresh(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, store.rows["A"].EstimatedGDP, store.rows["B"].EstimatedGDP)
}

func TestRefresh_SourceUnavailable(t *testing.T) {
	tests := []struct {
		name     string
		countErr error
		rateErr  error
		endpoint string
	}{
		{"Countries", errors.New("connection refused"), nil, "https://countries.test/all"},
		{"Rates", nil, errors.New("bad payload"), "https://rates.test/latest/USD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			reporter := &fakeReporter{}
			engine := NewEngine(
				&fakeCountrySource{countries: sampleCountries(), err: tt.countErr},
				&fakeRateSource{rates: sampleRates(), err: tt.rateErr},
				store,
				WithReporter(reporter),
			)

			result, err := engine.Refresh(context.Background())
			assert.Nil(t, result)

			var su *SourceUnavailableError
			require.ErrorAs(t, err, &su)
			assert.Equal(t, tt.endpoint, su.Endpoint)
			assert.Empty(t, store.order, "nothing is committed when a source fails")
			assert.Zero(t, reporter.calls)
		})
	}
}

func TestRefresh_FailsFastOnFirstSourceError(t *testing.T) {
	countries := &fakeCountrySource{
		fetchFunc: func(ctx context.Context) ([]RawCountry, error) {
			return nil, errors.New("dns failure")
		},
	}
	rates := &fakeRateSource{
		fetchFunc: func(ctx context.Context) (RateTable, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(5 * time.Second):
				return sampleRates(), nil
			}
		},
	}

	start := time.Now()
	_, err := NewEngine(countries, rates, newMemoryStore()).Refresh(context.Background())
	assert.Less(t, time.Since(start), 2*time.Second)

	var su *SourceUnavailableError
	require.ErrorAs(t, err, &su)
	assert.Equal(t, "https://countries.test/all", su.Endpoint)
}

func TestRefresh_StorageFailureKeepsPriorCommits(t *testing.T) {
	store := newMemoryStore()
	store.failOn = "Ghana"
	store.failErr = fmt.Errorf("deadlock found")
	reporter := &fakeReporter{}

	engine := NewEngine(
		&fakeCountrySource{countries: sampleCountries()},
		&fakeRateSource{rates: sampleRates()},
		store,
		WithReporter(reporter),
	)

	result, err := engine.Refresh(context.Background())

	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Op, "Ghana")
	assert.ErrorIs(t, err, store.failErr)

	assert.Equal(t, []string{"Nigeria"}, store.order)
	assert.Equal(t, 1, result.Committed)
	assert.Zero(t, reporter.calls, "no snapshot after a partial batch")
}

func TestRefresh_ReporterFailureDoesNotFailRefresh(t *testing.T) {
	reporter := &fakeReporter{err: errors.New("bucket gone")}
	engine := NewEngine(
		&fakeCountrySource{countries: sampleCountries()},
		&fakeRateSource{rates: sampleRates()},
		newMemoryStore(),
		WithReporter(reporter),
	)

	result, err := engine.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, result.Committed)
	assert.Equal(t, 1, reporter.calls)
}

func TestRefresh_SkipsBlankNames(t *testing.T) {
	store := newMemoryStore()
	raws := append(sampleCountries(), RawCountry{Name: "  ", Population: 5})
	engine := NewEngine(&fakeCountrySource{countries: raws}, &fakeRateSource{rates: sampleRates()}, store)

	result, err := engine.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, result.Fetched)
	assert.Equal(t, 3, result.Committed)
	assert.Equal(t, 1, result.Skipped)
}

func TestErrorWrapping(t *testing.T) {
	base := errors.New("boom")

	err := AsStorageError("upsert X", base)
	wrapped := AsStorageError("upsert Y", err)
	assert.Same(t, err, wrapped)
	assert.Equal(t, "storage error: upsert X: boom", err.Error())

	err = AsSourceUnavailable("https://a", base)
	assert.Equal(t, err, AsSourceUnavailable("https://b", err))
	assert.Equal(t, "source unavailable: https://a: boom", err.Error())

	assert.NoError(t, AsStorageError("noop", nil))
	assert.NoError(t, AsSourceUnavailable("noop", nil))
}
