package countries_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"country-api/core/reconcile"
	"country-api/feature/countries"
	"country-api/feature/countries/models"
	"country-api/feature/snapshot"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCountries struct {
	rows []reconcile.RawCountry
	err  error
}

func (s *stubCountries) Endpoint() string { return "https://restcountries.test/v2/all" }
func (s *stubCountries) FetchCountries(ctx context.Context) ([]reconcile.RawCountry, error) {
	if s.err != nil {
		return nil, reconcile.AsSourceUnavailable(s.Endpoint(), s.err)
	}
	return s.rows, nil
}

type stubRates struct {
	rates reconcile.RateTable
}

func (s *stubRates) Endpoint() string { return "https://rates.test/latest/USD" }
func (s *stubRates) FetchRates(ctx context.Context) (reconcile.RateTable, error) {
	return s.rates, nil
}

type stubSummaries struct {
	summary *snapshot.Summary
	err     error
}

func (s *stubSummaries) Latest(ctx context.Context) (*snapshot.Summary, error) {
	return s.summary, s.err
}

type env struct {
	app       *fiber.App
	store     *countries.Store
	countries *stubCountries
	summaries *stubSummaries
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := countries.NewStore(newTestDB(t))
	src := &stubCountries{rows: []reconcile.RawCountry{
		{Name: "Nigeria", Capital: "Abuja", Region: "Africa", Population: json.Number("1000000"),
			Currencies: []reconcile.RawCurrency{{Code: "NGN"}}, Flag: "https://flagcdn.com/ng.svg"},
		{Name: "Ghana", Capital: "Accra", Region: "Africa", Population: 31072940,
			Currencies: []reconcile.RawCurrency{{Code: "GHS"}}},
		{Name: "Antarctica", Region: "Polar", Population: 1000},
	}}
	rates := &stubRates{rates: reconcile.RateTable{"NGN": 1600, "GHS": 15.3}}
	engine := reconcile.NewEngine(src, rates, store, reconcile.WithMultiplier(reconcile.FixedMultiplier(1500)))
	summaries := &stubSummaries{err: snapshot.ErrNotFound}

	app := fiber.New()
	require.NoError(t, countries.NewFeature(countries.NewService(store, engine, summaries, nil)).Load(app))

	return &env{app: app, store: store, countries: src, summaries: summaries}
}

func (e *env) do(t *testing.T, method, target string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := e.app.Test(httptest.NewRequest(method, target, nil), -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var obj map[string]any
	_ = json.Unmarshal(body, &obj)
	return resp, obj
}

func (e *env) list(t *testing.T, target string) []models.Country {
	t.Helper()
	resp, err := e.app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rows []models.Country
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rows))
	return rows
}

func TestHandleRefresh(t *testing.T) {
	e := newEnv(t)

	resp, body := e.do(t, http.MethodPost, "/countries/refresh")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Countries refreshed successfully", body["message"])
	assert.Equal(t, 3.0, body["committed"])
	assert.Equal(t, 1.0, body["without_rate"])

	rows := e.list(t, "/countries")
	require.Len(t, rows, 3)

	resp, body = e.do(t, http.MethodGet, "/countries/Nigeria")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 937500.0, body["estimated_gdp"])
	assert.Equal(t, "NGN", body["currency_code"])
	assert.Equal(t, "Abuja", body["capital"])

	resp, body = e.do(t, http.MethodGet, "/countries/Antarctica")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, body["currency_code"])
	assert.Nil(t, body["exchange_rate"])
	assert.Nil(t, body["capital"])
	assert.Equal(t, 0.0, body["estimated_gdp"])
}

func TestHandleRefresh_SourceUnavailable(t *testing.T) {
	e := newEnv(t)
	_, _ = e.do(t, http.MethodPost, "/countries/refresh")
	before := e.list(t, "/countries")

	e.countries.err = errors.New("dial tcp: i/o timeout")
	e.countries.rows = []reconcile.RawCountry{{Name: "Newland", Population: 5}}

	resp, body := e.do(t, http.MethodPost, "/countries/refresh")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "External data source unavailable", body["error"])
	assert.Equal(t, "Could not fetch data from https://restcountries.test/v2/all", body["details"])

	after := e.list(t, "/countries")
	assert.Equal(t, before, after)
}

func TestHandleList(t *testing.T) {
	e := newEnv(t)
	_, _ = e.do(t, http.MethodPost, "/countries/refresh")

	t.Run("Region", func(t *testing.T) {
		rows := e.list(t, "/countries?region=Africa")
		assert.Len(t, rows, 2)
		assert.Empty(t, e.list(t, "/countries?region=africa"))
	})

	t.Run("Currency", func(t *testing.T) {
		rows := e.list(t, "/countries?currency=GHS")
		require.Len(t, rows, 1)
		assert.Equal(t, "Ghana", rows[0].Name)
	})

	t.Run("SortByGDP", func(t *testing.T) {
		rows := e.list(t, "/countries?sort=gdp_desc")
		require.Len(t, rows, 3)
		assert.Equal(t, "Ghana", rows[0].Name)
		assert.Equal(t, "Antarctica", rows[2].Name)
	})

	t.Run("InvalidSort", func(t *testing.T) {
		resp, _ := e.do(t, http.MethodGet, "/countries?sort=name")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("EmptyIsArray", func(t *testing.T) {
		resp, err := e.app.Test(httptest.NewRequest(http.MethodGet, "/countries?region=Oceania", nil))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `[]`, string(body))
	})
}

func TestHandleGetAndDelete(t *testing.T) {
	e := newEnv(t)
	_, _ = e.do(t, http.MethodPost, "/countries/refresh")

	resp, body := e.do(t, http.MethodGet, "/countries/Atlantis")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Country not found", body["error"])

	resp, body = e.do(t, http.MethodDelete, "/countries/Ghana")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Country deleted successfully", body["message"])

	resp, _ = e.do(t, http.MethodDelete, "/countries/Ghana")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Len(t, e.list(t, "/countries"), 2)
}

func TestHandleGet_EncodedName(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.store.Upsert(context.Background(), &reconcile.Country{Name: "United Kingdom", Population: 1}))

	resp, body := e.do(t, http.MethodGet, "/countries/United%20Kingdom")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "United Kingdom", body["name"])
}

func TestHandleImage(t *testing.T) {
	e := newEnv(t)

	resp, body := e.do(t, http.MethodGet, "/countries/image")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Summary image not found", body["error"])

	e.summaries.err = nil
	e.summaries.summary = &snapshot.Summary{
		TotalCountries: 3,
		TopCountries:   []snapshot.TopCountry{{Name: "Ghana", EstimatedGDP: 3.04e9}},
		GeneratedAt:    time.Date(2025, 10, 22, 12, 0, 0, 0, time.UTC),
	}
	resp, body = e.do(t, http.MethodGet, "/countries/image")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3.0, body["total_countries"])

	e.summaries.err = errors.New("storage offline")
	resp, body = e.do(t, http.MethodGet, "/countries/image")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal server error", body["error"])
}

func TestHandleImage_NotShadowedByName(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.store.Upsert(context.Background(), &reconcile.Country{Name: "image", Population: 1}))

	resp, body := e.do(t, http.MethodGet, "/countries/image")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Summary image not found", body["error"])
}
