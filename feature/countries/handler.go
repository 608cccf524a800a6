package countries

import (
	"errors"
	"net/url"

	"country-api/core/logger"
	"country-api/core/reconcile"
	"country-api/feature/countries/models"
	"country-api/feature/snapshot"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const sortGDPDesc = "gdp_desc"

// RefreshResponse acknowledges a completed refresh.
type RefreshResponse struct {
	Message     string `json:"message"`
	Fetched     int    `json:"fetched"`
	Committed   int    `json:"committed"`
	Skipped     int    `json:"skipped"`
	WithoutRate int    `json:"without_rate"`
}

// Handler handles HTTP requests for countries.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) routes() []route {
	return []route{
		{fiber.MethodGet, "/countries", h.HandleList},
		{fiber.MethodGet, "/countries/:name", h.HandleGet},
		{fiber.MethodDelete, "/countries/:name", h.HandleDelete},
		{fiber.MethodPost, "/countries/refresh", h.HandleRefresh},
		{fiber.MethodGet, "/countries/image", h.HandleImage},
	}
}

// RegisterRoutes registers the countries routes, most specific first.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	for _, r := range orderRoutes(h.routes()) {
		app.Add(r.method, r.path, r.handler)
	}
}

// HandleRefresh fetches both sources and upserts every country.
// @Summary Refresh Countries
// @Description Fetches countries and exchange rates, derives estimated GDP and upserts every country by name. The summary is regenerated afterwards.
// @Tags countries
// @Produce json
// @Success 200 {object} RefreshResponse "Refresh Result"
// @Failure 503 {object} map[string]string "External data source unavailable"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /countries/refresh [post]
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	result, err := h.service.Refresh(c.UserContext())
	if err != nil {
		return h.respondError(c, l, "Refresh failed", err)
	}

	return c.JSON(RefreshResponse{
		Message:     "Countries refreshed successfully",
		Fetched:     result.Fetched,
		Committed:   result.Committed,
		Skipped:     result.Skipped,
		WithoutRate: result.WithoutRate,
	})
}

// HandleList lists countries.
// @Summary List Countries
// @Description Lists countries, optionally filtered by exact region and currency code and sorted by estimated GDP.
// @Tags countries
// @Produce json
// @Param region query string false "Region (exact match)"
// @Param currency query string false "Currency code (exact match)"
// @Param sort query string false "Sort order" Enums(gdp_desc)
// @Success 200 {array} models.Country "Countries"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /countries [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	sortBy := c.Query("sort")
	if sortBy != "" && sortBy != sortGDPDesc {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid sort parameter, expected gdp_desc",
		})
	}

	rows, err := h.service.List(c.UserContext(), models.Query{
		Region:        c.Query("region"),
		Currency:      c.Query("currency"),
		SortByGDPDesc: sortBy == sortGDPDesc,
	})
	if err != nil {
		return h.respondError(c, l, "List failed", err)
	}

	return c.JSON(rows)
}

// HandleImage returns the latest summary.
// @Summary Get Summary
// @Description Returns the summary generated by the last successful refresh.
// @Tags countries
// @Produce json
// @Success 200 {object} snapshot.Summary "Summary"
// @Failure 404 {object} map[string]string "Summary image not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /countries/image [get]
func (h *Handler) HandleImage(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	summary, err := h.service.Summary(c.UserContext())
	if errors.Is(err, snapshot.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Summary image not found",
		})
	}
	if err != nil {
		return h.respondError(c, l, "Summary read failed", err)
	}

	return c.JSON(summary)
}

// HandleGet returns a single country.
// @Summary Get Country
// @Description Returns the country whose name matches exactly.
// @Tags countries
// @Produce json
// @Param name path string true "Country name"
// @Success 200 {object} models.Country "Country"
// @Failure 404 {object} map[string]string "Country not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /countries/{name} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	country, err := h.service.Get(c.UserContext(), nameParam(c))
	if err != nil {
		return h.respondError(c, l, "Lookup failed", err)
	}

	return c.JSON(country)
}

// HandleDelete removes a single country.
// @Summary Delete Country
// @Description Deletes the country whose name matches exactly.
// @Tags countries
// @Produce json
// @Param name path string true "Country name"
// @Success 200 {object} map[string]string "Deleted"
// @Failure 404 {object} map[string]string "Country not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /countries/{name} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	name := nameParam(c)
	if err := h.service.Delete(c.UserContext(), name); err != nil {
		return h.respondError(c, l, "Delete failed", err)
	}

	l.Info("Country deleted", zap.String("name", name))
	return c.JSON(fiber.Map{"message": "Country deleted successfully"})
}

// nameParam returns the decoded :name segment.
func nameParam(c *fiber.Ctx) string {
	raw := c.Params("name")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

// respondError maps the error taxonomy onto HTTP responses.
func (h *Handler) respondError(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	var unavailable *reconcile.SourceUnavailableError
	switch {
	case errors.As(err, &unavailable):
		l.Warn(msg, zap.String("endpoint", unavailable.Endpoint), zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":   "External data source unavailable",
			"details": "Could not fetch data from " + unavailable.Endpoint,
		})
	case errors.Is(err, reconcile.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Country not found",
		})
	default:
		l.Error(msg, zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
}
