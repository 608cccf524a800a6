package status

import (
	"country-api/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the status surface.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the status routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/status", h.HandleStatus)
}

// HandleStatus returns the dataset status.
// @Summary Get Status
// @Description Returns the number of stored countries and the latest refresh time (null when empty).
// @Tags status
// @Produce json
// @Success 200 {object} models.Stats "Status"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	stats, err := h.service.Status(c.UserContext())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Status check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	return c.JSON(stats)
}
