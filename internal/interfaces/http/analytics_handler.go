package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cosmic-portals/portals-api/internal/application/dto"
	"github.com/cosmic-portals/portals-api/internal/application/usecase"
)

// AnalyticsHandler agregados de escaneo de la organización (protegido).
type AnalyticsHandler struct {
	uc *usecase.AnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *usecase.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Organization godoc
// @Summary      Analítica de la organización
// @Description  Totales, días activos, desglose por tipo de escaneo y serie diaria de los últimos 30 días.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrganizationAnalyticsResponse
// @Router       /api/analytics [get]
func (h *AnalyticsHandler) Organization(c *fiber.Ctx) error {
	out, err := h.uc.OrganizationAnalytics(c.Context(), GetOrganizationID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
