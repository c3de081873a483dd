package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/logistica-api/internal/application/dto"
	"github.com/tu-usuario/logistica-api/internal/application/usecase"
)

// DashboardHandler expone los agregados del tablero (protegido).
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get godoc
// @Summary      Agregados del tablero
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
