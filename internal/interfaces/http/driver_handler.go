package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/logistica-api/internal/application/dto"
	"github.com/tu-usuario/logistica-api/internal/application/usecase"
	"github.com/tu-usuario/logistica-api/internal/domain"
)

// DriverHandler maneja las peticiones HTTP para conductores (protegido).
type DriverHandler struct {
	uc *usecase.DriverUseCase
}

// NewDriverHandler construye el handler.
func NewDriverHandler(uc *usecase.DriverUseCase) *DriverHandler {
	return &DriverHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar conductor
// @Tags         drivers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDriverRequest  true  "nombre, cédula, teléfono, licencia"
// @Success      201   {object}  dto.DriverResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/drivers [post]
func (h *DriverHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDriverRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if msg := validationMessage(in); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "la cédula ya existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene un conductor.
func (h *DriverHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "conductor no encontrado"})
	}
	return c.JSON(out)
}

// Update actualiza un conductor (parcial).
func (h *DriverHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDriverRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "conductor no encontrado"})
	}
	return c.JSON(out)
}

// List lista conductores con paginación.
func (h *DriverHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()
	out, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete elimina un conductor.
func (h *DriverHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
