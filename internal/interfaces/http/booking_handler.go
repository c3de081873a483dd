package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/logistica-api/internal/application/dto"
	"github.com/tu-usuario/logistica-api/internal/application/usecase"
	"github.com/tu-usuario/logistica-api/internal/domain"
	"github.com/tu-usuario/logistica-api/internal/infrastructure/excel"
)

// BookingHandler maneja las peticiones HTTP para reservas (protegido).
type BookingHandler struct {
	uc       *usecase.BookingUseCase
	exporter *excel.BookingExporter
}

// NewBookingHandler construye el handler.
func NewBookingHandler(uc *usecase.BookingUseCase, exporter *excel.BookingExporter) *BookingHandler {
	return &BookingHandler{uc: uc, exporter: exporter}
}

// Create godoc
// @Summary      Crear reserva manual
// @Tags         bookings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BookingPayload  true  "Datos de la reserva"
// @Success      201   {object}  dto.BookingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/bookings [post]
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var in dto.BookingPayload
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if msg := validationMessage(in); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDate) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "fecha inválida, formato YYYY-MM-DD"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene una reserva.
func (h *BookingHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "reserva no encontrada"})
	}
	return c.JSON(out)
}

// Update actualiza una reserva (parcial). Aplica igual a manuales y generadas;
// la trazabilidad de recurrencia nunca cambia.
func (h *BookingHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBookingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if msg := validationMessage(in); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDate) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "fecha inválida, formato YYYY-MM-DD"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "reserva no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar reservas
// @Tags         bookings
// @Security     Bearer
// @Produce      json
// @Param        rule_id  query  string  false  "Filtrar por regla de recurrencia"
// @Param        limit    query  int     false  "Límite (default 20, max 100)"
// @Param        offset   query  int     false  "Offset"
// @Success      200  {object}  dto.BookingListResponse
// @Router       /api/bookings [get]
func (h *BookingHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()
	out, err := h.uc.List(c.Query("rule_id"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar reservas a XLSX
// @Tags         bookings
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        rule_id  query  string  false  "Filtrar por regla de recurrencia"
// @Success      200  {file}  binary
// @Router       /api/bookings/export [get]
func (h *BookingHandler) Export(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.List(c.Query("rule_id"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	data, err := h.exporter.Export(list.Items)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reservas.xlsx"`)
	return c.Send(data)
}

// Delete elimina una reserva.
func (h *BookingHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
