package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/logistica-api/internal/application/dto"
	"github.com/tu-usuario/logistica-api/internal/application/recurrence"
	"github.com/tu-usuario/logistica-api/internal/domain"
)

// RecurrenceHandler maneja reglas de recurrencia y su materialización (protegido).
type RecurrenceHandler struct {
	rules    *recurrence.RuleUseCase
	generate *recurrence.GenerateUseCase
}

// NewRecurrenceHandler construye el handler.
func NewRecurrenceHandler(rules *recurrence.RuleUseCase, generate *recurrence.GenerateUseCase) *RecurrenceHandler {
	return &RecurrenceHandler{rules: rules, generate: generate}
}

// Create godoc
// @Summary      Crear regla de recurrencia
// @Description  Persiste la regla y materializa de inmediato las reservas de
// @Description  su horizonte. POST /:id/generate queda disponible para
// @Description  re-materializar más adelante.
// @Tags         recurrences
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRuleRequest  true  "plantilla, fecha de inicio, paso y horizonte en semanas"
// @Success      201   {object}  dto.RuleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/recurrences [post]
func (h *RecurrenceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRuleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if msg := validationMessage(in); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
	}
	out, err := h.rules.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDate) || errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "regla inválida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	// La regla recién creada materializa sus reservas de inmediato.
	if _, err := h.generate.Generate(out.ID); err != nil {
		// La regla quedó persistida; reintentar con POST /:id/generate es seguro.
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "GENERATE_FAILED", Message: "regla guardada pero la generación falló, reintente con /generate"})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene una regla.
func (h *RecurrenceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.rules.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrRuleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "regla no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar regla de recurrencia (parcial)
// @Description  Cualquier subconjunto de plantilla, fecha de inicio, paso y
// @Description  horizonte. El cambio afecta solo a generaciones futuras: las
// @Description  reservas ya materializadas no se tocan.
// @Tags         recurrences
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la regla"
// @Param        body  body  dto.UpdateRuleRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.RuleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/recurrences/{id} [put]
func (h *RecurrenceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRuleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if msg := validationMessage(in); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
	}
	out, err := h.rules.Update(c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrRuleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "regla no encontrada"})
		}
		if errors.Is(err, domain.ErrInvalidDate) || errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "regla inválida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	// Cambió el calendario o la plantilla: materializar las fechas que falten.
	// Idempotente, las reservas ya existentes no se tocan.
	if _, err := h.generate.Generate(out.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "GENERATE_FAILED", Message: "regla actualizada pero la generación falló, reintente con /generate"})
	}
	return c.JSON(out)
}

// List lista reglas con paginación.
func (h *RecurrenceHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()
	out, err := h.rules.List(page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Generate godoc
// @Summary      Materializar reservas de una regla
// @Description  Expande el calendario de la regla y crea las reservas que
// @Description  falten. Idempotente: repetir la llamada no duplica reservas
// @Description  (dedup por recurring_key). Devuelve cuántas se crearon.
// @Tags         recurrences
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la regla"
// @Success      200  {object}  dto.GenerateResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recurrences/{id}/generate [post]
func (h *RecurrenceHandler) Generate(c *fiber.Ctx) error {
	created, err := h.generate.Generate(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrRuleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "regla no encontrada"})
		}
		if errors.Is(err, domain.ErrInvalidDate) || errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "regla con calendario inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.GenerateResponse{Created: created})
}
