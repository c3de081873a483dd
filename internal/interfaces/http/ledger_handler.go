package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/logistica-api/internal/application/dto"
	"github.com/tu-usuario/logistica-api/internal/application/ledger"
	"github.com/tu-usuario/logistica-api/internal/domain"
	"github.com/tu-usuario/logistica-api/internal/domain/entity"
)

// LedgerHandler maneja artículos de bodega y su libro de movimientos (protegido).
type LedgerHandler struct {
	uc          *ledger.UseCase
	estimateDoc *ledger.EstimateDocUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *ledger.UseCase, estimateDoc *ledger.EstimateDocUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc, estimateDoc: estimateDoc}
}

// CreateItem godoc
// @Summary      Crear artículo de bodega
// @Description  Si viene booking_id y ya existe un IN para esa reserva, la
// @Description  operación es idempotente y devuelve el artículo existente.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.ItemWithMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *LedgerHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if msg := validationMessage(in); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
	}
	res, err := h.uc.CreateItem(c.Context(), ledger.CreateItemInput{
		CustomerID:        in.CustomerID,
		Description:       in.Description,
		InitialQuantity:   in.InitialQuantity,
		DailyStoragePrice: in.DailyStoragePrice,
		ArrivedAt:         in.ArrivedAt,
		BookingID:         in.BookingID,
		Note:              in.Note,
	})
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toItemWithMovement(res))
}

// GetItem obtiene un artículo.
func (h *LedgerHandler) GetItem(c *fiber.Ctx) error {
	item, err := h.uc.GetItem(c.Context(), c.Params("id"))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(toItemResponse(item))
}

// ListItems lista artículos, opcionalmente filtrados por cliente.
func (h *LedgerHandler) ListItems(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.ListItems(c.Context(), c.Query("customer_id"), page.Limit, page.Offset)
	if err != nil {
		return ledgerError(c, err)
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, toItemResponse(it))
	}
	return c.JSON(dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// DeleteItem elimina un artículo sin movimientos.
func (h *LedgerHandler) DeleteItem(c *fiber.Ctx) error {
	deleted, err := h.uc.DeleteItem(c.Context(), c.Params("id"))
	if err != nil {
		return ledgerError(c, err)
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RecordMovement godoc
// @Summary      Registrar movimiento IN/OUT/ADJUST
// @Description  IN suma, OUT resta (rechaza si queda negativo), ADJUST fija la
// @Description  cantidad absoluta. La transición y el movimiento se aplican
// @Description  como una unidad atómica.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del artículo"
// @Param        body  body  dto.RecordMovementRequest  true  "tipo, cantidad, fecha, nota"
// @Success      201   {object}  dto.ItemWithMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/movements [post]
func (h *LedgerHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if msg := validationMessage(in); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
	}
	res, err := h.uc.RecordMovement(c.Context(), ledger.MovementInput{
		ItemID:   c.Params("id"),
		Type:     in.Type,
		Quantity: in.Quantity,
		Date:     in.Date,
		Note:     in.Note,
	})
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toItemWithMovement(res))
}

// ListMovements lista el historial de un artículo.
func (h *LedgerHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.ListMovements(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return ledgerError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m))
	}
	return c.JSON(dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// GetEstimate godoc
// @Summary      Estimado de costo de almacenaje
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.EstimateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/estimate [get]
func (h *LedgerHandler) GetEstimate(c *fiber.Ctx) error {
	est, err := h.uc.GetEstimate(c.Context(), c.Params("id"))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(dto.EstimateResponse{
		ItemID:       est.ItemID,
		DurationDays: est.DurationDays,
		Cost:         est.Cost,
	})
}

// GetEstimatePDF devuelve el estimado como documento PDF.
func (h *LedgerHandler) GetEstimatePDF(c *fiber.Ctx) error {
	data, err := h.estimateDoc.Generate(c.Context(), c.Params("id"))
	if err != nil {
		return ledgerError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="estimado.pdf"`)
	return c.Send(data)
}

// ledgerError mapea los errores del libro de bodega a HTTP.
func ledgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInvalidDate):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "fecha inválida, formato YYYY-MM-DD"})
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "cantidad inválida para el tipo de movimiento"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNegativeQuantity):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NEGATIVE_QUANTITY", Message: "la salida dejaría cantidad negativa"})
	case errors.Is(err, domain.ErrHasMovements):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "HAS_MOVEMENTS", Message: "el artículo tiene movimientos y no puede eliminarse"})
	case errors.Is(err, domain.ErrPreconditionFailed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto de concurrencia, reintente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toItemResponse(it *entity.WarehouseItem) dto.ItemResponse {
	return dto.ItemResponse{
		ID:                it.ID,
		CustomerID:        it.CustomerID,
		Description:       it.Description,
		Quantity:          it.Quantity,
		DailyStoragePrice: it.DailyStoragePrice,
		ArrivedAt:         it.ArrivedAt,
		DepartedAt:        it.DepartedAt,
		CreatedAt:         it.CreatedAt,
		UpdatedAt:         it.UpdatedAt,
	}
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:         m.ID,
		ItemID:     m.ItemID,
		CustomerID: m.CustomerID,
		Type:       m.Type,
		Quantity:   m.Quantity,
		Date:       m.Date,
		Note:       m.Note,
		BookingID:  m.BookingID,
		CreatedAt:  m.CreatedAt,
	}
}

func toItemWithMovement(res *ledger.MovementResult) dto.ItemWithMovementResponse {
	out := dto.ItemWithMovementResponse{Item: toItemResponse(res.Item)}
	if res.Movement != nil {
		mov := toMovementResponse(res.Movement)
		out.Movement = &mov
	}
	return out
}
