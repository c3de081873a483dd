package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los handlers HTTP los traducen a códigos de estado; la capa postgres los
// envuelve con contexto vía fmt.Errorf("...: %w", err).
var (
	// Núcleo: recurrencias y libro de bodega
	ErrRuleNotFound       = errors.New("regla de recurrencia no encontrada")
	ErrItemNotFound       = errors.New("artículo de bodega no encontrado")
	ErrInvalidDate        = errors.New("fecha inválida, se espera YYYY-MM-DD")
	ErrInvalidQuantity    = errors.New("cantidad inválida")
	ErrNegativeQuantity   = errors.New("el movimiento dejaría la cantidad en negativo")
	ErrHasMovements       = errors.New("el artículo tiene movimientos asociados")
	ErrPreconditionFailed = errors.New("precondición de cantidad no cumplida, reintentar")

	// Capa CRUD
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)
