package entity

import "time"

// Tipos de movimiento del libro de bodega.
const (
	MovementTypeIN     = "IN"     // entrada: suma cantidad
	MovementTypeOUT    = "OUT"    // salida: resta cantidad, rechaza si queda negativo
	MovementTypeADJUST = "ADJUST" // ajuste: fija la cantidad absoluta resultante
)

// Movement es un evento del libro de bodega. Append-only: una vez registrado
// no se edita ni se borra. Para ADJUST, Quantity es la cantidad absoluta
// objetivo, no un delta.
type Movement struct {
	ID         string
	ItemID     string
	CustomerID string // denormalizado del artículo al momento de escribir
	Type       string // IN, OUT, ADJUST
	Quantity   int    // positivo para IN/OUT; objetivo >= 0 para ADJUST
	Date       string // fecha calendario YYYY-MM-DD
	Note       string
	BookingID  string // opcional: reserva origen, dedup por (booking_id, type)
	CreatedAt  time.Time
}

// ValidMovementType indica si el tipo es uno de los conocidos.
func ValidMovementType(t string) bool {
	return t == MovementTypeIN || t == MovementTypeOUT || t == MovementTypeADJUST
}
