package entity

import "time"

// Booking representa una reserva de transporte/almacenaje de un cliente.
// Los campos conocidos están tipados; Extra es la bolsa de atributos abiertos
// que viaja con la plantilla de recurrencia y se clona tal cual.
type Booking struct {
	ID               string
	BookingNumber    string
	CustomerID       string
	VehicleID        string
	DriverID         string
	PickupDate       string // fecha calendario YYYY-MM-DD
	DeliveryDate     string // fecha calendario YYYY-MM-DD
	PickupAddress    string
	DeliveryAddress  string
	CargoDescription string
	Notes            string

	// Trazabilidad de recurrencia. RecurringKey = "<ruleID>:<fecha>" y tiene
	// índice único en la tabla bookings: a lo sumo una reserva por ocurrencia.
	RecurringRuleID string
	RecurringDate   string
	RecurringKey    string

	Extra map[string]any // atributos abiertos de la plantilla (JSONB)

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone devuelve una copia profunda de la reserva (la bolsa Extra se copia
// recursivamente, ninguna estructura anidada queda compartida). Base de la
// expansión de plantillas de recurrencia.
func (b Booking) Clone() Booking {
	c := b
	if b.Extra != nil {
		c.Extra = deepCopyMap(b.Extra)
	}
	return c
}

// deepCopyMap copia recursivamente los contenedores que produce el JSONB
// decodificado (map[string]any y []any); los escalares se copian por valor.
func deepCopyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return deepCopyMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopyValue(e)
		}
		return out
	default:
		return t
	}
}
