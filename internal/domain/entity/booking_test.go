package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/logistica-api/internal/domain/entity"
)

// TestBookingClone_ExtraSinCompartir: la bolsa Extra se copia en profundidad;
// mutar estructuras anidadas del clon no debe tocar el original (ni al revés).
// La plantilla de una regla se clona por cada ocurrencia generada, así que un
// alias compartido contaminaría todas las reservas hermanas.
func TestBookingClone_ExtraSinCompartir(t *testing.T) {
	original := entity.Booking{
		ID:         "b-1",
		CustomerID: "c-1",
		Extra: map[string]any{
			"muelle": "B",
			"contacto": map[string]any{
				"nombre":   "Marta",
				"telefono": "3001234567",
			},
			"sellos": []any{"S-1", "S-2"},
		},
	}

	clone := original.Clone()

	// Mutaciones sobre el clon, en todos los niveles.
	clone.Extra["muelle"] = "C"
	clone.Extra["contacto"].(map[string]any)["nombre"] = "Pedro"
	clone.Extra["sellos"].([]any)[0] = "S-99"

	assert.Equal(t, "B", original.Extra["muelle"])
	assert.Equal(t, "Marta", original.Extra["contacto"].(map[string]any)["nombre"])
	assert.Equal(t, "S-1", original.Extra["sellos"].([]any)[0])

	// Y en sentido contrario: mutar el original no afecta al clon.
	original.Extra["contacto"].(map[string]any)["telefono"] = "000"
	assert.Equal(t, "3001234567", clone.Extra["contacto"].(map[string]any)["telefono"])
}

// TestBookingClone_ExtraNil: un Extra ausente sigue ausente en el clon.
func TestBookingClone_ExtraNil(t *testing.T) {
	original := entity.Booking{ID: "b-2"}
	clone := original.Clone()
	require.Nil(t, clone.Extra)
}
