package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/tu-usuario/logistica-api/internal/domain"
	"github.com/tu-usuario/logistica-api/internal/domain/entity"
)

// TestRecordMovement_PropiedadDeConservacion: para cualquier secuencia de
// movimientos, la cantidad del artículo es exactamente el fold de los
// movimientos aceptados, nunca es negativa, y los rechazados no dejan efectos.
func TestRecordMovement_PropiedadDeConservacion(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		uc, store := newTestLedger(t)
		item := createHolding(t, uc, 0, "0")
		ctx := context.Background()

		model := 0
		accepted := 0
		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			typ := rapid.SampledFrom([]string{
				entity.MovementTypeIN, entity.MovementTypeOUT, entity.MovementTypeADJUST,
			}).Draw(rt, "type")
			amount := rapid.IntRange(-2, 30).Draw(rt, "amount")

			res, err := uc.RecordMovement(ctx, MovementInput{
				ItemID: item.ID, Type: typ, Quantity: amount, Date: "2024-07-01",
			})

			// Réplica del contrato: qué debería pasar según el modelo.
			switch {
			case (typ != entity.MovementTypeADJUST && amount <= 0) ||
				(typ == entity.MovementTypeADJUST && amount < 0):
				require.ErrorIs(rt, err, domain.ErrInvalidQuantity)
			case typ == entity.MovementTypeOUT && model-amount < 0:
				require.ErrorIs(rt, err, domain.ErrNegativeQuantity)
			default:
				require.NoError(rt, err)
				switch typ {
				case entity.MovementTypeIN:
					model += amount
				case entity.MovementTypeOUT:
					model -= amount
				default:
					model = amount
				}
				accepted++
				require.Equal(rt, model, res.Item.Quantity)
			}

			got, err := uc.GetItem(ctx, item.ID)
			require.NoError(rt, err)
			require.Equal(rt, model, got.Quantity, "la cantidad es el fold de lo aceptado")
			require.GreaterOrEqual(rt, got.Quantity, 0)

			count, err := store.CountByItem(item.ID)
			require.NoError(rt, err)
			require.Equal(rt, accepted, count, "solo lo aceptado queda en el historial")
		}
	})
}

// TestRecordMovement_PropiedadDeSalida: tras cualquier secuencia, DepartedAt
// está fijado exactamente cuando la cantidad es cero y hubo algún movimiento.
func TestRecordMovement_PropiedadDeSalida(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		uc, _ := newTestLedger(t)
		item := createHolding(t, uc, 0, "0")
		ctx := context.Background()

		moved := false
		steps := rapid.IntRange(1, 25).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			typ := rapid.SampledFrom([]string{
				entity.MovementTypeIN, entity.MovementTypeOUT, entity.MovementTypeADJUST,
			}).Draw(rt, "type")
			amount := rapid.IntRange(0, 15).Draw(rt, "amount")
			_, err := uc.RecordMovement(ctx, MovementInput{
				ItemID: item.ID, Type: typ, Quantity: amount, Date: "2024-08-01",
			})
			if err == nil {
				moved = true
			} else if !errors.Is(err, domain.ErrInvalidQuantity) && !errors.Is(err, domain.ErrNegativeQuantity) {
				rt.Fatalf("error inesperado: %v", err)
			}
		}

		got, err := uc.GetItem(ctx, item.ID)
		require.NoError(rt, err)
		if got.Quantity > 0 {
			require.Nil(rt, got.DepartedAt, "con existencias no hay salida definitiva")
		} else if moved {
			require.NotNil(rt, got.DepartedAt, "en cero tras movimientos debe haber salida")
		}
	})
}
