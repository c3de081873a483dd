package ledger

import (
	"context"

	"github.com/tu-usuario/logistica-api/internal/domain/entity"
	"github.com/tu-usuario/logistica-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del store, pasando
// repositorios atados a esa transacción. Es lo que vuelve atómica la unidad
// "aplicar transición de cantidad + anexar movimiento" del libro de bodega.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
	) error) error
}

// EstimatePDFGenerator genera la representación en PDF de un estimado de
// almacenaje. La implementación concreta vive en infrastructure/pdf.
type EstimatePDFGenerator interface {
	GenerateEstimatePDF(ctx context.Context, item *entity.WarehouseItem, customer *entity.Customer, est *Estimate) ([]byte, error)
}
