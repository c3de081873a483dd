package ledger

import (
	"context"

	"github.com/tu-usuario/logistica-api/internal/domain"
	"github.com/tu-usuario/logistica-api/internal/domain/repository"
)

// EstimateDocUseCase arma el PDF del estimado de almacenaje: resuelve el
// artículo, su cliente y la estimación, y delega el render al generador.
type EstimateDocUseCase struct {
	ledger    *UseCase
	customers repository.CustomerRepository
	generator EstimatePDFGenerator
}

// NewEstimateDocUseCase construye el caso de uso.
func NewEstimateDocUseCase(ledger *UseCase, customers repository.CustomerRepository, generator EstimatePDFGenerator) *EstimateDocUseCase {
	return &EstimateDocUseCase{ledger: ledger, customers: customers, generator: generator}
}

// Generate devuelve los bytes del PDF del estimado para un artículo.
func (uc *EstimateDocUseCase) Generate(ctx context.Context, itemID string) ([]byte, error) {
	item, err := uc.ledger.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	est, err := uc.ledger.GetEstimate(ctx, itemID)
	if err != nil {
		return nil, err
	}
	customer, err := uc.customers.GetByID(item.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return uc.generator.GenerateEstimatePDF(ctx, item, customer, est)
}
