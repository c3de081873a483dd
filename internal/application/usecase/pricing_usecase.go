package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/logistica-api/internal/application/dto"
	"github.com/tu-usuario/logistica-api/internal/domain"
	"github.com/tu-usuario/logistica-api/internal/domain/entity"
	"github.com/tu-usuario/logistica-api/internal/domain/repository"
)

// PricingUseCase casos de uso CRUD para la tabla de tarifas. Las filas solo se
// mantienen; el cálculo de precio de una reserva no vive en este sistema.
type PricingUseCase struct {
	repo repository.PriceRepository
}

// NewPricingUseCase construye el caso de uso.
func NewPricingUseCase(repo repository.PriceRepository) *PricingUseCase {
	return &PricingUseCase{repo: repo}
}

// Create crea una fila de tarifa. Rechaza precios o recargos negativos.
func (uc *PricingUseCase) Create(in dto.CreatePriceRowRequest) (*dto.PriceRowResponse, error) {
	if in.BasePrice.IsNegative() || in.DMTSurchargePct.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	row := &entity.PriceRow{
		ID:              uuid.New().String(),
		Origin:          in.Origin,
		Destination:     in.Destination,
		VehicleType:     in.VehicleType,
		BasePrice:       in.BasePrice,
		DMTSurchargePct: in.DMTSurchargePct,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(row); err != nil {
		return nil, err
	}
	return toPriceRowResponse(row), nil
}

// GetByID obtiene una fila de tarifa por ID.
func (uc *PricingUseCase) GetByID(id string) (*dto.PriceRowResponse, error) {
	row, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	return toPriceRowResponse(row), nil
}

// Update actualiza precio base y/o recargo de una fila (parcial).
func (uc *PricingUseCase) Update(id string, in dto.UpdatePriceRowRequest) (*dto.PriceRowResponse, error) {
	row, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	if in.BasePrice != nil {
		if in.BasePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		row.BasePrice = *in.BasePrice
	}
	if in.DMTSurchargePct != nil {
		if in.DMTSurchargePct.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		row.DMTSurchargePct = *in.DMTSurchargePct
	}
	row.UpdatedAt = time.Now()
	if err := uc.repo.Update(row); err != nil {
		return nil, err
	}
	return toPriceRowResponse(row), nil
}

// List lista filas de tarifa con paginación.
func (uc *PricingUseCase) List(limit, offset int) (*dto.PriceRowListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PriceRowResponse, 0, len(list))
	for _, row := range list {
		items = append(items, *toPriceRowResponse(row))
	}
	return &dto.PriceRowListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una fila de tarifa por ID.
func (uc *PricingUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toPriceRowResponse(p *entity.PriceRow) *dto.PriceRowResponse {
	if p == nil {
		return nil
	}
	return &dto.PriceRowResponse{
		ID:              p.ID,
		Origin:          p.Origin,
		Destination:     p.Destination,
		VehicleType:     p.VehicleType,
		BasePrice:       p.BasePrice,
		DMTSurchargePct: p.DMTSurchargePct,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
