package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/logistica-api/internal/application/dto"
	"github.com/tu-usuario/logistica-api/internal/domain/entity"
	"github.com/tu-usuario/logistica-api/internal/domain/repository"
)

// VehicleUseCase casos de uso CRUD para vehículos de la flota.
type VehicleUseCase struct {
	repo repository.VehicleRepository
}

// NewVehicleUseCase construye el caso de uso.
func NewVehicleUseCase(repo repository.VehicleRepository) *VehicleUseCase {
	return &VehicleUseCase{repo: repo}
}

// Create registra un vehículo. La placa tiene índice único en el store.
func (uc *VehicleUseCase) Create(in dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	now := time.Now()
	vehicle := &entity.Vehicle{
		ID:           uuid.New().String(),
		Plate:        in.Plate,
		Type:         in.Type,
		CapacityTons: in.CapacityTons,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(vehicle); err != nil {
		return nil, err
	}
	return toVehicleResponse(vehicle), nil
}

// GetByID obtiene un vehículo por ID.
func (uc *VehicleUseCase) GetByID(id string) (*dto.VehicleResponse, error) {
	vehicle, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, nil
	}
	return toVehicleResponse(vehicle), nil
}

// Update actualiza un vehículo (parcial).
func (uc *VehicleUseCase) Update(id string, in dto.UpdateVehicleRequest) (*dto.VehicleResponse, error) {
	vehicle, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, nil
	}
	if in.Plate != nil {
		vehicle.Plate = *in.Plate
	}
	if in.Type != nil {
		vehicle.Type = *in.Type
	}
	if in.CapacityTons != nil {
		vehicle.CapacityTons = *in.CapacityTons
	}
	vehicle.UpdatedAt = time.Now()
	if err := uc.repo.Update(vehicle); err != nil {
		return nil, err
	}
	return toVehicleResponse(vehicle), nil
}

// List lista vehículos con paginación.
func (uc *VehicleUseCase) List(limit, offset int) (*dto.VehicleListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VehicleResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *toVehicleResponse(v))
	}
	return &dto.VehicleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un vehículo por ID.
func (uc *VehicleUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toVehicleResponse(v *entity.Vehicle) *dto.VehicleResponse {
	if v == nil {
		return nil
	}
	return &dto.VehicleResponse{
		ID:           v.ID,
		Plate:        v.Plate,
		Type:         v.Type,
		CapacityTons: v.CapacityTons,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}
