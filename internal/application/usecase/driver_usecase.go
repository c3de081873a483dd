package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/logistica-api/internal/application/dto"
	"github.com/tu-usuario/logistica-api/internal/domain/entity"
	"github.com/tu-usuario/logistica-api/internal/domain/repository"
)

// DriverUseCase casos de uso CRUD para conductores.
type DriverUseCase struct {
	repo repository.DriverRepository
}

// NewDriverUseCase construye el caso de uso.
func NewDriverUseCase(repo repository.DriverRepository) *DriverUseCase {
	return &DriverUseCase{repo: repo}
}

// Create registra un conductor. La cédula tiene índice único en el store.
func (uc *DriverUseCase) Create(in dto.CreateDriverRequest) (*dto.DriverResponse, error) {
	now := time.Now()
	driver := &entity.Driver{
		ID:         uuid.New().String(),
		Name:       in.Name,
		DocumentID: in.DocumentID,
		Phone:      in.Phone,
		LicenseNo:  in.LicenseNo,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(driver); err != nil {
		return nil, err
	}
	return toDriverResponse(driver), nil
}

// GetByID obtiene un conductor por ID.
func (uc *DriverUseCase) GetByID(id string) (*dto.DriverResponse, error) {
	driver, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, nil
	}
	return toDriverResponse(driver), nil
}

// Update actualiza un conductor (parcial; la cédula no se cambia).
func (uc *DriverUseCase) Update(id string, in dto.UpdateDriverRequest) (*dto.DriverResponse, error) {
	driver, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, nil
	}
	if in.Name != nil {
		driver.Name = *in.Name
	}
	if in.Phone != nil {
		driver.Phone = *in.Phone
	}
	if in.LicenseNo != nil {
		driver.LicenseNo = *in.LicenseNo
	}
	driver.UpdatedAt = time.Now()
	if err := uc.repo.Update(driver); err != nil {
		return nil, err
	}
	return toDriverResponse(driver), nil
}

// List lista conductores con paginación.
func (uc *DriverUseCase) List(limit, offset int) (*dto.DriverListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DriverResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDriverResponse(d))
	}
	return &dto.DriverListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un conductor por ID.
func (uc *DriverUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toDriverResponse(d *entity.Driver) *dto.DriverResponse {
	if d == nil {
		return nil
	}
	return &dto.DriverResponse{
		ID:         d.ID,
		Name:       d.Name,
		DocumentID: d.DocumentID,
		Phone:      d.Phone,
		LicenseNo:  d.LicenseNo,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}
