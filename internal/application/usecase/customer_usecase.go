package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/logistica-api/internal/application/dto"
	"github.com/tu-usuario/logistica-api/internal/domain/entity"
	"github.com/tu-usuario/logistica-api/internal/domain/repository"
)

// CustomerUseCase casos de uso CRUD para clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un nuevo cliente.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxID:     in.TaxID,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	return toCustomerResponse(customer), nil
}

// Update actualiza un cliente (parcial: solo los campos presentes).
func (uc *CustomerUseCase) Update(id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	if in.Name != nil {
		customer.Name = *in.Name
	}
	if in.TaxID != nil {
		customer.TaxID = *in.TaxID
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes con paginación.
func (uc *CustomerUseCase) List(limit, offset int) (*dto.CustomerListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un cliente por ID.
func (uc *CustomerUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
