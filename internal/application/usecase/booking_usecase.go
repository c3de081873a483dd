package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/logistica-api/internal/application/dto"
	"github.com/tu-usuario/logistica-api/internal/domain"
	"github.com/tu-usuario/logistica-api/internal/domain/entity"
	"github.com/tu-usuario/logistica-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// BookingUseCase casos de uso CRUD para reservas creadas a mano. Las reservas
// generadas por recurrencia entran por el generador, no por aquí, pero ambas
// conviven en la misma tabla y este caso de uso las lee y actualiza por igual.
type BookingUseCase struct {
	repo repository.BookingRepository
}

// NewBookingUseCase construye el caso de uso.
func NewBookingUseCase(repo repository.BookingRepository) *BookingUseCase {
	return &BookingUseCase{repo: repo}
}

// Create crea una reserva manual. El número se deriva de la fecha de recogida
// (u hoy si no viene) con sufijo -M para distinguirla de las generadas (-R).
func (uc *BookingUseCase) Create(in dto.BookingPayload) (*dto.BookingResponse, error) {
	numberDate := in.PickupDate
	if numberDate == "" {
		numberDate = time.Now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, numberDate); err != nil {
		return nil, domain.ErrInvalidDate
	}
	if in.DeliveryDate != "" {
		if _, err := time.Parse(dateLayout, in.DeliveryDate); err != nil {
			return nil, domain.ErrInvalidDate
		}
	}
	now := time.Now()
	booking := &entity.Booking{
		ID:               uuid.New().String(),
		BookingNumber:    strings.ReplaceAll(numberDate, "-", "") + "-M",
		CustomerID:       in.CustomerID,
		VehicleID:        in.VehicleID,
		DriverID:         in.DriverID,
		PickupDate:       in.PickupDate,
		DeliveryDate:     in.DeliveryDate,
		PickupAddress:    in.PickupAddress,
		DeliveryAddress:  in.DeliveryAddress,
		CargoDescription: in.CargoDescription,
		Notes:            in.Notes,
		Extra:            in.Extra,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(booking); err != nil {
		return nil, err
	}
	return toBookingResponse(booking), nil
}

// GetByID obtiene una reserva por ID.
func (uc *BookingUseCase) GetByID(id string) (*dto.BookingResponse, error) {
	booking, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, nil
	}
	return toBookingResponse(booking), nil
}

// Update actualiza una reserva (parcial). Los campos de trazabilidad de
// recurrencia nunca se tocan por esta vía.
func (uc *BookingUseCase) Update(id string, in dto.UpdateBookingRequest) (*dto.BookingResponse, error) {
	booking, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, nil
	}
	if in.PickupDate != nil {
		if _, err := time.Parse(dateLayout, *in.PickupDate); err != nil {
			return nil, domain.ErrInvalidDate
		}
		booking.PickupDate = *in.PickupDate
	}
	if in.DeliveryDate != nil {
		if _, err := time.Parse(dateLayout, *in.DeliveryDate); err != nil {
			return nil, domain.ErrInvalidDate
		}
		booking.DeliveryDate = *in.DeliveryDate
	}
	if in.VehicleID != nil {
		booking.VehicleID = *in.VehicleID
	}
	if in.DriverID != nil {
		booking.DriverID = *in.DriverID
	}
	if in.PickupAddress != nil {
		booking.PickupAddress = *in.PickupAddress
	}
	if in.DeliveryAddress != nil {
		booking.DeliveryAddress = *in.DeliveryAddress
	}
	if in.CargoDescription != nil {
		booking.CargoDescription = *in.CargoDescription
	}
	if in.Notes != nil {
		booking.Notes = *in.Notes
	}
	if in.Extra != nil {
		booking.Extra = in.Extra
	}
	booking.UpdatedAt = time.Now()
	if err := uc.repo.Update(booking); err != nil {
		return nil, err
	}
	return toBookingResponse(booking), nil
}

// List lista reservas con paginación; con ruleID filtra las de una regla.
func (uc *BookingUseCase) List(ruleID string, limit, offset int) (*dto.BookingListResponse, error) {
	var (
		list []*entity.Booking
		err  error
	)
	if ruleID != "" {
		list, err = uc.repo.ListByRule(ruleID)
	} else {
		list, err = uc.repo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.BookingResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBookingResponse(b))
	}
	return &dto.BookingListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una reserva por ID.
func (uc *BookingUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toBookingResponse(b *entity.Booking) *dto.BookingResponse {
	if b == nil {
		return nil
	}
	return &dto.BookingResponse{
		ID:               b.ID,
		BookingNumber:    b.BookingNumber,
		CustomerID:       b.CustomerID,
		VehicleID:        b.VehicleID,
		DriverID:         b.DriverID,
		PickupDate:       b.PickupDate,
		DeliveryDate:     b.DeliveryDate,
		PickupAddress:    b.PickupAddress,
		DeliveryAddress:  b.DeliveryAddress,
		CargoDescription: b.CargoDescription,
		Notes:            b.Notes,
		RecurringRuleID:  b.RecurringRuleID,
		RecurringDate:    b.RecurringDate,
		RecurringKey:     b.RecurringKey,
		Extra:            b.Extra,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}
