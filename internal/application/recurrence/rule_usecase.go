package recurrence

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/logistica-api/internal/application/dto"
	"github.com/tu-usuario/logistica-api/internal/domain"
	"github.com/tu-usuario/logistica-api/internal/domain/entity"
	domrec "github.com/tu-usuario/logistica-api/internal/domain/recurrence"
	"github.com/tu-usuario/logistica-api/internal/domain/repository"
)

// RuleUseCase CRUD de reglas de recurrencia. Las reglas se crean una vez y se
// mutan por actualizaciones parciales; nunca se eliminan desde aquí.
type RuleUseCase struct {
	repo repository.RuleRepository
}

// NewRuleUseCase construye el caso de uso.
func NewRuleUseCase(repo repository.RuleRepository) *RuleUseCase {
	return &RuleUseCase{repo: repo}
}

// Create valida los invariantes (fecha parseable, 1..52 semanas de paso,
// 1..104 de horizonte) y persiste la regla.
func (uc *RuleUseCase) Create(in dto.CreateRuleRequest) (*dto.RuleResponse, error) {
	if _, err := time.Parse(domrec.DateLayout, in.StartDate); err != nil {
		return nil, domain.ErrInvalidDate
	}
	now := time.Now()
	rule := &entity.RecurrenceRule{
		ID:          uuid.New().String(),
		Template:    templateFromPayload(in.Template),
		StartDate:   in.StartDate,
		RepeatWeeks: in.RepeatWeeks,
		WeeksAhead:  in.WeeksAhead,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if !rule.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Create(rule); err != nil {
		return nil, err
	}
	return toRuleResponse(rule), nil
}

// Update aplica una actualización parcial (cualquier subconjunto de campos).
func (uc *RuleUseCase) Update(id string, in dto.UpdateRuleRequest) (*dto.RuleResponse, error) {
	rule, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, domain.ErrRuleNotFound
	}
	if in.Template != nil {
		rule.Template = templateFromPayload(*in.Template)
	}
	if in.StartDate != nil {
		if _, err := time.Parse(domrec.DateLayout, *in.StartDate); err != nil {
			return nil, domain.ErrInvalidDate
		}
		rule.StartDate = *in.StartDate
	}
	if in.RepeatWeeks != nil {
		rule.RepeatWeeks = *in.RepeatWeeks
	}
	if in.WeeksAhead != nil {
		rule.WeeksAhead = *in.WeeksAhead
	}
	if !rule.Valid() {
		return nil, domain.ErrInvalidInput
	}
	rule.UpdatedAt = time.Now()
	if err := uc.repo.Update(rule); err != nil {
		return nil, err
	}
	return toRuleResponse(rule), nil
}

// GetByID obtiene una regla.
func (uc *RuleUseCase) GetByID(id string) (*dto.RuleResponse, error) {
	rule, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, domain.ErrRuleNotFound
	}
	return toRuleResponse(rule), nil
}

// List lista reglas con paginación.
func (uc *RuleUseCase) List(limit, offset int) (*dto.RuleListResponse, error) {
	rules, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RuleResponse, 0, len(rules))
	for _, r := range rules {
		items = append(items, *toRuleResponse(r))
	}
	return &dto.RuleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func templateFromPayload(p dto.BookingPayload) entity.Booking {
	return entity.Booking{
		CustomerID:       p.CustomerID,
		VehicleID:        p.VehicleID,
		DriverID:         p.DriverID,
		PickupDate:       p.PickupDate,
		DeliveryDate:     p.DeliveryDate,
		PickupAddress:    p.PickupAddress,
		DeliveryAddress:  p.DeliveryAddress,
		CargoDescription: p.CargoDescription,
		Notes:            p.Notes,
		Extra:            p.Extra,
	}
}

func payloadFromTemplate(b entity.Booking) dto.BookingPayload {
	return dto.BookingPayload{
		CustomerID:       b.CustomerID,
		VehicleID:        b.VehicleID,
		DriverID:         b.DriverID,
		PickupDate:       b.PickupDate,
		DeliveryDate:     b.DeliveryDate,
		PickupAddress:    b.PickupAddress,
		DeliveryAddress:  b.DeliveryAddress,
		CargoDescription: b.CargoDescription,
		Notes:            b.Notes,
		Extra:            b.Extra,
	}
}

func toRuleResponse(r *entity.RecurrenceRule) *dto.RuleResponse {
	if r == nil {
		return nil
	}
	return &dto.RuleResponse{
		ID:          r.ID,
		Template:    payloadFromTemplate(r.Template),
		StartDate:   r.StartDate,
		RepeatWeeks: r.RepeatWeeks,
		WeeksAhead:  r.WeeksAhead,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
