package recurrence

import (
	"strings"

	"github.com/google/uuid"
	"github.com/tu-usuario/logistica-api/internal/domain"
	"github.com/tu-usuario/logistica-api/internal/domain/entity"
	"github.com/tu-usuario/logistica-api/internal/domain/recurrence"
	"github.com/tu-usuario/logistica-api/internal/domain/repository"
)

// GenerateUseCase materializa las ocurrencias de una regla como reservas.
// Idempotente y seguro bajo concurrencia: cada candidata se envía al store con
// InsertIfAbsent sobre su RecurringKey; los conflictos son la señal esperada
// de "ya existe" y no abortan a las hermanas.
type GenerateUseCase struct {
	ruleRepo    repository.RuleRepository
	bookingRepo repository.BookingRepository
}

// NewGenerateUseCase construye el generador.
func NewGenerateUseCase(ruleRepo repository.RuleRepository, bookingRepo repository.BookingRepository) *GenerateUseCase {
	return &GenerateUseCase{ruleRepo: ruleRepo, bookingRepo: bookingRepo}
}

// Generate expande la regla y devuelve cuántas reservas se crearon de verdad.
// Re-ejecutar con la misma regla deja las fechas existentes intactas (aunque
// la plantilla haya cambiado) y agrega solo las fechas nuevas del horizonte.
func (uc *GenerateUseCase) Generate(ruleID string) (int, error) {
	rule, err := uc.ruleRepo.GetByID(ruleID)
	if err != nil {
		return 0, err
	}
	if rule == nil {
		return 0, domain.ErrRuleNotFound
	}

	dates, err := recurrence.Sequence(rule.StartDate, rule.RepeatWeeks, rule.WeeksAhead)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, date := range dates {
		candidate := buildCandidate(rule, date)
		inserted, err := uc.bookingRepo.InsertIfAbsent(candidate)
		if err != nil {
			return created, err
		}
		if inserted {
			created++
		}
	}
	return created, nil
}

// buildCandidate clona la plantilla y sobreescribe los campos generados:
// id nuevo, número de reserva derivado de la fecha, pickup/delivery en la
// fecha de ocurrencia (pisa lo que dijera la plantilla) y la trazabilidad
// de recurrencia con su clave de deduplicación.
func buildCandidate(rule *entity.RecurrenceRule, date string) *entity.Booking {
	b := rule.Template.Clone()
	b.ID = uuid.New().String()
	b.BookingNumber = BookingNumberFor(date)
	b.PickupDate = date
	b.DeliveryDate = date
	b.RecurringRuleID = rule.ID
	b.RecurringDate = date
	b.RecurringKey = RecurringKey(rule.ID, date)
	return &b
}

// RecurringKey arma la clave de deduplicación "<ruleID>:<fecha>".
func RecurringKey(ruleID, date string) string {
	return ruleID + ":" + date
}

// BookingNumberFor deriva el número de reserva de la fecha (YYYYMMDD-R).
// No se exige unicidad global: es un rótulo legible, la identidad es el ID.
func BookingNumberFor(date string) string {
	return strings.ReplaceAll(date, "-", "") + "-R"
}
