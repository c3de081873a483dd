package entity

import "time"

// Límites de una regla de recurrencia (invariantes del modelo).
const (
	MinRepeatWeeks = 1
	MaxRepeatWeeks = 52
	MinWeeksAhead  = 1
	MaxWeeksAhead  = 104
)

// RecurrenceRule es una plantilla de reserva más un calendario: fecha de
// inicio, paso en semanas y horizonte en semanas. Las reservas materializadas
// llevan RecurringKey derivada de (ID, fecha) para deduplicación global.
type RecurrenceRule struct {
	ID          string
	Template    Booking // plantilla clonada verbatim salvo los campos sobreescritos al generar
	StartDate   string  // fecha calendario YYYY-MM-DD
	RepeatWeeks int     // 1..52
	WeeksAhead  int     // 1..104, largo del horizonte desde StartDate
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Valid verifica los invariantes de la regla (el parseo de StartDate lo hace
// el secuenciador).
func (r RecurrenceRule) Valid() bool {
	return r.RepeatWeeks >= MinRepeatWeeks && r.RepeatWeeks <= MaxRepeatWeeks &&
		r.WeeksAhead >= MinWeeksAhead && r.WeeksAhead <= MaxWeeksAhead
}
