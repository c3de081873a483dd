// Package recurrence contiene el secuenciador de fechas de las reglas de
// recurrencia (servicio de dominio puro, sin I/O).
package recurrence

import (
	"time"

	"github.com/tu-usuario/logistica-api/internal/domain"
)

// DateLayout es el formato de fecha calendario usado en todo el sistema.
const DateLayout = "2006-01-02"

// Sequence expande (startDate, repeatWeeks, weeksAhead) a la lista ordenada de
// fechas de ocurrencia: startDate, +repeatWeeks*7d, +2*repeatWeeks*7d, ...
// inclusive mientras fecha <= startDate + weeksAhead*7d.
//
// La aritmética se ancla a las 12:00 UTC para que cambios de hora o bordes de
// zona horaria no corran las fechas. Determinista y segura para concurrencia.
func Sequence(startDate string, repeatWeeks, weeksAhead int) ([]string, error) {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	if repeatWeeks < 1 || weeksAhead < 1 {
		return nil, domain.ErrInvalidInput
	}

	// Anclar a mediodía: sumar días sobre medianoche puede cruzar DST.
	cur := time.Date(start.Year(), start.Month(), start.Day(), 12, 0, 0, 0, time.UTC)
	horizonEnd := cur.AddDate(0, 0, weeksAhead*7)
	stepDays := repeatWeeks * 7

	var dates []string
	for !cur.After(horizonEnd) {
		dates = append(dates, cur.Format(DateLayout))
		cur = cur.AddDate(0, 0, stepDays)
	}
	return dates, nil
}
