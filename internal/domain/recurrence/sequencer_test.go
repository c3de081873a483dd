package recurrence_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/logistica-api/internal/domain"
	"github.com/tu-usuario/logistica-api/internal/domain/recurrence"
)

// TestSequence_VectorReferencia: lunes de inicio, paso de 2 semanas, horizonte
// de 8 semanas. El fin del horizonte (2024-02-26) es inclusivo y ninguna fecha
// lo supera.
func TestSequence_VectorReferencia(t *testing.T) {
	dates, err := recurrence.Sequence("2024-01-01", 2, 8)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2024-01-01", "2024-01-15", "2024-01-29", "2024-02-12", "2024-02-26",
	}, dates)
}

func TestSequence_SiemprePrimeraOcurrencia(t *testing.T) {
	// Con paso mayor que el horizonte, la única ocurrencia es la fecha inicial.
	dates, err := recurrence.Sequence("2024-03-04", 10, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-04"}, dates)
}

func TestSequence_PasoSemanal(t *testing.T) {
	dates, err := recurrence.Sequence("2024-06-07", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-07", "2024-06-14", "2024-06-21", "2024-06-28"}, dates)
}

// TestSequence_CruceDeAño verifica que la secuencia cruza el fin de año sin
// perder ni correr fechas.
func TestSequence_CruceDeAño(t *testing.T) {
	dates, err := recurrence.Sequence("2023-12-25", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-12-25", "2024-01-01", "2024-01-08"}, dates)
}

// TestSequence_CruceDST: el cambio de hora de EE.UU. (10 de marzo de 2024) no
// debe desplazar las fechas gracias al ancla de mediodía.
func TestSequence_CruceDST(t *testing.T) {
	dates, err := recurrence.Sequence("2024-03-04", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-04", "2024-03-11", "2024-03-18"}, dates)
}

func TestSequence_Determinista(t *testing.T) {
	a, err := recurrence.Sequence("2025-02-10", 3, 30)
	require.NoError(t, err)
	b, err := recurrence.Sequence("2025-02-10", 3, 30)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSequence_FechaInvalida(t *testing.T) {
	for _, bad := range []string{"", "01-01-2024", "2024-13-01", "2024-01-32", "hoy"} {
		_, err := recurrence.Sequence(bad, 1, 4)
		assert.ErrorIs(t, err, domain.ErrInvalidDate, "startDate %q debe rechazarse", bad)
	}
}

func TestSequence_ParametrosInvalidos(t *testing.T) {
	_, err := recurrence.Sequence("2024-01-01", 0, 4)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = recurrence.Sequence("2024-01-01", 2, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = recurrence.Sequence("2024-01-01", -1, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestSequence_NingunaFechaSuperaHorizonte: propiedad general sobre varios
// juegos de parámetros.
func TestSequence_NingunaFechaSuperaHorizonte(t *testing.T) {
	cases := []struct {
		start       string
		repeatWeeks int
		weeksAhead  int
	}{
		{"2024-01-01", 1, 1},
		{"2024-01-31", 2, 5},
		{"2024-02-29", 4, 52}, // año bisiesto
		{"2025-07-15", 3, 104},
	}
	for _, tc := range cases {
		dates, err := recurrence.Sequence(tc.start, tc.repeatWeeks, tc.weeksAhead)
		require.NoError(t, err)
		require.NotEmpty(t, dates, "la fecha inicial siempre está en el horizonte")
		assert.Equal(t, tc.start, dates[0])

		start, err := time.Parse(recurrence.DateLayout, tc.start)
		require.NoError(t, err)
		horizonEnd := start.AddDate(0, 0, tc.weeksAhead*7)

		prev := start.AddDate(0, 0, -tc.repeatWeeks*7)
		for _, d := range dates {
			cur, err := time.Parse(recurrence.DateLayout, d)
			require.NoError(t, err)
			assert.False(t, cur.After(horizonEnd), "fecha %s supera el horizonte %s", d, horizonEnd)
			assert.Equal(t, tc.repeatWeeks*7, int(cur.Sub(prev).Hours()/24), "paso irregular en %s", d)
			prev = cur
		}
	}
}
