package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/logistica-api/internal/application/dto"
	apprecurrence "github.com/tu-usuario/logistica-api/internal/application/recurrence"
	"github.com/tu-usuario/logistica-api/internal/domain/entity"
	"github.com/tu-usuario/logistica-api/internal/domain/repository"
	apphttp "github.com/tu-usuario/logistica-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memRuleStore struct {
	mu    sync.Mutex
	rules map[string]*entity.RecurrenceRule
}

var _ repository.RuleRepository = (*memRuleStore)(nil)

func newMemRuleStore() *memRuleStore {
	return &memRuleStore{rules: map[string]*entity.RecurrenceRule{}}
}

func (s *memRuleStore) Create(rule *entity.RecurrenceRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rule
	s.rules[rule.ID] = &cp
	return nil
}

func (s *memRuleStore) GetByID(id string) (*entity.RecurrenceRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rules[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (s *memRuleStore) Update(rule *entity.RecurrenceRule) error {
	return s.Create(rule)
}

func (s *memRuleStore) List(limit, offset int) ([]*entity.RecurrenceRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.RecurrenceRule, 0, len(s.rules))
	for _, r := range s.rules {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

type memBookingStore struct {
	mu    sync.Mutex
	byKey map[string]*entity.Booking
}

var _ repository.BookingRepository = (*memBookingStore)(nil)

func newMemBookingStore() *memBookingStore {
	return &memBookingStore{byKey: map[string]*entity.Booking{}}
}

func (s *memBookingStore) Create(b *entity.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *b
	s.byKey[b.ID] = &cp
	return nil
}

func (s *memBookingStore) GetByID(id string) (*entity.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.byKey {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memBookingStore) Update(b *entity.Booking) error { return s.Create(b) }
func (s *memBookingStore) Delete(id string) error         { return nil }
func (s *memBookingStore) List(limit, offset int) ([]*entity.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Booking, 0, len(s.byKey))
	for _, b := range s.byKey {
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (s *memBookingStore) ListByRule(ruleID string) ([]*entity.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Booking
	for _, b := range s.byKey {
		if b.RecurringRuleID == ruleID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

// InsertIfAbsent emula el índice único parcial sobre recurring_key.
func (s *memBookingStore) InsertIfAbsent(b *entity.Booking) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byKey[b.RecurringKey]; exists {
		return false, nil
	}
	cp := *b
	s.byKey[b.RecurringKey] = &cp
	return true, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func buildRecurrenceApp(bookings *memBookingStore) *fiber.App {
	rules := newMemRuleStore()
	ruleUC := apprecurrence.NewRuleUseCase(rules)
	generateUC := apprecurrence.NewGenerateUseCase(rules, bookings)
	h := apphttp.NewRecurrenceHandler(ruleUC, generateUC)

	app := fiber.New()
	app.Post("/api/recurrences", h.Create)
	app.Put("/api/recurrences/:id", h.Update)
	app.Post("/api/recurrences/:id/generate", h.Generate)
	return app
}

func postRule(t *testing.T, app *fiber.App, body dto.CreateRuleRequest) dto.RuleResponse {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/recurrences", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode, "la creación debe responder 201")

	var out dto.RuleResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.ID)
	return out
}

func testRuleBody() dto.CreateRuleRequest {
	return dto.CreateRuleRequest{
		Template: dto.BookingPayload{
			CustomerID:      "cust-1",
			PickupAddress:   "Calle 10 # 5-51",
			DeliveryAddress: "Cra 7 # 12-34",
		},
		StartDate:   "2024-01-01",
		RepeatWeeks: 2,
		WeeksAhead:  8,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// TestRecurrenceHandler_CreateMaterializaReservas: POST /api/recurrences deja
// las reservas del horizonte creadas de una vez, sin esperar a que un cliente
// llame a /:id/generate.
func TestRecurrenceHandler_CreateMaterializaReservas(t *testing.T) {
	bookings := newMemBookingStore()
	app := buildRecurrenceApp(bookings)

	rule := postRule(t, app, testRuleBody())

	got, err := bookings.ListByRule(rule.ID)
	require.NoError(t, err)
	assert.Len(t, got, 5, "2024-01-01 a 2024-02-26 en pasos de 2 semanas")
	for _, b := range got {
		assert.Equal(t, "cust-1", b.CustomerID)
		assert.Equal(t, rule.ID, b.RecurringRuleID)
	}
}

// TestRecurrenceHandler_UpdateRegeneraHorizonte: ampliar el horizonte por PUT
// materializa solo las fechas nuevas; las existentes no se duplican.
func TestRecurrenceHandler_UpdateRegeneraHorizonte(t *testing.T) {
	bookings := newMemBookingStore()
	app := buildRecurrenceApp(bookings)

	rule := postRule(t, app, testRuleBody())

	wider := 12
	raw, err := json.Marshal(dto.UpdateRuleRequest{WeeksAhead: &wider})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/api/recurrences/"+rule.ID, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got, err := bookings.ListByRule(rule.ID)
	require.NoError(t, err)
	assert.Len(t, got, 7, "horizonte de 12 semanas en pasos de 2: 7 ocurrencias")
}

// TestRecurrenceHandler_GenerateExplicitoSigueDisponible: el endpoint manual
// sigue siendo idempotente después de la materialización del create.
func TestRecurrenceHandler_GenerateExplicitoSigueDisponible(t *testing.T) {
	bookings := newMemBookingStore()
	app := buildRecurrenceApp(bookings)

	rule := postRule(t, app, testRuleBody())

	req := httptest.NewRequest(http.MethodPost, "/api/recurrences/"+rule.ID+"/generate", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.GenerateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 0, out.Created, "todo quedó materializado en el create")

	got, err := bookings.ListByRule(rule.ID)
	require.NoError(t, err)
	assert.Len(t, got, 5)
}
