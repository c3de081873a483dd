package ledger

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/logistica-api/internal/domain"
	"github.com/tu-usuario/logistica-api/internal/domain/entity"
	"github.com/tu-usuario/logistica-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// memStore: fake en memoria que implementa ItemRepository, MovementRepository
// y TxRunner con la misma semántica del store real: actualización condicional
// por cantidad esperada, índice único (booking_id, type) y rollback del
// callback fallido vía snapshot.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu         sync.Mutex
	items      map[string]*entity.WarehouseItem
	movements  []*entity.Movement
	bookingIdx map[string]*entity.Movement // bookingID + "|" + type

	forcedCASFailures int // fuerza fallos de precondición para probar reintentos
}

func newMemStore() *memStore {
	return &memStore{
		items:      map[string]*entity.WarehouseItem{},
		bookingIdx: map[string]*entity.Movement{},
	}
}

func (s *memStore) Run(ctx context.Context, fn func(repository.ItemRepository, repository.MovementRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapItems := make(map[string]*entity.WarehouseItem, len(s.items))
	for k, v := range s.items {
		cp := *v
		snapItems[k] = &cp
	}
	snapMovs := append([]*entity.Movement(nil), s.movements...)
	snapIdx := make(map[string]*entity.Movement, len(s.bookingIdx))
	for k, v := range s.bookingIdx {
		snapIdx[k] = v
	}
	if err := fn((*lockedStore)(s), (*lockedStore)(s)); err != nil {
		s.items, s.movements, s.bookingIdx = snapItems, snapMovs, snapIdx
		return err
	}
	return nil
}

// lockedStore opera asumiendo que Run ya tomó el mutex.
type lockedStore memStore

func (s *lockedStore) Create(item *entity.WarehouseItem) error {
	cp := *item
	s.items[item.ID] = &cp
	return nil
}

func (s *lockedStore) GetByID(id string) (*entity.WarehouseItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (s *lockedStore) ApplyQuantityChange(itemID string, expected *int, newQuantity int, derived entity.ItemDerived) (*entity.WarehouseItem, error) {
	if s.forcedCASFailures > 0 {
		s.forcedCASFailures--
		return nil, domain.ErrPreconditionFailed
	}
	item, ok := s.items[itemID]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	if expected != nil && item.Quantity != *expected {
		return nil, domain.ErrPreconditionFailed
	}
	item.Quantity = newQuantity
	item.ArrivedAt = derived.ArrivedAt
	item.DepartedAt = derived.DepartedAt
	item.UpdatedAt = time.Now()
	cp := *item
	return &cp, nil
}

func (s *lockedStore) List(limit, offset int) ([]*entity.WarehouseItem, error) { return nil, nil }
func (s *lockedStore) ListByCustomer(string, int, int) ([]*entity.WarehouseItem, error) {
	return nil, nil
}

func (s *lockedStore) Delete(id string) (bool, error) {
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

func (s *lockedStore) Append(m *entity.Movement) error {
	if m.BookingID != "" {
		key := m.BookingID + "|" + m.Type
		if _, exists := s.bookingIdx[key]; exists {
			return domain.ErrDuplicate
		}
		cp := *m
		s.bookingIdx[key] = &cp
	}
	cp := *m
	s.movements = append(s.movements, &cp)
	return nil
}

func (s *lockedStore) ListByItem(itemID string, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range s.movements {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *lockedStore) CountByItem(itemID string) (int, error) {
	n := 0
	for _, m := range s.movements {
		if m.ItemID == itemID {
			n++
		}
	}
	return n, nil
}

func (s *lockedStore) FindByBookingAndType(bookingID, movementType string) (*entity.Movement, error) {
	m, ok := s.bookingIdx[bookingID+"|"+movementType]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

// Las interfaces sin transacción delegan al mismo estado bajo mutex.
func (s *memStore) Create(item *entity.WarehouseItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (*lockedStore)(s).Create(item)
}
func (s *memStore) GetByID(id string) (*entity.WarehouseItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (*lockedStore)(s).GetByID(id)
}
func (s *memStore) ApplyQuantityChange(itemID string, expected *int, newQuantity int, derived entity.ItemDerived) (*entity.WarehouseItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (*lockedStore)(s).ApplyQuantityChange(itemID, expected, newQuantity, derived)
}
func (s *memStore) List(limit, offset int) ([]*entity.WarehouseItem, error) { return nil, nil }
func (s *memStore) ListByCustomer(c string, l, o int) ([]*entity.WarehouseItem, error) {
	return nil, nil
}
func (s *memStore) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (*lockedStore)(s).Delete(id)
}
func (s *memStore) Append(m *entity.Movement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (*lockedStore)(s).Append(m)
}
func (s *memStore) ListByItem(itemID string, limit, offset int) ([]*entity.Movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (*lockedStore)(s).ListByItem(itemID, limit, offset)
}
func (s *memStore) CountByItem(itemID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (*lockedStore)(s).CountByItem(itemID)
}
func (s *memStore) FindByBookingAndType(bookingID, movementType string) (*entity.Movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (*lockedStore)(s).FindByBookingAndType(bookingID, movementType)
}

// newTestLedger arma el caso de uso sobre un memStore con reloj fijo.
func newTestLedger(t *testing.T) (*UseCase, *memStore) {
	t.Helper()
	store := newMemStore()
	uc := NewUseCase(store, store, store)
	fixed := time.Date(2024, 4, 20, 15, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return fixed }
	return uc, store
}

func createHolding(t *testing.T, uc *UseCase, qty int, price string) *entity.WarehouseItem {
	t.Helper()
	res, err := uc.CreateItem(context.Background(), CreateItemInput{
		CustomerID:        "cust-1",
		Description:       "pallets de repuestos",
		InitialQuantity:   qty,
		DailyStoragePrice: decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	return res.Item
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordMovement
// ──────────────────────────────────────────────────────────────────────────────

// TestRecordMovement_ConservacionDeCantidad: la cantidad del artículo siempre
// es el fold de los movimientos aceptados (IN suma, OUT resta, ADJUST fija).
func TestRecordMovement_ConservacionDeCantidad(t *testing.T) {
	uc, store := newTestLedger(t)
	item := createHolding(t, uc, 0, "0")
	ctx := context.Background()

	steps := []struct {
		typ    string
		amount int
		want   int
	}{
		{entity.MovementTypeIN, 10, 10},
		{entity.MovementTypeOUT, 3, 7},
		{entity.MovementTypeADJUST, 20, 20},
		{entity.MovementTypeOUT, 20, 0},
		{entity.MovementTypeIN, 5, 5},
	}
	for i, st := range steps {
		res, err := uc.RecordMovement(ctx, MovementInput{
			ItemID: item.ID, Type: st.typ, Quantity: st.amount, Date: "2024-04-01",
		})
		require.NoError(t, err, "paso %d", i)
		assert.Equal(t, st.want, res.Item.Quantity, "paso %d", i)
		assert.GreaterOrEqual(t, res.Item.Quantity, 0)
	}
	count, err := store.CountByItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, len(steps), count)
}

// TestRecordMovement_RechazoSinEfectos: un OUT mayor al disponible falla con
// ErrNegativeQuantity y no deja rastro: ni cantidad tocada ni movimiento.
func TestRecordMovement_RechazoSinEfectos(t *testing.T) {
	uc, store := newTestLedger(t)
	item := createHolding(t, uc, 10, "0")
	ctx := context.Background()

	before, err := store.CountByItem(item.ID)
	require.NoError(t, err)

	_, err = uc.RecordMovement(ctx, MovementInput{
		ItemID: item.ID, Type: entity.MovementTypeOUT, Quantity: 15, Date: "2024-01-02",
	})
	assert.ErrorIs(t, err, domain.ErrNegativeQuantity)

	got, err := uc.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity, "la cantidad no debe cambiar")
	after, err := store.CountByItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after, "no debe registrarse movimiento")
}

// TestRecordMovement_LlegadaYSalida: derivación de arrivedAt/departedAt con
// el ciclo llegar → salir → volver a llegar.
func TestRecordMovement_LlegadaYSalida(t *testing.T) {
	uc, _ := newTestLedger(t)
	item := createHolding(t, uc, 0, "0")
	ctx := context.Background()

	res, err := uc.RecordMovement(ctx, MovementInput{
		ItemID: item.ID, Type: entity.MovementTypeIN, Quantity: 5, Date: "2024-03-01",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Item.ArrivedAt)
	assert.Equal(t, "2024-03-01", *res.Item.ArrivedAt)
	assert.Nil(t, res.Item.DepartedAt)

	res, err = uc.RecordMovement(ctx, MovementInput{
		ItemID: item.ID, Type: entity.MovementTypeOUT, Quantity: 5, Date: "2024-03-10",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Item.Quantity)
	require.NotNil(t, res.Item.DepartedAt)
	assert.Equal(t, "2024-03-10", *res.Item.DepartedAt)
	assert.Equal(t, "2024-03-01", *res.Item.ArrivedAt, "la llegada original se conserva")

	// Reingreso: la salida deja de ser definitiva y se limpia.
	res, err = uc.RecordMovement(ctx, MovementInput{
		ItemID: item.ID, Type: entity.MovementTypeIN, Quantity: 2, Date: "2024-03-20",
	})
	require.NoError(t, err)
	assert.Nil(t, res.Item.DepartedAt)
	assert.Equal(t, "2024-03-01", *res.Item.ArrivedAt)
}

func TestRecordMovement_AjusteACero(t *testing.T) {
	uc, _ := newTestLedger(t)
	item := createHolding(t, uc, 8, "0")

	res, err := uc.RecordMovement(context.Background(), MovementInput{
		ItemID: item.ID, Type: entity.MovementTypeADJUST, Quantity: 0, Date: "2024-05-05",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Item.Quantity)
	require.NotNil(t, res.Item.DepartedAt)
	assert.Equal(t, "2024-05-05", *res.Item.DepartedAt)
}

func TestRecordMovement_CantidadesInvalidas(t *testing.T) {
	uc, _ := newTestLedger(t)
	item := createHolding(t, uc, 5, "0")
	ctx := context.Background()

	cases := []MovementInput{
		{ItemID: item.ID, Type: entity.MovementTypeIN, Quantity: 0},
		{ItemID: item.ID, Type: entity.MovementTypeIN, Quantity: -3},
		{ItemID: item.ID, Type: entity.MovementTypeOUT, Quantity: 0},
		{ItemID: item.ID, Type: entity.MovementTypeOUT, Quantity: -1},
		{ItemID: item.ID, Type: entity.MovementTypeADJUST, Quantity: -2},
	}
	for _, in := range cases {
		_, err := uc.RecordMovement(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "%s %d", in.Type, in.Quantity)
	}

	_, err := uc.RecordMovement(ctx, MovementInput{ItemID: item.ID, Type: "TRANSFER", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RecordMovement(ctx, MovementInput{ItemID: item.ID, Type: entity.MovementTypeIN, Quantity: 1, Date: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestRecordMovement_ArticuloInexistente(t *testing.T) {
	uc, _ := newTestLedger(t)
	_, err := uc.RecordMovement(context.Background(), MovementInput{
		ItemID: "nope", Type: entity.MovementTypeIN, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

// TestRecordMovement_ReintentaPrecondicion: el CAS perdido se reintenta hasta
// converger; agotados los intentos, el error de precondición se superficia.
func TestRecordMovement_ReintentaPrecondicion(t *testing.T) {
	uc, store := newTestLedger(t)
	item := createHolding(t, uc, 10, "0")
	ctx := context.Background()

	store.forcedCASFailures = maxQuantityRetries - 1
	res, err := uc.RecordMovement(ctx, MovementInput{
		ItemID: item.ID, Type: entity.MovementTypeOUT, Quantity: 4, Date: "2024-02-02",
	})
	require.NoError(t, err, "debe converger dentro del límite de reintentos")
	assert.Equal(t, 6, res.Item.Quantity)

	store.forcedCASFailures = maxQuantityRetries
	_, err = uc.RecordMovement(ctx, MovementInput{
		ItemID: item.ID, Type: entity.MovementTypeOUT, Quantity: 1, Date: "2024-02-03",
	})
	assert.ErrorIs(t, err, domain.ErrPreconditionFailed)

	got, err := uc.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Quantity, "el intento agotado no debe dejar efectos")
}

// TestRecordMovement_Concurrente: movimientos paralelos sobre el mismo
// artículo serializan vía CAS. Un escritor puede agotar sus reintentos bajo
// contención, pero nunca se pierde ni duplica una actualización aceptada.
func TestRecordMovement_Concurrente(t *testing.T) {
	uc, store := newTestLedger(t)
	item := createHolding(t, uc, 0, "0")
	ctx := context.Background()

	const writers = 10
	var wg sync.WaitGroup
	var okCount int64
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.RecordMovement(ctx, MovementInput{
				ItemID: item.ID, Type: entity.MovementTypeIN, Quantity: 1, Date: "2024-06-01",
			})
			if err == nil {
				atomic.AddInt64(&okCount, 1)
				return
			}
			assert.ErrorIs(t, err, domain.ErrPreconditionFailed)
		}()
	}
	wg.Wait()

	got, err := uc.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int(okCount), got.Quantity, "cantidad = movimientos aceptados")
	count, err := store.CountByItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, int(okCount), count)
	assert.Positive(t, okCount, "al menos un escritor debe ganar")
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateItem / DeleteItem / GetEstimate
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateItem_ConCantidadInicial(t *testing.T) {
	uc, store := newTestLedger(t)
	res, err := uc.CreateItem(context.Background(), CreateItemInput{
		CustomerID:        "cust-1",
		Description:       "cajas",
		InitialQuantity:   4,
		DailyStoragePrice: decimal.NewFromInt(100),
		ArrivedAt:         "2024-03-15",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Item.Quantity)
	require.NotNil(t, res.Item.ArrivedAt)
	assert.Equal(t, "2024-03-15", *res.Item.ArrivedAt)
	require.NotNil(t, res.Movement)
	assert.Equal(t, entity.MovementTypeIN, res.Movement.Type)
	assert.Equal(t, "2024-03-15", res.Movement.Date)
	assert.Equal(t, "cust-1", res.Movement.CustomerID)

	count, err := store.CountByItem(res.Item.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "el IN inicial se registra junto con la creación")
}

func TestCreateItem_SinCantidadInicial(t *testing.T) {
	uc, store := newTestLedger(t)
	res, err := uc.CreateItem(context.Background(), CreateItemInput{
		CustomerID: "cust-1", Description: "estibas vacías",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Item.Quantity)
	assert.Nil(t, res.Item.ArrivedAt)
	assert.Nil(t, res.Movement)
	count, err := store.CountByItem(res.Item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

// TestCreateItem_IdempotentePorReserva: dos creaciones con el mismo bookingId
// devuelven la misma pareja artículo/movimiento y solo existe un IN.
func TestCreateItem_IdempotentePorReserva(t *testing.T) {
	uc, store := newTestLedger(t)
	in := CreateItemInput{
		CustomerID:        "cust-2",
		Description:       "contenedor 20ft",
		InitialQuantity:   1,
		DailyStoragePrice: decimal.NewFromInt(50),
		BookingID:         "bk_1",
	}
	first, err := uc.CreateItem(context.Background(), in)
	require.NoError(t, err)
	second, err := uc.CreateItem(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first.Item.ID, second.Item.ID)
	require.NotNil(t, second.Movement)
	assert.Equal(t, first.Movement.ID, second.Movement.ID)

	mov, err := store.FindByBookingAndType("bk_1", entity.MovementTypeIN)
	require.NoError(t, err)
	require.NotNil(t, mov)
	count, err := store.CountByItem(first.Item.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "solo un IN para bk_1")
}

func TestCreateItem_EntradasInvalidas(t *testing.T) {
	uc, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := uc.CreateItem(ctx, CreateItemInput{Description: "sin cliente"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateItem(ctx, CreateItemInput{CustomerID: "c", Description: "d", InitialQuantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = uc.CreateItem(ctx, CreateItemInput{
		CustomerID: "c", Description: "d", DailyStoragePrice: decimal.NewFromInt(-5),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateItem(ctx, CreateItemInput{CustomerID: "c", Description: "d", ArrivedAt: "15/03/2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

// TestDeleteItem_Guardia: con historial nunca se borra; sin historial sí.
func TestDeleteItem_Guardia(t *testing.T) {
	uc, _ := newTestLedger(t)
	ctx := context.Background()

	withHistory := createHolding(t, uc, 3, "10")
	_, err := uc.DeleteItem(ctx, withHistory.ID)
	assert.ErrorIs(t, err, domain.ErrHasMovements)
	_, err = uc.GetItem(ctx, withHistory.ID)
	assert.NoError(t, err, "el artículo debe seguir existiendo")

	empty := createHolding(t, uc, 0, "10")
	deleted, err := uc.DeleteItem(ctx, empty.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = uc.DeleteItem(ctx, "no-existe")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestGetEstimate(t *testing.T) {
	uc, _ := newTestLedger(t)
	ctx := context.Background()

	// Artículo que llegó y salió: 9 días a 100/día.
	item := createHolding(t, uc, 0, "100")
	_, err := uc.RecordMovement(ctx, MovementInput{ItemID: item.ID, Type: entity.MovementTypeIN, Quantity: 5, Date: "2024-03-01"})
	require.NoError(t, err)
	_, err = uc.RecordMovement(ctx, MovementInput{ItemID: item.ID, Type: entity.MovementTypeOUT, Quantity: 5, Date: "2024-03-10"})
	require.NoError(t, err)

	est, err := uc.GetEstimate(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, est.DurationDays)
	assert.True(t, decimal.NewFromInt(900).Equal(est.Cost), "costo %s", est.Cost)

	// Artículo aún en bodega: corre contra "hoy" (reloj fijo 2024-04-20).
	holding := createHolding(t, uc, 2, "10")
	_, err = uc.RecordMovement(ctx, MovementInput{ItemID: holding.ID, Type: entity.MovementTypeADJUST, Quantity: 7, Date: "2024-04-10"})
	require.NoError(t, err)
	est, err = uc.GetEstimate(ctx, holding.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, est.DurationDays, "llegó hoy según el reloj fijo")

	// Artículo que nunca llegó: cero días, cero costo.
	never := createHolding(t, uc, 0, "100")
	est, err = uc.GetEstimate(ctx, never.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, est.DurationDays)
	assert.True(t, est.Cost.IsZero())

	_, err = uc.GetEstimate(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}
