// Package ledger implementa el libro de bodega: el ciclo de vida de cantidad
// de cada artículo gobernado por movimientos IN/OUT/ADJUST append-only.
//
// La concurrencia se resuelve en la frontera del store (varias instancias del
// servicio pueden correr a la vez): cada transición se aplica con una
// actualización condicional sobre la cantidad observada (compare-and-swap)
// junto con el anexo del movimiento, en una sola transacción. Ante
// ErrPreconditionFailed se relee y reintenta un número acotado de veces.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/logistica-api/internal/domain"
	"github.com/tu-usuario/logistica-api/internal/domain/entity"
	"github.com/tu-usuario/logistica-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// maxQuantityRetries acota los reintentos ante carreras perdidas del CAS.
const maxQuantityRetries = 3

// UseCase casos de uso del libro de bodega.
type UseCase struct {
	txRunner     TxRunner
	itemRepo     repository.ItemRepository
	movementRepo repository.MovementRepository
	now          func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, itemRepo repository.ItemRepository, movementRepo repository.MovementRepository) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		itemRepo:     itemRepo,
		movementRepo: movementRepo,
		now:          time.Now,
	}
}

// MovementInput entrada para RecordMovement. Para IN/OUT, Quantity es el
// delta (positivo); para ADJUST es la cantidad absoluta resultante (>= 0).
type MovementInput struct {
	ItemID    string
	Type      string // IN, OUT, ADJUST
	Quantity  int
	Date      string // YYYY-MM-DD; vacío = hoy
	Note      string
	BookingID string // opcional: reserva origen
}

// MovementResult artículo actualizado + movimiento registrado.
type MovementResult struct {
	Item     *entity.WarehouseItem
	Movement *entity.Movement
}

// RecordMovement valida la transición antes de mutar nada y la aplica como
// una unidad atómica: actualización condicional de cantidad (con los campos
// derivados de llegada/salida) más anexo del movimiento. Un rechazo
// (ErrInvalidQuantity, ErrNegativeQuantity, ErrInvalidDate) no deja ningún
// estado parcial: ni cantidad tocada ni movimiento registrado.
func (uc *UseCase) RecordMovement(ctx context.Context, in MovementInput) (*MovementResult, error) {
	if !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.MovementTypeIN, entity.MovementTypeOUT:
		if in.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
	case entity.MovementTypeADJUST:
		if in.Quantity < 0 {
			return nil, domain.ErrInvalidQuantity
		}
	}
	date := in.Date
	if date == "" {
		date = uc.now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, domain.ErrInvalidDate
	}

	for attempt := 0; attempt < maxQuantityRetries; attempt++ {
		item, err := uc.itemRepo.GetByID(in.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrItemNotFound
		}

		next, err := nextQuantity(item.Quantity, in.Type, in.Quantity)
		if err != nil {
			return nil, err
		}
		derived := deriveDates(item, in.Type, next, date)
		expected := item.Quantity

		mov := &entity.Movement{
			ID:         uuid.New().String(),
			ItemID:     item.ID,
			CustomerID: item.CustomerID, // denormalizado al momento de escribir
			Type:       in.Type,
			Quantity:   in.Quantity,
			Date:       date,
			Note:       in.Note,
			BookingID:  in.BookingID,
			CreatedAt:  uc.now(),
		}

		var updated *entity.WarehouseItem
		err = uc.txRunner.Run(ctx, func(items repository.ItemRepository, movements repository.MovementRepository) error {
			u, err := items.ApplyQuantityChange(item.ID, &expected, next, derived)
			if err != nil {
				return err
			}
			if err := movements.Append(mov); err != nil {
				return err
			}
			updated = u
			return nil
		})
		if errors.Is(err, domain.ErrPreconditionFailed) {
			// Otro escritor serializó primero: releer el artículo y reintentar.
			continue
		}
		if err != nil {
			return nil, err
		}
		return &MovementResult{Item: updated, Movement: mov}, nil
	}
	return nil, fmt.Errorf("registrar movimiento en artículo %s tras %d intentos: %w",
		in.ItemID, maxQuantityRetries, domain.ErrPreconditionFailed)
}

// nextQuantity calcula la cantidad resultante de la transición, rechazando
// con ErrNegativeQuantity antes de aplicar (nunca se recorta a cero).
func nextQuantity(current int, movType string, amount int) (int, error) {
	switch movType {
	case entity.MovementTypeIN:
		return current + amount, nil
	case entity.MovementTypeOUT:
		next := current - amount
		if next < 0 {
			return 0, domain.ErrNegativeQuantity
		}
		return next, nil
	default: // ADJUST: cantidad absoluta objetivo
		return amount, nil
	}
}

// deriveDates deriva llegada/salida de la transición: IN fija ArrivedAt si el
// artículo nunca tuvo; aterrizar exactamente en cero fija DepartedAt en la
// fecha del movimiento; cualquier transición a positivo la limpia (la salida
// registrada dejó de ser la definitiva).
func deriveDates(item *entity.WarehouseItem, movType string, next int, date string) entity.ItemDerived {
	arrived := item.ArrivedAt
	departed := item.DepartedAt
	if movType == entity.MovementTypeIN && arrived == nil {
		arrived = &date
	}
	if next == 0 {
		departed = &date
	} else {
		departed = nil
	}
	return entity.ItemDerived{ArrivedAt: arrived, DepartedAt: departed}
}

// CreateItemInput entrada para CreateItem.
type CreateItemInput struct {
	CustomerID        string
	Description       string
	InitialQuantity   int
	DailyStoragePrice decimal.Decimal
	ArrivedAt         string // opcional; por defecto hoy si hay cantidad inicial
	BookingID         string // opcional: creación idempotente por (booking, IN)
	Note              string
}

// CreateItem crea el artículo y, si hay cantidad inicial, registra el
// movimiento IN inicial en la misma transacción. Si BookingID viene y ya
// existe un movimiento IN para esa reserva, la operación es un no-op que
// devuelve el artículo y movimiento existentes (idempotencia por reserva).
func (uc *UseCase) CreateItem(ctx context.Context, in CreateItemInput) (*MovementResult, error) {
	if in.CustomerID == "" || in.Description == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialQuantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if in.DailyStoragePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	arrivedDate := in.ArrivedAt
	if arrivedDate == "" {
		arrivedDate = uc.now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, arrivedDate); err != nil {
		return nil, domain.ErrInvalidDate
	}

	if in.BookingID != "" {
		if existing, err := uc.findByBooking(in.BookingID); err != nil || existing != nil {
			return existing, err
		}
	}

	now := uc.now()
	item := &entity.WarehouseItem{
		ID:                uuid.New().String(),
		CustomerID:        in.CustomerID,
		Description:       in.Description,
		Quantity:          in.InitialQuantity,
		DailyStoragePrice: in.DailyStoragePrice,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	var mov *entity.Movement
	if in.InitialQuantity > 0 {
		item.ArrivedAt = &arrivedDate
		mov = &entity.Movement{
			ID:         uuid.New().String(),
			ItemID:     item.ID,
			CustomerID: item.CustomerID,
			Type:       entity.MovementTypeIN,
			Quantity:   in.InitialQuantity,
			Date:       arrivedDate,
			Note:       in.Note,
			BookingID:  in.BookingID,
			CreatedAt:  now,
		}
	}

	err := uc.txRunner.Run(ctx, func(items repository.ItemRepository, movements repository.MovementRepository) error {
		if err := items.Create(item); err != nil {
			return err
		}
		if mov != nil {
			return movements.Append(mov)
		}
		return nil
	})
	if errors.Is(err, domain.ErrDuplicate) && in.BookingID != "" {
		// Perdimos la carrera contra otra creación con la misma reserva:
		// el índice único sobre (booking_id, type) ya materializó al ganador.
		return uc.findByBooking(in.BookingID)
	}
	if err != nil {
		return nil, err
	}
	return &MovementResult{Item: item, Movement: mov}, nil
}

// findByBooking resuelve la pareja (artículo, movimiento IN) ya creada para
// una reserva, o nil si no existe.
func (uc *UseCase) findByBooking(bookingID string) (*MovementResult, error) {
	mov, err := uc.movementRepo.FindByBookingAndType(bookingID, entity.MovementTypeIN)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, nil
	}
	item, err := uc.itemRepo.GetByID(mov.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	return &MovementResult{Item: item, Movement: mov}, nil
}

// DeleteItem elimina un artículo solo si no tiene movimientos asociados: un
// artículo con historia nunca desaparece dejando movimientos huérfanos.
// Conteo y borrado corren en la misma transacción.
func (uc *UseCase) DeleteItem(ctx context.Context, itemID string) (bool, error) {
	var deleted bool
	err := uc.txRunner.Run(ctx, func(items repository.ItemRepository, movements repository.MovementRepository) error {
		count, err := movements.CountByItem(itemID)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrHasMovements
		}
		deleted, err = items.Delete(itemID)
		return err
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// Estimate estimación de costo de almacenaje.
type Estimate struct {
	ItemID       string
	DurationDays int
	Cost         decimal.Decimal
}

// GetEstimate deriva la estimación: días entre la llegada y la salida (u hoy
// si el artículo sigue en bodega) por el precio diario de almacenaje. Un
// artículo que nunca llegó estima cero días.
func (uc *UseCase) GetEstimate(ctx context.Context, itemID string) (*Estimate, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	days := 0
	if item.ArrivedAt != nil {
		end := uc.now().Format(dateLayout)
		if item.DepartedAt != nil {
			end = *item.DepartedAt
		}
		days = daysBetween(*item.ArrivedAt, end)
		if days < 0 {
			days = 0
		}
	}
	return &Estimate{
		ItemID:       item.ID,
		DurationDays: days,
		Cost:         item.DailyStoragePrice.Mul(decimal.NewFromInt(int64(days))),
	}, nil
}

// GetItem obtiene un artículo.
func (uc *UseCase) GetItem(ctx context.Context, itemID string) (*entity.WarehouseItem, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	return item, nil
}

// ListItems lista artículos, opcionalmente por cliente.
func (uc *UseCase) ListItems(ctx context.Context, customerID string, limit, offset int) ([]*entity.WarehouseItem, error) {
	if customerID != "" {
		return uc.itemRepo.ListByCustomer(customerID, limit, offset)
	}
	return uc.itemRepo.List(limit, offset)
}

// ListMovements lista el historial de un artículo (debe existir).
func (uc *UseCase) ListMovements(ctx context.Context, itemID string, limit, offset int) ([]*entity.Movement, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	return uc.movementRepo.ListByItem(itemID, limit, offset)
}

// daysBetween calcula días calendario entre dos fechas YYYY-MM-DD, anclando
// ambas a mediodía para inmunidad a DST.
func daysBetween(from, to string) int {
	a, errA := time.Parse(dateLayout, from)
	b, errB := time.Parse(dateLayout, to)
	if errA != nil || errB != nil {
		return 0
	}
	an := time.Date(a.Year(), a.Month(), a.Day(), 12, 0, 0, 0, time.UTC)
	bn := time.Date(b.Year(), b.Month(), b.Day(), 12, 0, 0, 0, time.UTC)
	return int(bn.Sub(an).Hours() / 24)
}
