package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/logistica-api/internal/domain"
	"github.com/tu-usuario/logistica-api/internal/domain/entity"
	"github.com/tu-usuario/logistica-api/internal/domain/repository"
)

var _ repository.RuleRepository = (*RuleRepo)(nil)

// RuleRepo implementación de RuleRepository sobre PostgreSQL (usable con pool
// o tx). La plantilla de reserva se guarda como JSONB: viaja verbatim del
// payload a la regla y de la regla a cada reserva generada.
type RuleRepo struct {
	q Querier
}

// NewRuleRepository construye el adaptador de reglas de recurrencia. Pasar pool o tx (Querier).
func NewRuleRepository(q Querier) *RuleRepo {
	return &RuleRepo{q: q}
}

// Create persiste una nueva regla.
func (r *RuleRepo) Create(rule *entity.RecurrenceRule) error {
	template, err := json.Marshal(rule.Template)
	if err != nil {
		return fmt.Errorf("marshal rule template: %w", err)
	}
	query := `
		INSERT INTO recurrence_rules (id, template, start_date, repeat_weeks, weeks_ahead, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.q.Exec(context.Background(), query,
		rule.ID, template, rule.StartDate, rule.RepeatWeeks, rule.WeeksAhead, rule.CreatedAt, rule.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert recurrence rule: %w", err)
	}
	return nil
}

// GetByID obtiene una regla por ID. Devuelve (nil, nil) si no existe.
func (r *RuleRepo) GetByID(id string) (*entity.RecurrenceRule, error) {
	query := `
		SELECT id, template, start_date, repeat_weeks, weeks_ahead, created_at, updated_at
		FROM recurrence_rules WHERE id = $1`
	rule, err := scanRule(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recurrence rule: %w", err)
	}
	return rule, nil
}

// Update actualiza una regla existente.
func (r *RuleRepo) Update(rule *entity.RecurrenceRule) error {
	template, err := json.Marshal(rule.Template)
	if err != nil {
		return fmt.Errorf("marshal rule template: %w", err)
	}
	query := `
		UPDATE recurrence_rules
		SET template = $2, start_date = $3, repeat_weeks = $4, weeks_ahead = $5, updated_at = $6
		WHERE id = $1`
	_, err = r.q.Exec(context.Background(), query,
		rule.ID, template, rule.StartDate, rule.RepeatWeeks, rule.WeeksAhead, rule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update recurrence rule: %w", err)
	}
	return nil
}

// List lista reglas con paginación.
func (r *RuleRepo) List(limit, offset int) ([]*entity.RecurrenceRule, error) {
	query := `
		SELECT id, template, start_date, repeat_weeks, weeks_ahead, created_at, updated_at
		FROM recurrence_rules ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list recurrence rules: %w", err)
	}
	defer rows.Close()
	var list []*entity.RecurrenceRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recurrence rule: %w", err)
		}
		list = append(list, rule)
	}
	return list, rows.Err()
}

func scanRule(row pgx.Row) (*entity.RecurrenceRule, error) {
	var (
		rule     entity.RecurrenceRule
		template []byte
	)
	err := row.Scan(
		&rule.ID, &template, &rule.StartDate, &rule.RepeatWeeks, &rule.WeeksAhead,
		&rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(template, &rule.Template); err != nil {
		return nil, fmt.Errorf("unmarshal rule template: %w", err)
	}
	return &rule, nil
}
