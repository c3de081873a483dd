package repository

import "github.com/tu-usuario/logistica-api/internal/domain/entity"

// RuleRepository define el puerto de persistencia para reglas de recurrencia.
// Las reglas nunca se eliminan desde este sistema.
type RuleRepository interface {
	Create(rule *entity.RecurrenceRule) error
	GetByID(id string) (*entity.RecurrenceRule, error)
	Update(rule *entity.RecurrenceRule) error
	List(limit, offset int) ([]*entity.RecurrenceRule, error)
}
