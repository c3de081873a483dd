package dto

import "time"

// CreateRuleRequest body para POST /api/recurrences.
type CreateRuleRequest struct {
	Template    BookingPayload `json:"template" validate:"required"`
	StartDate   string         `json:"start_date" validate:"required,datetime=2006-01-02"`
	RepeatWeeks int            `json:"repeat_weeks" validate:"required,min=1,max=52"`
	WeeksAhead  int            `json:"weeks_ahead" validate:"required,min=1,max=104"`
}

// UpdateRuleRequest actualización parcial de una regla (cualquier subconjunto).
type UpdateRuleRequest struct {
	Template    *BookingPayload `json:"template,omitempty"`
	StartDate   *string         `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	RepeatWeeks *int            `json:"repeat_weeks,omitempty" validate:"omitempty,min=1,max=52"`
	WeeksAhead  *int            `json:"weeks_ahead,omitempty" validate:"omitempty,min=1,max=104"`
}

// RuleResponse regla en respuestas.
type RuleResponse struct {
	ID          string         `json:"id"`
	Template    BookingPayload `json:"template"`
	StartDate   string         `json:"start_date"`
	RepeatWeeks int            `json:"repeat_weeks"`
	WeeksAhead  int            `json:"weeks_ahead"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// RuleListResponse listado paginado de reglas.
type RuleListResponse struct {
	Items []RuleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// GenerateResponse resultado de materializar una regla.
type GenerateResponse struct {
	Created int `json:"created"`
}
