package inter

import (
	"context"
	"goalTracker/internal/models/goal"

	"github.com/google/uuid"
)

// GoalRepository — шлюз к постоянному хранилищу целей. Реализации:
// inmemory (кеш) и postgres (источник истины между сессиями).
type GoalRepository interface {
	Create(context.Context, *goal.Goal) error
	UpdateStatus(context.Context, *goal.Goal) error
	Delete(context.Context, uuid.UUID) error
	GetByID(context.Context, uuid.UUID) (*goal.Goal, error)
	GetByKind(context.Context, goal.Kind) ([]*goal.Goal, error)
	GetAll(context.Context) ([]*goal.Goal, error)
	HealthCheck(context.Context) error
}
