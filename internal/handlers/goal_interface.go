package handlers

import (
	"context"
	"goalTracker/internal/buckets"
	"goalTracker/internal/models/goal"
	"goalTracker/internal/service"
	"time"

	"github.com/google/uuid"
)

type GoalService interface {
	HealthCheck(context.Context) error
	CreateGoal(context.Context, service.CreateGoalInput) (*goal.Goal, error)
	GetGoalByID(context.Context, uuid.UUID) (*goal.Goal, error)
	UpdateGoalStatus(context.Context, uuid.UUID, goal.Status) (*goal.Goal, error)
	ToggleGoal(context.Context, uuid.UUID, bool) (*goal.Goal, error)
	DeleteGoal(context.Context, uuid.UUID) error
	DayView(context.Context, time.Time) (buckets.DayView, error)
	WeekView(context.Context, time.Time) ([]*goal.Goal, error)
	MonthView(context.Context, time.Time) ([]*goal.Goal, error)
	Overview(context.Context, time.Time) (service.OverviewData, error)
}
