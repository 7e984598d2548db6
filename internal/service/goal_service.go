package service

import (
	"context"
	"errors"
	"fmt"
	"goalTracker/internal/buckets"
	"goalTracker/internal/lifecycle"
	"goalTracker/internal/logger"
	"goalTracker/internal/models/goal"
	rep "goalTracker/internal/repository"
	"goalTracker/internal/repository/inter"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Бизнес-логика целей: создание, переходы статуса, чекбокс и выборки
// по датам. Локальное состояние отражается только после подтверждения
// хранилищем; трекер наблюдает цели после каждой мутации и загрузки.

type GoalService struct {
	repo    inter.GoalRepository
	tracker *lifecycle.Tracker
}

func NewGoalService(repo inter.GoalRepository) *GoalService {
	return &GoalService{
		repo:    repo,
		tracker: lifecycle.NewTracker(),
	}
}

// Tracker отдаёт таблицу прежних статусов фоновому наблюдателю.
func (s *GoalService) Tracker() *lifecycle.Tracker {
	return s.tracker
}

func (s *GoalService) HealthCheck(ctx context.Context) error {
	return s.repo.HealthCheck(ctx)
}

// CreateGoalInput — размеченный вход создания цели: Kind определяет,
// какие из остальных полей обязательны.
type CreateGoalInput struct {
	Title       string
	Description string
	Kind        goal.Kind
	Date        *time.Time
	WeekNumber  *int
	Month       *time.Month
	Year        *int
}

func (s *GoalService) CreateGoal(ctx context.Context, input CreateGoalInput) (*goal.Goal, error) {
	if input.Title == "" {
		return nil, NewValidationError("title", "пустое значение")
	}

	var g *goal.Goal
	switch input.Kind {
	case goal.KindDaily:
		if input.Date == nil {
			return nil, NewValidationError("date", "обязательно для дневной цели")
		}
		g = goal.NewDaily(input.Title, input.Description, *input.Date)
	case goal.KindWeekly:
		if input.WeekNumber == nil || input.Year == nil {
			return nil, NewValidationError("week_number", "номер недели и год обязательны для недельной цели")
		}
		if *input.WeekNumber < 1 || *input.WeekNumber > 53 {
			return nil, NewValidationError("week_number", "вне диапазона 1..53")
		}
		g = goal.NewWeekly(input.Title, input.Description, *input.WeekNumber, *input.Year)
	case goal.KindMonthly:
		if input.Month == nil || input.Year == nil {
			return nil, NewValidationError("month", "месяц и год обязательны для месячной цели")
		}
		if *input.Month < time.January || *input.Month > time.December {
			return nil, NewValidationError("month", "вне диапазона 1..12")
		}
		g = goal.NewMonthly(input.Title, input.Description, *input.Month, *input.Year)
	default:
		return nil, NewValidationError("type", fmt.Sprintf("неизвестный вид цели: %q", input.Kind))
	}

	if err := g.Validate(); err != nil {
		return nil, NewValidationError("goal", err.Error())
	}

	if err := s.repo.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("создание цели: %w", err)
	}

	s.tracker.Observe(g)
	return g, nil
}

func (s *GoalService) GetGoalByID(ctx context.Context, id uuid.UUID) (*goal.Goal, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Цель не найдена", zap.String("target_id", id.String()))
			return nil, NewNotFound("цель", id.String())
		}
		return nil, fmt.Errorf("получение цели: %w", err)
	}

	s.tracker.Observe(g)
	return g, nil
}

// UpdateGoalStatus — прямая установка статуса из выпадающего меню.
func (s *GoalService) UpdateGoalStatus(ctx context.Context, id uuid.UUID, status goal.Status) (*goal.Goal, error) {
	if !goal.ValidStatus(status) {
		return nil, NewValidationError("status", fmt.Sprintf("неизвестный статус: %q", status))
	}

	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Цель не найдена", zap.String("target_id", id.String()))
			return nil, NewNotFound("цель", id.String())
		}
		return nil, fmt.Errorf("получение цели: %w", err)
	}

	// До перезаписи фиксируем текущий незавершённый статус,
	// чтобы снятие галочки могло к нему вернуться.
	s.tracker.Observe(g)

	lifecycle.SetStatus(g, status)

	if err := s.repo.UpdateStatus(ctx, g); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound("цель", id.String())
		}
		return nil, fmt.Errorf("обновление статуса: %w", err)
	}

	s.tracker.Observe(g)
	return g, nil
}

// ToggleGoal — семантика чекбокса: установка галочки завершает цель,
// снятие восстанавливает последний незавершённый статус
// (in-progress, если он неизвестен).
func (s *GoalService) ToggleGoal(ctx context.Context, id uuid.UUID, checked bool) (*goal.Goal, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Цель не найдена", zap.String("target_id", id.String()))
			return nil, NewNotFound("цель", id.String())
		}
		return nil, fmt.Errorf("получение цели: %w", err)
	}

	s.tracker.Observe(g)
	s.tracker.Toggle(g, checked)

	if err := s.repo.UpdateStatus(ctx, g); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound("цель", id.String())
		}
		return nil, fmt.Errorf("обновление статуса: %w", err)
	}

	s.tracker.Observe(g)
	return g, nil
}

func (s *GoalService) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Цель не найдена", zap.String("target_id", id.String()))
			return NewNotFound("цель", id.String())
		}
		return fmt.Errorf("удаление цели: %w", err)
	}

	s.tracker.Forget(id)
	return nil
}

// OverviewData — сетка текущей недели плюс недельные и месячные цели
// периода, показанные один раз вне сетки.
type OverviewData struct {
	Days    [7]buckets.OverviewDay
	Weekly  []*goal.Goal
	Monthly []*goal.Goal
}

func (s *GoalService) loadKind(ctx context.Context, kind goal.Kind) ([]*goal.Goal, error) {
	goals, err := s.repo.GetByKind(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("получение целей: %w", err)
	}
	s.tracker.Observe(goals...)
	return goals, nil
}

func (s *GoalService) DayView(ctx context.Context, date time.Time) (buckets.DayView, error) {
	daily, err := s.loadKind(ctx, goal.KindDaily)
	if err != nil {
		return buckets.DayView{}, err
	}
	weekly, err := s.loadKind(ctx, goal.KindWeekly)
	if err != nil {
		return buckets.DayView{}, err
	}
	return buckets.Day(date, daily, weekly), nil
}

func (s *GoalService) WeekView(ctx context.Context, date time.Time) ([]*goal.Goal, error) {
	weekly, err := s.loadKind(ctx, goal.KindWeekly)
	if err != nil {
		return nil, err
	}
	return buckets.Week(date, weekly), nil
}

func (s *GoalService) MonthView(ctx context.Context, date time.Time) ([]*goal.Goal, error) {
	monthly, err := s.loadKind(ctx, goal.KindMonthly)
	if err != nil {
		return nil, err
	}
	return buckets.Month(date, monthly), nil
}

func (s *GoalService) Overview(ctx context.Context, today time.Time) (OverviewData, error) {
	daily, err := s.loadKind(ctx, goal.KindDaily)
	if err != nil {
		return OverviewData{}, err
	}
	weekly, err := s.loadKind(ctx, goal.KindWeekly)
	if err != nil {
		return OverviewData{}, err
	}
	monthly, err := s.loadKind(ctx, goal.KindMonthly)
	if err != nil {
		return OverviewData{}, err
	}

	return OverviewData{
		Days:    buckets.Overview(today, daily),
		Weekly:  buckets.Week(today, weekly),
		Monthly: buckets.Month(today, monthly),
	}, nil
}
