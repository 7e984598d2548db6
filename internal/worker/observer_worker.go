package worker

import (
	"context"
	"fmt"
	"goalTracker/internal/lifecycle"
	"goalTracker/internal/logger"
	"goalTracker/internal/models/goal"
	"goalTracker/internal/repository/inter"
	"time"

	"go.uber.org/zap"
)

// StatusObserverWorker периодически перечитывает коллекцию целей и скармливает
// её трекеру прежних статусов. Так трекер видит и те цели, чей статус
// изменился вне этого процесса, и снятие галочки возвращает правильный статус.

type StatusObserverWorker struct {
	repo     inter.GoalRepository
	tracker  *lifecycle.Tracker
	interval time.Duration
}

func NewStatusObserverWorker(repo inter.GoalRepository, tracker *lifecycle.Tracker, interval *time.Duration) *StatusObserverWorker {
	var intervalToSet time.Duration
	if interval == nil {
		intervalToSet = 5 * time.Minute
	} else {
		intervalToSet = *interval
	}

	return &StatusObserverWorker{
		repo:     repo,
		tracker:  tracker,
		interval: intervalToSet,
	}
}

func (w *StatusObserverWorker) Start(ctx context.Context) {
	// Первый проход сразу: статусы должны быть зафиксированы до того,
	// как придёт первый toggle.
	w.Observe(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logger.Info("Worker: Фоновое наблюдение статусов", zap.Time("started_at", time.Now()))
			w.Observe(ctx)
		case <-ctx.Done():
			logger.Info("Worker: Фоновое наблюдение останавливается")
			return
		}
	}
}

func (w *StatusObserverWorker) Observe(ctx context.Context) {
	start := time.Now()

	goals, err := w.loadAllGoals(ctx)
	if err != nil {
		logger.Warn("Worker: Ошибка получения целей", zap.Error(err))
		return
	}

	w.tracker.Observe(goals...)

	tracked := 0
	for _, g := range goals {
		if g.Status != goal.StatusCompleted {
			tracked++
		}
	}

	logger.Info(
		"Worker: Завершение наблюдения",
		zap.Duration("ms", time.Since(start)),
		zap.Int("observed", len(goals)),
		zap.Int("tracked", tracked),
	)
}

func (w *StatusObserverWorker) loadAllGoals(ctx context.Context) ([]*goal.Goal, error) {
	goals, err := w.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение целей: %w", err)
	}
	return goals, nil
}
