package inmemory

import (
	"context"
	"goalTracker/internal/logger"
	"goalTracker/internal/models/goal"
	repo "goalTracker/internal/repository"
	"sync"
	"time"

	"github.com/google/uuid"
)

// GoalStorage — потокобезопасное хранилище в памяти. Срез ids хранит
// порядок вставки: выборки возвращают цели в том порядке, в котором
// они были созданы.
type GoalStorage struct {
	storage map[uuid.UUID]*goal.Goal
	mtx     *sync.RWMutex
	ids     []uuid.UUID
}

func NewGoalStorage() *GoalStorage {
	return &GoalStorage{
		storage: make(map[uuid.UUID]*goal.Goal),
		mtx:     &sync.RWMutex{},
		ids:     []uuid.UUID{},
	}
}

func (s *GoalStorage) HealthCheck(ctx context.Context) error {
	logger.Info("Repository: Соединение стабильно")
	return nil
}

func (s *GoalStorage) Create(ctx context.Context, goalToCreate *goal.Goal) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	goalToCreate.CreatedAt = time.Now()

	s.storage[goalToCreate.UUID] = goalToCreate
	s.ids = append(s.ids, goalToCreate.UUID)
	return nil
}

// UpdateStatus сохраняет статус и completed_at уже изменённой цели.
func (s *GoalStorage) UpdateStatus(ctx context.Context, goalToUpdate *goal.Goal) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.storage[goalToUpdate.UUID]
	if !ok {
		return repo.ErrNotFound
	}

	existing.Status = goalToUpdate.Status
	existing.CompletedAt = goalToUpdate.CompletedAt
	return nil
}

func (s *GoalStorage) GetByID(ctx context.Context, id uuid.UUID) (*goal.Goal, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	goalToGet, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return goalToGet, nil
}

func (s *GoalStorage) Delete(ctx context.Context, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return repo.ErrNotFound
	}

	delete(s.storage, id)
	for ind, val := range s.ids {
		if val == id {
			s.ids = append(s.ids[:ind], s.ids[ind+1:]...)
			break
		}
	}
	return nil
}

// GetByKind возвращает цели одного вида в порядке вставки.
func (s *GoalStorage) GetByKind(ctx context.Context, kind goal.Kind) ([]*goal.Goal, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*goal.Goal{}
	for _, id := range s.ids {
		goalToGet := s.storage[id]
		if goalToGet.Kind != kind {
			continue
		}
		res = append(res, goalToGet)
	}
	return res, nil
}

func (s *GoalStorage) GetAll(ctx context.Context) ([]*goal.Goal, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]*goal.Goal, 0, len(s.ids))
	for _, id := range s.ids {
		res = append(res, s.storage[id])
	}
	return res, nil
}
