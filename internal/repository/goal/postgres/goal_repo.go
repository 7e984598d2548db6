package postgres

import (
	"context"
	"errors"
	"fmt"
	"goalTracker/internal/logger"
	"goalTracker/internal/models/goal"
	repo "goalTracker/internal/repository"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Storage struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, connString string) (*Storage, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		logger.Error("Repository: Ошибка загрузки конфига", err)
		return nil, fmt.Errorf("загрузка конфига: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnIdleTime = time.Minute * 5

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		logger.Error("Repository: Ошибка создания пула", err)
		return nil, fmt.Errorf("создание пула: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	logger.Info("Repository: Успешное создание подключения к PostgreSQL")
	return &Storage{pool: pool}, nil
}

func (s *Storage) Close() {
	if s.pool == nil {
		return
	}
	s.pool.Close()
	logger.Info("Repository: Закрытие всех соединений PostgreSQL")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	err := s.pool.Ping(ctx)
	if err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

const goalColumns = `uuid,
				title,
				description,
				kind,
				status,
				date,
				week_number,
				month,
				year,
				start_date,
				end_date,
				created_at,
				completed_at`

// scanGoal собирает цель из строки. Месяц хранится 1-базным целым,
// поэтому читается через промежуточный *int.
func scanGoal(row pgx.Row) (*goal.Goal, error) {
	g := &goal.Goal{}
	var month *int

	err := row.Scan(
		&g.UUID,
		&g.Title,
		&g.Description,
		&g.Kind,
		&g.Status,
		&g.Date,
		&g.WeekNumber,
		&month,
		&g.Year,
		&g.StartDate,
		&g.EndDate,
		&g.CreatedAt,
		&g.CompletedAt,
	)
	if err != nil {
		return nil, err
	}

	if month != nil {
		m := time.Month(*month)
		g.Month = &m
	}
	return g, nil
}

func monthValue(g *goal.Goal) *int {
	if g.Month == nil {
		return nil
	}
	m := int(*g.Month)
	return &m
}

func (s *Storage) Create(ctx context.Context, goalToCreate *goal.Goal) error {
	start := time.Now()

	query := `INSERT INTO goals
				(uuid, title, description, kind, status, date, week_number, month, year, start_date, end_date, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
				RETURNING created_at`

	err := s.pool.QueryRow(ctx, query,
		goalToCreate.UUID,
		goalToCreate.Title,
		goalToCreate.Description,
		goalToCreate.Kind,
		goalToCreate.Status,
		goalToCreate.Date,
		goalToCreate.WeekNumber,
		monthValue(goalToCreate),
		goalToCreate.Year,
		goalToCreate.StartDate,
		goalToCreate.EndDate,
		time.Now(),
	).Scan(&goalToCreate.CreatedAt)

	if err != nil {
		logger.Error("Repository: Не удалось добавить цель", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление цели: %w", err)
	}

	if time.Since(start) > time.Millisecond*50 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

// UpdateStatus пишет статус и completed_at. Значение completed_at приходит
// уже согласованным со статусом — правило поддерживает lifecycle.SetStatus.
func (s *Storage) UpdateStatus(ctx context.Context, goalToUpdate *goal.Goal) error {
	start := time.Now()

	query := `UPDATE goals
			SET status = $1,
				completed_at = $2
			WHERE uuid = $3
			RETURNING status, completed_at`

	err := s.pool.QueryRow(ctx, query,
		goalToUpdate.Status,
		goalToUpdate.CompletedAt,
		goalToUpdate.UUID,
	).Scan(&goalToUpdate.Status, &goalToUpdate.CompletedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Warn("Repository: Цель для обновления не найдена",
				zap.String("goal_id", goalToUpdate.UUID.String()))
			return repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось обновить статус цели", err)
		return fmt.Errorf("обновление статуса: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()

	query := `DELETE FROM goals
				WHERE uuid = $1`

	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		logger.Error("Repository: Удаление цели", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("удаление цели: %w", err)
	}

	if tag.RowsAffected() == 0 {
		logger.Warn("Repository: Цель для удаления не найдена", zap.String("goal_id", id.String()))
		return repo.ErrNotFound
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) GetByID(ctx context.Context, id uuid.UUID) (*goal.Goal, error) {
	start := time.Now()

	query := `SELECT ` + goalColumns + `
				FROM goals
				WHERE uuid = $1`

	g, err := scanGoal(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить цель", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение цели: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return g, nil
}

// GetByKind возвращает цели одного вида в порядке создания.
func (s *Storage) GetByKind(ctx context.Context, kind goal.Kind) ([]*goal.Goal, error) {
	start := time.Now()

	query := `SELECT ` + goalColumns + `
				FROM goals
				WHERE kind = $1
				ORDER BY created_at, uuid`

	rows, err := s.pool.Query(ctx, query, kind)
	if err != nil {
		logger.Error("Repository: Не удалось получить цели", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение целей: %w", err)
	}
	defer rows.Close()

	return s.collect(rows, start)
}

func (s *Storage) GetAll(ctx context.Context) ([]*goal.Goal, error) {
	start := time.Now()

	query := `SELECT ` + goalColumns + `
				FROM goals
				ORDER BY created_at, uuid`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		logger.Error("Repository: Не удалось получить цели", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение целей: %w", err)
	}
	defer rows.Close()

	return s.collect(rows, start)
}

func (s *Storage) collect(rows pgx.Rows, start time.Time) ([]*goal.Goal, error) {
	goals := []*goal.Goal{}

	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			logger.Warn("Repository: Ошибка сканирования цели", zap.Error(err))
			continue
		}
		goals = append(goals, g)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return goals, nil
}
