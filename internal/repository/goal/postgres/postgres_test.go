package postgres_test

import (
	"context"
	"fmt"
	"goalTracker/internal/logger"
	"goalTracker/internal/models/goal"
	"goalTracker/internal/repository"
	"goalTracker/internal/repository/goal/postgres"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestMain(m *testing.M) {
	if err := logger.Init(false); err != nil {
		os.Exit(1)
	}
	defer logger.Sync()
	os.Exit(m.Run())
}

// PostgresTestSuite для интеграционных тестов с PostgreSQL
type PostgresTestSuite struct {
	suite.Suite
	container  testcontainers.Container
	storage    *postgres.Storage
	ctx        context.Context
	connString string
}

// SetupSuite запускается один раз перед всеми тестами
func (s *PostgresTestSuite) SetupSuite() {
	s.ctx = context.Background()

	// Запускаем контейнер с PostgreSQL
	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(s.T(), err)
	s.container = container

	host, err := container.Host(s.ctx)
	require.NoError(s.T(), err)

	port, err := container.MappedPort(s.ctx, "5432")
	require.NoError(s.T(), err)

	s.connString = fmt.Sprintf("postgres://test:test@%s:%s/testdb", host, port.Port())

	// Применяем встроенные миграции
	require.NoError(s.T(), postgres.Migrate(s.connString))

	s.storage, err = postgres.New(s.ctx, s.connString)
	require.NoError(s.T(), err)
}

// TearDownSuite очищает после всех тестов
func (s *PostgresTestSuite) TearDownSuite() {
	if s.storage != nil {
		s.storage.Close()
	}
	if s.container != nil {
		s.container.Terminate(s.ctx)
	}
}

// SetupTest очищает таблицу перед каждым тестом
func (s *PostgresTestSuite) SetupTest() {
	conn, err := pgx.Connect(s.ctx, s.connString)
	require.NoError(s.T(), err)
	defer conn.Close(s.ctx)

	_, err = conn.Exec(s.ctx, "DELETE FROM goals")
	require.NoError(s.T(), err)
}

// TestPostgresTestSuite запускает suite
func TestPostgresTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Пропускаем интеграционные тесты в коротком режиме")
	}
	suite.Run(t, new(PostgresTestSuite))
}

// TestStorage_Create тестирует создание цели
func (s *PostgresTestSuite) TestStorage_Create() {
	ctx := context.Background()

	goalToCreate := goal.NewDaily("5km Run", "Morning run", time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC))

	err := s.storage.Create(ctx, goalToCreate)
	require.NoError(s.T(), err)
	assert.False(s.T(), goalToCreate.CreatedAt.IsZero())

	// Проверяем, что цель создана
	retrieved, err := s.storage.GetByID(ctx, goalToCreate.UUID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "5km Run", retrieved.Title)
	assert.Equal(s.T(), goal.KindDaily, retrieved.Kind)
	assert.Equal(s.T(), goal.StatusNotStarted, retrieved.Status)
	require.NotNil(s.T(), retrieved.Date)
	assert.Equal(s.T(), "2024-06-10", retrieved.Date.Format("2006-01-02"))
	assert.Nil(s.T(), retrieved.CompletedAt)
}

// TestStorage_Create_Weekly тестирует сохранение производного диапазона дат
func (s *PostgresTestSuite) TestStorage_Create_Weekly() {
	ctx := context.Background()

	goalToCreate := goal.NewWeekly("Long ride", "", 24, 2024)

	err := s.storage.Create(ctx, goalToCreate)
	require.NoError(s.T(), err)

	retrieved, err := s.storage.GetByID(ctx, goalToCreate.UUID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), goal.KindWeekly, retrieved.Kind)
	require.NotNil(s.T(), retrieved.WeekNumber)
	assert.Equal(s.T(), 24, *retrieved.WeekNumber)
	require.NotNil(s.T(), retrieved.StartDate)
	assert.Equal(s.T(), "2024-06-10", retrieved.StartDate.Format("2006-01-02"))
	require.NotNil(s.T(), retrieved.EndDate)
	assert.Equal(s.T(), "2024-06-16", retrieved.EndDate.Format("2006-01-02"))
}

// TestStorage_Create_Monthly тестирует сохранение месячной цели
func (s *PostgresTestSuite) TestStorage_Create_Monthly() {
	ctx := context.Background()

	goalToCreate := goal.NewMonthly("100km total", "", time.June, 2024)

	err := s.storage.Create(ctx, goalToCreate)
	require.NoError(s.T(), err)

	retrieved, err := s.storage.GetByID(ctx, goalToCreate.UUID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), goal.KindMonthly, retrieved.Kind)
	require.NotNil(s.T(), retrieved.Month)
	assert.Equal(s.T(), time.June, *retrieved.Month)
	require.NotNil(s.T(), retrieved.Year)
	assert.Equal(s.T(), 2024, *retrieved.Year)
}

// TestStorage_GetByID тестирует получение цели по ID
func (s *PostgresTestSuite) TestStorage_GetByID() {
	ctx := context.Background()

	goalToCreate := goal.NewDaily("Stretching", "", time.Now())
	require.NoError(s.T(), s.storage.Create(ctx, goalToCreate))

	retrieved, err := s.storage.GetByID(ctx, goalToCreate.UUID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), goalToCreate.UUID, retrieved.UUID)

	// Пытаемся получить несуществующую цель
	_, err = s.storage.GetByID(ctx, uuid.New())
	require.Error(s.T(), err)
	assert.ErrorIs(s.T(), err, repository.ErrNotFound)
}

// TestStorage_UpdateStatus тестирует обновление статуса и completed_at
func (s *PostgresTestSuite) TestStorage_UpdateStatus() {
	ctx := context.Background()

	goalToCreate := goal.NewDaily("Swim", "", time.Now())
	require.NoError(s.T(), s.storage.Create(ctx, goalToCreate))

	// Завершаем
	now := time.Now()
	goalToCreate.Status = goal.StatusCompleted
	goalToCreate.CompletedAt = &now

	err := s.storage.UpdateStatus(ctx, goalToCreate)
	require.NoError(s.T(), err)

	retrieved, err := s.storage.GetByID(ctx, goalToCreate.UUID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), goal.StatusCompleted, retrieved.Status)
	require.NotNil(s.T(), retrieved.CompletedAt)

	// Снимаем галочку — completed_at должен обнулиться в базе
	goalToCreate.Status = goal.StatusInProgress
	goalToCreate.CompletedAt = nil

	err = s.storage.UpdateStatus(ctx, goalToCreate)
	require.NoError(s.T(), err)

	retrieved, err = s.storage.GetByID(ctx, goalToCreate.UUID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), goal.StatusInProgress, retrieved.Status)
	assert.Nil(s.T(), retrieved.CompletedAt)

	// Обновление несуществующей цели
	missing := goal.NewDaily("Missing", "", time.Now())
	err = s.storage.UpdateStatus(ctx, missing)
	assert.ErrorIs(s.T(), err, repository.ErrNotFound)
}

// TestStorage_Delete тестирует удаление цели
func (s *PostgresTestSuite) TestStorage_Delete() {
	ctx := context.Background()

	goalToCreate := goal.NewDaily("Row", "", time.Now())
	require.NoError(s.T(), s.storage.Create(ctx, goalToCreate))

	err := s.storage.Delete(ctx, goalToCreate.UUID)
	require.NoError(s.T(), err)

	_, err = s.storage.GetByID(ctx, goalToCreate.UUID)
	assert.ErrorIs(s.T(), err, repository.ErrNotFound)

	// Повторное удаление
	err = s.storage.Delete(ctx, goalToCreate.UUID)
	assert.ErrorIs(s.T(), err, repository.ErrNotFound)
}

// TestStorage_GetByKind тестирует выборку по виду цели
func (s *PostgresTestSuite) TestStorage_GetByKind() {
	ctx := context.Background()

	daily := goal.NewDaily("Run", "", time.Now())
	weekly := goal.NewWeekly("Ride", "", 24, 2024)
	monthly := goal.NewMonthly("Total", "", time.June, 2024)

	require.NoError(s.T(), s.storage.Create(ctx, daily))
	require.NoError(s.T(), s.storage.Create(ctx, weekly))
	require.NoError(s.T(), s.storage.Create(ctx, monthly))

	got, err := s.storage.GetByKind(ctx, goal.KindMonthly)
	require.NoError(s.T(), err)
	require.Len(s.T(), got, 1)
	assert.Equal(s.T(), monthly.UUID, got[0].UUID)

	all, err := s.storage.GetAll(ctx)
	require.NoError(s.T(), err)
	assert.Len(s.T(), all, 3)
}

// TestStorage_GetAll_Order тестирует порядок: цели возвращаются
// в порядке создания
func (s *PostgresTestSuite) TestStorage_GetAll_Order() {
	ctx := context.Background()

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		g := goal.NewDaily(title, "", time.Now())
		require.NoError(s.T(), s.storage.Create(ctx, g))
	}

	got, err := s.storage.GetAll(ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), got, 3)
	for i, title := range titles {
		assert.Equal(s.T(), title, got[i].Title)
	}
}

// TestStorage_HealthCheck тестирует проверку здоровья
func (s *PostgresTestSuite) TestStorage_HealthCheck() {
	ctx := context.Background()

	err := s.storage.HealthCheck(ctx)
	require.NoError(s.T(), err)
}

// Unit тесты (без базы данных)
func TestStorage_New(t *testing.T) {
	tests := []struct {
		name        string
		connString  string
		expectError bool
	}{
		{
			name:        "invalid connection string",
			connString:  "invalid",
			expectError: true,
		},
		{
			name:        "empty connection string",
			connString:  "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			_, err := postgres.New(ctx, tt.connString)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStorage_Close(t *testing.T) {
	// Это тест на то, что Close не паникует
	storage := &postgres.Storage{}
	assert.NotPanics(t, func() {
		storage.Close()
	})
}
