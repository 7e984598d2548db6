package lifecycle_test

import (
	"goalTracker/internal/lifecycle"
	"goalTracker/internal/models/goal"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSetStatus_Completed проверяет, что переход в completed проставляет
// completed_at.
func TestSetStatus_Completed(t *testing.T) {
	g := goal.NewDaily("5km Run", "", time.Now())
	g.Status = goal.StatusInProgress

	lifecycle.SetStatus(g, goal.StatusCompleted)

	assert.Equal(t, goal.StatusCompleted, g.Status)
	require.NotNil(t, g.CompletedAt)
	assert.WithinDuration(t, time.Now(), *g.CompletedAt, time.Second)
}

// TestSetStatus_ClearsCompletedAt проверяет, что любой переход из completed
// сбрасывает completed_at.
func TestSetStatus_ClearsCompletedAt(t *testing.T) {
	for _, status := range []goal.Status{goal.StatusNotStarted, goal.StatusInProgress} {
		g := goal.NewDaily("5km Run", "", time.Now())
		lifecycle.SetStatus(g, goal.StatusCompleted)
		require.NotNil(t, g.CompletedAt)

		lifecycle.SetStatus(g, status)

		assert.Equal(t, status, g.Status)
		assert.Nil(t, g.CompletedAt)
	}
}

// TestToggle_RoundTrip проверяет полный цикл чекбокса: завершение и возврат
// к прежнему статусу после снятия галочки.
func TestToggle_RoundTrip(t *testing.T) {
	tracker := lifecycle.NewTracker()

	g := goal.NewDaily("5km Run", "", time.Now())
	g.Status = goal.StatusInProgress
	tracker.Observe(g)

	tracker.Toggle(g, true)
	assert.Equal(t, goal.StatusCompleted, g.Status)
	require.NotNil(t, g.CompletedAt)

	tracker.Toggle(g, false)
	assert.Equal(t, goal.StatusInProgress, g.Status)
	assert.Nil(t, g.CompletedAt)
}

// TestToggle_RestoresNotStarted проверяет, что восстанавливается именно
// прежний статус, а не in-progress по умолчанию.
func TestToggle_RestoresNotStarted(t *testing.T) {
	tracker := lifecycle.NewTracker()

	g := goal.NewDaily("Stretching", "", time.Now())
	require.Equal(t, goal.StatusNotStarted, g.Status)
	tracker.Observe(g)

	tracker.Toggle(g, true)
	tracker.Toggle(g, false)

	assert.Equal(t, goal.StatusNotStarted, g.Status)
}

// TestToggle_DefaultInProgress проверяет откат по умолчанию: если цель ни разу
// не наблюдалась незавершённой, снятие галочки даёт in-progress.
func TestToggle_DefaultInProgress(t *testing.T) {
	tracker := lifecycle.NewTracker()

	// Цель пришла уже завершённой — прежний статус неизвестен.
	g := goal.NewDaily("Swim", "", time.Now())
	lifecycle.SetStatus(g, goal.StatusCompleted)
	tracker.Observe(g)

	tracker.Toggle(g, false)

	assert.Equal(t, goal.StatusInProgress, g.Status)
	assert.Nil(t, g.CompletedAt)
}

// TestObserve_IgnoresCompleted проверяет, что наблюдение завершённой цели
// не затирает записанный незавершённый статус.
func TestObserve_IgnoresCompleted(t *testing.T) {
	tracker := lifecycle.NewTracker()

	g := goal.NewDaily("Bike", "", time.Now())
	g.Status = goal.StatusInProgress
	tracker.Observe(g)

	lifecycle.SetStatus(g, goal.StatusCompleted)
	tracker.Observe(g)

	assert.Equal(t, goal.StatusInProgress, tracker.Restore(g.UUID))
}

// TestObserve_CapturesExternalState проверяет захват статусов целей,
// пришедших извне (из хранилища), до первого переключения.
func TestObserve_CapturesExternalState(t *testing.T) {
	tracker := lifecycle.NewTracker()

	goals := []*goal.Goal{
		goal.NewDaily("Run", "", time.Now()),
		goal.NewWeekly("Long ride", "", 24, 2024),
		goal.NewMonthly("100km total", "", time.June, 2024),
	}
	goals[1].Status = goal.StatusInProgress

	tracker.Observe(goals...)

	assert.Equal(t, goal.StatusNotStarted, tracker.Restore(goals[0].UUID))
	assert.Equal(t, goal.StatusInProgress, tracker.Restore(goals[1].UUID))
	assert.Equal(t, goal.StatusNotStarted, tracker.Restore(goals[2].UUID))
}

// TestForget проверяет, что после удаления записи восстановление
// возвращает значение по умолчанию.
func TestForget(t *testing.T) {
	tracker := lifecycle.NewTracker()

	g := goal.NewDaily("Row", "", time.Now())
	tracker.Observe(g)
	require.Equal(t, goal.StatusNotStarted, tracker.Restore(g.UUID))

	tracker.Forget(g.UUID)

	assert.Equal(t, goal.StatusInProgress, tracker.Restore(g.UUID))
}

// TestRestore_UnknownID проверяет значение по умолчанию для неизвестной цели.
func TestRestore_UnknownID(t *testing.T) {
	tracker := lifecycle.NewTracker()
	assert.Equal(t, goal.StatusInProgress, tracker.Restore(uuid.New()))
}
