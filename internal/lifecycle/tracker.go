package lifecycle

import (
	"goalTracker/internal/models/goal"
	"sync"

	"github.com/google/uuid"
)

// Tracker — таблица последних незавершённых статусов по id цели.
// Наполняется наблюдением за коллекцией после каждой мутации и каждой
// загрузки из репозитория, поэтому ловит и статусы, пришедшие извне.
type Tracker struct {
	mtx  *sync.RWMutex
	prev map[uuid.UUID]goal.Status
}

func NewTracker() *Tracker {
	return &Tracker{
		mtx:  &sync.RWMutex{},
		prev: make(map[uuid.UUID]goal.Status),
	}
}

// Observe записывает статус каждой цели, которая сейчас не завершена.
// Завершённые цели запись не трогают — их прежний статус остаётся,
// чтобы снятие галочки могло его восстановить.
func (t *Tracker) Observe(goals ...*goal.Goal) {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	for _, g := range goals {
		if g == nil {
			continue
		}
		if g.Status != goal.StatusCompleted {
			t.prev[g.UUID] = g.Status
		}
	}
}

// Restore возвращает последний незавершённый статус цели. Если цель ни разу
// не наблюдалась незавершённой (например, пришла уже завершённой) —
// возвращается in-progress.
func (t *Tracker) Restore(id uuid.UUID) goal.Status {
	t.mtx.RLock()
	defer t.mtx.RUnlock()

	if status, ok := t.prev[id]; ok {
		return status
	}
	return goal.StatusInProgress
}

// Forget удаляет запись о цели. Вызывается при удалении цели.
func (t *Tracker) Forget(id uuid.UUID) {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	delete(t.prev, id)
}

// Toggle — семантика чекбокса: установка галочки всегда завершает цель,
// снятие возвращает последний незавершённый статус.
func (t *Tracker) Toggle(g *goal.Goal, checked bool) {
	if checked {
		SetStatus(g, goal.StatusCompleted)
		return
	}
	SetStatus(g, t.Restore(g.UUID))
}
