package lifecycle

import (
	"goalTracker/internal/models/goal"
	"time"
)

// Правила переходов статуса. Жёсткой таблицы переходов нет — любой статус
// достижим из любого, но completed_at всегда следует правилу:
// установлен тогда и только тогда, когда статус completed.

// SetStatus безусловно присваивает цели новый статус. При переходе в
// completed проставляется completed_at, при любом другом — сбрасывается.
func SetStatus(g *goal.Goal, status goal.Status) {
	g.Status = status
	if status == goal.StatusCompleted {
		now := time.Now()
		g.CompletedAt = &now
	} else {
		g.CompletedAt = nil
	}
}
