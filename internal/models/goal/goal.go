package goal

import (
	"fmt"
	"goalTracker/internal/dateutil"
	"time"

	"github.com/google/uuid"
)

type Kind string
type Status string

const KindDaily Kind = "daily"
const KindWeekly Kind = "weekly"
const KindMonthly Kind = "monthly"

const StatusNotStarted Status = "not-started"
const StatusInProgress Status = "in-progress"
const StatusCompleted Status = "completed"

// Goal — цель с явным дискриминантом Kind. Заполнен ровно один набор
// полей привязки: Date (daily), WeekNumber/Year/StartDate/EndDate (weekly)
// или Month/Year (monthly). Вид цели не меняется после создания.
type Goal struct {
	UUID        uuid.UUID   `json:"uuid" db:"uuid"`
	Title       string      `json:"title" db:"title"`
	Description string      `json:"description,omitempty" db:"description"`
	Kind        Kind        `json:"kind" db:"kind"`
	Status      Status      `json:"status" db:"status"`
	Date        *time.Time  `json:"date,omitempty" db:"date"`
	WeekNumber  *int        `json:"week_number,omitempty" db:"week_number"`
	Month       *time.Month `json:"month,omitempty" db:"month"`
	Year        *int        `json:"year,omitempty" db:"year"`
	StartDate   *time.Time  `json:"start_date,omitempty" db:"start_date"`
	EndDate     *time.Time  `json:"end_date,omitempty" db:"end_date"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty" db:"completed_at"`
}

func ValidStatus(s Status) bool {
	return s == StatusNotStarted || s == StatusInProgress || s == StatusCompleted
}

// NewDaily создаёт дневную цель на календарную дату date (время суток
// отбрасывается). Статус всегда not-started.
func NewDaily(title, description string, date time.Time) *Goal {
	day := dateutil.DayOf(date)
	return &Goal{
		UUID:        uuid.New(),
		Title:       title,
		Description: description,
		Kind:        KindDaily,
		Status:      StatusNotStarted,
		Date:        &day,
	}
}

// NewWeekly создаёт недельную цель по номеру ISO-недели и году.
// Границы недели (понедельник..воскресенье) вычисляются сразу.
func NewWeekly(title, description string, weekNumber, year int) *Goal {
	start := dateutil.WeekStart(year, weekNumber)
	end := start.AddDate(0, 0, 6)
	return &Goal{
		UUID:        uuid.New(),
		Title:       title,
		Description: description,
		Kind:        KindWeekly,
		Status:      StatusNotStarted,
		WeekNumber:  &weekNumber,
		Year:        &year,
		StartDate:   &start,
		EndDate:     &end,
	}
}

// NewMonthly создаёт месячную цель. Месяц везде 1-базный (time.Month).
func NewMonthly(title, description string, month time.Month, year int) *Goal {
	return &Goal{
		UUID:        uuid.New(),
		Title:       title,
		Description: description,
		Kind:        KindMonthly,
		Status:      StatusNotStarted,
		Month:       &month,
		Year:        &year,
	}
}

// Validate проверяет инварианты модели: непустой заголовок, известные вид и
// статус, заполненность полей ровно одного варианта, согласованность
// CompletedAt со статусом и корректность недельного диапазона.
func (g *Goal) Validate() error {
	if g.Title == "" {
		return fmt.Errorf("пустой заголовок цели")
	}

	if !ValidStatus(g.Status) {
		return fmt.Errorf("неизвестный статус: %q", g.Status)
	}

	if g.Status == StatusCompleted && g.CompletedAt == nil {
		return fmt.Errorf("завершённая цель без completed_at")
	}
	if g.Status != StatusCompleted && g.CompletedAt != nil {
		return fmt.Errorf("completed_at у незавершённой цели")
	}

	switch g.Kind {
	case KindDaily:
		if g.Date == nil {
			return fmt.Errorf("дневная цель без даты")
		}
		if g.WeekNumber != nil || g.Month != nil || g.Year != nil {
			return fmt.Errorf("лишние поля у дневной цели")
		}
	case KindWeekly:
		if g.WeekNumber == nil || g.Year == nil || g.StartDate == nil || g.EndDate == nil {
			return fmt.Errorf("недельная цель без номера недели, года или границ")
		}
		if *g.WeekNumber < 1 || *g.WeekNumber > 53 {
			return fmt.Errorf("номер недели %d вне диапазона 1..53", *g.WeekNumber)
		}
		if g.EndDate.Before(*g.StartDate) {
			return fmt.Errorf("конец недели раньше начала")
		}
		if !dateutil.SameDay(g.StartDate.AddDate(0, 0, 6), *g.EndDate) {
			return fmt.Errorf("недельный диапазон не равен 7 дням")
		}
		if g.Date != nil || g.Month != nil {
			return fmt.Errorf("лишние поля у недельной цели")
		}
	case KindMonthly:
		if g.Month == nil || g.Year == nil {
			return fmt.Errorf("месячная цель без месяца или года")
		}
		if *g.Month < time.January || *g.Month > time.December {
			return fmt.Errorf("месяц %d вне диапазона 1..12", *g.Month)
		}
		if g.Date != nil || g.WeekNumber != nil || g.StartDate != nil || g.EndDate != nil {
			return fmt.Errorf("лишние поля у месячной цели")
		}
	default:
		return fmt.Errorf("неизвестный вид цели: %q", g.Kind)
	}

	return nil
}
