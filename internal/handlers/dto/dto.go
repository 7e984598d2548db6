package dto

import (
	"goalTracker/internal/buckets"
	"goalTracker/internal/models/goal"
	"goalTracker/internal/service"
	"time"

	"github.com/google/uuid"
)

// Представление дат на проводе: календарные даты — строки YYYY-MM-DD,
// отметки времени — RFC 3339. Месяц 1-базный (1 = январь).

const DateLayout = "2006-01-02"

type CreateGoalRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Type        string  `json:"type"`
	Date        *string `json:"date,omitempty"`
	WeekNumber  *int    `json:"week_number,omitempty"`
	Month       *int    `json:"month,omitempty"`
	Year        *int    `json:"year,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type ToggleRequest struct {
	Checked bool `json:"checked"`
}

type GoalResponse struct {
	UUID        uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Kind        string     `json:"type"`
	Status      string     `json:"status"`
	Date        *string    `json:"date,omitempty"`
	WeekNumber  *int       `json:"week_number,omitempty"`
	Month       *int       `json:"month,omitempty"`
	Year        *int       `json:"year,omitempty"`
	StartDate   *string    `json:"start_date,omitempty"`
	EndDate     *string    `json:"end_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func dateString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

func monthInt(m *time.Month) *int {
	if m == nil {
		return nil
	}
	v := int(*m)
	return &v
}

func FromGoal(g *goal.Goal) GoalResponse {
	return GoalResponse{
		UUID:        g.UUID,
		Title:       g.Title,
		Description: g.Description,
		Kind:        string(g.Kind),
		Status:      string(g.Status),
		Date:        dateString(g.Date),
		WeekNumber:  g.WeekNumber,
		Month:       monthInt(g.Month),
		Year:        g.Year,
		StartDate:   dateString(g.StartDate),
		EndDate:     dateString(g.EndDate),
		CreatedAt:   g.CreatedAt,
		CompletedAt: g.CompletedAt,
	}
}

func FromGoalList(goals []*goal.Goal) []GoalResponse {
	result := make([]GoalResponse, len(goals))
	for i, g := range goals {
		result[i] = FromGoal(g)
	}
	return result
}

type DayViewResponse struct {
	Date   string         `json:"date"`
	Daily  []GoalResponse `json:"daily"`
	Weekly []GoalResponse `json:"weekly"`
}

type WeekViewResponse struct {
	Date   string         `json:"date"`
	Weekly []GoalResponse `json:"weekly"`
}

type MonthViewResponse struct {
	Date    string         `json:"date"`
	Monthly []GoalResponse `json:"monthly"`
}

type OverviewDayResponse struct {
	Date  string         `json:"date"`
	Daily []GoalResponse `json:"daily"`
}

type OverviewResponse struct {
	Days    []OverviewDayResponse `json:"days"`
	Weekly  []GoalResponse        `json:"weekly"`
	Monthly []GoalResponse        `json:"monthly"`
}

func FromDayView(date time.Time, v buckets.DayView) DayViewResponse {
	return DayViewResponse{
		Date:   date.Format(DateLayout),
		Daily:  FromGoalList(v.Daily),
		Weekly: FromGoalList(v.Weekly),
	}
}

func FromOverview(data service.OverviewData) OverviewResponse {
	days := make([]OverviewDayResponse, 0, len(data.Days))
	for _, d := range data.Days {
		days = append(days, OverviewDayResponse{
			Date:  d.Date.Format(DateLayout),
			Daily: FromGoalList(d.Daily),
		})
	}
	return OverviewResponse{
		Days:    days,
		Weekly:  FromGoalList(data.Weekly),
		Monthly: FromGoalList(data.Monthly),
	}
}
