package buckets

import (
	"goalTracker/internal/dateutil"
	"goalTracker/internal/models/goal"
	"time"
)

// Выборка целей, видимых для опорной даты. Только чтение: резолвер никогда
// не мутирует коллекции и сохраняет порядок вставки исходного среза.

// DateBuckets — все три среза, активные для одной даты.
type DateBuckets struct {
	Daily   []*goal.Goal
	Weekly  []*goal.Goal
	Monthly []*goal.Goal
}

// DayView — представление дня: дневные цели этой даты плюс недельные,
// чей диапазон её накрывает.
type DayView struct {
	Daily  []*goal.Goal
	Weekly []*goal.Goal
}

// OverviewDay — одна ячейка недельной сетки обзора.
type OverviewDay struct {
	Date  time.Time
	Daily []*goal.Goal
}

// ForDate отбирает цели, активные для даты d:
// дневные — по совпадению календарной даты, недельные — по включению
// d в [StartDate, EndDate], месячные — по совпадению месяца и года.
func ForDate(d time.Time, daily, weekly, monthly []*goal.Goal) DateBuckets {
	day := dateutil.UTCDate(d)
	res := DateBuckets{
		Daily:   []*goal.Goal{},
		Weekly:  []*goal.Goal{},
		Monthly: []*goal.Goal{},
	}

	for _, g := range daily {
		if g.Date != nil && dateutil.SameDay(*g.Date, day) {
			res.Daily = append(res.Daily, g)
		}
	}

	for _, g := range weekly {
		if g.StartDate == nil || g.EndDate == nil {
			continue
		}
		if !day.Before(dateutil.UTCDate(*g.StartDate)) && !day.After(dateutil.UTCDate(*g.EndDate)) {
			res.Weekly = append(res.Weekly, g)
		}
	}

	for _, g := range monthly {
		if g.Month != nil && g.Year != nil && *g.Month == day.Month() && *g.Year == day.Year() {
			res.Monthly = append(res.Monthly, g)
		}
	}

	return res
}

func Day(d time.Time, daily, weekly []*goal.Goal) DayView {
	b := ForDate(d, daily, weekly, nil)
	return DayView{Daily: b.Daily, Weekly: b.Weekly}
}

// Week возвращает недельные цели, чья неделя накрывает дату d.
// Неделя определяется попаданием d в диапазон, а не номером недели.
func Week(d time.Time, weekly []*goal.Goal) []*goal.Goal {
	return ForDate(d, nil, weekly, nil).Weekly
}

func Month(d time.Time, monthly []*goal.Goal) []*goal.Goal {
	return ForDate(d, nil, nil, monthly).Monthly
}

// Overview строит сетку текущей недели: семь дат (понедельник..воскресенье)
// недели, в которую попадает today, каждая со своими дневными целями.
// Недельные и месячные цели в сетку не входят — они показываются один раз
// отдельным списком.
func Overview(today time.Time, daily []*goal.Goal) [7]OverviewDay {
	days := dateutil.DaysOfWeek(today)

	var grid [7]OverviewDay
	for i, day := range days {
		grid[i] = OverviewDay{
			Date:  day,
			Daily: ForDate(day, daily, nil, nil).Daily,
		}
	}
	return grid
}
