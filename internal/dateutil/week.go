package dateutil

import "time"

// Чистые функции календарной арифметики.
// Неделя начинается с понедельника, нумерация недель по ISO-8601.

// DayOf обрезает время до начала календарного дня.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// UTCDate приводит момент к его календарной дате в UTC. Используется там,
// где даты из разных часовых поясов сравниваются операторами Before/After.
func UTCDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay сравнивает только календарные даты, время суток игнорируется.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// isoWeekday возвращает день недели в диапазоне 1..7 (понедельник = 1).
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// WeekNumber вычисляет номер недели по ISO-8601: дата сдвигается к четвергу
// своей недели, после чего номер — это ceil((день года)/7). Первая неделя
// всегда содержит первый четверг года.
func WeekNumber(t time.Time) int {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	d = d.AddDate(0, 0, 4-isoWeekday(d))

	yearStart := time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	daysSinceYearStart := int(d.Sub(yearStart).Hours() / 24)

	return (daysSinceYearStart+1+6) / 7
}

// WeekRange возвращает понедельник и воскресенье недели, в которую попадает
// дата. Обе границы — на начало дня, диапазон включительный.
func WeekRange(t time.Time) (start, end time.Time) {
	d := DayOf(t)
	start = d.AddDate(0, 0, 1-isoWeekday(d))
	end = start.AddDate(0, 0, 6)
	return start, end
}

// WeekStart — обратное отображение: понедельник ISO-недели week года year.
// Опорная точка: 4 января всегда лежит в первой неделе.
func WeekStart(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	monday, _ := WeekRange(jan4)
	return monday.AddDate(0, 0, (week-1)*7)
}

// DaysOfWeek возвращает семь дат недели (понедельник..воскресенье),
// в которую попадает t. Используется сеткой обзора.
func DaysOfWeek(t time.Time) [7]time.Time {
	start, _ := WeekRange(t)
	var days [7]time.Time
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}
