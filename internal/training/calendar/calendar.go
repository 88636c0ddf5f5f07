// Package calendar converts between calendar dates and 1-based training day
// numbers. Every function is pure and total.
package calendar

import "roster/internal/training/models"

// Day is one materialised day of a training calendar.
type Day struct {
	Number int
	Date   models.Date
}

// DayNumber returns the 1-based position of date relative to start. Dates
// before start yield values below 1; no clamping is applied.
func DayNumber(date, start models.Date) int {
	return models.DaysBetween(start, date) + 1
}

// DateForDayNumber is the inverse of DayNumber.
func DateForDayNumber(n int, start models.Date) models.Date {
	return start.AddDays(n - 1)
}

// TotalDays is the inclusive length of the training.
func TotalDays(t *models.Training) int {
	return DayNumber(t.EndDate, t.StartDate)
}

// Contains reports whether n is a valid day of t.
func Contains(t *models.Training, n int) bool {
	return n >= 1 && n <= TotalDays(t)
}

// Days lists day 1 through TotalDays in order.
func Days(t *models.Training) []Day {
	total := TotalDays(t)
	if total < 1 {
		return []Day{}
	}
	days := make([]Day, 0, total)
	for n := 1; n <= total; n++ {
		days = append(days, Day{Number: n, Date: DateForDayNumber(n, t.StartDate)})
	}
	return days
}

// Mapping re-expresses a source-calendar date on the target calendar. It is
// the single mapping used by both transfer preview and execution.
func Mapping(date models.Date, source, target *models.Training) models.DayMapping {
	n := DayNumber(date, source.StartDate)
	return models.DayMapping{
		SourceDate:   date,
		DayNumber:    n,
		TargetDate:   DateForDayNumber(n, target.StartDate),
		WillTransfer: Contains(target, n),
	}
}
