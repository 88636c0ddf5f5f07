package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roster/internal/training/models"
)

func training(start, end models.Date) *models.Training {
	return &models.Training{StartDate: start, EndDate: end}
}

func TestDayNumber(t *testing.T) {
	start := models.NewDate(2025, time.January, 1)

	cases := []struct {
		name string
		date models.Date
		want int
	}{
		{"first day", start, 1},
		{"tenth day", models.NewDate(2025, time.January, 10), 10},
		{"before start", models.NewDate(2024, time.December, 30), -1},
		{"across month end", models.NewDate(2025, time.February, 1), 32},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DayNumber(tc.date, start))
		})
	}
}

func TestDayNumberRoundTrip(t *testing.T) {
	starts := []models.Date{
		models.NewDate(2025, time.January, 1),
		models.NewDate(2024, time.February, 27),
		models.NewDate(2025, time.March, 29),
		models.NewDate(2025, time.October, 25),
	}
	for _, start := range starts {
		for n := -5; n <= 400; n++ {
			require.Equal(t, n, DayNumber(DateForDayNumber(n, start), start), "start %s n %d", start, n)
		}
	}
}

func TestTotalDaysAndDays(t *testing.T) {
	tr := training(models.NewDate(2025, time.February, 27), models.NewDate(2025, time.March, 2))
	assert.Equal(t, 4, TotalDays(tr))

	days := Days(tr)
	require.Len(t, days, 4)
	assert.Equal(t, Day{Number: 1, Date: models.NewDate(2025, time.February, 27)}, days[0])
	assert.Equal(t, Day{Number: 3, Date: models.NewDate(2025, time.March, 1)}, days[2])
	assert.Equal(t, Day{Number: 4, Date: models.NewDate(2025, time.March, 2)}, days[3])

	single := training(models.NewDate(2025, time.May, 5), models.NewDate(2025, time.May, 5))
	assert.Equal(t, 1, TotalDays(single))
	assert.Len(t, Days(single), 1)
}

func TestMapping(t *testing.T) {
	source := training(models.NewDate(2025, time.January, 1), models.NewDate(2025, time.January, 10))
	target := training(models.NewDate(2025, time.February, 1), models.NewDate(2025, time.February, 5))

	cases := []struct {
		date     models.Date
		day      int
		target   models.Date
		transfer bool
	}{
		{models.NewDate(2025, time.January, 1), 1, models.NewDate(2025, time.February, 1), true},
		{models.NewDate(2025, time.January, 3), 3, models.NewDate(2025, time.February, 3), true},
		{models.NewDate(2025, time.January, 5), 5, models.NewDate(2025, time.February, 5), true},
		{models.NewDate(2025, time.January, 7), 7, models.NewDate(2025, time.February, 7), false},
		{models.NewDate(2025, time.January, 10), 10, models.NewDate(2025, time.February, 10), false},
		{models.NewDate(2024, time.December, 31), 0, models.NewDate(2025, time.January, 31), false},
	}
	for _, tc := range cases {
		t.Run(tc.date.String(), func(t *testing.T) {
			m := Mapping(tc.date, source, target)
			assert.Equal(t, tc.day, m.DayNumber)
			assert.Equal(t, tc.target, m.TargetDate)
			assert.Equal(t, tc.transfer, m.WillTransfer)
			assert.Equal(t, tc.date, m.SourceDate)
		})
	}
}

func TestDayNumberAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("tzdata not available")
	}
	start := models.DateOf(time.Date(2025, time.March, 29, 23, 30, 0, 0, loc))
	// 2025-03-30 is only 23 hours long in Berlin.
	after := models.DateOf(time.Date(2025, time.March, 31, 0, 15, 0, 0, loc))

	assert.Equal(t, "2025-03-29", start.String())
	assert.Equal(t, 3, DayNumber(after, start))
	assert.Equal(t, after, DateForDayNumber(3, start))
}
