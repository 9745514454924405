package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEndAfterStart(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{"normal day shift", "09:00:00", "17:00:00", true},
		{"one second apart", "09:00:00", "09:00:01", true},
		{"equal times", "09:00:00", "09:00:00", false},
		{"end before start", "17:00:00", "09:00:00", false},
		{"malformed start", "9am", "17:00:00", false},
		{"malformed end", "09:00:00", "late", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, endAfterStart(tt.start, tt.end))
		})
	}
}

func TestDatesBetween(t *testing.T) {
	t.Run("single day", func(t *testing.T) {
		d := date(2025, time.March, 10)
		dates := DatesBetween(d, d)
		assert.Equal(t, []time.Time{d}, dates)
	})

	t.Run("inclusive ascending", func(t *testing.T) {
		dates := DatesBetween(date(2025, time.March, 10), date(2025, time.March, 12))
		assert.Equal(t, []time.Time{
			date(2025, time.March, 10),
			date(2025, time.March, 11),
			date(2025, time.March, 12),
		}, dates)
	})

	t.Run("inverted range is empty", func(t *testing.T) {
		dates := DatesBetween(date(2025, time.March, 12), date(2025, time.March, 10))
		assert.Empty(t, dates)
	})

	t.Run("crosses month boundary", func(t *testing.T) {
		dates := DatesBetween(date(2025, time.January, 30), date(2025, time.February, 2))
		assert.Len(t, dates, 4)
		assert.Equal(t, date(2025, time.February, 2), dates[3])
	})
}

func TestWeekStart(t *testing.T) {
	monday := date(2025, time.March, 10)

	tests := []struct {
		name string
		in   time.Time
	}{
		{"monday itself", monday},
		{"wednesday", date(2025, time.March, 12)},
		{"sunday", date(2025, time.March, 16)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, monday, WeekStart(tt.in))
		})
	}
}

func TestMonthRange(t *testing.T) {
	first, last := MonthRange(date(2025, time.February, 14))
	assert.Equal(t, date(2025, time.February, 1), first)
	assert.Equal(t, date(2025, time.February, 28), last)

	first, last = MonthRange(date(2024, time.February, 14))
	assert.Equal(t, date(2024, time.February, 29), last)
	assert.Equal(t, date(2024, time.February, 1), first)
}
