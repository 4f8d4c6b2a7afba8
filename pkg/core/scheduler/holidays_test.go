package scheduler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHolidaySet_FixedTable(t *testing.T) {
	holidays := BuildHolidaySet(2025)

	assert.True(t, holidays["2025-01-01"])
	assert.True(t, holidays["2025-01-06"])
	assert.True(t, holidays["2025-12-24"])
	assert.False(t, holidays["2025-02-14"])

	// 14 fixed holidays per year
	assert.Len(t, holidays, 14)
}

func TestBuildHolidaySet_YearInDates(t *testing.T) {
	holidays := BuildHolidaySet(2030)
	for date := range holidays {
		assert.Equal(t, "2030", date[:4])
	}
}

func TestRuleCalendar_YearlyRules(t *testing.T) {
	calendar, err := NewRuleCalendar([]string{
		"FREQ=YEARLY;BYMONTH=1;BYMONTHDAY=1",
		"FREQ=YEARLY;BYMONTH=5;BYMONTHDAY=1",
	})
	require.NoError(t, err)

	holidays := calendar.Holidays(2025)

	assert.True(t, holidays["2025-01-01"])
	assert.True(t, holidays["2025-05-01"])
	assert.False(t, holidays["2025-12-25"])
}

func TestNewRuleCalendar_InvalidRule(t *testing.T) {
	_, err := NewRuleCalendar([]string{"not an rrule"})
	assert.Error(t, err)
}

func TestIsWeekendOrHoliday(t *testing.T) {
	holidays := BuildHolidaySet(2025)

	tests := []struct {
		date string
		want bool
	}{
		{"2025-01-01", true},  // New Year's Day (Wednesday, in the table)
		{"2025-01-04", true},  // Saturday
		{"2025-01-05", true},  // Sunday
		{"2025-01-07", false}, // ordinary Tuesday
		{"2025-09-15", true},  // Our Lady of Sorrows (Monday, in the table)
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got, err := IsWeekendOrHoliday(tt.date, holidays)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsWeekendOrHoliday_InvalidDate(t *testing.T) {
	_, err := IsWeekendOrHoliday("01/01/2025", BuildHolidaySet(2025))
	assert.Error(t, err)
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		month, year, want int
	}{
		{1, 2025, 31},
		{2, 2025, 28},
		{2, 2024, 29},
		{4, 2025, 30},
		{12, 2025, 31},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%04d-%02d", tt.year, tt.month), func(t *testing.T) {
			assert.Equal(t, tt.want, daysInMonth(tt.month, tt.year))
		})
	}
}
