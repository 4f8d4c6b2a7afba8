package scheduler

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// HolidaySource yields the public holidays of a year as a set of
// "YYYY-MM-DD" date strings. The engine only consumes the set; swapping
// in a more accurate calendar rule never touches the scheduling logic.
type HolidaySource interface {
	Holidays(year int) map[string]bool
}

// fixedHolidayTable lists the Slovak public holidays as month -> days of
// month. Easter Monday is pinned to a single date, so the table is only
// an approximation for years where it moves.
var fixedHolidayTable = map[int][]int{
	1:  {1, 6},
	4:  {1},
	5:  {1, 8},
	7:  {5},
	8:  {29},
	9:  {1, 15},
	11: {1, 17},
	12: {24, 25, 26},
}

// FixedCalendar is the default holiday source backed by the static table.
type FixedCalendar struct{}

// Holidays returns the fixed-table holidays for the given year.
func (FixedCalendar) Holidays(year int) map[string]bool {
	holidays := make(map[string]bool)
	for month, days := range fixedHolidayTable {
		for _, day := range days {
			holidays[fmt.Sprintf("%04d-%02d-%02d", year, month, day)] = true
		}
	}
	return holidays
}

// RuleCalendar is a holiday source driven by yearly recurrence rules,
// so movable holidays can be expressed properly in configuration.
type RuleCalendar struct {
	rules []*rrule.RRule
}

// NewRuleCalendar parses the given RRULE strings (e.g.
// "FREQ=YEARLY;BYMONTH=1;BYMONTHDAY=1") into a holiday source.
func NewRuleCalendar(ruleStrings []string) (*RuleCalendar, error) {
	rules := make([]*rrule.RRule, 0, len(ruleStrings))
	for i, s := range ruleStrings {
		rule, err := rrule.StrToRRule(s)
		if err != nil {
			return nil, fmt.Errorf("failed to parse holiday rule %d: %w", i, err)
		}
		rules = append(rules, rule)
	}
	return &RuleCalendar{rules: rules}, nil
}

// Holidays expands every rule across the given year.
func (c *RuleCalendar) Holidays(year int) map[string]bool {
	yearStart := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)

	holidays := make(map[string]bool)
	for _, rule := range c.rules {
		rule.DTStart(yearStart)
		for _, occurrence := range rule.Between(yearStart, yearEnd, true) {
			holidays[occurrence.Format("2006-01-02")] = true
		}
	}
	return holidays
}

// BuildHolidaySet returns the public holidays of the given year from the
// default fixed table, formatted "YYYY-MM-DD".
func BuildHolidaySet(year int) map[string]bool {
	return FixedCalendar{}.Holidays(year)
}

// IsWeekendOrHoliday reports whether the given "YYYY-MM-DD" date falls on
// a Saturday, a Sunday, or a date in the holiday set. Display-only.
func IsWeekendOrHoliday(date string, holidays map[string]bool) (bool, error) {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false, fmt.Errorf("invalid date %q: %w", date, err)
	}

	if parsed.Weekday() == time.Saturday || parsed.Weekday() == time.Sunday {
		return true, nil
	}
	return holidays[date], nil
}
