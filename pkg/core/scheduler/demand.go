package scheduler

import (
	"fmt"
	"sort"
	"time"
)

// daysInMonth returns the number of days in the given month, accounting
// for leap years. Day 0 of the next month normalizes to the last day of
// this one.
func daysInMonth(month, year int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// validDays drops preference days that exceed the month's actual length.
// Not an error: a 31st in a 30-day month is silently normalized away.
func validDays(days []int, numDays int) []int {
	valid := make([]int, 0, len(days))
	for _, day := range days {
		if day >= 1 && day <= numDays {
			valid = append(valid, day)
		}
	}
	return valid
}

// sortedDoctors returns the roster's doctor identifiers in a stable
// order. Go maps iterate randomly, so candidate lists are built in
// sorted-name order to keep runs reproducible.
func sortedDoctors(roster Roster) []string {
	names := make([]string, 0, len(roster))
	for name := range roster {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildDemandMap turns the roster into a per-day candidate list for the
// given month. Every day of the month is present in the result; a doctor
// appears on a day when it is in their validated wanted days and not in
// their excluded days.
func BuildDemandMap(roster Roster, month, year int) (DayDemand, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be 1-12, got %d", month)
	}

	numDays := daysInMonth(month, year)

	demand := make(DayDemand, numDays)
	for day := 1; day <= numDays; day++ {
		demand[day] = []string{}
	}

	for _, name := range sortedDoctors(roster) {
		pref := roster[name]
		for _, day := range validDays(pref.WantedDays, numDays) {
			if containsDay(pref.ExcludedDays, day) {
				continue
			}
			demand[day] = append(demand[day], name)
		}
	}

	return demand, nil
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
