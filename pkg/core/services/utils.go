package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Phillippus/PickaThon/internal/config"
	"github.com/Phillippus/PickaThon/pkg/core/scheduler"
	"github.com/Phillippus/PickaThon/pkg/db"
)

// buildRoster converts doctor records into the engine's roster, keyed by
// doctor name. Names are unique on the roster so they double as the
// engine's doctor identifiers.
func buildRoster(doctors []db.Doctor) scheduler.Roster {
	roster := make(scheduler.Roster, len(doctors))
	for _, doc := range doctors {
		roster[doc.Name] = scheduler.Preference{
			WantedDays:   doc.WantedDays,
			ExcludedDays: doc.ExcludedDays,
			MaxShifts:    doc.MaxShifts,
		}
	}
	return roster
}

// doctorIDsByName maps doctor names back to their record IDs
func doctorIDsByName(doctors []db.Doctor) map[string]string {
	ids := make(map[string]string, len(doctors))
	for _, doc := range doctors {
		ids[doc.Name] = doc.ID
	}
	return ids
}

// doctorNamesByID maps doctor record IDs to names
func doctorNamesByID(doctors []db.Doctor) map[string]string {
	names := make(map[string]string, len(doctors))
	for _, doc := range doctors {
		names[doc.ID] = doc.Name
	}
	return names
}

// holidaySource picks the configured RRULE-driven holiday calendar when
// rules are present and falls back to the built-in fixed table.
func holidaySource(cfg *config.Config) (scheduler.HolidaySource, error) {
	if cfg != nil && len(cfg.HolidayRules) > 0 {
		calendar, err := scheduler.NewRuleCalendar(cfg.HolidayRules)
		if err != nil {
			return nil, fmt.Errorf("failed to build holiday calendar: %w", err)
		}
		return calendar, nil
	}
	return scheduler.FixedCalendar{}, nil
}

// parseSeed turns an optional seed string into a deterministic source
// seed, defaulting to the current time for normal runs.
func parseSeed(seed string) (int64, error) {
	if seed == "" {
		return time.Now().UnixNano(), nil
	}

	parsed, err := strconv.ParseInt(seed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("seed must be an integer: %w", err)
	}
	return parsed, nil
}

// validateMonth checks a month/year pair supplied on the command line
func validateMonth(month, year int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("month must be 1-12, got %d", month)
	}
	if year < 1 {
		return fmt.Errorf("year must be positive, got %d", year)
	}
	return nil
}
