package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Phillippus/PickaThon/internal/config"
	"github.com/Phillippus/PickaThon/pkg/core/scheduler"
	"github.com/Phillippus/PickaThon/pkg/db"
)

// ScheduleRow is one day of a finalized schedule prepared for display
type ScheduleRow struct {
	Day              int
	Date             string // "2006-01-02"
	Doctor           string // "" for unfilled days
	WeekendOrHoliday bool
}

// ViewScheduleResult contains the latest finalized schedule of a month
type ViewScheduleResult struct {
	RunID     string
	Month     int
	Year      int
	CreatedAt string
	Rows      []ScheduleRow
}

// ViewSchedule loads the most recent finalized run for the given month
// and prepares it for display, flagging weekends and public holidays.
// The flag is presentation only; it never influenced the assignment.
func ViewSchedule(
	ctx context.Context,
	database db.Database,
	cfg *config.Config,
	logger *zap.Logger,
	month, year int,
) (*ViewScheduleResult, error) {
	if err := validateMonth(month, year); err != nil {
		return nil, err
	}

	run, err := database.GetLatestRun(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest run: %w", err)
	}
	if run == nil {
		return nil, fmt.Errorf("no finalized schedule for %04d-%02d - run finalizeSchedule first", year, month)
	}

	assignments, err := database.GetAssignments(ctx, run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}

	doctors, err := database.GetDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctors: %w", err)
	}
	names := doctorNamesByID(doctors)

	source, err := holidaySource(cfg)
	if err != nil {
		return nil, err
	}
	holidays := source.Holidays(year)

	rows := make([]ScheduleRow, 0, len(assignments))
	for _, a := range assignments {
		date := fmt.Sprintf("%04d-%02d-%02d", year, month, a.Day)

		flagged, err := scheduler.IsWeekendOrHoliday(date, holidays)
		if err != nil {
			return nil, fmt.Errorf("failed to annotate day %d: %w", a.Day, err)
		}

		rows = append(rows, ScheduleRow{
			Day:              a.Day,
			Date:             date,
			Doctor:           names[a.DoctorID],
			WeekendOrHoliday: flagged,
		})
	}

	logger.Debug("Schedule loaded",
		zap.String("run_id", run.ID),
		zap.Int("rows", len(rows)))

	return &ViewScheduleResult{
		RunID:     run.ID,
		Month:     month,
		Year:      year,
		CreatedAt: run.CreatedAt,
		Rows:      rows,
	}, nil
}
