package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Phillippus/PickaThon/pkg/core/scheduler"
	"github.com/Phillippus/PickaThon/pkg/db"
)

// ProposeScheduleResult contains the demand map and the conflicts that
// need an external choice before the month can be finalized
type ProposeScheduleResult struct {
	Month     int
	Year      int
	Demand    scheduler.DayDemand
	Conflicts scheduler.DayDemand
}

/// ProposeSchedule is phase one of schedule generation: it builds the
// per-day demand map from the roster and surfaces the days where more
// than one doctor wants the shift. The caller resolves those days and
// passes the choices to FinalizeSchedule.
func ProposeSchedule(ctx context.Context, database db.DoctorStore, logger *zap.Logger, month, year int) (*ProposeScheduleResult, error) {
	if err := validateMonth(month, year); err != nil {
		return nil, err
	}

	logger.Debug("Proposing schedule", zap.Int("month", month), zap.Int("year", year))

	doctors, err := database.GetDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctors: %w", err)
	}
	if len(doctors) == 0 {
		return nil, fmt.Errorf("roster is empty - add doctors first")
	}

	run, err := scheduler.NewRun(buildRoster(doctors), month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to build demand map: %w", err)
	}

	conflicts := run.Conflicts()

	logger.Info("Schedule proposed",
		zap.Int("month", month),
		zap.Int("year", year),
		zap.Int("doctors", len(doctors)),
		zap.Int("conflicts", len(conflicts)))

	return &ProposeScheduleResult{
		Month:     month,
		Year:      year,
		Demand:    run.Demand,
		Conflicts: conflicts,
	}, nil
}
