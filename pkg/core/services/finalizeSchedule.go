package services

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Phillippus/PickaThon/pkg/core/scheduler"
	"github.com/Phillippus/PickaThon/pkg/db"
)

// FinalizeScheduleResult contains the completed month
type FinalizeScheduleResult struct {
	RunID    string
	Month    int
	Year     int
	Final    scheduler.FinalSchedule
	Unfilled []int
	DryRun   bool
}

// FinalizeSchedule is phase two of schedule generation. It rebuilds the
// demand map, checks the supplied conflict resolutions against the
// conflict set, runs the finalizer and persists the result as a new
// schedule run. Conflicted days left unresolved fall back to the fill
// pass; resolutions for unknown days or non-candidate doctors are
// rejected outright.
//
// If seed is non-empty the fill pass is reproducible; if dryRun is true
// nothing is saved.
func FinalizeSchedule(
	ctx context.Context,
	database db.Database,
	logger *zap.Logger,
	month, year int,
	resolutions map[int]string,
	seed string,
	dryRun bool,
) (*FinalizeScheduleResult, error) {
	if err := validateMonth(month, year); err != nil {
		return nil, err
	}

	logger.Debug("Finalizing schedule",
		zap.Int("month", month),
		zap.Int("year", year),
		zap.Int("resolutions", len(resolutions)),
		zap.Bool("dry_run", dryRun))

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
	if err := checkResolutions(resolutions, conflicts); err != nil {
		return nil, err
	}

	for day := range conflicts {
		if _, ok := resolutions[day]; !ok {
			logger.Warn("Conflict left unresolved, day falls back to the fill pass",
				zap.Int("day", day),
				zap.Strings("candidates", conflicts[day]))
		}
	}

	seedValue, err := parseSeed(seed)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seedValue))

	final := run.Finalize(scheduler.ResolutionMap(resolutions), rng)

	var unfilled []int
	for day := 1; day <= len(final); day++ {
		if final[day] == "" {
			unfilled = append(unfilled, day)
		}
	}

	logger.Info("Schedule finalized",
		zap.Int("month", month),
		zap.Int("year", year),
		zap.Int("days", len(final)),
		zap.Int("unfilled", len(unfilled)))

	result := &FinalizeScheduleResult{
		Month:    month,
		Year:     year,
		Final:    final,
		Unfilled: unfilled,
		DryRun:   dryRun,
	}

	if dryRun {
		logger.Info("Dry run mode - schedule not saved")
		return result, nil
	}

	runRecord := &db.ScheduleRun{
		ID:    uuid.New().String(),
		Month: month,
		Year:  year,
	}

	ids := doctorIDsByName(doctors)
	assignments := make([]db.Assignment, 0, len(final))
	for day := 1; day <= len(final); day++ {
		assignments = append(assignments, db.Assignment{
			ID:       uuid.New().String(),
			RunID:    runRecord.ID,
			Day:      day,
			DoctorID: ids[final[day]],
		})
	}

	if err := database.InsertRun(ctx, runRecord, assignments); err != nil {
		return nil, fmt.Errorf("failed to save schedule run: %w", err)
	}

	logger.Info("Schedule run saved", zap.String("run_id", runRecord.ID))
	result.RunID = runRecord.ID

	return result, nil
}

// checkResolutions rejects resolution entries that do not match the
// conflict set: unknown days and doctors who are not candidates on the
// resolved day.
func checkResolutions(resolutions map[int]string, conflicts scheduler.DayDemand) error {
	for day, doctor := range resolutions {
		candidates, ok := conflicts[day]
		if !ok {
			return fmt.Errorf("day %d is not conflicted, no resolution expected", day)
		}

		found := false
		for _, candidate := range candidates {
			if candidate == doctor {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("doctor %s is not a candidate for day %d (candidates: %v)", doctor, day, candidates)
		}
	}
	return nil
}
