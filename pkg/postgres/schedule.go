package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Phillippus/PickaThon/pkg/db"
)

// InsertRun inserts a schedule run and its assignments in one transaction
func (d *DB) InsertRun(ctx context.Context, run *db.ScheduleRun, assignments []db.Assignment) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO schedule_run (id, month, year)
		VALUES ($1, $2, $3)
	`, run.ID, run.Month, run.Year)
	if err != nil {
		return fmt.Errorf("failed to insert schedule run: %w", err)
	}

	for _, a := range assignments {
		var doctorID *string
		if a.DoctorID != "" {
			doctorID = &a.DoctorID
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO assignment (id, run_id, day, doctor_id)
			VALUES ($1, $2, $3, $4)
		`, a.ID, a.RunID, a.Day, doctorID)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetRuns retrieves all schedule run records
func (d *DB) GetRuns(ctx context.Context) ([]db.ScheduleRun, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, month, year, created_at
		FROM schedule_run
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// GetLatestRun retrieves the most recent run for the given month, or nil
// if the month has never been finalized
func (d *DB) GetLatestRun(ctx context.Context, month, year int) (*db.ScheduleRun, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, month, year, created_at
		FROM schedule_run
		WHERE month = $1 AND year = $2
		ORDER BY created_at DESC
		LIMIT 1
	`, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest run: %w", err)
	}
	defer rows.Close()

	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// GetAssignments retrieves the assignments of a run ordered by day
func (d *DB) GetAssignments(ctx context.Context, runID string) ([]db.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, run_id, day, doctor_id
		FROM assignment
		WHERE run_id = $1
		ORDER BY day
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.Assignment
	for rows.Next() {
		var a db.Assignment
		var doctorID *string
		if err := rows.Scan(&a.ID, &a.RunID, &a.Day, &doctorID); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		if doctorID != nil {
			a.DoctorID = *doctorID
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

func scanRuns(rows pgx.Rows) ([]db.ScheduleRun, error) {
	var runs []db.ScheduleRun
	for rows.Next() {
		var r db.ScheduleRun
		var createdAt time.Time
		if err := rows.Scan(&r.ID, &r.Month, &r.Year, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan schedule run: %w", err)
		}
		r.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule runs: %w", err)
	}

	return runs, nil
}
