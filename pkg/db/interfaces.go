package db

import "context"

// DoctorStore defines the interface for roster database operations
type DoctorStore interface {
	GetDoctors(ctx context.Context) ([]Doctor, error)
	InsertDoctor(ctx context.Context, doctor *Doctor) error
	DeleteDoctor(ctx context.Context, name string) error
}

// ScheduleStore defines the interface for schedule run database operations
type ScheduleStore interface {
	InsertRun(ctx context.Context, run *ScheduleRun, assignments []Assignment) error
	GetRuns(ctx context.Context) ([]ScheduleRun, error)
	GetLatestRun(ctx context.Context, month, year int) (*ScheduleRun, error)
	GetAssignments(ctx context.Context, runID string) ([]Assignment, error)
}

// Database combines all store interfaces. The postgres-backed DB
// implements it.
type Database interface {
	DoctorStore
	ScheduleStore
}
