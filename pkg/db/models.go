package db

// Doctor represents a database doctor record
type Doctor struct {
	ID           string
	Name         string
	WantedDays   []int
	ExcludedDays []int
	MaxShifts    int // 0 means no cap
}

// ScheduleRun represents a database schedule run record.
// Each finalized month produces a new run; earlier runs are kept as history.
type ScheduleRun struct {
	ID        string
	Month     int
	Year      int
	CreatedAt string // RFC3339
}

// Assignment represents a database assignment record.
// An empty DoctorID means the day could not be filled.
type Assignment struct {
	ID       string
	RunID    string
	Day      int
	DoctorID string
}
