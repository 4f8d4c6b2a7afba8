package services

import (
	"context"

	"github.com/Phillippus/PickaThon/pkg/clients/sheetsclient"
	"github.com/Phillippus/PickaThon/pkg/db"
)

// mockDB implements db.Database as a test double
type mockDB struct {
	doctors         []db.Doctor
	runs            []db.ScheduleRun
	assignments     map[string][]db.Assignment
	insertedDoctors []*db.Doctor
	insertedRuns    []*db.ScheduleRun
	deletedDoctors  []string

	getDoctorsErr error
	insertErr     error
}

func (m *mockDB) GetDoctors(ctx context.Context) ([]db.Doctor, error) {
	if m.getDoctorsErr != nil {
		return nil, m.getDoctorsErr
	}
	return m.doctors, nil
}

func (m *mockDB) InsertDoctor(ctx context.Context, doctor *db.Doctor) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.insertedDoctors = append(m.insertedDoctors, doctor)
	m.doctors = append(m.doctors, *doctor)
	return nil
}

func (m *mockDB) DeleteDoctor(ctx context.Context, name string) error {
	m.deletedDoctors = append(m.deletedDoctors, name)
	return nil
}

func (m *mockDB) InsertRun(ctx context.Context, run *db.ScheduleRun, assignments []db.Assignment) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.insertedRuns = append(m.insertedRuns, run)
	m.runs = append(m.runs, *run)
	if m.assignments == nil {
		m.assignments = make(map[string][]db.Assignment)
	}
	m.assignments[run.ID] = assignments
	return nil
}

func (m *mockDB) GetRuns(ctx context.Context) ([]db.ScheduleRun, error) {
	return m.runs, nil
}

func (m *mockDB) GetLatestRun(ctx context.Context, month, year int) (*db.ScheduleRun, error) {
	for i := len(m.runs) - 1; i >= 0; i-- {
		if m.runs[i].Month == month && m.runs[i].Year == year {
			return &m.runs[i], nil
		}
	}
	return nil, nil
}

func (m *mockDB) GetAssignments(ctx context.Context, runID string) ([]db.Assignment, error) {
	return m.assignments[runID], nil
}

// mockPublisher implements SchedulePublisher as a test double
type mockPublisher struct {
	published  []*sheetsclient.PublishedSchedule
	sheetIDs   []string
	publishErr error
}

func (m *mockPublisher) PublishSchedule(spreadsheetID string, schedule *sheetsclient.PublishedSchedule) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.sheetIDs = append(m.sheetIDs, spreadsheetID)
	m.published = append(m.published, schedule)
	return nil
}
