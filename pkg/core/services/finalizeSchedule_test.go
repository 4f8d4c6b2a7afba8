package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Phillippus/PickaThon/pkg/db"
)

func rosterOf(doctors ...db.Doctor) *mockDB {
	return &mockDB{doctors: doctors}
}

func TestProposeSchedule_SurfacesConflicts(t *testing.T) {
	mock := rosterOf(
		db.Doctor{ID: "id-a", Name: "Adam", WantedDays: []int{5}},
		db.Doctor{ID: "id-b", Name: "Beta", WantedDays: []int{5}},
		db.Doctor{ID: "id-c", Name: "Cyril", WantedDays: []int{7}},
	)

	result, err := ProposeSchedule(context.Background(), mock, zap.NewNop(), 1, 2025)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Month)
	assert.Len(t, result.Demand, 31)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, []string{"Adam", "Beta"}, result.Conflicts[5])
}

func TestProposeSchedule_EmptyRoster(t *testing.T) {
	_, err := ProposeSchedule(context.Background(), &mockDB{}, zap.NewNop(), 1, 2025)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "roster is empty")
}

func TestProposeSchedule_InvalidMonth(t *testing.T) {
	_, err := ProposeSchedule(context.Background(), &mockDB{}, zap.NewNop(), 13, 2025)
	assert.Error(t, err)
}

func TestFinalizeSchedule_ResolutionApplied(t *testing.T) {
	mock := rosterOf(
		db.Doctor{ID: "id-a", Name: "Adam", WantedDays: []int{5}},
		db.Doctor{ID: "id-b", Name: "Beta", WantedDays: []int{5}},
	)

	result, err := FinalizeSchedule(context.Background(), mock, zap.NewNop(),
		1, 2025, map[int]string{5: "Beta"}, "42", false)
	require.NoError(t, err)

	assert.Equal(t, "Beta", result.Final[5])
	assert.Len(t, result.Final, 31)
	assert.NotEmpty(t, result.RunID)
}

func TestFinalizeSchedule_RejectsUnknownResolutionDay(t *testing.T) {
	mock := rosterOf(
		db.Doctor{ID: "id-a", Name: "Adam", WantedDays: []int{5}},
		db.Doctor{ID: "id-b", Name: "Beta", WantedDays: []int{5}},
	)

	_, err := FinalizeSchedule(context.Background(), mock, zap.NewNop(),
		1, 2025, map[int]string{6: "Adam"}, "42", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not conflicted")
}

func TestFinalizeSchedule_RejectsNonCandidateDoctor(t *testing.T) {
	mock := rosterOf(
		db.Doctor{ID: "id-a", Name: "Adam", WantedDays: []int{5}},
		db.Doctor{ID: "id-b", Name: "Beta", WantedDays: []int{5}},
		db.Doctor{ID: "id-c", Name: "Cyril"},
	)

	_, err := FinalizeSchedule(context.Background(), mock, zap.NewNop(),
		1, 2025, map[int]string{5: "Cyril"}, "42", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a candidate")
}

func TestFinalizeSchedule_PersistsRunAndAssignments(t *testing.T) {
	mock := rosterOf(
		db.Doctor{ID: "id-a", Name: "Adam"},
		db.Doctor{ID: "id-b", Name: "Beta"},
	)

	result, err := FinalizeSchedule(context.Background(), mock, zap.NewNop(),
		2, 2025, nil, "42", false)
	require.NoError(t, err)

	require.Len(t, mock.insertedRuns, 1)
	run := mock.insertedRuns[0]
	assert.Equal(t, result.RunID, run.ID)
	assert.Equal(t, 2, run.Month)
	assert.Equal(t, 2025, run.Year)

	assignments := mock.assignments[run.ID]
	require.Len(t, assignments, 28)
	for _, a := range assignments {
		if result.Final[a.Day] == "Adam" {
			assert.Equal(t, "id-a", a.DoctorID)
		}
		if result.Final[a.Day] == "" {
			assert.Empty(t, a.DoctorID)
		}
	}
}

func TestFinalizeSchedule_DryRunDoesNotPersist(t *testing.T) {
	mock := rosterOf(db.Doctor{ID: "id-a", Name: "Adam"})

	result, err := FinalizeSchedule(context.Background(), mock, zap.NewNop(),
		1, 2025, nil, "42", true)
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Empty(t, result.RunID)
	assert.Empty(t, mock.insertedRuns)
}

func TestFinalizeSchedule_SeededRunsAreReproducible(t *testing.T) {
	doctors := []db.Doctor{
		{ID: "id-a", Name: "Adam"},
		{ID: "id-b", Name: "Beta"},
		{ID: "id-c", Name: "Cyril"},
	}

	first, err := FinalizeSchedule(context.Background(), rosterOf(doctors...), zap.NewNop(),
		3, 2025, nil, "7", true)
	require.NoError(t, err)

	second, err := FinalizeSchedule(context.Background(), rosterOf(doctors...), zap.NewNop(),
		3, 2025, nil, "7", true)
	require.NoError(t, err)

	assert.Equal(t, first.Final, second.Final)
}

func TestFinalizeSchedule_InvalidSeed(t *testing.T) {
	mock := rosterOf(db.Doctor{ID: "id-a", Name: "Adam"})

	_, err := FinalizeSchedule(context.Background(), mock, zap.NewNop(),
		1, 2025, nil, "not-a-number", true)
	assert.Error(t, err)
}

func TestFinalizeSchedule_SingleDoctorLeavesGaps(t *testing.T) {
	// One doctor alone can never take consecutive days, so roughly every
	// other day stays unfilled.
	mock := rosterOf(db.Doctor{ID: "id-a", Name: "Adam"})

	result, err := FinalizeSchedule(context.Background(), mock, zap.NewNop(),
		1, 2025, nil, "42", true)
	require.NoError(t, err)

	assert.NotEmpty(t, result.Unfilled)
	for day := 2; day <= 31; day++ {
		if result.Final[day] != "" {
			assert.NotEqual(t, result.Final[day-1], result.Final[day])
		}
	}
}
