package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// firstPick always chooses the first eligible doctor, making the fill
// pass reproducible in tests.
type firstPick struct{}

func (firstPick) Intn(n int) int { return 0 }

func demandFor(t *testing.T, roster Roster, month, year int) DayDemand {
	t.Helper()
	demand, err := BuildDemandMap(roster, month, year)
	require.NoError(t, err)
	return demand
}

func TestFinalize_SeedIgnoresShiftCapThenCleanupNulls(t *testing.T) {
	// A wants days 1 and 2 with a cap of one shift. The seed pass assigns
	// both anyway (single-candidate days are honoured unconditionally);
	// the cleanup pass then nulls day 2 for being consecutive.
	roster := Roster{
		"A": {WantedDays: []int{1, 2}, MaxShifts: 1},
	}

	demand := DayDemand{1: {"A"}, 2: {"A"}, 3: {}}

	final := Finalize(demand, ResolutionMap{}, roster, firstPick{})

	assert.Equal(t, FinalSchedule{1: "A", 2: "", 3: ""}, final)
}

func TestFinalize_ResolutionChoosesConflictedDay(t *testing.T) {
	roster := Roster{
		"A": {WantedDays: []int{5}},
		"B": {WantedDays: []int{5}},
	}

	demand := demandFor(t, roster, 1, 2025)
	conflicts := DetectConflicts(demand)
	require.Equal(t, DayDemand{5: {"A", "B"}}, conflicts)

	final := Finalize(demand, ResolutionMap{5: "B"}, roster, firstPick{})

	assert.Equal(t, "B", final[5])
}

func TestFinalize_MalformedResolutionIgnored(t *testing.T) {
	roster := Roster{
		"A": {WantedDays: []int{5}},
		"B": {WantedDays: []int{5}},
		"C": {},
	}

	demand := demandFor(t, roster, 1, 2025)

	// Day 5 is conflicted but C is not a candidate; day 6 is not
	// conflicted at all. Both entries must be ignored.
	final := Finalize(demand, ResolutionMap{5: "C", 6: "A"}, roster, firstPick{})

	assert.NotEqual(t, "C", final[5])
	// Day 5 falls through to the fill pass instead
	assert.Contains(t, []string{"A", "B"}, final[5])
}

func TestFinalize_EveryDayHasAnEntry(t *testing.T) {
	roster := Roster{
		"A": {WantedDays: []int{1}},
	}

	demand := demandFor(t, roster, 2, 2025)
	final := Finalize(demand, ResolutionMap{}, roster, firstPick{})

	assert.Len(t, final, 28)
	for day := 1; day <= 28; day++ {
		_, ok := final[day]
		assert.True(t, ok, "day %d missing from final schedule", day)
	}
}

func TestFinalize_FillRespectsShiftCap(t *testing.T) {
	roster := Roster{
		"A": {MaxShifts: 3},
		"B": {MaxShifts: 3},
	}

	demand := demandFor(t, roster, 4, 2025)
	final := Finalize(demand, ResolutionMap{}, roster, firstPick{})

	counts := make(map[string]int)
	for _, doctor := range final {
		if doctor != "" {
			counts[doctor]++
		}
	}

	assert.LessOrEqual(t, counts["A"], 3)
	assert.LessOrEqual(t, counts["B"], 3)
}

func TestFinalize_FillRespectsExcludedDays(t *testing.T) {
	roster := Roster{
		"A": {ExcludedDays: []int{10, 11, 12}},
		"B": {},
	}

	demand := demandFor(t, roster, 4, 2025)
	final := Finalize(demand, ResolutionMap{}, roster, firstPick{})

	assert.NotEqual(t, "A", final[10])
	assert.NotEqual(t, "A", final[11])
	assert.NotEqual(t, "A", final[12])
}

func TestFinalize_NoConsecutiveAssignmentsFromFill(t *testing.T) {
	roster := Roster{
		"A": {},
		"B": {},
		"C": {},
	}

	demand := demandFor(t, roster, 1, 2025)
	final := Finalize(demand, ResolutionMap{}, roster, firstPick{})

	for day := 2; day <= 31; day++ {
		if final[day] != "" && final[day-1] != "" {
			assert.NotEqual(t, final[day-1], final[day],
				"days %d and %d share a doctor", day-1, day)
		}
	}
}

func TestFinalize_InfeasibleDayStaysUnfilled(t *testing.T) {
	// One doctor with a cap of one: after their shift is used every
	// remaining day is infeasible and must stay unfilled, never error.
	roster := Roster{
		"A": {MaxShifts: 1},
	}

	demand := demandFor(t, roster, 2, 2025)
	final := Finalize(demand, ResolutionMap{}, roster, firstPick{})

	filled := 0
	for _, doctor := range final {
		if doctor != "" {
			filled++
		}
	}
	assert.Equal(t, 1, filled)
}

func TestFinalize_UnlimitedShiftsAlternate(t *testing.T) {
	// MaxShifts 0 means no cap: two doctors can cover a whole month
	// between them.
	roster := Roster{
		"A": {},
		"B": {},
	}

	demand := demandFor(t, roster, 6, 2025)
	final := Finalize(demand, ResolutionMap{}, roster, firstPick{})

	for day := 1; day <= 30; day++ {
		assert.NotEmpty(t, final[day], "day %d unfilled", day)
	}
}

func TestRun_TwoPhaseFlow(t *testing.T) {
	roster := Roster{
		"A": {WantedDays: []int{5}},
		"B": {WantedDays: []int{5}},
	}

	run, err := NewRun(roster, 1, 2025)
	require.NoError(t, err)

	conflicts := run.Conflicts()
	require.Len(t, conflicts, 1)
	require.Equal(t, []string{"A", "B"}, conflicts[5])

	final := run.Finalize(ResolutionMap{5: "A"}, firstPick{})
	assert.Equal(t, "A", final[5])
	assert.Equal(t, final, run.Final)
}
