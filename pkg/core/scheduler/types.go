package scheduler

// Preference captures one doctor's night-shift constraints for a month.
// WantedDays and ExcludedDays are expected to be disjoint; the caller
// enforces this at roster-entry time. If they overlap anyway, exclusion
// wins (the excluded-day check runs after the wanted-day filter).
type Preference struct {
	// WantedDays are days of the month (1..31) the doctor asked for
	WantedDays []int

	// ExcludedDays are days of the month (1..31) the doctor cannot work
	ExcludedDays []int

	// MaxShifts is the per-month shift cap. 0 means no cap.
	MaxShifts int
}

// Roster maps doctor identifiers to their preferences for a run.
// The roster persists across runs; everything derived from it is
// scoped to a single generation run.
type Roster map[string]Preference

// DayDemand maps each day of the month to the doctors who want that day
// and have not excluded it. Every day 1..N is present, possibly with an
// empty candidate list.
type DayDemand map[int][]string

// ResolutionMap maps a conflicted day to the single doctor chosen for it.
// It is supplied externally, one entry per conflicted day.
type ResolutionMap map[int]string

// FinalSchedule maps every day 1..N to the assigned doctor, with ""
// meaning the day could not be filled.
type FinalSchedule map[int]string

// Rand supplies the random choice for the fill pass. *math/rand.Rand
// satisfies it; tests substitute a deterministic source.
type Rand interface {
	Intn(n int) int
}

// Run is the state of a single schedule generation for one month.
// It replaces ad-hoc session state: callers create a fresh Run whenever
// the target month, year or roster changes and discard the old one.
type Run struct {
	Month  int
	Year   int
	Roster Roster
	Demand DayDemand
	Final  FinalSchedule
}

// NewRun builds the demand map for the given roster and month and returns
// a run ready for conflict detection and finalization.
func NewRun(roster Roster, month, year int) (*Run, error) {
	demand, err := BuildDemandMap(roster, month, year)
	if err != nil {
		return nil, err
	}

	return &Run{
		Month:  month,
		Year:   year,
		Roster: roster,
		Demand: demand,
	}, nil
}

// Conflicts returns the days of this run with more than one candidate.
func (r *Run) Conflicts() DayDemand {
	return DetectConflicts(r.Demand)
}

// Finalize completes the run's schedule using the supplied conflict
// resolutions and random source, stores it on the run and returns it.
func (r *Run) Finalize(resolution ResolutionMap, rng Rand) FinalSchedule {
	r.Final = Finalize(r.Demand, resolution, r.Roster, rng)
	return r.Final
}
