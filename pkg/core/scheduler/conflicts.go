package scheduler

// DetectConflicts returns the subset of the demand map where more than
// one doctor wants the same day. Pure filter: the input is not mutated
// and repeated calls yield the same result.
func DetectConflicts(demand DayDemand) DayDemand {
	conflicts := make(DayDemand)
	for day, doctors := range demand {
		if len(doctors) > 1 {
			conflicts[day] = doctors
		}
	}
	return conflicts
}
