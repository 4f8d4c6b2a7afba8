package scheduler

// Finalize completes a month's schedule in three passes over the demand
// map:
//
//  1. Seed: every resolved conflict day gets its chosen doctor, every
//     single-candidate day gets its candidate. The seed pass honours the
//     external choice and the wanted-day signal, not the shift cap.
//  2. Fill: remaining empty days are walked in ascending order and each
//     is given a doctor chosen at random from those under their shift
//     cap, not excluded on that day, and not already assigned to the
//     previous day. The check against the following day only matters
//     when a later day was seeded earlier; the pass itself never assigns
//     ahead of the day it is visiting.
//  3. Cleanup: a single ascending sweep unassigns any day whose doctor
//     equals the previous day's. The freed day is not refilled and the
//     doctor's count is not decremented.
//
// Days that no eligible doctor can take stay unfilled (""). That is a
// surfaced outcome, not an error. Resolution entries for days that are
// not conflicted, or naming a doctor who is not a candidate on that day,
// are ignored.
func Finalize(demand DayDemand, resolution ResolutionMap, roster Roster, rng Rand) FinalSchedule {
	numDays := len(demand)

	final := make(FinalSchedule, numDays)
	counts := make(map[string]int, len(roster))
	for name := range roster {
		counts[name] = 0
	}

	// Seed pass
	for day := 1; day <= numDays; day++ {
		candidates := demand[day]

		if chosen, ok := resolution[day]; ok && len(candidates) > 1 && containsDoctor(candidates, chosen) {
			final[day] = chosen
			counts[chosen]++
			continue
		}

		if len(candidates) == 1 {
			final[day] = candidates[0]
			counts[candidates[0]]++
			continue
		}

		final[day] = ""
	}

	// Fill pass
	for day := 1; day <= numDays; day++ {
		if final[day] != "" {
			continue
		}

		var eligible []string
		for _, name := range sortedDoctors(roster) {
			pref := roster[name]
			if pref.MaxShifts > 0 && counts[name] >= pref.MaxShifts {
				continue
			}
			if containsDay(pref.ExcludedDays, day) {
				continue
			}
			if day > 1 && final[day-1] == name {
				continue
			}
			if day < numDays && final[day+1] == name {
				continue
			}
			eligible = append(eligible, name)
		}

		if len(eligible) > 0 {
			chosen := eligible[rng.Intn(len(eligible))]
			final[day] = chosen
			counts[chosen]++
		}
	}

	// Cleanup pass
	for day := 2; day < numDays; day++ {
		if final[day] != "" && final[day] == final[day-1] {
			final[day] = ""
		}
	}

	return final
}

func containsDoctor(doctors []string, doctor string) bool {
	for _, d := range doctors {
		if d == doctor {
			return true
		}
	}
	return false
}
