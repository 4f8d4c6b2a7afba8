package model

// UnlimitedShifts is the MaxShifts value meaning a doctor has no shift cap.
const UnlimitedShifts = 0

// Doctor represents a doctor on the roster together with their
// night-shift preferences for a month.
type Doctor struct {
	ID           string
	Name         string
	WantedDays   []int
	ExcludedDays []int
	// MaxShifts is the maximum number of night shifts per month.
	// UnlimitedShifts (0) means no cap.
	MaxShifts int
}

// Unlimited reports whether the doctor has no shift cap.
func (d Doctor) Unlimited() bool {
	return d.MaxShifts == UnlimitedShifts
}
