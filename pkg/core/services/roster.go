package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Phillippus/PickaThon/pkg/core/model"
	"github.com/Phillippus/PickaThon/pkg/db"
)

var validate = validator.New()

// AddDoctorParams are the preferences supplied when adding a doctor to
// the roster. Days reference days of the month; they are validated for
// range here and re-validated against the actual month length at
// schedule time.
type AddDoctorParams struct {
	Name         string `validate:"required"`
	WantedDays   []int  `validate:"dive,min=1,max=31"`
	ExcludedDays []int  `validate:"dive,min=1,max=31"`
	MaxShifts    int    `validate:"min=0,max=31"`
}

// AddDoctor validates the given preferences and inserts the doctor into
// the roster. A day listed as both wanted and excluded is rejected here,
// at roster-entry time; the engine downstream assumes disjoint sets.
func AddDoctor(ctx context.Context, database db.DoctorStore, logger *zap.Logger, params AddDoctorParams) (*model.Doctor, error) {
	logger.Debug("Adding doctor", zap.String("name", params.Name))

	if err := validate.Struct(params); err != nil {
		return nil, fmt.Errorf("invalid doctor preferences: %w", err)
	}

	if overlap := intersectDays(params.WantedDays, params.ExcludedDays); len(overlap) > 0 {
		return nil, fmt.Errorf("doctor %s cannot have days %v in both wanted and excluded days", params.Name, overlap)
	}

	existing, err := database.GetDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctors: %w", err)
	}
	for _, doc := range existing {
		if doc.Name == params.Name {
			return nil, fmt.Errorf("doctor %s is already on the roster", params.Name)
		}
	}

	record := &db.Doctor{
		ID:           uuid.New().String(),
		Name:         params.Name,
		WantedDays:   params.WantedDays,
		ExcludedDays: params.ExcludedDays,
		MaxShifts:    params.MaxShifts,
	}

	if err := database.InsertDoctor(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to insert doctor: %w", err)
	}

	logger.Info("Doctor added",
		zap.String("id", record.ID),
		zap.String("name", record.Name),
		zap.Int("max_shifts", record.MaxShifts))

	return &model.Doctor{
		ID:           record.ID,
		Name:         record.Name,
		WantedDays:   record.WantedDays,
		ExcludedDays: record.ExcludedDays,
		MaxShifts:    record.MaxShifts,
	}, nil
}

// ListDoctors returns the roster ordered by name
func ListDoctors(ctx context.Context, database db.DoctorStore, logger *zap.Logger) ([]model.Doctor, error) {
	records, err := database.GetDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctors: %w", err)
	}

	doctors := make([]model.Doctor, len(records))
	for i, rec := range records {
		doctors[i] = model.Doctor{
			ID:           rec.ID,
			Name:         rec.Name,
			WantedDays:   rec.WantedDays,
			ExcludedDays: rec.ExcludedDays,
			MaxShifts:    rec.MaxShifts,
		}
	}

	sort.Slice(doctors, func(i, j int) bool { return doctors[i].Name < doctors[j].Name })

	logger.Debug("Fetched roster", zap.Int("count", len(doctors)))
	return doctors, nil
}

// RemoveDoctor removes the named doctor from the roster
func RemoveDoctor(ctx context.Context, database db.DoctorStore, logger *zap.Logger, name string) error {
	if err := database.DeleteDoctor(ctx, name); err != nil {
		return fmt.Errorf("failed to remove doctor: %w", err)
	}

	logger.Info("Doctor removed", zap.String("name", name))
	return nil
}

// intersectDays returns the days present in both slices, sorted
func intersectDays(a, b []int) []int {
	inA := make(map[int]bool, len(a))
	for _, day := range a {
		inA[day] = true
	}

	var overlap []int
	seen := make(map[int]bool)
	for _, day := range b {
		if inA[day] && !seen[day] {
			overlap = append(overlap, day)
			seen[day] = true
		}
	}
	sort.Ints(overlap)
	return overlap
}
