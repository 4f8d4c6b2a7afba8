package postgres

import (
	"context"
	"fmt"

	"github.com/Phillippus/PickaThon/pkg/db"
)

// GetDoctors retrieves all doctor records ordered by name
func (d *DB) GetDoctors(ctx context.Context) ([]db.Doctor, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, wanted_days, excluded_days, max_shifts
		FROM doctor
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query doctors: %w", err)
	}
	defer rows.Close()

	var doctors []db.Doctor
	for rows.Next() {
		var doc db.Doctor
		var wanted, excluded []int32
		if err := rows.Scan(&doc.ID, &doc.Name, &wanted, &excluded, &doc.MaxShifts); err != nil {
			return nil, fmt.Errorf("failed to scan doctor: %w", err)
		}
		doc.WantedDays = toIntSlice(wanted)
		doc.ExcludedDays = toIntSlice(excluded)
		doctors = append(doctors, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating doctors: %w", err)
	}

	return doctors, nil
}

// InsertDoctor inserts a new doctor record
func (d *DB) InsertDoctor(ctx context.Context, doctor *db.Doctor) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO doctor (id, name, wanted_days, excluded_days, max_shifts)
		VALUES ($1, $2, $3, $4, $5)
	`, doctor.ID, doctor.Name, toInt32Slice(doctor.WantedDays), toInt32Slice(doctor.ExcludedDays), doctor.MaxShifts)
	if err != nil {
		return fmt.Errorf("failed to insert doctor: %w", err)
	}
	return nil
}

// DeleteDoctor removes the doctor with the given name. Past assignments
// keep their rows with the doctor reference nulled out.
func (d *DB) DeleteDoctor(ctx context.Context, name string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM doctor WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no doctor named %q", name)
	}
	return nil
}

func toIntSlice(values []int32) []int {
	result := make([]int, len(values))
	for i, v := range values {
		result[i] = int(v)
	}
	return result
}

func toInt32Slice(values []int) []int32 {
	result := make([]int32, len(values))
	for i, v := range values {
		result[i] = int32(v)
	}
	return result
}
