package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"emocare/api/internal/models"
)

// AssignmentRepository is the explicit join-table abstraction for the
// many-to-many doctor/patient link.
type AssignmentRepository struct {
	pool *pgxpool.Pool
}

func NewAssignmentRepository(pool *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{pool: pool}
}

func (r *AssignmentRepository) Add(ctx context.Context, doctorID, patientID string) error {
	const query = `
		INSERT INTO doctor_patients (doctor_id, patient_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (doctor_id, patient_id) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query, doctorID, patientID)
	return err
}

func (r *AssignmentRepository) Remove(ctx context.Context, doctorID, patientID string) error {
	const query = `DELETE FROM doctor_patients WHERE doctor_id = $1 AND patient_id = $2`
	_, err := r.pool.Exec(ctx, query, doctorID, patientID)
	return err
}

func (r *AssignmentRepository) Contains(ctx context.Context, doctorID, patientID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM doctor_patients WHERE doctor_id = $1 AND patient_id = $2
		)
	`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, doctorID, patientID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *AssignmentRepository) ListPatientIDs(ctx context.Context, doctorID string) ([]string, error) {
	const query = `
		SELECT patient_id FROM doctor_patients
		WHERE doctor_id = $1
		ORDER BY created_at, patient_id
	`
	rows, err := r.pool.Query(ctx, query, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AssignedDoctor resolves the patient's doctor for alert routing: the
// assigned doctor with the earliest (created_at, id) wins.
func (r *AssignmentRepository) AssignedDoctor(ctx context.Context, patientID string) (models.User, error) {
	const query = `
		SELECT u.id, u.full_name, u.email, u.password_hash, u.role, u.enabled, u.locked,
		       u.age, u.gender, u.profile_picture, u.last_connected_at, u.specialty,
		       u.created_at, u.updated_at
		FROM users u
		JOIN doctor_patients dp ON dp.doctor_id = u.id
		WHERE dp.patient_id = $1
		ORDER BY u.created_at, u.id
		LIMIT 1
	`
	return scanUser(r.pool.QueryRow(ctx, query, patientID))
}
