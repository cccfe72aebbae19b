package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"emocare/api/internal/models"
)

var ErrTagNotFound = errors.New("patient tag not found")

type PatientTagRepository struct {
	pool *pgxpool.Pool
}

func NewPatientTagRepository(pool *pgxpool.Pool) *PatientTagRepository {
	return &PatientTagRepository{pool: pool}
}

func (r *PatientTagRepository) Create(ctx context.Context, tag models.PatientTag) error {
	const query = `
		INSERT INTO patient_tags (id, patient_id, doctor_id, tag, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	_, err := r.pool.Exec(ctx, query, tag.ID, tag.PatientID, tag.DoctorID, tag.Tag)
	return err
}

func (r *PatientTagRepository) GetByID(ctx context.Context, id string) (models.PatientTag, error) {
	const query = `
		SELECT id, patient_id, doctor_id, tag, created_at
		FROM patient_tags WHERE id = $1
	`
	return scanTag(r.pool.QueryRow(ctx, query, id))
}

func (r *PatientTagRepository) Find(ctx context.Context, patientID, doctorID, tag string) (models.PatientTag, error) {
	const query = `
		SELECT id, patient_id, doctor_id, tag, created_at
		FROM patient_tags
		WHERE patient_id = $1 AND doctor_id = $2 AND tag = $3
	`
	return scanTag(r.pool.QueryRow(ctx, query, patientID, doctorID, tag))
}

func (r *PatientTagRepository) ListByPatient(ctx context.Context, patientID string) ([]models.PatientTag, error) {
	const query = `
		SELECT id, patient_id, doctor_id, tag, created_at
		FROM patient_tags
		WHERE patient_id = $1
		ORDER BY created_at, id
	`
	return r.queryTags(ctx, query, patientID)
}

func (r *PatientTagRepository) ListByPatientAndDoctor(ctx context.Context, patientID, doctorID string) ([]models.PatientTag, error) {
	const query = `
		SELECT id, patient_id, doctor_id, tag, created_at
		FROM patient_tags
		WHERE patient_id = $1 AND doctor_id = $2
		ORDER BY created_at, id
	`
	return r.queryTags(ctx, query, patientID, doctorID)
}

func (r *PatientTagRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM patient_tags WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTagNotFound
	}
	return nil
}

func scanTag(row pgx.Row) (models.PatientTag, error) {
	var tag models.PatientTag
	if err := row.Scan(
		&tag.ID,
		&tag.PatientID,
		&tag.DoctorID,
		&tag.Tag,
		&tag.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.PatientTag{}, ErrTagNotFound
		}
		return models.PatientTag{}, err
	}
	return tag, nil
}

func (r *PatientTagRepository) queryTags(ctx context.Context, query string, args ...any) ([]models.PatientTag, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []models.PatientTag
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}
