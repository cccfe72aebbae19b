package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"emocare/api/internal/models"
)

var ErrNoteNotFound = errors.New("patient note not found")

type PatientNoteRepository struct {
	pool *pgxpool.Pool
}

func NewPatientNoteRepository(pool *pgxpool.Pool) *PatientNoteRepository {
	return &PatientNoteRepository{pool: pool}
}

func (r *PatientNoteRepository) Create(ctx context.Context, note models.PatientNote) error {
	const query = `
		INSERT INTO patient_notes (id, patient_id, doctor_id, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.pool.Exec(ctx, query, note.ID, note.PatientID, note.DoctorID, note.Note)
	return err
}

func (r *PatientNoteRepository) GetByID(ctx context.Context, id string) (models.PatientNote, error) {
	const query = `
		SELECT id, patient_id, doctor_id, note, created_at, updated_at
		FROM patient_notes WHERE id = $1
	`
	var note models.PatientNote
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&note.ID,
		&note.PatientID,
		&note.DoctorID,
		&note.Note,
		&note.CreatedAt,
		&note.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.PatientNote{}, ErrNoteNotFound
		}
		return models.PatientNote{}, err
	}
	return note, nil
}

func (r *PatientNoteRepository) ListByPatient(ctx context.Context, patientID string) ([]models.PatientNote, error) {
	const query = `
		SELECT id, patient_id, doctor_id, note, created_at, updated_at
		FROM patient_notes
		WHERE patient_id = $1
		ORDER BY created_at DESC, id DESC
	`
	return r.queryNotes(ctx, query, patientID)
}

func (r *PatientNoteRepository) ListByDoctor(ctx context.Context, doctorID string) ([]models.PatientNote, error) {
	const query = `
		SELECT id, patient_id, doctor_id, note, created_at, updated_at
		FROM patient_notes
		WHERE doctor_id = $1
		ORDER BY created_at DESC, id DESC
	`
	return r.queryNotes(ctx, query, doctorID)
}

func (r *PatientNoteRepository) Update(ctx context.Context, id string, text string) error {
	const query = `UPDATE patient_notes SET note = $2, updated_at = NOW() WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, text)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func (r *PatientNoteRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM patient_notes WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func (r *PatientNoteRepository) queryNotes(ctx context.Context, query string, args ...any) ([]models.PatientNote, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []models.PatientNote
	for rows.Next() {
		var note models.PatientNote
		if err := rows.Scan(
			&note.ID,
			&note.PatientID,
			&note.DoctorID,
			&note.Note,
			&note.CreatedAt,
			&note.UpdatedAt,
		); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}
