package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"emocare/api/internal/models"
)

var ErrAlertNotFound = errors.New("alert not found")

type AlertRepository struct {
	pool *pgxpool.Pool
}

func NewAlertRepository(pool *pgxpool.Pool) *AlertRepository {
	return &AlertRepository{pool: pool}
}

func (r *AlertRepository) Create(ctx context.Context, alert models.Alert) error {
	const query = `
		INSERT INTO alerts (id, patient_id, doctor_id, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		alert.ID,
		alert.PatientID,
		alert.DoctorID,
		alert.Message,
		alert.Read,
		alert.CreatedAt,
	)
	return err
}

func (r *AlertRepository) GetByID(ctx context.Context, id string) (models.Alert, error) {
	const query = `
		SELECT id, patient_id, doctor_id, message, is_read, created_at
		FROM alerts WHERE id = $1
	`
	var alert models.Alert
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&alert.ID,
		&alert.PatientID,
		&alert.DoctorID,
		&alert.Message,
		&alert.Read,
		&alert.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Alert{}, ErrAlertNotFound
		}
		return models.Alert{}, err
	}
	return alert, nil
}

func (r *AlertRepository) ListByDoctor(ctx context.Context, doctorID string) ([]models.Alert, error) {
	const query = `
		SELECT id, patient_id, doctor_id, message, is_read, created_at
		FROM alerts
		WHERE doctor_id = $1
		ORDER BY created_at DESC, id DESC
	`
	return r.queryAlerts(ctx, query, doctorID)
}

func (r *AlertRepository) ListUnreadByDoctor(ctx context.Context, doctorID string) ([]models.Alert, error) {
	const query = `
		SELECT id, patient_id, doctor_id, message, is_read, created_at
		FROM alerts
		WHERE doctor_id = $1 AND is_read = FALSE
		ORDER BY created_at DESC, id DESC
	`
	return r.queryAlerts(ctx, query, doctorID)
}

func (r *AlertRepository) ListByPatient(ctx context.Context, patientID string) ([]models.Alert, error) {
	const query = `
		SELECT id, patient_id, doctor_id, message, is_read, created_at
		FROM alerts
		WHERE patient_id = $1
		ORDER BY created_at DESC, id DESC
	`
	return r.queryAlerts(ctx, query, patientID)
}

// ListByPatientSince returns the patient's alerts created after the cutoff,
// used for the de-duplication windows.
func (r *AlertRepository) ListByPatientSince(ctx context.Context, patientID string, since time.Time) ([]models.Alert, error) {
	const query = `
		SELECT id, patient_id, doctor_id, message, is_read, created_at
		FROM alerts
		WHERE patient_id = $1 AND created_at > $2
		ORDER BY created_at DESC, id DESC
	`
	return r.queryAlerts(ctx, query, patientID, since)
}

func (r *AlertRepository) MarkRead(ctx context.Context, id string) error {
	const query = `UPDATE alerts SET is_read = TRUE WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrAlertNotFound
	}
	return nil
}

func (r *AlertRepository) queryAlerts(ctx context.Context, query string, args ...any) ([]models.Alert, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []models.Alert
	for rows.Next() {
		var alert models.Alert
		if err := rows.Scan(
			&alert.ID,
			&alert.PatientID,
			&alert.DoctorID,
			&alert.Message,
			&alert.Read,
			&alert.CreatedAt,
		); err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	return alerts, rows.Err()
}
