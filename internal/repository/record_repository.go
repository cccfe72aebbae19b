package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"emocare/api/internal/models"
)

var ErrRecordNotFound = errors.New("emotion record not found")

const recordColumns = `
	id, user_id, emotion_type, intensity_level, notes, location,
	trigger_event, physical_symptoms, recorded_at, created_at, updated_at
`

type EmotionRecordRepository struct {
	pool *pgxpool.Pool
}

func NewEmotionRecordRepository(pool *pgxpool.Pool) *EmotionRecordRepository {
	return &EmotionRecordRepository{pool: pool}
}

func (r *EmotionRecordRepository) Create(ctx context.Context, record models.EmotionRecord) error {
	const query = `
		INSERT INTO emotion_records (
			id, user_id, emotion_type, intensity_level, notes, location,
			trigger_event, physical_symptoms, recorded_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW()
		)
	`
	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.UserID,
		record.Emotion,
		record.IntensityLevel,
		record.Notes,
		record.Location,
		record.TriggerEvent,
		record.PhysicalSymptoms,
		record.RecordedAt,
	)
	return err
}

func scanRecord(row pgx.Row) (models.EmotionRecord, error) {
	var record models.EmotionRecord
	if err := row.Scan(
		&record.ID,
		&record.UserID,
		&record.Emotion,
		&record.IntensityLevel,
		&record.Notes,
		&record.Location,
		&record.TriggerEvent,
		&record.PhysicalSymptoms,
		&record.RecordedAt,
		&record.CreatedAt,
		&record.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.EmotionRecord{}, ErrRecordNotFound
		}
		return models.EmotionRecord{}, err
	}
	return record, nil
}

func (r *EmotionRecordRepository) GetByID(ctx context.Context, id string) (models.EmotionRecord, error) {
	const query = `SELECT` + recordColumns + `FROM emotion_records WHERE id = $1`
	return scanRecord(r.pool.QueryRow(ctx, query, id))
}

func (r *EmotionRecordRepository) ListByUser(ctx context.Context, userID string) ([]models.EmotionRecord, error) {
	const query = `
		SELECT` + recordColumns + `
		FROM emotion_records
		WHERE user_id = $1
		ORDER BY recorded_at DESC, id DESC
	`
	return r.queryRecords(ctx, query, userID)
}

func (r *EmotionRecordRepository) ListByUserAndType(ctx context.Context, userID string, emotion models.RecordEmotion) ([]models.EmotionRecord, error) {
	const query = `
		SELECT` + recordColumns + `
		FROM emotion_records
		WHERE user_id = $1 AND emotion_type = $2
		ORDER BY recorded_at DESC, id DESC
	`
	return r.queryRecords(ctx, query, userID, emotion)
}

func (r *EmotionRecordRepository) ListByUserAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.EmotionRecord, error) {
	const query = `
		SELECT` + recordColumns + `
		FROM emotion_records
		WHERE user_id = $1 AND recorded_at BETWEEN $2 AND $3
		ORDER BY recorded_at DESC, id DESC
	`
	return r.queryRecords(ctx, query, userID, start, end)
}

func (r *EmotionRecordRepository) Update(ctx context.Context, record models.EmotionRecord) error {
	const query = `
		UPDATE emotion_records
		SET emotion_type = $2,
		    intensity_level = $3,
		    notes = $4,
		    location = $5,
		    trigger_event = $6,
		    physical_symptoms = $7,
		    recorded_at = $8,
		    updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query,
		record.ID,
		record.Emotion,
		record.IntensityLevel,
		record.Notes,
		record.Location,
		record.TriggerEvent,
		record.PhysicalSymptoms,
		record.RecordedAt,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *EmotionRecordRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM emotion_records WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *EmotionRecordRepository) queryRecords(ctx context.Context, query string, args ...any) ([]models.EmotionRecord, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.EmotionRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
