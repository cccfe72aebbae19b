package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"emocare/api/internal/models"
)

var ErrEmotionNotFound = errors.New("emotion not found")

type EmotionRepository struct {
	pool *pgxpool.Pool
}

func NewEmotionRepository(pool *pgxpool.Pool) *EmotionRepository {
	return &EmotionRepository{pool: pool}
}

func (r *EmotionRepository) Create(ctx context.Context, emotion models.Emotion) error {
	const query = `
		INSERT INTO emotions (id, patient_id, emotion_type, confidence, recorded_at, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.pool.Exec(ctx, query,
		emotion.ID,
		emotion.PatientID,
		emotion.Type,
		emotion.Confidence,
		emotion.RecordedAt,
	)
	return err
}

func (r *EmotionRepository) GetByID(ctx context.Context, id string) (models.Emotion, error) {
	const query = `
		SELECT id, patient_id, emotion_type, confidence, recorded_at, created_at
		FROM emotions WHERE id = $1
	`
	var emotion models.Emotion
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&emotion.ID,
		&emotion.PatientID,
		&emotion.Type,
		&emotion.Confidence,
		&emotion.RecordedAt,
		&emotion.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Emotion{}, ErrEmotionNotFound
		}
		return models.Emotion{}, err
	}
	return emotion, nil
}

// ListByPatient returns the patient's full history, newest first.
func (r *EmotionRepository) ListByPatient(ctx context.Context, patientID string) ([]models.Emotion, error) {
	const query = `
		SELECT id, patient_id, emotion_type, confidence, recorded_at, created_at
		FROM emotions
		WHERE patient_id = $1
		ORDER BY recorded_at DESC, id DESC
	`
	rows, err := r.pool.Query(ctx, query, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emotions []models.Emotion
	for rows.Next() {
		var emotion models.Emotion
		if err := rows.Scan(
			&emotion.ID,
			&emotion.PatientID,
			&emotion.Type,
			&emotion.Confidence,
			&emotion.RecordedAt,
			&emotion.CreatedAt,
		); err != nil {
			return nil, err
		}
		emotions = append(emotions, emotion)
	}
	return emotions, rows.Err()
}
