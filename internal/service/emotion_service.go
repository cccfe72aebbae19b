package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"emocare/api/internal/detector"
	"emocare/api/internal/ids"
	"emocare/api/internal/models"
	"emocare/api/internal/storage"
)

// EmotionService handles ingestion of emotion events, both manual and
// image-classified, and runs the alert triggers after each one.
type EmotionService struct {
	emotions EmotionStore
	users    UserStore
	alerts   *AlertService
	detect   *detector.Client
	store    *storage.ObjectStore
	cache    *redis.Client
	log      zerolog.Logger
	now      func() time.Time
}

func NewEmotionService(
	emotions EmotionStore,
	users UserStore,
	alerts *AlertService,
	detect *detector.Client,
	store *storage.ObjectStore,
	cache *redis.Client,
	log zerolog.Logger,
) *EmotionService {
	return &EmotionService{
		emotions: emotions,
		users:    users,
		alerts:   alerts,
		detect:   detect,
		store:    store,
		cache:    cache,
		log:      log,
		now:      time.Now,
	}
}

type CreateEmotionInput struct {
	PatientID  string
	Type       models.EmotionType
	Confidence float64
	RecordedAt *time.Time
}

func (s *EmotionService) Create(ctx context.Context, input CreateEmotionInput) (models.Emotion, error) {
	if !input.Type.Valid() {
		return models.Emotion{}, fmt.Errorf("%w: unknown emotion type %q", ErrValidation, input.Type)
	}
	if input.Confidence < 0 || input.Confidence > 1 {
		return models.Emotion{}, fmt.Errorf("%w: confidence must be within [0,1]", ErrValidation)
	}

	patient, err := s.users.GetByID(ctx, input.PatientID)
	if err != nil {
		return models.Emotion{}, fmt.Errorf("resolve patient: %w", err)
	}
	if patient.Role != models.RolePatient {
		return models.Emotion{}, ErrNotPatient
	}

	recordedAt := s.now()
	if input.RecordedAt != nil {
		recordedAt = *input.RecordedAt
	}

	emotion := models.Emotion{
		ID:         ids.New(),
		PatientID:  patient.ID,
		Type:       input.Type,
		Confidence: input.Confidence,
		RecordedAt: recordedAt,
	}

	if err := s.emotions.Create(ctx, emotion); err != nil {
		return models.Emotion{}, fmt.Errorf("persist emotion: %w", err)
	}

	// Best-effort side effects: alert generation and cache invalidation must
	// never fail the ingestion itself.
	s.alerts.EvaluateTriggers(ctx, patient, emotion)
	s.invalidateStats(ctx, patient.ID)

	return emotion, nil
}

// CreateFromImage classifies the image through the external detector, maps
// the label onto the internal enum and ingests the result as a normal event.
// The raw capture is archived to object storage first, best-effort.
func (s *EmotionService) CreateFromImage(ctx context.Context, patientID string, image []byte, contentType string) (models.Emotion, error) {
	if len(image) == 0 {
		return models.Emotion{}, fmt.Errorf("%w: empty image", ErrValidation)
	}

	if s.store != nil {
		if key, err := s.store.PutCapture(ctx, ids.New(), image, contentType); err != nil {
			s.log.Warn().Err(err).Str("patient_id", patientID).Msg("archive capture failed")
		} else {
			s.log.Debug().Str("object_key", key).Msg("capture archived")
		}
	}

	detection := s.detect.DetectFromBytes(ctx, image)
	emotionType := detector.MapLabel(detection.Label)

	return s.Create(ctx, CreateEmotionInput{
		PatientID:  patientID,
		Type:       emotionType,
		Confidence: detection.Confidence,
	})
}

func (s *EmotionService) GetByID(ctx context.Context, id string, caller models.User) (models.Emotion, error) {
	emotion, err := s.emotions.GetByID(ctx, id)
	if err != nil {
		return models.Emotion{}, err
	}
	if caller.Role == models.RolePatient && emotion.PatientID != caller.ID {
		return models.Emotion{}, ErrForbidden
	}
	return emotion, nil
}

// History returns the patient's events newest first. Patients may only read
// their own history; doctors may read any patient's.
func (s *EmotionService) History(ctx context.Context, patientID string, caller models.User) ([]models.Emotion, error) {
	if caller.Role == models.RolePatient && patientID != caller.ID {
		return nil, ErrForbidden
	}
	if _, err := s.users.GetByID(ctx, patientID); err != nil {
		return nil, err
	}
	return s.emotions.ListByPatient(ctx, patientID)
}

func (s *EmotionService) invalidateStats(ctx context.Context, patientID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, statsCacheKey(patientID)).Err(); err != nil {
		s.log.Warn().Err(err).Str("patient_id", patientID).Msg("invalidate stats cache failed")
	}
}
