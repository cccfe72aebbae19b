package service

import (
	"context"
	"fmt"
	"time"

	"emocare/api/internal/ids"
	"emocare/api/internal/models"
)

// RecordService manages self-reported emotion diary entries. All operations
// are owner-scoped: a record is only visible to the user who wrote it.
type RecordService struct {
	records RecordStore
	users   UserStore
	now     func() time.Time
}

func NewRecordService(records RecordStore, users UserStore) *RecordService {
	return &RecordService{
		records: records,
		users:   users,
		now:     time.Now,
	}
}

type RecordInput struct {
	Emotion          models.RecordEmotion
	IntensityLevel   int
	Notes            *string
	Location         *string
	TriggerEvent     *string
	PhysicalSymptoms *string
	RecordedAt       *time.Time
}

func (s *RecordService) validate(input RecordInput) error {
	if !input.Emotion.Valid() {
		return fmt.Errorf("%w: unknown emotion type %q", ErrValidation, input.Emotion)
	}
	if input.IntensityLevel < 1 || input.IntensityLevel > 10 {
		return fmt.Errorf("%w: intensity level must be within [1,10]", ErrValidation)
	}
	return nil
}

func (s *RecordService) Create(ctx context.Context, userID string, input RecordInput) (models.EmotionRecord, error) {
	if err := s.validate(input); err != nil {
		return models.EmotionRecord{}, err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return models.EmotionRecord{}, err
	}

	recordedAt := s.now()
	if input.RecordedAt != nil {
		recordedAt = *input.RecordedAt
	}

	record := models.EmotionRecord{
		ID:               ids.New(),
		UserID:           userID,
		Emotion:          input.Emotion,
		IntensityLevel:   input.IntensityLevel,
		Notes:            input.Notes,
		Location:         input.Location,
		TriggerEvent:     input.TriggerEvent,
		PhysicalSymptoms: input.PhysicalSymptoms,
		RecordedAt:       recordedAt,
	}

	if err := s.records.Create(ctx, record); err != nil {
		return models.EmotionRecord{}, err
	}
	return record, nil
}

func (s *RecordService) GetByID(ctx context.Context, id, userID string) (models.EmotionRecord, error) {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		return models.EmotionRecord{}, err
	}
	if record.UserID != userID {
		return models.EmotionRecord{}, ErrForbidden
	}
	return record, nil
}

func (s *RecordService) ListByUser(ctx context.Context, userID string) ([]models.EmotionRecord, error) {
	return s.records.ListByUser(ctx, userID)
}

func (s *RecordService) ListByType(ctx context.Context, userID string, emotion models.RecordEmotion) ([]models.EmotionRecord, error) {
	if !emotion.Valid() {
		return nil, fmt.Errorf("%w: unknown emotion type %q", ErrValidation, emotion)
	}
	return s.records.ListByUserAndType(ctx, userID, emotion)
}

func (s *RecordService) ListByDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.EmotionRecord, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date precedes start date", ErrValidation)
	}
	return s.records.ListByUserAndDateRange(ctx, userID, start, end)
}

func (s *RecordService) Update(ctx context.Context, id, userID string, input RecordInput) (models.EmotionRecord, error) {
	if err := s.validate(input); err != nil {
		return models.EmotionRecord{}, err
	}

	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		return models.EmotionRecord{}, err
	}
	if record.UserID != userID {
		return models.EmotionRecord{}, ErrForbidden
	}

	record.Emotion = input.Emotion
	record.IntensityLevel = input.IntensityLevel
	record.Notes = input.Notes
	record.Location = input.Location
	record.TriggerEvent = input.TriggerEvent
	record.PhysicalSymptoms = input.PhysicalSymptoms
	if input.RecordedAt != nil {
		record.RecordedAt = *input.RecordedAt
	}

	if err := s.records.Update(ctx, record); err != nil {
		return models.EmotionRecord{}, err
	}
	return record, nil
}

func (s *RecordService) Delete(ctx context.Context, id, userID string) error {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if record.UserID != userID {
		return ErrForbidden
	}
	return s.records.Delete(ctx, id)
}
