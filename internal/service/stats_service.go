package service

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"emocare/api/internal/config"
	"emocare/api/internal/models"
)

// Statistics summarizes a patient's emotion history.
type Statistics struct {
	MostFrequentEmotion      string         `json:"mostFrequentEmotion"`
	MostFrequentEmotionCount int            `json:"mostFrequentEmotionCount"`
	EmotionFrequency         map[string]int `json:"emotionFrequency"`
	WeeklyEmotionCount       map[string]int `json:"weeklyEmotionCount"`
	AverageConfidence        float64        `json:"averageConfidence"`
	TotalEmotions            int            `json:"totalEmotions"`
	StressLevel              int            `json:"stressLevel"`
}

func emptyStatistics() Statistics {
	return Statistics{
		MostFrequentEmotion: string(models.EmotionNeutral),
		EmotionFrequency:    map[string]int{},
		WeeklyEmotionCount:  map[string]int{},
	}
}

// StatsService folds a patient's history into frequency and stress summaries.
// Results are cached in redis for a short TTL; ingestion invalidates them.
type StatsService struct {
	emotions EmotionStore
	users    UserStore
	cache    *redis.Client
	cfg      config.StatsConfig
	log      zerolog.Logger
	now      func() time.Time
}

func NewStatsService(emotions EmotionStore, users UserStore, cache *redis.Client, cfg config.StatsConfig, log zerolog.Logger) *StatsService {
	return &StatsService{
		emotions: emotions,
		users:    users,
		cache:    cache,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

func statsCacheKey(patientID string) string {
	return "stats:" + patientID
}

// PatientStatistics computes (or serves from cache) the patient's summary.
// Same authorization rule as the emotion history.
func (s *StatsService) PatientStatistics(ctx context.Context, patientID string, caller models.User) (Statistics, error) {
	if caller.Role == models.RolePatient && patientID != caller.ID {
		return Statistics{}, ErrForbidden
	}
	if _, err := s.users.GetByID(ctx, patientID); err != nil {
		return Statistics{}, err
	}

	if cached, ok := s.fromCache(ctx, patientID); ok {
		return cached, nil
	}

	emotions, err := s.emotions.ListByPatient(ctx, patientID)
	if err != nil {
		return Statistics{}, err
	}

	stats := Aggregate(emotions, s.now())
	s.toCache(ctx, patientID, stats)
	return stats, nil
}

// Aggregate computes the statistics for a history. Ties for the most
// frequent emotion break lexically so the result is deterministic.
func Aggregate(emotions []models.Emotion, now time.Time) Statistics {
	if len(emotions) == 0 {
		return emptyStatistics()
	}

	frequency := make(map[string]int, 5)
	var confidenceSum float64
	var negatives int
	for _, emotion := range emotions {
		frequency[string(emotion.Type)]++
		confidenceSum += emotion.Confidence
		if emotion.Type.Negative() {
			negatives++
		}
	}

	var mostFrequent string
	var mostCount int
	for emotionType, count := range frequency {
		if count > mostCount || (count == mostCount && emotionType < mostFrequent) {
			mostFrequent = emotionType
			mostCount = count
		}
	}

	weekly := make(map[string]int)
	weekAgo := now.AddDate(0, 0, -7)
	for _, emotion := range emotions {
		if emotion.RecordedAt.After(weekAgo) {
			weekly[weekdayName(emotion.RecordedAt.Weekday())]++
		}
	}

	total := len(emotions)
	return Statistics{
		MostFrequentEmotion:      mostFrequent,
		MostFrequentEmotionCount: mostCount,
		EmotionFrequency:         frequency,
		WeeklyEmotionCount:       weekly,
		AverageConfidence:        confidenceSum / float64(total),
		TotalEmotions:            total,
		StressLevel:              int(math.Round(float64(negatives) * 100 / float64(total))),
	}
}

func weekdayName(day time.Weekday) string {
	switch day {
	case time.Monday:
		return "MONDAY"
	case time.Tuesday:
		return "TUESDAY"
	case time.Wednesday:
		return "WEDNESDAY"
	case time.Thursday:
		return "THURSDAY"
	case time.Friday:
		return "FRIDAY"
	case time.Saturday:
		return "SATURDAY"
	default:
		return "SUNDAY"
	}
}

func (s *StatsService) fromCache(ctx context.Context, patientID string) (Statistics, bool) {
	if s.cache == nil {
		return Statistics{}, false
	}
	payload, err := s.cache.Get(ctx, statsCacheKey(patientID)).Bytes()
	if err != nil {
		return Statistics{}, false
	}
	var stats Statistics
	if err := json.Unmarshal(payload, &stats); err != nil {
		return Statistics{}, false
	}
	return stats, true
}

func (s *StatsService) toCache(ctx context.Context, patientID string, stats Statistics) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, statsCacheKey(patientID), payload, s.cfg.CacheTTL).Err(); err != nil {
		s.log.Warn().Err(err).Str("patient_id", patientID).Msg("cache statistics failed")
	}
}
