package models

import "time"

// EmotionType is the classifier-facing enum used for emotion events.
type EmotionType string

const (
	EmotionHappy   EmotionType = "HAPPY"
	EmotionSad     EmotionType = "SAD"
	EmotionAngry   EmotionType = "ANGRY"
	EmotionFear    EmotionType = "FEAR"
	EmotionNeutral EmotionType = "NEUTRAL"
)

func (t EmotionType) Valid() bool {
	switch t {
	case EmotionHappy, EmotionSad, EmotionAngry, EmotionFear, EmotionNeutral:
		return true
	}
	return false
}

// Negative reports whether the emotion counts toward the stress score.
func (t EmotionType) Negative() bool {
	switch t {
	case EmotionSad, EmotionAngry, EmotionFear:
		return true
	}
	return false
}

type Emotion struct {
	ID         string
	PatientID  string
	Type       EmotionType
	Confidence float64
	RecordedAt time.Time
	CreatedAt  time.Time
}
