package models

import "time"

// RecordEmotion is the richer enum used for self-reported diary entries.
type RecordEmotion string

const (
	RecordHappy       RecordEmotion = "HAPPY"
	RecordSad         RecordEmotion = "SAD"
	RecordAngry       RecordEmotion = "ANGRY"
	RecordAnxious     RecordEmotion = "ANXIOUS"
	RecordStressed    RecordEmotion = "STRESSED"
	RecordCalm        RecordEmotion = "CALM"
	RecordExcited     RecordEmotion = "EXCITED"
	RecordFrustrated  RecordEmotion = "FRUSTRATED"
	RecordContent     RecordEmotion = "CONTENT"
	RecordWorried     RecordEmotion = "WORRIED"
	RecordFearful     RecordEmotion = "FEARFUL"
	RecordRelaxed     RecordEmotion = "RELAXED"
	RecordOverwhelmed RecordEmotion = "OVERWHELMED"
	RecordPeaceful    RecordEmotion = "PEACEFUL"
	RecordIrritated   RecordEmotion = "IRRITATED"
)

func (e RecordEmotion) Valid() bool {
	switch e {
	case RecordHappy, RecordSad, RecordAngry, RecordAnxious, RecordStressed,
		RecordCalm, RecordExcited, RecordFrustrated, RecordContent, RecordWorried,
		RecordFearful, RecordRelaxed, RecordOverwhelmed, RecordPeaceful, RecordIrritated:
		return true
	}
	return false
}

type EmotionRecord struct {
	ID               string
	UserID           string
	Emotion          RecordEmotion
	IntensityLevel   int
	Notes            *string
	Location         *string
	TriggerEvent     *string
	PhysicalSymptoms *string
	RecordedAt       time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
