package service

import (
	"context"
	"time"

	"emocare/api/internal/models"
)

// Store interfaces consumed by the services. The pgx repositories satisfy
// them; tests substitute in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, user models.User) error
	GetByID(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)
	FirstDoctor(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, user models.User) error
	UpdatePassword(ctx context.Context, id string, passwordHash []byte) error
	SetLockedByEmail(ctx context.Context, email string, locked bool) error
	TouchLastConnected(ctx context.Context, id string) error
}

type AssignmentStore interface {
	Add(ctx context.Context, doctorID, patientID string) error
	Remove(ctx context.Context, doctorID, patientID string) error
	Contains(ctx context.Context, doctorID, patientID string) (bool, error)
	ListPatientIDs(ctx context.Context, doctorID string) ([]string, error)
	AssignedDoctor(ctx context.Context, patientID string) (models.User, error)
}

type EmotionStore interface {
	Create(ctx context.Context, emotion models.Emotion) error
	GetByID(ctx context.Context, id string) (models.Emotion, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Emotion, error)
}

type AlertStore interface {
	Create(ctx context.Context, alert models.Alert) error
	GetByID(ctx context.Context, id string) (models.Alert, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]models.Alert, error)
	ListUnreadByDoctor(ctx context.Context, doctorID string) ([]models.Alert, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Alert, error)
	ListByPatientSince(ctx context.Context, patientID string, since time.Time) ([]models.Alert, error)
	MarkRead(ctx context.Context, id string) error
}

type LoginAttemptStore interface {
	FindByEmail(ctx context.Context, email string) (models.LoginAttempt, error)
	Upsert(ctx context.Context, attempt models.LoginAttempt) error
}

type RecordStore interface {
	Create(ctx context.Context, record models.EmotionRecord) error
	GetByID(ctx context.Context, id string) (models.EmotionRecord, error)
	ListByUser(ctx context.Context, userID string) ([]models.EmotionRecord, error)
	ListByUserAndType(ctx context.Context, userID string, emotion models.RecordEmotion) ([]models.EmotionRecord, error)
	ListByUserAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.EmotionRecord, error)
	Update(ctx context.Context, record models.EmotionRecord) error
	Delete(ctx context.Context, id string) error
}

type NoteStore interface {
	Create(ctx context.Context, note models.PatientNote) error
	GetByID(ctx context.Context, id string) (models.PatientNote, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.PatientNote, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]models.PatientNote, error)
	Update(ctx context.Context, id string, text string) error
	Delete(ctx context.Context, id string) error
}

type TagStore interface {
	Create(ctx context.Context, tag models.PatientTag) error
	GetByID(ctx context.Context, id string) (models.PatientTag, error)
	Find(ctx context.Context, patientID, doctorID, tag string) (models.PatientTag, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.PatientTag, error)
	ListByPatientAndDoctor(ctx context.Context, patientID, doctorID string) ([]models.PatientTag, error)
	Delete(ctx context.Context, id string) error
}
