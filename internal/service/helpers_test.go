package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"emocare/api/internal/models"
	"emocare/api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// fakeUserStore keeps users in insertion order so FirstDoctor stays
// deterministic, mirroring the created_at ordering of the real queries.
type fakeUserStore struct {
	users []models.User
}

func (f *fakeUserStore) Create(_ context.Context, user models.User) error {
	user.CreatedAt = time.Now()
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (f *fakeUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.FindByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserStore) List(_ context.Context) ([]models.User, error) {
	return append([]models.User(nil), f.users...), nil
}

func (f *fakeUserStore) ListByRole(_ context.Context, role models.Role) ([]models.User, error) {
	var out []models.User
	for _, user := range f.users {
		if user.Role == role {
			out = append(out, user)
		}
	}
	return out, nil
}

func (f *fakeUserStore) FirstDoctor(_ context.Context) (models.User, error) {
	for _, user := range f.users {
		if user.Role == models.RoleDoctor {
			return user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, updated models.User) error {
	for i, user := range f.users {
		if user.ID == updated.ID {
			updated.CreatedAt = user.CreatedAt
			f.users[i] = updated
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, id string, passwordHash []byte) error {
	for i, user := range f.users {
		if user.ID == id {
			f.users[i].PasswordHash = passwordHash
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (f *fakeUserStore) SetLockedByEmail(_ context.Context, email string, locked bool) error {
	for i, user := range f.users {
		if user.Email == email {
			f.users[i].Locked = locked
		}
	}
	return nil
}

func (f *fakeUserStore) TouchLastConnected(_ context.Context, id string) error {
	now := time.Now()
	for i, user := range f.users {
		if user.ID == id {
			f.users[i].LastConnectedAt = &now
		}
	}
	return nil
}

type assignmentPair struct {
	doctorID  string
	patientID string
}

type fakeAssignmentStore struct {
	pairs []assignmentPair
	users *fakeUserStore
}

func (f *fakeAssignmentStore) Add(_ context.Context, doctorID, patientID string) error {
	for _, pair := range f.pairs {
		if pair.doctorID == doctorID && pair.patientID == patientID {
			return nil
		}
	}
	f.pairs = append(f.pairs, assignmentPair{doctorID: doctorID, patientID: patientID})
	return nil
}

func (f *fakeAssignmentStore) Remove(_ context.Context, doctorID, patientID string) error {
	for i, pair := range f.pairs {
		if pair.doctorID == doctorID && pair.patientID == patientID {
			f.pairs = append(f.pairs[:i], f.pairs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeAssignmentStore) Contains(_ context.Context, doctorID, patientID string) (bool, error) {
	for _, pair := range f.pairs {
		if pair.doctorID == doctorID && pair.patientID == patientID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAssignmentStore) ListPatientIDs(_ context.Context, doctorID string) ([]string, error) {
	var out []string
	for _, pair := range f.pairs {
		if pair.doctorID == doctorID {
			out = append(out, pair.patientID)
		}
	}
	return out, nil
}

func (f *fakeAssignmentStore) AssignedDoctor(ctx context.Context, patientID string) (models.User, error) {
	for _, pair := range f.pairs {
		if pair.patientID == patientID {
			return f.users.GetByID(ctx, pair.doctorID)
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

type fakeEmotionStore struct {
	emotions []models.Emotion
}

func (f *fakeEmotionStore) Create(_ context.Context, emotion models.Emotion) error {
	f.emotions = append(f.emotions, emotion)
	return nil
}

func (f *fakeEmotionStore) GetByID(_ context.Context, id string) (models.Emotion, error) {
	for _, emotion := range f.emotions {
		if emotion.ID == id {
			return emotion, nil
		}
	}
	return models.Emotion{}, repository.ErrEmotionNotFound
}

// ListByPatient returns newest first, like the real query.
func (f *fakeEmotionStore) ListByPatient(_ context.Context, patientID string) ([]models.Emotion, error) {
	var out []models.Emotion
	for _, emotion := range f.emotions {
		if emotion.PatientID == patientID {
			out = append(out, emotion)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecordedAt.After(out[j].RecordedAt)
	})
	return out, nil
}

type fakeAlertStore struct {
	alerts []models.Alert
}

func (f *fakeAlertStore) Create(_ context.Context, alert models.Alert) error {
	f.alerts = append(f.alerts, alert)
	return nil
}

func (f *fakeAlertStore) GetByID(_ context.Context, id string) (models.Alert, error) {
	for _, alert := range f.alerts {
		if alert.ID == id {
			return alert, nil
		}
	}
	return models.Alert{}, repository.ErrAlertNotFound
}

func (f *fakeAlertStore) ListByDoctor(_ context.Context, doctorID string) ([]models.Alert, error) {
	var out []models.Alert
	for _, alert := range f.alerts {
		if alert.DoctorID == doctorID {
			out = append(out, alert)
		}
	}
	return out, nil
}

func (f *fakeAlertStore) ListUnreadByDoctor(_ context.Context, doctorID string) ([]models.Alert, error) {
	var out []models.Alert
	for _, alert := range f.alerts {
		if alert.DoctorID == doctorID && !alert.Read {
			out = append(out, alert)
		}
	}
	return out, nil
}

func (f *fakeAlertStore) ListByPatient(_ context.Context, patientID string) ([]models.Alert, error) {
	var out []models.Alert
	for _, alert := range f.alerts {
		if alert.PatientID == patientID {
			out = append(out, alert)
		}
	}
	return out, nil
}

func (f *fakeAlertStore) ListByPatientSince(_ context.Context, patientID string, since time.Time) ([]models.Alert, error) {
	var out []models.Alert
	for _, alert := range f.alerts {
		if alert.PatientID == patientID && alert.CreatedAt.After(since) {
			out = append(out, alert)
		}
	}
	return out, nil
}

func (f *fakeAlertStore) MarkRead(_ context.Context, id string) error {
	for i, alert := range f.alerts {
		if alert.ID == id {
			f.alerts[i].Read = true
			return nil
		}
	}
	return repository.ErrAlertNotFound
}

type fakeAttemptStore struct {
	attempts map[string]models.LoginAttempt
}

func newFakeAttemptStore() *fakeAttemptStore {
	return &fakeAttemptStore{attempts: make(map[string]models.LoginAttempt)}
}

func (f *fakeAttemptStore) FindByEmail(_ context.Context, email string) (models.LoginAttempt, error) {
	attempt, ok := f.attempts[email]
	if !ok {
		return models.LoginAttempt{}, repository.ErrAttemptNotFound
	}
	return attempt, nil
}

func (f *fakeAttemptStore) Upsert(_ context.Context, attempt models.LoginAttempt) error {
	f.attempts[attempt.Email] = attempt
	return nil
}

type fakeRecordStore struct {
	records []models.EmotionRecord
}

func (f *fakeRecordStore) Create(_ context.Context, record models.EmotionRecord) error {
	f.records = append(f.records, record)
	return nil
}

func (f *fakeRecordStore) GetByID(_ context.Context, id string) (models.EmotionRecord, error) {
	for _, record := range f.records {
		if record.ID == id {
			return record, nil
		}
	}
	return models.EmotionRecord{}, repository.ErrRecordNotFound
}

func (f *fakeRecordStore) ListByUser(_ context.Context, userID string) ([]models.EmotionRecord, error) {
	var out []models.EmotionRecord
	for _, record := range f.records {
		if record.UserID == userID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (f *fakeRecordStore) ListByUserAndType(_ context.Context, userID string, emotion models.RecordEmotion) ([]models.EmotionRecord, error) {
	var out []models.EmotionRecord
	for _, record := range f.records {
		if record.UserID == userID && record.Emotion == emotion {
			out = append(out, record)
		}
	}
	return out, nil
}

func (f *fakeRecordStore) ListByUserAndDateRange(_ context.Context, userID string, start, end time.Time) ([]models.EmotionRecord, error) {
	var out []models.EmotionRecord
	for _, record := range f.records {
		if record.UserID == userID && !record.RecordedAt.Before(start) && !record.RecordedAt.After(end) {
			out = append(out, record)
		}
	}
	return out, nil
}

func (f *fakeRecordStore) Update(_ context.Context, updated models.EmotionRecord) error {
	for i, record := range f.records {
		if record.ID == updated.ID {
			f.records[i] = updated
			return nil
		}
	}
	return repository.ErrRecordNotFound
}

func (f *fakeRecordStore) Delete(_ context.Context, id string) error {
	for i, record := range f.records {
		if record.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return repository.ErrRecordNotFound
}

type fakeNoteStore struct {
	notes []models.PatientNote
}

func (f *fakeNoteStore) Create(_ context.Context, note models.PatientNote) error {
	f.notes = append(f.notes, note)
	return nil
}

func (f *fakeNoteStore) GetByID(_ context.Context, id string) (models.PatientNote, error) {
	for _, note := range f.notes {
		if note.ID == id {
			return note, nil
		}
	}
	return models.PatientNote{}, repository.ErrNoteNotFound
}

func (f *fakeNoteStore) ListByPatient(_ context.Context, patientID string) ([]models.PatientNote, error) {
	var out []models.PatientNote
	for _, note := range f.notes {
		if note.PatientID == patientID {
			out = append(out, note)
		}
	}
	return out, nil
}

func (f *fakeNoteStore) ListByDoctor(_ context.Context, doctorID string) ([]models.PatientNote, error) {
	var out []models.PatientNote
	for _, note := range f.notes {
		if note.DoctorID == doctorID {
			out = append(out, note)
		}
	}
	return out, nil
}

func (f *fakeNoteStore) Update(_ context.Context, id string, text string) error {
	for i, note := range f.notes {
		if note.ID == id {
			f.notes[i].Note = text
			return nil
		}
	}
	return repository.ErrNoteNotFound
}

func (f *fakeNoteStore) Delete(_ context.Context, id string) error {
	for i, note := range f.notes {
		if note.ID == id {
			f.notes = append(f.notes[:i], f.notes[i+1:]...)
			return nil
		}
	}
	return repository.ErrNoteNotFound
}

type fakeTagStore struct {
	tags []models.PatientTag
}

func (f *fakeTagStore) Create(_ context.Context, tag models.PatientTag) error {
	f.tags = append(f.tags, tag)
	return nil
}

func (f *fakeTagStore) GetByID(_ context.Context, id string) (models.PatientTag, error) {
	for _, tag := range f.tags {
		if tag.ID == id {
			return tag, nil
		}
	}
	return models.PatientTag{}, repository.ErrTagNotFound
}

func (f *fakeTagStore) Find(_ context.Context, patientID, doctorID, name string) (models.PatientTag, error) {
	for _, tag := range f.tags {
		if tag.PatientID == patientID && tag.DoctorID == doctorID && tag.Tag == name {
			return tag, nil
		}
	}
	return models.PatientTag{}, repository.ErrTagNotFound
}

func (f *fakeTagStore) ListByPatient(_ context.Context, patientID string) ([]models.PatientTag, error) {
	var out []models.PatientTag
	for _, tag := range f.tags {
		if tag.PatientID == patientID {
			out = append(out, tag)
		}
	}
	return out, nil
}

func (f *fakeTagStore) ListByPatientAndDoctor(_ context.Context, patientID, doctorID string) ([]models.PatientTag, error) {
	var out []models.PatientTag
	for _, tag := range f.tags {
		if tag.PatientID == patientID && tag.DoctorID == doctorID {
			out = append(out, tag)
		}
	}
	return out, nil
}

func (f *fakeTagStore) Delete(_ context.Context, id string) error {
	for i, tag := range f.tags {
		if tag.ID == id {
			f.tags = append(f.tags[:i], f.tags[i+1:]...)
			return nil
		}
	}
	return repository.ErrTagNotFound
}
