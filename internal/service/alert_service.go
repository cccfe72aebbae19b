package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"emocare/api/internal/config"
	"emocare/api/internal/ids"
	"emocare/api/internal/models"
	"emocare/api/internal/repository"
)

const (
	eventAlertMarker       = "New emotion detected"
	consecutiveAlertMarker = "consecutive SAD emotions"
)

// AlertService derives doctor-facing notifications from emotion events.
type AlertService struct {
	alerts      AlertStore
	emotions    EmotionStore
	users       UserStore
	assignments AssignmentStore
	cfg         config.AlertsConfig
	log         zerolog.Logger
	now         func() time.Time
}

func NewAlertService(alerts AlertStore, emotions EmotionStore, users UserStore, assignments AssignmentStore, cfg config.AlertsConfig, log zerolog.Logger) *AlertService {
	return &AlertService{
		alerts:      alerts,
		emotions:    emotions,
		users:       users,
		assignments: assignments,
		cfg:         cfg,
		log:         log,
		now:         time.Now,
	}
}

// Create persists an unread alert for the patient, routed to the patient's
// assigned doctor or, failing that, the first doctor in the system.
func (s *AlertService) Create(ctx context.Context, patientID string, message string) (models.Alert, error) {
	patient, err := s.users.GetByID(ctx, patientID)
	if err != nil {
		return models.Alert{}, fmt.Errorf("resolve patient: %w", err)
	}

	doctor, err := s.routeDoctor(ctx, patient.ID)
	if err != nil {
		return models.Alert{}, err
	}

	alert := models.Alert{
		ID:        ids.New(),
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Message:   message,
		Read:      false,
		CreatedAt: s.now(),
	}

	if err := s.alerts.Create(ctx, alert); err != nil {
		return models.Alert{}, fmt.Errorf("persist alert: %w", err)
	}
	return alert, nil
}

// routeDoctor picks the target doctor: the earliest-assigned doctor for the
// patient, else the earliest-created doctor overall.
func (s *AlertService) routeDoctor(ctx context.Context, patientID string) (models.User, error) {
	doctor, err := s.assignments.AssignedDoctor(ctx, patientID)
	if err == nil {
		return doctor, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return models.User{}, err
	}

	doctor, err = s.users.FirstDoctor(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, ErrNoDoctorAvailable
		}
		return models.User{}, err
	}
	return doctor, nil
}

// EvaluateTriggers runs the per-event and consecutive-negative alert checks
// for a freshly persisted emotion. Failures are logged and swallowed so they
// never abort the ingestion that triggered them.
func (s *AlertService) EvaluateTriggers(ctx context.Context, patient models.User, emotion models.Emotion) {
	if err := s.emitEventAlert(ctx, patient, emotion); err != nil {
		s.log.Error().Err(err).
			Str("patient_id", patient.ID).
			Str("emotion", string(emotion.Type)).
			Msg("per-event alert failed")
	}
	if err := s.emitConsecutiveSadAlert(ctx, patient); err != nil {
		s.log.Error().Err(err).
			Str("patient_id", patient.ID).
			Msg("consecutive sad alert failed")
	}
}

func (s *AlertService) emitEventAlert(ctx context.Context, patient models.User, emotion models.Emotion) error {
	since := s.now().Add(-s.cfg.EventDedupWindow)
	recent, err := s.alerts.ListByPatientSince(ctx, patient.ID, since)
	if err != nil {
		return err
	}
	for _, alert := range recent {
		if strings.Contains(alert.Message, eventAlertMarker) &&
			strings.Contains(alert.Message, string(emotion.Type)) {
			s.log.Debug().
				Str("patient_id", patient.ID).
				Str("emotion", string(emotion.Type)).
				Msg("recent event alert exists, skipping duplicate")
			return nil
		}
	}

	message := fmt.Sprintf("%s: Patient %s has recorded a %s emotion with %.1f%% confidence.",
		eventAlertMarker, patient.FullName, emotion.Type, emotion.Confidence*100)

	_, err = s.Create(ctx, patient.ID, message)
	return err
}

func (s *AlertService) emitConsecutiveSadAlert(ctx context.Context, patient models.User) error {
	history, err := s.emotions.ListByPatient(ctx, patient.ID)
	if err != nil {
		return err
	}

	n := s.cfg.ConsecutiveSadCount
	if len(history) < n {
		return nil
	}
	for _, emotion := range history[:n] {
		if emotion.Type != models.EmotionSad {
			return nil
		}
	}

	since := s.now().Add(-s.cfg.ConsecutiveDedupWindow)
	recent, err := s.alerts.ListByPatientSince(ctx, patient.ID, since)
	if err != nil {
		return err
	}
	for _, alert := range recent {
		if strings.Contains(alert.Message, consecutiveAlertMarker) {
			s.log.Debug().
				Str("patient_id", patient.ID).
				Msg("recent consecutive alert exists, skipping duplicate")
			return nil
		}
	}

	message := fmt.Sprintf("Alert: Patient %s has recorded %d %s. Please review their emotional state.",
		patient.FullName, n, consecutiveAlertMarker)

	_, err = s.Create(ctx, patient.ID, message)
	return err
}

func (s *AlertService) ListByDoctor(ctx context.Context, doctorID string) ([]models.Alert, error) {
	return s.alerts.ListByDoctor(ctx, doctorID)
}

func (s *AlertService) ListUnreadByDoctor(ctx context.Context, doctorID string) ([]models.Alert, error) {
	return s.alerts.ListUnreadByDoctor(ctx, doctorID)
}

func (s *AlertService) ListByPatient(ctx context.Context, patientID string) ([]models.Alert, error) {
	return s.alerts.ListByPatient(ctx, patientID)
}

func (s *AlertService) MarkRead(ctx context.Context, alertID string) error {
	return s.alerts.MarkRead(ctx, alertID)
}
