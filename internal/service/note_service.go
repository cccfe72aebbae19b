package service

import (
	"context"
	"fmt"

	"emocare/api/internal/ids"
	"emocare/api/internal/models"
)

// NoteService manages doctor-authored notes on patients. Only the authoring
// doctor may update or delete a note.
type NoteService struct {
	notes NoteStore
	users UserStore
}

func NewNoteService(notes NoteStore, users UserStore) *NoteService {
	return &NoteService{notes: notes, users: users}
}

func (s *NoteService) Create(ctx context.Context, patientID, doctorID, text string) (models.PatientNote, error) {
	if text == "" {
		return models.PatientNote{}, fmt.Errorf("%w: note text is required", ErrValidation)
	}
	if err := checkPatientDoctor(ctx, s.users, patientID, doctorID); err != nil {
		return models.PatientNote{}, err
	}

	note := models.PatientNote{
		ID:        ids.New(),
		PatientID: patientID,
		DoctorID:  doctorID,
		Note:      text,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return models.PatientNote{}, err
	}
	return note, nil
}

// ListByPatient applies the usual read rule: patients see only their own
// notes, doctors any patient's.
func (s *NoteService) ListByPatient(ctx context.Context, patientID string, caller models.User) ([]models.PatientNote, error) {
	if caller.Role == models.RolePatient && patientID != caller.ID {
		return nil, ErrForbidden
	}
	return s.notes.ListByPatient(ctx, patientID)
}

func (s *NoteService) ListByDoctor(ctx context.Context, doctorID string) ([]models.PatientNote, error) {
	return s.notes.ListByDoctor(ctx, doctorID)
}

func (s *NoteService) Update(ctx context.Context, noteID, doctorID, text string) (models.PatientNote, error) {
	note, err := s.notes.GetByID(ctx, noteID)
	if err != nil {
		return models.PatientNote{}, err
	}
	if note.DoctorID != doctorID {
		return models.PatientNote{}, ErrForbidden
	}

	if err := s.notes.Update(ctx, noteID, text); err != nil {
		return models.PatientNote{}, err
	}
	note.Note = text
	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, noteID, doctorID string) error {
	note, err := s.notes.GetByID(ctx, noteID)
	if err != nil {
		return err
	}
	if note.DoctorID != doctorID {
		return ErrForbidden
	}
	return s.notes.Delete(ctx, noteID)
}

// checkPatientDoctor verifies both sides of a doctor-patient operation
// exist and carry the expected roles.
func checkPatientDoctor(ctx context.Context, users UserStore, patientID, doctorID string) error {
	patient, err := users.GetByID(ctx, patientID)
	if err != nil {
		return fmt.Errorf("patient: %w", err)
	}
	if patient.Role != models.RolePatient {
		return ErrNotPatient
	}

	doctor, err := users.GetByID(ctx, doctorID)
	if err != nil {
		return fmt.Errorf("doctor: %w", err)
	}
	if doctor.Role != models.RoleDoctor {
		return ErrNotDoctor
	}
	return nil
}
