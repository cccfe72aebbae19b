package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"emocare/api/internal/ids"
	"emocare/api/internal/models"
	"emocare/api/internal/repository"
)

// TagService manages short doctor-assigned labels on patients. Tags are
// unique per (patient, doctor, tag) triple.
type TagService struct {
	tags  TagStore
	users UserStore
}

func NewTagService(tags TagStore, users UserStore) *TagService {
	return &TagService{tags: tags, users: users}
}

func (s *TagService) Create(ctx context.Context, patientID, doctorID, tag string) (models.PatientTag, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return models.PatientTag{}, fmt.Errorf("%w: tag is required", ErrValidation)
	}
	if err := checkPatientDoctor(ctx, s.users, patientID, doctorID); err != nil {
		return models.PatientTag{}, err
	}

	if _, err := s.tags.Find(ctx, patientID, doctorID, tag); err == nil {
		return models.PatientTag{}, ErrTagExists
	} else if !errors.Is(err, repository.ErrTagNotFound) {
		return models.PatientTag{}, err
	}

	record := models.PatientTag{
		ID:        ids.New(),
		PatientID: patientID,
		DoctorID:  doctorID,
		Tag:       tag,
	}
	if err := s.tags.Create(ctx, record); err != nil {
		return models.PatientTag{}, err
	}
	return record, nil
}

func (s *TagService) ListByPatient(ctx context.Context, patientID string, caller models.User) ([]models.PatientTag, error) {
	if caller.Role == models.RolePatient && patientID != caller.ID {
		return nil, ErrForbidden
	}
	return s.tags.ListByPatient(ctx, patientID)
}

func (s *TagService) ListByPatientAndDoctor(ctx context.Context, patientID, doctorID string) ([]models.PatientTag, error) {
	return s.tags.ListByPatientAndDoctor(ctx, patientID, doctorID)
}

// RemoveByName deletes a tag identified by its text. Only the doctor who
// created the tag may remove it.
func (s *TagService) RemoveByName(ctx context.Context, patientID, doctorID, tag string) error {
	record, err := s.tags.Find(ctx, patientID, doctorID, strings.TrimSpace(tag))
	if err != nil {
		return err
	}
	return s.tags.Delete(ctx, record.ID)
}

func (s *TagService) RemoveByID(ctx context.Context, tagID, doctorID string) error {
	record, err := s.tags.GetByID(ctx, tagID)
	if err != nil {
		return err
	}
	if record.DoctorID != doctorID {
		return ErrForbidden
	}
	return s.tags.Delete(ctx, record.ID)
}
