package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"emocare/api/internal/ids"
	"emocare/api/internal/models"
	"emocare/api/internal/repository"
	"emocare/api/internal/security"
)

// UserService covers registration, profile edits and doctor/patient
// assignment management.
type UserService struct {
	users       UserStore
	assignments AssignmentStore
	log         zerolog.Logger
}

func NewUserService(users UserStore, assignments AssignmentStore, log zerolog.Logger) *UserService {
	return &UserService{
		users:       users,
		assignments: assignments,
		log:         log,
	}
}

type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Role     models.Role
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.FullName == "" {
		return models.User{}, fmt.Errorf("%w: full name and email are required", ErrValidation)
	}

	role := input.Role
	if role == "" {
		role = models.RolePatient
	}
	if !role.Valid() {
		return models.User{}, fmt.Errorf("%w: unknown role %q", ErrValidation, input.Role)
	}

	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, ErrEmailTaken
	}

	if err := security.ValidatePasswordPolicy(input.Password); err != nil {
		return models.User{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           ids.New(),
		FullName:     input.FullName,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		Enabled:      true,
		Locked:       false,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("user registered")
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return s.users.FindByEmail(ctx, normalizeEmail(email))
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) ListPatients(ctx context.Context) ([]models.User, error) {
	return s.users.ListByRole(ctx, models.RolePatient)
}

type UpdateProfileInput struct {
	FullName       string
	Email          string
	Age            *int
	Gender         *models.Gender
	ProfilePicture *string
	Specialty      *string
}

// UpdateProfile edits the caller's own profile. Which fields apply depends
// on the caller's role: patients set age/gender/picture, doctors specialty.
func (s *UserService) UpdateProfile(ctx context.Context, email string, input UpdateProfileInput) (models.User, error) {
	if input.Gender != nil && !input.Gender.Valid() {
		return models.User{}, fmt.Errorf("%w: unknown gender %q", ErrValidation, *input.Gender)
	}

	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return models.User{}, err
	}

	newEmail := normalizeEmail(input.Email)
	if newEmail != user.Email {
		taken, err := s.users.ExistsByEmail(ctx, newEmail)
		if err != nil {
			return models.User{}, err
		}
		if taken {
			return models.User{}, ErrEmailTaken
		}
	}

	user.FullName = input.FullName
	user.Email = newEmail

	switch user.Role {
	case models.RolePatient:
		user.Age = input.Age
		user.Gender = input.Gender
		user.ProfilePicture = input.ProfilePicture
	case models.RoleDoctor:
		user.Specialty = input.Specialty
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}

	ok, err := security.VerifyPassword(currentPassword, user.PasswordHash)
	if err != nil || !ok {
		return fmt.Errorf("%w: current password is incorrect", ErrValidation)
	}

	if err := security.ValidatePasswordPolicy(newPassword); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, passwordHash)
}

// AssignPatient links a patient to a doctor. The operation is idempotent.
func (s *UserService) AssignPatient(ctx context.Context, doctorID, patientID string) error {
	if err := s.checkPair(ctx, doctorID, patientID); err != nil {
		return err
	}
	return s.assignments.Add(ctx, doctorID, patientID)
}

func (s *UserService) UnassignPatient(ctx context.Context, doctorID, patientID string) error {
	if err := s.checkPair(ctx, doctorID, patientID); err != nil {
		return err
	}
	return s.assignments.Remove(ctx, doctorID, patientID)
}

func (s *UserService) AssignedPatientIDs(ctx context.Context, doctorID string) ([]string, error) {
	return s.assignments.ListPatientIDs(ctx, doctorID)
}

func (s *UserService) checkPair(ctx context.Context, doctorID, patientID string) error {
	doctor, err := s.users.GetByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return fmt.Errorf("doctor: %w", err)
		}
		return err
	}
	if doctor.Role != models.RoleDoctor {
		return ErrNotDoctor
	}

	patient, err := s.users.GetByID(ctx, patientID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return fmt.Errorf("patient: %w", err)
		}
		return err
	}
	if patient.Role != models.RolePatient {
		return ErrNotPatient
	}
	return nil
}

type UpdatePatientInput struct {
	FullName string
	Email    string
}

// UpdatePatientInfo lets a doctor edit a patient's name and email. Age and
// gender stay patient-owned and are never touched here.
func (s *UserService) UpdatePatientInfo(ctx context.Context, patientID, doctorID string, input UpdatePatientInput) (models.User, error) {
	if err := s.checkPair(ctx, doctorID, patientID); err != nil {
		return models.User{}, err
	}

	patient, err := s.users.GetByID(ctx, patientID)
	if err != nil {
		return models.User{}, err
	}

	newEmail := normalizeEmail(input.Email)
	if newEmail != patient.Email {
		taken, err := s.users.ExistsByEmail(ctx, newEmail)
		if err != nil {
			return models.User{}, err
		}
		if taken {
			return models.User{}, ErrEmailTaken
		}
	}

	patient.FullName = input.FullName
	patient.Email = newEmail

	if err := s.users.UpdateProfile(ctx, patient); err != nil {
		return models.User{}, err
	}
	return patient, nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
