package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account locked due to too many failed login attempts")
	ErrEmailTaken         = errors.New("email already exists")
	ErrForbidden          = errors.New("forbidden")
	ErrNoDoctorAvailable  = errors.New("no doctor available in the system")
	ErrNotPatient         = errors.New("user is not a patient")
	ErrNotDoctor          = errors.New("user is not a doctor")
	ErrTagExists          = errors.New("tag already exists for this patient")
	ErrValidation         = errors.New("validation failed")
)
