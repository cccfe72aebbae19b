package models

import "time"

type Role string

const (
	RolePatient Role = "PATIENT"
	RoleDoctor  Role = "DOCTOR"
)

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor:
		return true
	}
	return false
}

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash []byte
	Role         Role
	Enabled      bool
	Locked       bool

	// Patient profile fields.
	Age             *int
	Gender          *Gender
	ProfilePicture  *string
	LastConnectedAt *time.Time

	// Doctor profile fields.
	Specialty *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
