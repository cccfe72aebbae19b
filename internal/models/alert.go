package models

import "time"

type Alert struct {
	ID        string
	PatientID string
	DoctorID  string
	Message   string
	Read      bool
	CreatedAt time.Time
}

type LoginAttempt struct {
	Email         string
	Count         int
	LastAttemptAt time.Time
	Locked        bool
	LockedUntil   *time.Time
}

type PatientNote struct {
	ID        string
	PatientID string
	DoctorID  string
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type PatientTag struct {
	ID        string
	PatientID string
	DoctorID  string
	Tag       string
	CreatedAt time.Time
}
