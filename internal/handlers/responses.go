package handlers

import (
	"time"

	"emocare/api/internal/models"
)

type userResponse struct {
	ID              string     `json:"id"`
	FullName        string     `json:"fullName"`
	Email           string     `json:"email"`
	Role            string     `json:"role"`
	Enabled         bool       `json:"enabled"`
	Age             *int       `json:"age,omitempty"`
	Gender          *string    `json:"gender,omitempty"`
	ProfilePicture  *string    `json:"profilePicture,omitempty"`
	Specialty       *string    `json:"specialty,omitempty"`
	LastConnectedAt *time.Time `json:"lastConnectedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

func toUserResponse(user models.User) userResponse {
	resp := userResponse{
		ID:              user.ID,
		FullName:        user.FullName,
		Email:           user.Email,
		Role:            string(user.Role),
		Enabled:         user.Enabled,
		Age:             user.Age,
		ProfilePicture:  user.ProfilePicture,
		Specialty:       user.Specialty,
		LastConnectedAt: user.LastConnectedAt,
		CreatedAt:       user.CreatedAt,
	}
	if user.Gender != nil {
		gender := string(*user.Gender)
		resp.Gender = &gender
	}
	return resp
}

func toUserResponses(users []models.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, user := range users {
		out = append(out, toUserResponse(user))
	}
	return out
}

type emotionResponse struct {
	ID         string    `json:"id"`
	PatientID  string    `json:"patientId"`
	Type       string    `json:"type"`
	Confidence float64   `json:"confidence"`
	RecordedAt time.Time `json:"recordedAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toEmotionResponse(emotion models.Emotion) emotionResponse {
	return emotionResponse{
		ID:         emotion.ID,
		PatientID:  emotion.PatientID,
		Type:       string(emotion.Type),
		Confidence: emotion.Confidence,
		RecordedAt: emotion.RecordedAt,
		CreatedAt:  emotion.CreatedAt,
	}
}

type alertResponse struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patientId"`
	DoctorID  string    `json:"doctorId"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

func toAlertResponse(alert models.Alert) alertResponse {
	return alertResponse{
		ID:        alert.ID,
		PatientID: alert.PatientID,
		DoctorID:  alert.DoctorID,
		Message:   alert.Message,
		Read:      alert.Read,
		CreatedAt: alert.CreatedAt,
	}
}

func toAlertResponses(alerts []models.Alert) []alertResponse {
	out := make([]alertResponse, 0, len(alerts))
	for _, alert := range alerts {
		out = append(out, toAlertResponse(alert))
	}
	return out
}

type recordResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	Emotion          string    `json:"emotion"`
	IntensityLevel   int       `json:"intensityLevel"`
	Notes            *string   `json:"notes,omitempty"`
	Location         *string   `json:"location,omitempty"`
	TriggerEvent     *string   `json:"triggerEvent,omitempty"`
	PhysicalSymptoms *string   `json:"physicalSymptoms,omitempty"`
	RecordedAt       time.Time `json:"recordedAt"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func toRecordResponse(record models.EmotionRecord) recordResponse {
	return recordResponse{
		ID:               record.ID,
		UserID:           record.UserID,
		Emotion:          string(record.Emotion),
		IntensityLevel:   record.IntensityLevel,
		Notes:            record.Notes,
		Location:         record.Location,
		TriggerEvent:     record.TriggerEvent,
		PhysicalSymptoms: record.PhysicalSymptoms,
		RecordedAt:       record.RecordedAt,
		CreatedAt:        record.CreatedAt,
		UpdatedAt:        record.UpdatedAt,
	}
}

func toRecordResponses(records []models.EmotionRecord) []recordResponse {
	out := make([]recordResponse, 0, len(records))
	for _, record := range records {
		out = append(out, toRecordResponse(record))
	}
	return out
}

type noteResponse struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patientId"`
	DoctorID  string    `json:"doctorId"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toNoteResponse(note models.PatientNote) noteResponse {
	return noteResponse{
		ID:        note.ID,
		PatientID: note.PatientID,
		DoctorID:  note.DoctorID,
		Note:      note.Note,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

func toNoteResponses(notes []models.PatientNote) []noteResponse {
	out := make([]noteResponse, 0, len(notes))
	for _, note := range notes {
		out = append(out, toNoteResponse(note))
	}
	return out
}

type tagResponse struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patientId"`
	DoctorID  string    `json:"doctorId"`
	Tag       string    `json:"tag"`
	CreatedAt time.Time `json:"createdAt"`
}

func toTagResponse(tag models.PatientTag) tagResponse {
	return tagResponse{
		ID:        tag.ID,
		PatientID: tag.PatientID,
		DoctorID:  tag.DoctorID,
		Tag:       tag.Tag,
		CreatedAt: tag.CreatedAt,
	}
}

func toTagResponses(tags []models.PatientTag) []tagResponse {
	out := make([]tagResponse, 0, len(tags))
	for _, tag := range tags {
		out = append(out, toTagResponse(tag))
	}
	return out
}
