package model

import "github.com/google/uuid"

// Patient is a medical record subject owned by exactly one doctor. Only the
// name is required; the remaining profile fields are free-form and optional.
type Patient struct {
	Base
	DoctorID       uuid.UUID `json:"doctor_id" db:"doctor_id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	BloodType      string    `json:"blood_type" db:"blood_type"`
	Allergies      string    `json:"allergies" db:"allergies"`
	Medications    string    `json:"medications" db:"medications"`
	EmergencyPhone string    `json:"emergency_phone" db:"emergency_phone"`
}

// PatientListItem is a patient row augmented with its consultation count for
// list views.
type PatientListItem struct {
	Patient
	ConsultationCount int `json:"consultation_count" db:"consultation_count"`
}

type CreatePatientRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"omitempty,email"`
	BloodType      string `json:"blood_type"`
	Allergies      string `json:"allergies"`
	Medications    string `json:"medications"`
	EmergencyPhone string `json:"emergency_phone"`
}

type UpdatePatientRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"omitempty,email"`
	BloodType      string `json:"blood_type"`
	Allergies      string `json:"allergies"`
	Medications    string `json:"medications"`
	EmergencyPhone string `json:"emergency_phone"`
}
