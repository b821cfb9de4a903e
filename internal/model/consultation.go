package model

import (
	"time"

	"github.com/google/uuid"
)

// Consultation is one dated clinical encounter note. The authoring doctor may
// differ from the doctor who owns the patient: imported histories keep the
// original author when a matching doctor account exists.
type Consultation struct {
	Base
	PatientID uuid.UUID `json:"patient_id" db:"patient_id"`
	DoctorID  uuid.UUID `json:"doctor_id" db:"doctor_id"`
	Date      time.Time `json:"date" db:"date"`
	Summary   string    `json:"summary" db:"summary"`
}

// ConsultationWithPatient is a consultation row joined with the patient name
// for list and dashboard views.
type ConsultationWithPatient struct {
	Consultation
	PatientName string `json:"patient_name" db:"patient_name"`
}

type CreateConsultationRequest struct {
	PatientID string `json:"patient_id" binding:"required"`
	Summary   string `json:"summary" binding:"required"`
	Date      string `json:"date"`
}

type UpdateConsultationRequest struct {
	Summary string `json:"summary" binding:"required"`
	Date    string `json:"date"`
}

// ImportConsultation is one pre-extracted consultation entry submitted with an
// import request. Date is an ISO timestamp string; DoctorName and DoctorEmail
// come from a "Médico que atendió:" line when the file carries one.
type ImportConsultation struct {
	Date        string `json:"date"`
	Summary     string `json:"summary"`
	DoctorName  string `json:"doctorName,omitempty"`
	DoctorEmail string `json:"doctorEmail,omitempty"`
}
