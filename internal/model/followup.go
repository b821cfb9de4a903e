package model

import (
	"time"

	"github.com/google/uuid"
)

// FollowUpPlan is an optional post-consultation monitoring plan. At most one
// plan exists per consultation.
type FollowUpPlan struct {
	Base
	ConsultationID uuid.UUID `json:"consultation_id" db:"consultation_id"`
	Active         bool      `json:"active" db:"active"`
}

// CheckIn is a patient-reported symptom update under a plan, ordered by
// creation time ascending.
type CheckIn struct {
	ID           uuid.UUID `json:"id" db:"id"`
	PlanID       uuid.UUID `json:"plan_id" db:"plan_id"`
	SymptomScore int       `json:"symptom_score" db:"symptom_score"`
	Notes        string    `json:"notes" db:"notes"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Alert is a flag raised from a check-in requiring doctor attention. At most
// one alert exists per check-in.
type Alert struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CheckInID uuid.UUID `json:"check_in_id" db:"check_in_id"`
	Resolved  bool      `json:"resolved" db:"resolved"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateCheckInRequest struct {
	SymptomScore *int   `json:"symptom_score" binding:"required"`
	Notes        string `json:"notes"`
}

type UpdatePlanRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// DashboardStats aggregates the doctor's workload for the dashboard view.
type DashboardStats struct {
	PatientCount        int                        `json:"patient_count"`
	ConsultationCount   int                        `json:"consultation_count"`
	RecentConsultations []*ConsultationWithPatient `json:"recent_consultations"`
	ActivePlans         int                        `json:"active_plans"`
}
