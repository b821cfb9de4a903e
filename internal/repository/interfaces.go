package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicsync/records-api/internal/model"
)

type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
	GetByEmail(ctx context.Context, email string) (*model.Doctor, error)
}

// PatientRepository scopes every read and write to the owning doctor; a
// patient is never visible outside its doctor's account.
type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, doctorID, id uuid.UUID) (*model.Patient, error)
	Update(ctx context.Context, patient *model.Patient) error
	Delete(ctx context.Context, doctorID, id uuid.UUID) error
	List(ctx context.Context, doctorID uuid.UUID) ([]*model.PatientListItem, error)
	CountByDoctor(ctx context.Context, doctorID uuid.UUID) (int, error)
}

type ConsultationRepository interface {
	Create(ctx context.Context, consultation *model.Consultation) error
	// Get returns a consultation when the patient belongs to the doctor, even
	// if the consultation was authored by a different doctor.
	Get(ctx context.Context, doctorID, id uuid.UUID) (*model.Consultation, error)
	GetAuthored(ctx context.Context, doctorID, id uuid.UUID) (*model.Consultation, error)
	Update(ctx context.Context, consultation *model.Consultation) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.ConsultationWithPatient, error)
	ListByPatientAsc(ctx context.Context, patientID uuid.UUID) ([]*model.Consultation, error)
	Recent(ctx context.Context, doctorID uuid.UUID, limit int) ([]*model.ConsultationWithPatient, error)
	CountByDoctor(ctx context.Context, doctorID uuid.UUID) (int, error)
}

type FollowUpRepository interface {
	CreatePlan(ctx context.Context, plan *model.FollowUpPlan) error
	GetPlan(ctx context.Context, id uuid.UUID) (*model.FollowUpPlan, error)
	GetPlanByConsultation(ctx context.Context, consultationID uuid.UUID) (*model.FollowUpPlan, error)
	UpdatePlanActive(ctx context.Context, id uuid.UUID, active bool) error
	CreateCheckIn(ctx context.Context, checkIn *model.CheckIn) error
	GetCheckIn(ctx context.Context, id uuid.UUID) (*model.CheckIn, error)
	ListCheckIns(ctx context.Context, planID uuid.UUID) ([]*model.CheckIn, error)
	CreateAlert(ctx context.Context, alert *model.Alert) error
	GetAlert(ctx context.Context, id uuid.UUID) (*model.Alert, error)
	GetAlertByCheckIn(ctx context.Context, checkInID uuid.UUID) (*model.Alert, error)
	ResolveAlert(ctx context.Context, id uuid.UUID) error
	CountActivePlansByDoctor(ctx context.Context, doctorID uuid.UUID) (int, error)
}
