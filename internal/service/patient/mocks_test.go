package patient

import (
	"context"
	"database/sql"
	"errors"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/clinicsync/records-api/internal/model"
	"github.com/clinicsync/records-api/internal/repository"
)

// Compile-time checks that the mocks implement the repository contracts.
var (
	_ repository.PatientRepository      = (*MockPatientRepository)(nil)
	_ repository.DoctorRepository       = (*MockDoctorRepository)(nil)
	_ repository.ConsultationRepository = (*MockConsultationRepository)(nil)
	_ repository.FollowUpRepository     = (*MockFollowUpRepository)(nil)
)

type MockPatientRepository struct {
	CreateFunc        func(ctx context.Context, patient *model.Patient) error
	GetFunc           func(ctx context.Context, doctorID, id uuid.UUID) (*model.Patient, error)
	UpdateFunc        func(ctx context.Context, patient *model.Patient) error
	DeleteFunc        func(ctx context.Context, doctorID, id uuid.UUID) error
	ListFunc          func(ctx context.Context, doctorID uuid.UUID) ([]*model.PatientListItem, error)
	CountByDoctorFunc func(ctx context.Context, doctorID uuid.UUID) (int, error)

	CreateCallCount int32
}

func (m *MockPatientRepository) Create(ctx context.Context, patient *model.Patient) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, patient)
	}
	return nil
}

func (m *MockPatientRepository) Get(ctx context.Context, doctorID, id uuid.UUID) (*model.Patient, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, doctorID, id)
	}
	return nil, errors.New("GetFunc not implemented in mock")
}

func (m *MockPatientRepository) Update(ctx context.Context, patient *model.Patient) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, patient)
	}
	return errors.New("UpdateFunc not implemented in mock")
}

func (m *MockPatientRepository) Delete(ctx context.Context, doctorID, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, doctorID, id)
	}
	return errors.New("DeleteFunc not implemented in mock")
}

func (m *MockPatientRepository) List(ctx context.Context, doctorID uuid.UUID) ([]*model.PatientListItem, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, doctorID)
	}
	return nil, nil
}

func (m *MockPatientRepository) CountByDoctor(ctx context.Context, doctorID uuid.UUID) (int, error) {
	if m.CountByDoctorFunc != nil {
		return m.CountByDoctorFunc(ctx, doctorID)
	}
	return 0, nil
}

type MockDoctorRepository struct {
	CreateFunc     func(ctx context.Context, doctor *model.Doctor) error
	GetFunc        func(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
	GetByEmailFunc func(ctx context.Context, email string) (*model.Doctor, error)
}

func (m *MockDoctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, doctor)
	}
	return nil
}

func (m *MockDoctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, errors.New("GetFunc not implemented in mock")
}

func (m *MockDoctorRepository) GetByEmail(ctx context.Context, email string) (*model.Doctor, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, errors.New("GetByEmailFunc not implemented in mock")
}

type MockConsultationRepository struct {
	CreateFunc           func(ctx context.Context, consultation *model.Consultation) error
	GetFunc              func(ctx context.Context, doctorID, id uuid.UUID) (*model.Consultation, error)
	GetAuthoredFunc      func(ctx context.Context, doctorID, id uuid.UUID) (*model.Consultation, error)
	UpdateFunc           func(ctx context.Context, consultation *model.Consultation) error
	DeleteFunc           func(ctx context.Context, id uuid.UUID) error
	ListByDoctorFunc     func(ctx context.Context, doctorID uuid.UUID) ([]*model.ConsultationWithPatient, error)
	ListByPatientAscFunc func(ctx context.Context, patientID uuid.UUID) ([]*model.Consultation, error)
	RecentFunc           func(ctx context.Context, doctorID uuid.UUID, limit int) ([]*model.ConsultationWithPatient, error)
	CountByDoctorFunc    func(ctx context.Context, doctorID uuid.UUID) (int, error)

	CreateCallCount int32
}

func (m *MockConsultationRepository) Create(ctx context.Context, consultation *model.Consultation) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, consultation)
	}
	return nil
}

func (m *MockConsultationRepository) Get(ctx context.Context, doctorID, id uuid.UUID) (*model.Consultation, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, doctorID, id)
	}
	return nil, errors.New("GetFunc not implemented in mock")
}

func (m *MockConsultationRepository) GetAuthored(ctx context.Context, doctorID, id uuid.UUID) (*model.Consultation, error) {
	if m.GetAuthoredFunc != nil {
		return m.GetAuthoredFunc(ctx, doctorID, id)
	}
	return nil, errors.New("GetAuthoredFunc not implemented in mock")
}

func (m *MockConsultationRepository) Update(ctx context.Context, consultation *model.Consultation) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, consultation)
	}
	return errors.New("UpdateFunc not implemented in mock")
}

func (m *MockConsultationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return errors.New("DeleteFunc not implemented in mock")
}

func (m *MockConsultationRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.ConsultationWithPatient, error) {
	if m.ListByDoctorFunc != nil {
		return m.ListByDoctorFunc(ctx, doctorID)
	}
	return nil, nil
}

func (m *MockConsultationRepository) ListByPatientAsc(ctx context.Context, patientID uuid.UUID) ([]*model.Consultation, error) {
	if m.ListByPatientAscFunc != nil {
		return m.ListByPatientAscFunc(ctx, patientID)
	}
	return nil, nil
}

func (m *MockConsultationRepository) Recent(ctx context.Context, doctorID uuid.UUID, limit int) ([]*model.ConsultationWithPatient, error) {
	if m.RecentFunc != nil {
		return m.RecentFunc(ctx, doctorID, limit)
	}
	return nil, nil
}

func (m *MockConsultationRepository) CountByDoctor(ctx context.Context, doctorID uuid.UUID) (int, error) {
	if m.CountByDoctorFunc != nil {
		return m.CountByDoctorFunc(ctx, doctorID)
	}
	return 0, nil
}

type MockFollowUpRepository struct {
	CreatePlanFunc               func(ctx context.Context, plan *model.FollowUpPlan) error
	GetPlanFunc                  func(ctx context.Context, id uuid.UUID) (*model.FollowUpPlan, error)
	GetPlanByConsultationFunc    func(ctx context.Context, consultationID uuid.UUID) (*model.FollowUpPlan, error)
	UpdatePlanActiveFunc         func(ctx context.Context, id uuid.UUID, active bool) error
	CreateCheckInFunc            func(ctx context.Context, checkIn *model.CheckIn) error
	GetCheckInFunc               func(ctx context.Context, id uuid.UUID) (*model.CheckIn, error)
	ListCheckInsFunc             func(ctx context.Context, planID uuid.UUID) ([]*model.CheckIn, error)
	CreateAlertFunc              func(ctx context.Context, alert *model.Alert) error
	GetAlertFunc                 func(ctx context.Context, id uuid.UUID) (*model.Alert, error)
	GetAlertByCheckInFunc        func(ctx context.Context, checkInID uuid.UUID) (*model.Alert, error)
	ResolveAlertFunc             func(ctx context.Context, id uuid.UUID) error
	CountActivePlansByDoctorFunc func(ctx context.Context, doctorID uuid.UUID) (int, error)
}

func (m *MockFollowUpRepository) CreatePlan(ctx context.Context, plan *model.FollowUpPlan) error {
	if m.CreatePlanFunc != nil {
		return m.CreatePlanFunc(ctx, plan)
	}
	return nil
}

func (m *MockFollowUpRepository) GetPlan(ctx context.Context, id uuid.UUID) (*model.FollowUpPlan, error) {
	if m.GetPlanFunc != nil {
		return m.GetPlanFunc(ctx, id)
	}
	return nil, errors.New("GetPlanFunc not implemented in mock")
}

func (m *MockFollowUpRepository) GetPlanByConsultation(ctx context.Context, consultationID uuid.UUID) (*model.FollowUpPlan, error) {
	if m.GetPlanByConsultationFunc != nil {
		return m.GetPlanByConsultationFunc(ctx, consultationID)
	}
	return nil, sql.ErrNoRows
}

func (m *MockFollowUpRepository) UpdatePlanActive(ctx context.Context, id uuid.UUID, active bool) error {
	if m.UpdatePlanActiveFunc != nil {
		return m.UpdatePlanActiveFunc(ctx, id, active)
	}
	return nil
}

func (m *MockFollowUpRepository) CreateCheckIn(ctx context.Context, checkIn *model.CheckIn) error {
	if m.CreateCheckInFunc != nil {
		return m.CreateCheckInFunc(ctx, checkIn)
	}
	return nil
}

func (m *MockFollowUpRepository) GetCheckIn(ctx context.Context, id uuid.UUID) (*model.CheckIn, error) {
	if m.GetCheckInFunc != nil {
		return m.GetCheckInFunc(ctx, id)
	}
	return nil, errors.New("GetCheckInFunc not implemented in mock")
}

func (m *MockFollowUpRepository) ListCheckIns(ctx context.Context, planID uuid.UUID) ([]*model.CheckIn, error) {
	if m.ListCheckInsFunc != nil {
		return m.ListCheckInsFunc(ctx, planID)
	}
	return nil, nil
}

func (m *MockFollowUpRepository) CreateAlert(ctx context.Context, alert *model.Alert) error {
	if m.CreateAlertFunc != nil {
		return m.CreateAlertFunc(ctx, alert)
	}
	return nil
}

func (m *MockFollowUpRepository) GetAlert(ctx context.Context, id uuid.UUID) (*model.Alert, error) {
	if m.GetAlertFunc != nil {
		return m.GetAlertFunc(ctx, id)
	}
	return nil, errors.New("GetAlertFunc not implemented in mock")
}

func (m *MockFollowUpRepository) GetAlertByCheckIn(ctx context.Context, checkInID uuid.UUID) (*model.Alert, error) {
	if m.GetAlertByCheckInFunc != nil {
		return m.GetAlertByCheckInFunc(ctx, checkInID)
	}
	return nil, sql.ErrNoRows
}

func (m *MockFollowUpRepository) ResolveAlert(ctx context.Context, id uuid.UUID) error {
	if m.ResolveAlertFunc != nil {
		return m.ResolveAlertFunc(ctx, id)
	}
	return nil
}

func (m *MockFollowUpRepository) CountActivePlansByDoctor(ctx context.Context, doctorID uuid.UUID) (int, error) {
	if m.CountActivePlansByDoctorFunc != nil {
		return m.CountActivePlansByDoctorFunc(ctx, doctorID)
	}
	return 0, nil
}
