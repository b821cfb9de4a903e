package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinicsync/records-api/internal/model"
	"github.com/clinicsync/records-api/internal/recordfile"
	"github.com/clinicsync/records-api/internal/repository"
	apperrors "github.com/clinicsync/records-api/pkg/errors"
	"github.com/clinicsync/records-api/pkg/logger"
)

type PatientService interface {
	CreatePatient(ctx context.Context, doctorID uuid.UUID, req *model.CreatePatientRequest) (*model.Patient, error)
	GetPatient(ctx context.Context, doctorID, id uuid.UUID) (*model.Patient, error)
	UpdatePatient(ctx context.Context, doctorID, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error)
	DeletePatient(ctx context.Context, doctorID, id uuid.UUID) error
	ListPatients(ctx context.Context, doctorID uuid.UUID) ([]*model.PatientListItem, error)
	ExportRecord(ctx context.Context, doctorID, id uuid.UUID) (*ExportResult, error)
	ImportRecord(ctx context.Context, doctorID uuid.UUID, fileContent string, consultations []model.ImportConsultation) (uuid.UUID, error)
	PreviewImport(fileContent string) *recordfile.Preview
}

type Service struct {
	repo             repository.PatientRepository
	consultationRepo repository.ConsultationRepository
	followUpRepo     repository.FollowUpRepository
	doctorRepo       repository.DoctorRepository
	logger           *logger.Logger
}

func NewService(
	repo repository.PatientRepository,
	consultationRepo repository.ConsultationRepository,
	followUpRepo repository.FollowUpRepository,
	doctorRepo repository.DoctorRepository,
	logger *logger.Logger,
) *Service {
	return &Service{
		repo:             repo,
		consultationRepo: consultationRepo,
		followUpRepo:     followUpRepo,
		doctorRepo:       doctorRepo,
		logger:           logger,
	}
}

func (s *Service) CreatePatient(ctx context.Context, doctorID uuid.UUID, req *model.CreatePatientRequest) (*model.Patient, error) {
	patient := &model.Patient{
		Base:           model.Base{ID: uuid.New()},
		DoctorID:       doctorID,
		Name:           req.Name,
		Email:          req.Email,
		BloodType:      req.BloodType,
		Allergies:      req.Allergies,
		Medications:    req.Medications,
		EmergencyPhone: req.EmergencyPhone,
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, doctorID, id uuid.UUID) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, doctorID, id)
	if err != nil {
		return nil, apperrors.NotFound("patient", err)
	}
	return patient, nil
}

func (s *Service) UpdatePatient(ctx context.Context, doctorID, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, doctorID, id)
	if err != nil {
		return nil, apperrors.NotFound("patient", err)
	}

	patient.Name = req.Name
	patient.Email = req.Email
	patient.BloodType = req.BloodType
	patient.Allergies = req.Allergies
	patient.Medications = req.Medications
	patient.EmergencyPhone = req.EmergencyPhone

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return patient, nil
}

func (s *Service) DeletePatient(ctx context.Context, doctorID, id uuid.UUID) error {
	if _, err := s.repo.Get(ctx, doctorID, id); err != nil {
		return apperrors.NotFound("patient", err)
	}
	if err := s.repo.Delete(ctx, doctorID, id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return nil
}

func (s *Service) ListPatients(ctx context.Context, doctorID uuid.UUID) ([]*model.PatientListItem, error) {
	patients, err := s.repo.List(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}
