package consultation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicsync/records-api/internal/model"
	"github.com/clinicsync/records-api/internal/recordfile"
	"github.com/clinicsync/records-api/internal/repository"
	apperrors "github.com/clinicsync/records-api/pkg/errors"
)

type ConsultationService interface {
	CreateConsultation(ctx context.Context, doctorID uuid.UUID, req *model.CreateConsultationRequest) (*model.Consultation, error)
	GetConsultation(ctx context.Context, doctorID, id uuid.UUID) (*model.Consultation, error)
	UpdateConsultation(ctx context.Context, doctorID, id uuid.UUID, req *model.UpdateConsultationRequest) (*model.Consultation, error)
	DeleteConsultation(ctx context.Context, doctorID, id uuid.UUID) error
	ListConsultations(ctx context.Context, doctorID uuid.UUID) ([]*model.ConsultationWithPatient, error)
	RecentConsultations(ctx context.Context, doctorID uuid.UUID, limit int) ([]*model.ConsultationWithPatient, error)
}

type Service struct {
	repo        repository.ConsultationRepository
	patientRepo repository.PatientRepository
}

func NewService(repo repository.ConsultationRepository, patientRepo repository.PatientRepository) *Service {
	return &Service{
		repo:        repo,
		patientRepo: patientRepo,
	}
}

func (s *Service) CreateConsultation(ctx context.Context, doctorID uuid.UUID, req *model.CreateConsultationRequest) (*model.Consultation, error) {
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid patient ID", err)
	}

	// The patient must belong to the authoring doctor.
	if _, err := s.patientRepo.Get(ctx, doctorID, patientID); err != nil {
		return nil, apperrors.NotFound("patient", err)
	}

	date := time.Now()
	if req.Date != "" {
		parsed, ok := recordfile.ParseDate(req.Date)
		if !ok {
			return nil, apperrors.BadRequest("invalid consultation date", nil)
		}
		date = parsed
	}

	consultation := &model.Consultation{
		Base:      model.Base{ID: uuid.New()},
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      date,
		Summary:   req.Summary,
	}

	if err := s.repo.Create(ctx, consultation); err != nil {
		return nil, fmt.Errorf("failed to create consultation: %w", err)
	}
	return consultation, nil
}

// GetConsultation allows viewing consultations authored by other doctors as
// long as the patient belongs to the requesting doctor.
func (s *Service) GetConsultation(ctx context.Context, doctorID, id uuid.UUID) (*model.Consultation, error) {
	consultation, err := s.repo.Get(ctx, doctorID, id)
	if err != nil {
		return nil, apperrors.NotFound("consultation", err)
	}
	return consultation, nil
}

func (s *Service) UpdateConsultation(ctx context.Context, doctorID, id uuid.UUID, req *model.UpdateConsultationRequest) (*model.Consultation, error) {
	consultation, err := s.repo.GetAuthored(ctx, doctorID, id)
	if err != nil {
		return nil, apperrors.NotFound("consultation", err)
	}

	consultation.Summary = req.Summary
	if req.Date != "" {
		parsed, ok := recordfile.ParseDate(req.Date)
		if !ok {
			return nil, apperrors.BadRequest("invalid consultation date", nil)
		}
		consultation.Date = parsed
	}

	if err := s.repo.Update(ctx, consultation); err != nil {
		return nil, fmt.Errorf("failed to update consultation: %w", err)
	}
	return consultation, nil
}

func (s *Service) DeleteConsultation(ctx context.Context, doctorID, id uuid.UUID) error {
	if _, err := s.repo.GetAuthored(ctx, doctorID, id); err != nil {
		return apperrors.NotFound("consultation", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete consultation: %w", err)
	}
	return nil
}

func (s *Service) ListConsultations(ctx context.Context, doctorID uuid.UUID) ([]*model.ConsultationWithPatient, error) {
	consultations, err := s.repo.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list consultations: %w", err)
	}
	return consultations, nil
}

func (s *Service) RecentConsultations(ctx context.Context, doctorID uuid.UUID, limit int) ([]*model.ConsultationWithPatient, error) {
	if limit <= 0 {
		limit = 5
	}
	consultations, err := s.repo.Recent(ctx, doctorID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent consultations: %w", err)
	}
	return consultations, nil
}
