package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinicsync/records-api/internal/model"
	"github.com/clinicsync/records-api/internal/repository"
)

const recentConsultationLimit = 5

type DashboardService interface {
	Stats(ctx context.Context, doctorID uuid.UUID) (*model.DashboardStats, error)
}

type Service struct {
	patientRepo      repository.PatientRepository
	consultationRepo repository.ConsultationRepository
	followUpRepo     repository.FollowUpRepository
}

func NewService(
	patientRepo repository.PatientRepository,
	consultationRepo repository.ConsultationRepository,
	followUpRepo repository.FollowUpRepository,
) *Service {
	return &Service{
		patientRepo:      patientRepo,
		consultationRepo: consultationRepo,
		followUpRepo:     followUpRepo,
	}
}

func (s *Service) Stats(ctx context.Context, doctorID uuid.UUID) (*model.DashboardStats, error) {
	patientCount, err := s.patientRepo.CountByDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to count patients: %w", err)
	}

	consultationCount, err := s.consultationRepo.CountByDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to count consultations: %w", err)
	}

	recent, err := s.consultationRepo.Recent(ctx, doctorID, recentConsultationLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent consultations: %w", err)
	}

	activePlans, err := s.followUpRepo.CountActivePlansByDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to count active plans: %w", err)
	}

	return &model.DashboardStats{
		PatientCount:        patientCount,
		ConsultationCount:   consultationCount,
		RecentConsultations: recent,
		ActivePlans:         activePlans,
	}, nil
}
