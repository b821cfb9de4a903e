package followup

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinicsync/records-api/internal/model"
	"github.com/clinicsync/records-api/internal/repository"
	apperrors "github.com/clinicsync/records-api/pkg/errors"
)

type FollowUpService interface {
	CreatePlan(ctx context.Context, doctorID, consultationID uuid.UUID) (*model.FollowUpPlan, error)
	SetPlanActive(ctx context.Context, doctorID, planID uuid.UUID, active bool) (*model.FollowUpPlan, error)
	RecordCheckIn(ctx context.Context, doctorID, planID uuid.UUID, req *model.CreateCheckInRequest) (*model.CheckIn, error)
	ListCheckIns(ctx context.Context, doctorID, planID uuid.UUID) ([]*model.CheckIn, error)
	RaiseAlert(ctx context.Context, doctorID, checkInID uuid.UUID) (*model.Alert, error)
	ResolveAlert(ctx context.Context, doctorID, alertID uuid.UUID) error
}

type Service struct {
	repo             repository.FollowUpRepository
	consultationRepo repository.ConsultationRepository
}

func NewService(repo repository.FollowUpRepository, consultationRepo repository.ConsultationRepository) *Service {
	return &Service{
		repo:             repo,
		consultationRepo: consultationRepo,
	}
}

// CreatePlan attaches a follow-up plan to a consultation. A consultation has
// at most one plan.
func (s *Service) CreatePlan(ctx context.Context, doctorID, consultationID uuid.UUID) (*model.FollowUpPlan, error) {
	if _, err := s.consultationRepo.Get(ctx, doctorID, consultationID); err != nil {
		return nil, apperrors.NotFound("consultation", err)
	}

	if existing, err := s.repo.GetPlanByConsultation(ctx, consultationID); err == nil && existing != nil {
		return nil, apperrors.BadRequest("consultation already has a follow-up plan", nil)
	}

	plan := &model.FollowUpPlan{
		Base:           model.Base{ID: uuid.New()},
		ConsultationID: consultationID,
		Active:         true,
	}

	if err := s.repo.CreatePlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to create follow-up plan: %w", err)
	}
	return plan, nil
}

func (s *Service) SetPlanActive(ctx context.Context, doctorID, planID uuid.UUID, active bool) (*model.FollowUpPlan, error) {
	plan, err := s.getOwnedPlan(ctx, doctorID, planID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdatePlanActive(ctx, planID, active); err != nil {
		return nil, fmt.Errorf("failed to update follow-up plan: %w", err)
	}
	plan.Active = active
	return plan, nil
}

func (s *Service) RecordCheckIn(ctx context.Context, doctorID, planID uuid.UUID, req *model.CreateCheckInRequest) (*model.CheckIn, error) {
	if _, err := s.getOwnedPlan(ctx, doctorID, planID); err != nil {
		return nil, err
	}

	if req.SymptomScore == nil || *req.SymptomScore < 0 || *req.SymptomScore > 10 {
		return nil, apperrors.BadRequest("symptom score must be between 0 and 10", nil)
	}

	checkIn := &model.CheckIn{
		ID:           uuid.New(),
		PlanID:       planID,
		SymptomScore: *req.SymptomScore,
		Notes:        req.Notes,
	}

	if err := s.repo.CreateCheckIn(ctx, checkIn); err != nil {
		return nil, fmt.Errorf("failed to record check-in: %w", err)
	}
	return checkIn, nil
}

func (s *Service) ListCheckIns(ctx context.Context, doctorID, planID uuid.UUID) ([]*model.CheckIn, error) {
	if _, err := s.getOwnedPlan(ctx, doctorID, planID); err != nil {
		return nil, err
	}

	checkIns, err := s.repo.ListCheckIns(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}
	return checkIns, nil
}

// RaiseAlert flags a check-in for doctor attention. A check-in has at most
// one alert.
func (s *Service) RaiseAlert(ctx context.Context, doctorID, checkInID uuid.UUID) (*model.Alert, error) {
	checkIn, err := s.repo.GetCheckIn(ctx, checkInID)
	if err != nil {
		return nil, apperrors.NotFound("check-in", err)
	}
	if _, err := s.getOwnedPlan(ctx, doctorID, checkIn.PlanID); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetAlertByCheckIn(ctx, checkInID); err == nil && existing != nil {
		return nil, apperrors.BadRequest("check-in already has an alert", nil)
	}

	alert := &model.Alert{
		ID:        uuid.New(),
		CheckInID: checkInID,
		Resolved:  false,
	}

	if err := s.repo.CreateAlert(ctx, alert); err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}
	return alert, nil
}

func (s *Service) ResolveAlert(ctx context.Context, doctorID, alertID uuid.UUID) error {
	alert, err := s.repo.GetAlert(ctx, alertID)
	if err != nil {
		return apperrors.NotFound("alert", err)
	}
	checkIn, err := s.repo.GetCheckIn(ctx, alert.CheckInID)
	if err != nil {
		return apperrors.NotFound("alert", err)
	}
	if _, err := s.getOwnedPlan(ctx, doctorID, checkIn.PlanID); err != nil {
		return err
	}

	if err := s.repo.ResolveAlert(ctx, alertID); err != nil {
		return fmt.Errorf("failed to resolve alert: %w", err)
	}
	return nil
}

// getOwnedPlan returns the plan only when its consultation's patient belongs
// to the doctor.
func (s *Service) getOwnedPlan(ctx context.Context, doctorID, planID uuid.UUID) (*model.FollowUpPlan, error) {
	plan, err := s.repo.GetPlan(ctx, planID)
	if err != nil {
		return nil, apperrors.NotFound("follow-up plan", err)
	}
	if _, err := s.consultationRepo.Get(ctx, doctorID, plan.ConsultationID); err != nil {
		return nil, apperrors.NotFound("follow-up plan", err)
	}
	return plan, nil
}
