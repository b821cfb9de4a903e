package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/clinicsync/records-api/internal/model"
	"github.com/clinicsync/records-api/internal/repository"
)

type followUpRepository struct {
	db *sqlx.DB
}

func NewFollowUpRepository(db *sqlx.DB) repository.FollowUpRepository {
	return &followUpRepository{db: db}
}

func (r *followUpRepository) CreatePlan(ctx context.Context, plan *model.FollowUpPlan) error {
	query := `
		INSERT INTO follow_up_plans (id, consultation_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	plan.CreatedAt = time.Now()
	plan.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		plan.ID,
		plan.ConsultationID,
		plan.Active,
		plan.CreatedAt,
		plan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create follow-up plan: %w", err)
	}
	return nil
}

func (r *followUpRepository) GetPlan(ctx context.Context, id uuid.UUID) (*model.FollowUpPlan, error) {
	query := `SELECT * FROM follow_up_plans WHERE id = $1`
	var plan model.FollowUpPlan
	err := r.db.GetContext(ctx, &plan, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get follow-up plan: %w", err)
	}
	return &plan, nil
}

func (r *followUpRepository) GetPlanByConsultation(ctx context.Context, consultationID uuid.UUID) (*model.FollowUpPlan, error) {
	query := `SELECT * FROM follow_up_plans WHERE consultation_id = $1`
	var plan model.FollowUpPlan
	err := r.db.GetContext(ctx, &plan, query, consultationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get follow-up plan by consultation: %w", err)
	}
	return &plan, nil
}

func (r *followUpRepository) UpdatePlanActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE follow_up_plans SET active = $1, updated_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, active, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update follow-up plan: %w", err)
	}
	return nil
}

func (r *followUpRepository) CreateCheckIn(ctx context.Context, checkIn *model.CheckIn) error {
	query := `
		INSERT INTO check_ins (id, plan_id, symptom_score, notes, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	checkIn.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		checkIn.ID,
		checkIn.PlanID,
		checkIn.SymptomScore,
		checkIn.Notes,
		checkIn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create check-in: %w", err)
	}
	return nil
}

func (r *followUpRepository) GetCheckIn(ctx context.Context, id uuid.UUID) (*model.CheckIn, error) {
	query := `SELECT * FROM check_ins WHERE id = $1`
	var checkIn model.CheckIn
	err := r.db.GetContext(ctx, &checkIn, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get check-in: %w", err)
	}
	return &checkIn, nil
}

// ListCheckIns orders ascending by creation time, the order check-ins render
// in an exported record.
func (r *followUpRepository) ListCheckIns(ctx context.Context, planID uuid.UUID) ([]*model.CheckIn, error) {
	query := `SELECT * FROM check_ins WHERE plan_id = $1 ORDER BY created_at ASC`
	var checkIns []*model.CheckIn
	err := r.db.SelectContext(ctx, &checkIns, query, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}
	return checkIns, nil
}

func (r *followUpRepository) CreateAlert(ctx context.Context, alert *model.Alert) error {
	query := `
		INSERT INTO alerts (id, check_in_id, resolved, created_at)
		VALUES ($1, $2, $3, $4)
	`
	alert.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		alert.ID,
		alert.CheckInID,
		alert.Resolved,
		alert.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

func (r *followUpRepository) GetAlert(ctx context.Context, id uuid.UUID) (*model.Alert, error) {
	query := `SELECT * FROM alerts WHERE id = $1`
	var alert model.Alert
	err := r.db.GetContext(ctx, &alert, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}
	return &alert, nil
}

func (r *followUpRepository) GetAlertByCheckIn(ctx context.Context, checkInID uuid.UUID) (*model.Alert, error) {
	query := `SELECT * FROM alerts WHERE check_in_id = $1`
	var alert model.Alert
	err := r.db.GetContext(ctx, &alert, query, checkInID)
	if err != nil {
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}
	return &alert, nil
}

func (r *followUpRepository) ResolveAlert(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE alerts SET resolved = TRUE WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to resolve alert: %w", err)
	}
	return nil
}

func (r *followUpRepository) CountActivePlansByDoctor(ctx context.Context, doctorID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*) FROM follow_up_plans f
		JOIN consultations c ON c.id = f.consultation_id
		WHERE f.active = TRUE AND c.doctor_id = $1
	`
	var count int
	err := r.db.GetContext(ctx, &count, query, doctorID)
	if err != nil {
		return 0, fmt.Errorf("failed to count active plans: %w", err)
	}
	return count, nil
}
