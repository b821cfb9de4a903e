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

type doctorRepository struct {
	db *sqlx.DB
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (id, name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	doctor.CreatedAt = time.Now()
	doctor.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		doctor.ID,
		doctor.Name,
		doctor.Email,
		doctor.PasswordHash,
		doctor.CreatedAt,
		doctor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	query := `SELECT * FROM doctors WHERE id = $1`
	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByEmail(ctx context.Context, email string) (*model.Doctor, error) {
	query := `SELECT * FROM doctors WHERE email = $1`
	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor by email: %w", err)
	}
	return &doctor, nil
}
