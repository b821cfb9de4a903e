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

type consultationRepository struct {
	db *sqlx.DB
}

func NewConsultationRepository(db *sqlx.DB) repository.ConsultationRepository {
	return &consultationRepository{db: db}
}

func (r *consultationRepository) Create(ctx context.Context, consultation *model.Consultation) error {
	query := `
		INSERT INTO consultations (id, patient_id, doctor_id, date, summary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	consultation.CreatedAt = time.Now()
	consultation.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		consultation.ID,
		consultation.PatientID,
		consultation.DoctorID,
		consultation.Date,
		consultation.Summary,
		consultation.CreatedAt,
		consultation.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create consultation: %w", err)
	}
	return nil
}

// Get joins through the patient so a consultation is visible whenever the
// patient belongs to the doctor, regardless of who authored it.
func (r *consultationRepository) Get(ctx context.Context, doctorID, id uuid.UUID) (*model.Consultation, error) {
	query := `
		SELECT c.* FROM consultations c
		JOIN patients p ON p.id = c.patient_id
		WHERE c.id = $1 AND p.doctor_id = $2
	`
	var consultation model.Consultation
	err := r.db.GetContext(ctx, &consultation, query, id, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get consultation: %w", err)
	}
	return &consultation, nil
}

func (r *consultationRepository) GetAuthored(ctx context.Context, doctorID, id uuid.UUID) (*model.Consultation, error) {
	query := `SELECT * FROM consultations WHERE id = $1 AND doctor_id = $2`
	var consultation model.Consultation
	err := r.db.GetContext(ctx, &consultation, query, id, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get consultation: %w", err)
	}
	return &consultation, nil
}

func (r *consultationRepository) Update(ctx context.Context, consultation *model.Consultation) error {
	query := `UPDATE consultations SET summary = $1, date = $2, updated_at = $3 WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query, consultation.Summary, consultation.Date, time.Now(), consultation.ID)
	if err != nil {
		return fmt.Errorf("failed to update consultation: %w", err)
	}
	return nil
}

func (r *consultationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM consultations WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete consultation: %w", err)
	}
	return nil
}

func (r *consultationRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.ConsultationWithPatient, error) {
	query := `
		SELECT c.*, p.name AS patient_name
		FROM consultations c
		JOIN patients p ON p.id = c.patient_id
		WHERE c.doctor_id = $1
		ORDER BY c.date DESC
	`
	var consultations []*model.ConsultationWithPatient
	err := r.db.SelectContext(ctx, &consultations, query, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list consultations: %w", err)
	}
	return consultations, nil
}

// ListByPatientAsc returns the patient's full history in chronological order,
// the order the exporter renders.
func (r *consultationRepository) ListByPatientAsc(ctx context.Context, patientID uuid.UUID) ([]*model.Consultation, error) {
	query := `SELECT * FROM consultations WHERE patient_id = $1 ORDER BY date ASC`
	var consultations []*model.Consultation
	err := r.db.SelectContext(ctx, &consultations, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient consultations: %w", err)
	}
	return consultations, nil
}

func (r *consultationRepository) Recent(ctx context.Context, doctorID uuid.UUID, limit int) ([]*model.ConsultationWithPatient, error) {
	query := `
		SELECT c.*, p.name AS patient_name
		FROM consultations c
		JOIN patients p ON p.id = c.patient_id
		WHERE c.doctor_id = $1
		ORDER BY c.date DESC
		LIMIT $2
	`
	var consultations []*model.ConsultationWithPatient
	err := r.db.SelectContext(ctx, &consultations, query, doctorID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent consultations: %w", err)
	}
	return consultations, nil
}

func (r *consultationRepository) CountByDoctor(ctx context.Context, doctorID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM consultations WHERE doctor_id = $1`
	var count int
	err := r.db.GetContext(ctx, &count, query, doctorID)
	if err != nil {
		return 0, fmt.Errorf("failed to count consultations: %w", err)
	}
	return count, nil
}
