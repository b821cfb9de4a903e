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

type patientRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (id, doctor_id, name, email, blood_type, allergies, medications, emergency_phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		patient.ID,
		patient.DoctorID,
		patient.Name,
		patient.Email,
		patient.BloodType,
		patient.Allergies,
		patient.Medications,
		patient.EmergencyPhone,
		patient.CreatedAt,
		patient.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, doctorID, id uuid.UUID) (*model.Patient, error) {
	query := `SELECT * FROM patients WHERE id = $1 AND doctor_id = $2`
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, id, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET name = $1, email = $2, blood_type = $3, allergies = $4, medications = $5, emergency_phone = $6, updated_at = $7
		WHERE id = $8 AND doctor_id = $9
	`
	_, err := r.db.ExecContext(ctx, query,
		patient.Name,
		patient.Email,
		patient.BloodType,
		patient.Allergies,
		patient.Medications,
		patient.EmergencyPhone,
		time.Now(),
		patient.ID,
		patient.DoctorID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, doctorID, id uuid.UUID) error {
	query := `DELETE FROM patients WHERE id = $1 AND doctor_id = $2`
	_, err := r.db.ExecContext(ctx, query, id, doctorID)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return nil
}

func (r *patientRepository) List(ctx context.Context, doctorID uuid.UUID) ([]*model.PatientListItem, error) {
	query := `
		SELECT p.*, COUNT(c.id) AS consultation_count
		FROM patients p
		LEFT JOIN consultations c ON c.patient_id = p.id
		WHERE p.doctor_id = $1
		GROUP BY p.id
		ORDER BY p.name ASC
	`
	var patients []*model.PatientListItem
	err := r.db.SelectContext(ctx, &patients, query, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) CountByDoctor(ctx context.Context, doctorID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM patients WHERE doctor_id = $1`
	var count int
	err := r.db.GetContext(ctx, &count, query, doctorID)
	if err != nil {
		return 0, fmt.Errorf("failed to count patients: %w", err)
	}
	return count, nil
}
