package patient

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicsync/records-api/internal/model"
	apperrors "github.com/clinicsync/records-api/pkg/errors"
)

func importFileContent() string {
	return strings.Join([]string{
		"ARCHIVO MÉDICO - MARÍA GARCÍA",
		"INFORMACIÓN DEL PACIENTE",
		"Nombre: María García",
		"Email: maria.garcia@example.com",
		"Tipo de sangre: O+",
		"HISTORIAL DE CONSULTAS",
	}, "\n")
}

func TestImportRecord(t *testing.T) {
	doctorID := uuid.New()

	var createdPatient *model.Patient
	patients := &MockPatientRepository{
		CreateFunc: func(ctx context.Context, p *model.Patient) error {
			createdPatient = p
			return nil
		},
	}
	var created []*model.Consultation
	consultations := &MockConsultationRepository{
		CreateFunc: func(ctx context.Context, c *model.Consultation) error {
			created = append(created, c)
			return nil
		},
	}

	svc := newTestService(patients, consultations, &MockFollowUpRepository{}, &MockDoctorRepository{})

	id, err := svc.ImportRecord(context.Background(), doctorID, importFileContent(), []model.ImportConsultation{
		{Date: "2 de diciembre de 2025, 19:41", Summary: "Dolor lumbar persistente."},
		{Date: "2026-01-14T11:05", Summary: "Revisión."},
	})
	require.NoError(t, err)

	require.NotNil(t, createdPatient)
	assert.Equal(t, id, createdPatient.ID)
	assert.Equal(t, doctorID, createdPatient.DoctorID)
	assert.Equal(t, "María García", createdPatient.Name)
	assert.Equal(t, "maria.garcia@example.com", createdPatient.Email)
	assert.Equal(t, "O+", createdPatient.BloodType)

	require.Len(t, created, 2)
	assert.Equal(t, time.Date(2025, time.December, 2, 19, 41, 0, 0, time.Local), created[0].Date)
	assert.Equal(t, "Dolor lumbar persistente.", created[0].Summary)
	assert.Equal(t, doctorID, created[0].DoctorID)
	assert.Equal(t, createdPatient.ID, created[0].PatientID)
	assert.Equal(t, time.Date(2026, time.January, 14, 11, 5, 0, 0, time.Local), created[1].Date)
}

func TestImportRecordMissingName(t *testing.T) {
	patients := &MockPatientRepository{}
	svc := newTestService(patients, &MockConsultationRepository{}, &MockFollowUpRepository{}, &MockDoctorRepository{})

	_, err := svc.ImportRecord(context.Background(), uuid.New(), "texto sin estructura", nil)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
	assert.Zero(t, patients.CreateCallCount)
}

func TestImportRecordSkipsInvalidConsultations(t *testing.T) {
	doctorID := uuid.New()

	var created []*model.Consultation
	consultations := &MockConsultationRepository{
		CreateFunc: func(ctx context.Context, c *model.Consultation) error {
			created = append(created, c)
			return nil
		},
	}

	svc := newTestService(&MockPatientRepository{}, consultations, &MockFollowUpRepository{}, &MockDoctorRepository{})

	id, err := svc.ImportRecord(context.Background(), doctorID, importFileContent(), []model.ImportConsultation{
		{Date: "no es una fecha", Summary: "Fecha rota."},
		{Date: "2026-01-14", Summary: "   "},
		{Date: "2026-01-15", Summary: "La única válida."},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	require.Len(t, created, 1)
	assert.Equal(t, "La única válida.", created[0].Summary)
}

func TestImportRecordContinuesPastPersistFailure(t *testing.T) {
	doctorID := uuid.New()

	var created []*model.Consultation
	consultations := &MockConsultationRepository{
		CreateFunc: func(ctx context.Context, c *model.Consultation) error {
			if c.Summary == "Esta falla." {
				return errors.New("insert failed")
			}
			created = append(created, c)
			return nil
		},
	}

	svc := newTestService(&MockPatientRepository{}, consultations, &MockFollowUpRepository{}, &MockDoctorRepository{})

	id, err := svc.ImportRecord(context.Background(), doctorID, importFileContent(), []model.ImportConsultation{
		{Date: "2026-01-14", Summary: "Esta falla."},
		{Date: "2026-01-15", Summary: "Esta entra."},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	require.Len(t, created, 1)
	assert.Equal(t, "Esta entra.", created[0].Summary)
}

func TestImportRecordResolvesAuthorByEmail(t *testing.T) {
	importingID := uuid.New()
	authorID := uuid.New()

	doctors := &MockDoctorRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*model.Doctor, error) {
			if email == "laura.ortiz@clinica.es" {
				return &model.Doctor{Base: model.Base{ID: authorID}, Email: email}, nil
			}
			return nil, errors.New("sql: no rows in result set")
		},
	}
	var created []*model.Consultation
	consultations := &MockConsultationRepository{
		CreateFunc: func(ctx context.Context, c *model.Consultation) error {
			created = append(created, c)
			return nil
		},
	}

	svc := newTestService(&MockPatientRepository{}, consultations, &MockFollowUpRepository{}, doctors)

	_, err := svc.ImportRecord(context.Background(), importingID, importFileContent(), []model.ImportConsultation{
		{Date: "2026-01-14", Summary: "Atendida por otra doctora.", DoctorEmail: "laura.ortiz@clinica.es"},
		{Date: "2026-01-15", Summary: "Email desconocido.", DoctorEmail: "nadie@clinica.es"},
		{Date: "2026-01-16", Summary: "Sin médico."},
	})
	require.NoError(t, err)

	require.Len(t, created, 3)
	assert.Equal(t, authorID, created[0].DoctorID)
	// Unknown or absent author email falls back to the importing doctor.
	assert.Equal(t, importingID, created[1].DoctorID)
	assert.Equal(t, importingID, created[2].DoctorID)
}

func TestImportRecordPatientCreateFails(t *testing.T) {
	patients := &MockPatientRepository{
		CreateFunc: func(ctx context.Context, p *model.Patient) error {
			return errors.New("insert failed")
		},
	}
	consultations := &MockConsultationRepository{}

	svc := newTestService(patients, consultations, &MockFollowUpRepository{}, &MockDoctorRepository{})

	id, err := svc.ImportRecord(context.Background(), uuid.New(), importFileContent(), []model.ImportConsultation{
		{Date: "2026-01-14", Summary: "Nunca llega a insertarse."},
	})
	require.Error(t, err)
	assert.Equal(t, uuid.Nil, id)
	assert.Zero(t, consultations.CreateCallCount)
}
