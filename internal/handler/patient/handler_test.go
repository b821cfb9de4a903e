package patient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicsync/records-api/internal/handler"
	"github.com/clinicsync/records-api/internal/model"
	"github.com/clinicsync/records-api/internal/recordfile"
	patientService "github.com/clinicsync/records-api/internal/service/patient"
	apperrors "github.com/clinicsync/records-api/pkg/errors"
)

var _ patientService.PatientService = (*MockPatientService)(nil)

type MockPatientService struct {
	CreatePatientFunc func(ctx context.Context, doctorID uuid.UUID, req *model.CreatePatientRequest) (*model.Patient, error)
	GetPatientFunc    func(ctx context.Context, doctorID, id uuid.UUID) (*model.Patient, error)
	UpdatePatientFunc func(ctx context.Context, doctorID, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error)
	DeletePatientFunc func(ctx context.Context, doctorID, id uuid.UUID) error
	ListPatientsFunc  func(ctx context.Context, doctorID uuid.UUID) ([]*model.PatientListItem, error)
	ExportRecordFunc  func(ctx context.Context, doctorID, id uuid.UUID) (*patientService.ExportResult, error)
	ImportRecordFunc  func(ctx context.Context, doctorID uuid.UUID, fileContent string, consultations []model.ImportConsultation) (uuid.UUID, error)
	PreviewImportFunc func(fileContent string) *recordfile.Preview
}

func (m *MockPatientService) CreatePatient(ctx context.Context, doctorID uuid.UUID, req *model.CreatePatientRequest) (*model.Patient, error) {
	if m.CreatePatientFunc != nil {
		return m.CreatePatientFunc(ctx, doctorID, req)
	}
	return nil, errors.New("CreatePatientFunc not implemented in mock")
}

func (m *MockPatientService) GetPatient(ctx context.Context, doctorID, id uuid.UUID) (*model.Patient, error) {
	if m.GetPatientFunc != nil {
		return m.GetPatientFunc(ctx, doctorID, id)
	}
	return nil, errors.New("GetPatientFunc not implemented in mock")
}

func (m *MockPatientService) UpdatePatient(ctx context.Context, doctorID, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	if m.UpdatePatientFunc != nil {
		return m.UpdatePatientFunc(ctx, doctorID, id, req)
	}
	return nil, errors.New("UpdatePatientFunc not implemented in mock")
}

func (m *MockPatientService) DeletePatient(ctx context.Context, doctorID, id uuid.UUID) error {
	if m.DeletePatientFunc != nil {
		return m.DeletePatientFunc(ctx, doctorID, id)
	}
	return errors.New("DeletePatientFunc not implemented in mock")
}

func (m *MockPatientService) ListPatients(ctx context.Context, doctorID uuid.UUID) ([]*model.PatientListItem, error) {
	if m.ListPatientsFunc != nil {
		return m.ListPatientsFunc(ctx, doctorID)
	}
	return nil, nil
}

func (m *MockPatientService) ExportRecord(ctx context.Context, doctorID, id uuid.UUID) (*patientService.ExportResult, error) {
	if m.ExportRecordFunc != nil {
		return m.ExportRecordFunc(ctx, doctorID, id)
	}
	return nil, errors.New("ExportRecordFunc not implemented in mock")
}

func (m *MockPatientService) ImportRecord(ctx context.Context, doctorID uuid.UUID, fileContent string, consultations []model.ImportConsultation) (uuid.UUID, error) {
	if m.ImportRecordFunc != nil {
		return m.ImportRecordFunc(ctx, doctorID, fileContent, consultations)
	}
	return uuid.Nil, errors.New("ImportRecordFunc not implemented in mock")
}

func (m *MockPatientService) PreviewImport(fileContent string) *recordfile.Preview {
	if m.PreviewImportFunc != nil {
		return m.PreviewImportFunc(fileContent)
	}
	return &recordfile.Preview{}
}

func setupTestRouter(svc patientService.PatientService, doctorID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(handler.ContextDoctorID, doctorID)
	})
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestExportPatient(t *testing.T) {
	doctorID := uuid.New()
	patientID := uuid.New()

	svc := &MockPatientService{
		ExportRecordFunc: func(ctx context.Context, dID, id uuid.UUID) (*patientService.ExportResult, error) {
			assert.Equal(t, doctorID, dID)
			assert.Equal(t, patientID, id)
			return &patientService.ExportResult{
				Content:  "ARCHIVO MÉDICO - MARÍA GARCÍA\n",
				Filename: "archivo_medico_María_García_2025-12-02.txt",
			}, nil
		},
	}

	r := setupTestRouter(svc, doctorID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/"+patientID.String()+"/export", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="archivo_medico_María_García_2025-12-02.txt"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "ARCHIVO MÉDICO - MARÍA GARCÍA\n", w.Body.String())
}

func TestExportPatientNotFound(t *testing.T) {
	svc := &MockPatientService{
		ExportRecordFunc: func(ctx context.Context, doctorID, id uuid.UUID) (*patientService.ExportResult, error) {
			return nil, apperrors.NotFound("patient", errors.New("no rows"))
		},
	}

	r := setupTestRouter(svc, uuid.New())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/"+uuid.NewString()+"/export", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "patient not found"}`, w.Body.String())
}

func TestExportPatientInvalidID(t *testing.T) {
	r := setupTestRouter(&MockPatientService{}, uuid.New())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/not-a-uuid/export", nil)
	r.ServeHTTP(w, req)

	// An unparseable ID reads as a patient that does not exist.
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportPatientServiceFailure(t *testing.T) {
	svc := &MockPatientService{
		ExportRecordFunc: func(ctx context.Context, doctorID, id uuid.UUID) (*patientService.ExportResult, error) {
			return nil, apperrors.Internal(errors.New("db down"))
		},
	}

	r := setupTestRouter(svc, uuid.New())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/"+uuid.NewString()+"/export", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "failed to generate record file"}`, w.Body.String())
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func TestImportPatient(t *testing.T) {
	doctorID := uuid.New()
	newID := uuid.New()

	svc := &MockPatientService{
		ImportRecordFunc: func(ctx context.Context, dID uuid.UUID, fileContent string, consultations []model.ImportConsultation) (uuid.UUID, error) {
			assert.Equal(t, doctorID, dID)
			assert.Equal(t, "Nombre: María García", fileContent)
			require.Len(t, consultations, 1)
			assert.Equal(t, "Dolor lumbar.", consultations[0].Summary)
			return newID, nil
		},
	}

	r := setupTestRouter(svc, doctorID)
	w := postForm(r, "/api/v1/patients/import", url.Values{
		"fileContent":   {"Nombre: María García"},
		"consultations": {`[{"date": "2026-01-14", "summary": "Dolor lumbar."}]`},
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, newID.String(), body["patientId"])
}

func TestImportPatientMissingFileContent(t *testing.T) {
	r := setupTestRouter(&MockPatientService{}, uuid.New())
	w := postForm(r, "/api/v1/patients/import", url.Values{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "no file content provided"}`, w.Body.String())
}

func TestImportPatientMalformedConsultationsTolerated(t *testing.T) {
	called := false
	svc := &MockPatientService{
		ImportRecordFunc: func(ctx context.Context, doctorID uuid.UUID, fileContent string, consultations []model.ImportConsultation) (uuid.UUID, error) {
			called = true
			assert.Nil(t, consultations)
			return uuid.New(), nil
		},
	}

	r := setupTestRouter(svc, uuid.New())
	w := postForm(r, "/api/v1/patients/import", url.Values{
		"fileContent":   {"Nombre: María García"},
		"consultations": {"{not json"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}

func TestImportPatientBadFile(t *testing.T) {
	svc := &MockPatientService{
		ImportRecordFunc: func(ctx context.Context, doctorID uuid.UUID, fileContent string, consultations []model.ImportConsultation) (uuid.UUID, error) {
			return uuid.Nil, apperrors.BadRequest("could not extract a patient name from the file", nil)
		},
	}

	r := setupTestRouter(svc, uuid.New())
	w := postForm(r, "/api/v1/patients/import", url.Values{
		"fileContent": {"texto sin estructura"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "could not extract a patient name from the file"}`, w.Body.String())
}

func TestPreviewImport(t *testing.T) {
	svc := &MockPatientService{
		PreviewImportFunc: func(fileContent string) *recordfile.Preview {
			return &recordfile.Preview{Name: "María García", BloodType: "O+", Consultations: 2}
		},
	}

	r := setupTestRouter(svc, uuid.New())
	w := postForm(r, "/api/v1/patients/import/preview", url.Values{
		"fileContent": {"Nombre: María García"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"consultations":2`)
	assert.Contains(t, w.Body.String(), `"María García"`)
}
