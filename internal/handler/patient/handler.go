package patient

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/clinicsync/records-api/internal/handler"
	"github.com/clinicsync/records-api/internal/model"
	"github.com/clinicsync/records-api/internal/service/patient"
	apperrors "github.com/clinicsync/records-api/pkg/errors"
	"github.com/clinicsync/records-api/pkg/httputil"
)

type Handler struct {
	service patient.PatientService
}

func NewHandler(service patient.PatientService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("", h.CreatePatient)
		patients.GET("", h.ListPatients)
		patients.GET("/:id", h.GetPatient)
		patients.PUT("/:id", h.UpdatePatient)
		patients.DELETE("/:id", h.DeletePatient)

		patients.GET("/:id/export", h.ExportPatient)
		patients.POST("/import", h.ImportPatient)
		patients.POST("/import/preview", h.PreviewImport)
	}
}

func (h *Handler) CreatePatient(c *gin.Context) {
	doctorID, ok := handler.CurrentDoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.service.CreatePatient(c.Request.Context(), doctorID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) GetPatient(c *gin.Context) {
	doctorID, ok := handler.CurrentDoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	p, err := h.service.GetPatient(c.Request.Context(), doctorID, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	doctorID, ok := handler.CurrentDoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	var req model.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.service.UpdatePatient(c.Request.Context(), doctorID, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) DeletePatient(c *gin.Context) {
	doctorID, ok := handler.CurrentDoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	if err := h.service.DeletePatient(c.Request.Context(), doctorID, id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": "patient deleted"}))
}

func (h *Handler) ListPatients(c *gin.Context) {
	doctorID, ok := handler.CurrentDoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	patients, err := h.service.ListPatients(c.Request.Context(), doctorID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}

// ExportPatient streams the patient's record file as a text attachment.
func (h *Handler) ExportPatient(c *gin.Context) {
	doctorID, ok := handler.CurrentDoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
		return
	}

	result, err := h.service.ExportRecord(c.Request.Context(), doctorID, id)
	if err != nil {
		if appErr, isApp := apperrors.AsAppError(err); isApp && appErr.Code == apperrors.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
			return
		}
		log.Error().Err(err).Str("patient_id", id.String()).Msg("export failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate record file"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(result.Content))
}

// ImportPatient accepts a multipart form with the raw file text and the
// pre-extracted consultation list, and creates a new patient from them.
// A malformed consultations field is tolerated: the patient is still imported
// with no consultations, as the original importer did.
func (h *Handler) ImportPatient(c *gin.Context) {
	doctorID, ok := handler.CurrentDoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	fileContent := c.PostForm("fileContent")
	if fileContent == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file content provided"})
		return
	}

	var consultations []model.ImportConsultation
	if raw := c.PostForm("consultations"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &consultations); err != nil {
			log.Warn().Err(err).Msg("ignoring malformed consultations payload")
			consultations = nil
		}
	}

	patientID, err := h.service.ImportRecord(c.Request.Context(), doctorID, fileContent, consultations)
	if err != nil {
		if appErr, isApp := apperrors.AsAppError(err); isApp && appErr.Code == apperrors.ErrBadRequest {
			c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
			return
		}
		log.Error().Err(err).Msg("import failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process the import"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"patientId": patientID,
	})
}

// PreviewImport parses a candidate file and reports the header fields and
// consultation count without creating anything.
func (h *Handler) PreviewImport(c *gin.Context) {
	fileContent := c.PostForm("fileContent")
	if fileContent == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file content provided"})
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.service.PreviewImport(fileContent)))
}
