package consultation

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicsync/records-api/internal/handler"
	"github.com/clinicsync/records-api/internal/model"
	"github.com/clinicsync/records-api/internal/service/consultation"
	"github.com/clinicsync/records-api/pkg/httputil"
)

type Handler struct {
	service consultation.ConsultationService
}

func NewHandler(service consultation.ConsultationService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	consultations := r.Group("/consultations")
	{
		consultations.POST("", h.CreateConsultation)
		consultations.GET("", h.ListConsultations)
		consultations.GET("/recent", h.RecentConsultations)
		consultations.GET("/:id", h.GetConsultation)
		consultations.PUT("/:id", h.UpdateConsultation)
		consultations.DELETE("/:id", h.DeleteConsultation)
	}
}

func (h *Handler) CreateConsultation(c *gin.Context) {
	doctorID, ok := handler.CurrentDoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	var req model.CreateConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.service.CreateConsultation(c.Request.Context(), doctorID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) GetConsultation(c *gin.Context) {
	doctorID, ok := handler.CurrentDoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid consultation ID"))
		return
	}

	found, err := h.service.GetConsultation(c.Request.Context(), doctorID, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(found))
}

func (h *Handler) UpdateConsultation(c *gin.Context) {
	doctorID, ok := handler.CurrentDoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid consultation ID"))
		return
	}

	var req model.UpdateConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.service.UpdateConsultation(c.Request.Context(), doctorID, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) DeleteConsultation(c *gin.Context) {
	doctorID, ok := handler.CurrentDoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid consultation ID"))
		return
	}

	if err := h.service.DeleteConsultation(c.Request.Context(), doctorID, id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": "consultation deleted"}))
}

func (h *Handler) ListConsultations(c *gin.Context) {
	doctorID, ok := handler.CurrentDoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	consultations, err := h.service.ListConsultations(c.Request.Context(), doctorID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(consultations))
}

func (h *Handler) RecentConsultations(c *gin.Context) {
	doctorID, ok := handler.CurrentDoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	consultations, err := h.service.RecentConsultations(c.Request.Context(), doctorID, limit)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(consultations))
}
