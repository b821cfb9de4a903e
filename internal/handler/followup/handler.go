package followup

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicsync/records-api/internal/handler"
	"github.com/clinicsync/records-api/internal/model"
	"github.com/clinicsync/records-api/internal/service/followup"
	"github.com/clinicsync/records-api/pkg/httputil"
)

type Handler struct {
	service followup.FollowUpService
}

func NewHandler(service followup.FollowUpService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/consultations/:id/plan", h.CreatePlan)

	plans := r.Group("/plans")
	{
		plans.PATCH("/:id", h.UpdatePlan)
		plans.POST("/:id/checkins", h.RecordCheckIn)
		plans.GET("/:id/checkins", h.ListCheckIns)
	}

	r.POST("/checkins/:id/alert", h.RaiseAlert)
	r.PATCH("/alerts/:id/resolve", h.ResolveAlert)
}

func (h *Handler) CreatePlan(c *gin.Context) {
	doctorID, ok := handler.CurrentDoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	consultationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid consultation ID"))
		return
	}

	plan, err := h.service.CreatePlan(c.Request.Context(), doctorID, consultationID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(plan))
}

func (h *Handler) UpdatePlan(c *gin.Context) {
	doctorID, ok := handler.CurrentDoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid plan ID"))
		return
	}

	var req model.UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	plan, err := h.service.SetPlanActive(c.Request.Context(), doctorID, planID, *req.Active)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(plan))
}

func (h *Handler) RecordCheckIn(c *gin.Context) {
	doctorID, ok := handler.CurrentDoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid plan ID"))
		return
	}

	var req model.CreateCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	checkIn, err := h.service.RecordCheckIn(c.Request.Context(), doctorID, planID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(checkIn))
}

func (h *Handler) ListCheckIns(c *gin.Context) {
	doctorID, ok := handler.CurrentDoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid plan ID"))
		return
	}

	checkIns, err := h.service.ListCheckIns(c.Request.Context(), doctorID, planID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(checkIns))
}

func (h *Handler) RaiseAlert(c *gin.Context) {
	doctorID, ok := handler.CurrentDoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	checkInID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid check-in ID"))
		return
	}

	alert, err := h.service.RaiseAlert(c.Request.Context(), doctorID, checkInID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(alert))
}

func (h *Handler) ResolveAlert(c *gin.Context) {
	doctorID, ok := handler.CurrentDoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	alertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid alert ID"))
		return
	}

	if err := h.service.ResolveAlert(c.Request.Context(), doctorID, alertID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": "alert resolved"}))
}
