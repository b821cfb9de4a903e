package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicsync/records-api/internal/handler"
	"github.com/clinicsync/records-api/internal/service/dashboard"
	"github.com/clinicsync/records-api/pkg/httputil"
)

type Handler struct {
	service dashboard.DashboardService
}

func NewHandler(service dashboard.DashboardService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard/stats", h.Stats)
}

func (h *Handler) Stats(c *gin.Context) {
	doctorID, ok := handler.CurrentDoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), doctorID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(stats))
}
