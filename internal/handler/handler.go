package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextDoctorID is the gin context key under which the auth middleware
// stores the authenticated doctor's ID.
const ContextDoctorID = "doctorID"

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"status": "healthy",
		},
	})
}

// CurrentDoctorID returns the authenticated doctor's ID from the request
// context. The boolean is false when the auth middleware did not run.
func CurrentDoctorID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextDoctorID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
