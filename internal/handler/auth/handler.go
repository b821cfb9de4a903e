package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicsync/records-api/internal/handler"
	"github.com/clinicsync/records-api/internal/model"
	"github.com/clinicsync/records-api/internal/service/auth"
	"github.com/clinicsync/records-api/pkg/httputil"
)

type Handler struct {
	service auth.AuthService
}

func NewHandler(service auth.AuthService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/auth")
	{
		group.POST("/register", h.Register)
		group.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	group := r.Group("/auth")
	{
		group.GET("/me", h.Me)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	tokens, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(tokens))
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	tokens, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(tokens))
}

func (h *Handler) Me(c *gin.Context) {
	doctorID, ok := handler.CurrentDoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	doctor, err := h.service.CurrentDoctor(c.Request.Context(), doctorID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctor))
}
