package handlers

import (
	"net/http"

	"asumo/models"
	"asumo/services/user"
	"asumo/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes resident account endpoints.
type UserHandler struct {
	UserService user.UserService
}

// NewUserHandler returns a handler bound to the given user service.
func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{UserService: svc}
}

// RegisterHandler handles POST /api/users/register.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var usr models.User
	if err := c.ShouldBindJSON(&usr); err != nil {
		logger.Warn("Invalid registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Role is never taken from the registration payload.
	usr.Role = models.RoleResident

	resp, err := h.UserService.RegisterResident(c.Request.Context(), usr)
	if err != nil {
		logger.Error("Registration failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler handles POST /api/users/login.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.UserService.AuthenticateResident(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.Warn("Login failed", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MeHandler handles GET /api/users/me.
func (h *UserHandler) MeHandler(c *gin.Context) {
	logger := utils.GetLogger()

	userID := c.GetString("userID")
	usr, err := h.UserService.GetResidentByID(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Resident not found", zap.String("id", userID), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, usr)
}

// ListResidentsHandler handles GET /api/admin/residents.
func (h *UserHandler) ListResidentsHandler(c *gin.Context) {
	users, err := h.UserService.ListResidents(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("Failed to list residents", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}
