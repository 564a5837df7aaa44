package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "lifetrack/internal/errors"
	"lifetrack/internal/models"
	"lifetrack/internal/services"
)

// SettingsHandler exposes the user's preferences and streak counters.
type SettingsHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(userService services.UserServicer, auditService services.AuditServicer) *SettingsHandler {
	return &SettingsHandler{userService: userService, auditService: auditService}
}

// SettingsResponse is the preference bag plus the streak counters.
type SettingsResponse struct {
	Preferences models.Preferences `json:"preferences"`
	Streaks     models.Streaks     `json:"streaks"`
}

// GetSettings returns the user's settings
// @Summary     Get settings
// @Tags        settings
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} SettingsResponse "Preferences and streaks"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SettingsResponse{Preferences: user.Preferences, Streaks: user.Streaks})
}

// UpdateSettings merges preferences
// @Summary     Update settings
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body PreferencesRequest true "Preference fields to change"
// @Success     200 {object} SettingsResponse "Updated settings"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.UpdatePreferences(userID, req.toUpdate())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_SETTINGS", "user", userID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, SettingsResponse{Preferences: user.Preferences, Streaks: user.Streaks})
}
