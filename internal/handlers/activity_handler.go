package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "lifetrack/internal/errors"
	"lifetrack/internal/models"
	"lifetrack/internal/services"
)

// ActivityHandler handles activity-related requests.
type ActivityHandler struct {
	activityService services.ActivityServicer
	auditService    services.AuditServicer
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityService services.ActivityServicer, auditService services.AuditServicer) *ActivityHandler {
	return &ActivityHandler{activityService: activityService, auditService: auditService}
}

// CreateActivityRequest represents the request payload for creating an activity
type CreateActivityRequest struct {
	Name      string                   `json:"name" binding:"required,max=100"`
	Frequency models.ActivityFrequency `json:"frequency" binding:"omitempty,activity_frequency"`
	Notes     string                   `json:"notes" binding:"max=1000"`
	Icon      string                   `json:"icon" binding:"max=50"`
}

// UpdateActivityRequest represents the request payload for updating an activity
type UpdateActivityRequest struct {
	Name      *string                   `json:"name" binding:"omitempty,max=100"`
	Frequency *models.ActivityFrequency `json:"frequency" binding:"omitempty,activity_frequency"`
	Notes     *string                   `json:"notes" binding:"omitempty,max=1000"`
	Icon      *string                   `json:"icon" binding:"omitempty,max=50"`
}

// CompleteActivityRequest carries an optional note for a completion
type CompleteActivityRequest struct {
	Note string `json:"note" binding:"max=500"`
}

// CreateActivity handles the creation of an activity
// @Summary     Create an activity
// @Tags        activities
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateActivityRequest true "Activity details"
// @Success     201 {object} models.Activity "Activity created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /activities [post]
func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	activity, err := h.activityService.CreateActivity(userID, services.CreateActivityInput{
		Name:      req.Name,
		Frequency: req.Frequency,
		Notes:     req.Notes,
		Icon:      req.Icon,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_ACTIVITY", "activity", activity.ID, c.ClientIP(),
		map[string]interface{}{"name": activity.Name, "frequency": activity.Frequency})

	c.JSON(http.StatusCreated, gin.H{"activity": activity})
}

// GetUserActivities lists the user's activities
// @Summary     List activities
// @Tags        activities
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.Activity "Activities"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /activities [get]
func (h *ActivityHandler) GetUserActivities(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	activities, err := h.activityService.GetUserActivities(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if activities == nil {
		activities = []models.Activity{}
	}

	c.JSON(http.StatusOK, gin.H{"activities": activities})
}

// GetActivityByID returns one activity with its completions
// @Summary     Get activity by ID
// @Tags        activities
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Activity ID"
// @Success     200 {object} models.Activity "Activity"
// @Failure     400 {object} ErrorResponse "Invalid activity ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Activity not found"
// @Router      /activities/{id} [get]
func (h *ActivityHandler) GetActivityByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	activityID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	activity, err := h.activityService.GetActivityByID(userID, activityID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": activity})
}

// UpdateActivity partially updates an activity
// @Summary     Update activity
// @Tags        activities
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                true "Activity ID"
// @Param       request body UpdateActivityRequest true "Fields to update"
// @Success     200 {object} models.Activity "Updated activity"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Activity not found"
// @Router      /activities/{id} [put]
func (h *ActivityHandler) UpdateActivity(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	activityID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	activity, err := h.activityService.UpdateActivity(userID, activityID, services.UpdateActivityInput{
		Name:      req.Name,
		Frequency: req.Frequency,
		Notes:     req.Notes,
		Icon:      req.Icon,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_ACTIVITY", "activity", activityID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"activity": activity})
}

// DeleteActivity deletes an activity
// @Summary     Delete activity
// @Tags        activities
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Activity ID"
// @Success     200 {object} MessageResponse "Activity deleted"
// @Failure     400 {object} ErrorResponse "Invalid activity ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Activity not found"
// @Router      /activities/{id} [delete]
func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	activityID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.activityService.DeleteActivity(userID, activityID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_ACTIVITY", "activity", activityID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Activity deleted successfully"})
}

// CompleteActivity records a completion and advances the streak
// @Summary     Complete activity
// @Tags        activities
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                  true  "Activity ID"
// @Param       request body CompleteActivityRequest false "Optional note"
// @Success     200 {object} models.Activity "Updated activity"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Activity not found"
// @Router      /activities/{id}/complete [post]
func (h *ActivityHandler) CompleteActivity(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	activityID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CompleteActivityRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
	}

	activity, err := h.activityService.CompleteActivity(userID, activityID, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "COMPLETE_ACTIVITY", "activity", activityID, c.ClientIP(),
		map[string]interface{}{"streak": activity.Streak})

	c.JSON(http.StatusOK, gin.H{"activity": activity})
}
