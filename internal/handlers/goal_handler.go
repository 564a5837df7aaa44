package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "lifetrack/internal/errors"
	"lifetrack/internal/models"
	"lifetrack/internal/services"
)

// GoalHandler handles goal-related requests.
type GoalHandler struct {
	goalService  services.GoalServicer
	auditService services.AuditServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer, auditService services.AuditServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService, auditService: auditService}
}

// CreateGoalRequest represents the request payload for creating a goal
type CreateGoalRequest struct {
	Title        string               `json:"title" binding:"required,max=200"`
	Description  string               `json:"description" binding:"max=1000"`
	TargetValue  *float64             `json:"target_value" binding:"required,gte=0"`
	CurrentValue float64              `json:"current_value" binding:"gte=0"`
	Frequency    models.GoalFrequency `json:"frequency" binding:"omitempty,goal_frequency"`
	Deadline     *string              `json:"deadline"`
	Category     string               `json:"category" binding:"max=100"`
}

// UpdateGoalRequest represents the request payload for updating a goal
type UpdateGoalRequest struct {
	Title        *string               `json:"title" binding:"omitempty,max=200"`
	Description  *string               `json:"description" binding:"omitempty,max=1000"`
	TargetValue  *float64              `json:"target_value" binding:"omitempty,gte=0"`
	CurrentValue *float64              `json:"current_value" binding:"omitempty,gte=0"`
	Frequency    *models.GoalFrequency `json:"frequency" binding:"omitempty,goal_frequency"`
	Deadline     *string               `json:"deadline"`
	Category     *string               `json:"category" binding:"omitempty,max=100"`
}

// RecordProgressRequest represents a progress update
type RecordProgressRequest struct {
	Value *float64 `json:"value" binding:"required,gte=0"`
	Note  string   `json:"note" binding:"max=500"`
}

func parseDeadline(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := parseFlexibleTime(*raw)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return &t, nil
}

// CreateGoal handles the creation of a goal
// @Summary     Create a goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateGoalRequest true "Goal details"
// @Success     201 {object} models.Goal "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.CreateGoal(userID, services.CreateGoalInput{
		Title:        req.Title,
		Description:  req.Description,
		TargetValue:  *req.TargetValue,
		CurrentValue: req.CurrentValue,
		Frequency:    req.Frequency,
		Deadline:     deadline,
		Category:     req.Category,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_GOAL", "goal", goal.ID, c.ClientIP(),
		map[string]interface{}{"title": goal.Title, "target_value": goal.TargetValue})

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// GetUserGoals lists the user's goals
// @Summary     List goals
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.Goal "Goals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [get]
func (h *GoalHandler) GetUserGoals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goals, err := h.goalService.GetUserGoals(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if goals == nil {
		goals = []models.Goal{}
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// GetGoalByID returns one goal with its progress history
// @Summary     Get goal by ID
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Success     200 {object} models.Goal "Goal"
// @Failure     400 {object} ErrorResponse "Invalid goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [get]
func (h *GoalHandler) GetGoalByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.GetGoalByID(userID, goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// UpdateGoal partially updates a goal
// @Summary     Update goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Goal ID"
// @Param       request body UpdateGoalRequest true "Fields to update"
// @Success     200 {object} models.Goal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.UpdateGoal(userID, goalID, services.UpdateGoalInput{
		Title:        req.Title,
		Description:  req.Description,
		TargetValue:  req.TargetValue,
		CurrentValue: req.CurrentValue,
		Frequency:    req.Frequency,
		Deadline:     deadline,
		Category:     req.Category,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_GOAL", "goal", goalID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// DeleteGoal deletes a goal
// @Summary     Delete goal
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Success     200 {object} MessageResponse "Goal deleted"
// @Failure     400 {object} ErrorResponse "Invalid goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.goalService.DeleteGoal(userID, goalID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_GOAL", "goal", goalID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Goal deleted successfully"})
}

// RecordProgress sets the goal's current value and appends to its history
// @Summary     Record goal progress
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                true "Goal ID"
// @Param       request body RecordProgressRequest true "New current value"
// @Success     200 {object} models.Goal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id}/progress [post]
func (h *GoalHandler) RecordProgress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.RecordProgress(userID, goalID, *req.Value, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "RECORD_GOAL_PROGRESS", "goal", goalID, c.ClientIP(),
		map[string]interface{}{"value": *req.Value})

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}
