package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lifetrack/internal/notify"
	"lifetrack/internal/services"
)

// DashboardHandler serves the aggregated dashboard and derived notifications.
type DashboardHandler struct {
	dashboardService    services.DashboardServicer
	notificationService services.NotificationServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer, notificationService services.NotificationServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, notificationService: notificationService}
}

// GetDashboard returns the aggregated dashboard
// @Summary     Dashboard
// @Description Totals, top categories, six-month trend, goal progress, activity streaks and user streaks in the preferred currency
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.Dashboard "Dashboard"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.dashboardService.GetDashboard(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetNotifications returns the user's current reminders
// @Summary     Notifications
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  notify.Notification "Notifications"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notifications [get]
func (h *DashboardHandler) GetNotifications(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	notifications, err := h.notificationService.GetNotifications(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if notifications == nil {
		notifications = []notify.Notification{}
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}
