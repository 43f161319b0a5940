package controllers

import (
	"errors"
	"net/http"

	"lostfound/services"
	"lostfound/utils"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	notificationService *services.NotificationService
}

func NewNotificationController(notificationService *services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// ListForItem returns the notifications attached to one of the user's
// reports and marks them viewed, so opening the list clears the unread
// badge.
func (nc *NotificationController) ListForItem(c *gin.Context) {
	userID := c.GetString("userId")

	notifications, err := nc.notificationService.ListForItem(c.Param("id"), userID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load notifications", err.Error())
		return
	}

	ids := make([]string, 0, len(notifications))
	for _, n := range notifications {
		if !n.Read {
			ids = append(ids, n.ID)
		}
	}
	if len(ids) > 0 {
		if _, err := nc.notificationService.MarkViewed(c.Request.Context(), userID, ids); err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to mark notifications viewed", err.Error())
			return
		}
		for i := range notifications {
			notifications[i].Read = true
		}
	}

	utils.SuccessResponse(c, "Notifications retrieved successfully", notifications)
}

// UnreadCount returns the user's unread notification count for the
// dashboard badge.
func (nc *NotificationController) UnreadCount(c *gin.Context) {
	userID := c.GetString("userId")

	count, err := nc.notificationService.UnreadCountFor(userID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to count notifications", err.Error())
		return
	}

	utils.SuccessResponse(c, "Unread count retrieved successfully", gin.H{
		"count": count,
	})
}

// Dismiss permanently removes a notification from the ledger.
func (nc *NotificationController) Dismiss(c *gin.Context) {
	offline, err := nc.notificationService.Dismiss(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Notification not found")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to dismiss notification", err.Error())
		return
	}

	if offline {
		utils.OfflineResponse(c, "Notification dismissed", nil)
		return
	}
	utils.SuccessResponse(c, "Notification dismissed", nil)
}
