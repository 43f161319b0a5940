package controllers

import (
	"errors"
	"net/http"

	"lostfound/services"
	"lostfound/utils"

	"github.com/gin-gonic/gin"
)

type AdminMessageController struct {
	messageService *services.AdminMessageService
}

func NewAdminMessageController(messageService *services.AdminMessageService) *AdminMessageController {
	return &AdminMessageController{messageService: messageService}
}

// List returns all admin messages, pinned first then newest first.
func (mc *AdminMessageController) List(c *gin.Context) {
	messages, err := mc.messageService.List(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load messages", err.Error())
		return
	}

	utils.SuccessResponse(c, "Messages retrieved successfully", messages)
}

// Create publishes a new announcement.
func (mc *AdminMessageController) Create(c *gin.Context) {
	var req services.MessageInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	createdBy := c.GetString("name")
	if createdBy == "" {
		createdBy = "Admin"
	}

	message, offline, err := mc.messageService.Create(c.Request.Context(), createdBy, req)
	if err != nil {
		utils.BadRequestResponse(c, "Message validation failed", err.Error())
		return
	}

	if offline {
		utils.OfflineResponse(c, "Message published", message)
		return
	}
	utils.CreatedResponse(c, "Message published", message)
}

// Delete removes an announcement.
func (mc *AdminMessageController) Delete(c *gin.Context) {
	offline, err := mc.messageService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Message not found")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete message", err.Error())
		return
	}

	if offline {
		utils.OfflineResponse(c, "Message deleted", nil)
		return
	}
	utils.SuccessResponse(c, "Message deleted", nil)
}
