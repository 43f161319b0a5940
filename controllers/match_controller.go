package controllers

import (
	"errors"
	"strconv"

	"lostfound/services"
	"lostfound/utils"

	"github.com/gin-gonic/gin"
)

type MatchController struct {
	matchService *services.MatchService
}

func NewMatchController(matchService *services.MatchService) *MatchController {
	return &MatchController{matchService: matchService}
}

// List fetches the current lost/found match candidates from the
// matching service.
func (mc *MatchController) List(c *gin.Context) {
	matches, err := mc.matchService.FetchMatches(c.Request.Context())
	if err != nil {
		utils.BadGatewayResponse(c, "Matching service is unavailable", err.Error())
		return
	}

	utils.SuccessResponse(c, "Matches retrieved successfully", matches)
}

// ListAI fetches match candidates scored by the image model.
func (mc *MatchController) ListAI(c *gin.Context) {
	matches, err := mc.matchService.FetchAIMatches(c.Request.Context())
	if err != nil {
		utils.BadGatewayResponse(c, "Matching service is unavailable", err.Error())
		return
	}

	utils.SuccessResponse(c, "AI matches retrieved successfully", matches)
}

// Notify asks the matching service to email both parties of the match
// at the given position in the last fetched list.
func (mc *MatchController) Notify(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid match index", err.Error())
		return
	}

	if err := mc.matchService.SendNotification(c.Request.Context(), index); err != nil {
		if errors.Is(err, services.ErrMatchNotFound) {
			utils.NotFoundResponse(c, "Match not found, refresh the match list")
			return
		}
		utils.BadGatewayResponse(c, "Failed to send match notification", err.Error())
		return
	}

	utils.SuccessResponse(c, "Match notification sent", nil)
}

// Reports returns the admin urgency report for unresolved items.
func (mc *MatchController) Reports(c *gin.Context) {
	reports, err := mc.matchService.AdminReports(c.Request.Context())
	if err != nil {
		utils.BadGatewayResponse(c, "Matching service is unavailable", err.Error())
		return
	}

	utils.SuccessResponse(c, "Reports retrieved successfully", reports)
}
