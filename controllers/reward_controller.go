package controllers

import (
	"errors"
	"net/http"

	"lostfound/services"
	"lostfound/utils"

	"github.com/gin-gonic/gin"
)

type RewardController struct {
	rewardService *services.RewardService
}

func NewRewardController(rewardService *services.RewardService) *RewardController {
	return &RewardController{rewardService: rewardService}
}

type CheckRewardRequest struct {
	FinderEmail string `json:"finder_email" binding:"required"`
	ItemName    string `json:"item_name" binding:"required"`
}

// Check reports whether the caller already rewarded this finder for
// this item.
func (rc *RewardController) Check(c *gin.Context) {
	var req CheckRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	given, err := rc.rewardService.CheckGiven(c.Request.Context(), c.GetString("email"), req.FinderEmail, req.ItemName)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to check reward", err.Error())
		return
	}

	utils.SuccessResponse(c, "Reward status retrieved", gin.H{
		"already_given": given,
	})
}

// Give grants tokens to the finder of the caller's item.
func (rc *RewardController) Give(c *gin.Context) {
	var req services.GiveRewardInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	reward, offline, err := rc.rewardService.Give(c.Request.Context(), c.GetString("email"), c.GetString("name"), req)
	if err != nil {
		if errors.Is(err, services.ErrRewardAlreadyGiven) {
			utils.ConflictResponse(c, "You already rewarded this finder for this item", nil)
			return
		}
		utils.BadRequestResponse(c, "Reward could not be granted", err.Error())
		return
	}

	if offline {
		utils.OfflineResponse(c, "Reward granted", reward)
		return
	}
	utils.CreatedResponse(c, "Reward granted", reward)
}

// Mine lists the rewards the caller has earned as a finder.
func (rc *RewardController) Mine(c *gin.Context) {
	rewards, total, err := rc.rewardService.ListForFinder(c.GetString("email"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load rewards", err.Error())
		return
	}

	utils.SuccessResponse(c, "Rewards retrieved successfully", gin.H{
		"rewards":      rewards,
		"total_tokens": total,
	})
}
