package controllers

import (
	"errors"
	"net/http"

	"lostfound/models"
	"lostfound/services"
	"lostfound/storage"
	"lostfound/utils"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	reportService *services.ReportService
}

func NewReportController(reportService *services.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

type CreateReportRequest struct {
	Type string `json:"type" binding:"required"`
	services.ReportInput
}

// Create files a new lost or found item report for the authenticated
// user.
func (rc *ReportController) Create(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	kind, err := models.ParseReportKind(req.Type)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid report type", err.Error())
		return
	}

	userID := c.GetString("userId")
	report, offline, err := rc.reportService.Report(c.Request.Context(), userID, kind, req.ReportInput)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			utils.ConflictResponse(c, "Report could not be saved, please retry", nil)
			return
		}
		utils.BadRequestResponse(c, "Report validation failed", err.Error())
		return
	}

	if offline {
		utils.OfflineResponse(c, "Report filed", report)
		return
	}
	utils.CreatedResponse(c, "Report filed", report)
}

// List returns the authenticated user's reports of the requested type,
// newest first.
func (rc *ReportController) List(c *gin.Context) {
	kind, err := models.ParseReportKind(c.DefaultQuery("type", "lost"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid report type", err.Error())
		return
	}

	userID := c.GetString("userId")
	reports, err := rc.reportService.ListByUser(userID, kind)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load reports", err.Error())
		return
	}

	utils.SuccessResponse(c, "Reports retrieved successfully", reports)
}

// ToggleStatus flips a report between its open and resolved status.
func (rc *ReportController) ToggleStatus(c *gin.Context) {
	kind, err := models.ParseReportKind(c.DefaultQuery("type", "lost"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid report type", err.Error())
		return
	}

	report, offline, err := rc.reportService.ToggleStatus(c.Request.Context(), c.Param("id"), kind)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Report not found")
			return
		}
		if errors.Is(err, storage.ErrConflict) {
			utils.ConflictResponse(c, "Report could not be updated, please retry", nil)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to update report", err.Error())
		return
	}

	if offline {
		utils.OfflineResponse(c, "Report status updated", report)
		return
	}
	utils.SuccessResponse(c, "Report status updated", report)
}

// AttachImage uploads an item photo and attaches it to the report.
func (rc *ReportController) AttachImage(c *gin.Context) {
	kind, err := models.ParseReportKind(c.DefaultQuery("type", "lost"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid report type", err.Error())
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "Image file is required", err.Error())
		return
	}
	defer file.Close()

	if header.Size > utils.MaxImageSize {
		utils.PayloadTooLargeResponse(c, "Image exceeds the maximum allowed size")
		return
	}

	userID := c.GetString("userId")
	report, err := rc.reportService.AttachImage(c.Request.Context(), c.Param("id"), kind, userID, file, header)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Report not found")
			return
		}
		utils.BadRequestResponse(c, "Image upload failed", err.Error())
		return
	}

	utils.SuccessResponse(c, "Image attached successfully", report)
}

// Stats returns the dashboard counters for the authenticated user.
func (rc *ReportController) Stats(c *gin.Context) {
	userID := c.GetString("userId")
	stats, err := rc.reportService.UserStats(userID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to compute stats", err.Error())
		return
	}

	utils.SuccessResponse(c, "Stats retrieved successfully", stats)
}
