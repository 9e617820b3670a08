package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tharindu/examdesk/internal/app/models/dto"
	"github.com/tharindu/examdesk/internal/app/services"
	"github.com/tharindu/examdesk/internal/middleware"
)

// AdmissionController manages admission-template versions per batch
type AdmissionController struct {
	admissionService services.AdmissionService
	logger           zerolog.Logger
}

// NewAdmissionController creates a new AdmissionController
func NewAdmissionController(admissionService services.AdmissionService, logger zerolog.Logger) *AdmissionController {
	return &AdmissionController{
		admissionService: admissionService,
		logger:           logger,
	}
}

// UpsertAdmission creates or updates the admission template for a batch
// @Summary Create or update admission template
// @Tags admissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpsertAdmissionRequest true "Admission template"
// @Success 200 {object} dto.APIResponse "Admission data added or updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid admission data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admissions [post]
func (c *AdmissionController) UpsertAdmission(ctx *gin.Context) {
	var req dto.UpsertAdmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid admission data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.admissionService.UpsertAdmission(ctx.Request.Context(), &req); err != nil {
		c.logger.Error().Err(err).Int64("batchID", req.BatchID).Msg("Error adding or updating admission data")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Message:   "Admission data added or updated successfully",
		Timestamp: time.Now(),
	})
}

// LatestAdmissionTemplate returns the most recent template for a batch
// @Summary Latest admission template
// @Tags admissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BatchRequest true "Batch"
// @Success 200 {object} dto.APIResponse{data=dto.AdmissionTemplateResponse}
// @Failure 404 {object} dto.ErrorResponse "No admission template found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admissions/latest [post]
func (c *AdmissionController) LatestAdmissionTemplate(ctx *gin.Context) {
	var req dto.BatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Batch ID is required")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	template, err := c.admissionService.LatestAdmissionTemplate(ctx.Request.Context(), req.BatchID)
	if err != nil {
		c.logger.Error().Err(err).Int64("batchID", req.BatchID).Msg("Error fetching latest admission template")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      template,
		Timestamp: time.Now(),
	})
}

// BatchAdmissionDetails returns the admission summary row for a batch
// @Summary Batch admission details
// @Tags admissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BatchRequest true "Batch"
// @Success 200 {object} dto.APIResponse{data=models.BatchAdmissionDetails}
// @Failure 400 {object} dto.ErrorResponse "Batch ID is required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admissions/batch-details [post]
func (c *AdmissionController) BatchAdmissionDetails(ctx *gin.Context) {
	var req dto.BatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Batch ID is required")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	details, err := c.admissionService.BatchAdmissionDetails(ctx.Request.Context(), req.BatchID)
	if err != nil {
		c.logger.Error().Err(err).Int64("batchID", req.BatchID).Msg("Error fetching batch admission details")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      details,
		Timestamp: time.Now(),
	})
}
