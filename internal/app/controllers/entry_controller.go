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

// EntryController orchestrates exam applications, medical/resit intake and
// index-number allocation.
type EntryController struct {
	entryService services.EntryService
	logger       zerolog.Logger
}

// NewEntryController creates a new EntryController
func NewEntryController(entryService services.EntryService, logger zerolog.Logger) *EntryController {
	return &EntryController{
		entryService: entryService,
		logger:       logger,
	}
}

// ApplyExam handles a student's exam application
// @Summary Apply for the exam
// @Description Submits the authenticated student's exam application; eligibility rules are enforced by the data layer
// @Tags entries
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Exam application processed successfully"
// @Failure 400 {object} dto.ErrorResponse "Rejected by an entry rule"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /entries/apply [post]
func (c *EntryController) ApplyExam(ctx *gin.Context) {
	userID, ok := middleware.SessionUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "User ID is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.entryService.ApplyExam(ctx.Request.Context(), userID); err != nil {
		c.logger.Error().Err(err).Int64("userID", userID).Msg("Error during exam application")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Message:   "Exam application processed successfully",
		Timestamp: time.Now(),
	})
}

// AddMedicalResitStudents registers medical/resit students per subject
// @Summary Add medical/resit students
// @Description Registers each (subject, student) pair individually; calls commit independently, so a mid-batch failure leaves earlier pairs registered
// @Tags entries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MedicalResitRequest true "Per-subject student lists"
// @Success 200 {object} dto.APIResponse "Students added successfully"
// @Failure 400 {object} dto.ErrorResponse "Transformed data and batch_id are required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /entries/medical-resit [post]
func (c *EntryController) AddMedicalResitStudents(ctx *gin.Context) {
	var req dto.MedicalResitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Transformed data and batch_id are required")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.entryService.AddMedicalResitStudents(ctx.Request.Context(), req.BatchID, req.Data); err != nil {
		c.logger.Error().Err(err).Int64("batchID", req.BatchID).Msg("Error adding medical/resit students")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Message:   "Students added successfully",
		Timestamp: time.Now(),
	})
}

// GetStudentSubjects returns one student's subjects in a batch
// @Summary Get student subjects
// @Tags entries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StudentSubjectsRequest true "Batch and student"
// @Success 200 {object} dto.APIResponse{data=[]models.StudentSubject}
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /entries/subjects [post]
func (c *EntryController) GetStudentSubjects(ctx *gin.Context) {
	var req dto.StudentSubjectsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Batch ID and student ID are required")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	subjects, err := c.entryService.GetStudentSubjects(ctx.Request.Context(), req.BatchID, req.SID)
	if err != nil {
		c.logger.Error().Err(err).Int64("batchID", req.BatchID).Int64("sID", req.SID).Msg("Error fetching student subjects")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      subjects,
		Timestamp: time.Now(),
	})
}

// StudentsWithoutIndexNumber reports students still lacking an index number
// @Summary Students without index number
// @Tags entries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BatchRequest true "Batch"
// @Success 200 {object} dto.APIResponse{data=dto.MissingIndexNumbersResponse}
// @Failure 400 {object} dto.ErrorResponse "Batch ID is required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /entries/index-numbers/missing [post]
func (c *EntryController) StudentsWithoutIndexNumber(ctx *gin.Context) {
	var req dto.BatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Batch ID is required")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	missing, err := c.entryService.StudentsWithoutIndexNumber(ctx.Request.Context(), req.BatchID)
	if err != nil {
		c.logger.Error().Err(err).Int64("batchID", req.BatchID).Msg("Error fetching students without index number")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      missing,
		Timestamp: time.Now(),
	})
}

// GenerateIndexNumbers allocates index numbers for a batch
// @Summary Generate index numbers
// @Description Allocates one index number per un-indexed eligible student, continuing the sequence from startsFrom
// @Tags entries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GenerateIndexNumbersRequest true "Allocation parameters"
// @Success 200 {object} dto.APIResponse{data=[]models.IndexedStudent} "Index numbers generated successfully"
// @Failure 400 {object} dto.ErrorResponse "All fields are required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /entries/index-numbers/generate [post]
func (c *EntryController) GenerateIndexNumbers(ctx *gin.Context) {
	var req dto.GenerateIndexNumbersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "All fields are required")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	students, err := c.entryService.GenerateIndexNumbers(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Error().Err(err).Int64("batchID", req.BatchID).Msg("Error generating index numbers")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      students,
		Message:   "Index numbers generated successfully",
		Timestamp: time.Now(),
	})
}

// LastAssignedIndexNumber returns the last issued sequence value
// @Summary Last assigned index number
// @Tags entries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.LastIndexNumberRequest true "Course and batch"
// @Success 200 {object} dto.APIResponse{data=dto.LastIndexNumberResponse}
// @Failure 400 {object} dto.ErrorResponse "Course and batch are required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /entries/index-numbers/last [post]
func (c *EntryController) LastAssignedIndexNumber(ctx *gin.Context) {
	var req dto.LastIndexNumberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Course and batch are required")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	lastIndex, err := c.entryService.LastAssignedIndexNumber(ctx.Request.Context(), req.Course, req.Batch)
	if err != nil {
		c.logger.Error().Err(err).Str("course", req.Course).Str("batch", req.Batch).Msg("Error fetching last assigned index number")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.LastIndexNumberResponse{LastIndex: lastIndex},
		Timestamp: time.Now(),
	})
}

// FetchStudentsWithSubjects returns the batch roster grouped by exam type
// @Summary Students with subjects, grouped
// @Description Returns the batch roster bucketed into proper/medical/resit groups for the attendance sheets
// @Tags entries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BatchRequest true "Batch"
// @Success 200 {object} dto.GroupedStudentsResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /entries/students [post]
func (c *EntryController) FetchStudentsWithSubjects(ctx *gin.Context) {
	var req dto.BatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Batch ID is required")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	grouped, err := c.entryService.FetchStudentsWithSubjects(ctx.Request.Context(), req.BatchID)
	if err != nil {
		c.logger.Error().Err(err).Int64("batchID", req.BatchID).Msg("Error fetching students with subjects")
		middleware.HandleAPIError(ctx, err)
		return
	}

	// The attendance-sheet renderer consumes the groups at the top level
	ctx.JSON(http.StatusOK, grouped)
}

// StudentWithSubjects returns the authenticated student's entry details
// @Summary Student entry details
// @Tags entries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BatchRequest true "Batch"
// @Success 200 {object} dto.APIResponse{data=models.StudentWithSubjects}
// @Failure 400 {object} dto.ErrorResponse "Batch ID is required"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /entries/students/me [post]
func (c *EntryController) StudentWithSubjects(ctx *gin.Context) {
	var req dto.BatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Batch ID is required")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, ok := middleware.SessionUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Unauthorized: User ID not found")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.entryService.StudentWithSubjectsByUserID(ctx.Request.Context(), req.BatchID, userID)
	if err != nil {
		c.logger.Error().Err(err).Int64("batchID", req.BatchID).Int64("userID", userID).Msg("Error fetching student details with subjects")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}
