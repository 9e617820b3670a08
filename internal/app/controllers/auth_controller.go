// Package controllers handles HTTP request handling
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

// AuthController handles authentication related operations
type AuthController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// RegisterStudent handles student registration
// @Summary Register a new student
// @Description Creates a student account with a generated initial password, delivered out of band
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegisterStudentRequest true "Student registration information"
// @Success 201 {object} dto.APIResponse "Student registered successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing credentials"
// @Failure 409 {object} dto.ErrorResponse "User already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/students/register [post]
func (c *AuthController) RegisterStudent(ctx *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid student registration payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing credentials")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, err := c.authService.RegisterStudent(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Error().Err(err).Str("userName", req.UserName).Msg("Failed to register student")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", userID).Str("userName", req.UserName).Msg("Student registered")
	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Message:   "Student registered successfully",
		Timestamp: time.Now(),
	})
}

// RegisterManager handles manager registration
// @Summary Register a new manager
// @Description Creates a manager account with a generated initial password, delivered out of band
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegisterManagerRequest true "Manager registration information"
// @Success 201 {object} dto.APIResponse "Manager registered successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing credentials"
// @Failure 409 {object} dto.ErrorResponse "User already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/managers/register [post]
func (c *AuthController) RegisterManager(ctx *gin.Context) {
	var req dto.RegisterManagerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid manager registration payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing credentials")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, err := c.authService.RegisterManager(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Error().Err(err).Str("userName", req.UserName).Msg("Failed to register manager")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", userID).Str("userName", req.UserName).Msg("Manager registered")
	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Message:   "Manager registered successfully",
		Timestamp: time.Now(),
	})
}

// Login handles user login
// @Summary User login
// @Description Authenticates a user and returns a session token plus a role-based redirect target
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Missing credentials"
// @Failure 401 {object} dto.ErrorResponse "Invalid username or password"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing credentials")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	loginResponse, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("userName", req.UserName).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("userName", req.UserName).Msg("User logged in successfully")
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      loginResponse,
		Message:   "Login successful",
		Timestamp: time.Now(),
	})
}
