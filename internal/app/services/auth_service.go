package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tharindu/examdesk/internal/app/models"
	"github.com/tharindu/examdesk/internal/app/models/dto"
	"github.com/tharindu/examdesk/internal/app/repositories"
	"github.com/tharindu/examdesk/internal/pkg/apperrors"
	"github.com/tharindu/examdesk/internal/pkg/auth"
	"github.com/tharindu/examdesk/internal/pkg/email"
)

// Where each role lands after login
var roleRedirects = map[int]string{
	models.RoleManager: "/entries",
	models.RoleStudent: "/dashboard",
}

// authService implements AuthService
type authService struct {
	userRepo     repositories.IUserRepository
	jwtService   *auth.JWTService
	emailService email.EmailService
	logger       zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		userRepo:     userRepo,
		jwtService:   jwtService,
		emailService: emailService,
		logger:       logger,
	}
}

// RegisterStudent creates a student account with a generated password and
// delivers the credentials out of band. The password never appears in a
// response.
func (s *authService) RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (int64, error) {
	password, err := auth.GeneratePassword()
	if err != nil {
		return 0, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("error hashing password: %w", err)
	}

	reg := &models.StudentRegistration{
		UserName:  req.UserName,
		Name:      req.Name,
		DID:       req.DID,
		Email:     req.Email,
		ContactNo: req.ContactNo,
		Address:   req.Address,
		Status:    req.Status,
	}

	userID, err := s.userRepo.RegisterStudent(ctx, reg, hash)
	if err != nil {
		return 0, err
	}

	s.deliverCredentials(req.Email, req.Name, req.UserName, password)

	return userID, nil
}

// RegisterManager creates a manager account, mirroring RegisterStudent
func (s *authService) RegisterManager(ctx context.Context, req *dto.RegisterManagerRequest) (int64, error) {
	password, err := auth.GeneratePassword()
	if err != nil {
		return 0, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("error hashing password: %w", err)
	}

	reg := &models.ManagerRegistration{
		UserName:  req.UserName,
		Name:      req.Name,
		Email:     req.Email,
		ContactNo: req.ContactNo,
		Address:   req.Address,
		Status:    req.Status,
	}

	userID, err := s.userRepo.RegisterManager(ctx, reg, hash)
	if err != nil {
		return 0, err
	}

	s.deliverCredentials(req.Email, req.Name, req.UserName, password)

	return userID, nil
}

// Login verifies credentials and issues a signed session token
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, req.UserName)
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user.UserID, user.RoleID)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	redirect, ok := roleRedirects[user.RoleID]
	if !ok {
		redirect = "/"
	}

	return &dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: expiresIn,
		Redirect:  redirect,
	}, nil
}

// deliverCredentials is best effort: the account exists either way, and the
// examinations office can reset the password manually.
func (s *authService) deliverCredentials(toEmail, toName, userName, password string) {
	if err := s.emailService.SendCredentialsEmail(toEmail, toName, userName, password); err != nil {
		s.logger.Error().Err(err).Str("userName", userName).Msg("Failed to deliver credentials email")
	}
}
