package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tharindu/examdesk/internal/app/models"
	"github.com/tharindu/examdesk/internal/app/models/dto"
	"github.com/tharindu/examdesk/internal/pkg/apperrors"
	"github.com/tharindu/examdesk/internal/pkg/auth"
)

type fakeUserRepository struct {
	users map[string]*models.User

	registeredStudent *models.StudentRegistration
	registeredHash    string
}

func (f *fakeUserRepository) RegisterStudent(ctx context.Context, reg *models.StudentRegistration, passwordHash string) (int64, error) {
	if _, exists := f.users[reg.UserName]; exists {
		return 0, apperrors.ErrUserAlreadyExists
	}
	f.registeredStudent = reg
	f.registeredHash = passwordHash
	return 101, nil
}

func (f *fakeUserRepository) RegisterManager(ctx context.Context, reg *models.ManagerRegistration, passwordHash string) (int64, error) {
	if _, exists := f.users[reg.UserName]; exists {
		return 0, apperrors.ErrUserAlreadyExists
	}
	return 102, nil
}

func (f *fakeUserRepository) GetUserByUsername(ctx context.Context, userName string) (*models.User, error) {
	user, ok := f.users[userName]
	if !ok {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

type fakeEmailService struct {
	sentTo       string
	sentPassword string
	err          error
}

func (f *fakeEmailService) SendCredentialsEmail(toEmail, toName, userName, password string) error {
	f.sentTo = toEmail
	f.sentPassword = password
	return f.err
}

func newTestAuthService(repo *fakeUserRepository, mail *fakeEmailService) AuthService {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "unit-test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "examdesk-test",
	})
	return NewAuthService(repo, jwtService, mail, zerolog.Nop())
}

func studentRequest() *dto.RegisterStudentRequest {
	return &dto.RegisterStudentRequest{
		UserName:  "amal",
		Name:      "Amal Perera",
		DID:       3,
		Email:     "amal@example.edu",
		ContactNo: "0771234567",
		Address:   "Colombo",
		Status:    "active",
	}
}

func TestRegisterStudentHashesAndDeliversPassword(t *testing.T) {
	repo := &fakeUserRepository{users: map[string]*models.User{}}
	mail := &fakeEmailService{}
	svc := newTestAuthService(repo, mail)

	userID, err := svc.RegisterStudent(context.Background(), studentRequest())
	if err != nil {
		t.Fatalf("RegisterStudent failed: %v", err)
	}
	if userID != 101 {
		t.Fatalf("expected user id 101, got %d", userID)
	}

	if mail.sentPassword == "" {
		t.Fatalf("expected a generated password to be delivered")
	}
	if mail.sentTo != "amal@example.edu" {
		t.Fatalf("credentials sent to %s", mail.sentTo)
	}
	if repo.registeredHash == mail.sentPassword {
		t.Fatalf("repository must receive the hash, not the plaintext")
	}
	if !auth.CheckPassword(repo.registeredHash, mail.sentPassword) {
		t.Fatalf("stored hash does not match the delivered password")
	}
}

func TestRegisterStudentDuplicateUsername(t *testing.T) {
	repo := &fakeUserRepository{users: map[string]*models.User{
		"amal": {UserID: 1, UserName: "amal"},
	}}
	svc := newTestAuthService(repo, &fakeEmailService{})

	_, err := svc.RegisterStudent(context.Background(), studentRequest())
	if !errors.Is(err, apperrors.ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestRegisterStudentSucceedsWhenEmailFails(t *testing.T) {
	repo := &fakeUserRepository{users: map[string]*models.User{}}
	mail := &fakeEmailService{err: errors.New("smtp unreachable")}
	svc := newTestAuthService(repo, mail)

	if _, err := svc.RegisterStudent(context.Background(), studentRequest()); err != nil {
		t.Fatalf("registration must not fail on email delivery: %v", err)
	}
}

func TestLoginIssuesTokenAndRedirect(t *testing.T) {
	hash, err := auth.HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	repo := &fakeUserRepository{users: map[string]*models.User{
		"manager1": {UserID: 10, UserName: "manager1", Password: hash, RoleID: models.RoleManager},
		"amal":     {UserID: 11, UserName: "amal", Password: hash, RoleID: models.RoleStudent},
	}}
	svc := newTestAuthService(repo, &fakeEmailService{})

	cases := map[string]string{
		"manager1": "/entries",
		"amal":     "/dashboard",
	}
	for userName, redirect := range cases {
		resp, err := svc.Login(context.Background(), &dto.LoginRequest{
			UserName: userName,
			Password: "correct-horse",
		})
		if err != nil {
			t.Fatalf("Login(%s) failed: %v", userName, err)
		}
		if resp.Token == "" {
			t.Fatalf("expected a token for %s", userName)
		}
		if resp.TokenType != "Bearer" {
			t.Fatalf("expected Bearer token type, got %s", resp.TokenType)
		}
		if resp.Redirect != redirect {
			t.Fatalf("expected redirect %s for %s, got %s", redirect, userName, resp.Redirect)
		}
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	repo := &fakeUserRepository{users: map[string]*models.User{
		"amal": {UserID: 11, UserName: "amal", Password: hash, RoleID: models.RoleStudent},
	}}
	svc := newTestAuthService(repo, &fakeEmailService{})

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		UserName: "amal",
		Password: "wrong",
	})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if resp != nil {
		t.Fatalf("no response may be returned on a failed login")
	}
}

func TestLoginUnknownUser(t *testing.T) {
	repo := &fakeUserRepository{users: map[string]*models.User{}}
	svc := newTestAuthService(repo, &fakeEmailService{})

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		UserName: "ghost",
		Password: "whatever",
	})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
