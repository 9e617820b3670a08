package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tharindu/examdesk/internal/app/models/dto"
	"github.com/tharindu/examdesk/internal/pkg/apperrors"
)

type fakeAuthService struct {
	loginResp *dto.LoginResponse
	loginErr  error

	registerStudentErr error
	registeredRequest  *dto.RegisterStudentRequest
}

func (f *fakeAuthService) RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (int64, error) {
	f.registeredRequest = req
	if f.registerStudentErr != nil {
		return 0, f.registerStudentErr
	}
	return 101, nil
}

func (f *fakeAuthService) RegisterManager(ctx context.Context, req *dto.RegisterManagerRequest) (int64, error) {
	return 102, nil
}

func (f *fakeAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResp, nil
}

func newAuthTestRouter(svc *fakeAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewAuthController(svc, zerolog.Nop())

	router := gin.New()
	router.POST("/auth/login", controller.Login)
	router.POST("/auth/students/register", controller.RegisterStudent)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginSuccess(t *testing.T) {
	svc := &fakeAuthService{loginResp: &dto.LoginResponse{
		Token:     "signed.jwt.token",
		TokenType: "Bearer",
		ExpiresIn: 3600,
		Redirect:  "/entries",
	}}
	router := newAuthTestRouter(svc)

	w := postJSON(t, router, "/auth/login", dto.LoginRequest{
		UserName: "manager1",
		Password: "secret",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp dto.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("expected login data, got %T", resp.Data)
	}
	if data["token"] != "signed.jwt.token" {
		t.Fatalf("unexpected token: %v", data["token"])
	}
	if data["redirect"] != "/entries" {
		t.Fatalf("unexpected redirect: %v", data["redirect"])
	}
}

func TestLoginMissingFields(t *testing.T) {
	router := newAuthTestRouter(&fakeAuthService{})

	w := postJSON(t, router, "/auth/login", map[string]string{"user_name": "amal"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error.Message != "Missing credentials" {
		t.Fatalf("expected missing-credentials message, got %q", resp.Error.Message)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	router := newAuthTestRouter(&fakeAuthService{loginErr: apperrors.ErrInvalidCredentials})

	w := postJSON(t, router, "/auth/login", dto.LoginRequest{
		UserName: "amal",
		Password: "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRegisterStudentSuccess(t *testing.T) {
	svc := &fakeAuthService{}
	router := newAuthTestRouter(svc)

	w := postJSON(t, router, "/auth/students/register", dto.RegisterStudentRequest{
		UserName:  "amal",
		Name:      "Amal Perera",
		DID:       3,
		Email:     "amal@example.edu",
		ContactNo: "0771234567",
		Address:   "Colombo",
		Status:    "active",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if svc.registeredRequest == nil || svc.registeredRequest.UserName != "amal" {
		t.Fatalf("service did not receive the registration request")
	}
	// The generated password must never appear in the response
	if bytes.Contains(w.Body.Bytes(), []byte("password")) {
		t.Fatalf("response leaked a password field: %s", w.Body.String())
	}
}

func TestRegisterStudentDuplicate(t *testing.T) {
	router := newAuthTestRouter(&fakeAuthService{registerStudentErr: apperrors.ErrUserAlreadyExists})

	w := postJSON(t, router, "/auth/students/register", dto.RegisterStudentRequest{
		UserName:  "amal",
		Name:      "Amal Perera",
		DID:       3,
		Email:     "amal@example.edu",
		ContactNo: "0771234567",
		Address:   "Colombo",
		Status:    "active",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestRegisterStudentInvalidEmail(t *testing.T) {
	router := newAuthTestRouter(&fakeAuthService{})

	w := postJSON(t, router, "/auth/students/register", dto.RegisterStudentRequest{
		UserName:  "amal",
		Name:      "Amal Perera",
		DID:       3,
		Email:     "not-an-email",
		ContactNo: "0771234567",
		Address:   "Colombo",
		Status:    "active",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid email, got %d", w.Code)
	}
}
