package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tharindu/examdesk/internal/app/models"
	"github.com/tharindu/examdesk/internal/app/models/dto"
	"github.com/tharindu/examdesk/internal/pkg/auth"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "middleware-test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "examdesk-test",
	})
}

func newProtectedRouter(jwtService *auth.JWTService, requiredRole int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(jwtService)

	router := gin.New()
	group := router.Group("/protected")
	group.Use(m.JWTAuth())
	if requiredRole != 0 {
		group.Use(m.RoleRequired(requiredRole))
	}
	group.GET("", func(c *gin.Context) {
		userID, _ := c.Get(ContextUserID)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return router
}

func doProtectedRequest(t *testing.T, router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeErrorResponse(t *testing.T, w *httptest.ResponseRecorder) *dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return &resp
}

func TestJWTAuthMissingHeader(t *testing.T) {
	router := newProtectedRouter(newTestJWTService(), 0)

	w := doProtectedRequest(t, router, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	resp := decodeErrorResponse(t, w)
	if resp.Error.Code != dto.ErrorCodeUnauthorized {
		t.Fatalf("expected %s, got %s", dto.ErrorCodeUnauthorized, resp.Error.Code)
	}
}

func TestJWTAuthInvalidToken(t *testing.T) {
	router := newProtectedRouter(newTestJWTService(), 0)

	w := doProtectedRequest(t, router, "Bearer not.a.real.token")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	resp := decodeErrorResponse(t, w)
	if resp.Error.Code != dto.ErrorCodeInvalidToken {
		t.Fatalf("expected %s, got %s", dto.ErrorCodeInvalidToken, resp.Error.Code)
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	expired := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "middleware-test-secret",
		AccessTokenExp: -time.Minute,
		TokenIssuer:    "examdesk-test",
	})
	token, _, err := expired.GenerateToken(1, models.RoleStudent)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	router := newProtectedRouter(newTestJWTService(), 0)
	w := doProtectedRequest(t, router, "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	resp := decodeErrorResponse(t, w)
	if resp.Error.Code != dto.ErrorCodeExpiredToken {
		t.Fatalf("expected %s, got %s", dto.ErrorCodeExpiredToken, resp.Error.Code)
	}
}

func TestJWTAuthValidToken(t *testing.T) {
	jwtService := newTestJWTService()
	token, _, err := jwtService.GenerateToken(42, models.RoleStudent)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	router := newProtectedRouter(jwtService, 0)
	w := doProtectedRequest(t, router, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["user_id"] != float64(42) {
		t.Fatalf("expected user_id 42 on the context, got %v", body["user_id"])
	}
}

func TestRoleRequired(t *testing.T) {
	jwtService := newTestJWTService()
	router := newProtectedRouter(jwtService, models.RoleManager)

	managerToken, _, err := jwtService.GenerateToken(1, models.RoleManager)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	studentToken, _, err := jwtService.GenerateToken(2, models.RoleStudent)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if w := doProtectedRequest(t, router, "Bearer "+managerToken); w.Code != http.StatusOK {
		t.Fatalf("expected manager to pass, got %d", w.Code)
	}

	w := doProtectedRequest(t, router, "Bearer "+studentToken)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for student, got %d", w.Code)
	}
	resp := decodeErrorResponse(t, w)
	if resp.Error.Code != dto.ErrorCodeForbidden {
		t.Fatalf("expected %s, got %s", dto.ErrorCodeForbidden, resp.Error.Code)
	}
}
