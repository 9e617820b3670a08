package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tharindu/examdesk/internal/app/models/dto"
	"github.com/tharindu/examdesk/internal/pkg/apperrors"
)

func handleError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	HandleAPIError(c, err)
	return w
}

func TestHandleAPIErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"validation", apperrors.NewValidationError("startsFrom must be an integer"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"business rule", apperrors.NewBusinessRuleError("student is not eligible"), http.StatusBadRequest, dto.ErrorCodeBusinessRule},
		{"duplicate user", apperrors.ErrUserAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"bad credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"forbidden", apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"not found", apperrors.NewResourceNotFoundError("no admission template found"), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"connection failed", apperrors.NewCustomError(apperrors.ErrConnectionFailed, "failed to establish database connection"), http.StatusInternalServerError, dto.ErrorCodeDatabaseError},
		{"unexpected", errors.New("pq: column does not exist"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tc := range cases {
		w := handleError(t, tc.err)
		if w.Code != tc.wantStatus {
			t.Fatalf("%s: expected status %d, got %d", tc.name, tc.wantStatus, w.Code)
		}
		var resp dto.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: failed to decode response: %v", tc.name, err)
		}
		if resp.Error.Code != tc.wantCode {
			t.Fatalf("%s: expected code %s, got %s", tc.name, tc.wantCode, resp.Error.Code)
		}
		if resp.Success {
			t.Fatalf("%s: error responses must set success=false", tc.name)
		}
	}
}

func TestHandleAPIErrorPassesBusinessRuleMessageThrough(t *testing.T) {
	w := handleError(t, apperrors.NewBusinessRuleError("You have already applied for this examination"))

	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.Contains(resp.Error.Message, "You have already applied for this examination") {
		t.Fatalf("expected the procedure message verbatim, got %q", resp.Error.Message)
	}
}

func TestHandleAPIErrorHidesInternalDetail(t *testing.T) {
	w := handleError(t, errors.New("pq: relation \"secret_table\" does not exist"))

	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if strings.Contains(resp.Error.Message, "secret_table") {
		t.Fatalf("internal detail leaked into the response: %q", resp.Error.Message)
	}
	if resp.Error.Message != "Internal server error" {
		t.Fatalf("expected generic message, got %q", resp.Error.Message)
	}
}
