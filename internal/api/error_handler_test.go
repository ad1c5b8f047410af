package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tasko-app/tasko-api/internal/api/handler"
	"github.com/tasko-app/tasko-api/internal/core/domain"
	"github.com/tasko-app/tasko-api/internal/core/ports"
)

func renderError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"duplicate email", domain.ErrDuplicateEmail, http.StatusBadRequest, domain.ErrDuplicateEmail.Error()},
		{"invalid code", domain.ErrInvalidCode, http.StatusBadRequest, domain.ErrInvalidCode.Error()},
		{"code expired", domain.ErrCodeExpired, http.StatusBadRequest, domain.ErrCodeExpired.Error()},
		{"password mismatch", domain.ErrPasswordMismatch, http.StatusBadRequest, domain.ErrPasswordMismatch.Error()},
		{"invalid bulk action", ports.ErrInvalidBulkAction, http.StatusBadRequest, ports.ErrInvalidBulkAction.Error()},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusBadRequest, domain.ErrInvalidCredentials.Error()},
		{"account disabled", domain.ErrAccountDisabled, http.StatusBadRequest, domain.ErrAccountDisabled.Error()},
		{"session not found", domain.ErrSessionNotFound, http.StatusUnauthorized, "authentication required"},
		{"task not found", domain.ErrTaskNotFound, http.StatusNotFound, "task not found"},
		{"notification not found", domain.ErrNotificationNotFound, http.StatusNotFound, "notification not found"},
		{"delivery failure", domain.ErrDeliveryFailure, http.StatusInternalServerError, "failed to send email, please try again"},
		{"unexpected", errors.New("mongo timeout"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := renderError(t, tt.err)
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}

			var resp struct {
				Success bool   `json:"success"`
				Error   string `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if resp.Success {
				t.Fatal("expected success=false")
			}
			if resp.Error != tt.wantMsg {
				t.Fatalf("expected %q, got %q", tt.wantMsg, resp.Error)
			}
		})
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("lookup failed"), domain.ErrTaskNotFound)

	rec := renderError(t, wrapped)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for wrapped ErrTaskNotFound, got %d", rec.Code)
	}
}

func TestErrorHandler_ValidationError(t *testing.T) {
	err := &handler.ValidationError{Fields: map[string]string{
		"email": "email must be a valid email",
		"otp":   "otp must be exactly 6 characters",
	}}

	rec := renderError(t, err)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp struct {
		Success bool              `json:"success"`
		Errors  map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Success {
		t.Fatal("expected success=false")
	}
	if resp.Errors["email"] != "email must be a valid email" || resp.Errors["otp"] != "otp must be exactly 6 characters" {
		t.Fatalf("unexpected field errors: %v", resp.Errors)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	rec := renderError(t, echo.NewHTTPError(http.StatusUnauthorized, "authentication required"))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Error != "authentication required" {
		t.Fatalf("unexpected message: %q", resp.Error)
	}
}
