package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vidtube/user-service/internal/core/domain"
)

func renderError(t *testing.T, err error) (*httptest.ResponseRecorder, errorResponse) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/users/register", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewHTTPErrorHandler(zerolog.Nop())
	handler(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec, body
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"validation", domain.Validation("email is required"), http.StatusBadRequest, "email is required"},
		{"user exists", domain.ErrUserExists, http.StatusConflict, "user with email or username already exists"},
		{"user not found", domain.ErrUserNotFound, http.StatusBadRequest, "user does not exist"},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid user credentials"},
		{"upload failed", domain.ErrUploadFailed, http.StatusInternalServerError, "failed to upload avatar"},
		{"token generation", domain.ErrTokenGeneration, http.StatusInternalServerError, "token generation failed"},
		{"user creation", domain.ErrUserCreation, http.StatusInternalServerError, "something went wrong while registering the user"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := renderError(t, tc.err)
			if rec.Code != tc.wantCode {
				t.Fatalf("expected status %d, got %d", tc.wantCode, rec.Code)
			}
			if body.StatusCode != tc.wantCode {
				t.Fatalf("envelope statusCode %d does not match status %d", body.StatusCode, tc.wantCode)
			}
			if body.Message != tc.wantMsg {
				t.Fatalf("expected message %q, got %q", tc.wantMsg, body.Message)
			}
			if body.Success {
				t.Fatalf("success must be false on errors")
			}
			if body.Errors == nil {
				t.Fatalf("errors must render as an empty array, not null")
			}
		})
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	err := errors.Join(errors.New("find user: lookup failed"), domain.ErrUserNotFound)
	rec, body := renderError(t, err)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body.Message != "user does not exist" {
		t.Fatalf("internal detail leaked: %q", body.Message)
	}
}

func TestHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	rec, body := renderError(t, echo.NewHTTPError(http.StatusUnauthorized, "missing access token"))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if body.Message != "missing access token" {
		t.Fatalf("unexpected message %q", body.Message)
	}
}

func TestHTTPErrorHandler_UnexpectedError(t *testing.T) {
	rec, body := renderError(t, errors.New("mongo: connection reset"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body.Message != "internal server error" {
		t.Fatalf("internal detail leaked: %q", body.Message)
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := c.NoContent(http.StatusOK); err != nil {
		t.Fatalf("commit response: %v", err)
	}

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late failure"), c)
	if rec.Code != http.StatusOK {
		t.Fatalf("committed response must not be overwritten, got %d", rec.Code)
	}
}
