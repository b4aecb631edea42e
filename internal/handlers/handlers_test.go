package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/redis/go-redis/v9"

	"physim-backend/internal/models"
	"physim-backend/internal/services"
)

// ─── Service Error Mapping ───

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", &services.ValidationError{Fields: map[string]string{"email": "Invalid email format"}}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"conflict", &services.ConflictError{Message: "Email already in use"}, http.StatusConflict, "CONFLICT"},
		{"not found", &services.NotFoundError{Message: "Simulation not found"}, http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", &services.UnauthorizedError{Message: "Invalid email or password"}, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", &services.ForbiddenError{Message: "Not allowed"}, http.StatusForbidden, "FORBIDDEN"},
		{"invalid action", &services.InvalidActionError{Message: "Action must be approve or reject"}, http.StatusBadRequest, "INVALID_ACTION"},
		{"internal", errors.New("connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()

			handleServiceError(rr, req, tc.err)

			if rr.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, rr.Code)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Error.Code != tc.wantCode {
				t.Errorf("Expected code %q, got %q", tc.wantCode, resp.Error.Code)
			}
		})
	}
}

func TestHandleServiceError_ValidationFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rr := httptest.NewRecorder()

	handleServiceError(rr, req, &services.ValidationError{Fields: map[string]string{
		"name":     "Name is required",
		"password": "Password must be at least 8 characters",
	}})

	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if len(resp.Error.Fields) != 2 {
		t.Fatalf("Expected 2 field errors, got %d", len(resp.Error.Fields))
	}
	if resp.Error.Fields["name"] != "Name is required" {
		t.Errorf("Expected name field error, got %q", resp.Error.Fields["name"])
	}
}

func TestErrorResp_EchoesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-abc-123")

	resp := errorResp("NOT_FOUND", "Simulation not found", req)

	if resp.Error.RequestID != "req-abc-123" {
		t.Errorf("Expected request id echoed, got %q", resp.Error.RequestID)
	}
}

func TestLogout_SessionStoreFailure(t *testing.T) {
	// A client pointed at a closed port makes every command fail, so a
	// failed revocation must not be reported as a successful logout.
	unreachable := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer unreachable.Close()

	handler := NewAuthHandler(services.NewAuthService(nil, unreachable, nil))

	body, _ := json.Marshal(models.RefreshRequest{RefreshToken: "deadbeef"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	handler.Logout(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500 when revocation fails, got %d", rr.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error.Code != "INTERNAL_ERROR" {
		t.Errorf("Expected INTERNAL_ERROR, got %q", resp.Error.Code)
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()

	writeJSON(rr, http.StatusCreated, map[string]string{"message": "Teacher created successfully"})

	if rr.Code != http.StatusCreated {
		t.Errorf("Expected 201, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %q", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body["message"] != "Teacher created successfully" {
		t.Errorf("Unexpected body: %v", body)
	}
}
