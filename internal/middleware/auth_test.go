package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGenerateAndParseToken(t *testing.T) {
	auth := NewJWTAuth("test-secret")
	userID := uuid.New()

	token, err := auth.GenerateAccessToken(userID, "STUDENT", "Springfield High")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	claims, err := auth.ParseToken(token)
	if err != nil {
		t.Fatalf("Failed to parse token: %v", err)
	}

	if claims.UserID != userID.String() {
		t.Errorf("Expected user ID %s, got %s", userID, claims.UserID)
	}
	if claims.Role != "STUDENT" {
		t.Errorf("Expected role STUDENT, got %s", claims.Role)
	}
	if claims.School != "Springfield High" {
		t.Errorf("Expected school 'Springfield High', got %q", claims.School)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 || ttl > 15*time.Minute {
		t.Errorf("Expected expiry within 15 minutes, got %v", ttl)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := NewJWTAuth("right-secret").GenerateAccessToken(uuid.New(), "TEACHER", "School")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	if _, err := NewJWTAuth("wrong-secret").ParseToken(token); err == nil {
		t.Error("Expected error for token signed with a different secret")
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestJWTMiddleware(t *testing.T) {
	auth := NewJWTAuth("test-secret")
	token, _ := auth.GenerateAccessToken(uuid.New(), "STUDENT", "School")

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc123", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rr := httptest.NewRecorder()

			auth.Middleware(okHandler()).ServeHTTP(rr, req)

			if rr.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, rr.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		claims     *Claims
		required   string
		wantStatus int
	}{
		{"matching role", &Claims{UserID: uuid.NewString(), Role: "TEACHER"}, "TEACHER", http.StatusOK},
		{"wrong role", &Claims{UserID: uuid.NewString(), Role: "STUDENT"}, "TEACHER", http.StatusForbidden},
		{"no claims", nil, "ADMIN", http.StatusForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.claims != nil {
				req = req.WithContext(context.WithValue(req.Context(), ClaimsKey, tc.claims))
			}
			rr := httptest.NewRecorder()

			RequireRole(tc.required)(okHandler()).ServeHTTP(rr, req)

			if rr.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, rr.Code)
			}
		})
	}
}

type stubApprovalChecker struct {
	approved bool
	err      error
}

func (s stubApprovalChecker) IsStudentApproved(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.approved, s.err
}

func TestRequireApprovedStudent(t *testing.T) {
	claims := &Claims{UserID: uuid.NewString(), Role: "STUDENT"}

	tests := []struct {
		name       string
		checker    stubApprovalChecker
		wantStatus int
	}{
		{"approved", stubApprovalChecker{approved: true}, http.StatusOK},
		{"pending", stubApprovalChecker{approved: false}, http.StatusForbidden},
		{"account missing", stubApprovalChecker{err: context.DeadlineExceeded}, http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(context.WithValue(req.Context(), ClaimsKey, claims))
			rr := httptest.NewRecorder()

			RequireApprovedStudent(tc.checker)(okHandler()).ServeHTTP(rr, req)

			if rr.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, rr.Code)
			}
		})
	}
}

func TestGetUserID(t *testing.T) {
	id := uuid.New()
	ctx := context.WithValue(context.Background(), ClaimsKey, &Claims{UserID: id.String()})

	if got := GetUserID(ctx); got != id {
		t.Errorf("Expected %s, got %s", id, got)
	}
	if got := GetUserID(context.Background()); got != uuid.Nil {
		t.Errorf("Expected uuid.Nil without claims, got %s", got)
	}
}
