package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// ApprovalChecker reports whether a student account has been approved.
type ApprovalChecker interface {
	IsStudentApproved(ctx context.Context, id uuid.UUID) (bool, error)
}

// RequireApprovedStudent blocks unapproved students from everything beyond
// their own profile. The check hits the store on every request so a fresh
// approval takes effect without re-login.
func RequireApprovedStudent(checker ApprovalChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			approved, err := checker.IsStudentApproved(r.Context(), GetUserID(r.Context()))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Account not found", r)
				return
			}
			if !approved {
				writeError(w, http.StatusForbidden, "FORBIDDEN", "Your account is awaiting approval", r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
