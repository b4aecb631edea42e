package services

import (
	"context"

	"github.com/google/uuid"

	"physim-backend/internal/models"
	"physim-backend/internal/repository"
)

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// ApprovalService gates student accounts until a teacher or admin vets them.
type ApprovalService struct {
	accounts *repository.AccountRepo
}

func NewApprovalService(accounts *repository.AccountRepo) *ApprovalService {
	return &ApprovalService{accounts: accounts}
}

// ListPending returns unapproved students, newest first. A nil school means
// admin scope (all schools).
func (s *ApprovalService) ListPending(ctx context.Context, school *string) ([]models.Student, error) {
	return s.accounts.ListPendingStudents(ctx, school)
}

// Decide approves or rejects a pending student. Approval records the acting
// user; rejection deletes the record outright.
func (s *ApprovalService) Decide(ctx context.Context, studentID uuid.UUID, action string, actingUserID uuid.UUID) error {
	switch action {
	case ActionApprove:
		affected, err := s.accounts.ApproveStudent(ctx, studentID, actingUserID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return &NotFoundError{Message: "Student not found"}
		}
		return nil
	case ActionReject:
		affected, err := s.accounts.DeleteStudent(ctx, studentID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return &NotFoundError{Message: "Student not found"}
		}
		return nil
	default:
		return &InvalidActionError{Message: "Action must be approve or reject"}
	}
}
