package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestDecide_UnknownAction(t *testing.T) {
	svc := NewApprovalService(nil)

	tests := []string{"", "APPROVE", "delete", "accept"}
	for _, action := range tests {
		err := svc.Decide(context.Background(), uuid.New(), action, uuid.New())
		if _, ok := err.(*InvalidActionError); !ok {
			t.Errorf("Action %q: expected InvalidActionError, got %v", action, err)
		}
	}
}
