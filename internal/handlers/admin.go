package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"physim-backend/internal/middleware"
	"physim-backend/internal/models"
	"physim-backend/internal/repository"
	"physim-backend/internal/services"
)

type AdminHandler struct {
	accounts  *repository.AccountRepo
	auth      *services.AuthService
	approval  *services.ApprovalService
	reporting *services.ReportingService
}

func NewAdminHandler(accounts *repository.AccountRepo, auth *services.AuthService, approval *services.ApprovalService, reporting *services.ReportingService) *AdminHandler {
	return &AdminHandler{accounts: accounts, auth: auth, approval: approval, reporting: reporting}
}

func (h *AdminHandler) CreateTeacher(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTeacherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	teacher, err := h.auth.CreateTeacher(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Teacher created successfully",
		"teacher": teacher,
	})
}

func (h *AdminHandler) ListTeachers(w http.ResponseWriter, r *http.Request) {
	teachers, err := h.accounts.ListTeachers(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, teachers)
}

func (h *AdminHandler) Schools(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.reporting.SchoolSummary(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *AdminHandler) SchoolDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.reporting.SchoolDetail(r.Context(), chi.URLParam(r, "schoolName"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *AdminHandler) PendingStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.approval.ListPending(r.Context(), nil)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, students)
}

// DecideStudent handles both approval and rejection.
func (h *AdminHandler) DecideStudent(w http.ResponseWriter, r *http.Request) {
	studentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid student id", r))
		return
	}

	var req models.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if err := h.approval.Decide(r.Context(), studentID, req.Action, middleware.GetUserID(r.Context())); err != nil {
		handleServiceError(w, r, err)
		return
	}

	message := "Student approved successfully"
	if req.Action == services.ActionReject {
		message = "Student rejected and removed"
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}
