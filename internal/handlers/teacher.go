package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"physim-backend/internal/export"
	"physim-backend/internal/middleware"
	"physim-backend/internal/models"
	"physim-backend/internal/repository"
	"physim-backend/internal/services"
)

type TeacherHandler struct {
	accounts  *repository.AccountRepo
	approval  *services.ApprovalService
	catalog   *services.CatalogService
	reporting *services.ReportingService
}

func NewTeacherHandler(accounts *repository.AccountRepo, approval *services.ApprovalService, catalog *services.CatalogService, reporting *services.ReportingService) *TeacherHandler {
	return &TeacherHandler{accounts: accounts, approval: approval, catalog: catalog, reporting: reporting}
}

func (h *TeacherHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	teacher, err := h.accounts.GetTeacherByID(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Teacher not found", r))
			return
		}
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, teacher)
}

func (h *TeacherHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	teacher, err := h.accounts.UpdateTeacherProfile(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Teacher not found", r))
			return
		}
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, teacher)
}

func (h *TeacherHandler) PendingStudents(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	students, err := h.approval.ListPending(r.Context(), &claims.School)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, students)
}

// ApproveStudent is the teacher decision path; teachers can only approve,
// never reject.
func (h *TeacherHandler) ApproveStudent(w http.ResponseWriter, r *http.Request) {
	studentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid student id", r))
		return
	}

	if err := h.approval.Decide(r.Context(), studentID, services.ActionApprove, middleware.GetUserID(r.Context())); err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Student approved"})
}

func (h *TeacherHandler) SchoolStats(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	stats, err := h.reporting.TeacherSchoolStats(r.Context(), claims.School)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *TeacherHandler) StudentReports(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	reports, err := h.reporting.StudentReports(r.Context(), claims.School)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

// ExportStudentReports streams the student reports as an XLSX attachment.
func (h *TeacherHandler) ExportStudentReports(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	reports, err := h.reporting.StudentReports(r.Context(), claims.School)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	workbook, err := export.NewWorkbook(export.StudentReportSheets(reports))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	filename := fmt.Sprintf("student-reports-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	workbook.Write(w)
}

func (h *TeacherHandler) CreateSimulation(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	claims := middleware.GetClaims(r.Context())
	sim, err := h.catalog.Create(r.Context(), middleware.GetUserID(r.Context()), claims.School, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sim)
}

func (h *TeacherHandler) ListSimulations(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	sims, err := h.catalog.ListForSchool(r.Context(), claims.School)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sims)
}

func (h *TeacherHandler) UpdateSimulation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid simulation id", r))
		return
	}

	var req models.UpdateSimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	claims := middleware.GetClaims(r.Context())
	sim, err := h.catalog.Update(r.Context(), id, claims.School, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sim)
}

func (h *TeacherHandler) DeleteSimulation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid simulation id", r))
		return
	}

	claims := middleware.GetClaims(r.Context())
	if err := h.catalog.SoftDelete(r.Context(), id, claims.School); err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Simulation deleted successfully"})
}
