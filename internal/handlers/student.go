package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"physim-backend/internal/middleware"
	"physim-backend/internal/models"
	"physim-backend/internal/repository"
	"physim-backend/internal/services"
)

type StudentHandler struct {
	accounts *repository.AccountRepo
	catalog  *services.CatalogService
	progress *services.ProgressService
}

func NewStudentHandler(accounts *repository.AccountRepo, catalog *services.CatalogService, progress *services.ProgressService) *StudentHandler {
	return &StudentHandler{accounts: accounts, catalog: catalog, progress: progress}
}

func (h *StudentHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	student, err := h.accounts.GetStudentByID(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Student not found", r))
			return
		}
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

func (h *StudentHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	student, err := h.accounts.UpdateStudentProfile(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Student not found", r))
			return
		}
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

func (h *StudentHandler) AvailableSimulations(w http.ResponseWriter, r *http.Request) {
	sims, err := h.catalog.AvailableFor(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sims)
}

func (h *StudentHandler) StartSimulation(w http.ResponseWriter, r *http.Request) {
	var req models.StartSimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	log, err := h.progress.Start(r.Context(), middleware.GetUserID(r.Context()), req.SimulationName)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, log)
}

func (h *StudentHandler) GetSimulation(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	log, err := h.progress.Get(r.Context(), middleware.GetUserID(r.Context()), name)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, log)
}

func (h *StudentHandler) AddObservation(w http.ResponseWriter, r *http.Request) {
	var req models.AddObservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	log, err := h.progress.AddObservation(r.Context(), middleware.GetUserID(r.Context()), req.SimulationName, req.Observation)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, log)
}

func (h *StudentHandler) MarkDone(w http.ResponseWriter, r *http.Request) {
	var req models.StartSimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	log, err := h.progress.MarkDone(r.Context(), middleware.GetUserID(r.Context()), req.SimulationName)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, log)
}

func (h *StudentHandler) RecentSimulations(w http.ResponseWriter, r *http.Request) {
	logs, err := h.progress.Recent(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}
