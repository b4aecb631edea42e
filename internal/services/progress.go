package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"physim-backend/internal/models"
	"physim-backend/internal/repository"
)

const recentLimit = 5

// ProgressService drives the per-(student, simulation) lifecycle:
// NOT_STARTED → IN_PROGRESS → COMPLETED. Records are exclusively owned by
// their student; teachers and admins only ever see them through reporting.
type ProgressService struct {
	logs *repository.LogRepo
}

func NewProgressService(logs *repository.LogRepo) *ProgressService {
	return &ProgressService{logs: logs}
}

// Start is idempotent: a second start for the same pair returns the existing
// record unchanged, started timestamp included.
func (s *ProgressService) Start(ctx context.Context, studentID uuid.UUID, simulationName string) (*models.SimulationLog, error) {
	simulationName = strings.TrimSpace(simulationName)
	if simulationName == "" {
		return nil, &ValidationError{Fields: map[string]string{"simulation_name": "Simulation name is required"}}
	}
	return s.logs.GetOrStart(ctx, studentID, simulationName)
}

func (s *ProgressService) Get(ctx context.Context, studentID uuid.UUID, simulationName string) (*models.SimulationLog, error) {
	log, err := s.logs.GetByStudentAndName(ctx, studentID, simulationName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Simulation not found"}
		}
		return nil, err
	}
	return log, nil
}

// AddObservation appends to the log. Observations are allowed after
// completion as well, so students can annotate finished work.
func (s *ProgressService) AddObservation(ctx context.Context, studentID uuid.UUID, simulationName, text string) (*models.SimulationLog, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Fields: map[string]string{"observation": "Observation text is required"}}
	}
	log, err := s.logs.AddObservation(ctx, studentID, simulationName, text)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Simulation not found. Please start the simulation first."}
		}
		return nil, err
	}
	return log, nil
}

// MarkDone completes the log. Idempotent; the end timestamp is immutable
// once set.
func (s *ProgressService) MarkDone(ctx context.Context, studentID uuid.UUID, simulationName string) (*models.SimulationLog, error) {
	log, err := s.logs.MarkDone(ctx, studentID, simulationName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Simulation not found"}
		}
		return nil, err
	}
	return log, nil
}

func (s *ProgressService) Recent(ctx context.Context, studentID uuid.UUID) ([]models.SimulationLog, error) {
	return s.logs.Recent(ctx, studentID, recentLimit)
}
