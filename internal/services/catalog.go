package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"physim-backend/internal/models"
	"physim-backend/internal/repository"
)

// StaticSimulations is the fixed catalog available to every student
// regardless of school, layered under the teacher-authored entries.
var StaticSimulations = []models.StaticSimulation{
	{
		ID:          1,
		Name:        "Ohm's Law",
		URL:         "https://phet.colorado.edu/sims/html/ohms-law/latest/ohms-law_en.html",
		Description: "Explore the relationship between voltage, current, and resistance",
		Category:    "Electricity",
		Difficulty:  models.DifficultyBeginner,
		Duration:    "30 min",
	},
	{
		ID:          2,
		Name:        "Pendulum Lab",
		URL:         "https://phet.colorado.edu/sims/html/pendulum-lab/latest/pendulum-lab_en.html",
		Description: "Investigate the physics of pendulums and harmonic motion",
		Category:    "Mechanics",
		Difficulty:  models.DifficultyIntermediate,
		Duration:    "45 min",
	},
	{
		ID:          3,
		Name:        "Wave Interference",
		URL:         "https://phet.colorado.edu/sims/html/wave-interference/latest/wave-interference_en.html",
		Description: "Explore wave interference patterns and superposition",
		Category:    "Waves",
		Difficulty:  models.DifficultyIntermediate,
		Duration:    "40 min",
	},
	{
		ID:          4,
		Name:        "Circuit Construction Kit",
		URL:         "https://phet.colorado.edu/sims/html/circuit-construction-kit-dc/latest/circuit-construction-kit-dc_en.html",
		Description: "Build and test electrical circuits with virtual components",
		Category:    "Electricity",
		Difficulty:  models.DifficultyAdvanced,
		Duration:    "60 min",
	},
	{
		ID:          5,
		Name:        "Forces and Motion",
		URL:         "https://phet.colorado.edu/sims/html/forces-and-motion-basics/latest/forces-and-motion-basics_en.html",
		Description: "Learn about forces, motion, and Newton's laws",
		Category:    "Mechanics",
		Difficulty:  models.DifficultyBeginner,
		Duration:    "35 min",
	},
	{
		ID:          6,
		Name:        "Energy Forms and Changes",
		URL:         "https://phet.colorado.edu/sims/html/energy-forms-and-changes/latest/energy-forms-and-changes_en.html",
		Description: "Explore different forms of energy and energy transformations",
		Category:    "Thermodynamics",
		Difficulty:  models.DifficultyIntermediate,
		Duration:    "50 min",
	},
}

type CatalogService struct {
	sims     *repository.SimulationRepo
	logs     *repository.LogRepo
	accounts *repository.AccountRepo
}

func NewCatalogService(sims *repository.SimulationRepo, logs *repository.LogRepo, accounts *repository.AccountRepo) *CatalogService {
	return &CatalogService{sims: sims, logs: logs, accounts: accounts}
}

func (s *CatalogService) Create(ctx context.Context, teacherID uuid.UUID, school string, req models.CreateSimulationRequest) (*models.Simulation, error) {
	fieldErrors := make(map[string]string)
	required := map[string]string{
		"name":        req.Name,
		"description": req.Description,
		"url":         req.URL,
		"category":    req.Category,
		"difficulty":  req.Difficulty,
		"duration":    req.Duration,
	}
	for field, value := range required {
		if value == "" {
			fieldErrors[field] = "This field is required"
		}
	}
	if req.Difficulty != "" && !validDifficulty(req.Difficulty) {
		fieldErrors["difficulty"] = "Difficulty must be Beginner, Intermediate or Advanced"
	}
	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	sim := &models.Simulation{
		Name:        req.Name,
		Description: req.Description,
		URL:         req.URL,
		Category:    req.Category,
		Difficulty:  req.Difficulty,
		Duration:    req.Duration,
		School:      school,
		CreatedBy:   teacherID,
	}
	if err := s.sims.Create(ctx, sim); err != nil {
		return nil, err
	}
	// Re-read for the creator name annotation
	return s.sims.GetByID(ctx, sim.ID)
}

func (s *CatalogService) ListForSchool(ctx context.Context, school string) ([]models.Simulation, error) {
	return s.sims.ListActiveBySchool(ctx, school)
}

func (s *CatalogService) Update(ctx context.Context, id uuid.UUID, school string, req models.UpdateSimulationRequest) (*models.Simulation, error) {
	if req.Difficulty != nil && !validDifficulty(*req.Difficulty) {
		return nil, &ValidationError{Fields: map[string]string{
			"difficulty": "Difficulty must be Beginner, Intermediate or Advanced",
		}}
	}
	sim, err := s.sims.Update(ctx, id, school, req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Simulation not found"}
		}
		return nil, err
	}
	return sim, nil
}

func (s *CatalogService) SoftDelete(ctx context.Context, id uuid.UUID, school string) error {
	affected, err := s.sims.SoftDelete(ctx, id, school)
	if err != nil {
		return err
	}
	if affected == 0 {
		return &NotFoundError{Message: "Simulation not found"}
	}
	return nil
}

// AvailableFor merges the static catalog with the student's school's active
// teacher-authored simulations, annotating each with completion status.
func (s *CatalogService) AvailableFor(ctx context.Context, studentID uuid.UUID) ([]models.AvailableSimulation, error) {
	student, err := s.accounts.GetStudentByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Student not found"}
		}
		return nil, err
	}

	teacherSims, err := s.sims.ListActiveBySchool(ctx, student.School)
	if err != nil {
		return nil, err
	}

	completed, err := s.logs.ListCompletedNames(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return mergeAvailable(StaticSimulations, teacherSims, completed), nil
}

func mergeAvailable(static []models.StaticSimulation, teacherSims []models.Simulation, completed map[string]bool) []models.AvailableSimulation {
	all := make([]models.AvailableSimulation, 0, len(static)+len(teacherSims))
	for _, sim := range static {
		all = append(all, models.AvailableSimulation{
			ID:          strconv.Itoa(sim.ID),
			Name:        sim.Name,
			URL:         sim.URL,
			Description: sim.Description,
			Category:    sim.Category,
			Difficulty:  sim.Difficulty,
			Duration:    sim.Duration,
			IsStatic:    true,
			IsCompleted: completed[sim.Name],
		})
	}
	for _, sim := range teacherSims {
		all = append(all, models.AvailableSimulation{
			ID:          sim.ID.String(),
			Name:        sim.Name,
			URL:         sim.URL,
			Description: sim.Description,
			Category:    sim.Category,
			Difficulty:  sim.Difficulty,
			Duration:    sim.Duration,
			IsStatic:    false,
			IsCompleted: completed[sim.Name],
			Assigned:    true,
			CreatedBy:   sim.CreatorName,
		})
	}
	return all
}

func validDifficulty(d string) bool {
	return d == models.DifficultyBeginner || d == models.DifficultyIntermediate || d == models.DifficultyAdvanced
}
