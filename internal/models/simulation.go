package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
)

// Simulation is a teacher-authored simulation definition, scoped to one school.
// Deletion is a soft update flipping IsActive.
type Simulation struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Category    string    `json:"category"`
	Difficulty  string    `json:"difficulty"`
	Duration    string    `json:"duration"`
	School      string    `json:"school"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatorName string    `json:"creator_name,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StaticSimulation is one of the fixed catalog entries available to every
// student regardless of school. Never persisted.
type StaticSimulation struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	Duration    string `json:"duration"`
}

// AvailableSimulation is a catalog entry as presented to a student: a static
// or teacher-authored definition annotated with that student's completion.
type AvailableSimulation struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	Duration    string `json:"duration"`
	IsStatic    bool   `json:"is_static"`
	IsCompleted bool   `json:"is_completed"`
	Assigned    bool   `json:"assigned,omitempty"`
	CreatedBy   string `json:"created_by,omitempty"`
}

type CreateSimulationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	Duration    string `json:"duration"`
}

// UpdateSimulationRequest applies only non-nil fields.
type UpdateSimulationRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
	Category    *string `json:"category"`
	Difficulty  *string `json:"difficulty"`
	Duration    *string `json:"duration"`
	IsActive    *bool   `json:"is_active"`
}
