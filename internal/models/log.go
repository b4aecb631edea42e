package models

import (
	"time"

	"github.com/google/uuid"
)

// Observation is an append-only free-text note on a progress log. Entries are
// never edited or removed once written.
type Observation struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	StudentID uuid.UUID `json:"student_id"`
}

// SimulationLog is the per-(student, simulation-name) progress record. The
// simulation name is a plain string key so soft-deleting a catalog entry
// leaves historical logs intact.
type SimulationLog struct {
	ID             uuid.UUID     `json:"id"`
	StudentID      uuid.UUID     `json:"student_id"`
	SimulationName string        `json:"simulation_name"`
	Started        time.Time     `json:"started"`
	Ended          *time.Time    `json:"ended"`
	IsCompleted    bool          `json:"is_completed"`
	Observations   []Observation `json:"observations"`
	CreatedAt      time.Time     `json:"created_at"`
}

// SchoolLog is a progress log joined with its student's identity, as the
// reporting queries fetch it.
type SchoolLog struct {
	SimulationLog
	StudentName  string `json:"student_name"`
	StudentEmail string `json:"student_email"`
}

type StartSimulationRequest struct {
	SimulationName string `json:"simulation_name"`
}

type AddObservationRequest struct {
	SimulationName string `json:"simulation_name"`
	Observation    string `json:"observation"`
}
