package services

import (
	"testing"

	"github.com/google/uuid"

	"physim-backend/internal/models"
)

func TestStaticSimulations_Catalog(t *testing.T) {
	if len(StaticSimulations) != 6 {
		t.Fatalf("Expected 6 static simulations, got %d", len(StaticSimulations))
	}
	seen := make(map[string]bool)
	for _, sim := range StaticSimulations {
		if sim.Name == "" || sim.URL == "" || sim.Category == "" {
			t.Errorf("Static simulation %d has empty fields: %+v", sim.ID, sim)
		}
		if !validDifficulty(sim.Difficulty) {
			t.Errorf("Static simulation %q has invalid difficulty %q", sim.Name, sim.Difficulty)
		}
		if seen[sim.Name] {
			t.Errorf("Duplicate static simulation name %q", sim.Name)
		}
		seen[sim.Name] = true
	}
}

func TestMergeAvailable(t *testing.T) {
	teacherID := uuid.New()
	teacherSims := []models.Simulation{
		{
			ID:          uuid.New(),
			Name:        "Projectile Motion Lab",
			URL:         "https://example.edu/projectile",
			Description: "Launch projectiles at varying angles",
			Category:    "Mechanics",
			Difficulty:  models.DifficultyIntermediate,
			Duration:    "40 min",
			CreatedBy:   teacherID,
			CreatorName: "Ms. Rivera",
		},
	}
	completed := map[string]bool{
		"Ohm's Law":             true,
		"Projectile Motion Lab": true,
	}

	all := mergeAvailable(StaticSimulations, teacherSims, completed)

	if len(all) != 7 {
		t.Fatalf("Expected 6 static + 1 teacher simulation, got %d", len(all))
	}

	first := all[0]
	if first.ID != "1" || first.Name != "Ohm's Law" {
		t.Fatalf("Expected static catalog first, got %+v", first)
	}
	if !first.IsStatic {
		t.Errorf("Expected static entry to be marked static")
	}
	if !first.IsCompleted {
		t.Errorf("Expected Ohm's Law to be marked completed")
	}
	if all[1].IsCompleted {
		t.Errorf("Expected %q to be incomplete", all[1].Name)
	}

	last := all[6]
	if last.Name != "Projectile Motion Lab" {
		t.Fatalf("Expected teacher simulation last, got %+v", last)
	}
	if last.IsStatic {
		t.Errorf("Expected teacher entry not to be marked static")
	}
	if !last.Assigned {
		t.Errorf("Expected teacher entry to be marked assigned")
	}
	if !last.IsCompleted {
		t.Errorf("Expected teacher entry to be marked completed")
	}
	if last.CreatedBy != "Ms. Rivera" {
		t.Errorf("Expected creator name annotation, got %q", last.CreatedBy)
	}
	if last.ID != teacherSims[0].ID.String() {
		t.Errorf("Expected teacher entry ID to be the UUID string, got %q", last.ID)
	}
}

func TestMergeAvailable_NoTeacherSims(t *testing.T) {
	all := mergeAvailable(StaticSimulations, nil, map[string]bool{})

	if len(all) != 6 {
		t.Fatalf("Expected only the static catalog, got %d entries", len(all))
	}
	for _, sim := range all {
		if sim.IsCompleted {
			t.Errorf("Expected %q incomplete with no logs", sim.Name)
		}
	}
}

func TestValidDifficulty(t *testing.T) {
	tests := []struct {
		difficulty string
		valid      bool
	}{
		{"Beginner", true},
		{"Intermediate", true},
		{"Advanced", true},
		{"beginner", false},
		{"Expert", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := validDifficulty(tc.difficulty); got != tc.valid {
			t.Errorf("validDifficulty(%q): expected %v, got %v", tc.difficulty, tc.valid, got)
		}
	}
}
