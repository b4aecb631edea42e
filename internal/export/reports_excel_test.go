package export

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"physim-backend/internal/models"
)

func sampleReports() *models.StudentReports {
	started := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	ended := started.Add(30 * time.Minute)
	duration := 30

	return &models.StudentReports{
		SchoolName:    "Springfield High",
		TotalStudents: 2,
		StudentReports: []models.StudentReport{
			{
				StudentID:            uuid.New(),
				Name:                 "Alice Johnson",
				Email:                "alice@school.edu",
				TotalSimulations:     2,
				CompletedSimulations: 1,
				CompletionRate:       50,
				TotalTimeMinutes:     30,
				AvgTimeMinutes:       30,
				Simulations: []models.SimulationReport{
					{
						Name:            "Ohm's Law",
						Started:         started,
						Ended:           &ended,
						DurationMinutes: &duration,
						IsCompleted:     true,
						Observations: []models.Observation{
							{Text: "Current rises with voltage"},
							{Text: "Resistance stays constant"},
						},
					},
					{
						Name:    "Pendulum Lab",
						Started: started,
					},
				},
			},
			{
				StudentID: uuid.New(),
				Name:      "Bob Smith",
				Email:     "bob@school.edu",
			},
		},
	}
}

func TestStudentReportSheets(t *testing.T) {
	sheets := StudentReportSheets(sampleReports())

	if len(sheets) != 2 {
		t.Fatalf("Expected 2 sheets, got %d", len(sheets))
	}

	summary := sheets[0]
	if summary.Title != "Students" {
		t.Errorf("Expected summary sheet 'Students', got %q", summary.Title)
	}
	if len(summary.Rows) != 2 {
		t.Fatalf("Expected one summary row per student, got %d", len(summary.Rows))
	}
	alice := summary.Rows[0]
	if alice[0] != "Alice Johnson" || alice[2] != "2" || alice[4] != "50" {
		t.Errorf("Unexpected summary row: %v", alice)
	}

	detail := sheets[1]
	if detail.Title != "Simulations" {
		t.Errorf("Expected detail sheet 'Simulations', got %q", detail.Title)
	}
	if len(detail.Rows) != 2 {
		t.Fatalf("Expected 2 detail rows, got %d", len(detail.Rows))
	}

	done := detail.Rows[0]
	if done[1] != "Ohm's Law" {
		t.Errorf("Expected Ohm's Law first, got %q", done[1])
	}
	if done[2] != "2026-03-10T09:00:00Z" {
		t.Errorf("Unexpected start timestamp: %q", done[2])
	}
	if done[4] != "30" || done[5] != "true" {
		t.Errorf("Expected duration 30 and completed true, got %q / %q", done[4], done[5])
	}
	if done[6] != "Current rises with voltage; Resistance stays constant" {
		t.Errorf("Unexpected joined observations: %q", done[6])
	}

	open := detail.Rows[1]
	if open[3] != "" || open[4] != "" {
		t.Errorf("Expected empty ended and duration for open log, got %q / %q", open[3], open[4])
	}
}

func TestNewWorkbook(t *testing.T) {
	f, err := NewWorkbook(StudentReportSheets(sampleReports()))
	if err != nil {
		t.Fatalf("Failed to build workbook: %v", err)
	}
	defer f.Close()

	names := f.GetSheetList()
	if len(names) != 2 || names[0] != "Students" || names[1] != "Simulations" {
		t.Fatalf("Unexpected sheet list: %v", names)
	}

	header, err := f.GetCellValue("Students", "A1")
	if err != nil {
		t.Fatalf("Failed to read header cell: %v", err)
	}
	if header != "Name" {
		t.Errorf("Expected header 'Name', got %q", header)
	}

	name, err := f.GetCellValue("Students", "A2")
	if err != nil {
		t.Fatalf("Failed to read data cell: %v", err)
	}
	if name != "Alice Johnson" {
		t.Errorf("Expected 'Alice Johnson' in A2, got %q", name)
	}

	sim, err := f.GetCellValue("Simulations", "B2")
	if err != nil {
		t.Fatalf("Failed to read detail cell: %v", err)
	}
	if sim != "Ohm's Law" {
		t.Errorf("Expected \"Ohm's Law\" in B2, got %q", sim)
	}
}

func TestNewWorkbook_EmptySheets(t *testing.T) {
	f, err := NewWorkbook([]SheetSpec{{Title: "Students", Header: []string{"Name"}}})
	if err != nil {
		t.Fatalf("Failed to build workbook: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 1 || got[0] != "Students" {
		t.Fatalf("Unexpected sheet list: %v", got)
	}
}
