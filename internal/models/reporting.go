package models

import (
	"time"

	"github.com/google/uuid"
)

// SchoolSummary is one row of the admin schools overview.
type SchoolSummary struct {
	Name             string  `json:"name"`
	TeacherCount     int     `json:"teacher_count"`
	StudentCount     int     `json:"student_count"`
	TotalSimulations int     `json:"total_simulations"`
	AvgSimulations   float64 `json:"avg_simulations"`
}

type TeacherInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type SchoolStudentStat struct {
	StudentID            uuid.UUID `json:"student_id"`
	StudentName          string    `json:"student_name"`
	StudentEmail         string    `json:"student_email"`
	TotalSimulations     int       `json:"total_simulations"`
	CompletedSimulations int       `json:"completed_simulations"`
}

type SchoolDetail struct {
	SchoolName           string              `json:"school_name"`
	Teachers             []TeacherInfo       `json:"teachers"`
	TotalTeachers        int                 `json:"total_teachers"`
	Students             []Student           `json:"students"`
	TotalStudents        int                 `json:"total_students"`
	TotalSimulations     int                 `json:"total_simulations"`
	CompletedSimulations int                 `json:"completed_simulations"`
	AvgSimulations       float64             `json:"avg_simulations"`
	StudentStats         []SchoolStudentStat `json:"student_stats"`
}

// LogSummary is the per-log detail attached to a student's stats row.
type LogSummary struct {
	Name        string     `json:"name"`
	Started     time.Time  `json:"started"`
	Ended       *time.Time `json:"ended"`
	IsCompleted bool       `json:"is_completed"`
}

type StudentStats struct {
	StudentID            uuid.UUID    `json:"student_id"`
	StudentName          string       `json:"student_name"`
	StudentEmail         string       `json:"student_email"`
	TotalSimulations     int          `json:"total_simulations"`
	UniqueSimulations    int          `json:"unique_simulations"`
	CompletedSimulations int          `json:"completed_simulations"`
	Simulations          []LogSummary `json:"simulations"`
}

// SeriesPoint is one calendar day of the trailing start/completion series.
type SeriesPoint struct {
	Date      string `json:"date"`
	Started   int    `json:"started"`
	Completed int    `json:"completed"`
}

type LabelCount struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// StudentPerformance is one bar of the top-students ranking.
type StudentPerformance struct {
	Label     string `json:"label"`
	Value     int    `json:"value"`
	Completed int    `json:"completed"`
}

type TeacherCharts struct {
	Timeline               []SeriesPoint        `json:"timeline"`
	Categories             []LabelCount         `json:"categories"`
	TopStudents            []StudentPerformance `json:"top_students"`
	WeeklyActivity         []LabelCount         `json:"weekly_activity"`
	DifficultyDistribution []LabelCount         `json:"difficulty_distribution"`
}

type TeacherStats struct {
	TotalStudents             int            `json:"total_students"`
	TotalSimulations          int            `json:"total_simulations"`
	TotalCompletedSimulations int            `json:"total_completed_simulations"`
	CompletionRate            int            `json:"completion_rate"`
	StudentStats              []StudentStats `json:"student_stats"`
	Charts                    TeacherCharts  `json:"charts"`
}

type SimulationReport struct {
	Name            string        `json:"name"`
	Started         time.Time     `json:"started"`
	Ended           *time.Time    `json:"ended"`
	DurationMinutes *int          `json:"duration"`
	IsCompleted     bool          `json:"is_completed"`
	Observations    []Observation `json:"observations"`
}

type StudentReport struct {
	StudentID            uuid.UUID          `json:"student_id"`
	Name                 string             `json:"name"`
	Email                string             `json:"email"`
	Phone                string             `json:"phone"`
	Address              Address            `json:"address"`
	Bio                  string             `json:"bio"`
	AvatarURL            string             `json:"avatar_url"`
	RegisteredAt         time.Time          `json:"registered_at"`
	ApprovedBy           *uuid.UUID         `json:"approved_by"`
	TotalSimulations     int                `json:"total_simulations"`
	CompletedSimulations int                `json:"completed_simulations"`
	CompletionRate       int                `json:"completion_rate"`
	TotalTimeMinutes     int                `json:"total_time_spent"`
	AvgTimeMinutes       int                `json:"avg_time_per_simulation"`
	Simulations          []SimulationReport `json:"simulations"`
}

type StudentReports struct {
	SchoolName     string          `json:"school_name"`
	TotalStudents  int             `json:"total_students"`
	StudentReports []StudentReport `json:"student_reports"`
}
