package services

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"physim-backend/internal/models"
	"physim-backend/internal/repository"
)

// CategoryRule maps name keywords to a category tag. Rules are checked in
// order; the first match wins and "Other" is the fallback.
type CategoryRule struct {
	Keywords []string
	Category string
}

var defaultCategoryRules = []CategoryRule{
	{Keywords: []string{"ohm", "circuit"}, Category: "Electricity"},
	{Keywords: []string{"pendulum", "forces"}, Category: "Mechanics"},
	{Keywords: []string{"wave"}, Category: "Waves"},
	{Keywords: []string{"energy"}, Category: "Thermodynamics"},
}

const categoryFallback = "Other"

// ReportingService derives statistics from the progress logs and identity
// store. Strictly read-side; it never mutates source data, and a failure on
// any sub-query fails the whole aggregate rather than returning partials.
type ReportingService struct {
	reports  *repository.ReportRepo
	accounts *repository.AccountRepo
	logs     *repository.LogRepo
	sims     *repository.SimulationRepo
}

func NewReportingService(reports *repository.ReportRepo, accounts *repository.AccountRepo, logs *repository.LogRepo, sims *repository.SimulationRepo) *ReportingService {
	return &ReportingService{reports: reports, accounts: accounts, logs: logs, sims: sims}
}

// SchoolSummary computes per-school counts for every school with approved
// students, one fan-out of count queries per school.
func (s *ReportingService) SchoolSummary(ctx context.Context) ([]models.SchoolSummary, error) {
	schools, err := s.reports.DistinctSchools(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.SchoolSummary, 0, len(schools))
	for _, school := range schools {
		teachers, err := s.reports.CountTeachers(ctx, school)
		if err != nil {
			return nil, err
		}
		students, err := s.reports.CountApprovedStudents(ctx, school)
		if err != nil {
			return nil, err
		}
		logs, err := s.reports.CountSchoolLogs(ctx, school)
		if err != nil {
			return nil, err
		}

		avg := 0.0
		if students > 0 {
			avg = round2(float64(logs) / float64(students))
		}
		summaries = append(summaries, models.SchoolSummary{
			Name:             school,
			TeacherCount:     teachers,
			StudentCount:     students,
			TotalSimulations: logs,
			AvgSimulations:   avg,
		})
	}
	return summaries, nil
}

func (s *ReportingService) SchoolDetail(ctx context.Context, school string) (*models.SchoolDetail, error) {
	teachers, err := s.accounts.ListTeacherInfoBySchool(ctx, school)
	if err != nil {
		return nil, err
	}
	students, err := s.accounts.ListApprovedStudentsBySchool(ctx, school)
	if err != nil {
		return nil, err
	}
	logs, err := s.logs.ListBySchool(ctx, school)
	if err != nil {
		return nil, err
	}

	completed := 0
	byStudent := make(map[uuid.UUID]*models.SchoolStudentStat)
	for _, st := range students {
		byStudent[st.ID] = &models.SchoolStudentStat{
			StudentID:    st.ID,
			StudentName:  st.Name,
			StudentEmail: st.Email,
		}
	}
	for _, l := range logs {
		if l.IsCompleted {
			completed++
		}
		if stat, ok := byStudent[l.StudentID]; ok {
			stat.TotalSimulations++
			if l.IsCompleted {
				stat.CompletedSimulations++
			}
		}
	}

	stats := make([]models.SchoolStudentStat, 0, len(students))
	for _, st := range students {
		stats = append(stats, *byStudent[st.ID])
	}

	avg := 0.0
	if len(students) > 0 {
		avg = round2(float64(len(logs)) / float64(len(students)))
	}

	return &models.SchoolDetail{
		SchoolName:           school,
		Teachers:             teachers,
		TotalTeachers:        len(teachers),
		Students:             students,
		TotalStudents:        len(students),
		TotalSimulations:     len(logs),
		CompletedSimulations: completed,
		AvgSimulations:       avg,
		StudentStats:         stats,
	}, nil
}

// TeacherSchoolStats builds the teacher dashboard: per-student stats plus the
// chart series for the school.
func (s *ReportingService) TeacherSchoolStats(ctx context.Context, school string) (*models.TeacherStats, error) {
	students, err := s.accounts.ListApprovedStudentsBySchool(ctx, school)
	if err != nil {
		return nil, err
	}
	logs, err := s.logs.ListBySchool(ctx, school)
	if err != nil {
		return nil, err
	}
	sims, err := s.sims.ListBySchool(ctx, school)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	studentStats := buildStudentStats(students, logs)

	completed := 0
	for _, l := range logs {
		if l.IsCompleted {
			completed++
		}
	}
	rate := 0
	if len(logs) > 0 {
		rate = int(math.Round(float64(completed) / float64(len(logs)) * 100))
	}

	return &models.TeacherStats{
		TotalStudents:             len(students),
		TotalSimulations:          len(logs),
		TotalCompletedSimulations: completed,
		CompletionRate:            rate,
		StudentStats:              studentStats,
		Charts: models.TeacherCharts{
			Timeline:               buildTimeline(logs, now),
			Categories:             buildCategoryBreakdown(logs, defaultCategoryRules),
			TopStudents:            topStudents(studentStats, 10),
			WeeklyActivity:         weeklyActivity(logs, now),
			DifficultyDistribution: difficultyDistribution(logs, StaticSimulations, sims),
		},
	}, nil
}

// StudentReports builds the detailed per-student report for a school,
// observations included, sorted by total logs descending.
func (s *ReportingService) StudentReports(ctx context.Context, school string) (*models.StudentReports, error) {
	students, err := s.accounts.ListApprovedStudentsBySchool(ctx, school)
	if err != nil {
		return nil, err
	}
	logs, err := s.logs.ListBySchool(ctx, school)
	if err != nil {
		return nil, err
	}
	if err := s.logs.FillSchoolObservations(ctx, logs); err != nil {
		return nil, err
	}

	return &models.StudentReports{
		SchoolName:     school,
		TotalStudents:  len(students),
		StudentReports: buildStudentReports(students, logs),
	}, nil
}

// ──── shaping helpers ────

func buildStudentStats(students []models.Student, logs []models.SchoolLog) []models.StudentStats {
	byStudent := make(map[uuid.UUID]*models.StudentStats, len(students))
	for _, st := range students {
		byStudent[st.ID] = &models.StudentStats{
			StudentID:    st.ID,
			StudentName:  st.Name,
			StudentEmail: st.Email,
			Simulations:  make([]models.LogSummary, 0),
		}
	}

	unique := make(map[uuid.UUID]map[string]bool)
	for _, l := range logs {
		stat, ok := byStudent[l.StudentID]
		if !ok {
			continue
		}
		stat.TotalSimulations++
		if l.IsCompleted {
			stat.CompletedSimulations++
		}
		if unique[l.StudentID] == nil {
			unique[l.StudentID] = make(map[string]bool)
		}
		unique[l.StudentID][l.SimulationName] = true
		stat.Simulations = append(stat.Simulations, models.LogSummary{
			Name:        l.SimulationName,
			Started:     l.Started,
			Ended:       l.Ended,
			IsCompleted: l.IsCompleted,
		})
	}

	stats := make([]models.StudentStats, 0, len(students))
	for _, st := range students {
		stat := byStudent[st.ID]
		stat.UniqueSimulations = len(unique[st.ID])
		stats = append(stats, *stat)
	}
	return stats
}

// buildTimeline emits the trailing 30 calendar days (UTC), oldest first.
// Each day counts the logs started that day and, of those, how many are
// completed.
func buildTimeline(logs []models.SchoolLog, now time.Time) []models.SeriesPoint {
	type dayCounts struct{ started, completed int }
	byDate := make(map[string]*dayCounts)

	cutoff := now.UTC().AddDate(0, 0, -29).Truncate(24 * time.Hour)
	for _, l := range logs {
		day := l.Started.UTC().Truncate(24 * time.Hour)
		if day.Before(cutoff) || day.After(now.UTC()) {
			continue
		}
		key := day.Format("2006-01-02")
		if byDate[key] == nil {
			byDate[key] = &dayCounts{}
		}
		byDate[key].started++
		if l.IsCompleted {
			byDate[key].completed++
		}
	}

	points := make([]models.SeriesPoint, 0, 30)
	for i := 29; i >= 0; i-- {
		key := now.UTC().AddDate(0, 0, -i).Format("2006-01-02")
		point := models.SeriesPoint{Date: key}
		if c := byDate[key]; c != nil {
			point.Started = c.started
			point.Completed = c.completed
		}
		points = append(points, point)
	}
	return points
}

// buildCategoryBreakdown counts logs per category by matching the simulation
// name against the keyword rules, case-insensitively.
func buildCategoryBreakdown(logs []models.SchoolLog, rules []CategoryRule) []models.LabelCount {
	counts := make(map[string]int)
	for _, l := range logs {
		counts[categorize(l.SimulationName, rules)]++
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	breakdown := make([]models.LabelCount, 0, len(labels))
	for _, label := range labels {
		breakdown = append(breakdown, models.LabelCount{Label: label, Value: counts[label]})
	}
	return breakdown
}

func categorize(simulationName string, rules []CategoryRule) string {
	lower := strings.ToLower(simulationName)
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Category
			}
		}
	}
	return categoryFallback
}

// topStudents ranks by total logs descending, first names as labels.
func topStudents(stats []models.StudentStats, limit int) []models.StudentPerformance {
	ranked := make([]models.StudentStats, len(stats))
	copy(ranked, stats)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalSimulations > ranked[j].TotalSimulations
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	top := make([]models.StudentPerformance, 0, len(ranked))
	for _, st := range ranked {
		label := st.StudentName
		if first, _, ok := strings.Cut(st.StudentName, " "); ok {
			label = first
		}
		top = append(top, models.StudentPerformance{
			Label:     label,
			Value:     st.TotalSimulations,
			Completed: st.CompletedSimulations,
		})
	}
	return top
}

// weeklyActivity counts logs started on each of the trailing 7 calendar days
// (UTC), oldest first, labeled by weekday.
func weeklyActivity(logs []models.SchoolLog, now time.Time) []models.LabelCount {
	activity := make([]models.LabelCount, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.UTC().AddDate(0, 0, -i)
		key := day.Format("2006-01-02")

		count := 0
		for _, l := range logs {
			if l.Started.UTC().Format("2006-01-02") == key {
				count++
			}
		}
		activity = append(activity, models.LabelCount{Label: day.Format("Mon"), Value: count})
	}
	return activity
}

// difficultyDistribution joins log names against the known definitions and
// counts by difficulty. Logs matching no definition are skipped.
func difficultyDistribution(logs []models.SchoolLog, static []models.StaticSimulation, sims []models.Simulation) []models.LabelCount {
	difficultyByName := make(map[string]string, len(static)+len(sims))
	for _, sim := range static {
		difficultyByName[sim.Name] = sim.Difficulty
	}
	for _, sim := range sims {
		difficultyByName[sim.Name] = sim.Difficulty
	}

	counts := make(map[string]int)
	for _, l := range logs {
		if d, ok := difficultyByName[l.SimulationName]; ok {
			counts[d]++
		}
	}

	ordered := []string{models.DifficultyBeginner, models.DifficultyIntermediate, models.DifficultyAdvanced}
	distribution := make([]models.LabelCount, 0, len(ordered))
	for _, d := range ordered {
		distribution = append(distribution, models.LabelCount{Label: d, Value: counts[d]})
	}
	return distribution
}

func buildStudentReports(students []models.Student, logs []models.SchoolLog) []models.StudentReport {
	byStudent := make(map[uuid.UUID][]models.SchoolLog)
	for _, l := range logs {
		byStudent[l.StudentID] = append(byStudent[l.StudentID], l)
	}

	reports := make([]models.StudentReport, 0, len(students))
	for _, st := range students {
		studentLogs := byStudent[st.ID]

		completedCount := 0
		var totalTime time.Duration
		sims := make([]models.SimulationReport, 0, len(studentLogs))
		for _, l := range studentLogs {
			if l.IsCompleted {
				completedCount++
			}

			var durationMinutes *int
			if l.Ended != nil {
				d := l.Ended.Sub(l.Started)
				totalTime += d
				m := int(math.Round(d.Minutes()))
				durationMinutes = &m
			}

			sims = append(sims, models.SimulationReport{
				Name:            l.SimulationName,
				Started:         l.Started,
				Ended:           l.Ended,
				DurationMinutes: durationMinutes,
				IsCompleted:     l.IsCompleted,
				Observations:    l.Observations,
			})
		}

		rate := 0
		if len(studentLogs) > 0 {
			rate = int(math.Round(float64(completedCount) / float64(len(studentLogs)) * 100))
		}
		avgMinutes := 0
		if completedCount > 0 {
			avgMinutes = int(math.Round(totalTime.Minutes() / float64(completedCount)))
		}

		reports = append(reports, models.StudentReport{
			StudentID:            st.ID,
			Name:                 st.Name,
			Email:                st.Email,
			Phone:                st.Phone,
			Address:              st.Address,
			Bio:                  st.Bio,
			AvatarURL:            st.AvatarURL,
			RegisteredAt:         st.CreatedAt,
			ApprovedBy:           st.ApprovedBy,
			TotalSimulations:     len(studentLogs),
			CompletedSimulations: completedCount,
			CompletionRate:       rate,
			TotalTimeMinutes:     int(math.Round(totalTime.Minutes())),
			AvgTimeMinutes:       avgMinutes,
			Simulations:          sims,
		})
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].TotalSimulations > reports[j].TotalSimulations
	})
	return reports
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
