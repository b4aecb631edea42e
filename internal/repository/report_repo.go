package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ReportRepo holds the read-side aggregate queries. It never writes.
type ReportRepo struct {
	pool *pgxpool.Pool
}

func NewReportRepo(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// DistinctSchools lists every school appearing among approved students.
func (r *ReportRepo) DistinctSchools(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT school FROM students WHERE approved = TRUE ORDER BY school`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schools := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		schools = append(schools, s)
	}
	return schools, rows.Err()
}

func (r *ReportRepo) CountTeachers(ctx context.Context, school string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM teachers WHERE school = $1`, school).Scan(&n)
	return n, err
}

func (r *ReportRepo) CountApprovedStudents(ctx context.Context, school string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM students WHERE school = $1 AND approved = TRUE`, school).Scan(&n)
	return n, err
}

// CountSchoolLogs counts progress logs across the school's approved students.
func (r *ReportRepo) CountSchoolLogs(ctx context.Context, school string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM simulation_logs sl
		JOIN students st ON st.id = sl.student_id
		WHERE st.school = $1 AND st.approved = TRUE`, school).Scan(&n)
	return n, err
}
