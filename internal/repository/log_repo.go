package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"physim-backend/internal/models"
)

type LogRepo struct {
	pool *pgxpool.Pool
}

func NewLogRepo(pool *pgxpool.Pool) *LogRepo {
	return &LogRepo{pool: pool}
}

const logColumns = `id, student_id, simulation_name, started, ended, is_completed, created_at`

func scanLog(row interface{ Scan(...any) error }) (*models.SimulationLog, error) {
	l := &models.SimulationLog{}
	err := row.Scan(&l.ID, &l.StudentID, &l.SimulationName, &l.Started, &l.Ended, &l.IsCompleted, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	l.Observations = make([]models.Observation, 0)
	return l, nil
}

// GetOrStart creates the (student, simulation) record or returns the existing
// one. The UNIQUE constraint makes this atomic: a concurrent loser's insert
// becomes a no-op and falls through to the read, so two racing starts never
// produce two rows and the original started timestamp survives.
func (r *LogRepo) GetOrStart(ctx context.Context, studentID uuid.UUID, simulationName string) (*models.SimulationLog, error) {
	log, err := scanLog(r.pool.QueryRow(ctx, `
		INSERT INTO simulation_logs (id, student_id, simulation_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (student_id, simulation_name) DO NOTHING
		RETURNING `+logColumns,
		uuid.New(), studentID, simulationName))
	if err == nil {
		return log, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return r.GetByStudentAndName(ctx, studentID, simulationName)
}

func (r *LogRepo) GetByStudentAndName(ctx context.Context, studentID uuid.UUID, simulationName string) (*models.SimulationLog, error) {
	log, err := scanLog(r.pool.QueryRow(ctx, `
		SELECT `+logColumns+` FROM simulation_logs
		WHERE student_id = $1 AND simulation_name = $2`,
		studentID, simulationName))
	if err != nil {
		return nil, err
	}
	if err := r.attachObservations(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// AddObservation appends in a single round trip; the INSERT…SELECT finds the
// parent log so a missing log surfaces as pgx.ErrNoRows.
func (r *LogRepo) AddObservation(ctx context.Context, studentID uuid.UUID, simulationName, text string) (*models.SimulationLog, error) {
	var obsID uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO observations (id, log_id, student_id, text)
		SELECT $1, sl.id, $2, $3
		FROM simulation_logs sl
		WHERE sl.student_id = $2 AND sl.simulation_name = $4
		RETURNING id`,
		uuid.New(), studentID, text, simulationName,
	).Scan(&obsID)
	if err != nil {
		return nil, err
	}
	return r.GetByStudentAndName(ctx, studentID, simulationName)
}

// MarkDone completes the log. ended is stamped only once: a repeated call
// keeps the original end time.
func (r *LogRepo) MarkDone(ctx context.Context, studentID uuid.UUID, simulationName string) (*models.SimulationLog, error) {
	log, err := scanLog(r.pool.QueryRow(ctx, `
		UPDATE simulation_logs
		SET is_completed = TRUE, ended = COALESCE(ended, NOW())
		WHERE student_id = $1 AND simulation_name = $2
		RETURNING `+logColumns,
		studentID, simulationName))
	if err != nil {
		return nil, err
	}
	if err := r.attachObservations(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// Recent returns the student's own logs, newest started first.
func (r *LogRepo) Recent(ctx context.Context, studentID uuid.UUID, limit int) ([]models.SimulationLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+logColumns+` FROM simulation_logs
		WHERE student_id = $1
		ORDER BY started DESC
		LIMIT $2`, studentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]models.SimulationLog, 0)
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.fillObservations(ctx, logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// ListCompletedNames returns the set of simulation names the student has
// completed, used to annotate the available catalog.
func (r *LogRepo) ListCompletedNames(ctx context.Context, studentID uuid.UUID) (map[string]bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT simulation_name FROM simulation_logs
		WHERE student_id = $1 AND is_completed = TRUE`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	completed := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		completed[name] = true
	}
	return completed, rows.Err()
}

// ListBySchool returns every log belonging to the school's approved students,
// newest started first, joined with the student's identity. Observations are
// not attached; reporting callers that need them use FillSchoolObservations.
func (r *LogRepo) ListBySchool(ctx context.Context, school string) ([]models.SchoolLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT sl.id, sl.student_id, sl.simulation_name, sl.started, sl.ended, sl.is_completed,
			sl.created_at, st.name, st.email
		FROM simulation_logs sl
		JOIN students st ON st.id = sl.student_id
		WHERE st.school = $1 AND st.approved = TRUE
		ORDER BY sl.started DESC`, school)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]models.SchoolLog, 0)
	for rows.Next() {
		var l models.SchoolLog
		err := rows.Scan(&l.ID, &l.StudentID, &l.SimulationName, &l.Started, &l.Ended,
			&l.IsCompleted, &l.CreatedAt, &l.StudentName, &l.StudentEmail)
		if err != nil {
			return nil, err
		}
		l.Observations = make([]models.Observation, 0)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// FillSchoolObservations attaches observations to school logs in one query.
func (r *LogRepo) FillSchoolObservations(ctx context.Context, logs []models.SchoolLog) error {
	if len(logs) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(logs))
	index := make(map[uuid.UUID]int, len(logs))
	for i := range logs {
		ids[i] = logs[i].ID
		index[logs[i].ID] = i
	}

	rows, err := r.pool.Query(ctx, `
		SELECT log_id, id, text, created_at, student_id
		FROM observations
		WHERE log_id = ANY($1)
		ORDER BY created_at, id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var logID uuid.UUID
		var obs models.Observation
		if err := rows.Scan(&logID, &obs.ID, &obs.Text, &obs.Timestamp, &obs.StudentID); err != nil {
			return err
		}
		if i, ok := index[logID]; ok {
			logs[i].Observations = append(logs[i].Observations, obs)
		}
	}
	return rows.Err()
}

func (r *LogRepo) attachObservations(ctx context.Context, log *models.SimulationLog) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, text, created_at, student_id
		FROM observations
		WHERE log_id = $1
		ORDER BY created_at, id`, log.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var obs models.Observation
		if err := rows.Scan(&obs.ID, &obs.Text, &obs.Timestamp, &obs.StudentID); err != nil {
			return err
		}
		log.Observations = append(log.Observations, obs)
	}
	return rows.Err()
}

func (r *LogRepo) fillObservations(ctx context.Context, logs []models.SimulationLog) error {
	for i := range logs {
		if err := r.attachObservations(ctx, &logs[i]); err != nil {
			return err
		}
	}
	return nil
}
