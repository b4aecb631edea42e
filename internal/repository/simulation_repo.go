package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"physim-backend/internal/models"
)

type SimulationRepo struct {
	pool *pgxpool.Pool
}

func NewSimulationRepo(pool *pgxpool.Pool) *SimulationRepo {
	return &SimulationRepo{pool: pool}
}

const simulationColumns = `s.id, s.name, s.description, s.url, s.category, s.difficulty,
	s.duration, s.school, s.created_by, t.name, s.is_active, s.created_at, s.updated_at`

func scanSimulation(row interface{ Scan(...any) error }) (*models.Simulation, error) {
	s := &models.Simulation{}
	err := row.Scan(
		&s.ID, &s.Name, &s.Description, &s.URL, &s.Category, &s.Difficulty,
		&s.Duration, &s.School, &s.CreatedBy, &s.CreatorName, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SimulationRepo) Create(ctx context.Context, s *models.Simulation) error {
	s.ID = uuid.New()
	s.IsActive = true
	return r.pool.QueryRow(ctx, `
		INSERT INTO simulations (id, name, description, url, category, difficulty, duration, school, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`,
		s.ID, s.Name, s.Description, s.URL, s.Category, s.Difficulty, s.Duration, s.School, s.CreatedBy,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
}

func (r *SimulationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Simulation, error) {
	return scanSimulation(r.pool.QueryRow(ctx, `
		SELECT `+simulationColumns+`
		FROM simulations s JOIN teachers t ON t.id = s.created_by
		WHERE s.id = $1`, id))
}

// ListActiveBySchool returns the school's active teacher-authored simulations,
// newest first, each annotated with its creator's name.
func (r *SimulationRepo) ListActiveBySchool(ctx context.Context, school string) ([]models.Simulation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+simulationColumns+`
		FROM simulations s JOIN teachers t ON t.id = s.created_by
		WHERE s.school = $1 AND s.is_active = TRUE
		ORDER BY s.created_at DESC`, school)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sims := make([]models.Simulation, 0)
	for rows.Next() {
		s, err := scanSimulation(rows)
		if err != nil {
			return nil, err
		}
		sims = append(sims, *s)
	}
	return sims, rows.Err()
}

// ListBySchool returns all of the school's simulations including soft-deleted
// ones, for reporting over historical logs.
func (r *SimulationRepo) ListBySchool(ctx context.Context, school string) ([]models.Simulation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+simulationColumns+`
		FROM simulations s JOIN teachers t ON t.id = s.created_by
		WHERE s.school = $1
		ORDER BY s.created_at DESC`, school)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sims := make([]models.Simulation, 0)
	for rows.Next() {
		s, err := scanSimulation(rows)
		if err != nil {
			return nil, err
		}
		sims = append(sims, *s)
	}
	return sims, rows.Err()
}

// Update applies only the provided fields. The school predicate makes the
// update a no-match (pgx.ErrNoRows) when a teacher targets another school's
// simulation, indistinguishable from a missing id.
func (r *SimulationRepo) Update(ctx context.Context, id uuid.UUID, school string, req models.UpdateSimulationRequest) (*models.Simulation, error) {
	var updated models.Simulation
	err := r.pool.QueryRow(ctx, `
		UPDATE simulations SET
			name = COALESCE($3, name),
			description = COALESCE($4, description),
			url = COALESCE($5, url),
			category = COALESCE($6, category),
			difficulty = COALESCE($7, difficulty),
			duration = COALESCE($8, duration),
			is_active = COALESCE($9, is_active),
			updated_at = NOW()
		WHERE id = $1 AND school = $2
		RETURNING id`,
		id, school, req.Name, req.Description, req.URL, req.Category, req.Difficulty, req.Duration, req.IsActive,
	).Scan(&updated.ID)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, updated.ID)
}

// SoftDelete flips is_active; historical progress logs referencing the
// simulation by name are untouched.
func (r *SimulationRepo) SoftDelete(ctx context.Context, id uuid.UUID, school string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE simulations SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND school = $2`, id, school)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
