package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"physim-backend/internal/models"
)

// AccountRepo covers the three account tables. Admins, teachers and students
// live in independent tables but share the email+hash+role contract.
type AccountRepo struct {
	pool *pgxpool.Pool
}

func NewAccountRepo(pool *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

const teacherColumns = `id, name, email, password_hash, school, phone, bio, avatar_url,
	address_line1, address_city, address_state, address_zip, created_at`

const studentColumns = teacherColumns + `, approved, approved_by`

func scanTeacher(row interface{ Scan(...any) error }) (*models.Teacher, error) {
	t := &models.Teacher{}
	err := row.Scan(
		&t.ID, &t.Name, &t.Email, &t.PasswordHash, &t.School, &t.Phone, &t.Bio, &t.AvatarURL,
		&t.Address.Line1, &t.Address.City, &t.Address.State, &t.Address.Zip, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func scanStudent(row interface{ Scan(...any) error }) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(
		&s.ID, &s.Name, &s.Email, &s.PasswordHash, &s.School, &s.Phone, &s.Bio, &s.AvatarURL,
		&s.Address.Line1, &s.Address.City, &s.Address.State, &s.Address.Zip, &s.CreatedAt,
		&s.Approved, &s.ApprovedBy,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ──── Admins ────

func (r *AccountRepo) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	admin.ID = uuid.New()
	return r.pool.QueryRow(ctx,
		`INSERT INTO admins (id, email, password_hash) VALUES ($1, $2, $3) RETURNING created_at`,
		admin.ID, admin.Email, admin.PasswordHash,
	).Scan(&admin.CreatedAt)
}

func (r *AccountRepo) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	a := &models.Admin{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM admins WHERE email = $1`, email,
	).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ──── Teachers ────

func (r *AccountRepo) CreateTeacher(ctx context.Context, t *models.Teacher) error {
	t.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO teachers (id, name, email, password_hash, school, phone, bio, avatar_url,
			address_line1, address_city, address_state, address_zip)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at`,
		t.ID, t.Name, t.Email, t.PasswordHash, t.School, t.Phone, t.Bio, t.AvatarURL,
		t.Address.Line1, t.Address.City, t.Address.State, t.Address.Zip,
	).Scan(&t.CreatedAt)
}

func (r *AccountRepo) GetTeacherByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	return scanTeacher(r.pool.QueryRow(ctx,
		`SELECT `+teacherColumns+` FROM teachers WHERE email = $1`, email))
}

func (r *AccountRepo) GetTeacherByID(ctx context.Context, id uuid.UUID) (*models.Teacher, error) {
	return scanTeacher(r.pool.QueryRow(ctx,
		`SELECT `+teacherColumns+` FROM teachers WHERE id = $1`, id))
}

func (r *AccountRepo) ListTeachers(ctx context.Context) ([]models.Teacher, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+teacherColumns+` FROM teachers ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teachers := make([]models.Teacher, 0)
	for rows.Next() {
		t, err := scanTeacher(rows)
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, *t)
	}
	return teachers, rows.Err()
}

func (r *AccountRepo) ListTeacherInfoBySchool(ctx context.Context, school string) ([]models.TeacherInfo, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT name, email FROM teachers WHERE school = $1 ORDER BY name`, school)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teachers := make([]models.TeacherInfo, 0)
	for rows.Next() {
		var t models.TeacherInfo
		if err := rows.Scan(&t.Name, &t.Email); err != nil {
			return nil, err
		}
		teachers = append(teachers, t)
	}
	return teachers, rows.Err()
}

func (r *AccountRepo) UpdateTeacherProfile(ctx context.Context, id uuid.UUID, req models.UpdateProfileRequest) (*models.Teacher, error) {
	return scanTeacher(r.pool.QueryRow(ctx, `
		UPDATE teachers SET
			name = COALESCE($2, name),
			phone = COALESCE($3, phone),
			bio = COALESCE($4, bio),
			avatar_url = COALESCE($5, avatar_url),
			address_line1 = COALESCE($6, address_line1),
			address_city = COALESCE($7, address_city),
			address_state = COALESCE($8, address_state),
			address_zip = COALESCE($9, address_zip)
		WHERE id = $1
		RETURNING `+teacherColumns,
		id, req.Name, req.Phone, req.Bio, req.AvatarURL,
		addressField(req.Address, func(a models.Address) string { return a.Line1 }),
		addressField(req.Address, func(a models.Address) string { return a.City }),
		addressField(req.Address, func(a models.Address) string { return a.State }),
		addressField(req.Address, func(a models.Address) string { return a.Zip }),
	))
}

// ──── Students ────

func (r *AccountRepo) CreateStudent(ctx context.Context, s *models.Student) error {
	s.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO students (id, name, email, password_hash, school)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		s.ID, s.Name, s.Email, s.PasswordHash, s.School,
	).Scan(&s.CreatedAt)
}

func (r *AccountRepo) GetStudentByEmail(ctx context.Context, email string) (*models.Student, error) {
	return scanStudent(r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE email = $1`, email))
}

func (r *AccountRepo) GetStudentByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	return scanStudent(r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = $1`, id))
}

func (r *AccountRepo) IsStudentApproved(ctx context.Context, id uuid.UUID) (bool, error) {
	var approved bool
	err := r.pool.QueryRow(ctx, `SELECT approved FROM students WHERE id = $1`, id).Scan(&approved)
	return approved, err
}

func (r *AccountRepo) UpdateStudentProfile(ctx context.Context, id uuid.UUID, req models.UpdateProfileRequest) (*models.Student, error) {
	return scanStudent(r.pool.QueryRow(ctx, `
		UPDATE students SET
			name = COALESCE($2, name),
			phone = COALESCE($3, phone),
			bio = COALESCE($4, bio),
			avatar_url = COALESCE($5, avatar_url),
			address_line1 = COALESCE($6, address_line1),
			address_city = COALESCE($7, address_city),
			address_state = COALESCE($8, address_state),
			address_zip = COALESCE($9, address_zip)
		WHERE id = $1
		RETURNING `+studentColumns,
		id, req.Name, req.Phone, req.Bio, req.AvatarURL,
		addressField(req.Address, func(a models.Address) string { return a.Line1 }),
		addressField(req.Address, func(a models.Address) string { return a.City }),
		addressField(req.Address, func(a models.Address) string { return a.State }),
		addressField(req.Address, func(a models.Address) string { return a.Zip }),
	))
}

// ListPendingStudents returns unapproved students newest first; school == nil
// means no school filter (admin scope).
func (r *AccountRepo) ListPendingStudents(ctx context.Context, school *string) ([]models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE approved = FALSE`
	args := []any{}
	if school != nil {
		query += ` AND school = $1`
		args = append(args, *school)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]models.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *s)
	}
	return students, rows.Err()
}

func (r *AccountRepo) ListApprovedStudentsBySchool(ctx context.Context, school string) ([]models.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+studentColumns+` FROM students WHERE school = $1 AND approved = TRUE ORDER BY name`, school)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]models.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *s)
	}
	return students, rows.Err()
}

// ApproveStudent marks the student approved and records who approved them.
// Returns the number of rows touched so callers can distinguish a missing id.
func (r *AccountRepo) ApproveStudent(ctx context.Context, id, approvedBy uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE students SET approved = TRUE, approved_by = $2 WHERE id = $1`, id, approvedBy)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DeleteStudent removes the record outright (rejection path).
func (r *AccountRepo) DeleteStudent(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func addressField(addr *models.Address, pick func(models.Address) string) *string {
	if addr == nil {
		return nil
	}
	v := pick(*addr)
	return &v
}
