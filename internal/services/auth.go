package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"physim-backend/internal/middleware"
	"physim-backend/internal/models"
	"physim-backend/internal/repository"
)

type AuthService struct {
	accounts *repository.AccountRepo
	redis    *redis.Client
	jwt      *middleware.JWTAuth
}

func NewAuthService(accounts *repository.AccountRepo, redisClient *redis.Client, jwt *middleware.JWTAuth) *AuthService {
	return &AuthService{
		accounts: accounts,
		redis:    redisClient,
		jwt:      jwt,
	}
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Register creates a Student awaiting approval.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.Student, error) {
	// Validate all fields at once
	fieldErrors := make(map[string]string)

	if req.Name == "" {
		fieldErrors["name"] = "Name is required"
	}
	if !emailRegex.MatchString(req.Email) {
		fieldErrors["email"] = "Invalid email format"
	}
	if req.School == "" {
		fieldErrors["school"] = "School is required"
	}
	if err := validatePassword(req.Password); err != nil {
		fieldErrors["password"] = err.Error()
	}

	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	// Check uniqueness across all three account kinds
	if taken, err := s.emailTaken(ctx, req.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, &ConflictError{Message: "Email already in use"}
	}

	// Hash password (bcrypt cost 12)
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	student := &models.Student{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		School:       req.School,
	}

	if err := s.accounts.CreateStudent(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

// CreateTeacher provisions a teacher account on behalf of an admin.
func (s *AuthService) CreateTeacher(ctx context.Context, req models.CreateTeacherRequest) (*models.Teacher, error) {
	fieldErrors := make(map[string]string)

	if req.Name == "" {
		fieldErrors["name"] = "Name is required"
	}
	if !emailRegex.MatchString(req.Email) {
		fieldErrors["email"] = "Invalid email format"
	}
	if req.School == "" {
		fieldErrors["school"] = "School is required"
	}
	if err := validatePassword(req.Password); err != nil {
		fieldErrors["password"] = err.Error()
	}

	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	if taken, err := s.emailTaken(ctx, req.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, &ConflictError{Message: "Email already in use"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	teacher := &models.Teacher{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		School:       req.School,
		Phone:        req.Phone,
		Bio:          req.Bio,
		AvatarURL:    req.AvatarURL,
		Address:      req.Address,
	}

	if err := s.accounts.CreateTeacher(ctx, teacher); err != nil {
		return nil, err
	}

	return teacher, nil
}

// Login resolves the email against admins, then teachers, then students.
// Unapproved students may log in; they are gated per-route instead.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthTokens, error) {
	id, role, school, hash, err := s.findAccount(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &UnauthorizedError{Message: "Invalid email or password"}
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		return nil, &UnauthorizedError{Message: "Invalid email or password"}
	}

	return s.issueTokens(ctx, id, role, school)
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*models.AuthTokens, error) {
	val, err := s.redis.Get(ctx, "refresh:"+refreshToken).Result()
	if err != nil {
		return nil, &UnauthorizedError{Message: "Invalid or expired refresh token. Please log in again."}
	}

	role, idStr, ok := strings.Cut(val, ":")
	if !ok {
		return nil, &UnauthorizedError{Message: "Invalid refresh token"}
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in refresh token: %w", err)
	}

	// Delete old token (rotation)
	s.redis.Del(ctx, "refresh:"+refreshToken)

	school, err := s.schoolFor(ctx, id, role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &UnauthorizedError{Message: "Account no longer exists"}
		}
		return nil, err
	}

	return s.issueTokens(ctx, id, role, school)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.redis.Del(ctx, "refresh:"+refreshToken).Err()
}

func (s *AuthService) issueTokens(ctx context.Context, id uuid.UUID, role, school string) (*models.AuthTokens, error) {
	accessToken, err := s.jwt.GenerateAccessToken(id, role, school)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := generateToken(64)
	if err != nil {
		return nil, err
	}

	// Store refresh token in Redis (7 days)
	err = s.redis.Set(ctx, "refresh:"+refreshToken, role+":"+id.String(), 7*24*time.Hour).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &models.AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Role:         role,
		ExpiresIn:    900,
	}, nil
}

func (s *AuthService) findAccount(ctx context.Context, email string) (uuid.UUID, string, string, string, error) {
	if admin, err := s.accounts.GetAdminByEmail(ctx, email); err == nil {
		return admin.ID, models.RoleAdmin, "", admin.PasswordHash, nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, "", "", "", err
	}

	if teacher, err := s.accounts.GetTeacherByEmail(ctx, email); err == nil {
		return teacher.ID, models.RoleTeacher, teacher.School, teacher.PasswordHash, nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, "", "", "", err
	}

	student, err := s.accounts.GetStudentByEmail(ctx, email)
	if err != nil {
		return uuid.Nil, "", "", "", err
	}
	return student.ID, models.RoleStudent, student.School, student.PasswordHash, nil
}

func (s *AuthService) schoolFor(ctx context.Context, id uuid.UUID, role string) (string, error) {
	switch role {
	case models.RoleAdmin:
		return "", nil
	case models.RoleTeacher:
		teacher, err := s.accounts.GetTeacherByID(ctx, id)
		if err != nil {
			return "", err
		}
		return teacher.School, nil
	case models.RoleStudent:
		student, err := s.accounts.GetStudentByID(ctx, id)
		if err != nil {
			return "", err
		}
		return student.School, nil
	default:
		return "", &UnauthorizedError{Message: "Unknown role"}
	}
}

func (s *AuthService) emailTaken(ctx context.Context, email string) (bool, error) {
	_, _, _, _, err := s.findAccount(ctx, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return false, err
}

func generateToken(bytes int) (string, error) {
	b := make([]byte, bytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func validatePassword(pw string) error {
	if len(pw) < 8 {
		return fmt.Errorf("Password must be at least 8 characters")
	}
	hasNumber := false
	for _, ch := range pw {
		if unicode.IsDigit(ch) {
			hasNumber = true
			break
		}
	}
	if !hasNumber {
		return fmt.Errorf("Password must contain at least one number")
	}
	return nil
}

// Custom errors
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }

type ForbiddenError struct{ Message string }

func (e *ForbiddenError) Error() string { return e.Message }

type InvalidActionError struct{ Message string }

func (e *InvalidActionError) Error() string { return e.Message }
