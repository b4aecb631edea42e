package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin   = "ADMIN"
	RoleTeacher = "TEACHER"
	RoleStudent = "STUDENT"
)

type Address struct {
	Line1 string `json:"line1"`
	City  string `json:"city"`
	State string `json:"state"`
	Zip   string `json:"zip"`
}

type Admin struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Teacher struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	School       string    `json:"school"`
	Phone        string    `json:"phone"`
	Bio          string    `json:"bio"`
	AvatarURL    string    `json:"avatar_url"`
	Address      Address   `json:"address"`
	CreatedAt    time.Time `json:"created_at"`
}

type Student struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	School       string     `json:"school"`
	Phone        string     `json:"phone"`
	Bio          string     `json:"bio"`
	AvatarURL    string     `json:"avatar_url"`
	Address      Address    `json:"address"`
	Approved     bool       `json:"approved"`
	ApprovedBy   *uuid.UUID `json:"approved_by"`
	CreatedAt    time.Time  `json:"created_at"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	School   string `json:"school"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Role         string `json:"role"`
	ExpiresIn    int    `json:"expires_in"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UpdateProfileRequest carries partial profile edits; nil fields are left untouched.
type UpdateProfileRequest struct {
	Name      *string  `json:"name"`
	Phone     *string  `json:"phone"`
	Bio       *string  `json:"bio"`
	AvatarURL *string  `json:"avatar_url"`
	Address   *Address `json:"address"`
}

type CreateTeacherRequest struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	School    string  `json:"school"`
	Phone     string  `json:"phone"`
	Bio       string  `json:"bio"`
	AvatarURL string  `json:"avatar_url"`
	Address   Address `json:"address"`
}

type DecisionRequest struct {
	Action string `json:"action"`
}
