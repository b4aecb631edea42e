package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"physim-backend/internal/database"
	"physim-backend/internal/models"
	"physim-backend/internal/repository"
)

// Bootstraps the platform admin account from ADMIN_EMAIL / ADMIN_PASSWORD.
// Safe to run repeatedly; an existing admin with the same email is left alone.
func main() {
	godotenv.Load()

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	pool, err := database.NewPostgresPool(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	accounts := repository.NewAccountRepo(pool)

	if _, err := accounts.GetAdminByEmail(ctx, email); err == nil {
		log.Printf("Admin %s already exists, nothing to do", email)
		return
	} else if !errors.Is(err, pgx.ErrNoRows) {
		log.Fatalf("Admin lookup failed: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &models.Admin{Email: email, PasswordHash: string(hash)}
	if err := accounts.CreateAdmin(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	log.Printf("Admin %s created (id %s)", email, admin.ID)
}
