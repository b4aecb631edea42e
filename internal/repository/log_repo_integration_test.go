//go:build testutil
// +build testutil

package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	"physim-backend/internal/models"
	"physim-backend/internal/repository"
	"physim-backend/internal/services"
	"physim-backend/internal/testutil/testdb"
)

func startDB(t *testing.T) (context.Context, *testdb.Handle) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(h.Close)
	return ctx, h
}

func seedStudent(t *testing.T, ctx context.Context, accounts *repository.AccountRepo, email string) *models.Student {
	t.Helper()
	student := &models.Student{
		Name:         "Test Student",
		Email:        email,
		PasswordHash: "irrelevant",
		School:       "Springfield High",
	}
	if err := accounts.CreateStudent(ctx, student); err != nil {
		t.Fatal(err)
	}
	return student
}

func TestGetOrStart_SecondStartReturnsSameRecord(t *testing.T) {
	ctx, h := startDB(t)
	accounts := repository.NewAccountRepo(h.Pool)
	logs := repository.NewLogRepo(h.Pool)

	student := seedStudent(t, ctx, accounts, "start@school.edu")

	first, err := logs.GetOrStart(ctx, student.ID, "Ohm's Law")
	if err != nil {
		t.Fatal(err)
	}

	second, err := logs.GetOrStart(ctx, student.ID, "Ohm's Law")
	if err != nil {
		t.Fatal(err)
	}

	if second.ID != first.ID {
		t.Errorf("Expected the same record, got %s then %s", first.ID, second.ID)
	}
	if !second.Started.Equal(first.Started) {
		t.Errorf("Expected started unchanged, got %v then %v", first.Started, second.Started)
	}

	// Still exactly one row for the pair
	var count int
	err = h.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM simulation_logs
		WHERE student_id = $1 AND simulation_name = $2`,
		student.ID, "Ohm's Law").Scan(&count)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("Expected 1 row, got %d", count)
	}
}

func TestMarkDone_EndedIsNotRestamped(t *testing.T) {
	ctx, h := startDB(t)
	accounts := repository.NewAccountRepo(h.Pool)
	logs := repository.NewLogRepo(h.Pool)

	student := seedStudent(t, ctx, accounts, "done@school.edu")
	if _, err := logs.GetOrStart(ctx, student.ID, "Pendulum Lab"); err != nil {
		t.Fatal(err)
	}

	first, err := logs.MarkDone(ctx, student.ID, "Pendulum Lab")
	if err != nil {
		t.Fatal(err)
	}
	if !first.IsCompleted || first.Ended == nil {
		t.Fatalf("Expected completed log with ended set, got %+v", first)
	}

	// Push the clock past the first stamp so a re-stamp would be visible
	if _, err := h.Pool.Exec(ctx, `
		UPDATE simulation_logs SET ended = ended - INTERVAL '1 hour'
		WHERE student_id = $1 AND simulation_name = $2`,
		student.ID, "Pendulum Lab"); err != nil {
		t.Fatal(err)
	}
	shifted, err := logs.GetByStudentAndName(ctx, student.ID, "Pendulum Lab")
	if err != nil {
		t.Fatal(err)
	}

	second, err := logs.MarkDone(ctx, student.ID, "Pendulum Lab")
	if err != nil {
		t.Fatal(err)
	}
	if !second.Ended.Equal(*shifted.Ended) {
		t.Errorf("Expected ended to keep its value %v, got %v", *shifted.Ended, *second.Ended)
	}
}

func TestAddObservation_BeforeStart(t *testing.T) {
	ctx, h := startDB(t)
	accounts := repository.NewAccountRepo(h.Pool)
	logs := repository.NewLogRepo(h.Pool)

	student := seedStudent(t, ctx, accounts, "obs@school.edu")

	_, err := logs.AddObservation(ctx, student.ID, "Wave Interference", "no log yet")
	if !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("Expected pgx.ErrNoRows without a started log, got %v", err)
	}

	// And the service maps it to a not-found for the handler layer
	progress := services.NewProgressService(logs)
	_, err = progress.AddObservation(ctx, student.ID, "Wave Interference", "no log yet")
	var notFound *services.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Expected NotFoundError from the service, got %v", err)
	}

	// After starting, the append works and reads back in order
	if _, err := logs.GetOrStart(ctx, student.ID, "Wave Interference"); err != nil {
		t.Fatal(err)
	}
	log, err := logs.AddObservation(ctx, student.ID, "Wave Interference", "constructive at the center")
	if err != nil {
		t.Fatal(err)
	}
	if len(log.Observations) != 1 || log.Observations[0].Text != "constructive at the center" {
		t.Errorf("Expected the appended observation, got %+v", log.Observations)
	}
}

func TestRejectStudent_RecordIsGone(t *testing.T) {
	ctx, h := startDB(t)
	accounts := repository.NewAccountRepo(h.Pool)
	approval := services.NewApprovalService(accounts)

	student := seedStudent(t, ctx, accounts, "reject@school.edu")
	actor := seedStudent(t, ctx, accounts, "acting-admin@school.edu")

	if err := approval.Decide(ctx, student.ID, services.ActionReject, actor.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := accounts.GetStudentByID(ctx, student.ID); !errors.Is(err, pgx.ErrNoRows) {
		t.Errorf("Expected pgx.ErrNoRows after rejection, got %v", err)
	}

	// A second decision on the same id is a not-found
	err := approval.Decide(ctx, student.ID, services.ActionReject, actor.ID)
	var notFound *services.NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("Expected NotFoundError on repeated rejection, got %v", err)
	}
}
