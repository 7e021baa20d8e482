package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/gfdmit/kanban/internal/auth"
	"github.com/gfdmit/kanban/internal/model"
	"github.com/gfdmit/kanban/internal/repository"
	"github.com/google/uuid"
)

type seedUser struct {
	email    string
	name     string
	password string
}

var seedUsers = []seedUser{
	{"admin@example.com", "System Administrator", "Admin123!"},
	{"max.dev@example.com", "Max Developer", "User123!"},
	{"lisa.support@example.com", "Lisa Support", "User123!"},
}

// SeedDemo fills an empty store with demo users and a demo board. Existing
// users are kept; boards are only seeded when none exist.
func (svc *Service) SeedDemo(ctx context.Context) error {
	users := make(map[string]string, len(seedUsers))
	for _, su := range seedUsers {
		existing, err := svc.repo.GetUserByEmail(ctx, su.email)
		if err == nil {
			users[su.email] = existing.ID
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("seed: %v", err)
		}

		hash, err := auth.HashPassword(su.password)
		if err != nil {
			return fmt.Errorf("seed: %v", err)
		}
		user := &model.User{
			ID:       uuid.NewString(),
			Email:    su.email,
			FullName: su.name,
		}
		if err := svc.repo.CreateUser(ctx, user, hash); err != nil {
			return fmt.Errorf("seed: %v", err)
		}
		users[su.email] = user.ID
	}

	count, err := svc.repo.CountBoards(ctx)
	if err != nil {
		return fmt.Errorf("seed: %v", err)
	}
	if count > 0 {
		return nil
	}

	admin := users["admin@example.com"]
	dev := users["max.dev@example.com"]

	desc := "Demo board created by the seeder."
	board, err := svc.CreateBoard(ctx, admin, "Product Launch", &desc)
	if err != nil {
		return fmt.Errorf("seed: %v", err)
	}

	columns, err := svc.repo.ListColumns(ctx, board.ID)
	if err != nil {
		return fmt.Errorf("seed: %v", err)
	}

	high := string(model.PriorityHigh)
	tasks := []struct {
		column int
		fields TaskFields
	}{
		{0, TaskFields{Title: "Write launch announcement", Priority: &high, AssignedUserID: &dev}},
		{0, TaskFields{Title: "Prepare pricing page"}},
		{1, TaskFields{Title: "Ship beta to early adopters", AssignedUserID: &dev}},
		{2, TaskFields{Title: "Collect waitlist signups"}},
	}
	for _, tt := range tasks {
		if tt.column >= len(columns) {
			continue
		}
		if _, err := svc.CreateTask(ctx, admin, columns[tt.column].ID, tt.fields); err != nil {
			return fmt.Errorf("seed: %v", err)
		}
	}

	log.Println("[SEED] demo data created")
	return nil
}
