package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/boostaproject/bap-api/app/auth"
	"github.com/boostaproject/bap-api/app/database"
)

type AdminAccount struct {
	Email    string
	Username string
	LastName string
	Password string
}

// CreateAdminTask creates the administrator unless a user with the same
// email already exists.
type CreateAdminTask struct {
	Task
	Account AdminAccount
	Created bool
	users   database.UserRepository
}

func NewCreateAdminTask(account AdminAccount, users database.UserRepository) *CreateAdminTask {
	return &CreateAdminTask{
		Task:    NewTask(TaskTypeCreateAdmin),
		Account: account,
		users:   users,
	}
}

func (t *CreateAdminTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	email := strings.ToLower(strings.TrimSpace(t.Account.Email))
	if email == "" || t.Account.Password == "" {
		return fmt.Errorf("administrator email and password are required")
	}

	existing, err := t.users.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up administrator: %w", err)
	}
	if existing != nil {
		slog.Info("Administrator already exists", "email", email)
		return nil
	}

	hash, err := auth.HashPassword(t.Account.Password)
	if err != nil {
		return err
	}

	admin := &database.User{
		Username:     t.Account.Username,
		LastName:     t.Account.LastName,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := t.users.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("failed to create administrator: %w", err)
	}
	t.Created = true

	slog.Info("Task completed",
		"type", string(t.Type),
		"email", email,
		"duration", t.GetDuration())

	return nil
}
