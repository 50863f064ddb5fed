// Package repository holds the credential and task stores. Every task query is
// scoped by owner id, so a foreign task is indistinguishable from a missing one.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"taskmaster/internal/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// DBTX is the subset of database/sql used by the Postgres repositories.
// Both *sql.DB and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	List(ctx context.Context, userID string, filter models.TaskFilter) ([]models.Task, error)
	FindByID(ctx context.Context, userID, taskID string) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, userID, taskID string) error
}
