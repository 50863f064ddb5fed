package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"taskmaster/internal/apperror"
	"taskmaster/internal/models"
	"taskmaster/pkg/logger"
)

const (
	DemoEmail    = "demo@taskmaster.com"
	DemoPassword = "Demo123!"
	DemoName     = "Demo User"
)

// ErrAlreadySeeded means the demo account exists and nothing was written.
var ErrAlreadySeeded = errors.New("demo user already exists")

var demoTasks = []CreateTaskInput{
	{Title: "Complete project documentation", Description: "Write comprehensive README and API docs for the project", Status: models.StatusCompleted},
	{Title: "Review code and refactor", Description: "Go through codebase and improve code quality", Status: models.StatusInProgress},
	{Title: "Deploy to production", Description: "Deploy frontend and backend to Render", Status: models.StatusPending},
	{Title: "Write unit tests", Description: "Add test coverage for all API endpoints", Status: models.StatusPending},
	{Title: "Setup CI/CD pipeline", Description: "Configure automated deployment and testing", Status: models.StatusPending},
}

// SeedDemo creates the demo account and its sample tasks.
func SeedDemo(ctx context.Context, auth *AuthService, tasks *TaskService) (*AuthResult, error) {
	res, err := auth.Register(ctx, RegisterInput{Email: DemoEmail, Password: DemoPassword, Name: DemoName})
	if err != nil {
		if apperror.Is(err, apperror.KindConflict) {
			return nil, ErrAlreadySeeded
		}
		return nil, err
	}

	for _, in := range demoTasks {
		if _, err := tasks.Create(ctx, res.User.ID, in); err != nil {
			return nil, err
		}
	}

	logger.SystemLogger.Info("Demo data seeded", zap.String("email", DemoEmail), zap.Int("tasks", len(demoTasks)))
	return res, nil
}
