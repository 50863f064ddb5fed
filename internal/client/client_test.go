package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"taskmaster/configs"
	"taskmaster/internal/api"
	"taskmaster/internal/models"
	"taskmaster/internal/repository"
	"taskmaster/internal/service"
	"taskmaster/pkg/crypto"
	"taskmaster/pkg/token"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	auth := service.NewAuthService(
		repository.NewMemoryUserRepository(),
		crypto.NewPasswordHasher(bcrypt.MinCost),
		token.NewManager("test-secret", time.Hour),
		validator.New(),
	)
	tasks := service.NewTaskService(repository.NewMemoryTaskRepository())
	app := api.NewApp(configs.Config{Env: "test", CORSOrigin: "*"}, auth, tasks)

	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientTaskLifecycle(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	c := New(srv.URL)

	reg, err := c.Register(ctx, "a@x.com", "password1", "Ann")
	require.NoError(t, err)
	assert.Equal(t, reg.Token, c.Token())

	profile, err := c.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ann", profile.Name)

	task, err := c.CreateTask(ctx, TaskInput{Title: "Buy milk", Description: "2 litres"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, task.Status)

	tasks, err := c.ListTasks(ctx, models.TaskFilter{Search: "milk"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	updated, err := c.UpdateTask(ctx, task.ID, models.TaskPatch{Status: models.Some(models.StatusCompleted)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, "2 litres", updated.Description)

	got, err := c.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)

	require.NoError(t, c.DeleteTask(ctx, task.ID))

	tasks, err = c.ListTasks(ctx, models.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestClientErrors(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	c := New(srv.URL)

	_, err := c.ListTasks(ctx, models.TaskFilter{})
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))

	_, err = c.Register(ctx, "a@x.com", "password1", "Ann")
	require.NoError(t, err)
	_, err = c.Login(ctx, "a@x.com", "nope-nope")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid email or password", apiErr.Message)

	_, err = c.GetTask(ctx, "missing")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}
