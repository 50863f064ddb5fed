package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"taskmaster/internal/repository"
	"taskmaster/pkg/crypto"
	"taskmaster/pkg/token"
)

const testSecret = "test-secret"

type fixture struct {
	auth  *AuthService
	tasks *TaskService
	users *repository.MemoryUserRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	users := repository.NewMemoryUserRepository()
	auth := NewAuthService(users, crypto.NewPasswordHasher(bcrypt.MinCost), token.NewManager(testSecret, time.Hour), validator.New())
	return fixture{
		auth:  auth,
		tasks: NewTaskService(repository.NewMemoryTaskRepository()),
		users: users,
	}
}

func (f fixture) register(t *testing.T, email string) *AuthResult {
	t.Helper()
	res, err := f.auth.Register(context.Background(), RegisterInput{Email: email, Password: "password1", Name: "Ann"})
	require.NoError(t, err)
	return res
}
