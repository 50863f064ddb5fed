// Package config wires the stores, cache and services for one process.
package config

import (
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"

	"taskmaster/configs"
	"taskmaster/internal/cache"
	"taskmaster/internal/repository"
	"taskmaster/internal/service"
	"taskmaster/pkg/crypto"
	"taskmaster/pkg/token"
)

// Dependencies dibuat sekali di cmd/api lalu diteruskan ke bawah,
// tidak ada lagi global DB/Redis.
type Dependencies struct {
	Config   configs.Config
	DB       *sql.DB       // nil untuk STORE=memory
	Redis    *redis.Client // nil kalau REDIS_HOST kosong
	Validate *validator.Validate
}

type Services struct {
	Auth  *service.AuthService
	Tasks *service.TaskService
}

func NewDependencies(cfg configs.Config, db *sql.DB, rdb *redis.Client) *Dependencies {
	return &Dependencies{
		Config:   cfg,
		DB:       db,
		Redis:    rdb,
		Validate: validator.New(),
	}
}

// Repositories picks Postgres when a DB handle is present and the in-memory
// stores otherwise. The task store is fronted by Redis when a client is set.
func (d *Dependencies) Repositories() (repository.UserRepository, repository.TaskRepository) {
	var users repository.UserRepository
	var tasks repository.TaskRepository
	if d.DB != nil {
		users = repository.NewPostgresUserRepository(d.DB)
		tasks = repository.NewPostgresTaskRepository(d.DB)
	} else {
		users = repository.NewMemoryUserRepository()
		tasks = repository.NewMemoryTaskRepository()
	}

	if d.Redis != nil {
		tasks = cache.NewTaskCache(tasks, d.Redis, d.Config.CacheTTL)
	}
	return users, tasks
}

func (d *Dependencies) Services() Services {
	users, tasks := d.Repositories()
	return Services{
		Auth: service.NewAuthService(
			users,
			crypto.NewPasswordHasher(d.Config.BcryptCost),
			token.NewManager(d.Config.JWTSecret, d.Config.JWTExpiresIn),
			d.Validate,
		),
		Tasks: service.NewTaskService(tasks),
	}
}
