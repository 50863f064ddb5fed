// Package api builds the Fiber application and wires routes to handlers.
package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"taskmaster/configs"
	"taskmaster/internal/api/handlers"
	"taskmaster/internal/apperror"
	"taskmaster/internal/middleware"
	"taskmaster/internal/service"
)

// NewApp returns a ready-to-listen Fiber app with middleware, routes, the
// health check and the catch-all 404.
func NewApp(cfg configs.Config, auth *service.AuthService, tasks *service.TaskService) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "taskmaster",
		ErrorHandler: middleware.ErrorHandler(cfg.IsProduction()),
	})

	// Middleware
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(corsConfig(cfg.CORSOrigin)))

	app.Get("/health", handlers.Health)
	RegisterRoutes(app, auth, tasks)

	app.Use(func(c *fiber.Ctx) error {
		return apperror.NotFound(fmt.Sprintf("Route %s not found", c.OriginalURL()))
	})
	return app
}

func RegisterRoutes(app *fiber.App, auth *service.AuthService, tasks *service.TaskService) {
	api := app.Group("/api")
	requireAuth := middleware.RequireAuth(auth)

	// Auth
	authHandler := handlers.NewAuthHandler(auth)
	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Get("/profile", requireAuth, authHandler.Profile)

	// Task
	taskHandler := handlers.NewTaskHandler(tasks)
	taskRoutes := api.Group("/tasks", requireAuth)
	taskRoutes.Post("/", taskHandler.CreateTask)
	taskRoutes.Get("/", taskHandler.ListTasks)
	taskRoutes.Get("/:id", taskHandler.GetTask)
	taskRoutes.Put("/:id", taskHandler.UpdateTask)
	taskRoutes.Delete("/:id", taskHandler.DeleteTask)
}

func corsConfig(origin string) cors.Config {
	cfg := cors.Config{
		AllowOrigins: origin,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}
	// fiber menolak wildcard origin bersama credentials
	if origin != "*" {
		cfg.AllowCredentials = true
	}
	return cfg
}
