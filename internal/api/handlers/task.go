package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskmaster/internal/models"
	"taskmaster/internal/service"
)

type TaskHandler struct {
	tasks *service.TaskService
}

func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// CreateTask: POST /api/tasks
func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var req service.CreateTaskInput
	if err := parseBody(c, &req); err != nil {
		return err
	}

	task, err := h.tasks.Create(c.UserContext(), id.UserID, req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, task, "Task created successfully")
}

// ListTasks: GET /api/tasks?status=&search=
func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	filter := models.TaskFilter{
		Status: models.TaskStatus(c.Query("status")),
		Search: c.Query("search"),
	}
	tasks, err := h.tasks.List(c.UserContext(), id.UserID, filter)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, tasks, "")
}

// GetTask: GET /api/tasks/:id
func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	task, err := h.tasks.Get(c.UserContext(), id.UserID, c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, task, "")
}

// UpdateTask: PUT /api/tasks/:id, only the fields present in the body change.
func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var patch models.TaskPatch
	if err := parseBody(c, &patch); err != nil {
		return err
	}

	task, err := h.tasks.Update(c.UserContext(), id.UserID, c.Params("id"), patch)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, task, "Task updated successfully")
}

// DeleteTask: DELETE /api/tasks/:id
func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	if err := h.tasks.Delete(c.UserContext(), id.UserID, c.Params("id")); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, nil, "Task deleted successfully")
}
