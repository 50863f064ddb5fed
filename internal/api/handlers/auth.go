package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskmaster/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register: POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterInput
	if err := parseBody(c, &req); err != nil {
		return err
	}

	res, err := h.auth.Register(c.UserContext(), req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, res, "User registered successfully")
}

// Login: POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginInput
	if err := parseBody(c, &req); err != nil {
		return err
	}

	res, err := h.auth.Login(c.UserContext(), req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, res, "Login successful")
}

// Profile: GET /api/auth/profile
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	profile, err := h.auth.GetProfile(c.UserContext(), id.UserID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, profile, "")
}
