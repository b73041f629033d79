// Package auth provides the credential endpoints backed by the identity gateway.
package auth

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/h108777/ThreatMap/internal/identity"
	"github.com/h108777/ThreatMap/model"
)

// Provider is the identity gateway surface the handlers need.
type Provider interface {
	CreateUser(ctx context.Context, email, password, name string) (*model.User, error)
	VerifyUser(ctx context.Context, email, password string) (*model.User, error)
	IssueToken(user *model.User) (string, error)
}

// LoginUser verifies credentials and returns the user payload with a session token.
func LoginUser(provider Provider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}

		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		if req.Email == "" || req.Password == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email and password are required"})
		}

		user, err := provider.VerifyUser(c.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, identity.ErrInvalidCredentials) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Authentication failed"})
		}

		token, err := provider.IssueToken(user)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Authentication failed"})
		}

		return c.JSON(fiber.Map{
			"uid":   user.UID,
			"email": user.Email,
			"name":  user.Name,
			"token": token,
		})
	}
}

// CreateUser registers a new account.
func CreateUser(provider Provider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
			Name     string `json:"name"`
		}

		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		if req.Email == "" || req.Password == "" || req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "All fields are required"})
		}

		user, err := provider.CreateUser(c.Context(), req.Email, req.Password, req.Name)
		if err != nil {
			if errors.Is(err, identity.ErrUserExists) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email is already in use"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
		}

		return c.JSON(fiber.Map{
			"uid":   user.UID,
			"email": user.Email,
			"name":  user.Name,
		})
	}
}
