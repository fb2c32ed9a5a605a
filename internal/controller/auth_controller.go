package controller

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"agiliza_backend/internal/middleware"
	"agiliza_backend/internal/repository"
	"agiliza_backend/pkg/utils/jwt"
)

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

var authUsers repository.UserStore

func InitAuthController(users repository.UserStore) {
	authUsers = users
}

// Login issues a persistent session: a 30-day token returned in the body
// and mirrored into a cookie for the server-rendered admin pages.
func Login(c *fiber.Ctx) error {
	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":  "invalid_input",
			"error": "Dados inválidos",
		})
	}

	user, err := authUsers.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return invalidCredentials(c)
		}
		return authFailure(c, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return invalidCredentials(c)
	}

	token, err := jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"code":  "internal",
			"error": "Erro interno do servidor. Tente novamente.",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(jwt.SessionDuration),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

// GetMe resolves the authenticated operator. The dashboard calls it
// before rendering protected content.
func GetMe(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	user, err := authUsers.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch user",
		})
	}

	return c.JSON(fiber.Map{
		"user": user.GetPublicProfile(),
	})
}

func Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Path:     "/",
	})

	return c.JSON(fiber.Map{
		"message": "Sessão encerrada",
	})
}

func invalidCredentials(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"code":  "invalid_credentials",
		"error": "Email ou senha incorretos.",
	})
}

// authFailure maps store errors to the fixed user-facing categories:
// network, internal, or the unknown fallback embedding the raw error.
func authFailure(c *fiber.Ctx, err error) error {
	var netErr net.Error
	switch {
	case errors.As(err, &netErr), errors.Is(err, context.DeadlineExceeded):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"code":  "network",
			"error": "Erro de conexão. Verifique sua internet.",
		})
	case errors.Is(err, gorm.ErrInvalidDB), errors.Is(err, gorm.ErrInvalidTransaction):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"code":  "internal",
			"error": "Erro interno do servidor. Tente novamente.",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"code":  "unknown",
			"error": fmt.Sprintf("Erro: %v", err),
		})
	}
}
