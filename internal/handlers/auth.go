package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/foxxcyber/menu-board/internal/database"
	"github.com/foxxcyber/menu-board/internal/middleware"
	"github.com/foxxcyber/menu-board/internal/models"
)

// Login handles user authentication
func (h *Handler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	user, err := h.store.GetUserByEmail(c.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return Error(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		return h.storeError(err, "authenticate")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return Error(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	if err := h.store.UpdateUserLastLogin(c.Context(), user.ID); err != nil {
		h.log.Warn("failed to record last login", zap.Int("user_id", user.ID), zap.Error(err))
	}

	return h.issueToken(c, fiber.StatusOK, user)
}

// Logout acknowledges a logout; tokens are discarded client-side
func (h *Handler) Logout(c *fiber.Ctx) error {
	return Message(c, nil, "logged out successfully")
}

// Signup creates a back-office account (admin). The role defaults to staff.
func (h *Handler) Signup(c *fiber.Ctx) error {
	var req models.SignupRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to process password")
	}

	user, err := h.store.CreateUser(c.Context(), strings.TrimSpace(req.Email), string(hashedPassword), req.Role)
	if err != nil {
		return h.storeError(err, "create user")
	}

	h.log.Info("account created",
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
		zap.Int("created_by", middleware.GetUserID(c)),
	)
	return h.issueToken(c, fiber.StatusCreated, user)
}

// Session returns the currently authenticated user
func (h *Handler) Session(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := h.store.GetUserByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return Error(c, fiber.StatusUnauthorized, "session user no longer exists")
		}
		return h.storeError(err, "get user")
	}

	return Success(c, user)
}

func (h *Handler) issueToken(c *fiber.Ctx, status int, user *models.User) error {
	token, expiresAt, err := middleware.GenerateToken(h.cfg.JWTSecret, h.cfg.JWTExpiry, user)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.Status(status).JSON(APIResponse{
		OK: true,
		Data: models.AuthResponse{
			Token:     token,
			ExpiresAt: expiresAt,
			User:      user,
		},
	})
}
