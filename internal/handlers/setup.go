package handlers

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/menu-board/internal/services"
)

// Health reports database availability plus which optional backends are wired
func (h *Handler) Health(c *fiber.Ctx) error {
	if c.QueryBool("refresh") {
		h.dbStatus.Reset()
	}

	available, err := h.dbStatus.Available(c.Context())
	status := fiber.Map{
		"database": available,
		"cache":    h.cache.Enabled(),
		"storage":  h.media != nil,
	}
	if !available {
		status["database_error"] = err.Error()
		return c.Status(fiber.StatusServiceUnavailable).JSON(APIResponse{
			Data:  status,
			Error: "database unavailable",
			Code:  CodeUnavailable,
		})
	}

	return Success(c, status)
}

// InitCategories inserts the default categories that are missing (admin)
func (h *Handler) InitCategories(c *fiber.Ctx) error {
	defaults := services.DefaultCategories()
	inserted, err := h.store.InsertMissingCategories(c.Context(), defaults)
	if err != nil {
		return h.storeError(err, "initialize categories")
	}

	if inserted > 0 {
		h.invalidateMenu(c)
	}
	return Message(c, fiber.Map{
		"inserted": inserted,
		"total":    len(defaults),
	}, "default categories ensured")
}

// EnsureAdmin creates the configured admin account if it is missing.
// The request must carry the setup token in X-Setup-Token.
func (h *Handler) EnsureAdmin(c *fiber.Ctx) error {
	if h.cfg.SetupToken == "" {
		return Error(c, fiber.StatusForbidden, "setup is disabled")
	}
	token := c.Get("X-Setup-Token")
	if subtle.ConstantTimeCompare([]byte(token), []byte(h.cfg.SetupToken)) != 1 {
		return Error(c, fiber.StatusUnauthorized, "invalid setup token")
	}
	if h.cfg.AdminEmail == "" || h.cfg.AdminPassword == "" {
		return Error(c, fiber.StatusServiceUnavailable, "ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	created, err := h.store.EnsureAdminUser(c.Context(), h.cfg.AdminEmail, h.cfg.AdminPassword)
	if err != nil {
		return h.storeError(err, "ensure admin")
	}

	message := "admin already exists"
	if created {
		message = "admin created"
	}
	return Message(c, fiber.Map{"created": created, "email": h.cfg.AdminEmail}, message)
}
