package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/foxxcyber/menu-board/internal/database"
)

// storeError maps repository errors to responses. Unknown errors are logged
// and reported as "failed to <action>".
func (h *Handler) storeError(err error, action string) error {
	switch {
	case errors.Is(err, database.ErrCategoryNotFound),
		errors.Is(err, database.ErrItemNotFound),
		errors.Is(err, database.ErrOrderNotFound),
		errors.Is(err, database.ErrUserNotFound):
		return &requestError{status: fiber.StatusNotFound, code: CodeNotFound, message: err.Error()}

	case errors.Is(err, database.ErrCategoryExists),
		errors.Is(err, database.ErrEmailExists),
		errors.Is(err, database.ErrInvalidTransition),
		errors.Is(err, database.ErrItemNotArchived):
		return &requestError{status: fiber.StatusConflict, code: CodeConflict, message: err.Error()}

	case errors.Is(err, database.ErrCategoryNotAssignable):
		return &requestError{status: fiber.StatusBadRequest, code: CodeBadRequest, message: err.Error()}
	}

	h.log.Error("store call failed", zap.String("action", action), zap.Error(err))
	return &requestError{status: fiber.StatusInternalServerError, code: CodeInternal, message: "failed to " + action}
}

func badRequest(message string) error {
	return &requestError{status: fiber.StatusBadRequest, code: CodeBadRequest, message: message}
}
