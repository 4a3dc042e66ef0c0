package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/foxxcyber/menu-board/internal/models"
	"github.com/foxxcyber/menu-board/internal/services"
)

// SignMedia returns a presigned PUT URL for a new media object (admin)
func (h *Handler) SignMedia(c *fiber.Ctx) error {
	if h.media == nil {
		return Error(c, fiber.StatusServiceUnavailable, "media storage is not configured")
	}

	var req models.MediaSignRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	key := services.MediaKey(req.KeyBase, req.Filename, time.Now())
	url, err := h.media.PresignedUploadURL(c.Context(), key, h.cfg.MediaURLExpiry)
	if err != nil {
		return h.storeError(err, "sign upload")
	}

	viewURL, err := h.media.GetPresignedURL(c.Context(), key, h.cfg.MediaURLExpiry)
	if err != nil {
		return h.storeError(err, "sign download")
	}

	return Success(c, models.MediaSignResponse{
		Key:       key,
		UploadURL: url,
		ViewURL:   viewURL,
		Method:    fiber.MethodPut,
		ExpiresIn: int(h.cfg.MediaURLExpiry.Seconds()),
	})
}

// DeleteMedia removes an uploaded media object (admin)
func (h *Handler) DeleteMedia(c *fiber.Ctx) error {
	if h.media == nil {
		return Error(c, fiber.StatusServiceUnavailable, "media storage is not configured")
	}

	var req models.MediaDeleteRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	if err := h.media.Delete(c.Context(), req.Key); err != nil {
		return h.storeError(err, "delete media")
	}

	h.log.Info("media deleted", zap.String("key", req.Key))
	return Message(c, fiber.Map{"key": req.Key}, "media deleted")
}
