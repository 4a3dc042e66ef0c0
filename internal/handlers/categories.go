package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/menu-board/internal/models"
)

// ListCategories returns all categories in display order
func (h *Handler) ListCategories(c *fiber.Ctx) error {
	var categories []*models.Category
	if h.cache.GetCategories(c.Context(), &categories) {
		return Success(c, categories)
	}

	categories, err := h.store.ListCategories(c.Context())
	if err != nil {
		return h.storeError(err, "list categories")
	}

	h.cache.SetCategories(c.Context(), categories)
	return Success(c, categories)
}

// GetCategory returns a single category
func (h *Handler) GetCategory(c *fiber.Ctx) error {
	cat, err := h.store.GetCategoryByID(c.Context(), c.Params("id"))
	if err != nil {
		return h.storeError(err, "get category")
	}
	return Success(c, cat)
}

// CreateCategory creates a category (admin)
func (h *Handler) CreateCategory(c *fiber.Ctx) error {
	var req models.CreateCategoryRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	cat, err := h.store.CreateCategory(c.Context(), &req)
	if err != nil {
		return h.storeError(err, "create category")
	}

	h.invalidateMenu(c)
	return Created(c, cat)
}

// UpdateCategory updates a category (admin)
func (h *Handler) UpdateCategory(c *fiber.Ctx) error {
	var req models.UpdateCategoryRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	cat, err := h.store.UpdateCategory(c.Context(), c.Params("id"), &req)
	if err != nil {
		return h.storeError(err, "update category")
	}

	h.invalidateMenu(c)
	return Success(c, cat)
}

// DeleteCategory deletes a category; its items become unassigned (admin)
func (h *Handler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.store.DeleteCategory(c.Context(), c.Params("id")); err != nil {
		return h.storeError(err, "delete category")
	}

	h.invalidateMenu(c)
	return Message(c, nil, "category deleted")
}

// ReorderCategories rewrites the display order (admin)
func (h *Handler) ReorderCategories(c *fiber.Ctx) error {
	var req models.ReorderRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	if err := h.store.ReorderCategories(c.Context(), req.IDs); err != nil {
		return h.storeError(err, "reorder categories")
	}

	h.invalidateMenu(c)
	return Message(c, nil, "categories reordered")
}
