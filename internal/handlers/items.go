package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/menu-board/internal/middleware"
	"github.com/foxxcyber/menu-board/internal/models"
)

// ListItems returns menu items, optionally filtered by category, search text
// and archive state. Archived views are admin only.
func (h *Handler) ListItems(c *fiber.Ctx) error {
	params := &models.ItemListParams{
		CategoryID: c.Query("category"),
		Search:     c.Query("search"),
		Archived:   models.ArchiveFilter(c.Query("archived")),
	}

	switch params.Archived {
	case models.ArchivedExclude:
	case models.ArchivedInclude, models.ArchivedOnly:
		if !middleware.IsAdmin(c) {
			return Error(c, fiber.StatusForbidden, "admin access required for archived items")
		}
	default:
		return badRequest("archived must be include or only")
	}

	plain := params.CategoryID == "" && params.Search == "" && params.Archived == models.ArchivedExclude
	if plain {
		var cached []*models.Item
		if h.cache.GetItems(c.Context(), &cached) {
			return Success(c, cached)
		}
	}

	items, err := h.store.ListItems(c.Context(), params)
	if err != nil {
		return h.storeError(err, "list items")
	}

	if plain {
		h.cache.SetItems(c.Context(), items)
	}
	return Success(c, items)
}

// GetItem returns a single item
func (h *Handler) GetItem(c *fiber.Ctx) error {
	item, err := h.store.GetItemByID(c.Context(), c.Params("id"))
	if err != nil {
		return h.storeError(err, "get item")
	}
	if item.IsArchived() && !middleware.IsAdmin(c) {
		return Error(c, fiber.StatusNotFound, "item not found")
	}
	return Success(c, item)
}

// CreateItem creates an item (admin). With variants the price is the cheapest variant.
func (h *Handler) CreateItem(c *fiber.Ctx) error {
	var req models.CreateItemRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	req.Normalize()

	item, err := h.store.CreateItem(c.Context(), &req)
	if err != nil {
		return h.storeError(err, "create item")
	}

	h.invalidateMenu(c)
	return Created(c, item)
}

// UpdateItem updates an item (admin)
func (h *Handler) UpdateItem(c *fiber.Ctx) error {
	var req models.UpdateItemRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	req.Normalize()

	item, err := h.store.UpdateItem(c.Context(), c.Params("id"), &req)
	if err != nil {
		return h.storeError(err, "update item")
	}

	h.invalidateMenu(c)
	return Success(c, item)
}

// ArchiveItem soft-deletes an item (admin)
func (h *Handler) ArchiveItem(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.store.ArchiveItem(c.Context(), id); err != nil {
		return h.storeError(err, "archive item")
	}

	item, err := h.store.GetItemByID(c.Context(), id)
	if err != nil {
		return h.storeError(err, "get item")
	}

	h.invalidateMenu(c)
	return Message(c, item, "item archived")
}

// RestoreItem brings an archived item back (admin)
func (h *Handler) RestoreItem(c *fiber.Ctx) error {
	item, err := h.store.RestoreItem(c.Context(), c.Params("id"))
	if err != nil {
		return h.storeError(err, "restore item")
	}

	h.invalidateMenu(c)
	return Message(c, item, "item restored")
}

// DeleteItem permanently deletes an archived item (admin)
func (h *Handler) DeleteItem(c *fiber.Ctx) error {
	if err := h.store.DeleteItem(c.Context(), c.Params("id")); err != nil {
		return h.storeError(err, "delete item")
	}

	h.invalidateMenu(c)
	return Message(c, nil, "item deleted")
}

// ReorderItems rewrites the display order within a category (admin)
func (h *Handler) ReorderItems(c *fiber.Ctx) error {
	var req models.ReorderRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	if err := h.store.ReorderItems(c.Context(), req.CategoryID, req.IDs); err != nil {
		return h.storeError(err, "reorder items")
	}

	h.invalidateMenu(c)
	return Message(c, nil, "items reordered")
}
