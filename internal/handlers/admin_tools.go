package handlers

import (
	"sort"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/foxxcyber/menu-board/internal/models"
	"github.com/foxxcyber/menu-board/internal/services"
)

// errGroupNotFound is reported for merge keys that match no current group
const errGroupNotFound = "group not found"

// snapshot loads every category and active item for analysis
func (h *Handler) snapshot(c *fiber.Ctx) (services.Snapshot, error) {
	categories, err := h.store.ListCategories(c.Context())
	if err != nil {
		return services.Snapshot{}, h.storeError(err, "load categories")
	}
	items, err := h.store.ListItems(c.Context(), &models.ItemListParams{})
	if err != nil {
		return services.Snapshot{}, h.storeError(err, "load items")
	}
	return services.Snapshot{Items: items, Categories: categories}, nil
}

// SuggestCategories scores every uncategorized item against the categories (admin)
func (h *Handler) SuggestCategories(c *fiber.Ctx) error {
	snap, err := h.snapshot(c)
	if err != nil {
		return err
	}

	results := services.NewCategorizer(snap, services.DefaultWeights()).SuggestUncategorized()
	if results == nil {
		results = []models.CategorizationResult{}
	}

	var suggested int
	for _, r := range results {
		if r.SuggestedCategory != nil {
			suggested++
		}
	}

	return Success(c, fiber.Map{
		"results":   results,
		"total":     len(results),
		"suggested": suggested,
	})
}

// ApplySuggestions assigns the suggested category to uncategorized items,
// optionally limited to item_ids (admin)
func (h *Handler) ApplySuggestions(c *fiber.Ctx) error {
	var req models.ApplySuggestionsRequest
	if len(c.Body()) > 0 {
		if err := h.bind(c, &req); err != nil {
			return err
		}
	}

	snap, err := h.snapshot(c)
	if err != nil {
		return err
	}

	results := services.NewCategorizer(snap, services.DefaultWeights()).SuggestUncategorized()
	if len(req.ItemIDs) > 0 {
		wanted := make(map[string]bool, len(req.ItemIDs))
		for _, id := range req.ItemIDs {
			wanted[id] = true
		}
		selected := results[:0]
		for _, r := range results {
			if wanted[r.Item.ID] {
				selected = append(selected, r)
			}
		}
		results = selected
	}

	report := h.merger.AssignAll(c.Context(), results)
	if report.Assigned > 0 {
		h.invalidateMenu(c)
	}
	return Success(c, report)
}

// ListDuplicates returns the groups of items that look like size variants (admin)
func (h *Handler) ListDuplicates(c *fiber.Ctx) error {
	snap, err := h.snapshot(c)
	if err != nil {
		return err
	}

	groups := services.FindMergeGroups(snap.Items)
	if groups == nil {
		groups = []models.MergeGroup{}
	}
	return Success(c, groups)
}

// MergeDuplicates merges the listed groups, or every group with all=true (admin).
// Groups are processed independently; failures are reported per key.
func (h *Handler) MergeDuplicates(c *fiber.Ctx) error {
	var req models.MergeRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	if !req.All && len(req.Keys) == 0 {
		return badRequest("provide keys or set all")
	}

	snap, err := h.snapshot(c)
	if err != nil {
		return err
	}
	groups := services.FindMergeGroups(snap.Items)

	var unknown []string
	if !req.All {
		byKey := make(map[string]models.MergeGroup, len(groups))
		for _, g := range groups {
			byKey[g.Key] = g
		}

		selected := make([]models.MergeGroup, 0, len(req.Keys))
		seen := make(map[string]bool, len(req.Keys))
		for _, key := range req.Keys {
			if seen[key] {
				continue
			}
			seen[key] = true
			if g, ok := byKey[key]; ok {
				selected = append(selected, g)
			} else {
				unknown = append(unknown, key)
			}
		}
		groups = selected
	}

	report := h.merger.MergeAll(c.Context(), groups)
	if len(unknown) > 0 {
		report.Groups += len(unknown)
		report.Failed += len(unknown)
		for _, key := range unknown {
			report.Failures = append(report.Failures, models.MergeFailure{Key: key, Error: errGroupNotFound})
		}
		sort.Slice(report.Failures, func(i, j int) bool {
			return report.Failures[i].Key < report.Failures[j].Key
		})
		h.log.Warn("merge requested for unknown groups", zap.Strings("keys", unknown))
	}

	if report.Updated > 0 {
		h.invalidateMenu(c)
	}
	return Success(c, report)
}
