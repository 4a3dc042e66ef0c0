package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/menu-board/internal/config"
	"github.com/foxxcyber/menu-board/internal/middleware"
)

// Routes registers every API route on app
func (h *Handler) Routes(app *fiber.App) {
	cfg := h.cfg
	authRequired := middleware.AuthRequired(cfg)
	adminOnly := []fiber.Handler{authRequired, middleware.AdminRequired()}

	api := app.Group("/api")
	api.Get("/health", h.Health)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", h.Login)
	auth.Post("/logout", h.Logout)
	auth.Post("/signup", append(adminOnly, h.Signup)...)
	auth.Get("/session", authRequired, h.Session)

	// Category routes (public read, admin write)
	categories := api.Group("/categories")
	categories.Get("/", h.ListCategories)
	categories.Put("/reorder", append(adminOnly, h.ReorderCategories)...)
	categories.Get("/:id", h.GetCategory)
	categories.Post("/", append(adminOnly, h.CreateCategory)...)
	categories.Put("/:id", append(adminOnly, h.UpdateCategory)...)
	categories.Delete("/:id", append(adminOnly, h.DeleteCategory)...)

	// Item routes (public read, admin write)
	items := api.Group("/items")
	items.Get("/", middleware.AuthOptional(cfg), h.ListItems)
	items.Put("/reorder", append(adminOnly, h.ReorderItems)...)
	items.Get("/:id", middleware.AuthOptional(cfg), h.GetItem)
	items.Post("/", append(adminOnly, h.CreateItem)...)
	items.Put("/:id", append(adminOnly, h.UpdateItem)...)
	items.Post("/:id/archive", append(adminOnly, h.ArchiveItem)...)
	items.Post("/:id/restore", append(adminOnly, h.RestoreItem)...)
	items.Delete("/:id", append(adminOnly, h.DeleteItem)...)

	// Order routes (public placement, admin management)
	orders := api.Group("/orders", middleware.FeatureRequired(cfg, config.FeatureOrders))
	orders.Post("/", h.CreateOrder)
	orders.Get("/", append(adminOnly, h.ListOrders)...)
	orders.Get("/:id", append(adminOnly, h.GetOrder)...)
	orders.Put("/:id", append(adminOnly, h.UpdateOrder)...)

	// Media and setup routes
	api.Post("/media/sign", append(adminOnly, h.SignMedia)...)
	api.Delete("/media", append(adminOnly, h.DeleteMedia)...)
	api.Post("/init-categories", append(adminOnly, h.InitCategories)...)
	api.Post("/ensure-admin", h.EnsureAdmin)

	// Admin tools
	admin := api.Group("/admin", adminOnly...)
	categorize := middleware.FeatureRequired(cfg, config.FeatureSmartCategorization)
	admin.Get("/categorize", categorize, h.SuggestCategories)
	admin.Post("/categorize/apply", categorize, h.ApplySuggestions)

	duplicates := middleware.FeatureRequired(cfg, config.FeatureDuplicateMerge)
	admin.Get("/duplicates", duplicates, h.ListDuplicates)
	admin.Post("/duplicates/merge", duplicates, h.MergeDuplicates)
}
