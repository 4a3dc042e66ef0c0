package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/foxxcyber/menu-board/internal/config"
	"github.com/foxxcyber/menu-board/internal/database"
	"github.com/foxxcyber/menu-board/internal/logger"
	"github.com/foxxcyber/menu-board/internal/models"
	"github.com/foxxcyber/menu-board/internal/services"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Preview changes without writing to database")
	menuFile := flag.String("file", "", "Import menu items from a CSV file")
	skipAdmin := flag.Bool("skip-admin", false, "Do not create the admin account")
	skipCategories := flag.Bool("skip-categories", false, "Do not insert the default categories")
	flag.Parse()

	godotenv.Load()
	cfg := config.Load()

	appLogger, err := logger.New(logger.ForEnvironment(cfg.Environment, cfg.LogLevel))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	var items []*models.CreateItemRequest
	if *menuFile != "" {
		file, err := os.Open(*menuFile)
		if err != nil {
			appLogger.Fatal("failed to open menu file", zap.String("file", *menuFile), zap.Error(err))
		}
		var warnings []string
		items, warnings, err = parseMenuCSV(file)
		file.Close()
		if err != nil {
			appLogger.Fatal("failed to parse menu file", zap.Error(err))
		}
		for _, w := range warnings {
			appLogger.Warn("skipping row", zap.String("reason", w))
		}
	}

	if *dryRun {
		printPreview(os.Stdout, services.DefaultCategories(), items, !*skipCategories)
		return
	}

	ctx := context.Background()

	db, err := database.Connect(cfg.DatabaseURL, appLogger.Named("db"))
	if err != nil {
		appLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db); err != nil {
		appLogger.Fatal("failed to run migrations", zap.Error(err))
	}

	if !*skipCategories {
		inserted, err := db.InsertMissingCategories(ctx, services.DefaultCategories())
		if err != nil {
			appLogger.Fatal("failed to insert default categories", zap.Error(err))
		}
		appLogger.Info("default categories ensured", zap.Int("inserted", inserted))
	}

	if !*skipAdmin {
		if cfg.AdminPassword == "" {
			appLogger.Info("ADMIN_PASSWORD not set, skipping admin user creation")
		} else if created, err := db.EnsureAdminUser(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			appLogger.Error("failed to ensure admin user", zap.Error(err))
		} else {
			appLogger.Info("admin user ensured", zap.String("email", cfg.AdminEmail), zap.Bool("created", created))
		}
	}

	if len(items) > 0 {
		imported, skipped := importItems(ctx, db, items, appLogger)
		appLogger.Info("menu import finished", zap.Int("imported", imported), zap.Int("skipped", skipped))
	}
}

// importItems creates items whose English name is not already on the menu
func importItems(ctx context.Context, db *database.DB, items []*models.CreateItemRequest, appLogger *zap.Logger) (imported, skipped int) {
	existing, err := db.ListItems(ctx, &models.ItemListParams{Archived: models.ArchivedInclude})
	if err != nil {
		appLogger.Fatal("failed to load existing items", zap.Error(err))
	}

	names := make(map[string]bool, len(existing))
	for _, item := range existing {
		names[strings.ToLower(item.NameEN)] = true
	}

	for _, req := range items {
		key := strings.ToLower(req.NameEN)
		if names[key] {
			skipped++
			continue
		}
		if _, err := db.CreateItem(ctx, req); err != nil {
			appLogger.Warn("failed to import item", zap.String("name", req.NameEN), zap.Error(err))
			skipped++
			continue
		}
		names[key] = true
		imported++
	}
	return imported, skipped
}

func printPreview(w io.Writer, categories []*models.Category, items []*models.CreateItemRequest, withCategories bool) {
	if withCategories {
		fmt.Fprintf(w, "Default categories (%d):\n", len(categories))
		for _, c := range categories {
			fmt.Fprintf(w, "  %-18s %s %s\n", c.ID, c.Icon, c.NameEN)
		}
	}

	fmt.Fprintf(w, "Menu items (%d):\n", len(items))
	for _, item := range items {
		category := "-"
		if item.CategoryID != nil {
			category = *item.CategoryID
		}
		fmt.Fprintf(w, "  %-30s %-18s %8.2f %s\n", item.NameEN, category, item.Price, strings.Join(item.Tags, ","))
	}
}
