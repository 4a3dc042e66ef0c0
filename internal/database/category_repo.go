package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/gosimple/slug"
	"github.com/jackc/pgx/v5"

	"github.com/foxxcyber/menu-board/internal/models"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
)

const defaultCategoryIcon = "🍽️"

const categoryColumns = `id, name_en, name_tr, name_ar, icon, image, display_order, created_at`

func scanCategory(row pgx.Row) (*models.Category, error) {
	cat := &models.Category{}
	err := row.Scan(
		&cat.ID, &cat.NameEN, &cat.NameTR, &cat.NameAR,
		&cat.Icon, &cat.Image, &cat.DisplayOrder, &cat.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// CategoryID derives the id for a new category: the requested id, otherwise
// "cat-" plus the slug of the English name
func CategoryID(req *models.CreateCategoryRequest) string {
	if req.ID != "" {
		return req.ID
	}
	s := slug.Make(req.NameEN)
	if s == "" {
		return ""
	}
	return "cat-" + s
}

// ListCategories returns all categories in display order
func (db *DB) ListCategories(ctx context.Context) ([]*models.Category, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		ORDER BY display_order ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*models.Category{}
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}

	return categories, rows.Err()
}

// GetCategoryByID retrieves a category by ID
func (db *DB) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	cat, err := scanCategory(db.Pool.QueryRow(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return cat, nil
}

// CreateCategory inserts a category. Without an explicit order it is placed last.
func (db *DB) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	id := CategoryID(req)
	if id == "" {
		return nil, fmt.Errorf("category name %q has no usable characters for an id", req.NameEN)
	}

	icon := req.Icon
	if icon == "" {
		icon = defaultCategoryIcon
	}

	cat, err := scanCategory(db.Pool.QueryRow(ctx, `
		INSERT INTO categories (id, name_en, name_tr, name_ar, icon, image, display_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6,
			COALESCE($7, (SELECT COALESCE(MAX(display_order), 0) + 1 FROM categories)),
			NOW())
		RETURNING `+categoryColumns,
		id, req.NameEN, req.NameTR, req.NameAR, icon, req.Image, req.DisplayOrder,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}

	return cat, nil
}

// UpdateCategory updates the fields set in req
func (db *DB) UpdateCategory(ctx context.Context, id string, req *models.UpdateCategoryRequest) (*models.Category, error) {
	cat, err := scanCategory(db.Pool.QueryRow(ctx, `
		UPDATE categories SET
			name_en = COALESCE($2, name_en),
			name_tr = COALESCE($3, name_tr),
			name_ar = COALESCE($4, name_ar),
			icon = COALESCE($5, icon),
			image = COALESCE($6, image),
			display_order = COALESCE($7, display_order)
		WHERE id = $1
		RETURNING `+categoryColumns,
		id, req.NameEN, req.NameTR, req.NameAR, req.Icon, req.Image, req.DisplayOrder,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return cat, nil
}

// DeleteCategory removes a category; its items become unassigned
func (db *DB) DeleteCategory(ctx context.Context, id string) error {
	result, err := db.Pool.Exec(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// ReorderCategories sets display_order to each id's position in ids (1-based).
// Nothing changes if any id is unknown.
func (db *DB) ReorderCategories(ctx context.Context, ids []string) error {
	return pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		for i, id := range ids {
			result, err := tx.Exec(ctx,
				"UPDATE categories SET display_order = $1 WHERE id = $2",
				i+1, id,
			)
			if err != nil {
				return err
			}
			if result.RowsAffected() == 0 {
				return fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
			}
		}
		return nil
	})
}

// InsertMissingCategories inserts the given categories whose ids do not exist yet
// and returns how many were added
func (db *DB) InsertMissingCategories(ctx context.Context, categories []*models.Category) (int, error) {
	batch := &pgx.Batch{}
	for _, cat := range categories {
		icon := cat.Icon
		if icon == "" {
			icon = defaultCategoryIcon
		}
		batch.Queue(`
			INSERT INTO categories (id, name_en, name_tr, name_ar, icon, image, display_order, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
			ON CONFLICT (id) DO NOTHING
		`, cat.ID, cat.NameEN, cat.NameTR, cat.NameAR, icon, cat.Image, cat.DisplayOrder)
	}

	results := db.Pool.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int
	for range categories {
		tag, err := results.Exec()
		if err != nil {
			return inserted, err
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}
