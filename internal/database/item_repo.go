package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/foxxcyber/menu-board/internal/models"
)

var (
	ErrItemNotFound          = errors.New("item not found")
	ErrItemNotArchived       = errors.New("item must be archived before it can be deleted")
	ErrCategoryNotAssignable = errors.New("category cannot hold items")
)

const itemColumns = `id::text, name_en, name_tr, name_ar, description_en, description_tr, description_ar,
	category_id, price, variants, tags, image, display_order, created_at, archived_at`

func scanItem(row pgx.Row) (*models.Item, error) {
	item := &models.Item{}
	err := row.Scan(
		&item.ID, &item.NameEN, &item.NameTR, &item.NameAR,
		&item.DescriptionEN, &item.DescriptionTR, &item.DescriptionAR,
		&item.CategoryID, &item.Price, &item.Variants, &item.Tags, &item.Image,
		&item.DisplayOrder, &item.CreatedAt, &item.ArchivedAt,
	)
	if err != nil {
		return nil, err
	}
	if item.Variants == nil {
		item.Variants = []models.Variant{}
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}
	return item, nil
}

// validItemID reports whether id can be compared against the uuid column
func validItemID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// categoryArg maps an empty category to NULL and rejects the virtual "all items" bucket
func categoryArg(categoryID *string) (*string, error) {
	if categoryID == nil || *categoryID == "" {
		return nil, nil
	}
	if *categoryID == models.CategoryAllItemsID {
		return nil, ErrCategoryNotAssignable
	}
	return categoryID, nil
}

// itemListQuery builds the listing query for params
func itemListQuery(params *models.ItemListParams) (string, []any) {
	var whereClauses []string
	var args []any
	argIndex := 1

	switch params.Archived {
	case models.ArchivedInclude:
	case models.ArchivedOnly:
		whereClauses = append(whereClauses, "archived_at IS NOT NULL")
	default:
		whereClauses = append(whereClauses, "archived_at IS NULL")
	}

	switch params.CategoryID {
	case "", models.CategoryAllItemsID:
	case models.CategoryOtherID:
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(category_id IS NULL OR category_id = '' OR category_id = $%d)", argIndex,
		))
		args = append(args, models.CategoryOtherID)
		argIndex++
	default:
		whereClauses = append(whereClauses, fmt.Sprintf("category_id = $%d", argIndex))
		args = append(args, params.CategoryID)
		argIndex++
	}

	if search := strings.TrimSpace(params.Search); search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(name_en ILIKE $%d OR name_tr ILIKE $%d OR name_ar ILIKE $%d OR array_to_string(tags, ' ') ILIKE $%d)",
			argIndex, argIndex, argIndex, argIndex,
		))
		args = append(args, "%"+search+"%")
	}

	whereClause := ""
	if len(whereClauses) > 0 {
		whereClause = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM items
		%s
		ORDER BY display_order ASC, created_at ASC
	`, itemColumns, whereClause)

	return query, args
}

// ListItems returns the items matching params in display order
func (db *DB) ListItems(ctx context.Context, params *models.ItemListParams) ([]*models.Item, error) {
	query, args := itemListQuery(params)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*models.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// GetItemByID retrieves an item by ID, archived or not
func (db *DB) GetItemByID(ctx context.Context, id string) (*models.Item, error) {
	if !validItemID(id) {
		return nil, ErrItemNotFound
	}

	item, err := scanItem(db.Pool.QueryRow(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// CreateItem inserts a new item. req must already be normalized.
func (db *DB) CreateItem(ctx context.Context, req *models.CreateItemRequest) (*models.Item, error) {
	categoryID, err := categoryArg(req.CategoryID)
	if err != nil {
		return nil, err
	}

	variants := req.Variants
	if variants == nil {
		variants = []models.Variant{}
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	item, err := scanItem(db.Pool.QueryRow(ctx, `
		INSERT INTO items (id, name_en, name_tr, name_ar, description_en, description_tr, description_ar,
			category_id, price, variants, tags, image, display_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			COALESCE($13, (SELECT COALESCE(MAX(display_order), 0) + 1 FROM items)),
			NOW())
		RETURNING `+itemColumns,
		uuid.NewString(), req.NameEN, req.NameTR, req.NameAR,
		req.DescriptionEN, req.DescriptionTR, req.DescriptionAR,
		categoryID, req.Price, variants, tags, req.Image, req.DisplayOrder,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	return item, nil
}

// UpdateItem updates the fields set in req. req must already be normalized.
// An empty category_id unassigns the item.
func (db *DB) UpdateItem(ctx context.Context, id string, req *models.UpdateItemRequest) (*models.Item, error) {
	if !validItemID(id) {
		return nil, ErrItemNotFound
	}

	var sets []string
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.NameEN != nil {
		set("name_en", *req.NameEN)
	}
	if req.NameTR != nil {
		set("name_tr", *req.NameTR)
	}
	if req.NameAR != nil {
		set("name_ar", *req.NameAR)
	}
	if req.DescriptionEN != nil {
		set("description_en", *req.DescriptionEN)
	}
	if req.DescriptionTR != nil {
		set("description_tr", *req.DescriptionTR)
	}
	if req.DescriptionAR != nil {
		set("description_ar", *req.DescriptionAR)
	}
	if req.CategoryID != nil {
		categoryID, err := categoryArg(req.CategoryID)
		if err != nil {
			return nil, err
		}
		set("category_id", categoryID)
	}
	if req.Price != nil {
		set("price", *req.Price)
	}
	if req.Variants != nil {
		variants := *req.Variants
		if variants == nil {
			variants = []models.Variant{}
		}
		set("variants", variants)
	}
	if req.Tags != nil {
		set("tags", req.Tags)
	}
	if req.Image != nil {
		set("image", *req.Image)
	}
	if req.DisplayOrder != nil {
		set("display_order", *req.DisplayOrder)
	}

	if len(sets) == 0 {
		return db.GetItemByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE items SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), len(args), itemColumns)

	item, err := scanItem(db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		if isForeignKeyViolation(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return item, nil
}

// ArchiveItem soft-deletes an item. Archiving an archived item keeps its original timestamp.
func (db *DB) ArchiveItem(ctx context.Context, id string) error {
	if !validItemID(id) {
		return ErrItemNotFound
	}

	result, err := db.Pool.Exec(ctx,
		"UPDATE items SET archived_at = COALESCE(archived_at, NOW()) WHERE id = $1",
		id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

// RestoreItem clears the archive marker
func (db *DB) RestoreItem(ctx context.Context, id string) (*models.Item, error) {
	if !validItemID(id) {
		return nil, ErrItemNotFound
	}

	item, err := scanItem(db.Pool.QueryRow(ctx, `
		UPDATE items SET archived_at = NULL
		WHERE id = $1
		RETURNING `+itemColumns,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// DeleteItem permanently removes an archived item
func (db *DB) DeleteItem(ctx context.Context, id string) error {
	if !validItemID(id) {
		return ErrItemNotFound
	}

	result, err := db.Pool.Exec(ctx,
		"DELETE FROM items WHERE id = $1 AND archived_at IS NOT NULL",
		id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := db.Pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM items WHERE id = $1)", id,
	).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrItemNotArchived
	}
	return ErrItemNotFound
}

// ApplyVariants replaces an item's variants and price
func (db *DB) ApplyVariants(ctx context.Context, id string, price float64, variants []models.Variant) error {
	if !validItemID(id) {
		return ErrItemNotFound
	}
	if variants == nil {
		variants = []models.Variant{}
	}

	result, err := db.Pool.Exec(ctx,
		"UPDATE items SET price = $1, variants = $2 WHERE id = $3",
		price, variants, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

// AssignCategory moves an item into a category
func (db *DB) AssignCategory(ctx context.Context, id, categoryID string) error {
	if !validItemID(id) {
		return ErrItemNotFound
	}
	category, err := categoryArg(&categoryID)
	if err != nil {
		return err
	}

	result, err := db.Pool.Exec(ctx,
		"UPDATE items SET category_id = $1 WHERE id = $2",
		category, id,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrCategoryNotFound
		}
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

// ReorderItems sets display_order to each id's position in ids (1-based).
// When categoryID is set every item must belong to it. Nothing changes on error.
func (db *DB) ReorderItems(ctx context.Context, categoryID string, ids []string) error {
	for _, id := range ids {
		if !validItemID(id) {
			return fmt.Errorf("%w: %s", ErrItemNotFound, id)
		}
	}

	return pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		for i, id := range ids {
			result, err := tx.Exec(ctx, `
				UPDATE items SET display_order = $1
				WHERE id = $2 AND ($3 = '' OR category_id = $3)
			`, i+1, id, categoryID)
			if err != nil {
				return err
			}
			if result.RowsAffected() == 0 {
				return fmt.Errorf("%w: %s", ErrItemNotFound, id)
			}
		}
		return nil
	})
}
