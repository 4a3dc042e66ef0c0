package models

import (
	"strings"
	"time"
)

// Variant is a priced size option of an item
type Variant struct {
	Size  string  `json:"size" validate:"required,max=50"`
	Price float64 `json:"price" validate:"gte=0"`
}

// Item is a sellable menu entry
type Item struct {
	ID            string     `json:"id"`
	NameEN        string     `json:"name_en"`
	NameTR        string     `json:"name_tr"`
	NameAR        string     `json:"name_ar"`
	DescriptionEN string     `json:"description_en,omitempty"`
	DescriptionTR string     `json:"description_tr,omitempty"`
	DescriptionAR string     `json:"description_ar,omitempty"`
	CategoryID    *string    `json:"category_id"`
	Price         float64    `json:"price"`
	Variants      []Variant  `json:"variants"`
	Tags          []string   `json:"tags"`
	Image         *string    `json:"image,omitempty"`
	DisplayOrder  int        `json:"order"`
	CreatedAt     time.Time  `json:"created_at"`
	ArchivedAt    *time.Time `json:"archived_at"`
}

// Names returns the non-empty localized names
func (i *Item) Names() []string {
	return nonEmpty(i.NameEN, i.NameTR, i.NameAR)
}

// IsArchived reports whether the item is soft-deleted
func (i *Item) IsArchived() bool {
	return i.ArchivedAt != nil
}

// IsUncategorized reports whether the item has no real category
func (i *Item) IsUncategorized() bool {
	return i.CategoryID == nil || *i.CategoryID == "" || *i.CategoryID == CategoryOtherID
}

// InCategory reports whether the item is assigned to categoryID
func (i *Item) InCategory(categoryID string) bool {
	return i.CategoryID != nil && *i.CategoryID == categoryID
}

// MinVariantPrice returns the lowest variant price and false if there are no variants
func MinVariantPrice(variants []Variant) (float64, bool) {
	if len(variants) == 0 {
		return 0, false
	}
	lowest := variants[0].Price
	for _, v := range variants[1:] {
		if v.Price < lowest {
			lowest = v.Price
		}
	}
	return lowest, true
}

// NormalizeTags lower-cases, trims and de-duplicates tags, keeping first-seen order.
// A single comma-separated entry is split.
func NormalizeTags(tags []string) []string {
	if len(tags) == 1 && strings.Contains(tags[0], ",") {
		tags = strings.Split(tags[0], ",")
	}

	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// CreateItemRequest is the request body for creating an item
type CreateItemRequest struct {
	NameEN        string    `json:"name_en" validate:"required,max=200"`
	NameTR        string    `json:"name_tr" validate:"max=200"`
	NameAR        string    `json:"name_ar" validate:"max=200"`
	DescriptionEN string    `json:"description_en" validate:"max=2000"`
	DescriptionTR string    `json:"description_tr" validate:"max=2000"`
	DescriptionAR string    `json:"description_ar" validate:"max=2000"`
	CategoryID    *string   `json:"category_id,omitempty" validate:"omitempty,max=64"`
	Price         float64   `json:"price" validate:"gte=0"`
	Variants      []Variant `json:"variants,omitempty" validate:"omitempty,dive"`
	Tags          []string  `json:"tags,omitempty" validate:"omitempty,max=20,dive,max=50"`
	Image         *string   `json:"image,omitempty" validate:"omitempty,max=1024"`
	DisplayOrder  *int      `json:"order,omitempty" validate:"omitempty,min=0"`
}

// Normalize applies the tag and variant-price invariants in place
func (r *CreateItemRequest) Normalize() {
	r.Tags = NormalizeTags(r.Tags)
	if lowest, ok := MinVariantPrice(r.Variants); ok {
		r.Price = lowest
	}
}

// UpdateItemRequest is the request body for updating an item
type UpdateItemRequest struct {
	NameEN        *string    `json:"name_en,omitempty" validate:"omitempty,min=1,max=200"`
	NameTR        *string    `json:"name_tr,omitempty" validate:"omitempty,max=200"`
	NameAR        *string    `json:"name_ar,omitempty" validate:"omitempty,max=200"`
	DescriptionEN *string    `json:"description_en,omitempty" validate:"omitempty,max=2000"`
	DescriptionTR *string    `json:"description_tr,omitempty" validate:"omitempty,max=2000"`
	DescriptionAR *string    `json:"description_ar,omitempty" validate:"omitempty,max=2000"`
	CategoryID    *string    `json:"category_id,omitempty" validate:"omitempty,max=64"`
	Price         *float64   `json:"price,omitempty" validate:"omitempty,gte=0"`
	Variants      *[]Variant `json:"variants,omitempty" validate:"omitempty,dive"`
	Tags          []string   `json:"tags,omitempty" validate:"omitempty,max=20,dive,max=50"`
	Image         *string    `json:"image,omitempty" validate:"omitempty,max=1024"`
	DisplayOrder  *int       `json:"order,omitempty" validate:"omitempty,min=0"`
}

// Normalize applies the tag and variant-price invariants in place
func (r *UpdateItemRequest) Normalize() {
	if r.Tags != nil {
		r.Tags = NormalizeTags(r.Tags)
	}
	if r.Variants != nil {
		if lowest, ok := MinVariantPrice(*r.Variants); ok {
			r.Price = &lowest
		}
	}
}

// ArchiveFilter selects how archived items are treated in listings
type ArchiveFilter string

const (
	ArchivedExclude ArchiveFilter = ""
	ArchivedInclude ArchiveFilter = "include"
	ArchivedOnly    ArchiveFilter = "only"
)

// ItemListParams contains parameters for listing items
type ItemListParams struct {
	CategoryID string
	Search     string
	Archived   ArchiveFilter
}
