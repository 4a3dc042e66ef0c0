package models

import (
	"time"
)

// Sentinel category ids with special handling
const (
	CategoryOtherID    = "cat-other"
	CategoryAllItemsID = "cat-all-items"
)

// Category groups menu items under a localized label and icon
type Category struct {
	ID           string    `json:"id"`
	NameEN       string    `json:"name_en"`
	NameTR       string    `json:"name_tr"`
	NameAR       string    `json:"name_ar"`
	Icon         string    `json:"icon"`
	Image        *string   `json:"image,omitempty"`
	DisplayOrder int       `json:"order"`
	CreatedAt    time.Time `json:"created_at"`
}

// Names returns the non-empty localized names
func (c *Category) Names() []string {
	return nonEmpty(c.NameEN, c.NameTR, c.NameAR)
}

// IsSentinel reports whether the category is one of the virtual/catch-all buckets
func (c *Category) IsSentinel() bool {
	return IsSentinelCategory(c.ID)
}

// IsSentinelCategory reports whether id is cat-other or cat-all-items
func IsSentinelCategory(id string) bool {
	return id == CategoryOtherID || id == CategoryAllItemsID
}

// CreateCategoryRequest is the request body for creating a category
type CreateCategoryRequest struct {
	ID           string  `json:"id,omitempty" validate:"omitempty,max=64"`
	NameEN       string  `json:"name_en" validate:"required,max=100"`
	NameTR       string  `json:"name_tr" validate:"max=100"`
	NameAR       string  `json:"name_ar" validate:"max=100"`
	Icon         string  `json:"icon" validate:"max=16"`
	Image        *string `json:"image,omitempty" validate:"omitempty,max=1024"`
	DisplayOrder *int    `json:"order,omitempty" validate:"omitempty,min=0"`
}

// UpdateCategoryRequest is the request body for updating a category
type UpdateCategoryRequest struct {
	NameEN       *string `json:"name_en,omitempty" validate:"omitempty,min=1,max=100"`
	NameTR       *string `json:"name_tr,omitempty" validate:"omitempty,max=100"`
	NameAR       *string `json:"name_ar,omitempty" validate:"omitempty,max=100"`
	Icon         *string `json:"icon,omitempty" validate:"omitempty,max=16"`
	Image        *string `json:"image,omitempty" validate:"omitempty,max=1024"`
	DisplayOrder *int    `json:"order,omitempty" validate:"omitempty,min=0"`
}

// ReorderRequest carries ids in their new display order
type ReorderRequest struct {
	CategoryID string   `json:"category_id,omitempty"`
	IDs        []string `json:"ids" validate:"required,min=1,dive,required"`
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
