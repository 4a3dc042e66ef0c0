package services

import "github.com/foxxcyber/menu-board/internal/models"

// DefaultCategories returns the starter menu sections. Ids are stable so the
// list can be re-applied without creating duplicates.
func DefaultCategories() []*models.Category {
	return []*models.Category{
		{ID: "cat-hot-drinks", NameEN: "Hot Drinks", NameTR: "Sıcak İçecekler", NameAR: "مشروبات ساخنة", Icon: "☕", DisplayOrder: 1},
		{ID: "cat-cold-drinks", NameEN: "Cold Drinks", NameTR: "Soğuk İçecekler", NameAR: "مشروبات باردة", Icon: "🥤", DisplayOrder: 2},
		{ID: "cat-tea", NameEN: "Tea", NameTR: "Çay", NameAR: "شاي", Icon: "🍵", DisplayOrder: 3},
		{ID: "cat-juices", NameEN: "Fresh Juices", NameTR: "Taze Meyve Suları", NameAR: "عصائر طازجة", Icon: "🧃", DisplayOrder: 4},
		{ID: "cat-breakfast", NameEN: "Breakfast", NameTR: "Kahvaltı", NameAR: "فطور", Icon: "🍳", DisplayOrder: 5},
		{ID: "cat-sandwiches", NameEN: "Sandwiches", NameTR: "Sandviçler", NameAR: "سندويشات", Icon: "🥪", DisplayOrder: 6},
		{ID: "cat-salads", NameEN: "Salads", NameTR: "Salatalar", NameAR: "سلطات", Icon: "🥗", DisplayOrder: 7},
		{ID: "cat-desserts", NameEN: "Desserts", NameTR: "Tatlılar", NameAR: "حلويات", Icon: "🍰", DisplayOrder: 8},
		{ID: "cat-bakery", NameEN: "Bakery", NameTR: "Fırın", NameAR: "مخبوزات", Icon: "🥐", DisplayOrder: 9},
		{ID: models.CategoryOtherID, NameEN: "Other", NameTR: "Diğer", NameAR: "أخرى", Icon: "🍽️", DisplayOrder: 99},
	}
}
