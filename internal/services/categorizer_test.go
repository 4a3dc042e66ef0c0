package services

import (
	"reflect"
	"testing"
	"time"

	"github.com/foxxcyber/menu-board/internal/models"
)

func strPtr(s string) *string { return &s }

func testSnapshot() Snapshot {
	archived := time.Now()
	return Snapshot{
		Categories: []*models.Category{
			{ID: "cat-hot-drinks", NameEN: "Hot Drinks", NameTR: "Sıcak İçecekler", NameAR: "مشروبات ساخنة", Icon: "☕", DisplayOrder: 1},
			{ID: "cat-desserts", NameEN: "Desserts", NameTR: "Tatlılar", NameAR: "حلويات", Icon: "🍰", DisplayOrder: 2},
			{ID: "cat-burgers", NameEN: "Burgers", Icon: "🍔", DisplayOrder: 3},
			{ID: models.CategoryOtherID, NameEN: "Other", DisplayOrder: 98},
			{ID: models.CategoryAllItemsID, NameEN: "All Items", DisplayOrder: 99},
		},
		Items: []*models.Item{
			{ID: "i1", NameEN: "Espresso", CategoryID: strPtr("cat-hot-drinks"), Price: 30, Tags: []string{"coffee", "hot"}},
			{ID: "i2", NameEN: "Americano", CategoryID: strPtr("cat-hot-drinks"), Price: 40, Tags: []string{"coffee"}},
			{ID: "i3", NameEN: "Turkish Coffee", CategoryID: strPtr("cat-hot-drinks"), Price: 35, Tags: []string{"coffee", "hot"}},
			{ID: "i4", NameEN: "Chocolate Cake", CategoryID: strPtr("cat-desserts"), Price: 80, Tags: []string{"sweet", "cake"}},
			{ID: "i5", NameEN: "Carrot Cake", CategoryID: strPtr("cat-desserts"), Price: 75, Tags: []string{"sweet", "cake"}},
			{ID: "i6", NameEN: "Cheeseburger", CategoryID: strPtr("cat-burgers"), Price: 150, Tags: []string{"beef"}},
			{ID: "u1", NameEN: "Cappuccino", Price: 45, Tags: []string{"coffee"}},
			{ID: "u2", NameEN: "Lemon Cake", CategoryID: strPtr(""), Price: 70, Tags: []string{"cake"}},
			{ID: "u3", NameEN: "Zzyzx", CategoryID: strPtr(models.CategoryOtherID), Price: 999},
			{ID: "u4", NameEN: "Old Mocha", Price: 50, ArchivedAt: &archived},
		},
	}
}

func findItem(s Snapshot, id string) *models.Item {
	for _, item := range s.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

func TestSuggestCappuccinoHotDrinks(t *testing.T) {
	snap := testSnapshot()
	c := NewCategorizer(snap, DefaultWeights())

	res := c.Suggest(findItem(snap, "u1"))
	if res.SuggestedCategory == nil {
		t.Fatalf("expected a suggestion, got none (%s)", res.Reasoning)
	}
	if res.SuggestedCategory.ID != "cat-hot-drinks" {
		t.Errorf("suggested %s, want cat-hot-drinks", res.SuggestedCategory.ID)
	}
	if res.Confidence < SuggestionThreshold {
		t.Errorf("confidence %.3f below threshold", res.Confidence)
	}
	if len(res.Alternatives) > maxAlternatives {
		t.Errorf("got %d alternatives, want at most %d", len(res.Alternatives), maxAlternatives)
	}
	for _, alt := range res.Alternatives {
		if alt.Category.ID == res.SuggestedCategory.ID {
			t.Error("suggested category repeated among alternatives")
		}
	}
}

func TestSuggestLemonCakeDesserts(t *testing.T) {
	snap := testSnapshot()
	c := NewCategorizer(snap, DefaultWeights())

	res := c.Suggest(findItem(snap, "u2"))
	if res.SuggestedCategory == nil || res.SuggestedCategory.ID != "cat-desserts" {
		t.Fatalf("suggested %+v, want cat-desserts", res.SuggestedCategory)
	}
}

func TestSuggestNoClearMatch(t *testing.T) {
	snap := testSnapshot()
	c := NewCategorizer(snap, DefaultWeights())

	res := c.Suggest(findItem(snap, "u3"))
	if res.SuggestedCategory != nil {
		t.Fatalf("expected no suggestion, got %s (%.3f)", res.SuggestedCategory.ID, res.Confidence)
	}
	if res.Confidence > SuggestionThreshold {
		t.Errorf("confidence %.3f above threshold without suggestion", res.Confidence)
	}
}

func TestSuggestNeverTargetsSentinels(t *testing.T) {
	snap := testSnapshot()
	c := NewCategorizer(snap, DefaultWeights())

	for _, item := range snap.Items {
		for _, s := range c.Rank(item) {
			if s.Category.IsSentinel() {
				t.Fatalf("sentinel %s ranked for %s", s.Category.ID, item.ID)
			}
		}
	}
}

func TestSuggestUncategorized(t *testing.T) {
	snap := testSnapshot()
	results := NewCategorizer(snap, DefaultWeights()).SuggestUncategorized()

	var ids []string
	for _, r := range results {
		ids = append(ids, r.Item.ID)
		if r.Confidence < 0 || r.Confidence > 1 {
			t.Errorf("%s: confidence %.3f out of range", r.Item.ID, r.Confidence)
		}
		if r.SuggestedCategory == nil && r.Confidence > SuggestionThreshold {
			t.Errorf("%s: no suggestion but confidence %.3f", r.Item.ID, r.Confidence)
		}
	}

	if want := []string{"u1", "u2", "u3"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("analysed %v, want %v", ids, want)
	}
}

func TestScoreDeterministic(t *testing.T) {
	snap := testSnapshot()
	c := NewCategorizer(snap, DefaultWeights())
	item := findItem(snap, "u1")

	for _, cat := range snap.Categories {
		first := c.Score(item, cat)
		for i := 0; i < 5; i++ {
			if got := c.Score(item, cat); got != first {
				t.Fatalf("score for %s changed: %+v != %+v", cat.ID, got, first)
			}
		}
		again := NewCategorizer(snap, DefaultWeights()).Score(item, cat)
		if again != first {
			t.Fatalf("rebuilt categorizer scored %s differently", cat.ID)
		}
	}
}

func TestScoreClamped(t *testing.T) {
	snap := testSnapshot()
	heavy := Weights{Name: 5, Tags: 5, Price: 5, Icon: 5, Characteristics: 5}
	c := NewCategorizer(snap, heavy)

	b := c.Score(findItem(snap, "u1"), snap.Categories[0])
	if b.Total != 1 {
		t.Errorf("Total = %v, want clamp to 1", b.Total)
	}
}

func TestPriceScore(t *testing.T) {
	p := buildProfile([]*models.Item{{Price: 30}, {Price: 40}, {Price: 50}})

	tests := []struct {
		name  string
		price float64
		want  float64
	}{
		{"at average", 40, 1},
		{"at minimum", 30, 0.75},
		{"below range", 10, 0},
		{"above range", 60, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := priceScore(&models.Item{Price: tt.price}, p); got != tt.want {
				t.Errorf("priceScore(%v) = %v, want %v", tt.price, got, tt.want)
			}
		})
	}

	if got := priceScore(&models.Item{Price: 10}, buildProfile(nil)); got != 0.5 {
		t.Errorf("empty category price score = %v, want 0.5", got)
	}
}

func TestTagScore(t *testing.T) {
	p := buildProfile([]*models.Item{
		{Tags: []string{"coffee", "hot"}},
		{Tags: []string{"Coffee"}},
		{Tags: []string{"iced"}},
	})

	tests := []struct {
		name string
		tags []string
		want float64
	}{
		{"no tags", nil, 0},
		{"frequent tag", []string{"coffee"}, 1},
		{"half frequent", []string{"coffee", "iced"}, 0.5},
		{"unknown", []string{"vegan"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tagScore(&models.Item{Tags: tt.tags}, p); got != tt.want {
				t.Errorf("tagScore(%v) = %v, want %v", tt.tags, got, tt.want)
			}
		})
	}
}

func TestCharacteristicsScore(t *testing.T) {
	p := buildProfile([]*models.Item{
		{NameEN: "Chocolate Cake"},
		{NameEN: "Carrot Cake"},
	})

	if got := characteristicsScore(&models.Item{NameEN: "Lemon Cake"}, p); got != 0.5 {
		t.Errorf("characteristicsScore = %v, want 0.5", got)
	}
	if got := characteristicsScore(&models.Item{NameEN: "Burger"}, p); got != 0 {
		t.Errorf("characteristicsScore = %v, want 0", got)
	}
}

func TestIconScore(t *testing.T) {
	cat := &models.Category{Icon: "☕"}
	tests := []struct {
		name string
		item *models.Item
		want float64
	}{
		{"one keyword", &models.Item{NameEN: "Latte"}, 0.5},
		{"two keywords", &models.Item{NameEN: "Iced Latte", NameTR: "Buzlu Kahve"}, 1},
		{"no keyword", &models.Item{NameEN: "Burger"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := iconScore(tt.item, cat); got != tt.want {
				t.Errorf("iconScore = %v, want %v", got, tt.want)
			}
		})
	}

	if got := iconScore(&models.Item{NameEN: "Latte"}, &models.Category{Icon: "❓"}); got != 0 {
		t.Errorf("unknown icon score = %v, want 0", got)
	}
}

func TestNameScoreKeyword(t *testing.T) {
	cat := &models.Category{NameEN: "Hot Drinks"}
	if got := nameScore(&models.Item{NameEN: "Cappuccino"}, cat); got != keywordMatchScore {
		t.Errorf("nameScore = %v, want %v", got, keywordMatchScore)
	}
	if got := nameScore(&models.Item{NameEN: "Desserts"}, &models.Category{NameEN: "Desserts"}); got != 1 {
		t.Errorf("identical name score = %v, want 1", got)
	}
}

func TestNameScoreOpposingQualifier(t *testing.T) {
	tests := []struct {
		name string
		item string
		cat  models.Category
		want bool
	}{
		{"cola in hot drinks", "Cola", models.Category{NameEN: "Hot Drinks", NameTR: "Sıcak İçecekler", NameAR: "مشروبات ساخنة"}, false},
		{"ayran in hot drinks", "Ayran", models.Category{NameEN: "Hot Drinks"}, false},
		{"cola in cold drinks", "Cola", models.Category{NameEN: "Cold Drinks"}, true},
		{"lemonade in turkish cold drinks", "Limonata", models.Category{NameTR: "Soğuk İçecekler"}, true},
		{"water in beverages", "Water", models.Category{NameEN: "Beverages"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nameScore(&models.Item{NameEN: tt.item}, &tt.cat) == keywordMatchScore
			if got != tt.want {
				t.Errorf("keyword match for %q = %v, want %v", tt.item, got, tt.want)
			}
		})
	}
}

func TestSuggestColaColdDrinks(t *testing.T) {
	snap := Snapshot{
		Categories: []*models.Category{
			{ID: "cat-hot", NameEN: "Hot Drinks", NameTR: "Sıcak İçecekler", NameAR: "مشروبات ساخنة", Icon: "☕", DisplayOrder: 1},
			{ID: "cat-cold", NameEN: "Cold Drinks", NameTR: "Soğuk İçecekler", NameAR: "مشروبات باردة", Icon: "🥤", DisplayOrder: 2},
		},
		Items: []*models.Item{
			{ID: "h1", NameEN: "Espresso", CategoryID: strPtr("cat-hot"), Price: 30},
			{ID: "h2", NameEN: "Americano", CategoryID: strPtr("cat-hot"), Price: 45},
			{ID: "c1", NameEN: "Ayran", CategoryID: strPtr("cat-cold"), Price: 15},
			{ID: "c2", NameEN: "Sparkling Water", CategoryID: strPtr("cat-cold"), Price: 20},
			{ID: "u1", NameEN: "Cola", Price: 35},
		},
	}

	c := NewCategorizer(snap, DefaultWeights())
	res := c.Suggest(findItem(snap, "u1"))
	if res.SuggestedCategory == nil || res.SuggestedCategory.ID != "cat-cold" {
		t.Fatalf("suggested %+v, want cat-cold (%s)", res.SuggestedCategory, res.Reasoning)
	}

	hot := c.Score(findItem(snap, "u1"), snap.Categories[0])
	if hot.Name >= keywordMatchScore {
		t.Errorf("hot drinks name score = %v, want below keyword credit", hot.Name)
	}
}

func TestConfidenceLevel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.9, "high"},
		{0.55, "medium"},
		{0.31, "low"},
		{0.3, "none"},
	}
	for _, tt := range tests {
		if got := ConfidenceLevel(tt.score); got != tt.want {
			t.Errorf("ConfidenceLevel(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
