package main

import (
	"strings"
	"testing"
)

func TestParseMenuCSV(t *testing.T) {
	input := `Name_EN, name_tr, category_id, price, tags, variants
Latte, Latte, cat-hot-drinks, 45, Hot;Coffee;hot, Small:40;Large:60
Muffin,,,15,,
,Boş,,10,,
Tea,,cat-tea,abc,,
Mocha,,,,,"Large"
`
	items, warnings, err := parseMenuCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parseMenuCSV: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if len(warnings) != 3 {
		t.Errorf("warnings = %v, want 3", warnings)
	}

	latte := items[0]
	if latte.NameEN != "Latte" || latte.CategoryID == nil || *latte.CategoryID != "cat-hot-drinks" {
		t.Errorf("latte = %+v", latte)
	}
	if latte.Price != 40 {
		t.Errorf("latte price = %v, want 40 from cheapest variant", latte.Price)
	}
	if strings.Join(latte.Tags, ",") != "hot,coffee" {
		t.Errorf("latte tags = %v", latte.Tags)
	}
	if len(latte.Variants) != 2 || latte.Variants[1].Size != "Large" {
		t.Errorf("latte variants = %+v", latte.Variants)
	}

	if muffin := items[1]; muffin.CategoryID != nil || muffin.Price != 15 {
		t.Errorf("muffin = %+v", muffin)
	}
}

func TestParseMenuCSVRequiresName(t *testing.T) {
	if _, _, err := parseMenuCSV(strings.NewReader("price,tags\n1,a\n")); err == nil {
		t.Error("expected error for header without name_en")
	}
}
