package services

import (
	"math"
	"testing"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"latte", "latte", 0},
		{"kitten", "sitting", 3},
		{"çay", "cay", 1},
		{"قهوة", "قهوه", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			if got := Levenshtein(tt.a, tt.b); got != tt.want {
				t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"both empty", "", "", 0},
		{"identical ignoring case", "Latte", " latte ", 1},
		{"one edit of five", "latte", "lattes", 1 - 1.0/6},
		{"disjoint", "abc", "xyz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		text, keyword string
		want          bool
	}{
		{"Iced Tea", "tea", true},
		{"Steak", "tea", false},
		{"Iced Cappuccino", "cappuccino", true},
		{"Hot Drinks", "hot drink", true},
		{"Anything", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text+"/"+tt.keyword, func(t *testing.T) {
			if got := containsWord(tt.text, tt.keyword); got != tt.want {
				t.Errorf("containsWord(%q, %q) = %v, want %v", tt.text, tt.keyword, got, tt.want)
			}
		})
	}
}
