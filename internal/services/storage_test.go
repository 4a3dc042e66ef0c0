package services

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestMediaKey(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	keyPattern := regexp.MustCompile(`^media/[a-z0-9-]+/\d+-[0-9a-f]{8}\.[a-z0-9]+$`)

	tests := []struct {
		name       string
		keyBase    string
		filename   string
		wantPrefix string
		wantExt    string
	}{
		{"item image", "items", "Latte.PNG", "media/items/1700000000123-", ".png"},
		{"spaces in base", "Hot Drinks", "cup.jpeg", "media/hot-drinks/1700000000123-", ".jpeg"},
		{"no extension", "categories", "icon", "media/categories/1700000000123-", ".bin"},
		{"empty base", "", "a.webp", "media/misc/1700000000123-", ".webp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := MediaKey(tt.keyBase, tt.filename, now)
			if !keyPattern.MatchString(key) {
				t.Errorf("key %q does not match %s", key, keyPattern)
			}
			if !strings.HasPrefix(key, tt.wantPrefix) {
				t.Errorf("key %q, want prefix %q", key, tt.wantPrefix)
			}
			if !strings.HasSuffix(key, tt.wantExt) {
				t.Errorf("key %q, want suffix %q", key, tt.wantExt)
			}
		})
	}
}

func TestMediaKeyUnique(t *testing.T) {
	now := time.Now()
	if MediaKey("items", "a.png", now) == MediaKey("items", "a.png", now) {
		t.Error("expected distinct keys for the same input")
	}
}
