package services

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/foxxcyber/menu-board/internal/models"
)

// Size labels produced by InferSize
const (
	SizeSmall   = "Small"
	SizeMedium  = "Medium"
	SizeLarge   = "Large"
	SizeDouble  = "Double"
	SizeTriple  = "Triple"
	SizeRegular = "Regular"
)

// abbreviations expands short menu spellings before size words are stripped
var abbreviations = map[string]string{
	"lrg":  "large",
	"lg":   "large",
	"med":  "medium",
	"md":   "medium",
	"sml":  "small",
	"sm":   "small",
	"reg":  "regular",
	"dbl":  "double",
	"trpl": "triple",
	"esp":  "espresso",
	"capp": "cappuccino",
	"choc": "chocolate",
	"w/":   "with",
}

// letterSizes are only size markers as the final word ("Latte L", not "M&M Cookie")
var letterSizes = map[string]bool{"s": true, "m": true, "l": true}

// sizeWords are dropped when building the base-name key
var sizeWords = map[string]bool{
	"small": true, "medium": true, "large": true, "regular": true,
	"double": true, "triple": true, "single": true, "mini": true,
	"big": true, "xl": true, "xxl": true, "extra": true, "size": true,
	"küçük": true, "kucuk": true, "orta": true, "büyük": true, "buyuk": true,
	"duble": true, "tek": true, "boy": true,
	"صغير": true, "وسط": true, "متوسط": true, "كبير": true, "دبل": true, "حجم": true,
}

// sizeCues is checked in order; the first cue found in any localized name wins
var sizeCues = []struct {
	cue   string
	label string
}{
	{"triple", SizeTriple},
	{"üçlü", SizeTriple},
	{"تريبل", SizeTriple},
	{"double", SizeDouble},
	{"duble", SizeDouble},
	{"dbl", SizeDouble},
	{"دبل", SizeDouble},
	{"مزدوج", SizeDouble},
	{"large", SizeLarge},
	{"lrg", SizeLarge},
	{"büyük", SizeLarge},
	{"buyuk", SizeLarge},
	{"كبير", SizeLarge},
	{"medium", SizeMedium},
	{"med", SizeMedium},
	{"orta", SizeMedium},
	{"وسط", SizeMedium},
	{"متوسط", SizeMedium},
	{"small", SizeSmall},
	{"sml", SizeSmall},
	{"küçük", SizeSmall},
	{"kucuk", SizeSmall},
	{"صغير", SizeSmall},
	{"regular", SizeRegular},
	{"reg", SizeRegular},
	{"عادي", SizeRegular},
}

var fallbackSizes = []string{SizeSmall, SizeMedium, SizeLarge}

var quantityPattern = regexp.MustCompile(`(?i)\d+(?:[.,]\d+)?\s*(?:ml|cl|ltr|lt|l|oz|gr|g|kg|cm|pcs|pc|adet|مل|لتر|غرام|جم)(?:\s|$|[^\p{L}])`)

// normalizeItemName lower-cases, expands abbreviations and strips punctuation
func normalizeItemName(name string) string {
	name = strings.ToLower(name)
	fields := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '/'
	})

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if full, ok := abbreviations[f]; ok {
			f = full
		}
		f = strings.Trim(f, "/")
		if f != "" {
			out = append(out, f)
		}
	}
	return strings.Join(out, " ")
}

// BaseName returns the key shared by items that are the same product at different sizes
func BaseName(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	stripped := quantityPattern.ReplaceAllString(lowered+" ", " ")

	fields := strings.Fields(normalizeItemName(stripped))
	var kept []string
	for i, w := range fields {
		if sizeWords[w] || (letterSizes[w] && i == len(fields)-1) {
			continue
		}
		kept = append(kept, w)
	}

	if len(kept) == 0 {
		return normalizeItemName(lowered)
	}
	return strings.Join(kept, " ")
}

// InferSize guesses a size label from an item's names; "" when there is no cue
func InferSize(item *models.Item) string {
	names := item.Names()
	for _, sc := range sizeCues {
		for _, n := range names {
			if containsWord(n, sc.cue) {
				return sc.label
			}
		}
	}

	for _, n := range names {
		if q := quantityPattern.FindString(strings.ToLower(n) + " "); q != "" {
			return strings.Map(func(r rune) rune {
				if unicode.IsSpace(r) || (!unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '.' && r != ',') {
					return -1
				}
				return r
			}, q)
		}
	}

	return ""
}

// itemKey picks the base-name key from the first localized name that yields one
func itemKey(item *models.Item) string {
	for _, n := range []string{item.NameEN, item.NameTR, item.NameAR} {
		if k := BaseName(n); k != "" {
			return k
		}
	}
	return ""
}

// FindMergeGroups groups active items sharing a base-name key. Groups are
// returned in order of first appearance; only groups with more than one member count.
func FindMergeGroups(items []*models.Item) []models.MergeGroup {
	var order []string
	members := make(map[string][]*models.Item)
	for _, item := range items {
		if item == nil || item.IsArchived() {
			continue
		}
		key := itemKey(item)
		if key == "" {
			continue
		}
		if _, ok := members[key]; !ok {
			order = append(order, key)
		}
		members[key] = append(members[key], item)
	}

	var groups []models.MergeGroup
	for _, key := range order {
		if len(members[key]) < 2 {
			continue
		}
		groups = append(groups, buildGroup(key, members[key]))
	}
	return groups
}

func buildGroup(key string, items []*models.Item) models.MergeGroup {
	baseIdx := -1
	for i, item := range items {
		if InferSize(item) == "" && normalizeItemName(item.NameEN) == key {
			baseIdx = i
			break
		}
	}
	if baseIdx < 0 {
		baseIdx = 0
		for i, item := range items {
			if item.Price < items[baseIdx].Price {
				baseIdx = i
			}
		}
	}

	group := models.MergeGroup{Key: key, Base: items[baseIdx]}
	for i, item := range items {
		if i != baseIdx {
			group.Duplicates = append(group.Duplicates, item)
		}
	}
	group.ProposedVariants = proposeVariants(group.Members())

	return group
}

// proposeVariants lists one variant per plain member plus every variant a
// member already carries, sorted by price. Existing labels are kept.
func proposeVariants(members []*models.Item) []models.Variant {
	var plain []*models.Item
	var variants []models.Variant
	for _, item := range members {
		if len(item.Variants) > 0 {
			variants = append(variants, item.Variants...)
			continue
		}
		plain = append(plain, item)
	}

	for i, label := range assignLabels(plain) {
		variants = append(variants, models.Variant{Size: label, Price: plain[i].Price})
	}

	sort.SliceStable(variants, func(i, j int) bool {
		return variants[i].Price < variants[j].Price
	})
	return dedupeLabels(variants)
}

// variantCount is the number of variants proposeVariants yields for members
func variantCount(members []*models.Item) int {
	var n int
	for _, item := range members {
		n += max(1, len(item.Variants))
	}
	return n
}

// assignLabels infers a size label per item. Items without a cue become
// Regular when alone, otherwise Small/Medium/Large by ascending price.
func assignLabels(items []*models.Item) []string {
	labels := make([]string, len(items))
	var unlabelled []int
	for i, item := range items {
		labels[i] = InferSize(item)
		if labels[i] == "" {
			unlabelled = append(unlabelled, i)
		}
	}

	switch len(unlabelled) {
	case 0:
	case 1:
		labels[unlabelled[0]] = SizeRegular
	default:
		sort.SliceStable(unlabelled, func(a, b int) bool {
			return items[unlabelled[a]].Price < items[unlabelled[b]].Price
		})
		for rank, idx := range unlabelled {
			if rank < len(fallbackSizes) {
				labels[idx] = fallbackSizes[rank]
			} else {
				labels[idx] = fmt.Sprintf("Size %d", rank+1)
			}
		}
	}

	return labels
}

// dedupeLabels suffixes repeated sizes with their occurrence number
func dedupeLabels(variants []models.Variant) []models.Variant {
	seen := make(map[string]int, len(variants))
	for i, v := range variants {
		seen[v.Size]++
		if seen[v.Size] > 1 {
			variants[i].Size = fmt.Sprintf("%s %d", v.Size, seen[v.Size])
		}
	}
	return variants
}
