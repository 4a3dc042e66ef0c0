package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/foxxcyber/menu-board/internal/models"
)

// SuggestionThreshold is the score a category must exceed to be suggested
const SuggestionThreshold = 0.3

const (
	keywordMatchScore = 0.9
	wordMatchFactor   = 0.8
	iconKeywordCredit = 0.5
	maxAlternatives   = 3
)

// Weights controls how the sub-scores are combined
type Weights struct {
	Name            float64
	Tags            float64
	Price           float64
	Icon            float64
	Characteristics float64
}

// DefaultWeights returns the standard weighting
func DefaultWeights() Weights {
	return Weights{
		Name:            0.40,
		Tags:            0.30,
		Price:           0.15,
		Icon:            0.10,
		Characteristics: 0.05,
	}
}

// Snapshot is a point-in-time copy of the menu used for analysis
type Snapshot struct {
	Items      []*models.Item
	Categories []*models.Category
}

// categoryProfile caches the per-category statistics the scorers need
type categoryProfile struct {
	itemCount      int
	tagCounts      map[string]int
	minPrice       float64
	maxPrice       float64
	avgPrice       float64
	hasPrices      bool
	recurringWords map[string]bool
}

// Categorizer scores items against categories. It is immutable once built,
// so the same snapshot always yields the same scores.
type Categorizer struct {
	weights    Weights
	snapshot   Snapshot
	categories []*models.Category
	profiles   map[string]*categoryProfile
}

// NewCategorizer builds category profiles from the snapshot
func NewCategorizer(snapshot Snapshot, weights Weights) *Categorizer {
	c := &Categorizer{
		weights:  weights,
		snapshot: snapshot,
		profiles: make(map[string]*categoryProfile, len(snapshot.Categories)),
	}

	c.categories = make([]*models.Category, 0, len(snapshot.Categories))
	for _, cat := range snapshot.Categories {
		if cat == nil {
			continue
		}
		c.categories = append(c.categories, cat)
	}
	sort.SliceStable(c.categories, func(i, j int) bool {
		if c.categories[i].DisplayOrder != c.categories[j].DisplayOrder {
			return c.categories[i].DisplayOrder < c.categories[j].DisplayOrder
		}
		return c.categories[i].ID < c.categories[j].ID
	})

	members := make(map[string][]*models.Item)
	for _, item := range snapshot.Items {
		if item == nil || item.IsArchived() || item.CategoryID == nil {
			continue
		}
		members[*item.CategoryID] = append(members[*item.CategoryID], item)
	}

	for _, cat := range c.categories {
		c.profiles[cat.ID] = buildProfile(members[cat.ID])
	}

	return c
}

func buildProfile(items []*models.Item) *categoryProfile {
	p := &categoryProfile{
		itemCount:      len(items),
		tagCounts:      make(map[string]int),
		recurringWords: make(map[string]bool),
	}

	wordCounts := make(map[string]int)
	var sum float64
	var priced int
	for _, item := range items {
		seenTags := make(map[string]bool)
		for _, t := range item.Tags {
			t = strings.ToLower(strings.TrimSpace(t))
			if t != "" && !seenTags[t] {
				seenTags[t] = true
				p.tagCounts[t]++
			}
		}

		for w := range nameWords(item) {
			wordCounts[w]++
		}

		if item.Price > 0 {
			if priced == 0 || item.Price < p.minPrice {
				p.minPrice = item.Price
			}
			if priced == 0 || item.Price > p.maxPrice {
				p.maxPrice = item.Price
			}
			sum += item.Price
			priced++
		}
	}

	if priced > 0 {
		p.hasPrices = true
		p.avgPrice = sum / float64(priced)
	}

	for w, n := range wordCounts {
		if n >= 2 {
			p.recurringWords[w] = true
		}
	}

	return p
}

// nameWords returns the distinct words of at least three runes across an item's names
func nameWords(item *models.Item) map[string]bool {
	out := make(map[string]bool)
	for _, name := range item.Names() {
		for _, w := range words(name) {
			if utf8.RuneCountInString(w) >= 3 {
				out[w] = true
			}
		}
	}
	return out
}

// Score computes the weighted breakdown for one (item, category) pair
func (c *Categorizer) Score(item *models.Item, cat *models.Category) models.ScoreBreakdown {
	profile, ok := c.profiles[cat.ID]
	if !ok {
		profile = buildProfile(nil)
	}

	b := models.ScoreBreakdown{
		Name:            nameScore(item, cat),
		Tags:            tagScore(item, profile),
		Price:           priceScore(item, profile),
		Icon:            iconScore(item, cat),
		Characteristics: characteristicsScore(item, profile),
	}

	total := b.Name*c.weights.Name +
		b.Tags*c.weights.Tags +
		b.Price*c.weights.Price +
		b.Icon*c.weights.Icon +
		b.Characteristics*c.weights.Characteristics
	b.Total = clamp01(total)

	return b
}

// Rank scores the item against every assignable category, best first
func (c *Categorizer) Rank(item *models.Item) []models.CategoryScore {
	scores := make([]models.CategoryScore, 0, len(c.categories))
	for _, cat := range c.categories {
		if cat.IsSentinel() {
			continue
		}
		b := c.Score(item, cat)
		scores = append(scores, models.CategoryScore{
			Category:  cat,
			Score:     b.Total,
			Breakdown: b,
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	return scores
}

// Suggest picks the best category for an item, or none when nothing clears the threshold
func (c *Categorizer) Suggest(item *models.Item) models.CategorizationResult {
	result := models.CategorizationResult{
		Item:         item,
		Alternatives: []models.CategoryScore{},
	}

	ranked := c.Rank(item)
	if len(ranked) == 0 {
		result.Reasoning = "no clear match: no categories available"
		return result
	}

	best := ranked[0]
	result.Confidence = best.Score

	rest := ranked
	if best.Score > SuggestionThreshold {
		result.SuggestedCategory = best.Category
		result.Reasoning = explain(best)
		rest = ranked[1:]
	} else {
		result.Reasoning = fmt.Sprintf("no clear match (best %.2f for %q)", best.Score, best.Category.NameEN)
	}

	for _, alt := range rest {
		if len(result.Alternatives) == maxAlternatives {
			break
		}
		if alt.Score > 0 {
			result.Alternatives = append(result.Alternatives, alt)
		}
	}

	return result
}

// SuggestUncategorized runs Suggest for every active item without a real category
func (c *Categorizer) SuggestUncategorized() []models.CategorizationResult {
	var results []models.CategorizationResult
	for _, item := range c.snapshot.Items {
		if item == nil || item.IsArchived() || !item.IsUncategorized() {
			continue
		}
		results = append(results, c.Suggest(item))
	}
	return results
}

func explain(s models.CategoryScore) string {
	b := s.Breakdown
	var parts []string
	add := func(label string, v float64) {
		if v > 0 {
			parts = append(parts, fmt.Sprintf("%s %.2f", label, v))
		}
	}
	add("name", b.Name)
	add("tags", b.Tags)
	add("price", b.Price)
	add("icon", b.Icon)
	add("similar items", b.Characteristics)

	return fmt.Sprintf("%s confidence match for %q: %s",
		ConfidenceLevel(s.Score), s.Category.NameEN, strings.Join(parts, ", "))
}

// ConfidenceLevel returns a human-readable confidence level
func ConfidenceLevel(confidence float64) string {
	switch {
	case confidence >= 0.7:
		return "high"
	case confidence >= 0.5:
		return "medium"
	case confidence > SuggestionThreshold:
		return "low"
	default:
		return "none"
	}
}

func nameScore(item *models.Item, cat *models.Category) float64 {
	itemNames := item.Names()
	catNames := cat.Names()

	var best float64
	for _, in := range itemNames {
		for _, cn := range catNames {
			best = math.Max(best, Similarity(in, cn))

			for _, iw := range words(in) {
				if utf8.RuneCountInString(iw) < 4 {
					continue
				}
				for _, cw := range words(cn) {
					if utf8.RuneCountInString(cw) < 4 {
						continue
					}
					best = math.Max(best, Similarity(iw, cw)*wordMatchFactor)
				}
			}
		}
	}

	if keywordMatch(itemNames, catNames) {
		best = math.Max(best, keywordMatchScore)
	}

	return clamp01(best)
}

func keywordMatch(itemNames, catNames []string) bool {
	for _, concept := range conceptOrder {
		mc := menuConcepts[concept]
		if !anyContains(catNames, mc.hints) || anyContains(catNames, mc.excludes) {
			continue
		}
		if anyContains(itemNames, mc.keywords) {
			return true
		}
	}
	return false
}

func anyContains(texts, keywords []string) bool {
	for _, t := range texts {
		for _, kw := range keywords {
			if containsWord(t, kw) {
				return true
			}
		}
	}
	return false
}

var conceptOrder = func() []string {
	names := make([]string, 0, len(menuConcepts))
	for name := range menuConcepts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}()

func tagScore(item *models.Item, p *categoryProfile) float64 {
	tags := models.NormalizeTags(item.Tags)
	if len(tags) == 0 || p.itemCount == 0 {
		return 0
	}

	minOccurrences := 2
	if p.itemCount < 2 {
		minOccurrences = 1
	}

	var frequent int
	for _, t := range tags {
		if p.tagCounts[t] >= minOccurrences {
			frequent++
		}
	}
	return float64(frequent) / float64(len(tags))
}

func priceScore(item *models.Item, p *categoryProfile) float64 {
	if !p.hasPrices {
		return 0.5
	}

	price := item.Price
	if lowest, ok := models.MinVariantPrice(item.Variants); ok && (price <= 0 || lowest < price) {
		price = lowest
	}

	if price < p.minPrice || price > p.maxPrice {
		return 0
	}
	if p.maxPrice == p.minPrice {
		return 1
	}
	return clamp01(1 - 0.5*math.Abs(price-p.avgPrice)/(p.maxPrice-p.minPrice))
}

func iconScore(item *models.Item, cat *models.Category) float64 {
	keywords := iconKeywords(cat.Icon)
	if len(keywords) == 0 {
		return 0
	}

	var hits int
	for _, kw := range keywords {
		for _, name := range item.Names() {
			if containsWord(name, kw) {
				hits++
				break
			}
		}
	}
	return math.Min(1, float64(hits)*iconKeywordCredit)
}

func characteristicsScore(item *models.Item, p *categoryProfile) float64 {
	if len(p.recurringWords) == 0 {
		return 0
	}
	itemWords := nameWords(item)
	if len(itemWords) == 0 {
		return 0
	}

	var shared int
	for w := range itemWords {
		if p.recurringWords[w] {
			shared++
		}
	}
	return float64(shared) / float64(len(itemWords))
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
