// Package matcher maps requested items to catalog SKUs with a simple
// substring score.
package matcher

import (
	"log"
	"strings"

	"rfpflow/internal/domain"
)

// Default scoring weights.
const (
	DefaultNameWeight      = 50
	DefaultCategoryWeight  = 30
	DefaultConfidenceBoost = 40
)

// Weights controls how a catalog entry is scored against an item.
type Weights struct {
	Name            int
	Category        int
	ConfidenceBoost int
}

// DefaultWeights returns the standard weights.
func DefaultWeights() Weights {
	return Weights{
		Name:            DefaultNameWeight,
		Category:        DefaultCategoryWeight,
		ConfidenceBoost: DefaultConfidenceBoost,
	}
}

// Matcher is the second pipeline stage.
type Matcher struct {
	weights Weights
}

// New creates a Matcher.
func New(w Weights) *Matcher {
	return &Matcher{weights: w}
}

// Match scores every item against every catalog entry. The first entry with
// the strictly highest positive score wins; a zero score leaves the item
// unmatched.
func (m *Matcher) Match(items []domain.RequestedItem, catalog []domain.Product) *domain.TechnicalData {
	results := make([]domain.MatchResult, 0, len(items))
	matched := 0

	for _, item := range items {
		res := m.matchOne(item, catalog)
		if res.Matched() {
			matched++
		}
		results = append(results, res)
	}

	overall := 0
	if len(items) > 0 {
		overall = matched * 100 / len(items)
	}

	log.Printf("matcher: %d/%d items matched (%d%%)", matched, len(items), overall)
	return &domain.TechnicalData{
		OverallMatchPercent: overall,
		MatchedSKUs:         results,
	}
}

func (m *Matcher) matchOne(item domain.RequestedItem, catalog []domain.Product) domain.MatchResult {
	itemName := strings.ToLower(item.Name)

	var best *domain.Product
	bestScore := 0
	for i := range catalog {
		if s := m.score(itemName, &catalog[i]); s > bestScore {
			bestScore = s
			best = &catalog[i]
		}
	}

	if best == nil {
		return domain.MatchResult{
			Item:         item.Name,
			MatchedSKU:   domain.UnmatchedSKU,
			MatchPercent: 0,
			Quantity:     item.Quantity,
		}
	}
	return domain.MatchResult{
		Item:         item.Name,
		MatchedSKU:   best.SKU,
		SKUName:      best.Name,
		MatchPercent: min(bestScore+m.weights.ConfidenceBoost, 100),
		Quantity:     item.Quantity,
	}
}

// score never credits an empty name or category, which would otherwise be a
// substring of everything.
func (m *Matcher) score(itemName string, p *domain.Product) int {
	if itemName == "" {
		return 0
	}
	score := 0
	name := strings.ToLower(p.Name)
	if name != "" && (strings.Contains(itemName, name) || strings.Contains(name, itemName)) {
		score += m.weights.Name
	}
	if category := strings.ToLower(p.Category); category != "" && strings.Contains(itemName, category) {
		score += m.weights.Category
	}
	return score
}
