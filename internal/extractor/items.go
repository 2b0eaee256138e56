package extractor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"rfpflow/internal/domain"
)

// DefaultQuantityWindow is how many characters may separate a keyword from
// its quantity.
const DefaultQuantityWindow = 20

type keywordPattern struct {
	keyword string
	after   *regexp.Regexp
	before  *regexp.Regexp
}

// ItemDetector finds vocabulary keywords in text and infers a quantity for each.
type ItemDetector struct {
	patterns []keywordPattern
}

// NewItemDetector compiles the quantity patterns for every keyword. A
// negative window selects DefaultQuantityWindow; a window the regexp engine
// cannot repeat fails here instead of at match time.
func NewItemDetector(keywords []string, window int) (*ItemDetector, error) {
	if window < 0 {
		window = DefaultQuantityWindow
	}
	d := &ItemDetector{patterns: make([]keywordPattern, 0, len(keywords))}
	for _, kw := range keywords {
		if strings.TrimSpace(kw) == "" {
			continue
		}
		q := regexp.QuoteMeta(kw)
		after, err := regexp.Compile(fmt.Sprintf(`(?i)%s.{0,%d}?(\d+)`, q, window))
		if err != nil {
			return nil, fmt.Errorf("extractor.NewItemDetector: %q: %w", kw, err)
		}
		before, err := regexp.Compile(fmt.Sprintf(`(?i)(\d+).{0,%d}?%s`, window, q))
		if err != nil {
			return nil, fmt.Errorf("extractor.NewItemDetector: %q: %w", kw, err)
		}
		d.patterns = append(d.patterns, keywordPattern{keyword: kw, after: after, before: before})
	}
	return d, nil
}

// Detect emits one item per keyword found in text, in vocabulary order.
func (d *ItemDetector) Detect(text string) []domain.RequestedItem {
	items := []domain.RequestedItem{}
	lower := strings.ToLower(text)
	for _, p := range d.patterns {
		if !strings.Contains(lower, strings.ToLower(p.keyword)) {
			continue
		}
		items = append(items, domain.RequestedItem{
			Name:        p.keyword,
			Quantity:    p.quantity(text),
			Description: fmt.Sprintf("Detected %s in text", p.keyword),
		})
	}
	return items
}

func (p keywordPattern) quantity(text string) int {
	m := p.after.FindStringSubmatch(text)
	if m == nil {
		m = p.before.FindStringSubmatch(text)
	}
	if m == nil {
		return 1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 1
	}
	return n
}
