package extractor

import (
	"regexp"
	"strings"

	"rfpflow/internal/domain"
)

// Metadata fields a rule may populate.
const (
	FieldContractID = "contract_id"
	FieldBidStart   = "bid_start"
	FieldBidEnd     = "bid_end"
	FieldAuthority  = "authority"
	FieldCategory   = "category"
)

// Rule extracts a single metadata field from working text.
type Rule interface {
	Field() string
	Apply(text string) (string, bool)
}

// RegexRule returns a capture group of the first match.
type RegexRule struct {
	field string
	re    *regexp.Regexp
	group int
	trim  bool
}

// NewRegexRule creates a rule returning capture group of the first match of re.
func NewRegexRule(field string, re *regexp.Regexp, group int, trim bool) *RegexRule {
	return &RegexRule{field: field, re: re, group: group, trim: trim}
}

func (r *RegexRule) Field() string { return r.field }

func (r *RegexRule) Apply(text string) (string, bool) {
	m := r.re.FindStringSubmatch(text)
	if m == nil || r.group >= len(m) {
		return "", false
	}
	v := m[r.group]
	if r.trim {
		v = strings.TrimSpace(v)
	}
	if v == "" {
		return "", false
	}
	return v, true
}

// OccurrenceRule picks the first or the last match of a pattern.
type OccurrenceRule struct {
	field string
	re    *regexp.Regexp
	last  bool
}

// NewOccurrenceRule creates a rule picking the first (last=false) or last match.
func NewOccurrenceRule(field string, re *regexp.Regexp, last bool) *OccurrenceRule {
	return &OccurrenceRule{field: field, re: re, last: last}
}

func (r *OccurrenceRule) Field() string { return r.field }

func (r *OccurrenceRule) Apply(text string) (string, bool) {
	all := r.re.FindAllString(text, -1)
	if len(all) == 0 {
		return "", false
	}
	if r.last {
		return all[len(all)-1], true
	}
	return all[0], true
}

var (
	contractIDPattern = regexp.MustCompile(`(?i)(Tender No|Contract ID|Ref No)[:\s]+([A-Za-z0-9\-/]+)`)
	isoDatePattern    = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	authorityPattern  = regexp.MustCompile(`(?i)(Authority|Organization|Department)[:\s]+([^.\n]+)`)
)

// DefaultRules returns the metadata rules in evaluation order. The order is
// significant: the first rule to produce a value for a field wins.
func DefaultRules() []Rule {
	return []Rule{
		NewRegexRule(FieldContractID, contractIDPattern, 2, false),
		NewOccurrenceRule(FieldBidStart, isoDatePattern, false),
		NewOccurrenceRule(FieldBidEnd, isoDatePattern, true),
		NewRegexRule(FieldAuthority, authorityPattern, 2, true),
	}
}

// applyRules fills md from text. Fields without a matching rule keep their
// current value.
func applyRules(rules []Rule, text string, md *domain.RfpMetadata) {
	done := make(map[string]bool)
	for _, r := range rules {
		field := r.Field()
		if done[field] {
			continue
		}
		v, ok := r.Apply(text)
		if !ok {
			continue
		}
		if setField(md, field, v) {
			done[field] = true
		}
	}
}

func setField(md *domain.RfpMetadata, field, v string) bool {
	switch field {
	case FieldContractID:
		md.ContractID = v
	case FieldBidStart:
		md.BidDates.Start = v
	case FieldBidEnd:
		md.BidDates.End = v
	case FieldAuthority:
		md.Authority = v
	case FieldCategory:
		md.Category = v
	default:
		return false
	}
	return true
}
