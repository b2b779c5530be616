package domain

import (
	"fmt"
	"sort"
	"time"
)

// Impact is a rule's documented severity, ordered critical > high > medium.
type Impact string

const (
	ImpactCritical Impact = "critical"
	ImpactHigh     Impact = "high"
	ImpactMedium   Impact = "medium"
)

// ValidImpacts enumerates all recognized impact levels.
var ValidImpacts = []Impact{ImpactCritical, ImpactHigh, ImpactMedium}

// Rank maps an impact to an ordinal for comparisons. Unknown impacts rank 0.
func (i Impact) Rank() int {
	switch i {
	case ImpactCritical:
		return 3
	case ImpactHigh:
		return 2
	case ImpactMedium:
		return 1
	default:
		return 0
	}
}

// ParseImpact validates a raw impact string.
func ParseImpact(s string) (Impact, error) {
	for _, i := range ValidImpacts {
		if Impact(s) == i {
			return i, nil
		}
	}
	return "", fmt.Errorf("unknown impact %q (valid: critical, high, medium)", s)
}

// ValidCategories enumerates all rule category names.
var ValidCategories = []string{
	"routing", "bundling", "components", "accessibility",
	"services", "templates", "advanced",
}

// Rule is one documented incorrect/correct pattern pair with metadata.
// Rules are immutable once loaded into a Corpus.
type Rule struct {
	ID        string       `yaml:"id"        json:"id"`
	Category  string       `yaml:"category"  json:"category"`
	Impact    Impact       `yaml:"impact"    json:"impact"`
	Title     string       `yaml:"title"     json:"title"`
	Incorrect string       `yaml:"incorrect" json:"incorrect"`
	Correct   string       `yaml:"correct"   json:"correct"`
	Rationale string       `yaml:"rationale" json:"rationale,omitempty"`
	Match     *MatchClause `yaml:"match,omitempty" json:"match,omitempty"`
}

// Advisory reports whether the rule has no structural pattern and is
// surfaced as documentation only, never matched automatically.
func (r Rule) Advisory() bool { return r.Match == nil }

// Corpus is the full, read-only set of best-practice rules in document order.
type Corpus struct {
	rules      []Rule
	byID       map[string]Rule
	byCategory map[string][]Rule
}

// NewCorpus validates the rules and builds the category index.
// Any violation is reported as ErrMalformedCorpus.
func NewCorpus(rules []Rule) (*Corpus, error) {
	c := &Corpus{
		rules:      rules,
		byID:       make(map[string]Rule, len(rules)),
		byCategory: make(map[string][]Rule),
	}

	for i, r := range rules {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: rule %d has no id", ErrMalformedCorpus, i)
		}
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate rule id %q", ErrMalformedCorpus, r.ID)
		}
		if r.Incorrect == "" {
			return nil, fmt.Errorf("%w: rule %q has no incorrect example", ErrMalformedCorpus, r.ID)
		}
		if r.Correct == "" {
			return nil, fmt.Errorf("%w: rule %q has no correct example", ErrMalformedCorpus, r.ID)
		}
		if !isValidCategory(r.Category) {
			return nil, fmt.Errorf("%w: rule %q has unknown category %q", ErrMalformedCorpus, r.ID, r.Category)
		}
		if _, err := ParseImpact(string(r.Impact)); err != nil {
			return nil, fmt.Errorf("%w: rule %q: %v", ErrMalformedCorpus, r.ID, err)
		}
		if r.Match != nil {
			if err := r.Match.Validate(); err != nil {
				return nil, fmt.Errorf("%w: rule %q: %v", ErrMalformedCorpus, r.ID, err)
			}
		}

		c.byID[r.ID] = r
		c.byCategory[r.Category] = append(c.byCategory[r.Category], r)
	}

	return c, nil
}

// Rules returns all rules in document order.
func (c *Corpus) Rules() []Rule { return c.rules }

// ByCategory returns the rules of one category in document order.
func (c *Corpus) ByCategory(category string) []Rule { return c.byCategory[category] }

// Lookup finds a rule by id.
func (c *Corpus) Lookup(id string) (Rule, bool) {
	r, ok := c.byID[id]
	return r, ok
}

// Enforced returns the rules with a structural pattern, in document order.
func (c *Corpus) Enforced() []Rule {
	var out []Rule
	for _, r := range c.rules {
		if !r.Advisory() {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the total number of rules.
func (c *Corpus) Len() int { return len(c.rules) }

func isValidCategory(name string) bool {
	for _, c := range ValidCategories {
		if c == name {
			return true
		}
	}
	return false
}

// Span is a line range inside a source file (1-indexed, inclusive).
type Span struct {
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`
}

// Overlaps reports whether two spans share at least one line.
func (s Span) Overlaps(o Span) bool {
	return s.StartLine <= o.EndLine && o.StartLine <= s.EndLine
}

// Finding is a detected match between a rule's incorrect pattern and a
// location in a scanned file. Findings are ephemeral, owned by one run.
type Finding struct {
	RuleID     string `json:"rule_id"`
	Category   string `json:"category"`
	Impact     Impact `json:"impact"`
	File       string `json:"file"`
	StartLine  int    `json:"start_line"`
	EndLine    int    `json:"end_line"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Skip reasons for files the run could not analyze.
const (
	SkipUnreadable = "unreadable"
	SkipTimeout    = "timeout"
	SkipUnparsable = "unparsable"
)

// SkippedFile records a file that was excluded from analysis and why.
// Skipped files are always listed explicitly, never silently dropped.
type SkippedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

// Summary holds terminal per-impact finding counts.
type Summary struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
}

// Count returns the number of findings at the given impact.
func (s Summary) Count(i Impact) int {
	switch i {
	case ImpactCritical:
		return s.Critical
	case ImpactHigh:
		return s.High
	default:
		return s.Medium
	}
}

// Total returns the number of findings across all impacts.
func (s Summary) Total() int { return s.Critical + s.High + s.Medium }

// Report is the result of one scan run.
type Report struct {
	RootPath      string        `json:"root_path"`
	Findings      []Finding     `json:"findings"`
	Skipped       []SkippedFile `json:"skipped,omitempty"`
	FilesAnalyzed int           `json:"files_analyzed"`
	Summary       Summary       `json:"summary"`
	CommitHash    string        `json:"commit_hash,omitempty"`
	Timestamp     time.Time     `json:"timestamp"`
}

// HasAtOrAbove reports whether any finding is at or above the threshold.
func (r *Report) HasAtOrAbove(threshold Impact) bool {
	for _, f := range r.Findings {
		if f.Impact.Rank() >= threshold.Rank() {
			return true
		}
	}
	return false
}

// SortSkipped orders the skipped list by path for deterministic output.
func (r *Report) SortSkipped() {
	sort.Slice(r.Skipped, func(i, j int) bool {
		return r.Skipped[i].Path < r.Skipped[j].Path
	})
}

// ScanEntry is one line of persisted scan history.
type ScanEntry struct {
	Timestamp  string `json:"timestamp"`
	CommitHash string `json:"commit_hash,omitempty"`
	Findings   int    `json:"findings"`
	Critical   int    `json:"critical"`
}
