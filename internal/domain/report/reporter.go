// Package report aggregates (rule, span) pairs into ordered findings.
// It is pure aggregation: no I/O, no blocking, no retries.
package report

import (
	"fmt"
	"sort"

	"github.com/embercheck/embercheck/internal/domain"
)

// Reporter collects matches and finalizes them into deterministic output.
// It is not safe for concurrent use; callers feed it complete per-file
// batches after collection.
type Reporter struct {
	findings []domain.Finding
}

func New() *Reporter {
	return &Reporter{}
}

// Add records one matched rule with its spans in a file.
func (r *Reporter) Add(rule domain.Rule, file string, spans []domain.Span) {
	for _, s := range spans {
		r.findings = append(r.findings, domain.Finding{
			RuleID:     rule.ID,
			Category:   rule.Category,
			Impact:     rule.Impact,
			File:       file,
			StartLine:  s.StartLine,
			EndLine:    s.EndLine,
			Message:    rule.Title,
			Suggestion: rule.Correct,
		})
	}
}

// Finalize deduplicates overlapping findings and returns them in
// deterministic (file, line, rule id) order with per-impact counts.
// When spans of different rules overlap in the same file, only the
// highest-impact rule survives; ties keep the lowest rule id.
func (r *Reporter) Finalize() ([]domain.Finding, domain.Summary) {
	deduped := dedupe(r.findings)

	sort.Slice(deduped, func(i, j int) bool {
		a, b := deduped[i], deduped[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.StartLine != b.StartLine {
			return a.StartLine < b.StartLine
		}
		return a.RuleID < b.RuleID
	})

	var sum domain.Summary
	for _, f := range deduped {
		switch f.Impact {
		case domain.ImpactCritical:
			sum.Critical++
		case domain.ImpactHigh:
			sum.High++
		default:
			sum.Medium++
		}
	}

	return deduped, sum
}

// dedupe drops findings whose span overlaps a stronger finding in the same
// file. Exact duplicates (same rule, same span) collapse to one.
func dedupe(findings []domain.Finding) []domain.Finding {
	byFile := make(map[string][]domain.Finding)
	var files []string
	for _, f := range findings {
		if _, seen := byFile[f.File]; !seen {
			files = append(files, f.File)
		}
		byFile[f.File] = append(byFile[f.File], f)
	}

	var out []domain.Finding
	for _, file := range files {
		out = append(out, dedupeFile(byFile[file])...)
	}
	return out
}

func dedupeFile(findings []domain.Finding) []domain.Finding {
	// Strongest first so weaker overlapping findings are dropped in one pass.
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Impact.Rank() != b.Impact.Rank() {
			return a.Impact.Rank() > b.Impact.Rank()
		}
		return a.RuleID < b.RuleID
	})

	var kept []domain.Finding
	seen := make(map[string]bool)

	for _, f := range findings {
		key := fmt.Sprintf("%s:%d:%d", f.RuleID, f.StartLine, f.EndLine)
		if seen[key] {
			continue
		}

		span := domain.Span{StartLine: f.StartLine, EndLine: f.EndLine}
		overlapped := false
		for _, k := range kept {
			if f.RuleID == k.RuleID {
				continue // a rule never suppresses its own matches
			}
			if span.Overlaps(domain.Span{StartLine: k.StartLine, EndLine: k.EndLine}) {
				overlapped = true
				break
			}
		}
		if overlapped {
			continue
		}

		seen[key] = true
		kept = append(kept, f)
	}

	return kept
}
