package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embercheck/embercheck/internal/domain"
	"github.com/embercheck/embercheck/internal/domain/report"
)

func rule(id string, impact domain.Impact) domain.Rule {
	return domain.Rule{
		ID:        id,
		Category:  "components",
		Impact:    impact,
		Title:     "title for " + id,
		Correct:   "corrected form",
		Incorrect: "incorrect form",
	}
}

func TestReporter_Empty(t *testing.T) {
	findings, sum := report.New().Finalize()
	assert.Empty(t, findings)
	assert.Zero(t, sum.Total())
}

func TestReporter_CarriesRuleFields(t *testing.T) {
	r := report.New()
	r.Add(rule("components/a", domain.ImpactHigh), "app/comp.js", []domain.Span{{StartLine: 3, EndLine: 4}})

	findings, sum := r.Finalize()
	require.Len(t, findings, 1)

	f := findings[0]
	assert.Equal(t, "components/a", f.RuleID)
	assert.Equal(t, "components", f.Category)
	assert.Equal(t, domain.ImpactHigh, f.Impact)
	assert.Equal(t, "app/comp.js", f.File)
	assert.Equal(t, 3, f.StartLine)
	assert.Equal(t, 4, f.EndLine)
	assert.Equal(t, "title for components/a", f.Message)
	assert.Equal(t, "corrected form", f.Suggestion)
	assert.Equal(t, domain.Summary{High: 1}, sum)
}

func TestReporter_OverlapKeepsHighestImpact(t *testing.T) {
	r := report.New()
	r.Add(rule("components/weak", domain.ImpactMedium), "a.js", []domain.Span{{StartLine: 5, EndLine: 7}})
	r.Add(rule("components/strong", domain.ImpactCritical), "a.js", []domain.Span{{StartLine: 6, EndLine: 6}})

	findings, sum := r.Finalize()
	require.Len(t, findings, 1)
	assert.Equal(t, "components/strong", findings[0].RuleID)
	assert.Equal(t, domain.Summary{Critical: 1}, sum)
}

func TestReporter_OverlapTieBreaksOnRuleID(t *testing.T) {
	r := report.New()
	r.Add(rule("components/bbb", domain.ImpactHigh), "a.js", []domain.Span{{StartLine: 2, EndLine: 2}})
	r.Add(rule("components/aaa", domain.ImpactHigh), "a.js", []domain.Span{{StartLine: 2, EndLine: 2}})

	findings, _ := r.Finalize()
	require.Len(t, findings, 1)
	assert.Equal(t, "components/aaa", findings[0].RuleID)
}

func TestReporter_SameRuleNeverSuppressesItself(t *testing.T) {
	r := report.New()
	r.Add(rule("components/a", domain.ImpactHigh), "a.js", []domain.Span{
		{StartLine: 1, EndLine: 3},
		{StartLine: 2, EndLine: 4},
	})

	findings, _ := r.Finalize()
	assert.Len(t, findings, 2)
}

func TestReporter_ExactDuplicatesCollapse(t *testing.T) {
	r := report.New()
	r.Add(rule("components/a", domain.ImpactHigh), "a.js", []domain.Span{{StartLine: 1, EndLine: 1}})
	r.Add(rule("components/a", domain.ImpactHigh), "a.js", []domain.Span{{StartLine: 1, EndLine: 1}})

	findings, _ := r.Finalize()
	assert.Len(t, findings, 1)
}

func TestReporter_OverlapsInDifferentFilesAreIndependent(t *testing.T) {
	r := report.New()
	r.Add(rule("components/weak", domain.ImpactMedium), "a.js", []domain.Span{{StartLine: 1, EndLine: 1}})
	r.Add(rule("components/strong", domain.ImpactCritical), "b.js", []domain.Span{{StartLine: 1, EndLine: 1}})

	findings, _ := r.Finalize()
	assert.Len(t, findings, 2)
}

func TestReporter_DeterministicOrder(t *testing.T) {
	// Added out of order across files and lines; output must come back
	// sorted by file, then start line, then rule id.
	r := report.New()
	r.Add(rule("services/z", domain.ImpactMedium), "b.js", []domain.Span{{StartLine: 9, EndLine: 9}})
	r.Add(rule("components/m", domain.ImpactHigh), "a.js", []domain.Span{{StartLine: 20, EndLine: 20}})
	r.Add(rule("components/a", domain.ImpactHigh), "a.js", []domain.Span{{StartLine: 4, EndLine: 4}})
	r.Add(rule("routing/r", domain.ImpactCritical), "b.js", []domain.Span{{StartLine: 2, EndLine: 2}})

	findings, sum := r.Finalize()
	require.Len(t, findings, 4)

	assert.Equal(t, "components/a", findings[0].RuleID)
	assert.Equal(t, "components/m", findings[1].RuleID)
	assert.Equal(t, "routing/r", findings[2].RuleID)
	assert.Equal(t, "services/z", findings[3].RuleID)
	assert.Equal(t, domain.Summary{Critical: 1, High: 2, Medium: 1}, sum)
}
