package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embercheck/embercheck/internal/domain"
)

func validRule(id string) domain.Rule {
	return domain.Rule{
		ID:        id,
		Category:  "components",
		Impact:    domain.ImpactHigh,
		Title:     "some title",
		Incorrect: "this.sendAction('save');",
		Correct:   "this.args.onSave();",
	}
}

func TestImpact_RankOrdering(t *testing.T) {
	assert.Greater(t, domain.ImpactCritical.Rank(), domain.ImpactHigh.Rank())
	assert.Greater(t, domain.ImpactHigh.Rank(), domain.ImpactMedium.Rank())
	assert.Equal(t, 0, domain.Impact("bogus").Rank())
}

func TestParseImpact(t *testing.T) {
	for _, valid := range []string{"critical", "high", "medium"} {
		got, err := domain.ParseImpact(valid)
		require.NoError(t, err)
		assert.Equal(t, domain.Impact(valid), got)
	}

	_, err := domain.ParseImpact("severe")
	assert.Error(t, err)
}

func TestNewCorpus_Valid(t *testing.T) {
	rules := []domain.Rule{validRule("components/a"), validRule("components/b")}
	rules[1].Category = "routing"

	corpus, err := domain.NewCorpus(rules)
	require.NoError(t, err)

	assert.Equal(t, 2, corpus.Len())
	assert.Len(t, corpus.ByCategory("components"), 1)
	assert.Len(t, corpus.ByCategory("routing"), 1)

	r, ok := corpus.Lookup("components/a")
	require.True(t, ok)
	assert.Equal(t, "components/a", r.ID)

	_, ok = corpus.Lookup("components/nope")
	assert.False(t, ok)
}

func TestNewCorpus_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Rule)
	}{
		{"missing id", func(r *domain.Rule) { r.ID = "" }},
		{"missing incorrect", func(r *domain.Rule) { r.Incorrect = "" }},
		{"missing correct", func(r *domain.Rule) { r.Correct = "" }},
		{"unknown category", func(r *domain.Rule) { r.Category = "styling" }},
		{"unknown impact", func(r *domain.Rule) { r.Impact = "severe" }},
		{"invalid clause", func(r *domain.Rule) {
			r.Match = &domain.MatchClause{Kind: domain.MatchCall}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := validRule("components/x")
			tt.mutate(&rule)
			_, err := domain.NewCorpus([]domain.Rule{rule})
			assert.ErrorIs(t, err, domain.ErrMalformedCorpus)
		})
	}
}

func TestNewCorpus_DuplicateID(t *testing.T) {
	_, err := domain.NewCorpus([]domain.Rule{validRule("components/a"), validRule("components/a")})
	assert.ErrorIs(t, err, domain.ErrMalformedCorpus)
}

func TestCorpus_Enforced(t *testing.T) {
	advisory := validRule("templates/advice")
	advisory.Category = "templates"

	enforced := validRule("components/strict")
	enforced.Match = &domain.MatchClause{Kind: domain.MatchMemberCall, Callee: "this.sendAction"}

	corpus, err := domain.NewCorpus([]domain.Rule{advisory, enforced})
	require.NoError(t, err)

	assert.True(t, advisory.Advisory())
	assert.False(t, enforced.Advisory())

	got := corpus.Enforced()
	require.Len(t, got, 1)
	assert.Equal(t, "components/strict", got[0].ID)
}

func TestSpan_Overlaps(t *testing.T) {
	a := domain.Span{StartLine: 3, EndLine: 5}

	assert.True(t, a.Overlaps(domain.Span{StartLine: 5, EndLine: 8}))
	assert.True(t, a.Overlaps(domain.Span{StartLine: 1, EndLine: 3}))
	assert.True(t, a.Overlaps(domain.Span{StartLine: 4, EndLine: 4}))
	assert.False(t, a.Overlaps(domain.Span{StartLine: 6, EndLine: 9}))
	assert.False(t, a.Overlaps(domain.Span{StartLine: 1, EndLine: 2}))
}

func TestSummary_Counts(t *testing.T) {
	s := domain.Summary{Critical: 2, High: 1, Medium: 3}
	assert.Equal(t, 2, s.Count(domain.ImpactCritical))
	assert.Equal(t, 1, s.Count(domain.ImpactHigh))
	assert.Equal(t, 3, s.Count(domain.ImpactMedium))
	assert.Equal(t, 6, s.Total())
}

func TestReport_HasAtOrAbove(t *testing.T) {
	r := &domain.Report{Findings: []domain.Finding{
		{RuleID: "a", Impact: domain.ImpactHigh},
		{RuleID: "b", Impact: domain.ImpactMedium},
	}}

	assert.False(t, r.HasAtOrAbove(domain.ImpactCritical))
	assert.True(t, r.HasAtOrAbove(domain.ImpactHigh))
	assert.True(t, r.HasAtOrAbove(domain.ImpactMedium))
	assert.False(t, (&domain.Report{}).HasAtOrAbove(domain.ImpactMedium))
}

func TestReport_SortSkipped(t *testing.T) {
	r := &domain.Report{Skipped: []domain.SkippedFile{
		{Path: "b.js", Reason: domain.SkipTimeout},
		{Path: "a.js", Reason: domain.SkipUnreadable},
	}}
	r.SortSkipped()

	assert.Equal(t, "a.js", r.Skipped[0].Path)
	assert.Equal(t, "b.js", r.Skipped[1].Path)
}
