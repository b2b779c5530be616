package corpus_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embercheck/embercheck/internal/adapters/outbound/corpus"
	"github.com/embercheck/embercheck/internal/adapters/outbound/parser"
	"github.com/embercheck/embercheck/internal/domain/match"
)

// Every enforced rule in the shipped corpus must detect its own incorrect
// snippet exactly once and stay silent on its correct snippet.
func TestDefaultCorpus_SnippetsRoundTrip(t *testing.T) {
	c, err := corpus.New().Load("")
	require.NoError(t, err)

	p := parser.New()
	ctx := context.Background()

	for _, rule := range c.Enforced() {
		t.Run(rule.ID, func(t *testing.T) {
			incorrect, err := p.Parse(ctx, "snippet.js", []byte(rule.Incorrect))
			require.NoError(t, err)
			assert.Len(t, match.Match(rule, incorrect), 1, "incorrect snippet must yield one span")

			correct, err := p.Parse(ctx, "snippet.js", []byte(rule.Correct))
			require.NoError(t, err)
			assert.Empty(t, match.Match(rule, correct), "correct snippet must yield no spans")
		})
	}
}
