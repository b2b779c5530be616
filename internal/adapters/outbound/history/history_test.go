package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embercheck/embercheck/internal/adapters/outbound/history"
	"github.com/embercheck/embercheck/internal/domain"
)

func TestHistory_RoundTrip(t *testing.T) {
	root := t.TempDir()
	h := history.New()

	entries, err := h.Load(root)
	require.NoError(t, err)
	assert.Empty(t, entries)

	first := domain.ScanEntry{Timestamp: "2026-08-01T10:00:00Z", CommitHash: "abc123", Findings: 4, Critical: 1}
	second := domain.ScanEntry{Timestamp: "2026-08-02T10:00:00Z", Findings: 0}

	require.NoError(t, h.Save(root, first))
	require.NoError(t, h.Save(root, second))

	entries, err = h.Load(root)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first, entries[0])
	assert.Equal(t, second, entries[1])
}

func TestHistory_OldestEntriesRollOff(t *testing.T) {
	root := t.TempDir()
	h := history.New()

	for i := 0; i < 55; i++ {
		require.NoError(t, h.Save(root, domain.ScanEntry{Findings: i}))
	}

	entries, err := h.Load(root)
	require.NoError(t, err)
	require.Len(t, entries, 50)
	assert.Equal(t, 5, entries[0].Findings)
	assert.Equal(t, 54, entries[49].Findings)
}
