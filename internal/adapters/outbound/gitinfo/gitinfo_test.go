package gitinfo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/embercheck/embercheck/internal/adapters/outbound/gitinfo"
)

func TestGitInfo_NotARepo(t *testing.T) {
	g := gitinfo.New()
	dir := t.TempDir()

	assert.False(t, g.IsGitRepo(dir))

	_, err := g.CommitHash(dir)
	assert.Error(t, err)
}
