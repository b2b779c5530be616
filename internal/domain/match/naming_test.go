package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/embercheck/embercheck/internal/domain/match"
)

func TestIsPascalCase(t *testing.T) {
	assert.True(t, match.IsPascalCase("UserProfile"))
	assert.True(t, match.IsPascalCase("Button"))
	assert.True(t, match.IsPascalCase("V2Layout"))

	assert.False(t, match.IsPascalCase(""))
	assert.False(t, match.IsPascalCase("userProfile"))
	assert.False(t, match.IsPascalCase("User_Profile"))
	assert.False(t, match.IsPascalCase("User-Profile"))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, match.WordCount(""))
	assert.Equal(t, 1, match.WordCount("Button"))
	assert.Equal(t, 2, match.WordCount("UserProfile"))
	assert.Equal(t, 3, match.WordCount("BigRedButton"))
}
