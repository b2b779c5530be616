package match

import (
	"unicode"

	"github.com/fatih/camelcase"
)

// IsPascalCase reports whether an identifier starts with an uppercase letter
// and contains no separators camelcase cannot account for.
func IsPascalCase(name string) bool {
	if name == "" {
		return false
	}
	runes := []rune(name)
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// WordCount splits an identifier on camel-case boundaries.
func WordCount(name string) int {
	if name == "" {
		return 0
	}
	return len(camelcase.Split(name))
}
