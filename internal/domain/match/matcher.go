// Package match evaluates rule clauses against the structural form of a
// source file. Matching never sees raw text, so comments and string
// literals cannot produce spans.
package match

import (
	"strings"

	"github.com/embercheck/embercheck/internal/domain"
)

// Match returns the spans in f that exhibit the rule's incorrect shape.
// Advisory rules (no clause) match nothing; that is not an error.
func Match(rule domain.Rule, f *domain.ParsedFile) []domain.Span {
	if rule.Advisory() || f == nil {
		return nil
	}

	m := *rule.Match
	switch m.Kind {
	case domain.MatchNamespaceImport:
		return matchImports(f, m, func(d domain.ImportDecl) bool {
			return d.Namespace != ""
		})
	case domain.MatchDefaultImport:
		return matchImports(f, m, func(d domain.ImportDecl) bool {
			return d.Default != ""
		})
	case domain.MatchNamedImport:
		return matchImports(f, m, func(d domain.ImportDecl) bool {
			for _, n := range d.Named {
				if n == m.Name {
					return true
				}
			}
			return false
		})
	case domain.MatchAnyImport:
		return matchImports(f, m, func(domain.ImportDecl) bool { return true })

	case domain.MatchCall, domain.MatchMemberCall:
		return matchCallSites(f.Calls, m.Callee)
	case domain.MatchNewExpression:
		return matchCallSites(f.News, m.Callee)

	case domain.MatchDecorator:
		var spans []domain.Span
		for _, d := range f.Decorators {
			if d.Name == m.Name {
				spans = append(spans, d.Span)
			}
		}
		return spans

	case domain.MatchClassName:
		return matchClassNames(f.Classes, m.Convention)
	}

	return nil
}

func matchImports(f *domain.ParsedFile, m domain.MatchClause, shape func(domain.ImportDecl) bool) []domain.Span {
	var spans []domain.Span
	for _, d := range f.Imports {
		if m.SourceMatches(d.Source) && shape(d) {
			spans = append(spans, d.Span)
		}
	}
	return spans
}

func matchCallSites(sites []domain.CallSite, callee string) []domain.Span {
	pattern := strings.Split(callee, ".")

	var spans []domain.Span
	for _, site := range sites {
		if calleeMatches(pattern, site.Path) {
			spans = append(spans, site.Span)
		}
	}
	return spans
}

// calleeMatches compares a dotted pattern against a flattened callee path.
// A "*" segment matches exactly one path element; a leading "*." pattern
// additionally absorbs any number of extra leading elements, so
// "*.reopenClass" matches both User.reopenClass and App.User.reopenClass.
func calleeMatches(pattern, path []string) bool {
	if len(pattern) == 0 || len(path) == 0 {
		return false
	}

	if pattern[0] == "*" && len(path) > len(pattern) {
		// Absorb the surplus head of the path into the leading wildcard.
		path = path[len(path)-len(pattern):]
	}
	if len(pattern) != len(path) {
		return false
	}
	for i := range pattern {
		if pattern[i] != "*" && pattern[i] != path[i] {
			return false
		}
	}
	return true
}

func matchClassNames(classes []domain.ClassDecl, convention string) []domain.Span {
	var spans []domain.Span
	for _, c := range classes {
		ok := true
		switch convention {
		case domain.ConventionPascal:
			ok = IsPascalCase(c.Name)
		case domain.ConventionMultiWord:
			ok = IsPascalCase(c.Name) && WordCount(c.Name) >= 2
		}
		if !ok {
			spans = append(spans, c.Span)
		}
	}
	return spans
}
