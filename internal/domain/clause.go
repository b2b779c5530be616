package domain

import (
	"fmt"
	"strings"
)

// MatchKind identifies the structural shape a rule detects.
type MatchKind string

const (
	// import shapes, keyed by module source
	MatchNamespaceImport MatchKind = "namespace_import" // import * as x from 'src'
	MatchDefaultImport   MatchKind = "default_import"   // import x from 'src'
	MatchNamedImport     MatchKind = "named_import"     // import { name } from 'src'
	MatchAnyImport       MatchKind = "any_import"       // any import of 'src'

	// expression shapes, keyed by flattened callee path
	MatchCall          MatchKind = "call"           // foo(...)
	MatchMemberCall    MatchKind = "member_call"    // a.b.c(...)
	MatchNewExpression MatchKind = "new_expression" // new Foo(...)

	// declaration shapes
	MatchDecorator MatchKind = "decorator"  // @name
	MatchClassName MatchKind = "class_name" // class naming convention
)

// Class-name conventions for MatchClassName clauses.
const (
	ConventionPascal    = "pascal"
	ConventionMultiWord = "multi-word"
)

// MatchClause is the declarative structural pattern of a rule. Matching is
// structural, never textual: clauses are evaluated against the ParsedFile
// form, so comments and string literals cannot trigger them.
type MatchClause struct {
	Kind MatchKind `yaml:"kind" json:"kind"`

	// Sources are module specifiers for import kinds. A source matches
	// exactly or as a path prefix ("lodash" matches "lodash/debounce").
	Sources []string `yaml:"sources,omitempty" json:"sources,omitempty"`

	// Name is the imported binding for named_import, or the decorator
	// name (without "@") for decorator.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Callee is a dotted path for call kinds, e.g. "this.sendAction" or
	// "Ember.Object.extend". A leading "*." segment matches any chain of
	// leading path elements.
	Callee string `yaml:"callee,omitempty" json:"callee,omitempty"`

	// Convention selects the class_name check: pascal or multi-word.
	Convention string `yaml:"convention,omitempty" json:"convention,omitempty"`
}

// Validate checks that the clause carries the fields its kind requires.
func (m MatchClause) Validate() error {
	switch m.Kind {
	case MatchNamespaceImport, MatchDefaultImport, MatchAnyImport:
		if len(m.Sources) == 0 {
			return fmt.Errorf("match kind %s requires sources", m.Kind)
		}
	case MatchNamedImport:
		if len(m.Sources) == 0 {
			return fmt.Errorf("match kind %s requires sources", m.Kind)
		}
		if m.Name == "" {
			return fmt.Errorf("match kind %s requires a name", m.Kind)
		}
	case MatchCall, MatchMemberCall, MatchNewExpression:
		if m.Callee == "" {
			return fmt.Errorf("match kind %s requires a callee", m.Kind)
		}
		if strings.HasPrefix(m.Callee, ".") || strings.HasSuffix(m.Callee, ".") {
			return fmt.Errorf("invalid callee %q", m.Callee)
		}
	case MatchDecorator:
		if m.Name == "" {
			return fmt.Errorf("match kind %s requires a name", m.Kind)
		}
	case MatchClassName:
		if m.Convention != ConventionPascal && m.Convention != ConventionMultiWord {
			return fmt.Errorf("unknown class_name convention %q (valid: pascal, multi-word)", m.Convention)
		}
	default:
		return fmt.Errorf("unknown match kind %q", m.Kind)
	}
	return nil
}

// SourceMatches reports whether an import specifier matches one of the
// clause's sources, exactly or as a subpath.
func (m MatchClause) SourceMatches(specifier string) bool {
	for _, s := range m.Sources {
		if specifier == s || strings.HasPrefix(specifier, s+"/") {
			return true
		}
	}
	return false
}
