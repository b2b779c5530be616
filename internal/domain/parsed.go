package domain

// ParsedFile is the structural form of one source file: the shapes rules
// can match on, with their line spans. It deliberately carries no raw text
// beyond identifiers and module specifiers.
type ParsedFile struct {
	Path       string
	Imports    []ImportDecl
	Calls      []CallSite
	News       []CallSite
	Decorators []DecoratorUse
	Classes    []ClassDecl
}

// ImportDecl is one import statement, decomposed by binding shape.
type ImportDecl struct {
	Source    string   // module specifier
	Default   string   // default binding name, if any
	Named     []string // named bindings (original names, not aliases)
	Namespace string   // namespace binding name for "* as x", if any
	Span      Span
}

// SideEffect reports whether the import binds nothing (import 'src').
func (d ImportDecl) SideEffect() bool {
	return d.Default == "" && d.Namespace == "" && len(d.Named) == 0
}

// CallSite is a call or new-expression with its callee flattened into path
// segments, e.g. this.sendAction(...) -> ["this", "sendAction"]. Callees
// that are not plain identifier/member chains are not recorded.
type CallSite struct {
	Path []string
	Span Span
}

// DecoratorUse is one decorator application, with the call parentheses and
// arguments stripped: @service('store') records Name "service".
type DecoratorUse struct {
	Name string
	Span Span
}

// ClassDecl is a named class declaration.
type ClassDecl struct {
	Name string
	Span Span
}
