// Package parser turns JavaScript and TypeScript sources into the
// structural form rules are matched against.
package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/embercheck/embercheck/internal/domain"
)

// TreeSitterParser implements domain.SourceParser on top of tree-sitter.
type TreeSitterParser struct{}

func New() *TreeSitterParser {
	return &TreeSitterParser{}
}

// Parse builds the ParsedFile structural form for one source file. The
// grammar is chosen by extension; .ts files use the TypeScript grammar.
func (p *TreeSitterParser) Parse(ctx context.Context, path string, src []byte) (*domain.ParsedFile, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts":
		parser.SetLanguage(typescript.GetLanguage())
	default:
		parser.SetLanguage(javascript.GetLanguage())
	}

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("parsing %s: no syntax tree", path)
	}

	c := &collector{src: src, file: &domain.ParsedFile{Path: path}}
	c.walk(root)
	return c.file, nil
}

// collector accumulates structural facts during a single AST traversal.
type collector struct {
	src  []byte
	file *domain.ParsedFile
}

func (c *collector) walk(node *sitter.Node) {
	if node == nil || node.IsNull() {
		return
	}

	switch node.Type() {
	case "import_statement":
		c.collectImport(node)
	case "call_expression":
		c.collectCall(node)
	case "new_expression":
		c.collectNew(node)
	case "decorator":
		c.collectDecorator(node)
	case "class_declaration":
		c.collectClass(node)
	}

	cursor := sitter.NewTreeCursor(node)
	defer cursor.Close()

	if ok := cursor.GoToFirstChild(); ok {
		for {
			c.walk(cursor.CurrentNode())
			if ok := cursor.GoToNextSibling(); !ok {
				break
			}
		}
	}
}

func (c *collector) collectImport(node *sitter.Node) {
	sourceNode := node.ChildByFieldName("source")
	if sourceNode == nil {
		return
	}

	decl := domain.ImportDecl{
		Source: unquote(sourceNode.Content(c.src)),
		Span:   span(node),
	}

	// The import_clause holds the binding shapes; a side-effect import
	// (import 'foo') has none.
	for i := 0; i < int(node.ChildCount()); i++ {
		clause := node.Child(i)
		if clause.Type() != "import_clause" {
			continue
		}
		for j := 0; j < int(clause.ChildCount()); j++ {
			child := clause.Child(j)
			switch child.Type() {
			case "identifier":
				decl.Default = child.Content(c.src)
			case "namespace_import":
				// * as name
				for k := 0; k < int(child.ChildCount()); k++ {
					if child.Child(k).Type() == "identifier" {
						decl.Namespace = child.Child(k).Content(c.src)
					}
				}
			case "named_imports":
				c.collectNamedImports(child, &decl)
			}
		}
	}

	c.file.Imports = append(c.file.Imports, decl)
}

func (c *collector) collectNamedImports(node *sitter.Node, decl *domain.ImportDecl) {
	for i := 0; i < int(node.ChildCount()); i++ {
		spec := node.Child(i)
		if spec.Type() != "import_specifier" {
			continue
		}
		// Record the original export name, not the local alias: rules
		// reason about the library API, not the local binding.
		name := spec.ChildByFieldName("name")
		if name != nil {
			decl.Named = append(decl.Named, name.Content(c.src))
		}
	}
}

func (c *collector) collectCall(node *sitter.Node) {
	callee := node.ChildByFieldName("function")
	if path := flattenPropertyAccess(callee, c.src); path != nil {
		c.file.Calls = append(c.file.Calls, domain.CallSite{Path: path, Span: span(node)})
	}
}

func (c *collector) collectNew(node *sitter.Node) {
	callee := node.ChildByFieldName("constructor")
	if path := flattenPropertyAccess(callee, c.src); path != nil {
		c.file.News = append(c.file.News, domain.CallSite{Path: path, Span: span(node)})
	}
}

func (c *collector) collectDecorator(node *sitter.Node) {
	// decorator: "@" followed by an identifier, member chain, or call.
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "identifier":
			c.file.Decorators = append(c.file.Decorators, domain.DecoratorUse{
				Name: child.Content(c.src),
				Span: span(node),
			})
			return
		case "call_expression":
			// @service('store') -> service
			fn := child.ChildByFieldName("function")
			if path := flattenPropertyAccess(fn, c.src); len(path) > 0 {
				c.file.Decorators = append(c.file.Decorators, domain.DecoratorUse{
					Name: path[len(path)-1],
					Span: span(node),
				})
			}
			return
		case "member_expression":
			if path := flattenPropertyAccess(child, c.src); len(path) > 0 {
				c.file.Decorators = append(c.file.Decorators, domain.DecoratorUse{
					Name: path[len(path)-1],
					Span: span(node),
				})
			}
			return
		}
	}
}

func (c *collector) collectClass(node *sitter.Node) {
	name := node.ChildByFieldName("name")
	if name == nil {
		return
	}
	c.file.Classes = append(c.file.Classes, domain.ClassDecl{
		Name: name.Content(c.src),
		Span: span(node),
	})
}

// flattenPropertyAccess flattens an identifier or member chain into path
// segments: this.router._routerMicrolib -> ["this","router","_routerMicrolib"].
// Calls inside the chain flatten through their callee with arguments dropped,
// so getOwner(this).lookup -> ["getOwner","lookup"]. Chains broken by
// computed access or literals return nil.
func flattenPropertyAccess(node *sitter.Node, src []byte) []string {
	var path []string
	current := node

	for {
		if current == nil || current.IsNull() {
			return nil
		}

		switch current.Type() {
		case "identifier":
			return append([]string{current.Content(src)}, path...)
		case "this":
			return append([]string{"this"}, path...)

		case "call_expression":
			current = current.ChildByFieldName("function")

		case "member_expression":
			object := current.ChildByFieldName("object")
			property := current.ChildByFieldName("property")
			if object == nil || property == nil {
				return nil
			}
			if property.Type() != "identifier" && property.Type() != "property_identifier" {
				return nil
			}
			path = append([]string{property.Content(src)}, path...)
			current = object

		case "subscript_expression":
			// Only static string indices flatten: obj['prop'].
			object := current.ChildByFieldName("object")
			index := current.ChildByFieldName("index")
			if object == nil || index == nil || index.Type() != "string" {
				return nil
			}
			path = append([]string{unquote(index.Content(src))}, path...)
			current = object

		default:
			return nil
		}
	}
}

func span(node *sitter.Node) domain.Span {
	return domain.Span{
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
	}
}

func unquote(s string) string {
	return strings.Trim(s, "\"'`")
}
