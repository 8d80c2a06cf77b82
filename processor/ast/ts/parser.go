// Package ts is the TypeScript front end: it parses .ts and .tsx sources
// with tree-sitter and converts the concrete syntax tree into ast.Node.
package ts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/c360studio/semlint/processor/ast"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// ErrSyntax is returned when tree-sitter recovered from a syntax error.
// Linting a partially parsed file would report misleading diagnostics.
var ErrSyntax = errors.New("syntax error")

func init() {
	ast.DefaultRegistry.Register("typescript",
		[]string{".ts", ".tsx", ".mts", ".cts"},
		func() ast.FileParser {
			return NewParser()
		})
	ast.DefaultRegistry.Register("javascript",
		[]string{".js", ".jsx", ".mjs", ".cjs"},
		func() ast.FileParser {
			return NewParser()
		})
}

// Parser converts TypeScript/JavaScript source files into ast.Node trees.
// It holds no state and is safe for concurrent use.
type Parser struct{}

// NewParser creates a new TypeScript/JavaScript parser
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile parses a single TypeScript/JavaScript file.
func (p *Parser) ParseFile(ctx context.Context, filePath string) (*ast.ParseResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return p.ParseSource(ctx, filePath, content)
}

// ParseSource parses already loaded content. filePath selects the grammar
// and is recorded in every span.
func (p *Parser) ParseSource(ctx context.Context, filePath string, content []byte) (*ast.ParseResult, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(p.getTreeSitterLanguage(filePath))

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	defer tree.Close()

	// Check context after parsing
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	root := tree.RootNode()
	if root.HasError() {
		if bad := firstError(root); bad != nil {
			pt := bad.StartPoint()
			return nil, fmt.Errorf("%s:%d:%d: %w", filePath, pt.Row+1, pt.Column+1, ErrSyntax)
		}
		return nil, fmt.Errorf("%s: %w", filePath, ErrSyntax)
	}

	c := &converter{src: content, path: filePath}
	return &ast.ParseResult{
		Path:     filePath,
		Language: p.detectLanguage(filePath),
		Hash:     ast.ComputeHash(content),
		Source:   content,
		Program:  c.program(root),
	}, nil
}

// detectLanguage returns the language identifier for the file
func (p *Parser) detectLanguage(filePath string) string {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".tsx":
		return "tsx"
	case ".ts", ".mts", ".cts":
		return "typescript"
	}
	return "javascript"
}

// getTreeSitterLanguage returns the tree-sitter language for the file type
func (p *Parser) getTreeSitterLanguage(filePath string) *sitter.Language {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".tsx":
		return tsx.GetLanguage()
	case ".ts", ".mts", ".cts":
		return typescript.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// firstError finds the first ERROR or MISSING node in document order.
func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil || !c.HasError() && !c.IsMissing() {
			continue
		}
		if bad := firstError(c); bad != nil {
			return bad
		}
	}
	return nil
}

// IsTargetFile reports whether path has an extension this front end parses.
func IsTargetFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".ts", ".tsx", ".js", ".jsx", ".mts", ".cts", ".mjs", ".cjs":
		return true
	}
	return false
}

// nodeText returns the source text of a node
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return node.Content(source)
}
