package ast

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
)

// FileParser turns one source file into a Program node.
type FileParser interface {
	// ParseFile reads and parses the file at path.
	ParseFile(ctx context.Context, path string) (*ParseResult, error)
	// ParseSource parses already loaded content. path is only used for spans.
	ParseSource(ctx context.Context, path string, content []byte) (*ParseResult, error)
}

// ParseResult holds the results of parsing one file.
type ParseResult struct {
	// Path is the file path relative to the repository root when known.
	Path string

	// Language is the front-end language name ("typescript", "tsx").
	Language string

	// Hash is the content hash used for change detection.
	Hash string

	// Source is the raw file content; fix offsets index into it.
	Source []byte

	// Program is the root node.
	Program *Node
}

// ComputeHash computes a SHA256 hash of the given content
func ComputeHash(content []byte) string {
	h := sha256.Sum256(content)
	return hex.EncodeToString(h[:8]) // First 8 bytes for brevity
}

// ParseFileWith reads path and delegates to the parser registered for its
// extension in reg. Unsupported files give ErrNoParser.
func ParseFileWith(ctx context.Context, reg *ParserRegistry, path string) (*ParseResult, error) {
	p, err := reg.ParserFor(path)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return p.ParseSource(ctx, path, content)
}
