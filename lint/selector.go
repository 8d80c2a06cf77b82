package lint

import (
	"fmt"
	"strings"

	"github.com/c360studio/semlint/processor/ast"
)

// Selector is a compiled structural pattern over ast.Node.
//
// Grammar:
//
//	selector  = chain { "," chain } [ ":exit" ]
//	chain     = compound { combinator compound }
//	combinator = " " (descendant) | ">" (child)
//	compound  = ( Kind | "*" ) { "[" path [ ("=" | "!=") value ] "]" }
//
// path is a dotted field path whose last segment names an attribute;
// "type" names the node kind. Values may be single or double quoted.
type Selector struct {
	raw    string
	chains [][]step
	exit   bool
}

type step struct {
	// combinator joining this step to the previous one; 0 for the first.
	combinator byte
	kind       ast.Kind
	attrs      []attrTest
}

type attrOp int

const (
	attrExists attrOp = iota
	attrEquals
	attrNotEquals
)

type attrTest struct {
	path  string
	op    attrOp
	value string
}

// ParseSelector compiles a selector string.
func ParseSelector(s string) (*Selector, error) {
	raw := s
	src := strings.TrimSpace(s)
	sel := &Selector{raw: raw}
	if strings.HasSuffix(src, ":exit") {
		sel.exit = true
		src = strings.TrimSpace(strings.TrimSuffix(src, ":exit"))
	}
	if src == "" {
		return nil, fmt.Errorf("%w: empty selector %q", ErrInvalidSelector, raw)
	}

	p := &selectorParser{src: src}
	for {
		chain, err := p.chain()
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSelector, raw, err)
		}
		sel.chains = append(sel.chains, chain)
		p.skipSpace()
		if p.eof() {
			break
		}
		if p.peek() != ',' {
			return nil, fmt.Errorf("%w: %q: unexpected %q at %d", ErrInvalidSelector, raw, p.peek(), p.pos)
		}
		p.pos++
	}
	return sel, nil
}

// MustParseSelector is ParseSelector that panics on error, for selectors
// fixed at compile time.
func MustParseSelector(s string) *Selector {
	sel, err := ParseSelector(s)
	if err != nil {
		panic(err)
	}
	return sel
}

// Exit reports whether the selector fires when leaving matched nodes.
func (s *Selector) Exit() bool {
	return s.exit
}

func (s *Selector) String() string {
	return s.raw
}

// Match reports whether n matches any chain of the selector.
func (s *Selector) Match(n *ast.Node) bool {
	for _, chain := range s.chains {
		if matchChain(chain, len(chain)-1, n) {
			return true
		}
	}
	return false
}

func matchChain(chain []step, i int, n *ast.Node) bool {
	if n == nil || !chain[i].matches(n) {
		return false
	}
	if i == 0 {
		return true
	}
	switch chain[i].combinator {
	case '>':
		return matchChain(chain, i-1, n.Parent)
	default:
		for p := n.Parent; p != nil; p = p.Parent {
			if matchChain(chain, i-1, p) {
				return true
			}
		}
		return false
	}
}

func (st step) matches(n *ast.Node) bool {
	if st.kind != "" && n.Kind != st.kind {
		return false
	}
	for _, a := range st.attrs {
		v, ok := n.Resolve(a.path)
		switch a.op {
		case attrExists:
			if !ok {
				return false
			}
		case attrEquals:
			if !ok || v != a.value {
				return false
			}
		case attrNotEquals:
			if ok && v == a.value {
				return false
			}
		}
	}
	return true
}

type selectorParser struct {
	src string
	pos int
}

func (p *selectorParser) eof() bool  { return p.pos >= len(p.src) }
func (p *selectorParser) peek() byte { return p.src[p.pos] }

func (p *selectorParser) skipSpace() bool {
	start := p.pos
	for !p.eof() && (p.peek() == ' ' || p.peek() == '\t' || p.peek() == '\n') {
		p.pos++
	}
	return p.pos > start
}

func (p *selectorParser) chain() ([]step, error) {
	p.skipSpace()
	var chain []step
	var comb byte
	for {
		st, err := p.compound()
		if err != nil {
			return nil, err
		}
		st.combinator = comb
		chain = append(chain, st)

		spaced := p.skipSpace()
		if p.eof() || p.peek() == ',' {
			return chain, nil
		}
		if p.peek() == '>' {
			p.pos++
			p.skipSpace()
			comb = '>'
			continue
		}
		if !spaced {
			return nil, fmt.Errorf("unexpected %q at %d", p.peek(), p.pos)
		}
		comb = ' '
	}
}

func (p *selectorParser) compound() (step, error) {
	var st step
	switch {
	case p.eof():
		return st, fmt.Errorf("missing node kind at %d", p.pos)
	case p.peek() == '*':
		p.pos++
	case p.peek() == '[':
		// attribute-only compound matches any kind
	default:
		name := p.ident()
		if name == "" {
			return st, fmt.Errorf("unexpected %q at %d", p.peek(), p.pos)
		}
		st.kind = ast.Kind(name)
	}

	for !p.eof() && p.peek() == '[' {
		p.pos++
		a, err := p.attr()
		if err != nil {
			return st, err
		}
		st.attrs = append(st.attrs, a)
	}
	return st, nil
}

func (p *selectorParser) attr() (attrTest, error) {
	var a attrTest
	p.skipSpace()
	start := p.pos
	for !p.eof() && (isIdentByte(p.peek()) || p.peek() == '.') {
		p.pos++
	}
	a.path = p.src[start:p.pos]
	if a.path == "" {
		return a, fmt.Errorf("missing attribute path at %d", p.pos)
	}
	p.skipSpace()
	if p.eof() {
		return a, fmt.Errorf("unterminated attribute")
	}

	switch {
	case p.peek() == ']':
		p.pos++
		a.op = attrExists
		return a, nil
	case p.peek() == '=':
		p.pos++
		a.op = attrEquals
	case strings.HasPrefix(p.src[p.pos:], "!="):
		p.pos += 2
		a.op = attrNotEquals
	default:
		return a, fmt.Errorf("unexpected %q in attribute at %d", p.peek(), p.pos)
	}

	p.skipSpace()
	v, err := p.value()
	if err != nil {
		return a, err
	}
	a.value = v
	p.skipSpace()
	if p.eof() || p.peek() != ']' {
		return a, fmt.Errorf("unterminated attribute")
	}
	p.pos++
	return a, nil
}

func (p *selectorParser) value() (string, error) {
	if p.eof() {
		return "", fmt.Errorf("missing attribute value")
	}
	if q := p.peek(); q == '"' || q == '\'' {
		p.pos++
		start := p.pos
		for !p.eof() && p.peek() != q {
			p.pos++
		}
		if p.eof() {
			return "", fmt.Errorf("unterminated string")
		}
		v := p.src[start:p.pos]
		p.pos++
		return v, nil
	}
	start := p.pos
	for !p.eof() && p.peek() != ']' && p.peek() != ' ' {
		p.pos++
	}
	if p.pos == start {
		return "", fmt.Errorf("missing attribute value at %d", p.pos)
	}
	return p.src[start:p.pos], nil
}

func (p *selectorParser) ident() string {
	start := p.pos
	for !p.eof() && isIdentByte(p.peek()) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c == '-' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
