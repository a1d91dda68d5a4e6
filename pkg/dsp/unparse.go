package dsp

import (
	"strings"

	"github.com/gitrdm/dslogic/internal/diagnostic"
)

// lispKind tags the tiny local term representation unparse.go parses
// canonical Ds text into. It intentionally duplicates the shape of
// pkg/ds.Term rather than importing that package: the bridge is a pure
// string-to-string translator (specification §4.7), never constructing a
// pkg/ds value.
type lispKind uint8

const (
	lispVariable lispKind = iota
	lispItem
	lispList
)

type lispTerm struct {
	kind     lispKind
	name     string
	children []lispTerm
}

// Unparse converts canonical Ds text (one or more rules, premises then a
// dash-separator line then a conclusion, or a bare fact term) into Dsp
// surface syntax.
func Unparse(text string) (string, error) {
	chunks := splitDsRules(text)
	var out []string
	for _, chunk := range chunks {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		r, err := unparseRule(chunk)
		if err != nil {
			return "", err
		}
		out = append(out, r)
	}
	return strings.Join(out, "\n"), nil
}

// splitDsRules splits a Ds text blob into rule chunks separated by one or
// more blank lines, matching the rule_pool grammar's repetition of rule.
func splitDsRules(text string) []string {
	return strings.Split(strings.TrimSpace(text), "\n\n")
}

func unparseRule(text string) (string, error) {
	p := newLispParser(text)
	var terms []lispTerm
	for {
		p.skipSpace()
		if p.atEnd() {
			break
		}
		t, err := p.parseTerm()
		if err != nil {
			return "", err
		}
		if isDashRun(t) {
			continue
		}
		terms = append(terms, t)
	}
	if len(terms) == 0 {
		return "", diagnostic.New("empty rule text")
	}
	conclusion := terms[len(terms)-1]
	premises := terms[:len(terms)-1]

	conclusionStr, err := unparseTerm(conclusion)
	if err != nil {
		return "", err
	}
	if len(premises) == 0 {
		return conclusionStr, nil
	}
	var rendered []string
	for _, p := range premises {
		s, err := unparseTerm(p)
		if err != nil {
			return "", err
		}
		rendered = append(rendered, s)
	}
	return strings.Join(rendered, ", ") + " -> " + conclusionStr, nil
}

func isDashRun(t lispTerm) bool {
	if t.kind != lispItem || t.name == "" {
		return false
	}
	for _, r := range t.name {
		if r != '-' {
			return false
		}
	}
	return true
}

func unparseTerm(t lispTerm) (string, error) {
	switch t.kind {
	case lispVariable:
		return "`" + t.name, nil
	case lispItem:
		return t.name, nil
	case lispList:
		if len(t.children) >= 1 && t.children[0].kind == lispItem {
			switch t.children[0].name {
			case "binary":
				if len(t.children) == 4 {
					left, err := unparseTerm(t.children[2])
					if err != nil {
						return "", err
					}
					right, err := unparseTerm(t.children[3])
					if err != nil {
						return "", err
					}
					return "(" + left + " " + t.children[1].name + " " + right + ")", nil
				}
			case "unary":
				if len(t.children) == 3 {
					operand, err := unparseTerm(t.children[2])
					if err != nil {
						return "", err
					}
					return t.children[1].name + " " + operand, nil
				}
			case "function":
				if len(t.children) >= 2 {
					args, err := unparseTerms(t.children[2:])
					if err != nil {
						return "", err
					}
					fn, err := unparseTerm(t.children[1])
					if err != nil {
						return "", err
					}
					return fn + "(" + strings.Join(args, ", ") + ")", nil
				}
			case "subscript":
				if len(t.children) >= 3 {
					args, err := unparseTerms(t.children[2:])
					if err != nil {
						return "", err
					}
					base, err := unparseTerm(t.children[1])
					if err != nil {
						return "", err
					}
					return base + "[" + strings.Join(args, ", ") + "]", nil
				}
			}
		}
		// Fall back to a literal parenthesised reconstruction for any list
		// shape outside the binary/unary/function/subscript conventions.
		parts, err := unparseTerms(t.children)
		if err != nil {
			return "", err
		}
		return "(" + strings.Join(parts, " ") + ")", nil
	default:
		panic("dsp: unrecognized lisp term kind")
	}
}

func unparseTerms(terms []lispTerm) ([]string, error) {
	out := make([]string, len(terms))
	for i, t := range terms {
		s, err := unparseTerm(t)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// --- minimal canonical Ds parser, local to pkg/dsp ---

type lispParser struct {
	text string
	pos  int
	line int
	col  int
}

func newLispParser(text string) *lispParser {
	return &lispParser{text: text, line: 1, col: 1}
}

func (p *lispParser) atEnd() bool { return p.pos >= len(p.text) }

func (p *lispParser) peek() byte {
	if p.atEnd() {
		return 0
	}
	return p.text[p.pos]
}

func (p *lispParser) advance() byte {
	b := p.text[p.pos]
	p.pos++
	if b == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	return b
}

func (p *lispParser) skipSpace() {
	for !p.atEnd() && isLispSpace(p.peek()) {
		p.advance()
	}
}

func isLispSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isLispNameBreak(b byte) bool {
	return b == '(' || b == ')' || b == '`' || isLispSpace(b)
}

func (p *lispParser) errorf(format string, args ...any) error {
	return diagnostic.At(p.line, p.col, format, args...)
}

func (p *lispParser) parseTerm() (lispTerm, error) {
	p.skipSpace()
	if p.atEnd() {
		return lispTerm{}, p.errorf("unexpected end of input, expected a term")
	}
	switch p.peek() {
	case '(':
		return p.parseList()
	case '`':
		p.advance()
		name, err := p.parseName()
		if err != nil {
			return lispTerm{}, err
		}
		return lispTerm{kind: lispVariable, name: name}, nil
	case ')':
		return lispTerm{}, p.errorf("unexpected ')'")
	default:
		name, err := p.parseName()
		if err != nil {
			return lispTerm{}, err
		}
		return lispTerm{kind: lispItem, name: name}, nil
	}
}

func (p *lispParser) parseName() (string, error) {
	start := p.pos
	for !p.atEnd() && !isLispNameBreak(p.peek()) {
		p.advance()
	}
	if p.pos == start {
		return "", p.errorf("expected a name")
	}
	return p.text[start:p.pos], nil
}

func (p *lispParser) parseList() (lispTerm, error) {
	p.advance()
	var children []lispTerm
	for {
		p.skipSpace()
		if p.atEnd() {
			return lispTerm{}, p.errorf("unexpected end of input inside list, expected ')'")
		}
		if p.peek() == ')' {
			p.advance()
			return lispTerm{kind: lispList, children: children}, nil
		}
		child, err := p.parseTerm()
		if err != nil {
			return lispTerm{}, err
		}
		children = append(children, child)
	}
}
