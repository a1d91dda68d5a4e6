// Package dsp bridges the human-facing surface syntax (Dsp: infix
// operators, function calls, subscripting) to the canonical lisp-like Ds
// term syntax that pkg/ds parses. It is a pure string-to-string
// translator and does not import pkg/ds — the bridge never builds a
// pkg/ds.Term, it only rewrites text, grounded on
// original_source/bnf/apyds_bnf's ANTLR-visitor parse/unparse pair.
package dsp

import (
	"strings"

	"github.com/gitrdm/dslogic/internal/diagnostic"
)

// precedence levels, lowest first, mirroring the grammar's operator
// priority (loosest-binding alternatives listed earlier in the original
// ANTLR grammar correspond to the lowest levels here).
var precedenceLevels = [][]string{
	{"|"},
	{"&"},
	{"==", "!=", "<=", ">=", "<", ">"},
	{"+", "-"},
	{"*", "/"},
}

// Parse converts Dsp surface text into canonical Ds text: one or more
// rules separated by blank lines or newlines at bracket depth zero, each
// rendered as "p1\np2\n----\nconclusion" (premises, a dash line as wide as
// the widest premise but at least 4, then the conclusion, with no trailing
// newline) or just the bare term for a fact. Rules are joined by "\n".
func Parse(text string) (string, error) {
	chunks := splitTopLevel(text, '\n')
	var rules []string
	for _, chunk := range chunks {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		r, err := parseRule(chunk)
		if err != nil {
			return "", err
		}
		rules = append(rules, r)
	}
	return strings.Join(rules, "\n"), nil
}

func parseRule(text string) (string, error) {
	premiseText, conclusionText, hasArrow := splitArrow(text)
	var ds []string
	if hasArrow {
		for _, p := range splitTopLevel(premiseText, ',') {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			term, err := parseExpr(p)
			if err != nil {
				return "", err
			}
			ds = append(ds, term)
		}
	}
	conclusion, err := parseExpr(strings.TrimSpace(conclusionText))
	if err != nil {
		return "", err
	}
	if len(ds) == 0 {
		return conclusion, nil
	}
	sep := separatorLine(ds, conclusion)
	return strings.Join(ds, "\n") + "\n" + sep + "\n" + conclusion, nil
}

func separatorLine(premises []string, conclusion string) string {
	widest := 0
	for _, p := range premises {
		if len(p) > widest {
			widest = len(p)
		}
	}
	if widest < 4 {
		widest = 4
	}
	return strings.Repeat("-", widest)
}

// splitArrow finds the last top-level "->" in text and splits around it.
// With no top-level "->", the whole text is the conclusion.
func splitArrow(text string) (premises, conclusion string, found bool) {
	depth := 0
	last := -1
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		}
		if depth == 0 && i+1 < len(text) && text[i] == '-' && text[i+1] == '>' {
			last = i
		}
	}
	if last < 0 {
		return "", text, false
	}
	return text[:last], text[last+2:], true
}

// splitTopLevel splits text on sep at bracket depth zero, ignoring splits
// inside parentheses or brackets.
func splitTopLevel(text string, sep byte) []string {
	depth := 0
	start := 0
	var out []string
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		}
		if depth == 0 && text[i] == sep {
			out = append(out, text[start:i])
			start = i + 1
		}
	}
	out = append(out, text[start:])
	return out
}

// --- Dsp expression parser: precedence climbing over a small fixed
// operator table, grounded on the original grammar's binary/unary/function/
// subscript alternatives. ---

type exprParser struct {
	text string
	pos  int
}

func parseExpr(text string) (string, error) {
	p := &exprParser{text: text}
	p.skipSpace()
	term, err := p.parseBinary(0)
	if err != nil {
		return "", err
	}
	p.skipSpace()
	if !p.atEnd() {
		return "", diagnostic.New("unexpected trailing input %q", p.text[p.pos:])
	}
	return term, nil
}

func (p *exprParser) atEnd() bool { return p.pos >= len(p.text) }

func (p *exprParser) skipSpace() {
	for !p.atEnd() && isSpace(p.text[p.pos]) {
		p.pos++
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func (p *exprParser) parseBinary(level int) (string, error) {
	if level >= len(precedenceLevels) {
		return p.parseUnary()
	}
	left, err := p.parseBinary(level + 1)
	if err != nil {
		return "", err
	}
	for {
		p.skipSpace()
		op, ok := p.matchOp(precedenceLevels[level])
		if !ok {
			return left, nil
		}
		right, err := p.parseBinary(level + 1)
		if err != nil {
			return "", err
		}
		left = "(binary " + op + " " + left + " " + right + ")"
	}
}

func (p *exprParser) matchOp(ops []string) (string, bool) {
	for _, op := range ops {
		if strings.HasPrefix(p.text[p.pos:], op) {
			p.pos += len(op)
			return op, true
		}
	}
	return "", false
}

func (p *exprParser) parseUnary() (string, error) {
	p.skipSpace()
	if !p.atEnd() && (p.text[p.pos] == '!' || p.text[p.pos] == '-') {
		op := string(p.text[p.pos])
		p.pos++
		operand, err := p.parseUnary()
		if err != nil {
			return "", err
		}
		return "(unary " + op + " " + operand + ")", nil
	}
	return p.parsePostfix()
}

func (p *exprParser) parsePostfix() (string, error) {
	term, err := p.parseAtom()
	if err != nil {
		return "", err
	}
	for {
		p.skipSpace()
		if p.atEnd() {
			return term, nil
		}
		switch p.text[p.pos] {
		case '(':
			args, err := p.parseArgList('(', ')')
			if err != nil {
				return "", err
			}
			if len(args) == 0 {
				term = "(function " + term + ")"
			} else {
				term = "(function " + term + " " + strings.Join(args, " ") + ")"
			}
		case '[':
			args, err := p.parseArgList('[', ']')
			if err != nil {
				return "", err
			}
			term = "(subscript " + term + " " + strings.Join(args, " ") + ")"
		default:
			return term, nil
		}
	}
}

func (p *exprParser) parseArgList(open, close byte) ([]string, error) {
	if p.text[p.pos] != open {
		return nil, diagnostic.New("expected %q", string(open))
	}
	p.pos++
	var args []string
	p.skipSpace()
	if !p.atEnd() && p.text[p.pos] == close {
		p.pos++
		return nil, nil
	}
	for {
		arg, err := p.parseBinary(0)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		p.skipSpace()
		if p.atEnd() {
			return nil, diagnostic.New("unterminated argument list, expected %q", string(close))
		}
		if p.text[p.pos] == ',' {
			p.pos++
			p.skipSpace()
			continue
		}
		if p.text[p.pos] == close {
			p.pos++
			return args, nil
		}
		return nil, diagnostic.New("expected ',' or %q, found %q", string(close), string(p.text[p.pos]))
	}
}

func (p *exprParser) parseAtom() (string, error) {
	p.skipSpace()
	if p.atEnd() {
		return "", diagnostic.New("unexpected end of input, expected a term")
	}
	if p.text[p.pos] == '(' {
		p.pos++
		inner, err := p.parseBinary(0)
		if err != nil {
			return "", err
		}
		p.skipSpace()
		if p.atEnd() || p.text[p.pos] != ')' {
			return "", diagnostic.New("expected ')'")
		}
		p.pos++
		return inner, nil
	}
	start := p.pos
	for !p.atEnd() && isSymbolByte(p.text[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return "", diagnostic.New("unexpected character %q", string(p.text[p.pos]))
	}
	return p.text[start:p.pos], nil
}

func isSymbolByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9', b == '_', b == '.', b == '\'', b == '`':
		return true
	}
	return false
}
