package ds

import "fmt"

// Rule is an ordered, non-empty sequence of Terms: zero or more premises
// followed by a conclusion. A Rule with zero premises is a fact.
type Rule struct {
	terms []Term
}

// NewRule builds a Rule from terms, the last of which becomes the
// conclusion and the rest the premises in order. It returns ErrType if
// terms is empty.
func NewRule(terms ...Term) (Rule, error) {
	if len(terms) == 0 {
		return Rule{}, fmt.Errorf("%w: a rule needs at least one term (its conclusion)", ErrType)
	}
	cp := make([]Term, len(terms))
	copy(cp, terms)
	return Rule{terms: cp}, nil
}

// Len reports the premise count.
func (r Rule) Len() int {
	return len(r.terms) - 1
}

// Premise returns the i-th premise. It returns ErrType if i is out of
// range [0, r.Len()).
func (r Rule) Premise(i int) (Term, error) {
	if i < 0 || i >= r.Len() {
		return Term{}, fmt.Errorf("%w: premise index %d out of range [0,%d)", ErrType, i, r.Len())
	}
	return r.terms[i], nil
}

// Conclusion returns the rule's final term.
func (r Rule) Conclusion() Term {
	return r.terms[len(r.terms)-1]
}

// Equal reports whether r and other have the same terms in the same order.
func (r Rule) Equal(other Rule) bool {
	if len(r.terms) != len(other.terms) {
		return false
	}
	for i := range r.terms {
		if !r.terms[i].Equal(other.terms[i]) {
			return false
		}
	}
	return true
}

// Hash combines the structural hashes of every term, in order.
func (r Rule) Hash() uint64 {
	h := combinedHash(r.terms)
	return h
}

func combinedHash(terms []Term) uint64 {
	// FNV-style fold: start from the offset basis and mix each term's hash
	// in, matching Term.Hash's own algorithm rather than reusing its writer
	// (Rule has no byte-stream representation of its own to hash).
	const offset64 = 14695981039346656037
	const prime64 = 1099511628211
	h := uint64(offset64)
	for _, t := range terms {
		th := t.Hash()
		for i := 0; i < 8; i++ {
			h ^= (th >> (8 * uint(i))) & 0xff
			h *= prime64
		}
	}
	return h
}

// isSeparatorToken reports whether t is a bare run of one or more '-'
// characters, the token ParseRule treats as a rendered separator line and
// discards rather than as a premise or conclusion.
func isSeparatorToken(t Term) bool {
	if !t.IsItem() {
		return false
	}
	name := t.Variant().(Item).Name
	if name == "" {
		return false
	}
	for _, r := range name {
		if r != '-' {
			return false
		}
	}
	return true
}

// ParseRule tokenizes text as a whitespace-separated sequence of terms,
// discarding any separator-line tokens, and builds a Rule from what
// remains (the last term is the conclusion). A bare term with no premises
// parses as a fact, matching the specification's single-term Rule shorthand.
func ParseRule(text string) (Rule, error) {
	p := newTermParser(text)
	var terms []Term
	for {
		p.skipSpace()
		if p.atEnd() {
			break
		}
		t, err := p.parseTerm()
		if err != nil {
			return Rule{}, err
		}
		if isSeparatorToken(t) {
			continue
		}
		terms = append(terms, t)
	}
	if len(terms) == 0 {
		return Rule{}, fmt.Errorf("%w: rule text contains no terms", ErrType)
	}
	return Rule{terms: terms}, nil
}

// widestPremise returns the widest rendered premise width, or 0 if r has no
// premises. Only premises are considered adjacent to the separator line:
// a fact's separator always renders at the floor width, independent of how
// wide its conclusion is.
func (r Rule) widestPremise() int {
	widest := 0
	for i := 0; i < r.Len(); i++ {
		if w := r.terms[i].visualWidth(); w > widest {
			widest = w
		}
	}
	return widest
}

func separatorWidth(widest int) int {
	if widest < 4 {
		return 4
	}
	return widest
}

// Render unparses r as its premises, one per line, then a separator line of
// '-' characters sized max(4, widest premise width), then the conclusion.
func (r Rule) Render(budget int) (string, error) {
	w := newBudgetWriter(effectiveBudget(budget))
	for i := 0; i < r.Len(); i++ {
		if err := r.terms[i].render(w); err != nil {
			return "", err
		}
		if err := w.WriteByte('\n'); err != nil {
			return "", err
		}
	}
	sep := make([]byte, separatorWidth(r.widestPremise()))
	for i := range sep {
		sep[i] = '-'
	}
	if err := w.WriteString(string(sep)); err != nil {
		return "", err
	}
	if err := w.WriteByte('\n'); err != nil {
		return "", err
	}
	if err := r.Conclusion().render(w); err != nil {
		return "", err
	}
	if err := w.WriteByte('\n'); err != nil {
		return "", err
	}
	return w.String(), nil
}

// String renders r through the ambient buffer policy, falling back to a
// placeholder rather than panicking if the budget is exceeded.
func (r Rule) String() string {
	s, err := r.Render(0)
	if err != nil {
		return "<ds.Rule: buffer too small>"
	}
	return s
}

// Ground lifts Term.Ground pointwise across every premise and the
// conclusion of r, all grounded under the same sigma/scope. sigma is the
// conclusion of the other Rule: a substitution dictionary carried by a
// Rule is always its sole term, so any premises on the carrier are
// ignored. Ground fails (ok=false) if sigma is ill-shaped or if grounding
// any one term fails, matching the pointwise-lift contract on Term.Ground.
func (r Rule) Ground(sigma Rule, scope *string, budget int) (Rule, bool) {
	out := make([]Term, len(r.terms))
	for i, t := range r.terms {
		g, ok := Ground(t, sigma.Conclusion(), scope, budget)
		if !ok {
			return Rule{}, false
		}
		out[i] = g
	}
	return Rule{terms: out}, true
}

// Match implements the rule-to-rule pattern match "r @ other".
//
// When other is a fact (zero premises), Match performs a single resolution
// step: it searches r's premises in order for one that matches other's
// conclusion, and on the first such premise i, returns a new Rule with
// premise i removed and every remaining premise and the conclusion
// grounded using the bindings that match produced. This is the same
// primitive the search engine's resolution step applies when plugging a
// fact into a rule.
//
// When other has the same nonzero premise count as r, Match instead
// requires every position (conclusion, then each premise in order) to
// match pairwise against a single shared substitution; on success it
// returns r grounded by that substitution.
//
// Any other premise-count combination, or a failed match/ground at any
// step, returns ok=false.
func (r Rule) Match(other Rule) (Rule, bool) {
	if other.Len() == 0 {
		return r.matchAgainstFact(other.Conclusion())
	}
	if other.Len() == r.Len() {
		return r.matchSameShape(other)
	}
	return Rule{}, false
}

func (r Rule) matchAgainstFact(fact Term) (Rule, bool) {
	for i := 0; i < r.Len(); i++ {
		sigma, ok := Match(r.terms[i], fact, nil, nil)
		if !ok {
			continue
		}
		var out []Term
		for j, t := range r.terms {
			if j == i {
				continue
			}
			g, ok := Ground(t, sigma, nil, 0)
			if !ok {
				return Rule{}, false
			}
			out = append(out, g)
		}
		return Rule{terms: out}, true
	}
	return Rule{}, false
}

func (r Rule) matchSameShape(other Rule) (Rule, bool) {
	acc := newBindingSet()
	if !matchWalk(r.Conclusion(), other.Conclusion(), nil, nil, acc) {
		return Rule{}, false
	}
	for i := 0; i < r.Len(); i++ {
		if !matchWalk(r.terms[i], other.terms[i], nil, nil, acc) {
			return Rule{}, false
		}
	}
	sigma := acc.term()
	out := make([]Term, len(r.terms))
	for i, t := range r.terms {
		g, ok := Ground(t, sigma, nil, 0)
		if !ok {
			return Rule{}, false
		}
		out[i] = g
	}
	return Rule{terms: out}, true
}
