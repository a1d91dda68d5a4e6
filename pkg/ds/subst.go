package ds

import "strings"

// dictBinding is one parsed entry of a substitution-dictionary Term (see
// Ground). fromScope/toScope are nil for an unscoped binding.
type dictBinding struct {
	fromScope *string
	toScope   *string
	varName   string
	value     Term
}

// parseDictionary validates that sigma has the substitution-dictionary
// shape described in the specification's data model (a List whose children are
// all Lists, each either a 2-element unscoped binding or a 4-element scoped
// binding) and returns its bindings in order. ok is false for any
// structural violation, per "Ill-shaped dictionaries cause the operation
// using them to fail".
func parseDictionary(sigma Term) (bindings []dictBinding, ok bool) {
	if !sigma.IsList() {
		return nil, false
	}
	for _, child := range sigma.children {
		if !child.IsList() {
			return nil, false
		}
		switch len(child.children) {
		case 2:
			v := child.children[0]
			if !v.IsVariable() {
				return nil, false
			}
			bindings = append(bindings, dictBinding{varName: v.name, value: child.children[1]})
		case 4:
			from, to, v := child.children[0], child.children[1], child.children[2]
			if !from.IsItem() || !to.IsItem() || !v.IsVariable() {
				return nil, false
			}
			fromName, toName := from.name, to.name
			bindings = append(bindings, dictBinding{
				fromScope: &fromName,
				toScope:   &toName,
				varName:   v.name,
				value:     child.children[3],
			})
		default:
			return nil, false
		}
	}
	return bindings, true
}

// findBinding consults scoped bindings whose from-scope is scope first,
// falling back to unscoped bindings, matching the specification's scope lookup
// order.
func findBinding(bindings []dictBinding, name string, scope *string) *dictBinding {
	if scope != nil {
		for i := range bindings {
			b := &bindings[i]
			if b.fromScope != nil && *b.fromScope == *scope && b.varName == name {
				return b
			}
		}
	}
	for i := range bindings {
		b := &bindings[i]
		if b.fromScope == nil && b.varName == name {
			return b
		}
	}
	return nil
}

// lookupChase finds the value bound to name under scope. If that binding is
// scoped and its value is itself a bare Variable, the lookup chases one
// more hop into the binding's to-scope, and keeps chasing as long as each
// newly-resolved value is again a scoped binding to a bare Variable; the
// chase stops (returning the last resolved value) the moment a further hop
// finds no binding, so an unresolvable forwarding link is not itself a
// failure — only an entirely unbound starting name is. This is distinct
// from "ground is not recursive on the substituted value": grounding never
// re-walks into the substructure of a bound value, but scope-to-scope
// variable forwarding is a dedicated, always-active mechanism.
func lookupChase(bindings []dictBinding, name string, scope *string) (Term, bool) {
	found := findBinding(bindings, name, scope)
	if found == nil {
		return Term{}, false
	}
	value := found.value
	for found.fromScope != nil && value.IsVariable() {
		next := value.Variant().(Variable)
		nextScope := *found.toScope
		nb := findBinding(bindings, next.Name, &nextScope)
		if nb == nil {
			break
		}
		found = nb
		value = found.value
	}
	return value, true
}

func groundWalk(t Term, bindings []dictBinding, scope *string) Term {
	switch t.kind {
	case kindVariable:
		if v, ok := lookupChase(bindings, t.name, scope); ok {
			return v
		}
		return t
	case kindItem:
		return t
	case kindList:
		children := make([]Term, len(t.children))
		for i, c := range t.children {
			children[i] = groundWalk(c, bindings, scope)
		}
		return Term{kind: kindList, children: children}
	default:
		panic("ds: term: unrecognized variant tag")
	}
}

// Ground replaces every Variable in t with the value bound to it in sigma
// under scope (nil for no scope), leaving Items and List structure
// otherwise untouched. It returns ok=false, with no error raised, both when
// sigma is not a well-formed substitution dictionary and when the grounded
// result does not fit within budget (0 selects the ambient buffer policy) —
// the specification treats both as the same "none" outcome, distinct from a
// raised programmer error.
func Ground(t, sigma Term, scope *string, budget int) (Term, bool) {
	bindings, ok := parseDictionary(sigma)
	if !ok {
		return Term{}, false
	}
	result := groundWalk(t, bindings, scope)
	if _, err := result.Render(budget); err != nil {
		return Term{}, false
	}
	return result, true
}

// Ground is sugar for Ground(t, sigma, nil, 0), the unscoped case.
func (t Term) Ground(sigma Term) (Term, bool) {
	return Ground(t, sigma, nil, 0)
}

// GroundScope is sugar for Ground(t, sigma, &scope, 0).
func (t Term) GroundScope(sigma Term, scope string) (Term, bool) {
	return Ground(t, sigma, &scope, 0)
}

// Rename accepts rho of the shape "((prefix items...) (suffix items...))"
// and returns t with every Variable `x replaced by the Variable named
// concat(prefix names) + x + concat(suffix names). A malformed rho (not
// exactly two Lists of Items) returns ok=false.
func Rename(t Term, rho Term) (Term, bool) {
	if !rho.IsList() || len(rho.children) != 2 {
		return Term{}, false
	}
	prefixList, suffixList := rho.children[0], rho.children[1]
	if !prefixList.IsList() || !suffixList.IsList() {
		return Term{}, false
	}
	prefix, ok := concatItemNames(prefixList)
	if !ok {
		return Term{}, false
	}
	suffix, ok := concatItemNames(suffixList)
	if !ok {
		return Term{}, false
	}
	return renameWalk(t, prefix, suffix), true
}

func concatItemNames(list Term) (string, bool) {
	var b strings.Builder
	for _, c := range list.children {
		if !c.IsItem() {
			return "", false
		}
		b.WriteString(c.name)
	}
	return b.String(), true
}

func renameWalk(t Term, prefix, suffix string) Term {
	switch t.kind {
	case kindVariable:
		return Term{kind: kindVariable, name: prefix + t.name + suffix}
	case kindItem:
		return t
	case kindList:
		children := make([]Term, len(t.children))
		for i, c := range t.children {
			children[i] = renameWalk(c, prefix, suffix)
		}
		return Term{kind: kindList, children: children}
	default:
		panic("ds: term: unrecognized variant tag")
	}
}

// Rename is sugar for Rename(t, rho).
func (t Term) Rename(rho Term) (Term, bool) {
	return Rename(t, rho)
}

// bindingSet accumulates the substitution produced by Match, preserving
// first-seen order and rejecting conflicting rebindings of the same
// variable.
type bindingSet struct {
	entries []dictBinding
	index   map[string]int
}

func newBindingSet() *bindingSet {
	return &bindingSet{index: make(map[string]int)}
}

func (b *bindingSet) record(name string, value Term, scopeA, scopeB *string) bool {
	if i, ok := b.index[name]; ok {
		return b.entries[i].value.Equal(value)
	}
	b.index[name] = len(b.entries)
	b.entries = append(b.entries, dictBinding{fromScope: scopeA, toScope: scopeB, varName: name, value: value})
	return true
}

func (b *bindingSet) term() Term {
	children := make([]Term, len(b.entries))
	for i, e := range b.entries {
		varTerm := Term{kind: kindVariable, name: e.varName}
		if e.fromScope != nil {
			fromTerm := Term{kind: kindItem, name: *e.fromScope}
			toTerm := Term{kind: kindItem, name: *e.toScope}
			children[i] = NewList(fromTerm, toTerm, varTerm, e.value)
		} else {
			children[i] = NewList(varTerm, e.value)
		}
	}
	return NewList(children...)
}

func matchWalk(a, b Term, scopeA, scopeB *string, acc *bindingSet) bool {
	switch a.kind {
	case kindVariable:
		return acc.record(a.name, b, scopeA, scopeB)
	case kindItem:
		return b.kind == kindItem && b.name == a.name
	case kindList:
		if b.kind != kindList || len(a.children) != len(b.children) {
			return false
		}
		for i := range a.children {
			if !matchWalk(a.children[i], b.children[i], scopeA, scopeB, acc) {
				return false
			}
		}
		return true
	default:
		panic("ds: term: unrecognized variant tag")
	}
}

// Match computes a substitution dictionary Term that, applied to a under
// scopeA, yields b under scopeB (scopeA/scopeB may be nil). It walks both
// terms in parallel: Items must match identically, Lists must match
// element-wise at equal length, and each Variable in a records a binding to
// the corresponding sub-term of b, failing on conflict with a prior
// binding for the same variable. On failure it returns ok=false.
func Match(a, b Term, scopeA, scopeB *string) (Term, bool) {
	acc := newBindingSet()
	if !matchWalk(a, b, scopeA, scopeB, acc) {
		return Term{}, false
	}
	return acc.term(), true
}

// Match is sugar for Match(t, other, nil, nil).
func (t Term) Match(other Term) (Term, bool) {
	return Match(t, other, nil, nil)
}

// MatchScoped is sugar for Match(t, other, &scopeA, &scopeB).
func (t Term) MatchScoped(other Term, scopeA, scopeB string) (Term, bool) {
	return Match(t, other, &scopeA, &scopeB)
}
