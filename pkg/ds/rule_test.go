package ds

import "testing"

func mustParseRule(t *testing.T, text string) Rule {
	t.Helper()
	r, err := ParseRule(text)
	if err != nil {
		t.Fatalf("ParseRule(%q): %v", text, err)
	}
	return r
}

func TestParseRuleFactShorthand(t *testing.T) {
	r := mustParseRule(t, "(a b c)")
	if r.Len() != 0 {
		t.Fatalf("expected a fact (0 premises), got %d", r.Len())
	}
	if want := "----\n(a b c)\n"; r.String() != want {
		t.Errorf("got %q, want %q", r.String(), want)
	}
}

func TestParseRuleWithPremises(t *testing.T) {
	r := mustParseRule(t, "(`p -> `q)\n`p\n`q\n")
	if r.Len() != 2 {
		t.Fatalf("expected 2 premises, got %d", r.Len())
	}
	p0, err := r.Premise(0)
	if err != nil || p0.String() != "(`p -> `q)" {
		t.Errorf("premise 0 = %q, err %v", p0.String(), err)
	}
	if r.Conclusion().String() != "`q" {
		t.Errorf("conclusion = %q", r.Conclusion().String())
	}
}

func TestParseRuleDiscardsRenderedSeparator(t *testing.T) {
	r := mustParseRule(t, "(! (! `x))\n----------\n`x\n")
	if r.Len() != 1 {
		t.Fatalf("expected 1 premise, got %d", r.Len())
	}
	if r.Conclusion().String() != "`x" {
		t.Errorf("conclusion = %q", r.Conclusion().String())
	}
}

func TestPremiseOutOfRange(t *testing.T) {
	r := mustParseRule(t, "a")
	if _, err := r.Premise(0); err == nil {
		t.Errorf("expected ErrType for a fact's premise 0")
	}
}

func TestRuleSeparatorWidthIgnoresConclusion(t *testing.T) {
	r := mustParseRule(t, "(a really long premise term)")
	if r.Len() != 0 {
		t.Fatalf("expected a fact, got %d premises", r.Len())
	}
	if want := "----\n(a really long premise term)\n"; r.String() != want {
		t.Errorf("got %q, want %q", r.String(), want)
	}
}

// TestRuleMatchResolutionStep exercises "r @ other" where other is a fact:
// Match finds the premise position of r whose pattern matches the fact,
// removes it, and grounds the rest — the same primitive the search engine
// uses to plug a fact into a rule.
func TestRuleMatchResolutionStep(t *testing.T) {
	mp := mustParseRule(t, "(`p -> `q)\n`p\n`q\n")
	p := mustParseRule(t, "((! (! `x)) -> `x)")

	got, ok := mp.Match(p)
	if !ok {
		t.Fatalf("expected mp @ p to succeed")
	}
	if want := "(! (! `x))\n----------\n`x\n"; got.String() != want {
		t.Errorf("got %q, want %q", got.String(), want)
	}
}

func TestRuleMatchFailsOnIncompatibleShape(t *testing.T) {
	mp := mustParseRule(t, "(`p -> `q)\n`p\n`q\n")
	fail := mustParseRule(t, "`q <- `p")

	if _, ok := mp.Match(fail); ok {
		t.Errorf("expected mp @ fail to fail")
	}
}

func TestRuleMatchSameShape(t *testing.T) {
	r := mustParseRule(t, "`a\n`b\n")
	other := mustParseRule(t, "x\ny\n")
	got, ok := r.Match(other)
	if !ok {
		t.Fatalf("expected same-shape match to succeed")
	}
	if want := "x\n----\ny\n"; got.String() != want {
		t.Errorf("got %q, want %q", got.String(), want)
	}
}

func TestRuleGroundUsesOtherConclusionAsDictionary(t *testing.T) {
	r := mustParseRule(t, "(f `x a)")
	sigma := mustParseRule(t, "((`x b))")
	got, ok := r.Ground(sigma, nil, 0)
	if !ok {
		t.Fatalf("expected rule ground to succeed")
	}
	if want := "----\n(f b a)\n"; got.String() != want {
		t.Errorf("got %q, want %q", got.String(), want)
	}
}

func TestRuleEqualAndHash(t *testing.T) {
	a := mustParseRule(t, "`p\n`q\n")
	b := mustParseRule(t, "`p\n`q\n")
	c := mustParseRule(t, "`p\n`r\n")
	if !a.Equal(b) {
		t.Errorf("expected equal rules to compare equal")
	}
	if a.Hash() != b.Hash() {
		t.Errorf("expected equal rules to hash equal")
	}
	if a.Equal(c) {
		t.Errorf("expected differing rules to compare unequal")
	}
}
