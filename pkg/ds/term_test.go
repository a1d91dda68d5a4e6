package ds

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustParse(t *testing.T, text string) Term {
	t.Helper()
	term, err := ParseTerm(text)
	if err != nil {
		t.Fatalf("ParseTerm(%q): %v", text, err)
	}
	return term
}

func TestParseTermRoundTrip(t *testing.T) {
	cases := []string{
		"a",
		"`x",
		"()",
		"(a b c)",
		"(f `x (g y))",
	}
	for _, text := range cases {
		term := mustParse(t, text)
		got := term.String()
		if got != text {
			t.Errorf("round trip %q: got %q", text, got)
		}
	}
}

func TestParseTermErrors(t *testing.T) {
	cases := []string{"", "(", ")", "(a", "a)"}
	for _, text := range cases {
		if _, err := ParseTerm(text); err == nil {
			t.Errorf("ParseTerm(%q): expected error, got none", text)
		}
	}
}

func TestTermEqual(t *testing.T) {
	a := mustParse(t, "(f `x a)")
	b := mustParse(t, "(f `x a)")
	c := mustParse(t, "(f `y a)")
	if !a.Equal(b) {
		t.Errorf("expected %q to equal %q", a, b)
	}
	if a.Equal(c) {
		t.Errorf("expected %q to not equal %q", a, c)
	}
}

func TestTermHashMatchesEqual(t *testing.T) {
	a := mustParse(t, "(f `x (g a b))")
	b := mustParse(t, "(f `x (g a b))")
	if a.Hash() != b.Hash() {
		t.Errorf("structurally equal terms hashed differently")
	}
}

func TestChildOutOfRange(t *testing.T) {
	l := mustParse(t, "(a b)")
	if _, err := l.Child(2); err == nil {
		t.Errorf("expected ErrType for out-of-range child")
	}
	v := mustParse(t, "`x")
	if _, err := v.Child(0); err == nil {
		t.Errorf("expected ErrType for Child on a non-list term")
	}
}

func TestRenderBudget(t *testing.T) {
	term := mustParse(t, "(a b c)")
	if _, err := term.Render(3); err == nil {
		t.Errorf("expected ErrBufferTooSmall for an undersized budget")
	}
	if _, err := term.Render(100); err != nil {
		t.Errorf("unexpected error with a generous budget: %v", err)
	}
}

func TestScopedBufferSizeRestores(t *testing.T) {
	before := BufferSize(0)
	func() {
		restore := ScopedBufferSize(8)
		defer restore()
		if got := BufferSize(0); got != 8 {
			t.Errorf("expected scoped budget 8, got %d", got)
		}
	}()
	if got := BufferSize(0); got != before {
		t.Errorf("expected budget restored to %d, got %d", before, got)
	}
}

func TestWithScopedBufferSizeRestoresOnPanic(t *testing.T) {
	before := BufferSize(0)
	func() {
		defer func() { recover() }()
		WithScopedBufferSize(8, func() {
			panic("boom")
		})
	}()
	if got := BufferSize(0); got != before {
		t.Errorf("expected budget restored after panic, got %d want %d", got, before)
	}
}

func TestVariantNarrowing(t *testing.T) {
	v := mustParse(t, "`x")
	if got, ok := v.Variant().(Variable); !ok || got.Name != "x" {
		t.Errorf("expected Variable{x}, got %#v", v.Variant())
	}
	it := mustParse(t, "a")
	if got, ok := it.Variant().(Item); !ok || got.Name != "a" {
		t.Errorf("expected Item{a}, got %#v", it.Variant())
	}
	l := mustParse(t, "(a b)")
	want := List{Children: []Term{mustParse(t, "a"), mustParse(t, "b")}}
	if diff := cmp.Diff(want, l.Variant(), cmp.AllowUnexported(Term{})); diff != "" {
		t.Errorf("Variant() mismatch (-want +got):\n%s", diff)
	}
}
