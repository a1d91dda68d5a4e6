package dsp

import "testing"

func TestParseBinary(t *testing.T) {
	got, err := Parse("a + b")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if want := "(binary + a b)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseUnary(t *testing.T) {
	got, err := Parse("! a")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if want := "(unary ! a)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseFunctionCall(t *testing.T) {
	got, err := Parse("f(a, b)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if want := "(function f a b)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseSubscript(t *testing.T) {
	got, err := Parse("a[i, j]")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if want := "(subscript a i j)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParsePrecedence(t *testing.T) {
	got, err := Parse("a + b * c")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if want := "(binary + a (binary * b c))"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseFactHasNoArrow(t *testing.T) {
	got, err := Parse("a + b")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if want := "(binary + a b)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseRuleWithPremises(t *testing.T) {
	got, err := Parse("p, q -> r")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := "p\nq\n----\nr"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseErrorOnIncompleteExpression(t *testing.T) {
	if _, err := Parse("a +"); err == nil {
		t.Errorf("expected an error for an incomplete expression")
	}
}

func TestUnparseBinary(t *testing.T) {
	got, err := Unparse("(binary + a b)")
	if err != nil {
		t.Fatalf("Unparse: %v", err)
	}
	if want := "(a + b)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestUnparseUnary(t *testing.T) {
	got, err := Unparse("(unary ! a)")
	if err != nil {
		t.Fatalf("Unparse: %v", err)
	}
	if want := "! a"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestUnparseFunctionCall(t *testing.T) {
	got, err := Unparse("(function f a b)")
	if err != nil {
		t.Fatalf("Unparse: %v", err)
	}
	if want := "f(a, b)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestUnparseSubscript(t *testing.T) {
	got, err := Unparse("(subscript a i j)")
	if err != nil {
		t.Fatalf("Unparse: %v", err)
	}
	if want := "a[i, j]"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestUnparseRuleWithPremises(t *testing.T) {
	got, err := Unparse("p\n----\nr\n")
	if err != nil {
		t.Fatalf("Unparse: %v", err)
	}
	if want := "p -> r"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseUnparseRoundTrip(t *testing.T) {
	surface := "a + b * c"
	ds, err := Parse(surface)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	back, err := Unparse(ds)
	if err != nil {
		t.Fatalf("Unparse: %v", err)
	}
	if back != "(a + (b * c))" {
		t.Errorf("round trip produced %q", back)
	}
}
