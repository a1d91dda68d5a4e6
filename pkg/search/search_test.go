package search

import (
	"testing"

	"github.com/gitrdm/dslogic/pkg/ds"
)

func TestAddDeduplicates(t *testing.T) {
	s := New(0, 0)
	if !s.Add("(a b)") {
		t.Fatalf("expected first admission to succeed")
	}
	if s.Add("(a b)") {
		t.Errorf("expected duplicate admission to be rejected")
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 admitted rule, got %d", s.Len())
	}
}

func TestAddRespectsLimitSize(t *testing.T) {
	s := New(1, 0)
	if !s.Add("a") {
		t.Fatalf("expected first admission under the limit to succeed")
	}
	if s.Add("b") {
		t.Errorf("expected admission beyond limit_size to be rejected")
	}
}

func TestAddRejectsUnparsable(t *testing.T) {
	s := New(0, 0)
	if s.Add("(a") {
		t.Errorf("expected unparsable text to be rejected")
	}
}

func TestExecuteResolvesFactIntoRule(t *testing.T) {
	s := New(0, 0)
	s.Add("(`p -> `q)\n`p\n`q\n")
	s.Add("((! (! `x)) -> `x)")

	var derived []string
	s.Execute(func(r ds.Rule) bool {
		derived = append(derived, r.String())
		return false
	})

	want := "(! (! `x))\n----------\n`x\n"
	found := false
	for _, d := range derived {
		if d == want {
			found = true
		}
	}
	if !found {
		t.Errorf("expected derivation %q among %v", want, derived)
	}
}

func TestExecuteHonoursEarlyTermination(t *testing.T) {
	s := New(0, 0)
	s.Add("(`p -> `q)\n`p\n`q\n")
	s.Add("((! (! `x)) -> `x)")

	calls := 0
	s.Execute(func(r ds.Rule) bool {
		calls++
		return true
	})
	if calls != 1 {
		t.Errorf("expected callback to stop after the first call, got %d calls", calls)
	}
}
