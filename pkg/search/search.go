// Package search implements a forward-chaining deduction engine over
// pkg/ds terms and rules: a fixed-point dedup/admission loop, not a
// nondeterministic relational search over streams of substitutions (that
// machinery belongs to the teacher's goroutine/channel-based solver, which
// this engine's single-threaded, synchronous contract does not need).
package search

import (
	"github.com/hashicorp/go-hclog"

	"github.com/gitrdm/dslogic/pkg/ds"
)

// Option configures a Search.
type Option func(*Search)

// WithLogger attaches an hclog.Logger that traces admission, dedup, and
// derivation events at Debug/Trace level. The default is a null logger, so
// Search stays silent unless a caller opts in.
func WithLogger(l hclog.Logger) Option {
	return func(s *Search) { s.log = l }
}

// Search holds the admitted fact/rule set and the FIFO worklist driving
// forward chaining. It is not safe for concurrent mutation of one
// instance, matching the single-threaded contract of the rest of this
// module.
type Search struct {
	limitSize  int
	bufferSize int
	log        hclog.Logger

	seen     map[string]struct{}
	worklist []ds.Rule
	rules    []ds.Rule
}

// New builds a Search admitting at most limitSize rules, serialising
// through bufferSize bytes (0 selects the ambient ds buffer policy) when
// computing the canonical text used to deduplicate facts and rules.
func New(limitSize, bufferSize int, opts ...Option) *Search {
	s := &Search{
		limitSize:  limitSize,
		bufferSize: bufferSize,
		log:        hclog.NewNullLogger(),
		seen:       make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Len reports how many rules/facts are currently admitted.
func (s *Search) Len() int {
	return len(s.rules)
}

// Add admits text (parsed as a Rule, a bare term parsing as a fact) into
// the search's fact/rule set if it is not already present (by canonical
// serialised form) and the set is below limitSize. It reports whether the
// rule was newly admitted.
func (s *Search) Add(text string) bool {
	r, err := ds.ParseRule(text)
	if err != nil {
		s.log.Debug("search: rejected unparsable input", "text", text, "error", err)
		return false
	}
	return s.addRule(r)
}

// AddRule is the Rule-typed analogue of Add, for callers that already hold
// a ds.Rule (e.g. a derivation produced by Execute's own resolution step).
func (s *Search) AddRule(r ds.Rule) bool {
	return s.addRule(r)
}

func (s *Search) addRule(r ds.Rule) bool {
	key, err := r.Render(s.bufferSize)
	if err != nil {
		s.log.Debug("search: rejected rule exceeding buffer budget", "error", err)
		return false
	}
	if _, dup := s.seen[key]; dup {
		s.log.Trace("search: dedup hit", "rule", key)
		return false
	}
	if s.limitSize > 0 && len(s.rules) >= s.limitSize {
		s.log.Debug("search: admission limit reached", "limit", s.limitSize)
		return false
	}
	s.seen[key] = struct{}{}
	s.rules = append(s.rules, r)
	s.worklist = append(s.worklist, r)
	s.log.Trace("search: admitted", "rule", key)
	return true
}

// Execute drains the FIFO worklist to a fixed point: each dequeued entry is
// paired with every opposite-kind entry (a fact, premise count 0, with a
// rule, or a rule with a fact) admitted before it, so the resolution step
// R.Match(fact) is attempted once for every admitted rule R and fact. A result
// is offered to callback only once it has been newly admitted to the set
// (duplicates and over-budget results are dropped silently and never reach
// callback); newly admitted results are also queued for further resolution
// against the rest of the set. callback returns true to stop Execute before
// any further derivations, false to continue. Execute returns the number of
// callback invocations, i.e. the number of newly admitted derivations.
func (s *Search) Execute(callback func(ds.Rule) bool) int {
	derived := 0
	for len(s.worklist) > 0 {
		// The worklist is always the tail of s.rules (both are appended in
		// admission order), so earlier holds every entry admitted before cur.
		earlier := s.rules[:len(s.rules)-len(s.worklist)]
		cur := s.worklist[0]
		s.worklist = s.worklist[1:]

		for _, other := range earlier {
			r, fact := other, cur
			if cur.Len() != 0 {
				r, fact = cur, other
			}
			if r.Len() == 0 || fact.Len() != 0 {
				continue // resolution pairs one rule with one fact
			}
			result, ok := r.Match(fact)
			if !ok {
				continue
			}
			if !s.addRule(result) {
				continue
			}
			s.log.Debug("search: derived", "from", r.String(), "fact", fact.String(), "result", result.String())
			derived++
			if callback(result) {
				return derived
			}
		}
	}
	return derived
}
