package grammar

import (
	"sort"
	"strings"

	"github.com/gnolang/tmscope/internal/matcher"
)

// Rule is one node of a compiled rule graph. The set of implementations is closed:
// *MatchRule, *SpanRule, *IncludeRef and *GroupRule.
type Rule interface {
	// RuleID locates the rule in its document, e.g. "repository.strings.patterns[1]".
	RuleID() string
	rule()
}

// MatchRule is a leaf rule matching a single pattern.
type MatchRule struct {
	ID       string
	Pattern  *matcher.Matcher
	Captures CaptureMap
	Scopes   []string
}

// SpanRule opens a region at Begin and closes it at End.
type SpanRule struct {
	ID            string
	Begin         *matcher.Matcher
	BeginCaptures CaptureMap
	// End is nil when EndTemplate is empty (the span never closes) or refers
	// to begin captures and has to be resolved for every opened span.
	End           *matcher.Matcher
	EndTemplate   string
	EndCaptures   CaptureMap
	Scopes        []string
	ContentScopes []string
	Patterns      []Rule
}

// IncludeRef refers to a repository entry or to the grammar itself.
// It is resolved each time it is reached, never inlined.
type IncludeRef struct {
	ID  string
	Key string
}

// GroupRule only lists patterns.
type GroupRule struct {
	ID       string
	Patterns []Rule
}

func (r *MatchRule) RuleID() string  { return r.ID }
func (r *SpanRule) RuleID() string   { return r.ID }
func (r *IncludeRef) RuleID() string { return r.ID }
func (r *GroupRule) RuleID() string  { return r.ID }

func (*MatchRule) rule()  {}
func (*SpanRule) rule()   {}
func (*IncludeRef) rule() {}
func (*GroupRule) rule()  {}

// BackReferenced reports whether the end pattern depends on the begin match.
func (r *SpanRule) BackReferenced() bool {
	return r.End == nil && r.EndTemplate != ""
}

// Capture assigns scopes to a capture group, and optionally re-tokenizes
// the captured text with its own patterns.
type Capture struct {
	Scopes   []string
	Patterns []Rule
}

// CaptureMap maps group numbers to captures.
type CaptureMap map[int]*Capture

// Indices returns the declared group numbers in ascending order.
func (c CaptureMap) Indices() []int {
	idx := make([]int, 0, len(c))
	for n := range c {
		idx = append(idx, n)
	}
	sort.Ints(idx)
	return idx
}

// SplitScopes splits a TextMate name, which may hold several space-separated scopes.
func SplitScopes(name string) []string {
	return strings.Fields(name)
}
