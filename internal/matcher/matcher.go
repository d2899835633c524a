// Package matcher wraps backtracking regular expressions for the tokenizer.
//
// Patterns use the regexp2 dialect (.NET syntax, close to Oniguruma): lookahead,
// lookbehind, back-references, \p{..} classes and the \G anchor are supported.
// Offsets are rune offsets into the text being matched.
package matcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// Span is a half-open rune interval. Start is negative for a group that did not participate.
type Span struct {
	Start, End int
}

// Matched reports whether the group participated in the match.
func (s Span) Matched() bool {
	return s.Start >= 0
}

// Empty reports whether the span is zero-width.
func (s Span) Empty() bool {
	return s.Start == s.End
}

// Result is one successful match.
type Result struct {
	Start, End int
	// Groups is indexed by group number; Groups[0] is the whole match.
	Groups []Span
}

// Empty reports whether the match is zero-width.
func (r Result) Empty() bool {
	return r.Start == r.End
}

// GroupCount returns the number of groups the pattern declares, including group 0.
func (r Result) GroupCount() int {
	return len(r.Groups)
}

// Group returns the span of group n. ok is false when n is out of range or the group did not participate.
func (r Result) Group(n int) (Span, bool) {
	if n < 0 || n >= len(r.Groups) || !r.Groups[n].Matched() {
		return Span{-1, -1}, false
	}
	return r.Groups[n], true
}

// Text returns the text captured by group n, or "" if it did not participate.
func (r Result) Text(text []rune, n int) string {
	g, ok := r.Group(n)
	if !ok {
		return ""
	}
	return string(text[g.Start:g.End])
}

// Matcher is a compiled pattern. It is immutable and safe for concurrent use.
type Matcher struct {
	pattern  string
	re       *regexp2.Regexp
	timeout  time.Duration
	anchored bool
	// positional patterns (containing \G) give results that depend on the start offset.
	positional bool
	groups     int
}

// Compile compiles pattern. A zero timeout means no match timeout.
func Compile(pattern string, timeout time.Duration) (*Matcher, error) {
	re, err := regexp2.Compile(pattern, regexp2.Multiline)
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}

	groups := 1
	for _, n := range re.GetGroupNumbers() {
		if n+1 > groups {
			groups = n + 1
		}
	}

	return &Matcher{
		pattern:    pattern,
		re:         re,
		timeout:    timeout,
		anchored:   isAnchored(pattern),
		positional: strings.Contains(pattern, `\G`),
		groups:     groups,
	}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string) *Matcher {
	m, err := Compile(pattern, 0)
	if err != nil {
		panic(fmt.Sprintf("matcher: Compile(%q): %v", pattern, err))
	}
	return m
}

// Derive compiles another pattern with the same options as m.
func (m *Matcher) Derive(pattern string) (*Matcher, error) {
	return Compile(pattern, m.timeout)
}

// String returns the source pattern.
func (m *Matcher) String() string {
	return m.pattern
}

// Anchored reports whether the pattern only matches exactly at the search offset.
func (m *Matcher) Anchored() bool {
	return m.anchored
}

// Positional reports whether results depend on the search offset beyond
// "earliest match at or after it", i.e. whether the pattern uses \G.
func (m *Matcher) Positional() bool {
	return m.positional
}

// Groups returns the number of groups including group 0.
func (m *Matcher) Groups() int {
	return m.groups
}

// MatchAt returns the earliest match starting at or after offset.
// Anchored patterns only match exactly at offset.
// A failed search (match timeout) yields an empty Option carrying the error.
func (m *Matcher) MatchAt(text []rune, offset int) Option[Result] {
	if offset < 0 || offset > len(text) {
		return None[Result]()
	}
	match, err := m.re.FindRunesMatchStartingAt(text, offset)
	if err != nil {
		return Fail[Result](fmt.Errorf("pattern %q: %w", m.pattern, err))
	}
	if match == nil {
		return None[Result]()
	}

	return Some(m.result(match)).Filter(func(r Result) bool {
		return !m.anchored || r.Start == offset
	})
}

func (m *Matcher) result(match *regexp2.Match) Result {
	res := Result{
		Start:  match.Index,
		End:    match.Index + match.Length,
		Groups: make([]Span, m.groups),
	}
	for n := range res.Groups {
		res.Groups[n] = Span{-1, -1}
		g := match.GroupByNumber(n)
		if g == nil || len(g.Captures) == 0 {
			continue
		}
		res.Groups[n] = Span{g.Index, g.Index + g.Length}
	}
	return res
}

// isAnchored reports whether every alternative of the pattern starts with \G.
func isAnchored(pattern string) bool {
	if !strings.HasPrefix(pattern, `\G`) {
		return false
	}
	depth := 0
	inClass := false
	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; {
		case c == '\\':
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == '|' && depth == 0:
			return false
		}
	}
	return true
}
