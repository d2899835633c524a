package tokenizer

import (
	"github.com/gnolang/tmscope/grammar"
	"github.com/gnolang/tmscope/internal/matcher"
)

// ActiveSpan is one open span of a run.
type ActiveSpan struct {
	// Rule is nil for the root frame.
	Rule *grammar.SpanRule
	// OpenedAt is where the begin match started.
	OpenedAt int
	// End has back-references already replaced by the begin captures. Nil never closes.
	End         *matcher.Matcher
	EndCaptures grammar.CaptureMap
	// Scopes is the path including the span's own name; it tags the begin and end matches.
	Scopes []string
	// Content is Scopes plus the content name; it tags everything in between.
	Content  []string
	Patterns []grammar.Rule

	// endErr is why a back-referenced end could not be built.
	endErr error
}

// ID names the rule that opened the span.
func (a *ActiveSpan) ID() string {
	if a.Rule == nil {
		return "patterns"
	}
	return a.Rule.ID
}

func rootSpan(patterns []grammar.Rule, scopes []string) *ActiveSpan {
	if scopes == nil {
		scopes = []string{}
	}
	return &ActiveSpan{
		Scopes:   scopes,
		Content:  scopes,
		Patterns: patterns,
	}
}

// ScopeStack holds the open spans of one run, root first.
type ScopeStack struct {
	frames   []*ActiveSpan
	pushes   int
	pops     int
	maxDepth int
}

// NewScopeStack returns a stack holding only root. Root is never popped.
func NewScopeStack(root *ActiveSpan) *ScopeStack {
	return &ScopeStack{frames: []*ActiveSpan{root}}
}

func (s *ScopeStack) Push(span *ActiveSpan) {
	s.frames = append(s.frames, span)
	s.pushes++
	if d := s.Depth(); d > s.maxDepth {
		s.maxDepth = d
	}
}

// Pop removes the innermost span. It reports false when only the root is left.
func (s *ScopeStack) Pop() (*ActiveSpan, bool) {
	if len(s.frames) == 1 {
		return nil, false
	}
	top := s.frames[len(s.frames)-1]
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
	s.pops++
	return top, true
}

func (s *ScopeStack) Top() *ActiveSpan {
	return s.frames[len(s.frames)-1]
}

// Depth is the number of open spans, not counting the root.
func (s *ScopeStack) Depth() int {
	return len(s.frames) - 1
}

// Open returns the open spans, outermost first, without the root.
func (s *ScopeStack) Open() []*ActiveSpan {
	return s.frames[1:]
}

// Snapshot returns a copy of the scope path of the innermost content, root to innermost.
func (s *ScopeStack) Snapshot() []string {
	return append([]string{}, s.Top().Content...)
}

// openedAt reports whether a frame of rule opened at offset is still on the stack.
// Frames opened at the same offset are always the innermost ones.
func (s *ScopeStack) openedAt(rule *grammar.SpanRule, offset int) bool {
	for i := len(s.frames) - 1; i > 0; i-- {
		f := s.frames[i]
		if f.OpenedAt != offset {
			return false
		}
		if f.Rule == rule {
			return true
		}
	}
	return false
}

func concat(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
