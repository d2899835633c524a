package tokenizer

import (
	"fmt"

	"github.com/gnolang/tmscope/grammar"
	"github.com/gnolang/tmscope/internal/matcher"
)

type openCapture struct {
	scopes []string
	end    int
}

// captures emits the tokens of one match. Groups nest: a group inside another
// group gets both scopes. Text of the match outside every capture gets base.
// A capture with patterns tokenizes its text with those patterns instead.
func (m *machine) captures(res matcher.Result, caps grammar.CaptureMap, base []string, ruleID string) {
	if len(caps) == 0 {
		m.emit(res.Start, res.End, base)
		return
	}

	pos := res.Start
	var open []openCapture
	current := func() []string {
		if len(open) == 0 {
			return base
		}
		return open[len(open)-1].scopes
	}
	// closeUntil emits and closes every open capture ending at or before offset.
	closeUntil := func(offset int) {
		for len(open) > 0 && open[len(open)-1].end <= offset {
			top := open[len(open)-1]
			m.emit(pos, top.end, top.scopes)
			pos = max(pos, top.end)
			open = open[:len(open)-1]
		}
	}

	for _, n := range caps.Indices() {
		if n >= res.GroupCount() {
			m.warnOnce(fmt.Sprintf("capture:%s:%d", ruleID, n), Warning{
				Kind:    CaptureIndexOutOfRange,
				Start:   res.Start,
				End:     res.End,
				Rule:    ruleID,
				Message: fmt.Sprintf("capture %d but the pattern has %d groups", n, res.GroupCount()-1),
			})
			continue
		}
		group, ok := res.Group(n)
		if !ok {
			continue
		}
		// groups inside lookaround may lie outside the match
		start, end := max(group.Start, pos), min(group.End, res.End)
		if start >= end {
			continue
		}

		closeUntil(start)
		if len(open) > 0 {
			end = min(end, open[len(open)-1].end)
		}
		m.emit(pos, start, current())
		pos = start

		c := caps[n]
		scopes := concat(current(), c.Scopes)
		if len(c.Patterns) > 0 && m.depth < m.tokenizer.maxCaptureDepth {
			if !m.subTokenize(start, end, c.Patterns, scopes) {
				// cancelled: the stream ends after the last token of the sub-run
				return
			}
			pos = end
			continue
		}
		open = append(open, openCapture{scopes: scopes, end: end})
	}

	closeUntil(res.End)
	m.emit(pos, res.End, base)
}

// subTokenize runs patterns over text[start:end] with a stack of its own.
// Spans left open at end are dropped. It reports false when the run was
// cancelled before the range was covered.
func (m *machine) subTokenize(start, end int, patterns []grammar.Rule, scopes []string) bool {
	sub := newMachine(m.run, m.text[:end], rootSpan(patterns, scopes), start, m.depth+1)
	for sub.step() {
	}
	return m.err == nil
}
