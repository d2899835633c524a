package tokenizer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gnolang/tmscope/grammar"
	"github.com/gnolang/tmscope/internal/matcher"
)

// run is the state shared by the main machine of a Stream and the machines
// it starts for captures with patterns.
type run struct {
	ctx       context.Context
	tokenizer *Tokenizer
	sink      func(Token)
	warnings  []Warning
	// reported deduplicates warnings that would otherwise repeat every step.
	reported map[string]bool
	err      error
}

func (r *run) warn(w Warning) {
	r.warnings = append(r.warnings, w)
}

func (r *run) warnOnce(key string, w Warning) {
	if r.reported[key] {
		return
	}
	r.reported[key] = true
	r.warn(w)
}

type guardKey struct {
	rule   *grammar.SpanRule
	offset int
}

// machine tokenizes text[pos:limit]. Patterns see the whole of text, so
// lookbehind works across the start of a captured range.
type machine struct {
	*run
	text  []rune
	limit int
	pos   int
	depth int
	stack *ScopeStack
	cache matchCache
	steps int

	visited map[string]bool
	// banned holds zero-width spans that opened and closed at guardAt without progress.
	banned  map[guardKey]bool
	guardAt int
}

type candidate struct {
	// rule is a *grammar.MatchRule or *grammar.SpanRule; nil when the innermost span closes.
	rule  grammar.Rule
	res   matcher.Result
	found bool
}

func newMachine(r *run, text []rune, root *ActiveSpan, pos, depth int) *machine {
	return &machine{
		run:     r,
		text:    text,
		limit:   len(text),
		pos:     pos,
		depth:   depth,
		stack:   NewScopeStack(root),
		cache:   make(matchCache),
		visited: make(map[string]bool),
		banned:  make(map[guardKey]bool),
	}
}

// step performs one transition. It reports false once the end of the text is
// reached or the context is done.
func (m *machine) step() bool {
	if m.pos >= m.limit {
		return false
	}
	if err := m.ctx.Err(); err != nil {
		m.err = err
		return false
	}
	m.steps++
	if m.guardAt != m.pos {
		clear(m.banned)
		m.guardAt = m.pos
	}

	top := m.stack.Top()
	var best candidate
	if top.End != nil {
		if res, ok := m.search(top.End, top.ID()+".end"); ok {
			best = candidate{res: res, found: true}
		}
	}
	if !best.found || best.res.Start > m.pos {
		clear(m.visited)
		m.walk(top.Patterns, &best)
	}

	if !best.found {
		// nothing matches in the rest of the text
		m.emit(m.pos, m.pos+1, top.Content)
		m.pos++
		return true
	}

	res := best.res
	m.emit(m.pos, res.Start, top.Content)
	m.pos = res.Start

	switch rule := best.rule.(type) {
	case nil:
		m.close(top, res)
	case *grammar.MatchRule:
		m.leaf(rule, top, res)
	case *grammar.SpanRule:
		m.open(rule, top, res)
	}
	return true
}

// walk evaluates rules in declared order, expanding includes and groups on the way.
// It stops as soon as a candidate matches exactly at the cursor.
func (m *machine) walk(rules []grammar.Rule, best *candidate) bool {
	for _, r := range rules {
		var stop bool
		switch r := r.(type) {
		case *grammar.MatchRule:
			stop = m.consider(r, r.Pattern, best)
		case *grammar.SpanRule:
			stop = m.consider(r, r.Begin, best)
		case *grammar.GroupRule:
			stop = m.walk(r.Patterns, best)
		case *grammar.IncludeRef:
			key := m.includeKey(r.Key)
			if m.visited[key] {
				continue
			}
			m.visited[key] = true
			target, err := m.tokenizer.grammar.Resolve(r.Key)
			if err != nil {
				continue
			}
			stop = m.walk([]grammar.Rule{target}, best)
		}
		if stop {
			return true
		}
	}
	return false
}

func (m *machine) includeKey(key string) string {
	g := m.tokenizer.grammar
	switch {
	case key == grammar.SelfKey || key == grammar.BaseKey || key == g.ScopeName:
		return grammar.SelfKey
	case len(key) > len(g.ScopeName) && key[:len(g.ScopeName)+1] == g.ScopeName+"#":
		return key[len(g.ScopeName)+1:]
	case len(key) > 0 && key[0] == '#':
		return key[1:]
	}
	return key
}

func (m *machine) consider(rule grammar.Rule, pattern *matcher.Matcher, best *candidate) bool {
	if pattern == nil {
		return false
	}
	res, ok := m.search(pattern, rule.RuleID())
	if !ok || (best.found && res.Start >= best.res.Start) {
		return false
	}
	if span, isSpan := rule.(*grammar.SpanRule); isSpan && res.Empty() && m.looping(span, res.Start) {
		return false
	}
	*best = candidate{rule: rule, res: res, found: true}
	return res.Start == m.pos
}

// looping reports whether opening span with an empty match at offset could
// not make progress: the same rule is already open there, or it has opened
// and closed there before.
func (m *machine) looping(span *grammar.SpanRule, offset int) bool {
	if !m.stack.openedAt(span, offset) && !m.banned[guardKey{span, offset}] {
		return false
	}
	m.warnOnce(fmt.Sprintf("empty:%s:%d", span.ID, offset), Warning{
		Kind:    EmptyMatchSkipped,
		Start:   offset,
		End:     offset,
		Rule:    span.ID,
		Message: "empty begin match would reopen the span without progress",
	})
	return true
}

func (m *machine) search(pattern *matcher.Matcher, ruleID string) (matcher.Result, bool) {
	if res, found, ok := m.cache.get(pattern, m.pos); ok {
		return res, found
	}
	opt := pattern.MatchAt(m.text, m.pos)
	res, found := opt.Get()
	if err := opt.Err(); err != nil {
		m.warnOnce("timeout:"+ruleID, Warning{
			Kind:    MatchTimeout,
			Start:   m.pos,
			End:     m.pos,
			Rule:    ruleID,
			Message: err.Error(),
		})
		// only this search gave up; a later cursor searches again
		return res, false
	}
	m.cache.put(pattern, m.pos, res, found)
	return res, found
}

func (m *machine) leaf(rule *grammar.MatchRule, top *ActiveSpan, res matcher.Result) {
	if res.Empty() {
		m.warn(Warning{
			Kind:    EmptyMatchSkipped,
			Start:   res.Start,
			End:     res.End,
			Rule:    rule.ID,
			Message: "empty match, skipping one character",
		})
		if m.pos < m.limit {
			m.emit(m.pos, m.pos+1, top.Content)
			m.pos++
		}
		return
	}
	m.captures(res, rule.Captures, concat(top.Content, rule.Scopes), rule.ID)
	m.pos = res.End
}

func (m *machine) open(rule *grammar.SpanRule, top *ActiveSpan, res matcher.Result) {
	scopes := concat(top.Content, rule.Scopes)
	span := &ActiveSpan{
		Rule:        rule,
		OpenedAt:    res.Start,
		End:         rule.End,
		EndCaptures: rule.EndCaptures,
		Scopes:      scopes,
		Content:     concat(scopes, rule.ContentScopes),
		Patterns:    rule.Patterns,
	}
	if rule.BackReferenced() {
		span.End, span.endErr = m.resolveEnd(rule, res)
	}

	m.captures(res, rule.BeginCaptures, scopes, rule.ID)
	m.stack.Push(span)
	m.pos = res.End
	m.logger().Debug("push",
		zap.String("rule", rule.ID),
		zap.Int("offset", res.Start),
		zap.Int("depth", m.stack.Depth()),
	)
}

// resolveEnd substitutes the begin captures into the end template. A span
// whose end does not compile never closes; the error is reported with it at
// the end of input.
func (m *machine) resolveEnd(rule *grammar.SpanRule, res matcher.Result) (*matcher.Matcher, error) {
	pattern := matcher.ResolveBackReferences(rule.EndTemplate, func(n int) string {
		return res.Text(m.text, n)
	})
	end, err := rule.Begin.Derive(pattern)
	if err != nil {
		return nil, fmt.Errorf("end pattern %q does not compile: %w", pattern, err)
	}
	return end, nil
}

func (m *machine) close(top *ActiveSpan, res matcher.Result) {
	m.captures(res, top.EndCaptures, top.Scopes, top.ID())
	m.stack.Pop()
	m.pos = res.End
	if res.Empty() && top.OpenedAt == m.pos {
		m.banned[guardKey{top.Rule, m.pos}] = true
	}
	m.logger().Debug("pop",
		zap.String("rule", top.ID()),
		zap.Int("offset", res.End),
		zap.Int("depth", m.stack.Depth()),
	)
}

func (m *machine) emit(start, end int, scopes []string) {
	if start >= end {
		return
	}
	m.sink(Token{Start: start, End: end, Scopes: scopes})
}

func (m *machine) logger() *zap.Logger {
	return m.tokenizer.logger
}

// reportUnterminated reports every span still open, outermost first.
func (m *machine) reportUnterminated() {
	for _, span := range m.stack.Open() {
		msg := "span still open at end of input"
		if span.endErr != nil {
			msg += ": " + span.endErr.Error()
		}
		m.warn(Warning{
			Kind:    UnterminatedSpan,
			Start:   span.OpenedAt,
			End:     m.limit,
			Rule:    span.ID(),
			Message: msg,
		})
	}
}
