package grammar

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/gnolang/tmscope/internal/matcher"
)

// Option configures Compile.
type Option func(*compiler)

// WithMatchTimeout bounds the time spent in a single pattern search.
func WithMatchTimeout(d time.Duration) Option {
	return func(c *compiler) {
		c.timeout = d
	}
}

type compiler struct {
	timeout time.Duration
	errs    ErrorList
}

// Compile turns a document into a sealed, validated Grammar.
// All errors are collected; the returned error is an ErrorList when the
// document itself could be read.
func Compile(doc *Document, opts ...Option) (*Grammar, error) {
	if doc.ScopeName == "" {
		return nil, ErrNoScopeName
	}
	c := &compiler{}
	for _, opt := range opts {
		opt(c)
	}

	g := &Grammar{
		Name:      doc.Name,
		ScopeName: doc.ScopeName,
		FileTypes: append([]string(nil), doc.FileTypes...),
		Store:     NewRuleStore(),
		Source:    doc,
	}
	if doc.FirstLineMatch != "" {
		g.FirstLine = c.pattern(doc.FirstLineMatch, "firstLineMatch")
	}
	g.Patterns = c.list(doc.Patterns, "patterns")
	for _, entry := range doc.Repository {
		rule := c.rule(&entry.Rule, "repository."+entry.Key)
		if err := g.Store.Register(entry.Key, rule); err != nil {
			c.add(err)
		}
	}
	g.Store.Seal()

	c.errs = append(c.errs, Validate(g)...)
	if len(c.errs) > 0 {
		return nil, c.errs
	}
	return g, nil
}

func (c *compiler) add(err error) {
	var gerr *Error
	if errors.As(err, &gerr) {
		c.errs = append(c.errs, gerr)
		return
	}
	c.errs = append(c.errs, &Error{Kind: InvalidPattern, Reason: err.Error()})
}

func (c *compiler) invalid(at, pattern, reason string) {
	c.errs = append(c.errs, &Error{Kind: InvalidPattern, Key: at, Pattern: pattern, Reason: reason})
}

func (c *compiler) pattern(source, at string) *matcher.Matcher {
	m, err := matcher.Compile(source, c.timeout)
	if err != nil {
		c.invalid(at, source, err.Error())
		return nil
	}
	return m
}

func (c *compiler) list(raw []RawRule, at string) []Rule {
	if len(raw) == 0 {
		return nil
	}
	rules := make([]Rule, len(raw))
	for i := range raw {
		rules[i] = c.rule(&raw[i], fmt.Sprintf("%s[%d]", at, i))
	}
	return rules
}

func (c *compiler) rule(raw *RawRule, at string) Rule {
	switch {
	case raw.Include != "":
		return &IncludeRef{ID: at, Key: raw.Include}

	case raw.Match != "":
		return &MatchRule{
			ID:       at,
			Pattern:  c.pattern(raw.Match, at+".match"),
			Captures: c.captures(raw.Captures, at+".captures"),
			Scopes:   SplitScopes(raw.Name),
		}

	case raw.Begin != "":
		span := &SpanRule{
			ID:            at,
			Begin:         c.pattern(raw.Begin, at+".begin"),
			EndTemplate:   raw.End,
			Scopes:        SplitScopes(raw.Name),
			ContentScopes: SplitScopes(raw.ContentName),
			Patterns:      c.list(raw.Patterns, at+".patterns"),
		}
		span.End = c.end(raw.End, at+".end")

		// captures applies to whichever side has no specific map.
		shared := c.captures(raw.Captures, at+".captures")
		span.BeginCaptures, span.EndCaptures = shared, shared
		if raw.BeginCaptures != nil {
			span.BeginCaptures = c.captures(raw.BeginCaptures, at+".beginCaptures")
		}
		if raw.EndCaptures != nil {
			span.EndCaptures = c.captures(raw.EndCaptures, at+".endCaptures")
		}
		return span

	case raw.End != "":
		c.invalid(at+".end", raw.End, "end without begin")
		return &GroupRule{ID: at}

	default:
		return &GroupRule{ID: at, Patterns: c.list(raw.Patterns, at+".patterns")}
	}
}

// end compiles an end pattern. Templates that refer to begin captures are
// checked with empty substitutions and left for the tokenizer to resolve.
func (c *compiler) end(template, at string) *matcher.Matcher {
	if template == "" {
		return nil
	}
	if !matcher.HasBackReferences(template) {
		return c.pattern(template, at)
	}
	probe := matcher.ResolveBackReferences(template, func(int) string { return "" })
	if _, err := matcher.Compile(probe, c.timeout); err != nil {
		c.invalid(at, template, err.Error())
	}
	return nil
}

func (c *compiler) captures(raw RawCaptures, at string) CaptureMap {
	if len(raw) == 0 {
		return nil
	}
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	caps := make(CaptureMap, len(raw))
	for _, key := range keys {
		rc := raw[key]
		n, err := strconv.Atoi(key)
		if err != nil || n < 0 {
			c.invalid(at+"."+key, "", fmt.Sprintf("capture key %q is not a group number", key))
			continue
		}
		caps[n] = &Capture{
			Scopes:   SplitScopes(rc.Name),
			Patterns: c.list(rc.Patterns, fmt.Sprintf("%s.%d.patterns", at, n)),
		}
	}
	return caps
}
