// Package grammar loads TextMate grammars and compiles them into read-only rule graphs.
//
// A Document is decoded from JSON, YAML or TOML, then compiled: every pattern is
// compiled, every repository entry is registered in a RuleStore and every include
// is checked. Compile reports all problems at once. A compiled Grammar is never
// modified and may be shared by any number of tokenizer runs.
package grammar

import (
	"strings"

	"github.com/gnolang/tmscope/internal/matcher"
)

const (
	SelfKey = "$self"
	BaseKey = "$base"
)

// Grammar is a compiled rule graph.
type Grammar struct {
	Name      string
	ScopeName string
	FileTypes []string
	// FirstLine selects the grammar for files whose first line matches. May be nil.
	FirstLine *matcher.Matcher
	Patterns  []Rule
	Store     *RuleStore
	// Source is the document the grammar was compiled from.
	Source *Document
}

// Resolve resolves an include key. $self, $base and the grammar's own scope name
// refer to the top-level patterns; "#name", "name" and "scope#name" refer to
// repository entries.
func (g *Grammar) Resolve(key string) (Rule, error) {
	switch {
	case key == SelfKey || key == BaseKey || key == g.ScopeName:
		return &GroupRule{ID: "patterns", Patterns: g.Patterns}, nil
	case strings.HasPrefix(key, g.ScopeName+"#"):
		key = key[len(g.ScopeName):]
	}
	return g.Store.Resolve(key)
}

// MatchesFirstLine reports whether the grammar claims a file by its first line.
func (g *Grammar) MatchesFirstLine(line string) bool {
	if g.FirstLine == nil {
		return false
	}
	_, ok := g.FirstLine.MatchAt([]rune(line), 0).Get()
	return ok
}
