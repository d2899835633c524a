// Package grammars holds the grammars built into tmscope.
package grammars

import (
	"fmt"
	"sort"

	"github.com/gnolang/tmscope/grammar"
)

var builtin = map[string]func() *grammar.Document{
	"source.kotlin": kotlin,
}

// Scopes lists the scope names of the built-in grammars.
func Scopes() []string {
	scopes := make([]string, 0, len(builtin))
	for scope := range builtin {
		scopes = append(scopes, scope)
	}
	sort.Strings(scopes)
	return scopes
}

// Document returns a new copy of the built-in document for scope.
func Document(scope string) (*grammar.Document, bool) {
	build, ok := builtin[scope]
	if !ok {
		return nil, false
	}
	return build(), true
}

// Load compiles the built-in grammar for scope.
func Load(scope string, opts ...grammar.Option) (*grammar.Grammar, error) {
	doc, ok := Document(scope)
	if !ok {
		return nil, fmt.Errorf("no built-in grammar for %q", scope)
	}
	g, err := grammar.Compile(doc, opts...)
	if err != nil {
		return nil, fmt.Errorf("built-in grammar %s: %w", scope, err)
	}
	return g, nil
}

// All compiles every built-in grammar.
func All(opts ...grammar.Option) ([]*grammar.Grammar, error) {
	var all []*grammar.Grammar
	for _, scope := range Scopes() {
		g, err := Load(scope, opts...)
		if err != nil {
			return nil, err
		}
		all = append(all, g)
	}
	return all, nil
}
