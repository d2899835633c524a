package grammar

import "strings"

// RuleStore holds the named rule repository of one grammar.
//
// A store is filled with Register and then sealed. A sealed store is never
// written again, so any number of goroutines may call Resolve without locking.
type RuleStore struct {
	keys   []string
	rules  map[string]Rule
	sealed bool
}

func NewRuleStore() *RuleStore {
	return &RuleStore{rules: make(map[string]Rule)}
}

// Register adds rule under key. A leading '#' is ignored.
func (s *RuleStore) Register(key string, rule Rule) error {
	if s.sealed {
		return ErrSealed
	}
	key = normalizeKey(key)
	if _, ok := s.rules[key]; ok {
		return &Error{Kind: DuplicateKey, Key: key}
	}
	s.rules[key] = rule
	s.keys = append(s.keys, key)
	return nil
}

// Resolve returns the rule registered under key ("#name" or "name").
func (s *RuleStore) Resolve(key string) (Rule, error) {
	rule, ok := s.rules[normalizeKey(key)]
	if !ok {
		return nil, &Error{Kind: UnresolvedInclude, Key: key}
	}
	return rule, nil
}

// Keys returns the registered keys in registration order.
func (s *RuleStore) Keys() []string {
	return append([]string(nil), s.keys...)
}

func (s *RuleStore) Len() int {
	return len(s.keys)
}

// Seal makes the store read-only.
func (s *RuleStore) Seal() {
	s.sealed = true
}

func (s *RuleStore) Sealed() bool {
	return s.sealed
}

func normalizeKey(key string) string {
	return strings.TrimPrefix(key, "#")
}
