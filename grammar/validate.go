package grammar

// Validate walks every pattern list reachable from the top-level patterns and
// from every repository entry, and reports each include key that does not
// resolve. Cycles are legal; each key is visited once. Every dangling key is
// reported once, in the order it is first met.
func Validate(g *Grammar) []*Error {
	v := &validator{
		g:        g,
		visited:  make(map[string]bool),
		reported: make(map[string]bool),
		errs:     []*Error{},
	}
	v.list(g.Patterns)
	for _, key := range g.Store.Keys() {
		rule, err := g.Store.Resolve(key)
		if err != nil {
			continue
		}
		v.key(key, rule)
	}
	return v.errs
}

type validator struct {
	g        *Grammar
	visited  map[string]bool
	reported map[string]bool
	errs     []*Error
}

func (v *validator) key(key string, rule Rule) {
	key = normalizeKey(key)
	if v.visited[key] {
		return
	}
	v.visited[key] = true
	v.rule(rule)
}

func (v *validator) list(rules []Rule) {
	for _, r := range rules {
		v.rule(r)
	}
}

func (v *validator) rule(r Rule) {
	switch r := r.(type) {
	case *IncludeRef:
		v.include(r.Key)
	case *MatchRule:
		v.captures(r.Captures)
	case *SpanRule:
		v.captures(r.BeginCaptures)
		v.captures(r.EndCaptures)
		v.list(r.Patterns)
	case *GroupRule:
		v.list(r.Patterns)
	}
}

func (v *validator) include(key string) {
	if key == SelfKey || key == BaseKey || key == v.g.ScopeName {
		return
	}
	rule, err := v.g.Resolve(key)
	if err != nil {
		if !v.reported[key] {
			v.reported[key] = true
			v.errs = append(v.errs, &Error{Kind: UnresolvedInclude, Key: key})
		}
		return
	}
	v.key(key, rule)
}

func (v *validator) captures(caps CaptureMap) {
	for _, n := range caps.Indices() {
		v.list(caps[n].Patterns)
	}
}
