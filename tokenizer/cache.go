package tokenizer

import "github.com/gnolang/tmscope/internal/matcher"

type cacheEntry struct {
	from  int
	res   matcher.Result
	found bool
}

// matchCache remembers the earliest match of each pattern searched in one run.
// An entry searched from `from` still answers a search from a later offset as
// long as its match does not start before that offset. Patterns using \G
// depend on the search offset and are never cached.
type matchCache map[*matcher.Matcher]cacheEntry

func (c matchCache) get(m *matcher.Matcher, at int) (matcher.Result, bool, bool) {
	if m.Positional() {
		return matcher.Result{}, false, false
	}
	e, ok := c[m]
	if !ok || e.from > at || (e.found && e.res.Start < at) {
		return matcher.Result{}, false, false
	}
	return e.res, e.found, true
}

func (c matchCache) put(m *matcher.Matcher, at int, res matcher.Result, found bool) {
	if m.Positional() {
		return
	}
	c[m] = cacheEntry{from: at, res: res, found: found}
}
