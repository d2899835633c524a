package internal

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/gnolang/tmscope/grammar"
	"github.com/gnolang/tmscope/internal/nolint"
	tt "github.com/gnolang/tmscope/internal/types"
	"github.com/gnolang/tmscope/tokenizer"
)

const category = "tokenizer"

// default severities of the warning kinds
var defaultSeverities = map[tokenizer.WarningKind]tt.Severity{
	tokenizer.EmptyMatchSkipped:      tt.SeverityInfo,
	tokenizer.CaptureIndexOutOfRange: tt.SeverityWarning,
	tokenizer.UnterminatedSpan:       tt.SeverityWarning,
	tokenizer.MatchTimeout:           tt.SeverityError,
}

// DefaultRules returns every warning kind with its default severity.
func DefaultRules() map[string]tt.ConfigRule {
	rules := make(map[string]tt.ConfigRule, len(defaultSeverities))
	for kind, s := range defaultSeverities {
		rules[string(kind)] = tt.ConfigRule{Severity: s}
	}
	return rules
}

// Engine picks a grammar for each file, tokenizes it and reports the
// tokenizer warnings as issues.
type Engine struct {
	logger *zap.Logger
	opts   []tokenizer.Option

	mu           sync.RWMutex
	byScope      map[string]*grammar.Grammar
	byFileType   map[string]*grammar.Grammar
	severities   map[string]tt.Severity
	ignoredRules map[string]bool
	ignoredPaths []string
	cache        *Cache
}

// NewEngine creates an engine for the given grammars. rules overrides the
// severity of warning kinds by name. Later grammars win over earlier ones
// with the same scope name or file type.
func NewEngine(logger *zap.Logger, grammars []*grammar.Grammar, rules map[string]tt.ConfigRule, opts ...tokenizer.Option) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		logger:     logger,
		opts:       append([]tokenizer.Option{tokenizer.WithLogger(logger)}, opts...),
		byScope:    make(map[string]*grammar.Grammar),
		byFileType: make(map[string]*grammar.Grammar),
	}
	for _, g := range grammars {
		e.Register(g)
	}
	if err := e.applyRules(rules); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) applyRules(rules map[string]tt.ConfigRule) error {
	e.severities = make(map[string]tt.Severity, len(defaultSeverities))
	for kind, s := range defaultSeverities {
		e.severities[string(kind)] = s
	}
	for key, rule := range rules {
		if _, ok := e.severities[key]; !ok {
			return fmt.Errorf("unknown rule %q", key)
		}
		e.severities[key] = rule.Severity
		if rule.Severity == tt.SeverityOff {
			e.IgnoreRule(key)
		}
	}
	return nil
}

// Register adds a grammar.
func (e *Engine) Register(g *grammar.Grammar) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.byScope[g.ScopeName] = g
	for _, ft := range g.FileTypes {
		e.byFileType[strings.TrimPrefix(ft, ".")] = g
	}
}

// Grammars returns the registered grammars ordered by scope name.
func (e *Engine) Grammars() []*grammar.Grammar {
	e.mu.RLock()
	defer e.mu.RUnlock()
	gs := make([]*grammar.Grammar, 0, len(e.byScope))
	for _, g := range e.byScope {
		gs = append(gs, g)
	}
	sort.Slice(gs, func(i, j int) bool { return gs[i].ScopeName < gs[j].ScopeName })
	return gs
}

// Grammar returns the grammar registered for scope.
func (e *Engine) Grammar(scope string) (*grammar.Grammar, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	g, ok := e.byScope[scope]
	return g, ok
}

// Extensions lists the file extensions the registered grammars claim, with a leading dot.
func (e *Engine) Extensions() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	exts := make([]string, 0, len(e.byFileType))
	for ft := range e.byFileType {
		exts = append(exts, "."+ft)
	}
	sort.Strings(exts)
	return exts
}

// GrammarFor selects the grammar for a file: by its extension, then by its
// whole base name, then by the first line of source.
func (e *Engine) GrammarFor(filename string, source []byte) (*grammar.Grammar, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	base := filepath.Base(filename)
	if g, ok := e.byFileType[strings.TrimPrefix(filepath.Ext(base), ".")]; ok {
		return g, true
	}
	if g, ok := e.byFileType[base]; ok {
		return g, true
	}
	firstLine, _, _ := bytes.Cut(source, []byte("\n"))
	for _, g := range e.byScope {
		if g.MatchesFirstLine(string(firstLine)) {
			return g, true
		}
	}
	return nil, false
}

// Result is the outcome of tokenizing one source.
type Result struct {
	Filename string
	Scope    string
	Text     []rune
	Tokens   []tokenizer.Token
	Warnings []tokenizer.Warning
	Stats    tokenizer.Stats
}

// Tokenize tokenizes source with the grammar chosen for filename.
func (e *Engine) Tokenize(ctx context.Context, filename string, source []byte) (*Result, error) {
	g, ok := e.GrammarFor(filename, source)
	if !ok {
		return nil, fmt.Errorf("no grammar for %s", filename)
	}
	return e.TokenizeWith(ctx, g, filename, source)
}

// TokenizeWith tokenizes source with g.
func (e *Engine) TokenizeWith(ctx context.Context, g *grammar.Grammar, filename string, source []byte) (*Result, error) {
	s := tokenizer.New(g, e.opts...).Tokenize(ctx, string(source))
	tokens := s.All()
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("tokenizing %s: %w", filename, err)
	}
	e.logger.Debug("tokenized",
		zap.String("file", filename),
		zap.String("scope", g.ScopeName),
		zap.Int("tokens", len(tokens)),
		zap.Int("steps", s.Stats().Steps),
	)
	return &Result{
		Filename: filename,
		Scope:    g.ScopeName,
		Text:     s.Text(),
		Tokens:   tokens,
		Warnings: s.Warnings(),
		Stats:    s.Stats(),
	}, nil
}

// Run tokenizes a file and returns its warnings as issues. The cache keeps
// the issues before rules are applied, so a cached file is reported under the
// current severities and ignored rules.
func (e *Engine) Run(ctx context.Context, filename string) ([]tt.Issue, error) {
	if e.isIgnoredPath(filename) {
		return nil, nil
	}
	if e.cache != nil {
		if issues, ok := e.cache.Get(filename); ok {
			return e.applyRuleSettings(issues), nil
		}
	}

	source, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	res, err := e.Tokenize(ctx, filename, source)
	if err != nil {
		return nil, err
	}
	issues := collectIssues(res)

	if e.cache != nil {
		if err := e.cache.Set(filename, issues); err != nil {
			e.logger.Warn("Failed to cache issues", zap.String("file", filename), zap.Error(err))
		}
	}
	return e.applyRuleSettings(issues), nil
}

// RunSource tokenizes source with the grammar registered for scope.
func (e *Engine) RunSource(ctx context.Context, scope string, source []byte) ([]tt.Issue, error) {
	g, ok := e.Grammar(scope)
	if !ok {
		return nil, fmt.Errorf("no grammar for scope %q", scope)
	}
	res, err := e.TokenizeWith(ctx, g, "", source)
	if err != nil {
		return nil, err
	}
	return e.Issues(res), nil
}

// Issues converts the warnings of a result, dropping ignored rules.
func (e *Engine) Issues(res *Result) []tt.Issue {
	return e.applyRuleSettings(collectIssues(res))
}

// collectIssues converts the warnings of a result that no ignore directive
// covers. Severities are left unset.
func collectIssues(res *Result) []tt.Issue {
	idx := newLineIndex(res.Filename, res.Text)
	directives := ignoreDirectives(res, idx)
	var issues []tt.Issue
	for _, w := range res.Warnings {
		rule := string(w.Kind)
		issue := tt.Issue{
			Rule:     rule,
			Category: category,
			Filename: res.Filename,
			Message:  w.Message,
			Start:    idx.Position(w.Start),
			End:      idx.Position(w.End),
		}
		if directives.IsIgnored(issue.Start.Line, rule) {
			continue
		}
		if w.Rule != "" {
			issue.Note = fmt.Sprintf("rule %s of %s", w.Rule, res.Scope)
		}
		issues = append(issues, issue)
	}
	return issues
}

// applyRuleSettings drops the issues of ignored rules and sets the configured
// severity on the rest. issues is not modified.
func (e *Engine) applyRuleSettings(issues []tt.Issue) []tt.Issue {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var out []tt.Issue
	for _, issue := range issues {
		if e.ignoredRules[issue.Rule] {
			continue
		}
		issue.Severity = e.severities[issue.Rule]
		out = append(out, issue)
	}
	return out
}

// ignoreDirectives collects the ignore directives written in comment tokens.
func ignoreDirectives(res *Result, idx *lineIndex) *nolint.Manager {
	var comments []nolint.Comment
	for _, tok := range res.Tokens {
		if tok.Len() == 0 || !isComment(tok.Scopes) {
			continue
		}
		text := tok.Text(res.Text)
		if !nolint.Contains(text) {
			continue
		}
		comments = append(comments, nolint.Comment{
			Text:      text,
			StartLine: idx.Position(tok.Start).Line,
			EndLine:   idx.Position(tok.End - 1).Line,
		})
	}
	return nolint.ParseComments(comments)
}

func isComment(scopes []string) bool {
	for _, scope := range scopes {
		if scope == "comment" || strings.HasPrefix(scope, "comment.") {
			return true
		}
	}
	return false
}

func (e *Engine) IgnoreRule(rule string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ignoredRules == nil {
		e.ignoredRules = make(map[string]bool)
	}
	e.ignoredRules[rule] = true
}

func (e *Engine) IgnorePath(path string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ignoredPaths = append(e.ignoredPaths, filepath.Clean(path))
}

func (e *Engine) isIgnoredPath(path string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	path = filepath.Clean(path)
	for _, ignored := range e.ignoredPaths {
		if path == ignored || strings.HasPrefix(path, ignored+string(filepath.Separator)) {
			return true
		}
		if ok, _ := filepath.Match(ignored, path); ok {
			return true
		}
	}
	return false
}

// UseCache makes Run reuse the issues of unchanged files.
func (e *Engine) UseCache(c *Cache) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = c
}
