package grammar

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blocksJSON = `{
	"name": "Blocks",
	"scopeName": "source.blocks",
	"fileTypes": ["blk"],
	"firstLineMatch": "^#!.*\\bblocks\\b",
	"patterns": [{"include": "#code"}],
	"repository": {
		"code": {
			"patterns": [
				{"include": "#block"},
				{"include": "#number"}
			]
		},
		"block": {
			"begin": "\\{",
			"end": "\\}",
			"name": "meta.block",
			"captures": {"0": {"name": "punctuation.brace"}},
			"patterns": [{"include": "#code"}]
		},
		"number": {"match": "\\d+", "name": "constant.numeric"}
	}
}`

func mustParse(t *testing.T, src string, format Format) *Document {
	t.Helper()
	doc, err := Parse([]byte(src), format)
	require.NoError(t, err)
	return doc
}

func TestCompileSoundGrammar(t *testing.T) {
	t.Parallel()

	g, err := Compile(mustParse(t, blocksJSON, FormatJSON))
	require.NoError(t, err)

	assert.Equal(t, "Blocks", g.Name)
	assert.Equal(t, "source.blocks", g.ScopeName)
	assert.Equal(t, []string{"blk"}, g.FileTypes)
	assert.Equal(t, []string{"code", "block", "number"}, g.Store.Keys())
	assert.True(t, g.Store.Sealed())
	assert.Empty(t, Validate(g))

	rule, err := g.Resolve("#block")
	require.NoError(t, err)
	span, ok := rule.(*SpanRule)
	require.True(t, ok)
	assert.Equal(t, "repository.block", span.RuleID())
	assert.Equal(t, []string{"meta.block"}, span.Scopes)
	assert.NotNil(t, span.End)
	assert.False(t, span.BackReferenced())

	// captures is shared by begin and end
	require.Contains(t, span.BeginCaptures, 0)
	require.Contains(t, span.EndCaptures, 0)
	assert.Equal(t, []string{"punctuation.brace"}, span.EndCaptures[0].Scopes)

	assert.True(t, g.MatchesFirstLine("#!/usr/bin/env blocks"))
	assert.False(t, g.MatchesFirstLine("package main"))
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		kind     Kind
		key      string
		sentinel error
	}{
		{
			name:     "one dangling include",
			src:      `{"scopeName": "s", "patterns": [{"include": "#missing"}]}`,
			kind:     UnresolvedInclude,
			key:      "#missing",
			sentinel: ErrUnresolvedInclude,
		},
		{
			name: "dangling include reached twice",
			src: `{"scopeName": "s",
				"patterns": [{"include": "#a"}, {"include": "#missing"}],
				"repository": {"a": {"patterns": [{"include": "#missing"}]}}}`,
			kind:     UnresolvedInclude,
			key:      "#missing",
			sentinel: ErrUnresolvedInclude,
		},
		{
			name:     "dangling include in an unreferenced entry",
			src:      `{"scopeName": "s", "patterns": [], "repository": {"a": {"begin": "x", "end": "y", "patterns": [{"include": "other"}]}}}`,
			kind:     UnresolvedInclude,
			key:      "other",
			sentinel: ErrUnresolvedInclude,
		},
		{
			name:     "duplicate key",
			src:      `{"scopeName": "s", "patterns": [], "repository": {"a": {"match": "x"}, "a": {"match": "y"}}}`,
			kind:     DuplicateKey,
			key:      "a",
			sentinel: ErrDuplicateKey,
		},
		{
			name:     "invalid match",
			src:      `{"scopeName": "s", "patterns": [], "repository": {"bad": {"match": "(x"}}}`,
			kind:     InvalidPattern,
			key:      "repository.bad.match",
			sentinel: ErrInvalidPattern,
		},
		{
			name:     "invalid back-referencing end",
			src:      `{"scopeName": "s", "patterns": [{"begin": "(\\w+)", "end": "\\1("}]}`,
			kind:     InvalidPattern,
			key:      "patterns[0].end",
			sentinel: ErrInvalidPattern,
		},
		{
			name:     "end without begin",
			src:      `{"scopeName": "s", "patterns": [{"end": "x"}]}`,
			kind:     InvalidPattern,
			key:      "patterns[0].end",
			sentinel: ErrInvalidPattern,
		},
		{
			name:     "capture key is not a number",
			src:      `{"scopeName": "s", "patterns": [{"match": "x", "captures": {"one": {"name": "a"}}}]}`,
			kind:     InvalidPattern,
			key:      "patterns[0].captures.one",
			sentinel: ErrInvalidPattern,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g, err := Compile(mustParse(t, tt.src, FormatJSON))
			require.Error(t, err)
			assert.Nil(t, g)
			assert.True(t, errors.Is(err, tt.sentinel))

			var list ErrorList
			require.True(t, errors.As(err, &list))
			require.Len(t, list, 1)
			assert.Equal(t, tt.kind, list[0].Kind)
			assert.Equal(t, tt.key, list[0].Key)
		})
	}
}

func TestCompileCollectsAllErrors(t *testing.T) {
	t.Parallel()

	src := `{
		"scopeName": "s",
		"patterns": [{"include": "#x"}, {"include": "#y"}, {"match": "[z"}],
		"repository": {"a": {"match": "a"}, "a": {"match": "b"}}
	}`
	_, err := Compile(mustParse(t, src, FormatJSON))
	require.Error(t, err)

	var list ErrorList
	require.True(t, errors.As(err, &list))
	assert.Equal(t, 1, list.Count(DuplicateKey))
	assert.Equal(t, 1, list.Count(InvalidPattern))
	assert.Equal(t, 2, list.Count(UnresolvedInclude))
	assert.Contains(t, err.Error(), "4 grammar errors")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	store := NewRuleStore()
	require.NoError(t, store.Register("code", &GroupRule{
		ID:       "repository.code",
		Patterns: []Rule{&IncludeRef{Key: "#code"}, &IncludeRef{Key: "$self"}},
	}))
	store.Seal()

	g := &Grammar{
		ScopeName: "source.v",
		Store:     store,
		Patterns: []Rule{
			&IncludeRef{Key: "#code"},
			&MatchRule{Captures: CaptureMap{1: {Patterns: []Rule{&IncludeRef{Key: "#gone"}}}}},
		},
	}

	errs := Validate(g)
	require.Len(t, errs, 1)
	assert.Equal(t, UnresolvedInclude, errs[0].Kind)
	assert.Equal(t, "#gone", errs[0].Key)
}

func TestBackReferencedEnd(t *testing.T) {
	t.Parallel()

	src := `{"scopeName": "s", "patterns": [{"begin": "<<(\\w+)", "end": "^\\1$", "name": "string.heredoc"}]}`
	g, err := Compile(mustParse(t, src, FormatJSON))
	require.NoError(t, err)

	span := g.Patterns[0].(*SpanRule)
	assert.True(t, span.BackReferenced())
	assert.Nil(t, span.End)
	assert.Equal(t, `^\1$`, span.EndTemplate)
}

func TestSpecificCapturesOverrideShared(t *testing.T) {
	t.Parallel()

	src := `{"scopeName": "s", "patterns": [{
		"begin": "(\")", "end": "(\")",
		"captures": {"1": {"name": "punctuation.quote"}},
		"endCaptures": {"1": {"name": "punctuation.quote.end"}},
		"contentName": "string.content  extra"
	}]}`
	g, err := Compile(mustParse(t, src, FormatJSON))
	require.NoError(t, err)

	span := g.Patterns[0].(*SpanRule)
	assert.Equal(t, []string{"punctuation.quote"}, span.BeginCaptures[1].Scopes)
	assert.Equal(t, []string{"punctuation.quote.end"}, span.EndCaptures[1].Scopes)
	assert.Equal(t, []string{"string.content", "extra"}, span.ContentScopes)
	assert.Empty(t, span.Scopes)
}

func TestRuleStore(t *testing.T) {
	t.Parallel()

	s := NewRuleStore()
	a := &MatchRule{ID: "a"}
	require.NoError(t, s.Register("#a", a))
	require.NoError(t, s.Register("b", &GroupRule{ID: "b"}))

	err := s.Register("a", &GroupRule{})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	got, err := s.Resolve("a")
	require.NoError(t, err)
	assert.Same(t, a, got)

	got, err = s.Resolve("#a")
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = s.Resolve("#c")
	assert.ErrorIs(t, err, ErrUnresolvedInclude)

	assert.Equal(t, []string{"a", "b"}, s.Keys())
	assert.Equal(t, 2, s.Len())

	s.Seal()
	assert.ErrorIs(t, s.Register("c", &GroupRule{}), ErrSealed)
}

func TestGrammarResolve(t *testing.T) {
	t.Parallel()

	g, err := Compile(mustParse(t, blocksJSON, FormatJSON))
	require.NoError(t, err)

	for _, key := range []string{"$self", "$base", "source.blocks"} {
		rule, err := g.Resolve(key)
		require.NoError(t, err, key)
		group, ok := rule.(*GroupRule)
		require.True(t, ok, key)
		assert.Len(t, group.Patterns, 1)
	}

	rule, err := g.Resolve("source.blocks#number")
	require.NoError(t, err)
	assert.IsType(t, &MatchRule{}, rule)

	_, err = g.Resolve("source.other#number")
	assert.ErrorIs(t, err, ErrUnresolvedInclude)
}

func TestParseFormats(t *testing.T) {
	t.Parallel()

	yamlSrc := `
scopeName: source.demo
patterns:
  - include: '#b'
  - include: '#a'
repository:
  b:
    match: 'b+'
    name: keyword.b
  a:
    begin: '\('
    end: '\)'
    beginCaptures:
      0: {name: punctuation.open}
`
	tomlSrc := `
scopeName = "source.demo"

[[patterns]]
include = "#b"

[[patterns]]
include = "#a"

[repository.b]
match = 'b+'
name = "keyword.b"

[repository.a]
begin = '\('
end = '\)'

[repository.a.beginCaptures.0]
name = "punctuation.open"
`

	fromYAML := mustParse(t, yamlSrc, FormatYAML)
	fromTOML := mustParse(t, tomlSrc, FormatTOML)

	assert.Equal(t, "b", fromYAML.Repository[0].Key, "yaml keeps document order")
	for _, doc := range []*Document{fromYAML, fromTOML} {
		require.Len(t, doc.Patterns, 2)
		a, ok := doc.Repository.Lookup("a")
		require.True(t, ok)
		assert.Equal(t, `\(`, a.Begin)
		assert.Equal(t, "punctuation.open", a.BeginCaptures["0"].Name)

		g, err := Compile(doc)
		require.NoError(t, err)
		assert.Equal(t, 2, g.Store.Len())
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`{"patterns": []}`), FormatJSON)
	assert.ErrorIs(t, err, ErrNoScopeName)

	_, err = Parse([]byte(`{"scopeName": "s", "repository": []}`), FormatJSON)
	assert.Error(t, err)

	_, err = Parse([]byte("scopeName: s\nrepository: [a]\n"), FormatYAML)
	assert.Error(t, err)

	_, err = Parse([]byte(`x`), Format("plist"))
	assert.Error(t, err)
}

func TestEncodeKeepsOrderAndPatterns(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, blocksJSON, FormatJSON)
	doc.Repository = append(doc.Repository, RepositoryEntry{
		Key:  "lookbehind",
		Rule: RawRule{Match: `(?<=<)&\w+`},
	})

	var buf bytes.Buffer
	require.NoError(t, doc.Encode(&buf, FormatJSON))
	out := buf.String()
	assert.Contains(t, out, `"match": "(?<=<)&\\w+"`)
	assert.Less(t, strings.Index(out, `"code"`), strings.Index(out, `"number"`))

	back := mustParse(t, out, FormatJSON)
	assert.Equal(t, doc.Repository, back.Repository)

	for _, format := range []Format{FormatYAML, FormatTOML} {
		buf.Reset()
		require.NoError(t, doc.Encode(&buf, format), format)
		again := mustParse(t, buf.String(), format)
		_, err := Compile(again)
		assert.NoError(t, err, format)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "blocks.tmLanguage.json")
	require.NoError(t, os.WriteFile(path, []byte(blocksJSON), 0o644))

	g, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "source.blocks", g.ScopeName)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	_, err = LoadDocument(filepath.Join(dir, "grammar.plist"))
	assert.Error(t, err)

	format, err := FormatOf("Kotlin.YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, format)
}
