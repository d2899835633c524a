package formatter

import (
	"bytes"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/tmscope/tokenizer"
)

func TestTokenType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		scopes []string
		want   chroma.TokenType
	}{
		{"unscoped", nil, chroma.Text},
		{"unknown scope", []string{"meta.block.kotlin"}, chroma.Text},
		{"line comment", []string{"comment.line.double-slash.kotlin"}, chroma.CommentSingle},
		{"comment delimiter defers", []string{"comment.line.double-slash.kotlin", "punctuation.definition.comment.kotlin"}, chroma.CommentSingle},
		{"delimiter alone", []string{"punctuation.definition.string.begin.kotlin"}, chroma.Text},
		{"template in string", []string{"string.quoted.double.kotlin", "meta.template.expression.kotlin"}, chroma.LiteralStringInterpol},
		{"block brace", []string{"meta.block.kotlin", "punctuation.section.block.begin.kotlin"}, chroma.Punctuation},
		{"import", []string{"keyword.other.import.kotlin"}, chroma.KeywordNamespace},
		{"jump", []string{"keyword.control.flow.jump.kotlin"}, chroma.Keyword},
		{"number", []string{"constant.numeric.kotlin"}, chroma.LiteralNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TokenType(tt.scopes))
		})
	}
}

func sampleTokens() ([]rune, []tokenizer.Token) {
	text := []rune("val n = 42")
	return text, []tokenizer.Token{
		{Start: 0, End: 3, Scopes: []string{"keyword.declaration.stable.kotlin"}},
		{Start: 3, End: 4},
		{Start: 4, End: 5, Scopes: []string{"variable.other.definition.kotlin"}},
		{Start: 5, End: 6},
		{Start: 6, End: 7, Scopes: []string{"keyword.operator.assignment.kotlin"}},
		{Start: 7, End: 8},
		{Start: 8, End: 10, Scopes: []string{"constant.numeric.kotlin"}},
	}
}

func TestHighlight(t *testing.T) {
	t.Parallel()
	text, tokens := sampleTokens()

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Highlight(&buf, text, tokens, "json", "monokai"))
		out := buf.String()
		assert.Contains(t, out, `{"type":"KeywordDeclaration","value":"val"}`)
		assert.Contains(t, out, `{"type":"NameVariable","value":"n"}`)
		assert.Contains(t, out, `{"type":"Operator","value":"="}`)
		assert.Contains(t, out, `{"type":"LiteralNumber","value":"42"}`)
	})

	t.Run("noop keeps the text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Highlight(&buf, text, tokens, "noop", "monokai"))
		assert.Equal(t, "val n = 42", buf.String())
	})

	t.Run("terminal", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Highlight(&buf, text, tokens, "terminal256", "no-such-style"))
		assert.Contains(t, buf.String(), "42")
	})
}
