package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/gnolang/tmscope/internal/trie"
	"github.com/gnolang/tmscope/tokenizer"
)

// scopeTypes maps TextMate scope prefixes to chroma token types. chroma.None
// defers to the enclosing scope, so the quotes of a string or the slashes of
// a comment take the type of what they delimit.
var scopeTypes = buildScopeTypes(map[string]chroma.TokenType{
	"comment":                      chroma.Comment,
	"comment.line":                 chroma.CommentSingle,
	"comment.block":                chroma.CommentMultiline,
	"comment.block.documentation":  chroma.CommentSpecial,
	"constant":                     chroma.NameConstant,
	"constant.numeric":             chroma.LiteralNumber,
	"constant.character.escape":    chroma.LiteralStringEscape,
	"constant.language":            chroma.KeywordConstant,
	"entity.name":                  chroma.Name,
	"entity.name.function":         chroma.NameFunction,
	"entity.name.type":             chroma.NameClass,
	"entity.name.class":            chroma.NameClass,
	"entity.name.package":          chroma.NameNamespace,
	"entity.name.namespace":        chroma.NameNamespace,
	"entity.name.tag":              chroma.NameTag,
	"entity.other.attribute-name":  chroma.NameAttribute,
	"entity.other.inherited-class": chroma.NameClass,
	"invalid":                      chroma.Error,
	"keyword":                      chroma.Keyword,
	"keyword.declaration":          chroma.KeywordDeclaration,
	"keyword.operator":             chroma.Operator,
	"keyword.other.import":         chroma.KeywordNamespace,
	"meta.template.expression":     chroma.LiteralStringInterpol,
	"punctuation":                  chroma.Punctuation,
	"punctuation.definition":       chroma.None,
	"storage":                      chroma.Keyword,
	"storage.type":                 chroma.KeywordType,
	"string":                       chroma.LiteralString,
	"string.regexp":                chroma.LiteralStringRegex,
	"support.function":             chroma.NameBuiltin,
	"support.class":                chroma.KeywordType,
	"support.type":                 chroma.KeywordType,
	"variable":                     chroma.NameVariable,
	"variable.language":            chroma.NameBuiltinPseudo,
})

func buildScopeTypes(m map[string]chroma.TokenType) *trie.Trie[chroma.TokenType] {
	t := trie.New[chroma.TokenType]()
	for scope, typ := range m {
		t.Insert(strings.Split(scope, "."), typ)
	}
	return t
}

// TokenType returns the chroma token type for a scope list ordered outer to
// inner. The innermost scope with a known prefix decides; text with no known
// scope is chroma.Text.
func TokenType(scopes []string) chroma.TokenType {
	for i := len(scopes) - 1; i >= 0; i-- {
		typ, _, ok := scopeTypes.LongestPrefix(strings.Split(scopes[i], "."))
		if ok && typ != chroma.None {
			return typ
		}
	}
	return chroma.Text
}

// Highlight renders tokens with a chroma formatter and style. Unknown names
// fall back to chroma's defaults.
func Highlight(w io.Writer, text []rune, tokens []tokenizer.Token, formatterName, styleName string) error {
	chromaTokens := make([]chroma.Token, 0, len(tokens))
	for _, tok := range tokens {
		chromaTokens = append(chromaTokens, chroma.Token{
			Type:  TokenType(tok.Scopes),
			Value: tok.Text(text),
		})
	}

	f := formatters.Get(formatterName)
	style := styles.Get(styleName)
	if err := f.Format(w, style, chroma.Literator(chromaTokens...)); err != nil {
		return fmt.Errorf("highlighting: %w", err)
	}
	return nil
}
