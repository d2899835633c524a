package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gnolang/tmscope/tokenizer"
)

// WriteTokens prints one token per line: its rune range, its text and its
// scopes, outer to inner.
func WriteTokens(w io.Writer, text []rune, tokens []tokenizer.Token) error {
	for _, tok := range tokens {
		_, err := fmt.Fprintf(w, "%s %q %s\n",
			lineStyle.Sprintf("%d-%d", tok.Start, tok.End),
			tok.Text(text),
			ruleStyle.Sprint(strings.Join(tok.Scopes, " ")),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

type jsonToken struct {
	Start  int      `json:"start"`
	End    int      `json:"end"`
	Text   string   `json:"text"`
	Scopes []string `json:"scopes"`
}

// WriteTokensJSON writes the tokens of one file as a JSON document.
func WriteTokensJSON(w io.Writer, filename string, text []rune, tokens []tokenizer.Token) error {
	out := struct {
		File   string      `json:"file"`
		Tokens []jsonToken `json:"tokens"`
	}{
		File:   filename,
		Tokens: make([]jsonToken, 0, len(tokens)),
	}
	for _, tok := range tokens {
		out.Tokens = append(out.Tokens, jsonToken{
			Start:  tok.Start,
			End:    tok.End,
			Text:   tok.Text(text),
			Scopes: tok.Scopes,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
