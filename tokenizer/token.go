package tokenizer

import (
	"fmt"
	"strings"
)

// Token is a half-open rune range tagged with the scopes active over it,
// outer to inner. The grammar's own scope name is not included.
// Scopes may be shared between tokens and must not be modified.
type Token struct {
	Start  int      `json:"start"`
	End    int      `json:"end"`
	Scopes []string `json:"scopes"`
}

func (t Token) Len() int {
	return t.End - t.Start
}

// Text returns the part of text the token covers.
func (t Token) Text(text []rune) string {
	return string(text[t.Start:t.End])
}

// Scope returns the innermost scope, or "" for unscoped text.
func (t Token) Scope() string {
	if len(t.Scopes) == 0 {
		return ""
	}
	return t.Scopes[len(t.Scopes)-1]
}

func (t Token) String() string {
	return fmt.Sprintf("[%d,%d) %s", t.Start, t.End, strings.Join(t.Scopes, " "))
}
