// Package tokenizer runs a compiled grammar over text and produces scoped tokens.
//
// A run keeps a cursor and a stack of open spans. Each step looks for the
// earliest match among the end pattern of the innermost span and the patterns
// it lists, resolving includes as it goes; the end pattern wins ties, and
// otherwise the first declared pattern does. Text no pattern claims is emitted
// with the scopes of the enclosing span, so every input is tokenized completely.
package tokenizer

import (
	"context"

	"go.uber.org/zap"

	"github.com/gnolang/tmscope/grammar"
)

// Tokenizer runs one grammar. It holds no per-run state and may be used concurrently.
type Tokenizer struct {
	grammar         *grammar.Grammar
	logger          *zap.Logger
	coalesce        bool
	maxCaptureDepth int
}

func New(g *grammar.Grammar, opts ...Option) *Tokenizer {
	t := &Tokenizer{
		grammar:         g,
		logger:          zap.NewNop(),
		coalesce:        true,
		maxCaptureDepth: defaultMaxCaptureDepth,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tokenizer) Grammar() *grammar.Grammar {
	return t.grammar
}

// Tokenize starts a run over text. Tokens are produced as the stream is read.
// The context is checked once per step; a cancelled run ends early and
// reports the context error from Stream.Err.
func (t *Tokenizer) Tokenize(ctx context.Context, text string) *Stream {
	return t.TokenizeRunes(ctx, []rune(text))
}

// TokenizeRunes is like Tokenize for text that is already decoded. Offsets are rune offsets.
func (t *Tokenizer) TokenizeRunes(ctx context.Context, text []rune) *Stream {
	s := &Stream{
		text:     text,
		coalesce: t.coalesce,
	}
	r := &run{
		ctx:       ctx,
		tokenizer: t,
		sink:      s.push,
		reported:  make(map[string]bool),
	}
	s.run = r
	s.main = newMachine(r, text, rootSpan(t.grammar.Patterns, nil), 0, 0)
	return s
}
