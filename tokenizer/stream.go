package tokenizer

import "slices"

// Stats describes a finished run. Pushes minus Pops equals Open.
type Stats struct {
	Steps    int `json:"steps"`
	Pushes   int `json:"pushes"`
	Pops     int `json:"pops"`
	Open     int `json:"open"`
	MaxDepth int `json:"maxDepth"`
}

// Stream is the lazy, single-pass token sequence of one run.
type Stream struct {
	text     []rune
	run      *run
	main     *machine
	coalesce bool

	pending []Token
	head    int
	held    Token
	holding bool
	done    bool
}

// Next returns the next token. ok is false once the input is exhausted or the run was cancelled.
func (s *Stream) Next() (Token, bool) {
	for s.head >= len(s.pending) {
		s.pending = s.pending[:0]
		s.head = 0
		if s.done {
			return Token{}, false
		}
		if !s.main.step() {
			s.finish()
		}
	}
	tok := s.pending[s.head]
	s.head++
	return tok, true
}

// All drains the stream.
func (s *Stream) All() []Token {
	var tokens []Token
	for {
		tok, ok := s.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Warnings returns the warnings reported so far; the list is complete once the stream is drained.
func (s *Stream) Warnings() []Warning {
	return slices.Clone(s.run.warnings)
}

// Err returns the context error that ended the run early, if any.
func (s *Stream) Err() error {
	return s.run.err
}

// Stats returns the counters of the run so far.
func (s *Stream) Stats() Stats {
	st := s.main.stack
	return Stats{
		Steps:    s.main.steps,
		Pushes:   st.pushes,
		Pops:     st.pops,
		Open:     st.Depth(),
		MaxDepth: st.maxDepth,
	}
}

// Text returns the input being tokenized.
func (s *Stream) Text() []rune {
	return s.text
}

func (s *Stream) finish() {
	s.done = true
	if s.run.err == nil {
		s.main.reportUnterminated()
	}
	if s.holding {
		s.pending = append(s.pending, s.held)
		s.holding = false
	}
}

func (s *Stream) push(tok Token) {
	if !s.coalesce {
		s.pending = append(s.pending, tok)
		return
	}
	if s.holding {
		if s.held.End == tok.Start && slices.Equal(s.held.Scopes, tok.Scopes) {
			s.held.End = tok.End
			return
		}
		s.pending = append(s.pending, s.held)
	}
	s.held, s.holding = tok, true
}
