package tokenizer

import "fmt"

// WarningKind classifies a non-fatal tokenization problem.
type WarningKind string

const (
	// EmptyMatchSkipped: a rule matched the empty string where that would not make progress.
	EmptyMatchSkipped WarningKind = "empty-match-skipped"
	// CaptureIndexOutOfRange: a capture refers to a group the pattern does not have.
	CaptureIndexOutOfRange WarningKind = "capture-index-out-of-range"
	// UnterminatedSpan: a span was still open at the end of the input.
	UnterminatedSpan WarningKind = "unterminated-span"
	// MatchTimeout: a pattern search was abandoned; it counts as no match.
	MatchTimeout WarningKind = "match-timeout"
)

// Warning is reported alongside the token stream. Start and End are rune offsets.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Start   int         `json:"start"`
	End     int         `json:"end"`
	Rule    string      `json:"rule,omitempty"`
	Message string      `json:"message"`
}

func (w Warning) String() string {
	if w.Rule == "" {
		return fmt.Sprintf("%s at %d: %s", w.Kind, w.Start, w.Message)
	}
	return fmt.Sprintf("%s at %d (%s): %s", w.Kind, w.Start, w.Rule, w.Message)
}
