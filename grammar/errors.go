package grammar

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a load-time grammar error.
type Kind int

const (
	DuplicateKey Kind = iota + 1
	UnresolvedInclude
	InvalidPattern
)

func (k Kind) String() string {
	switch k {
	case DuplicateKey:
		return "DuplicateKey"
	case UnresolvedInclude:
		return "UnresolvedInclude"
	case InvalidPattern:
		return "InvalidPattern"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

var (
	ErrDuplicateKey      = errors.New("duplicate repository key")
	ErrUnresolvedInclude = errors.New("unresolved include")
	ErrInvalidPattern    = errors.New("invalid pattern")
	ErrSealed            = errors.New("rule store is sealed")
	ErrNoScopeName       = errors.New("grammar has no scopeName")
)

// Error is a load-time grammar error. A grammar with any Error is unusable.
type Error struct {
	Kind Kind
	// Key is the repository key for DuplicateKey and UnresolvedInclude,
	// and the rule location for InvalidPattern.
	Key     string
	Pattern string
	Reason  string
}

func (e *Error) Error() string {
	switch e.Kind {
	case DuplicateKey:
		return fmt.Sprintf("%v: %q", ErrDuplicateKey, e.Key)
	case UnresolvedInclude:
		return fmt.Sprintf("%v: %q", ErrUnresolvedInclude, e.Key)
	default:
		return fmt.Sprintf("%v at %s: %s (pattern %q)", ErrInvalidPattern, e.Key, e.Reason, e.Pattern)
	}
}

// Unwrap returns the sentinel error matching the error kind.
func (e *Error) Unwrap() error {
	switch e.Kind {
	case DuplicateKey:
		return ErrDuplicateKey
	case UnresolvedInclude:
		return ErrUnresolvedInclude
	case InvalidPattern:
		return ErrInvalidPattern
	}
	return nil
}

// ErrorList aggregates every error found while compiling one grammar.
type ErrorList []*Error

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d grammar errors:", len(l))
	for _, e := range l {
		sb.WriteString("\n\t")
		sb.WriteString(e.Error())
	}
	return sb.String()
}

func (l ErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}

// Count returns the number of errors of the given kind.
func (l ErrorList) Count(kind Kind) int {
	n := 0
	for _, e := range l {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
