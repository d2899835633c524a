package types

import (
	"fmt"
	"go/token"
	"strings"
)

// Issue represents a problem found while tokenizing a file.
type Issue struct {
	Rule     string
	Category string
	Filename string
	Message  string
	Note     string
	Start    token.Position
	End      token.Position
	Severity Severity
}

// Severity is how an issue is reported. SeverityOff drops it.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityOff
)

var severityNames = [...]string{
	SeverityError:   "ERROR",
	SeverityWarning: "WARNING",
	SeverityInfo:    "INFO",
	SeverityOff:     "OFF",
}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

// ParseSeverity parses a severity name, ignoring case.
func ParseSeverity(name string) (Severity, error) {
	for s, n := range severityNames {
		if strings.EqualFold(n, name) {
			return Severity(s), nil
		}
	}
	return SeverityOff, fmt.Errorf("unknown severity %q", name)
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(s.String())), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ConfigRule configures how one kind of issue is reported.
type ConfigRule struct {
	Severity Severity `yaml:"severity"`
}
