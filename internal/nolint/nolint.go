// Package nolint finds ignore directives in source comments.
//
// A comment containing "tmscope:ignore" silences issues on the lines of the
// comment and on the line after it. "tmscope:ignore-file" silences the whole
// file. Either form may name the rules it applies to after a colon:
//
//	// tmscope:ignore:unterminated-span,match-timeout
package nolint

import (
	"fmt"
	"strings"
)

const (
	directive     = "tmscope:ignore"
	fileDirective = "-file"
)

// Comment is the text of a comment and the lines it covers.
type Comment struct {
	Text      string
	StartLine int
	EndLine   int
}

// Manager holds the ignore scopes of one file.
type Manager struct {
	scopes []ignoreScope
}

// ignoreScope is a line range where some or all rules are ignored.
type ignoreScope struct {
	rules map[string]struct{}
	// wholeFile scopes ignore start and end.
	wholeFile  bool
	start, end int
}

// Contains reports whether text holds a directive, so callers can skip
// locating comments that have none.
func Contains(text string) bool {
	return strings.Contains(text, directive)
}

// ParseComments collects the directives of the given comments. Malformed
// directives are skipped.
func ParseComments(comments []Comment) *Manager {
	m := &Manager{}
	for _, c := range comments {
		ns, err := parseComment(c)
		if err != nil {
			continue
		}
		m.scopes = append(m.scopes, ns)
	}
	return m
}

func parseComment(c Comment) (ignoreScope, error) {
	var ns ignoreScope
	idx := strings.Index(c.Text, directive)
	if idx < 0 {
		return ns, fmt.Errorf("no ignore directive")
	}
	rest := c.Text[idx+len(directive):]

	if strings.HasPrefix(rest, fileDirective) {
		ns.wholeFile = true
		rest = rest[len(fileDirective):]
	}

	// the directive ends at a colon, a space or the end of the comment
	if rest != "" && rest[0] != ':' && rest[0] != ' ' && rest[0] != '\t' && rest[0] != '\n' {
		return ns, fmt.Errorf("invalid ignore directive format")
	}

	if strings.HasPrefix(rest, ":") {
		fields := strings.Fields(rest[1:])
		if len(fields) == 0 || strings.HasPrefix(rest[1:], " ") {
			return ns, fmt.Errorf("invalid ignore directive: no rules specified after colon")
		}
		ns.rules = parseIgnoreRuleNames(fields[0])
	} else {
		ns.rules = map[string]struct{}{}
	}

	ns.start = c.StartLine
	ns.end = c.EndLine + 1
	return ns, nil
}

// parseIgnoreRuleNames parses the comma separated rule list of a directive.
func parseIgnoreRuleNames(text string) map[string]struct{} {
	rulesMap := make(map[string]struct{})
	for _, rule := range strings.Split(text, ",") {
		rule = strings.TrimSpace(rule)
		if rule != "" {
			rulesMap[rule] = struct{}{}
		}
	}
	return rulesMap
}

// IsIgnored reports whether rule is ignored on line.
func (m *Manager) IsIgnored(line int, rule string) bool {
	for _, ns := range m.scopes {
		if !ns.wholeFile && (line < ns.start || line > ns.end) {
			continue
		}
		// If the rules list is empty, the directive applies to all rules
		if len(ns.rules) == 0 {
			return true
		}
		if _, exists := ns.rules[rule]; exists {
			return true
		}
	}
	return false
}
