package matcher

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// HasBackReferences reports whether template refers to begin captures with \1 .. \99.
func HasBackReferences(template string) bool {
	found := false
	scanBackReferences(template, func(string) {}, func(int) {
		found = true
	})
	return found
}

// ResolveBackReferences substitutes every \N in template with the escaped
// literal text returned by group(N).
func ResolveBackReferences(template string, group func(n int) string) string {
	var sb strings.Builder
	sb.Grow(len(template))
	scanBackReferences(template, func(s string) {
		sb.WriteString(s)
	}, func(n int) {
		sb.WriteString(regexp2.Escape(group(n)))
	})
	return sb.String()
}

func scanBackReferences(template string, literal func(string), ref func(int)) {
	start := 0
	for i := 0; i < len(template); i++ {
		if template[i] != '\\' || i+1 >= len(template) {
			continue
		}
		next := template[i+1]
		if next < '1' || next > '9' {
			// skip the escaped character, it may itself be a backslash
			i++
			continue
		}

		n := int(next - '0')
		end := i + 2
		if end < len(template) && isDigit(template[end]) {
			n = n*10 + int(template[end]-'0')
			end++
		}
		literal(template[start:i])
		ref(n)
		start = end
		i = end - 1
	}
	literal(template[start:])
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
