package trie

import (
	"math/rand"
	"strings"
	"testing"
)

var scopeWords = []string{
	"keyword", "control", "operator", "string", "quoted", "double", "comment",
	"line", "block", "entity", "name", "function", "type", "constant", "numeric",
	"variable", "parameter", "punctuation", "definition", "meta", "storage",
}

// generateScopes returns count dotted scope names split into segments, each
// with between one and maxLength segments.
func generateScopes(count, maxLength int) [][]string {
	scopes := make([][]string, count)
	for i := range count {
		length := rand.Intn(maxLength) + 1
		scope := make([]string, length)
		for j := range length {
			scope[j] = scopeWords[rand.Intn(len(scopeWords))]
		}
		scopes[i] = scope
	}
	return scopes
}

func BenchmarkInsert(b *testing.B) {
	sizes := []struct {
		name      string
		count     int
		maxLength int
	}{
		{"Small", 100, 3},
		{"Medium", 1000, 5},
		{"Large", 10000, 7},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			scopes := generateScopes(size.count, size.maxLength)
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				tr := New[int]()
				for j, scope := range scopes {
					tr.Insert(scope, j)
				}
			}
		})
	}
}

func BenchmarkLongestPrefix(b *testing.B) {
	tr := New[int]()
	for i, scope := range generateScopes(1000, 4) {
		tr.Insert(scope, i)
	}
	// scopes as the highlighter sees them: dotted names with a language suffix
	queries := make([][]string, 0, 100)
	for _, scope := range generateScopes(100, 5) {
		queries = append(queries, strings.Split(strings.Join(scope, ".")+".go", "."))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, q := range queries {
			tr.LongestPrefix(q)
		}
	}
}
