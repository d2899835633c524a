// Package trie maps sequences of path segments to values.
//
// Nodes live in one arena slice and refer to their children by index, so a
// trie is a single allocation that grows by appending.
package trie

// NodeIndex is the index of a node in the arena.
type NodeIndex int

const root NodeIndex = 0

type node[V any] struct {
	// children maps a path segment to the index of the child node.
	children map[string]NodeIndex
	value    V
	// isEnd reports whether a sequence ends here and value is set.
	isEnd bool
}

// Trie maps segment sequences to values. The zero value is not usable; call New.
type Trie[V any] struct {
	nodes []node[V]
}

// New returns an empty trie.
func New[V any]() *Trie[V] {
	t := &Trie[V]{nodes: make([]node[V], 0, 64)}
	t.newNode()
	return t
}

func (t *Trie[V]) newNode() NodeIndex {
	idx := NodeIndex(len(t.nodes))
	t.nodes = append(t.nodes, node[V]{children: make(map[string]NodeIndex)})
	return idx
}

// Insert sets the value of sequence, replacing any previous value.
func (t *Trie[V]) Insert(sequence []string, value V) {
	current := root
	for _, part := range sequence {
		child, exists := t.nodes[current].children[part]
		if !exists {
			child = t.newNode()
			t.nodes[current].children[part] = child
		}
		current = child
	}
	n := &t.nodes[current]
	n.value, n.isEnd = value, true
}

// LongestPrefix returns the value of the longest stored prefix of sequence
// and the length of that prefix.
func (t *Trie[V]) LongestPrefix(sequence []string) (value V, length int, ok bool) {
	current := root
	if n := t.nodes[root]; n.isEnd {
		value, ok = n.value, true
	}
	for i, part := range sequence {
		child, exists := t.nodes[current].children[part]
		if !exists {
			break
		}
		current = child
		if n := t.nodes[current]; n.isEnd {
			value, length, ok = n.value, i+1, true
		}
	}
	return value, length, ok
}
