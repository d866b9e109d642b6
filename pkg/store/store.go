// Package store implements the prefix tree that backs every suggestion in wordstore.
//
// A PrefixStore counts how many times each exact word was inserted and answers
// top-N queries for a prefix, ranked by count and then by word. It is not safe
// for concurrent use; see pkg/suggest for the synchronized wrapper.
package store

import (
	"sort"
	"unicode/utf8"
)

// DefaultLimit is the number of results Suggest callers use when they have no preference.
const DefaultLimit = 10

// Entry is one ranked suggestion.
type Entry struct {
	Word  string
	Count int
}

type node struct {
	children map[rune]*node
	terminal bool
	count    int
}

// PrefixStore is a trie of inserted words with per-word occurrence counts.
type PrefixStore struct {
	root  *node
	words int
	nodes int
}

// New returns an empty store.
func New() *PrefixStore {
	return &PrefixStore{
		root:  &node{},
		nodes: 1,
	}
}

// Insert records one occurrence of word, creating missing nodes along its path.
// The empty word marks the root itself.
func (s *PrefixStore) Insert(word string) {
	cur := s.root
	for i := 0; i < len(word); {
		r, w := edge(word[i:])
		i += w
		next, ok := cur.children[r]
		if !ok {
			if cur.children == nil {
				cur.children = make(map[rune]*node)
			}
			next = &node{}
			cur.children[r] = next
			s.nodes++
		}
		cur = next
	}
	if !cur.terminal {
		cur.terminal = true
		s.words++
	}
	cur.count++
}

// Count returns how many times word was inserted.
func (s *PrefixStore) Count(word string) int {
	n := s.find(word)
	if n == nil {
		return 0
	}
	return n.count
}

// Len returns the number of distinct words.
func (s *PrefixStore) Len() int {
	return s.words
}

// Nodes returns the number of nodes in the tree, root included.
func (s *PrefixStore) Nodes() int {
	return s.nodes
}

// Suggest returns at most limit words starting with prefix, highest count first
// and ties in ascending byte order. A negative limit is treated as 0.
// The result is never nil.
func (s *PrefixStore) Suggest(prefix string, limit int) []Entry {
	if limit <= 0 {
		return []Entry{}
	}
	start := s.find(prefix)
	if start == nil {
		return []Entry{}
	}

	results := collect(start, prefix)
	sort.Slice(results, func(i, j int) bool {
		return Less(results[i], results[j])
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Less reports whether a ranks before b.
func Less(a, b Entry) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	return a.Word < b.Word
}

func (s *PrefixStore) find(prefix string) *node {
	cur := s.root
	for i := 0; i < len(prefix); {
		r, w := edge(prefix[i:])
		i += w
		next, ok := cur.children[r]
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// edge decodes the first character of s. A byte that is not valid UTF-8 gets
// its own negative key so every inserted byte sequence keeps a distinct path.
func edge(s string) (rune, int) {
	r, w := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && w == 1 {
		return -rune(s[0]) - 1, 1
	}
	return r, w
}

// appendEdge writes the bytes edge decoded r from.
func appendEdge(buf []byte, r rune) []byte {
	if r < 0 {
		return append(buf, byte(-r-1))
	}
	return utf8.AppendRune(buf, r)
}

// frame is a pending visit: the node, its edge key and the buffer length at which that key goes.
type frame struct {
	n     *node
	depth int
	r     rune
}

// collect walks the subtree under start depth-first with an explicit stack and
// emits every terminal node. buf always holds the bytes of the path from the
// root to the node being visited.
func collect(start *node, prefix string) []Entry {
	var results []Entry
	buf := []byte(prefix)
	base := len(buf)

	if start.terminal {
		results = append(results, Entry{Word: prefix, Count: start.count})
	}

	stack := make([]frame, 0, len(start.children))
	for r, child := range start.children {
		stack = append(stack, frame{n: child, depth: base, r: r})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		buf = appendEdge(buf[:f.depth], f.r)
		if f.n.terminal {
			results = append(results, Entry{Word: string(buf), Count: f.n.count})
		}
		for r, child := range f.n.children {
			stack = append(stack, frame{n: child, depth: len(buf), r: r})
		}
	}
	return results
}
