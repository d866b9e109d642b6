// Package suggest is the synchronized front of the prefix store, adding a result cache for repeated prefixes.
package suggest

// ICompleter defines the interface for word completion engines
type ICompleter interface {
	// Complete returns at most limit suggestions for prefix, most frequent first
	Complete(prefix string, limit int) []Suggestion

	// AddWord records one occurrence of word
	AddWord(word string)

	// AddWords records one occurrence of each word and returns how many were added
	AddWords(words ...string) int

	// Stats returns counters about the store and the cache
	Stats() map[string]int
}
