// Package cli handles cmd line input and suggestions for DBG and testing various features
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/bastiangx/wordstore/internal/utils"
	"github.com/bastiangx/wordstore/pkg/suggest"
	"github.com/charmbracelet/log"
)

// InputHandler reads commands line by line. A plain line is a prefix query,
// "+w1 w2" inserts words, ":top" ranks the whole store, ":stats" prints
// counters and ":q" exits.
type InputHandler struct {
	completer       suggest.ICompleter
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	requestCount    int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(completer suggest.ICompleter, minLength, maxLength, limit int) *InputHandler {
	return &InputHandler{
		completer:       completer,
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
	}
}

// Start runs the loop on stdin and stdout.
func (h *InputHandler) Start() error {
	log.Print("wordstore CLI")
	log.Print("type a prefix and press Enter, +word to insert, :q to exit")
	return h.Run(os.Stdin, os.Stdout)
}

// Run processes lines from r until EOF or ":q", writing results to w.
func (h *InputHandler) Run(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == ":q" {
			return nil
		}
		h.handleInput(line, w)
	}
	return scanner.Err()
}

// handleInput dispatches a single non-empty line.
func (h *InputHandler) handleInput(line string, w io.Writer) {
	switch {
	case strings.HasPrefix(line, "+"):
		words := strings.Fields(line[1:])
		if len(words) == 0 {
			log.Warn("Nothing to insert")
			return
		}
		n := h.completer.AddWords(words...)
		fmt.Fprintf(w, "added %d\n", n)
	case line == ":stats":
		printStats(w, h.completer.Stats())
	case line == ":top":
		h.query("", w)
	default:
		h.query(line, w)
	}
}

// query validates the prefix's length, asks the completer and prints the results.
func (h *InputHandler) query(prefix string, w io.Writer) {
	h.requestCount++

	n := utils.PrefixLen(prefix)
	if prefix != "" && n < h.minPrefixLength {
		log.Errorf("Prefix too short: %s", prefix)
		return
	}
	if n > h.maxPrefixLength {
		log.Errorf("Prefix too long: %s", prefix)
		return
	}

	start := time.Now()
	suggestions := h.completer.Complete(prefix, h.suggestLimit)
	log.Debugf("Took [ %v ] for prefix '%s' (request %d)", time.Since(start), prefix, h.requestCount)

	if len(suggestions) == 0 {
		log.Warnf("No suggestions found for prefix: '%s'", prefix)
		return
	}
	PrintSuggestions(w, suggestions)
}

// PrintSuggestions writes one "<word> (<count>)" line per suggestion.
func PrintSuggestions(w io.Writer, suggestions []suggest.Suggestion) {
	for _, s := range suggestions {
		fmt.Fprintf(w, "%s (%d)\n", s.Word, s.Frequency)
	}
}

func printStats(w io.Writer, stats map[string]int) {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%-16s %s\n", k, utils.FormatWithCommas(stats[k]))
	}
}
