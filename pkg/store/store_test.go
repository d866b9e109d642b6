package store

import (
	"fmt"
	"math/rand"
	"reflect"
	"sort"
	"strings"
	"testing"
)

func newScenarioStore() *PrefixStore {
	s := New()
	for i := 0; i < 3; i++ {
		s.Insert("cat")
	}
	s.Insert("car")
	s.Insert("cart")
	s.Insert("cart")
	s.Insert("dog")
	return s
}

func TestSuggestScenario(t *testing.T) {
	s := newScenarioStore()

	testCases := []struct {
		prefix   string
		limit    int
		expected []Entry
	}{
		{"ca", 10, []Entry{{"cat", 3}, {"cart", 2}, {"car", 1}}},
		{"ca", 2, []Entry{{"cat", 3}, {"cart", 2}}},
		{"do", 10, []Entry{{"dog", 1}}},
		{"x", 10, []Entry{}},
		{"car", 10, []Entry{{"cart", 2}, {"car", 1}}},
		{"cart", 10, []Entry{{"cart", 2}}},
		{"carts", 10, []Entry{}},
		{"", 10, []Entry{{"cat", 3}, {"cart", 2}, {"car", 1}, {"dog", 1}}},
		{"", 1, []Entry{{"cat", 3}}},
		{"ca", 0, []Entry{}},
		{"ca", -5, []Entry{}},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%q/%d", tc.prefix, tc.limit), func(t *testing.T) {
			got := s.Suggest(tc.prefix, tc.limit)
			if got == nil {
				t.Fatalf("Suggest(%q, %d) returned nil", tc.prefix, tc.limit)
			}
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Suggest(%q, %d) = %v, expected %v", tc.prefix, tc.limit, got, tc.expected)
			}
		})
	}
}

func TestEmptyStore(t *testing.T) {
	s := New()
	if got := s.Suggest("", DefaultLimit); len(got) != 0 {
		t.Errorf("expected no suggestions from empty store, got %v", got)
	}
	if got := s.Suggest("a", DefaultLimit); len(got) != 0 {
		t.Errorf("expected no suggestions from empty store, got %v", got)
	}
	if s.Len() != 0 || s.Nodes() != 1 {
		t.Errorf("expect: 0 words 1 node, actual: %d words %d nodes", s.Len(), s.Nodes())
	}
}

func TestInsertEmptyWord(t *testing.T) {
	s := New()
	s.Insert("")
	s.Insert("")
	s.Insert("a")

	if c := s.Count(""); c != 2 {
		t.Errorf("expect: %d, actual: %d", 2, c)
	}
	expected := []Entry{{"", 2}, {"a", 1}}
	if got := s.Suggest("", 10); !reflect.DeepEqual(got, expected) {
		t.Errorf("Suggest(\"\") = %v, expected %v", got, expected)
	}
	if s.Nodes() != 2 {
		t.Errorf("expect: %d nodes, actual: %d", 2, s.Nodes())
	}
}

func TestInsertCountMonotonic(t *testing.T) {
	s := New()
	for i := 1; i <= 25; i++ {
		s.Insert("hello")
		if c := s.Count("hello"); c != i {
			t.Fatalf("after %d inserts expect count %d, actual %d", i, i, c)
		}
		got := s.Suggest("he", 1)
		if len(got) != 1 || got[0].Count != i {
			t.Fatalf("after %d inserts Suggest returned %v", i, got)
		}
	}
	if s.Count("hell") != 0 {
		t.Errorf("non-terminal prefix must have zero count, got %d", s.Count("hell"))
	}
	if s.Count("world") != 0 {
		t.Errorf("absent word must have zero count, got %d", s.Count("world"))
	}
}

func TestSharedPrefixGrowth(t *testing.T) {
	s := New()
	s.Insert("cart")
	if s.Nodes() != 5 {
		t.Fatalf("expect: %d nodes, actual: %d", 5, s.Nodes())
	}
	// Words along an existing path add no nodes.
	s.Insert("car")
	s.Insert("ca")
	s.Insert("cart")
	if s.Nodes() != 5 {
		t.Errorf("expect: %d nodes, actual: %d", 5, s.Nodes())
	}
	s.Insert("cat")
	if s.Nodes() != 6 {
		t.Errorf("expect: %d nodes, actual: %d", 6, s.Nodes())
	}
	if s.Len() != 4 {
		t.Errorf("expect: %d words, actual: %d", 4, s.Len())
	}

	expected := []Entry{{"cart", 2}, {"ca", 1}, {"car", 1}, {"cat", 1}}
	if got := s.Suggest("c", 10); !reflect.DeepEqual(got, expected) {
		t.Errorf("Suggest(\"c\") = %v, expected %v", got, expected)
	}
}

func TestOrdinalTieBreak(t *testing.T) {
	s := New()
	for _, w := range []string{"b", "B", "a", "Z", "é", "e", "ab", "a b"} {
		s.Insert(w)
	}
	got := s.Suggest("", 100)
	words := make([]string, len(got))
	for i, e := range got {
		words[i] = e.Word
	}
	expected := []string{"B", "Z", "a", "a b", "ab", "b", "e", "é"}
	if !reflect.DeepEqual(words, expected) {
		t.Errorf("expect: %v, actual: %v", expected, words)
	}
}

func TestMultiByteWords(t *testing.T) {
	s := New()
	s.Insert("日本")
	s.Insert("日本語")
	s.Insert("日本語")
	s.Insert("日曜")

	expected := []Entry{{"日本語", 2}, {"日曜", 1}, {"日本", 1}}
	if got := s.Suggest("日", 10); !reflect.DeepEqual(got, expected) {
		t.Errorf("Suggest(\"日\") = %v, expected %v", got, expected)
	}
	if got := s.Suggest("日本", 10); len(got) != 2 {
		t.Errorf("expect: 2 results, actual: %v", got)
	}
}

func TestInvalidUTF8Words(t *testing.T) {
	s := New()
	s.Insert("a\xff")
	s.Insert("a\xfe")
	s.Insert("a\xfe")
	s.Insert("a�")
	s.Insert("\xe6\x97")

	counts := map[string]int{"a\xff": 1, "a\xfe": 2, "a�": 1, "\xe6\x97": 1, "日": 0}
	for word, expected := range counts {
		if got := s.Count(word); got != expected {
			t.Errorf("Count(%q) = %d, expected %d", word, got, expected)
		}
	}
	if s.Len() != 4 {
		t.Errorf("expect: 4 distinct words, actual: %d", s.Len())
	}

	expected := []Entry{{"a\xfe", 2}, {"a�", 1}, {"a\xff", 1}}
	if got := s.Suggest("a", 10); !reflect.DeepEqual(got, expected) {
		t.Errorf("Suggest(\"a\") = %q, expected %q", got, expected)
	}
	if got := s.Suggest("a\xff", 10); !reflect.DeepEqual(got, []Entry{{"a\xff", 1}}) {
		t.Errorf("Suggest(%q) = %q", "a\xff", got)
	}
	if got := s.Suggest("\xe6", 10); !reflect.DeepEqual(got, []Entry{{"\xe6\x97", 1}}) {
		t.Errorf("Suggest(%q) = %q", "\xe6", got)
	}
}

func TestDeepWord(t *testing.T) {
	s := New()
	long := strings.Repeat("a", 100000)
	s.Insert(long)
	s.Insert(long[:50000])

	got := s.Suggest(long[:10], 10)
	if len(got) != 2 {
		t.Fatalf("expect: 2 results, actual: %d", len(got))
	}
	if got[0].Word != long[:50000] || got[1].Word != long {
		t.Errorf("unexpected ranking of deep words: lengths %d, %d", len(got[0].Word), len(got[1].Word))
	}
}

func TestLess(t *testing.T) {
	testCases := []struct {
		a, b     Entry
		expected bool
	}{
		{Entry{"a", 2}, Entry{"b", 1}, true},
		{Entry{"b", 2}, Entry{"a", 1}, true},
		{Entry{"a", 1}, Entry{"b", 2}, false},
		{Entry{"a", 1}, Entry{"b", 1}, true},
		{Entry{"b", 1}, Entry{"a", 1}, false},
		{Entry{"a", 1}, Entry{"a", 1}, false},
	}
	for _, tc := range testCases {
		if got := Less(tc.a, tc.b); got != tc.expected {
			t.Errorf("Less(%v, %v) = %v, expected %v", tc.a, tc.b, got, tc.expected)
		}
	}
}

// TestSuggestMatchesBruteForce checks every property of Suggest against a
// plain map on randomly generated words.
func TestSuggestMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []rune("abcé")

	s := New()
	counts := make(map[string]int)
	for i := 0; i < 3000; i++ {
		n := rng.Intn(6)
		w := make([]rune, n)
		for j := range w {
			w[j] = alphabet[rng.Intn(len(alphabet))]
		}
		s.Insert(string(w))
		counts[string(w)]++
	}

	if s.Len() != len(counts) {
		t.Fatalf("expect: %d words, actual: %d", len(counts), s.Len())
	}

	prefixes := []string{"", "a", "ab", "é", "cc", "abcé", "ééééé", "zz"}
	for _, p := range prefixes {
		var expected []Entry
		for w, c := range counts {
			if strings.HasPrefix(w, p) {
				expected = append(expected, Entry{w, c})
			}
		}
		sort.Slice(expected, func(i, j int) bool { return Less(expected[i], expected[j]) })

		for _, limit := range []int{0, 1, 3, 10, len(expected), len(expected) + 5} {
			got := s.Suggest(p, limit)
			want := expected
			if len(want) > limit {
				want = want[:limit]
			}
			if len(got) != len(want) {
				t.Fatalf("Suggest(%q, %d): expect %d results, actual %d", p, limit, len(want), len(got))
			}
			for i := range got {
				if got[i] != want[i] {
					t.Fatalf("Suggest(%q, %d)[%d] = %v, expected %v", p, limit, i, got[i], want[i])
				}
				if i > 0 && !Less(got[i-1], got[i]) {
					t.Fatalf("Suggest(%q, %d) out of order at %d: %v, %v", p, limit, i, got[i-1], got[i])
				}
			}
		}
	}
}

func BenchmarkSuggest(b *testing.B) {
	s := New()
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50000; i++ {
		w := make([]byte, 3+rng.Intn(8))
		for j := range w {
			w[j] = byte('a' + rng.Intn(26))
		}
		s.Insert(string(w))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Suggest("ab", DefaultLimit)
	}
}
