package dictionary

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

type recordingSink struct {
	words []string
}

func (s *recordingSink) AddWord(word string) {
	s.words = append(s.words, word)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestLoadReaderText(t *testing.T) {
	sink := &recordingSink{}
	n, err := LoadReader(strings.NewReader("the cat\tsat\n\n on  the mat\r\nThe"), FormatText, sink)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{"the", "cat", "sat", "on", "the", "mat", "The"}
	if n != len(expected) || !reflect.DeepEqual(sink.words, expected) {
		t.Errorf("expect: %v (%d), actual: %v (%d)", expected, len(expected), sink.words, n)
	}
}

func TestLoadReaderList(t *testing.T) {
	sink := &recordingSink{}
	n, err := LoadReader(strings.NewReader("new york\n\n  los angeles \r\nparis\n"), FormatList, sink)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{"new york", "los angeles", "paris"}
	if n != 3 || !reflect.DeepEqual(sink.words, expected) {
		t.Errorf("expect: %v, actual: %v", expected, sink.words)
	}
}

func TestLoadReaderUnknownFormat(t *testing.T) {
	if _, err := LoadReader(strings.NewReader("a"), FormatUnknown, &recordingSink{}); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestDetectFileFormat(t *testing.T) {
	testCases := []struct {
		name     string
		expected FileFormat
		wantErr  bool
	}{
		{"corpus.txt", FormatText, false},
		{"CORPUS.TXT", FormatText, false},
		{"cities.lst", FormatList, false},
		{"en.words", FormatList, false},
		{"dict_0001.bin", FormatUnknown, true},
		{"noext", FormatUnknown, true},
	}
	for _, tc := range testCases {
		got, err := DetectFileFormat(tc.name)
		if got != tc.expected || (err != nil) != tc.wantErr {
			t.Errorf("DetectFileFormat(%q) = %v, %v; expected %v, error=%v", tc.name, got, err, tc.expected, tc.wantErr)
		}
	}
}

func TestValidateFileFormat(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", "hello world")
	empty := writeFile(t, dir, "empty.txt", "")
	binary := writeFile(t, dir, "binary.txt", "abc\x00def")
	wrongExt := writeFile(t, dir, "list.lst", "a\nb")

	if err := ValidateFileFormat(good, FormatText); err != nil {
		t.Errorf("expected %s to validate: %v", good, err)
	}
	if err := ValidateFileFormat(empty, FormatText); err != nil {
		t.Errorf("expected empty file to validate: %v", err)
	}
	if err := ValidateFileFormat(binary, FormatText); err == nil {
		t.Error("expected binary content to be rejected")
	}
	if err := ValidateFileFormat(wrongExt, FormatText); err == nil {
		t.Error("expected extension mismatch to be rejected")
	}
	if err := ValidateFileFormat(filepath.Join(dir, "missing.txt"), FormatText); err == nil {
		t.Error("expected missing file to be rejected")
	}
}

func TestLoaderLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "cart cart dog")
	writeFile(t, dir, "a.txt", "cat cat cat car")
	writeFile(t, dir, "c.txt", "bad\x00file")
	writeFile(t, dir, "notes.md", "ignored words")

	sink := &recordingSink{}
	stats, err := NewLoader(dir, "").LoadDir(sink)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"cat", "cat", "cat", "car", "cart", "cart", "dog"}
	if !reflect.DeepEqual(sink.words, expected) {
		t.Errorf("expect: %v, actual: %v", expected, sink.words)
	}
	if stats.Files != 2 || stats.FailedFiles != 1 || stats.Words != 7 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestLoaderLoadDirEmpty(t *testing.T) {
	if _, err := NewLoader(t.TempDir(), "*.txt").LoadDir(&recordingSink{}); err == nil {
		t.Error("expected an error when no corpus files exist")
	}
}
