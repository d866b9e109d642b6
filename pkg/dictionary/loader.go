// Package dictionary reads word corpora from disk and feeds every word into a Sink.
package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// maxLineSize bounds a single token or line read from a corpus.
const maxLineSize = 1 << 20

// DefaultPattern matches the corpus files LoadDir picks up when none is configured.
const DefaultPattern = "*.txt"

// Sink receives one call per word occurrence.
type Sink interface {
	AddWord(word string)
}

// FileInfo describes a corpus file found in the data dir
type FileInfo struct {
	Filename string
	Format   FileFormat
	Size     int64
}

// LoadStats summarizes a LoadDir run
type LoadStats struct {
	Files       int
	FailedFiles int
	Words       int
	Elapsed     time.Duration
}

// Loader reads corpus files from a directory
type Loader struct {
	dirPath string
	pattern string
}

// NewLoader creates a loader for files in dirPath matching a glob pattern.
func NewLoader(dirPath, pattern string) *Loader {
	if pattern == "" {
		pattern = DefaultPattern
	}
	return &Loader{
		dirPath: dirPath,
		pattern: pattern,
	}
}

// GetAvailable scans the directory for corpus files, sorted by name
func (l *Loader) GetAvailable() ([]FileInfo, error) {
	files, err := filepath.Glob(filepath.Join(l.dirPath, l.pattern))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for corpus files: %w", err)
	}

	var infos []FileInfo
	for _, file := range files {
		format, err := DetectFileFormat(file)
		if err != nil {
			log.Debugf("Skipping %s: %v", file, err)
			continue
		}
		stat, err := os.Stat(file)
		if err != nil || stat.IsDir() {
			continue
		}
		infos = append(infos, FileInfo{
			Filename: file,
			Format:   format,
			Size:     stat.Size(),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Filename < infos[j].Filename
	})
	return infos, nil
}

// LoadDir loads every available corpus file into sink.
// Files that fail validation or reading are logged and counted, not fatal.
func (l *Loader) LoadDir(sink Sink) (LoadStats, error) {
	start := time.Now()
	var stats LoadStats

	files, err := l.GetAvailable()
	if err != nil {
		return stats, err
	}
	if len(files) == 0 {
		return stats, fmt.Errorf("no corpus files matching %s found in %s", l.pattern, l.dirPath)
	}

	log.Debugf("Found %d corpus files", len(files))

	for _, f := range files {
		n, err := LoadFile(f.Filename, sink)
		stats.Words += n
		if err != nil {
			log.Errorf("Failed to load %s: %v", f.Filename, err)
			stats.FailedFiles++
			continue
		}
		stats.Files++
		log.Debugf("Loaded %d words from %s", n, f.Filename)
	}

	stats.Elapsed = time.Since(start)
	return stats, nil
}

// LoadFile validates path and loads it in the format its extension names.
func LoadFile(path string, sink Sink) (int, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return 0, err
	}
	if err := ValidateFileFormat(path, format); err != nil {
		return 0, err
	}

	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	return LoadReader(file, format, sink)
}

// LoadReader feeds every word in r to sink and returns how many were added.
// Words are passed through verbatim: no case folding or normalization.
func LoadReader(r io.Reader, format FileFormat, sink Sink) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	switch format {
	case FormatText:
		scanner.Split(bufio.ScanWords)
	case FormatList:
		scanner.Split(bufio.ScanLines)
	default:
		return 0, fmt.Errorf("unsupported format: %v", format)
	}

	count := 0
	for scanner.Scan() {
		word := scanner.Text()
		if format == FormatList {
			word = strings.TrimSpace(word)
			if word == "" {
				continue
			}
		}
		sink.AddWord(word)
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("failed to read corpus: %w", err)
	}
	return count, nil
}
