package dictionary

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents the corpus file formats the loader understands
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatText               // whitespace separated tokens
	FormatList               // one word per line
)

// FormatInfo contains metadata about a corpus file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Corpus",
		Extensions:  []string{".txt"},
	},
	FormatList: {
		Format:      FormatList,
		Description: "Word List",
		Extensions:  []string{".lst", ".words"},
	},
}

func (f FileFormat) String() string {
	if info, ok := GetFormatInfo(f); ok {
		return info.Description
	}
	return "Unknown"
}

// DetectFileFormat picks the format from the file extension
func DetectFileFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for format, info := range supportedFormats {
		for _, e := range info.Extensions {
			if ext == e {
				return format, nil
			}
		}
	}
	return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
}

// ValidateFileFormat checks that a file exists, has an extension of the expected
// format and does not look binary.
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("unknown format: %v", expectedFormat)
	}

	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("%s is a directory", filename)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	validExt := false
	for _, validExtension := range formatInfo.Extensions {
		if ext == validExtension {
			validExt = true
			break
		}
	}
	if !validExt {
		return fmt.Errorf("file %s has invalid extension %s for format %s (expected: %v)",
			filename, ext, formatInfo.Description, formatInfo.Extensions)
	}

	return validateHead(filename)
}

// validateHead reads the first block of a file and rejects binary content
func validateHead(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	buffer := make([]byte, 1024)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read from %s: %w", filename, err)
	}
	if n == 0 {
		// Empty corpora are valid, they just add nothing.
		return nil
	}

	if bytes.IndexByte(buffer[:n], 0) >= 0 {
		return fmt.Errorf("file %s looks binary (NUL byte in first %d bytes)", filename, n)
	}

	log.Debugf("Corpus file %s validated", filename)
	return nil
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}
