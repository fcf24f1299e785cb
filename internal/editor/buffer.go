package editor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// extLanguages maps file extensions to the fixed set of supported
// language identifiers.
var extLanguages = map[string]string{
	".html": "html",
	".htm":  "html",
	".js":   "javascript",
	".mjs":  "javascript",
	".ts":   "typescript",
	".css":  "css",
	".json": "json",
	".md":   "markdown",
	".go":   "go",
	".py":   "python",
}

// DetectLanguage returns the language identifier for a file name, falling
// back to "text" for anything outside the supported set.
func DetectLanguage(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if lang, ok := extLanguages[ext]; ok {
		return lang
	}
	return "text"
}

// Buffer holds one open file: its content, detected language, and whether
// unsaved changes exist.
type Buffer struct {
	path     string
	content  string
	language string
	dirty    bool
}

// Load reads the file at path into a new buffer.
func Load(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return &Buffer{
		path:     path,
		content:  string(data),
		language: DetectLanguage(path),
	}, nil
}

// NewBuffer creates an in-memory buffer, used by tests and for scratch
// content.
func NewBuffer(path, content string) *Buffer {
	return &Buffer{
		path:     path,
		content:  content,
		language: DetectLanguage(path),
	}
}

// Content returns the current buffer text.
func (b *Buffer) Content() string {
	return b.content
}

// Path returns the full file path.
func (b *Buffer) Path() string {
	return b.path
}

// FileName returns the base name of the open file.
func (b *Buffer) FileName() string {
	return filepath.Base(b.path)
}

// Language returns the detected language identifier.
func (b *Buffer) Language() string {
	return b.language
}

// Dirty reports whether the buffer has unsaved changes.
func (b *Buffer) Dirty() bool {
	return b.dirty
}

// LineCount returns the number of lines in the buffer.
func (b *Buffer) LineCount() int {
	if b.content == "" {
		return 0
	}
	return strings.Count(b.content, "\n") + 1
}

// Replace swaps the buffer content for the given text and marks the
// buffer dirty. This is the apply path for accepted suggestions.
func (b *Buffer) Replace(text string) {
	b.content = text
	b.dirty = true
}

// Save writes the buffer back to its file and clears the dirty flag.
func (b *Buffer) Save() error {
	if err := os.WriteFile(b.path, []byte(b.content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", b.path, err)
	}
	b.dirty = false
	return nil
}
