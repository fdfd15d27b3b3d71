package insert

import (
	"fmt"
	"os"
	"strings"
)

// Buffer holds one file's text as mutable lines. It is loaded once per
// file right before insertion and written back exactly once; no second
// buffer for the same file may exist during that window.
type Buffer struct {
	path  string
	lines []string
}

func LoadBuffer(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewBuffer(path, string(data)), nil
}

func NewBuffer(path, text string) *Buffer {
	// A trailing newline would otherwise produce a phantom empty line
	// that gets doubled on write-back.
	text = strings.TrimSuffix(text, "\n")
	return &Buffer{path: path, lines: strings.Split(text, "\n")}
}

func (b *Buffer) Len() int { return len(b.lines) }

// Line returns the 1-based line, empty when out of range.
func (b *Buffer) Line(n int) string {
	if n < 1 || n > len(b.lines) {
		return ""
	}
	return b.lines[n-1]
}

// InsertAfter splices newLines directly after 1-based line n.
func (b *Buffer) InsertAfter(n int, newLines []string) error {
	if n < 1 || n > len(b.lines) {
		return fmt.Errorf("insert position %d out of range (1..%d)", n, len(b.lines))
	}
	b.lines = append(b.lines[:n], append(append([]string{}, newLines...), b.lines[n:]...)...)
	return nil
}

func (b *Buffer) String() string {
	return strings.Join(b.lines, "\n") + "\n"
}

// Write persists the buffer back to its file, preserving the trailing
// newline.
func (b *Buffer) Write() error {
	return os.WriteFile(b.path, []byte(b.String()), 0o644)
}
