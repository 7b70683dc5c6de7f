package parser

import (
	"os"
	"strings"
)

// SourceFile is a source file loaded for scanning.
type SourceFile struct {
	Path    string
	Content []byte
	Lines   []string
}

// Load reads a file and splits its content into lines for per-line rules.
// Lines are split on "\n" only, so a trailing newline yields a final empty
// line, matching what per-line rules expect.
func Load(path string) (*SourceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &SourceFile{
		Path:    path,
		Content: data,
		Lines:   strings.Split(string(data), "\n"),
	}, nil
}

// Line returns the 1-based line content, or "" when out of range.
func (f *SourceFile) Line(n int) string {
	if n < 1 || n > len(f.Lines) {
		return ""
	}
	return f.Lines[n-1]
}
