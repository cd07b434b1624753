// Package document loads resumes and job descriptions from files or strings into plain text.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type Format string

const (
	FormatText Format = "text"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatHTML Format = "html"
)

// ErrUnsupported is returned for file extensions no extractor handles.
var ErrUnsupported = errors.New("unsupported document format")

type Document struct {
	Name   string `json:"name"`
	Path   string `json:"path,omitempty"`
	Format Format `json:"format"`
	Text   string `json:"-"`
}

// IsEmpty reports whether the document has no text besides whitespace.
func (d Document) IsEmpty() bool {
	return strings.TrimSpace(d.Text) == ""
}

// FromString wraps text supplied directly, e.g. from a flag.
func FromString(name, text string) Document {
	return Document{Name: name, Format: FormatText, Text: text}
}

// FormatOf maps a file extension to a format.
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "", ".txt", ".md", ".text":
		return FormatText, nil
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case ".html", ".htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
}

// Load reads the file and extracts its text according to the extension.
func Load(path string) (Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Document{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}

	text, err := extract(format, data)
	if err != nil {
		return Document{}, fmt.Errorf("extract %s text from %s: %w", format, path, err)
	}

	return Document{
		Name:   filepath.Base(path),
		Path:   path,
		Format: format,
		Text:   text,
	}, nil
}

// LoadDir loads every supported file directly under dir, sorted by name.
// Subdirectories, hidden files and unsupported extensions are skipped.
func LoadDir(dir string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if _, err := FormatOf(entry.Name()); err != nil {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	docs := make([]Document, 0, len(names))
	for _, name := range names {
		doc, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

func extract(format Format, data []byte) (string, error) {
	switch format {
	case FormatText:
		return string(data), nil
	case FormatPDF:
		return extractPDF(data)
	case FormatDOCX:
		return extractDOCX(data)
	case FormatHTML:
		return extractHTML(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, format)
	}
}
