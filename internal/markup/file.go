package markup

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/resume-editor/internal/types"
)

// Extension is appended to written files that lack it
const Extension = ".md"

// DefaultBaseName names exports of documents without a name
const DefaultBaseName = "简历"

var unsafeNameChars = regexp.MustCompile(`[\\/:*?"<>|\x00-\x1f]`)

// SanitizeFileName replaces characters that are not allowed in file names
func SanitizeFileName(name string) string {
	name = unsafeNameChars.ReplaceAllString(name, "_")
	return strings.Trim(name, " .")
}

// DefaultFileName returns "<name>_<YYYY-MM-DD>" for doc, without extension
func DefaultFileName(doc types.Document, now time.Time) string {
	name := strings.TrimSpace(doc.Personal.Name)
	if name == "" {
		name = DefaultBaseName
	}
	return SanitizeFileName(name + "_" + now.Format("2006-01-02"))
}

// ReadFile reads a Markdown export. Files without a .md or .markdown
// extension are rejected with ErrUnsupportedFile before being opened.
func ReadFile(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
	default:
		return "", ErrUnsupportedFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// ImportFile reads path and imports its content
func ImportFile(path string) (*Imported, error) {
	text, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Import(text)
}

// WriteFile writes content to path, appending .md when missing, and returns
// the path actually written.
func WriteFile(path, content string) (string, error) {
	if !strings.EqualFold(filepath.Ext(path), Extension) {
		path += Extension
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
