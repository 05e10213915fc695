package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pfrederiksen/golf-courses/internal/course"
)

// FormatVersion is the version written to every export
const FormatVersion = "1.0"

// Document is the top-level JSON export
type Document struct {
	Version   string           `json:"version"`
	Generated string           `json:"generated"`
	Count     int              `json:"count"`
	Courses   []*course.Course `json:"courses"`
}

// NewDocument wraps courses in an export document stamped with now
func NewDocument(courses []*course.Course, now time.Time) *Document {
	if courses == nil {
		courses = []*course.Course{}
	}
	return &Document{
		Version:   FormatVersion,
		Generated: now.Format(time.RFC3339),
		Count:     len(courses),
		Courses:   courses,
	}
}

// WriteJSON encodes doc to w as indented JSON
func WriteJSON(w io.Writer, doc *Document) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(doc)
}

// ExportJSON writes courses to path as a JSON document, replacing any existing file.
// The document is encoded in full before path is touched, so a failed export
// leaves the previous file in place.
func ExportJSON(path string, courses []*course.Course, now time.Time) error {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, NewDocument(courses, now)); err != nil {
		return fmt.Errorf("encoding courses: %w", err)
	}

	path, err := prepareOutput(path)
	if err != nil {
		return err
	}

	return replaceFile(path, func(tmpPath string) error {
		if err := os.WriteFile(tmpPath, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		return nil
	})
}

// ReadJSON loads an export document from path
func ReadJSON(path string) (*Document, error) {
	path, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing export: %w", err)
	}

	return &doc, nil
}

// ExpandPath expands a leading ~/ to the user's home directory
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}
	return path, nil
}

// prepareOutput expands path and creates its parent directory if needed
func prepareOutput(path string) (string, error) {
	path, err := ExpandPath(path)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating output directory: %w", err)
		}
	}

	return path, nil
}

// replaceFile has write fill a temporary file next to path, then renames it
// over path. On any error the temporary file is removed and path is untouched.
func replaceFile(path string, write func(tmpPath string) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("creating temporary file: %w", err)
	}

	if err := write(tmpPath); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting output permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing output file: %w", err)
	}

	return nil
}
