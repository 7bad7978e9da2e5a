package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the configuration lives relative to the working
// directory when no path is given.
const DefaultPath = "config/config.jsonc"

var (
	errEmpty    = errors.New("file is empty")
	errNotText  = errors.New("file is not valid UTF-8 text")
	errNotTable = errors.New("top level must be an object")
	utf8BOM     = []byte{0xEF, 0xBB, 0xBF}
)

// LoadResult is a loaded configuration document and where it came from.
type LoadResult struct {
	Path     string
	Document Document
	// Created is true when the file did not exist and defaults were written.
	Created bool
}

// Load reads the configuration at path. A missing file is created with the
// default configuration and guidance comments. An existing file that is
// empty or cannot be parsed yields a *LoadError; defaults are never
// substituted for a broken file.
func Load(path string) (*LoadResult, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("creating config directory: %w", err)}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		doc := DefaultDocument()
		if err := Save(path, doc); err != nil {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("creating default config: %w", err)}
		}
		return &LoadResult{Path: path, Document: doc, Created: true}, nil
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("reading config file: %w", err)}
	}

	doc, err := LoadFromBytes(data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return &LoadResult{Path: path, Document: doc}, nil
}

// LoadFromBytes strips comment syntax from data and decodes the remainder
// into a Document. Field types are not checked here; that is Validate's job.
// The decoder is YAML, a superset of JSON: a repeated key is an error rather
// than last-one-wins, and block-style YAML (debug: true) is also accepted.
func LoadFromBytes(data []byte) (Document, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, errNotText
	}

	stripped := StripComments(data)
	if len(bytes.TrimSpace(stripped)) == 0 {
		return nil, errEmpty
	}

	var doc Document
	if err := yaml.Unmarshal(stripped, &doc); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if doc == nil {
		return nil, errNotTable
	}
	return doc, nil
}
