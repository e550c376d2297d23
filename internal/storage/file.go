package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileStore persists preferences in a TOML file. The whole file is
// rewritten on every Set.
type FileStore struct {
	path   string
	values map[string]string
}

type fileDocument struct {
	Preferences map[string]string `toml:"preferences"`
}

// OpenFile loads the TOML file at path. A missing file starts out empty.
func OpenFile(path string) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("preferences path required")
	}
	fs := &FileStore{path: path, values: map[string]string{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fs, nil
		}
		return nil, fmt.Errorf("read preferences: %w", err)
	}
	var doc fileDocument
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("parse preferences: %w", err)
	}
	for k, v := range doc.Preferences {
		fs.values[k] = v
	}
	return fs, nil
}

// Path returns the file location.
func (f *FileStore) Path() string {
	return f.path
}

// Get implements Backend.
func (f *FileStore) Get(key string) (string, bool, error) {
	v, ok := f.values[key]
	return v, ok, nil
}

// Set implements Backend.
func (f *FileStore) Set(key, value string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("preference key required")
	}
	prev, had := f.values[key]
	f.values[key] = value
	if err := f.flush(); err != nil {
		if had {
			f.values[key] = prev
		} else {
			delete(f.values, key)
		}
		return err
	}
	return nil
}

// Close implements Backend.
func (f *FileStore) Close() error {
	return nil
}

func (f *FileStore) flush() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(fileDocument{Preferences: f.values}); err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace preferences: %w", err)
	}
	return nil
}
