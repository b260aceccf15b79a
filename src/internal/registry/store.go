// Package registry persists the JSON state files nvmd keeps in its home
// directory: packages.json, projects.json and groups.json.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ReadError is returned when a registry file exists but cannot be read or parsed
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// WriteError is returned when a registry file cannot be written
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// IsReadError checks if an error is a ReadError
func IsReadError(err error) bool {
	var target *ReadError
	return errors.As(err, &target)
}

// Store reads and writes one JSON registry file.
// Read-modify-write cycles go through Update, which holds an advisory lock
// on {file}.lock so concurrent nvmd processes do not interleave writes.
type Store[T any] struct {
	path     string
	fileLock *flock.Flock
}

// NewStore creates a store for the JSON file at path
func NewStore[T any](path string) *Store[T] {
	return &Store[T]{
		path:     path,
		fileLock: flock.New(path + ".lock"),
	}
}

// Path returns the registry file path
func (s *Store[T]) Path() string {
	return s.path
}

// Load reads the registry without locking.
// A missing file yields the zero value of T.
func (s *Store[T]) Load() (T, error) {
	var data T

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return data, nil
		}
		return data, &ReadError{Path: s.path, Err: err}
	}

	if err := json.Unmarshal(raw, &data); err != nil {
		return data, &ReadError{Path: s.path, Err: err}
	}

	return data, nil
}

// Save writes the registry atomically under the file lock
func (s *Store[T]) Save(data T) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer func() { _ = s.fileLock.Unlock() }()

	return s.write(data)
}

// Update loads the registry, applies fn and saves the result, all while
// holding the file lock. Nothing is written when fn returns an error.
func (s *Store[T]) Update(fn func(*T) error) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer func() { _ = s.fileLock.Unlock() }()

	data, err := s.Load()
	if err != nil {
		return err
	}

	if err := fn(&data); err != nil {
		return err
	}

	return s.write(data)
}

func (s *Store[T]) lock() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	if err := s.fileLock.Lock(); err != nil {
		return &WriteError{Path: s.path, Err: fmt.Errorf("failed to acquire lock: %w", err)}
	}
	return nil
}

// write marshals data to a temp file next to the target and renames it into place
func (s *Store[T]) write(data T) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, raw, 0644); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return &WriteError{Path: s.path, Err: err}
	}

	return nil
}
