// Package library resolves tag identifiers to sound files and decodes them.
package library

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrNotMapped is returned for identifiers without a configured sound.
	ErrNotMapped = errors.New("tag not mapped")

	// ErrMissingFile is returned when the mapped sound is not on disk.
	ErrMissingFile = errors.New("sound file missing")

	// ErrDecode matches every DecodeError.
	ErrDecode = errors.New("cannot decode sound")
)

// DecodeError reports a sound file that exists but cannot be decoded
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// Library maps tag identifiers to files below a sound root. The mapping is
// fixed at construction.
type Library struct {
	root   string
	tags   map[string]string
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string]*predecoded
}

// Entry describes one configured tag
type Entry struct {
	ID     string
	File   string
	Path   string
	Exists bool
}

// New creates a Library rooted at root. tags is copied.
func New(root string, tags map[string]string) *Library {
	copied := make(map[string]string, len(tags))
	for id, file := range tags {
		copied[strings.TrimSpace(id)] = file
	}
	return &Library{
		root:   root,
		tags:   copied,
		logger: slog.With("component", "library"),
		cache:  make(map[string]*predecoded),
	}
}

// Root returns the sound directory
func (l *Library) Root() string {
	return l.root
}

// Len returns the number of mapped tags
func (l *Library) Len() int {
	return len(l.tags)
}

// Resolve returns the path of the sound mapped to id
func (l *Library) Resolve(id string) (string, error) {
	id = strings.TrimSpace(id)
	file, ok := l.tags[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotMapped, id)
	}

	path := l.path(file)
	if !exists(path) {
		return "", fmt.Errorf("%w: %s", ErrMissingFile, path)
	}
	return path, nil
}

// Entries lists the mapping sorted by identifier
func (l *Library) Entries() []Entry {
	entries := make([]Entry, 0, len(l.tags))
	for id, file := range l.tags {
		path := l.path(file)
		entries = append(entries, Entry{ID: id, File: file, Path: path, Exists: exists(path)})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}

func (l *Library) path(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(l.root, file)
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
