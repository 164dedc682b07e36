// Package navigator indexes the images of a single directory and steps
// through them with wraparound.
//
// A Navigator is a snapshot: the listing is taken once by New and never
// refreshed. Callers that want to see new files build a new Navigator.
package navigator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

var (
	// ErrNotFound is returned when the requested initial file is not among
	// the filtered directory entries.
	ErrNotFound = errors.New("file not found in directory listing")
	// ErrEmptyDirectory is returned when a directory holds no matching files.
	ErrEmptyDirectory = errors.New("directory contains no images")
)

// Navigator holds the ordered image entries of one directory and the
// currently selected position.
type Navigator struct {
	dir     string
	entries []string
	index   int
}

type options struct {
	extensions []string
	ignore     []string
	filter     *Filter
}

// Option configures New.
type Option func(*options)

// WithExtensions replaces the default extension allow-list.
func WithExtensions(exts ...string) Option {
	return func(o *options) {
		o.extensions = exts
	}
}

// WithIgnore excludes file names matching any of the glob patterns.
func WithIgnore(patterns ...string) Option {
	return func(o *options) {
		o.ignore = patterns
	}
}

// WithFilter uses a prebuilt filter and takes precedence over
// WithExtensions and WithIgnore.
func WithFilter(f *Filter) Option {
	return func(o *options) {
		o.filter = f
	}
}

// New lists dir and positions the navigator on initial. An empty initial
// selects the first entry. A relative initial is resolved against dir.
func New(dir, initial string, opts ...Option) (*Navigator, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	filter := o.filter
	if filter == nil {
		var err error
		filter, err = NewFilter(o.extensions, o.ignore)
		if err != nil {
			return nil, err
		}
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve directory %q: %w", dir, err)
	}

	entries, err := scan(absDir, filter)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDirectory, absDir)
	}

	n := &Navigator{dir: absDir, entries: entries}
	if initial == "" {
		return n, nil
	}

	target := initial
	if !filepath.IsAbs(target) {
		target = filepath.Join(absDir, target)
	}
	target = filepath.Clean(target)
	for i, e := range entries {
		if e == target {
			n.index = i
			return n, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, target)
}

// Open builds a navigator for path. A directory opens at its first image;
// a file opens its parent directory positioned on that file.
func Open(path string, opts ...Option) (*Navigator, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path %q: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	if info.IsDir() {
		return New(abs, "", opts...)
	}
	return New(filepath.Dir(abs), abs, opts...)
}

func scan(dir string, filter *Filter) ([]string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %q: %w", dir, err)
	}

	var entries []string
	for _, de := range dirEntries {
		if !filter.Match(de.Name()) {
			continue
		}
		path := filepath.Join(dir, de.Name())
		switch {
		case de.Type().IsRegular():
		case de.Type()&os.ModeSymlink != 0:
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		default:
			continue
		}
		entries = append(entries, path)
	}

	// os.ReadDir already sorts by name; keep the order explicit.
	sort.SliceStable(entries, func(i, j int) bool {
		return filepath.Base(entries[i]) < filepath.Base(entries[j])
	})
	return entries, nil
}

// Dir returns the absolute directory the navigator indexes.
func (n *Navigator) Dir() string {
	return n.dir
}

// Len returns the number of entries.
func (n *Navigator) Len() int {
	return len(n.entries)
}

// Index returns the current position.
func (n *Navigator) Index() int {
	return n.index
}

// Entries returns a copy of the ordered entries.
func (n *Navigator) Entries() []string {
	out := make([]string, len(n.entries))
	copy(out, n.entries)
	return out
}

// Current returns the absolute path of the selected entry.
func (n *Navigator) Current() string {
	return n.entries[n.index]
}

// Next advances one entry, wrapping from last to first.
func (n *Navigator) Next() string {
	return n.step(1)
}

// Previous steps back one entry, wrapping from first to last.
func (n *Navigator) Previous() string {
	return n.step(-1)
}

// First selects the first entry.
func (n *Navigator) First() string {
	n.index = 0
	return n.Current()
}

// Last selects the last entry.
func (n *Navigator) Last() string {
	n.index = len(n.entries) - 1
	return n.Current()
}

// Peek returns the entry offset positions away without moving.
func (n *Navigator) Peek(offset int) string {
	return n.entries[mod(n.index+offset, len(n.entries))]
}

func (n *Navigator) step(delta int) string {
	n.index = mod(n.index+delta, len(n.entries))
	return n.Current()
}

// mod is a remainder that is never negative for positive n.
func mod(i, n int) int {
	return ((i % n) + n) % n
}
