package navigator

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultExtensions is the allow-list used when no extensions are configured.
var DefaultExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".webp"}

// Filter decides which directory entries are navigable images.
type Filter struct {
	exts   map[string]struct{}
	ignore []glob.Glob
}

// NewFilter builds a filter from an extension allow-list and optional ignore
// globs. Extensions may be given with or without the leading dot and in any
// case. Ignore patterns are matched against the lower-cased base name.
func NewFilter(extensions []string, ignore []string) (*Filter, error) {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	f := &Filter{exts: make(map[string]struct{}, len(extensions))}
	for _, ext := range extensions {
		ext = normalizeExt(ext)
		if ext == "" {
			continue
		}
		f.exts[ext] = struct{}{}
	}
	if len(f.exts) == 0 {
		return nil, fmt.Errorf("no usable extensions in %v", extensions)
	}

	for _, pattern := range ignore {
		g, err := glob.Compile(strings.ToLower(pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		f.ignore = append(f.ignore, g)
	}
	return f, nil
}

// Match reports whether the file name passes the allow-list and no ignore
// pattern.
func (f *Filter) Match(name string) bool {
	lower := strings.ToLower(filepath.Base(name))
	if _, ok := f.exts[filepath.Ext(lower)]; !ok {
		return false
	}
	for _, g := range f.ignore {
		if g.Match(lower) {
			return false
		}
	}
	return true
}

// Extensions returns the sorted allow-list, e.g. for an open-dialog filter.
func (f *Filter) Extensions() []string {
	exts := make([]string, 0, len(f.exts))
	for ext := range f.exts {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
