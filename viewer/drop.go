package viewer

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"fyne.io/fyne/v2"
)

const fileScheme = "file://"

// ResolveDroppedPath turns a dropped text payload into a local path. A
// file:// prefix is stripped and only the first line of a uri-list is used.
// The literal path is preferred; percent escapes are decoded only when the
// literal path does not exist. The result must exist.
func ResolveDroppedPath(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	if s == "" {
		return "", ErrInvalidDrop
	}

	if strings.HasPrefix(strings.ToLower(s), fileScheme) {
		s = s[len(fileScheme):]
		if strings.HasPrefix(strings.ToLower(s), "localhost/") {
			s = s[len("localhost"):]
		}
		// file:///C:/dir/a.jpg
		if runtime.GOOS == "windows" && len(s) > 2 && s[0] == '/' && s[2] == ':' {
			s = s[1:]
		}
	}

	candidates := []string{s}
	if strings.Contains(s, "%") {
		if unescaped, err := url.PathUnescape(s); err == nil && unescaped != s {
			candidates = append(candidates, unescaped)
		}
	}

	var path string
	for _, c := range candidates {
		path = filepath.Clean(filepath.FromSlash(c))
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidDrop, path)
}

// droppedPath resolves a dropped URI. File URIs already carry an unescaped
// path; anything else is treated as a text payload.
func droppedPath(u fyne.URI) (string, error) {
	if u.Scheme() != "file" {
		return ResolveDroppedPath(u.String())
	}
	path := filepath.Clean(u.Path())
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidDrop, path)
	}
	return path, nil
}

func (v *Viewer) handleDrop(_ fyne.Position, uris []fyne.URI) {
	if len(uris) == 0 {
		return
	}

	path, err := droppedPath(uris[0])
	if err != nil {
		v.log.Info().Err(err).Str("uri", uris[0].String()).Msg("drop rejected")
		v.setStatus(fmt.Sprintf("Cannot open dropped item: %s", uris[0].Name()))
		return
	}
	v.OpenPath(path)
}
