//go:build !flatpak || windows || android || ios || wasm || js

package viewer

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

func (v *Viewer) showOpenDialog() {
	d := dialog.NewFileOpen(v.openChosen, v.win)

	d.SetFilter(storage.NewExtensionFileFilter(v.dialogExtensions()))
	if loc := v.dialogLocation(); loc != nil {
		d.SetLocation(loc)
	}
	d.Show()
}

// openChosen is the open dialog callback. A nil reader means cancel.
func (v *Viewer) openChosen(reader fyne.URIReadCloser, err error) {
	if err != nil {
		v.log.Error().Err(err).Msg("open dialog failed")
		dialog.ShowError(err, v.win)
		return
	}
	if reader == nil {
		return
	}
	path := reader.URI().Path()
	if err := reader.Close(); err != nil {
		v.log.Debug().Err(err).Str("path", path).Msg("closing dialog reader failed")
	}
	v.OpenPath(path)
}

func (v *Viewer) dialogLocation() fyne.ListableURI {
	dir := v.dir
	if dir == "" {
		dir = v.StartupPath()
	}
	lister, err := storage.ListerForURI(storage.NewFileURI(dir))
	if err != nil {
		v.log.Debug().Err(err).Str("dir", dir).Msg("no dialog start location")
		return nil
	}
	return lister
}

// dialogExtensions lists each allowed extension in lower and upper case so
// the dialog matches regardless of how the filter compares.
func (v *Viewer) dialogExtensions() []string {
	exts := v.filter.Extensions()
	out := make([]string, 0, 2*len(exts))
	for _, ext := range exts {
		out = append(out, ext, strings.ToUpper(ext))
	}
	return out
}
