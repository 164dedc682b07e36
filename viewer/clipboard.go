package viewer

import "path/filepath"

// CopyPath puts the absolute path of the current image on the clipboard.
func (v *Viewer) CopyPath() {
	v.copyToClipboard(v.CurrentPath())
}

// CopyName puts the file name of the current image on the clipboard.
func (v *Viewer) CopyName() {
	path := v.CurrentPath()
	if path == "" {
		v.copyToClipboard("")
		return
	}
	v.copyToClipboard(filepath.Base(path))
}

func (v *Viewer) copyToClipboard(text string) {
	if text == "" {
		v.setStatus(msgNothingOpen)
		return
	}
	v.app.Clipboard().SetContent(text)
	v.setStatus("Copied " + text)
}
