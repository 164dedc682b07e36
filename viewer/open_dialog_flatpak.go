//go:build flatpak && !windows && !android && !ios && !wasm && !js

package viewer

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"
	"fyne.io/fyne/v2/storage"

	"github.com/rymdport/portal"
	"github.com/rymdport/portal/filechooser"
)

// showOpenDialog uses the desktop portal; the sandbox cannot see the host
// filesystem through the Fyne dialog.
func (v *Viewer) showOpenDialog() {
	filter := portalFilter(v.filter.Extensions())
	options := &filechooser.OpenFileOptions{
		AcceptLabel:   "Open",
		Filters:       []*filechooser.Filter{filter},
		CurrentFilter: filter,
	}
	dir := v.dir
	if dir == "" {
		dir = v.StartupPath()
	}
	options.CurrentFolder = dir
	windowHandle := windowHandleForPortal(v.win)

	go func() {
		uris, err := filechooser.OpenFile(windowHandle, "Open Image", options)
		if err != nil {
			v.log.Error().Err(err).Msg("portal file chooser failed")
			fyne.Do(func() {
				v.setStatus("Open failed: " + err.Error())
			})
			return
		}
		if len(uris) == 0 {
			return
		}

		uri, err := storage.ParseURI(uris[0])
		fyne.Do(func() {
			if err != nil {
				v.setStatus("Open failed: " + err.Error())
				return
			}
			v.OpenPath(uri.Path())
		})
	}()
}

func windowHandleForPortal(window fyne.Window) string {
	native, ok := window.(driver.NativeWindow)
	if !ok {
		return ""
	}

	windowHandle := ""
	native.RunNative(func(context any) {
		if x11, ok := context.(driver.X11WindowContext); ok {
			windowHandle = portal.FormatX11WindowHandle(x11.WindowHandle)
		}
	})
	return windowHandle
}

func portalFilter(exts []string) *filechooser.Filter {
	rules := make([]filechooser.Rule, 0, 2*len(exts))
	for _, ext := range exts {
		lowercase := filechooser.Rule{Type: filechooser.GlobPattern, Pattern: "*" + strings.ToLower(ext)}
		uppercase := filechooser.Rule{Type: filechooser.GlobPattern, Pattern: "*" + strings.ToUpper(ext)}
		rules = append(rules, lowercase, uppercase)
	}
	return &filechooser.Filter{Name: "Images", Rules: rules}
}
