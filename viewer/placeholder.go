package viewer

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"github.com/FyshOS/fancyfs"
)

// placeholder is shown in place of an image that could not be decoded.
type placeholder struct {
	resource fyne.Resource
	file     string
	fill     canvas.ImageFill
}

// placeholderFor prefers the folder background configured for dir and
// falls back to the theme's broken image icon.
func placeholderFor(dir string) placeholder {
	if dir != "" {
		if details, err := fancyfs.DetailsForFolder(storage.NewFileURI(dir)); err == nil && details != nil {
			if details.BackgroundURI != nil {
				return placeholder{file: details.BackgroundURI.Path(), fill: details.BackgroundFill}
			}
			if details.BackgroundResource != nil {
				return placeholder{resource: details.BackgroundResource, fill: canvas.ImageFillContain}
			}
		}
	}
	return placeholder{resource: theme.BrokenImageIcon(), fill: canvas.ImageFillContain}
}
