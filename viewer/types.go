package viewer

import "errors"

const (
	appTitle      = "imview"
	lastDirKey    = "imview:lastDir"
	defaultWidth  = 1024
	defaultHeight = 768

	msgReady       = "Ready"
	msgNothingOpen = "No image open"
)

// ErrInvalidDrop is returned for dropped items that do not name an existing
// file or directory.
var ErrInvalidDrop = errors.New("invalid dropped path")
