// Package viewer is the Fyne window around a directory navigator: it opens
// files from a dialog, the command line or a drop, steps through the
// directory and shows each image scaled to the window.
package viewer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/alexballas/imview/internal/config"
	"github.com/alexballas/imview/internal/logger"
	"github.com/alexballas/imview/navigator"
)

// Viewer owns the main window and the navigator of the open directory.
type Viewer struct {
	app    fyne.App
	win    fyne.Window
	cfg    config.Config
	filter *navigator.Filter
	log    zerolog.Logger

	// nav is replaced on every open; nil while nothing is shown.
	nav *navigator.Navigator
	dir string

	view    *imageView
	status  *widget.Label
	loader  *imageLoader
	watcher *dirWatcher

	commands map[string]*command
	keys     map[fyne.KeyName]string
}

// New creates the viewer window. It does not show it.
func New(a fyne.App, cfg config.Config, log zerolog.Logger) (*Viewer, error) {
	filter, err := cfg.Filter()
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		app:    a,
		cfg:    cfg,
		filter: filter,
		log:    logger.Component(log, "viewer"),
	}

	v.win = a.NewWindow(appTitle)
	width, height := cfg.Window.Width, cfg.Window.Height
	if width <= 0 || height <= 0 {
		width, height = defaultWidth, defaultHeight
	}
	v.win.Resize(fyne.NewSize(width, height))

	v.view = newImageView(cfg.ResizeDebounce)
	v.status = widget.NewLabel(msgReady)
	v.status.Truncation = fyne.TextTruncateEllipsis
	v.loader = newImageLoader(cfg.CacheSize, v.log)

	v.commands = v.buildCommands()
	v.win.SetMainMenu(v.buildMainMenu())
	v.bindShortcuts()
	v.win.SetOnDropped(v.handleDrop)
	v.win.SetContent(container.NewBorder(nil, v.status, nil, nil, v.view.content))
	v.win.SetOnClosed(v.Close)

	return v, nil
}

// Window returns the main window.
func (v *Viewer) Window() fyne.Window {
	return v.win
}

// CurrentPath returns the path of the displayed image, or "" when nothing
// is open.
func (v *Viewer) CurrentPath() string {
	if v.nav == nil {
		return ""
	}
	return v.nav.Current()
}

// OpenPath replaces the navigator with a fresh one for path, which may be a
// file or a directory, and shows its current image. A directory without
// images clears the view. Any other failure leaves the previous state as is.
func (v *Viewer) OpenPath(path string) error {
	nav, err := navigator.Open(path, navigator.WithFilter(v.filter))
	switch {
	case err == nil:
	case errors.Is(err, navigator.ErrEmptyDirectory):
		dir := containingDir(path)
		v.log.Info().Str("dir", dir).Msg("no images in directory")
		v.nav = nil
		v.dir = dir
		v.view.clear()
		v.win.SetTitle(appTitle)
		v.setStatus("No images in " + dir)
		v.watchDir(dir)
		return err
	default:
		v.log.Warn().Err(err).Str("path", path).Msg("open failed")
		v.setStatus("Cannot open: " + err.Error())
		return err
	}

	v.nav = nav
	v.dir = nav.Dir()
	v.app.Preferences().SetString(lastDirKey, v.dir)
	v.log.Info().Str("dir", v.dir).Int("entries", nav.Len()).Msg("opened directory")
	v.watchDir(v.dir)
	v.showCurrent()
	return nil
}

// containingDir is path itself when it names a directory, otherwise the
// directory holding it.
func containingDir(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		return filepath.Dir(abs)
	}
	return abs
}

// Reload re-reads the open directory, staying on the current file when it
// still exists.
func (v *Viewer) Reload() {
	if v.dir == "" {
		v.setStatus(msgNothingOpen)
		return
	}
	target := v.dir
	if current := v.CurrentPath(); current != "" {
		if _, err := os.Stat(current); err == nil {
			target = current
		}
	}
	v.OpenPath(target)
}

// ShowNext displays the next image, wrapping to the first.
func (v *Viewer) ShowNext() {
	v.step((*navigator.Navigator).Next)
}

// ShowPrevious displays the previous image, wrapping to the last.
func (v *Viewer) ShowPrevious() {
	v.step((*navigator.Navigator).Previous)
}

// ShowFirst displays the first image of the directory.
func (v *Viewer) ShowFirst() {
	v.step((*navigator.Navigator).First)
}

// ShowLast displays the last image of the directory.
func (v *Viewer) ShowLast() {
	v.step((*navigator.Navigator).Last)
}

func (v *Viewer) step(move func(*navigator.Navigator) string) {
	if v.nav == nil {
		v.setStatus(msgNothingOpen)
		return
	}
	move(v.nav)
	v.showCurrent()
}

func (v *Viewer) showCurrent() {
	path := v.nav.Current()
	name := filepath.Base(path)
	position := fmt.Sprintf("%d/%d", v.nav.Index()+1, v.nav.Len())
	v.win.SetTitle(name + " - " + appTitle)

	img, err := v.loader.Load(path)
	if err != nil {
		v.log.Warn().Err(err).Str("path", path).Msg("cannot display image")
		v.view.setPlaceholder(placeholderFor(v.dir))
		v.setStatus(fmt.Sprintf("%s  %s  cannot display image", position, name))
		return
	}

	v.view.setImage(img)
	b := img.Bounds()
	v.setStatus(fmt.Sprintf("%s  %s  %d×%d", position, name, b.Dx(), b.Dy()))
	if v.nav.Len() > 1 {
		v.loader.Prefetch(v.nav.Peek(-1), v.nav.Peek(1))
	}
}

func (v *Viewer) setStatus(msg string) {
	v.status.SetText(msg)
}

// watchDir follows dir when watching is enabled, replacing any previous
// watcher.
func (v *Viewer) watchDir(dir string) {
	if !v.cfg.Watch {
		return
	}
	if v.watcher != nil {
		if v.watcher.dir == dir {
			return
		}
		v.watcher.Close()
		v.watcher = nil
	}

	w, err := newDirWatcher(dir, watchSettle, func() {
		fyne.Do(v.Reload)
	}, v.log)
	if err != nil {
		v.log.Warn().Err(err).Str("dir", dir).Msg("directory watch disabled")
		return
	}
	v.watcher = w
}

// StartupPath is the directory opened when no path is given: the last
// directory used, else ~/Pictures, else the home directory.
func (v *Viewer) StartupPath() string {
	if dir := v.app.Preferences().String(lastDirKey); dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	pictures := filepath.Join(home, "Pictures")
	if info, err := os.Stat(pictures); err == nil && info.IsDir() {
		return pictures
	}
	return home
}

// Close releases the watcher, the prefetch worker and any pending rescale.
func (v *Viewer) Close() {
	v.view.close()
	if v.watcher != nil {
		v.watcher.Close()
		v.watcher = nil
	}
	v.loader.Close()
}
