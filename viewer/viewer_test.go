package viewer

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexballas/imview/navigator"
)

func TestOpenPathFileThenNavigate(t *testing.T) {
	dir := imageDir(t, "a.png", "b.png", "c.png")
	v := newTestViewer(t)

	require.NoError(t, v.OpenPath(filepath.Join(dir, "b.png")))
	assert.Equal(t, filepath.Join(dir, "b.png"), v.CurrentPath())
	assert.Equal(t, "b.png - imview", v.win.Title())
	assert.Equal(t, "2/3  b.png  5×3", v.status.Text)
	assert.NotNil(t, v.view.original)

	v.ShowNext()
	assert.Equal(t, filepath.Join(dir, "c.png"), v.CurrentPath())
	v.ShowNext()
	assert.Equal(t, filepath.Join(dir, "a.png"), v.CurrentPath())
	v.ShowPrevious()
	assert.Equal(t, filepath.Join(dir, "c.png"), v.CurrentPath())
	v.ShowFirst()
	assert.Equal(t, filepath.Join(dir, "a.png"), v.CurrentPath())
	v.ShowLast()
	assert.Equal(t, filepath.Join(dir, "c.png"), v.CurrentPath())
}

func TestOpenPathDirectoryStartsAtFirst(t *testing.T) {
	dir := imageDir(t, "b.png", "a.png")
	v := newTestViewer(t)

	require.NoError(t, v.OpenPath(dir))
	assert.Equal(t, filepath.Join(dir, "a.png"), v.CurrentPath())
	assert.Equal(t, dir, v.app.Preferences().String(lastDirKey))
}

func TestOpenPathFailureKeepsState(t *testing.T) {
	dir := imageDir(t, "a.png", "b.png")
	v := newTestViewer(t)
	require.NoError(t, v.OpenPath(dir))
	v.ShowNext()

	err := v.OpenPath(filepath.Join(dir, "missing.png"))
	require.Error(t, err)
	assert.Equal(t, filepath.Join(dir, "b.png"), v.CurrentPath())
	assert.Contains(t, v.status.Text, "Cannot open")
}

func TestOpenPathNonImageFile(t *testing.T) {
	dir := imageDir(t, "a.png")
	notes := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("x"), 0o644))
	v := newTestViewer(t)

	err := v.OpenPath(notes)
	assert.ErrorIs(t, err, navigator.ErrNotFound)
	assert.Empty(t, v.CurrentPath())
}

func TestOpenPathEmptyDirectory(t *testing.T) {
	full := imageDir(t, "a.png")
	empty := t.TempDir()
	v := newTestViewer(t)
	require.NoError(t, v.OpenPath(full))

	err := v.OpenPath(empty)
	assert.ErrorIs(t, err, navigator.ErrEmptyDirectory)
	assert.Empty(t, v.CurrentPath())
	assert.Nil(t, v.view.original)
	assert.Equal(t, appTitle, v.win.Title())

	v.ShowNext()
	assert.Equal(t, msgNothingOpen, v.status.Text)
}

func TestOpenPathFileInFolderWithoutImages(t *testing.T) {
	dir := t.TempDir()
	notes := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("x"), 0o644))
	v := newTestViewer(t)

	err := v.OpenPath(notes)
	assert.ErrorIs(t, err, navigator.ErrEmptyDirectory)
	assert.Equal(t, dir, v.dir)
	assert.Equal(t, "No images in "+dir, v.status.Text)

	writePNG(t, filepath.Join(dir, "a.png"), 2, 2)
	v.Reload()
	assert.Equal(t, filepath.Join(dir, "a.png"), v.CurrentPath())
}

func TestCloseStopsPendingRescale(t *testing.T) {
	v := newTestViewer(t)
	v.Close()
	assert.True(t, v.view.layout.stopped)
	assert.Nil(t, v.view.layout.timer)
}

func TestCorruptImageShowsPlaceholder(t *testing.T) {
	dir := imageDir(t, "a.png")
	bad := filepath.Join(dir, "b.png")
	require.NoError(t, os.WriteFile(bad, []byte("not a png"), 0o644))
	v := newTestViewer(t)

	require.NoError(t, v.OpenPath(bad))
	assert.Equal(t, bad, v.CurrentPath())
	assert.Nil(t, v.view.original)
	assert.NotNil(t, v.view.img.Resource)
	assert.Contains(t, v.status.Text, "cannot display image")

	v.ShowNext()
	assert.NotNil(t, v.view.original)
}

func TestNavigationWithoutDirectory(t *testing.T) {
	v := newTestViewer(t)

	v.ShowNext()
	assert.Equal(t, msgNothingOpen, v.status.Text)
	v.Reload()
	assert.Equal(t, msgNothingOpen, v.status.Text)
}

func TestReloadPicksUpNewFiles(t *testing.T) {
	dir := imageDir(t, "b.png")
	v := newTestViewer(t)
	require.NoError(t, v.OpenPath(dir))

	writePNG(t, filepath.Join(dir, "a.png"), 2, 2)
	v.Reload()
	assert.Equal(t, filepath.Join(dir, "b.png"), v.CurrentPath())
	assert.Equal(t, 2, v.nav.Len())

	require.NoError(t, os.Remove(filepath.Join(dir, "b.png")))
	v.Reload()
	assert.Equal(t, filepath.Join(dir, "a.png"), v.CurrentPath())
}

func TestCopyPathAndName(t *testing.T) {
	dir := imageDir(t, "a.png")
	v := newTestViewer(t)

	v.CopyPath()
	assert.Equal(t, msgNothingOpen, v.status.Text)

	require.NoError(t, v.OpenPath(dir))
	v.CopyPath()
	assert.Equal(t, filepath.Join(dir, "a.png"), v.app.Clipboard().Content())
	v.CopyName()
	assert.Equal(t, "a.png", v.app.Clipboard().Content())
	assert.Equal(t, "Copied a.png", v.status.Text)
}

func TestDispatch(t *testing.T) {
	dir := imageDir(t, "a.png", "b.png", "c.png")
	v := newTestViewer(t)
	require.NoError(t, v.OpenPath(dir))

	assert.True(t, v.Dispatch(CmdNext))
	assert.Equal(t, filepath.Join(dir, "b.png"), v.CurrentPath())
	assert.True(t, v.Dispatch(CmdLast))
	assert.Equal(t, filepath.Join(dir, "c.png"), v.CurrentPath())
	assert.True(t, v.Dispatch(CmdFirst))
	assert.True(t, v.Dispatch(CmdPrevious))
	assert.Equal(t, filepath.Join(dir, "c.png"), v.CurrentPath())

	assert.False(t, v.Dispatch("rotate"))
}

func TestTypedKeys(t *testing.T) {
	dir := imageDir(t, "a.png", "b.png", "c.png")
	v := newTestViewer(t)
	require.NoError(t, v.OpenPath(dir))

	tests := []struct {
		key  fyne.KeyName
		want string
	}{
		{fyne.KeyRight, "b.png"},
		{fyne.KeySpace, "c.png"},
		{fyne.KeyPageDown, "a.png"},
		{fyne.KeyLeft, "c.png"},
		{fyne.KeyBackspace, "b.png"},
		{fyne.KeyHome, "a.png"},
		{fyne.KeyEnd, "c.png"},
		{fyne.KeyPageUp, "b.png"},
		{fyne.KeyUp, "b.png"},
	}
	for _, tt := range tests {
		v.typedKey(&fyne.KeyEvent{Name: tt.key})
		assert.Equal(t, filepath.Join(dir, tt.want), v.CurrentPath(), "after %s", tt.key)
	}
	v.typedKey(nil)
}

func TestMainMenu(t *testing.T) {
	v := newTestViewer(t)
	menu := v.buildMainMenu()

	require.Len(t, menu.Items, 3)
	assert.Equal(t, "File", menu.Items[0].Label)
	quit := menu.Items[0].Items[len(menu.Items[0].Items)-1]
	assert.True(t, quit.IsQuit)
	assert.NotNil(t, menu.Items[1].Items[0].Shortcut)
}

func TestStartupPathPrefersLastDirectory(t *testing.T) {
	dir := t.TempDir()
	v := newTestViewer(t)

	v.app.Preferences().SetString(lastDirKey, dir)
	assert.Equal(t, dir, v.StartupPath())

	v.app.Preferences().SetString(lastDirKey, filepath.Join(dir, "gone"))
	assert.NotEqual(t, filepath.Join(dir, "gone"), v.StartupPath())
}

func TestDialogExtensions(t *testing.T) {
	v := newTestViewer(t)
	exts := v.dialogExtensions()
	assert.Contains(t, exts, ".png")
	assert.Contains(t, exts, ".PNG")
	assert.Len(t, exts, 2*len(navigator.DefaultExtensions))
}
