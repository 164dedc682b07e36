package viewer

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/alexballas/imview/internal/config"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

// imageDir creates dir/name for each name as a small PNG and returns dir.
func imageDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for i, name := range names {
		writePNG(t, filepath.Join(dir, name), 4+i, 3)
	}
	return dir
}

func newTestViewer(t *testing.T) *Viewer {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	v, err := New(a, config.Default(), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(v.Close)
	return v
}
