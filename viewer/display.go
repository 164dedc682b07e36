package viewer

import (
	"image"
	"math"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"golang.org/x/image/draw"
)

// imageView shows one decoded image scaled to the space it is given.
type imageView struct {
	img      *canvas.Image
	content  *fyne.Container
	layout   *resizeLayout
	original image.Image
}

func newImageView(debounce time.Duration) *imageView {
	v := &imageView{img: canvas.NewImageFromImage(nil)}
	v.img.FillMode = canvas.ImageFillContain
	v.img.ScaleMode = canvas.ImageScaleSmooth
	v.layout = &resizeLayout{
		internal:    layout.NewStackLayout(),
		onResize:    v.rescale,
		minInterval: debounce,
	}
	v.content = container.New(v.layout, v.img)
	return v
}

func (v *imageView) setImage(img image.Image) {
	v.original = img
	v.img.Resource = nil
	v.img.File = ""
	v.img.FillMode = canvas.ImageFillContain
	v.img.Image = img
	v.rescale()
	v.img.Refresh()
}

func (v *imageView) setPlaceholder(p placeholder) {
	v.original = nil
	v.img.Image = nil
	v.img.Resource = p.resource
	v.img.File = p.file
	v.img.FillMode = p.fill
	v.img.Refresh()
}

// close cancels a pending rescale; later resizes are ignored.
func (v *imageView) close() {
	v.layout.stop()
}

func (v *imageView) clear() {
	v.original = nil
	v.img.Image = nil
	v.img.Resource = nil
	v.img.File = ""
	v.img.Refresh()
}

// rescale replaces the displayed pixels with a copy of the original that
// fits the current size in device pixels.
func (v *imageView) rescale() {
	if v.original == nil {
		return
	}
	size := v.img.Size()
	scale := float32(1)
	if app := fyne.CurrentApp(); app != nil {
		if c := app.Driver().CanvasForObject(v.img); c != nil {
			scale = c.Scale()
		}
	}
	v.img.Image = ScaleToFit(v.original, int(size.Width*scale), int(size.Height*scale))
	v.img.Refresh()
}

// ScaleToFit returns src shrunk to fit within width x height keeping its
// aspect ratio. Images that already fit, and non-positive bounds, return src
// unchanged.
func ScaleToFit(src image.Image, width, height int) image.Image {
	if src == nil || width <= 0 || height <= 0 {
		return src
	}
	bounds := src.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW == 0 || srcH == 0 || (srcW <= width && srcH <= height) {
		return src
	}

	ratio := math.Min(float64(width)/float64(srcW), float64(height)/float64(srcH))
	dstW := max(1, int(math.Round(float64(srcW)*ratio)))
	dstH := max(1, int(math.Round(float64(srcH)*ratio)))

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}

// resizeLayout wraps a layout and calls onResize when the size really
// changes, at most once per minInterval. Calls inside the interval are
// coalesced into one trailing call.
type resizeLayout struct {
	internal    fyne.Layout
	onResize    func()
	minInterval time.Duration

	lastSize  fyne.Size
	lastFired time.Time
	timer     *time.Timer
	// generation invalidates trailing calls that were already queued when
	// their timer was replaced or stopped.
	generation uint64
	stopped    bool
}

func (r *resizeLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	r.internal.Layout(objects, size)
	if r.onResize == nil || r.stopped {
		return
	}

	// Layouts also run for reasons other than a resize.
	if abs32(size.Width-r.lastSize.Width) < 0.5 && abs32(size.Height-r.lastSize.Height) < 0.5 {
		return
	}
	r.lastSize = size
	r.scheduleResize()
}

func (r *resizeLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	return r.internal.MinSize(objects)
}

func (r *resizeLayout) scheduleResize() {
	r.cancelPending()

	now := time.Now()
	elapsed := now.Sub(r.lastFired)
	if elapsed >= r.minInterval {
		r.lastFired = now
		// Run outside of the layout pass; changing images mid-layout is not safe.
		fyne.Do(r.onResize)
		return
	}

	gen := r.generation
	r.timer = time.AfterFunc(r.minInterval-elapsed, func() {
		fyne.Do(func() {
			if gen != r.generation || r.stopped {
				return
			}
			r.timer = nil
			r.lastFired = time.Now()
			r.onResize()
		})
	})
}

// cancelPending stops the trailing timer and drops any call it already
// queued.
func (r *resizeLayout) cancelPending() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.generation++
}

func (r *resizeLayout) stop() {
	r.stopped = true
	r.cancelPending()
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
