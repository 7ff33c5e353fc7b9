// Package viewer shows a rendered figure to the operator and waits until it
// is dismissed.
package viewer

import (
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/disintegration/imaging"
)

// Viewer displays the image at path and blocks until the operator closes it.
type Viewer interface {
	Show(title, path string) error
}

// None never opens a window.
type None struct{}

// Show returns immediately.
func (None) Show(string, string) error { return nil }

// Window shows figures in a single fyne window that is reused across calls.
// Closing the window hides it instead of destroying it.
//
// The fyne event loop must run on the main goroutine (fyne.App.Run), so Show
// has to be called from another goroutine.
type Window struct {
	app fyne.App
	win fyne.Window

	mu      sync.Mutex
	pending chan struct{}
}

// NewWindow creates the reusable window. Call it before app.Run.
func NewWindow(a fyne.App, width, height float32) *Window {
	v := &Window{app: a, win: a.NewWindow("contour-spline")}
	v.win.Resize(fyne.NewSize(width, height))
	v.win.SetCloseIntercept(v.dismiss)
	return v
}

// Show loads path, puts it in the window and waits for the window to close.
func (v *Window) Show(title, path string) error {
	img, err := imaging.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open figure %s: %w", path, err)
	}

	done := make(chan struct{})
	fyne.Do(func() {
		pic := canvas.NewImageFromImage(img)
		pic.FillMode = canvas.ImageFillContain

		v.win.SetTitle(title)
		v.win.SetContent(pic)
		v.win.Show()

		v.mu.Lock()
		v.pending = done
		v.mu.Unlock()
	})

	<-done
	return nil
}

// Quit stops the fyne event loop, which makes app.Run return.
func (v *Window) Quit() {
	fyne.Do(v.app.Quit)
}

func (v *Window) dismiss() {
	v.win.Hide()

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.pending != nil {
		close(v.pending)
		v.pending = nil
	}
}
