package viewer

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
)

func writePNG(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "figure.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewGray(image.Rect(0, 0, 8, 4))); err != nil {
		t.Fatal(err)
	}
	return path
}

func (v *Window) showing() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pending != nil
}

func TestNone(t *testing.T) {
	var v Viewer = None{}
	if err := v.Show("anything", "/does/not/exist.png"); err != nil {
		t.Errorf("None.Show: %v", err)
	}
}

func TestWindow_ShowBlocksUntilClosed(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	v := NewWindow(a, 300, 150)
	path := writePNG(t)

	for round := 0; round < 2; round++ {
		done := make(chan error, 1)
		go func() { done <- v.Show("Contorno", path) }()

		deadline := time.Now().Add(5 * time.Second)
		for !v.showing() {
			if time.Now().After(deadline) {
				t.Fatal("window never shown")
			}
			time.Sleep(5 * time.Millisecond)
		}

		select {
		case <-done:
			t.Fatal("Show returned before the window was closed")
		default:
		}

		if got := v.win.Title(); got != "Contorno" {
			t.Errorf("title: got %q, want Contorno", got)
		}

		v.dismiss()

		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Show: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("Show did not return after close")
		}
	}
}

func TestWindow_ShowMissingFile(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	v := NewWindow(a, 300, 150)
	if err := v.Show("x", filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Show should fail for a missing figure")
	}
}
