package render

import (
	"image"
	"testing"

	"github.com/bhrdj/zh/internal/strokes"
	"github.com/bhrdj/zh/internal/timeline"
)

const sampleSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1024 1024">
<path id="b1" d="M100 300L900 300L900 500L100 500Z"/>
<path style="--d:0s;" pathLength="3333" clip-path="url(#c1)" d="M100 400L900 400"/>
<path style="--d:0.8s;" pathLength="3333" clip-path="url(#c2)" d="M512 100L512 900"/>
<clipPath id="c1"><path d="M100 300L900 300L900 500L100 500Z"/></clipPath>
<clipPath id="c2"><path d="M420 100L600 100L600 900L420 900Z"/></clipPath>
</svg>`

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	g, err := strokes.Parse([]byte(sampleSVG))
	if err != nil {
		t.Fatal(err)
	}
	sched := timeline.Rescale(g.Delays(), strokes.StrokeDuration, 2.5)
	r, err := New(g, sched)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func darkPixels(img image.Image) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r < 0x6000 && g < 0x6000 && bl < 0x6000 {
				n++
			}
		}
	}
	return n
}

func TestFrameRevealProgression(t *testing.T) {
	r := testRenderer(t)

	before, err := r.Frame(0, 64)
	if err != nil {
		t.Fatal(err)
	}
	after, err := r.Frame(2.5, 64)
	if err != nil {
		t.Fatal(err)
	}

	if b := before.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Errorf("frame size = %dx%d, want 64x64", b.Dx(), b.Dy())
	}
	// At the start only the faint guide is visible.
	if n := darkPixels(before); n != 0 {
		t.Errorf("frame at t=0 has %d inked pixels, want 0", n)
	}
	// At the end both strokes are fully drawn.
	if n := darkPixels(after); n == 0 {
		t.Error("frame at the animation end has no inked pixels")
	}
}

func TestFrameInkGrowsMonotonically(t *testing.T) {
	r := testRenderer(t)

	prev := -1
	for _, tm := range []float64{0, 0.6, 1.25, 1.9, 2.5} {
		img, err := r.Frame(tm, 64)
		if err != nil {
			t.Fatal(err)
		}
		n := darkPixels(img)
		if n < prev {
			t.Errorf("ink shrank at t=%g: %d < %d", tm, n, prev)
		}
		prev = n
	}
}

func TestNewRejectsDegenerateViewBox(t *testing.T) {
	g := &strokes.Glyph{Width: 0, Height: 1024}
	if _, err := New(g, timeline.Schedule{}); err == nil {
		t.Error("expected an error for a zero-width glyph")
	}
}
