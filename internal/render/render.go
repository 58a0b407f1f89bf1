// Package render rasterizes a parsed glyph at a point in its animation
// timeline, and draws the static fallback glyph for characters without
// a stroke source.
package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	xdraw "golang.org/x/image/draw"

	"github.com/bhrdj/zh/internal/strokes"
	"github.com/bhrdj/zh/internal/timeline"
)

const (
	// inkWidth matches the stroke-width the animCJK CSS applies to
	// stroke medians, in glyph units.
	inkWidth = 128.0
	// offsetMultiplier sizes the maximum dash offset relative to the
	// declared pathLength. 2x guarantees even short or quirky strokes
	// are fully hidden at progress 0.
	offsetMultiplier = 2
	// supersample renders the glyph at twice the requested pixel size
	// before downscaling.
	supersample = 2

	strokeTolerance = 0.2
)

var (
	ink   = color.RGBA{0, 0, 0, 255}
	guide = color.RGBA{0xcc, 0xcc, 0xcc, 255}
)

// Renderer rasterizes one glyph against one rescaled schedule. It is
// cheap to construct and owned by a single clip; nothing is shared
// across characters.
type Renderer struct {
	glyph *strokes.Glyph
	sched timeline.Schedule
}

func New(glyph *strokes.Glyph, sched timeline.Schedule) (*Renderer, error) {
	if glyph.Width <= 0 || glyph.Height <= 0 {
		return nil, fmt.Errorf("glyph has a degenerate viewBox (%gx%g)", glyph.Width, glyph.Height)
	}
	return &Renderer{glyph: glyph, sched: sched}, nil
}

// Frame draws the glyph at animation time t into a size x size image.
// Not-yet-drawn strokes show only the faint guide fill; partially
// drawn strokes are revealed from their start by dash arithmetic.
func (r *Renderer) Frame(t float64, size int) (image.Image, error) {
	c := canvas.New(r.glyph.Width, r.glyph.Height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // SVG sources use a top-left origin

	ctx.SetFillColor(guide)
	for _, p := range r.glyph.Guides {
		ctx.DrawPath(0, 0, p)
	}

	ctx.SetFillColor(ink)
	for _, s := range r.glyph.Strokes {
		progress := r.sched.Progress(s.Delay, t)
		if progress <= 0 {
			continue
		}
		p, err := revealPath(s, progress)
		if err != nil {
			return nil, err
		}
		if p.Empty() {
			continue
		}
		ctx.DrawPath(0, 0, p)
	}

	res := canvas.DPMM(float64(size*supersample) / r.glyph.Width)
	img := rasterizer.Draw(c, res, canvas.DefaultColorSpace)
	return downscale(img, size), nil
}

// revealPath converts reveal progress into a concrete fill shape: the
// median is dashed so that only its leading portion remains, stroked
// at full width and clipped to the stroke outline.
func revealPath(s strokes.Stroke, progress float64) (*canvas.Path, error) {
	geomLen := s.Median.Length()
	if geomLen <= 0 {
		return nil, fmt.Errorf("stroke with delay %gs has a zero-length median", s.Delay)
	}

	median := s.Median
	if progress < 1 {
		// Dash units in the source are declared pathLength units;
		// canvas dashes in geometric units, so convert.
		maxOffset := float64(offsetMultiplier * s.PathLength)
		unit := geomLen / float64(s.PathLength)
		median = median.Dash(maxOffset*(1-progress)*unit, maxOffset*unit)
		if median.Empty() {
			return median, nil
		}
	}

	p := median.Stroke(inkWidth, canvas.RoundCap, canvas.RoundJoin, strokeTolerance)
	if s.Outline != nil {
		p = p.And(s.Outline)
	}
	return p, nil
}

// StaticGlyph renders the character as a single filled font glyph,
// centered in a size x size square. Used when no stroke source exists;
// the result is constant for the whole animation window.
func StaticGlyph(character string, cjk *canvas.FontFamily, size int) (image.Image, error) {
	if character == "" {
		return nil, fmt.Errorf("empty character")
	}
	s := float64(size)
	c := canvas.New(s, s)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	face := cjk.Face(s*0.8*ptPerPx, ink, canvas.FontRegular, canvas.FontNormal)
	line := canvas.NewTextLine(face, character, canvas.Center)
	baseline := (s + face.Metrics().CapHeight) / 2
	ctx.DrawText(s/2, baseline, line)

	return rasterizer.Draw(c, canvas.DPMM(1), canvas.DefaultColorSpace), nil
}

// ptPerPx converts canvas units (rasterized at one pixel per unit) to
// the point sizes canvas font faces expect.
const ptPerPx = 72.0 / 25.4

func downscale(src *image.RGBA, size int) image.Image {
	if src.Bounds().Dx() == size && src.Bounds().Dy() == size {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}
