// Package compose lays out the final video frame: character raster on
// top, pinyin and english captions in fixed slots below it.
package compose

import (
	"image"
	"image/color"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
)

// Layout constants, in pixels of the output frame.
const (
	MarginTop = 60
	// CharSize is the square character animation area.
	CharSize = 240

	pinyinFontSize  = 64
	englishFontSize = 48
	pinyinY         = MarginTop + CharSize + 40
	englishY        = pinyinY + pinyinFontSize + 30
)

var (
	bgColor      = color.RGBA{255, 255, 255, 255}
	pinyinColor  = color.RGBA{100, 100, 100, 255}
	englishColor = color.RGBA{80, 80, 80, 255}
)

// ptPerPx converts frame pixels to the point sizes canvas font faces
// expect when rasterizing at one pixel per canvas unit.
const ptPerPx = 72.0 / 25.4

// Composer draws full frames of a fixed size. It holds only read-only
// font resources and is a pure function of its inputs otherwise.
type Composer struct {
	width  int
	height int
	latin  *canvas.FontFamily
}

func New(width, height int, latin *canvas.FontFamily) *Composer {
	return &Composer{width: width, height: height, latin: latin}
}

// Frame composites the character image and whichever captions are
// non-empty. An empty caption leaves its slot blank without shifting
// the other; each element is centered horizontally on its own.
func (c *Composer) Frame(char image.Image, pinyin, english string) (image.Image, error) {
	w, h := float64(c.width), float64(c.height)
	cv := canvas.New(w, h)
	ctx := canvas.NewContext(cv)
	ctx.SetCoordSystem(canvas.CartesianIV)

	ctx.SetFillColor(bgColor)
	ctx.DrawPath(0, 0, canvas.Rectangle(w, h))

	charX := (w - float64(char.Bounds().Dx())) / 2
	ctx.DrawImage(charX, MarginTop, char, canvas.DPMM(1))

	if pinyin != "" {
		c.drawCaption(ctx, pinyin, pinyinFontSize, pinyinY, pinyinColor)
	}
	if english != "" {
		c.drawCaption(ctx, english, englishFontSize, englishY, englishColor)
	}

	return rasterizer.Draw(cv, canvas.DPMM(1), canvas.DefaultColorSpace), nil
}

func (c *Composer) drawCaption(ctx *canvas.Context, text string, sizePx, topY float64, col color.RGBA) {
	face := c.latin.Face(sizePx*ptPerPx, col, canvas.FontRegular, canvas.FontNormal)
	line := canvas.NewTextLine(face, text, canvas.Center)
	baseline := topY + face.Metrics().Ascent
	ctx.DrawText(float64(c.width)/2, baseline, line)
}
