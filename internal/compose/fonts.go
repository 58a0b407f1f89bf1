package compose

import (
	"fmt"
	"os"

	"github.com/tdewolff/canvas"
)

// FontData holds raw font file contents, read once per run and shared
// read-only across workers.
type FontData struct {
	cjk   []byte
	latin []byte
}

// ReadFontData loads both configured font files. Captions need the
// latin font on every clip and the CJK font backs the static-glyph
// fallback, so either file missing is fatal at startup.
func ReadFontData(cjkPath, latinPath string) (*FontData, error) {
	cjk, err := os.ReadFile(cjkPath)
	if err != nil {
		return nil, fmt.Errorf("cjk font: %w", err)
	}
	latin, err := os.ReadFile(latinPath)
	if err != nil {
		return nil, fmt.Errorf("latin font: %w", err)
	}
	return &FontData{cjk: cjk, latin: latin}, nil
}

// FontSet is a parsed pair of font families. Font families keep
// internal shaping caches, so each worker parses its own set from the
// shared bytes rather than sharing one across goroutines.
type FontSet struct {
	CJK   *canvas.FontFamily
	Latin *canvas.FontFamily
}

func (d *FontData) Load() (*FontSet, error) {
	cjk := canvas.NewFontFamily("cjk")
	if err := cjk.LoadFont(d.cjk, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("cjk font: %w", err)
	}
	latin := canvas.NewFontFamily("latin")
	if err := latin.LoadFont(d.latin, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("latin font: %w", err)
	}
	return &FontSet{CJK: cjk, Latin: latin}, nil
}
