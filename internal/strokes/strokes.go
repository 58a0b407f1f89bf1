// Package strokes extracts stroke-order animation data from animCJK
// style SVG sources. The embedded CSS animation (a per-stroke "--d"
// delay variable plus a pathLength used for dash arithmetic) is turned
// into a structured glyph: background guide paths plus one median and
// optional outline path per animated stroke. The CSS itself is
// discarded; all visual parameters are recomputed at render time.
package strokes

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/tdewolff/canvas"
)

// StrokeDuration is the draw time of a single stroke in the source's
// original timeline. It is a property of the animCJK convention, not
// of any individual file.
const StrokeDuration = 0.8

// Stroke is one animated pen movement.
type Stroke struct {
	// Delay is the start offset in seconds in the source's original,
	// un-rescaled timeline.
	Delay float64
	// PathLength is the declared SVG pathLength attribute; dash
	// offsets in the source are expressed in these units.
	PathLength int
	// Median is the stroke's center line, drawn progressively.
	Median *canvas.Path
	// Outline clips the stroked median to the stroke's true shape.
	// May be nil when the source declares no matching clip path.
	Outline *canvas.Path
}

// Glyph is a parsed character source.
type Glyph struct {
	Width  float64
	Height float64
	// Guides are the background outline paths rendered as a faint
	// full-character hint under the animation.
	Guides  []*canvas.Path
	Strokes []Stroke
}

// Delays returns the per-stroke start offsets in source order.
func (g *Glyph) Delays() []float64 {
	delays := make([]float64, len(g.Strokes))
	for i, s := range g.Strokes {
		delays[i] = s.Delay
	}
	return delays
}

// Locate resolves the SVG source for a character by its first code
// point. A miss is the static-glyph fallback signal, not an error.
func Locate(dir, character string) (string, bool) {
	runes := []rune(character)
	if len(runes) == 0 {
		return "", false
	}
	path := filepath.Join(dir, fmt.Sprintf("%d.svg", runes[0]))
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

func ParseFile(path string) (*Glyph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

var (
	delayRe   = regexp.MustCompile(`--d:\s*([0-9.]+)s`)
	clipRefRe = regexp.MustCompile(`url\(#([^)]+)\)`)
)

// Parse reads one SVG document. A document with no animated strokes
// yields an empty Strokes slice and no error; malformed markup or an
// unparsable path on a recognized stroke is an error.
func Parse(data []byte) (*Glyph, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	g := &Glyph{Width: 1024, Height: 1024}

	clips := map[string]*canvas.Path{}
	clipRefs := map[int]string{} // stroke index -> clipPath id
	var inClip string

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid svg markup: %w", err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "svg":
				if w, h, ok := parseViewBox(attr(el, "viewBox")); ok {
					g.Width, g.Height = w, h
				}
			case "clipPath":
				inClip = attr(el, "id")
			case "path":
				if err := g.addPath(el, inClip, clips, clipRefs); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if el.Name.Local == "clipPath" {
				inClip = ""
			}
		}
	}

	// Clip definitions may follow the strokes that reference them.
	for i, id := range clipRefs {
		g.Strokes[i].Outline = clips[id]
	}
	return g, nil
}

func (g *Glyph) addPath(el xml.StartElement, inClip string, clips map[string]*canvas.Path, clipRefs map[int]string) error {
	d := attr(el, "d")
	if inClip != "" {
		p, err := canvas.ParseSVGPath(d)
		if err != nil {
			return fmt.Errorf("clip path %q: %w", inClip, err)
		}
		clips[inClip] = p
		return nil
	}

	m := delayRe.FindStringSubmatch(attr(el, "style"))
	plenAttr := attr(el, "pathLength")
	if m != nil && plenAttr != "" {
		delay, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return fmt.Errorf("stroke delay %q: %w", m[1], err)
		}
		plen, err := strconv.Atoi(plenAttr)
		if err != nil || plen <= 0 {
			return fmt.Errorf("stroke pathLength %q is not a positive integer", plenAttr)
		}
		median, err := canvas.ParseSVGPath(d)
		if err != nil {
			return fmt.Errorf("stroke path: %w", err)
		}
		if ref := clipRefRe.FindStringSubmatch(attr(el, "clip-path")); ref != nil {
			clipRefs[len(g.Strokes)] = ref[1]
		}
		g.Strokes = append(g.Strokes, Stroke{Delay: delay, PathLength: plen, Median: median})
		return nil
	}

	if attr(el, "id") != "" {
		p, err := canvas.ParseSVGPath(d)
		if err != nil {
			return fmt.Errorf("guide path: %w", err)
		}
		g.Guides = append(g.Guides, p)
	}
	// Paths with neither animation nor id are static decoration and
	// carry no stroke semantics; skip them.
	return nil
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func parseViewBox(s string) (w, h float64, ok bool) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return 0, 0, false
	}
	vals := make([]float64, 4)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, 0, false
		}
		vals[i] = v
	}
	w, h = vals[2]-vals[0], vals[3]-vals[1]
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}
