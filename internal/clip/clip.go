// Package clip assembles one finished per-character clip: a continuous
// frame function over the clip's fixed timeline plus the audio repeat
// schedule. The encoder pulls frames; nothing here touches disk.
package clip

import (
	"fmt"
	"image"
	"math"

	"github.com/bhrdj/zh/internal/audio"
	"github.com/bhrdj/zh/internal/compose"
	"github.com/bhrdj/zh/internal/config"
	"github.com/bhrdj/zh/internal/deck"
	"github.com/bhrdj/zh/internal/render"
	"github.com/bhrdj/zh/internal/strokes"
	"github.com/bhrdj/zh/internal/timeline"
)

// Clip timeline, in seconds. Four equal quarters: animation, hold with
// pinyin, hold with pinyin+english, review hold.
const (
	AnimDuration  = 2.5
	CycleDuration = 5.0
	TotalDuration = 10.0
)

// Visibility gates the captions on elapsed clip time. Both transitions
// are monotonic: once shown, a caption stays shown.
func Visibility(t float64) (pinyin, english bool) {
	return t >= AnimDuration, t >= CycleDuration
}

// FrameFunc produces the frame for an elapsed clip time.
type FrameFunc func(t float64) (image.Image, error)

// Clip is one character's finished segment, ready for encoding.
type Clip struct {
	Character string
	Duration  float64
	Track     *audio.Track

	fps   int
	frame FrameFunc

	// Encoding samples times in increasing order, so one retained
	// frame absorbs every repeated lookup without holding the whole
	// clip in memory.
	lastKey int
	lastImg image.Image
}

// New wraps a frame function with a per-clip cache quantized to the
// output frame rate. The cache is owned by this clip alone and must
// not be shared across characters.
func New(character string, duration float64, fps int, frame FrameFunc, track *audio.Track) *Clip {
	return &Clip{
		Character: character,
		Duration:  duration,
		Track:     track,
		fps:       fps,
		frame:     frame,
		lastKey:   -1,
	}
}

// FrameAt returns the frame for time t, reusing the last rendered
// raster when t rounds to the same output frame index.
func (c *Clip) FrameAt(t float64) (image.Image, error) {
	key := int(math.Round(t * float64(c.fps)))
	if key == c.lastKey && c.lastImg != nil {
		return c.lastImg, nil
	}
	img, err := c.frame(t)
	if err != nil {
		return nil, err
	}
	c.lastKey, c.lastImg = key, img
	return img, nil
}

// FrameCount is the number of output frames the encoder should pull.
func (c *Clip) FrameCount() int {
	return int(math.Round(c.Duration * float64(c.fps)))
}

// FPS returns the clip's output frame rate.
func (c *Clip) FPS() int { return c.fps }

// Build assembles the clip for one record. Recoverable gaps (no SVG,
// no audio) fall back below this boundary; a located-but-malformed
// source is returned as an error and aborts the batch.
func Build(rec deck.Record, cfg *config.Config, fonts *compose.FontSet) (*Clip, error) {
	comp := compose.New(cfg.Width, cfg.Height, fonts.Latin)

	charFrame, err := characterFrameFunc(rec.Character, cfg.SVGDir, fonts)
	if err != nil {
		return nil, err
	}

	track := audio.Resolve(cfg.AudioDir, rec.Pinyin, TotalDuration)

	frame := func(t float64) (image.Image, error) {
		char, err := charFrame(math.Min(t, AnimDuration))
		if err != nil {
			return nil, err
		}
		showPinyin, showEnglish := Visibility(t)
		pinyin, english := "", ""
		if showPinyin {
			pinyin = rec.Pinyin
		}
		if showEnglish {
			english = rec.English
		}
		return comp.Frame(char, pinyin, english)
	}

	return New(rec.Character, TotalDuration, cfg.FPS, frame, track), nil
}

// characterFrameFunc picks the animated renderer when a usable stroke
// source exists, the constant static glyph otherwise.
func characterFrameFunc(character, svgDir string, fonts *compose.FontSet) (FrameFunc, error) {
	if path, ok := strokes.Locate(svgDir, character); ok {
		glyph, err := strokes.ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("stroke source for %q: %w", character, err)
		}
		if len(glyph.Strokes) > 0 {
			sched := timeline.Rescale(glyph.Delays(), strokes.StrokeDuration, AnimDuration)
			r, err := render.New(glyph, sched)
			if err != nil {
				return nil, fmt.Errorf("renderer for %q: %w", character, err)
			}
			return func(t float64) (image.Image, error) {
				return r.Frame(t, compose.CharSize)
			}, nil
		}
		fmt.Printf("[!] %s has no animated strokes, using static glyph\n", path)
	} else {
		fmt.Printf("[!] No SVG for %s, using static glyph\n", character)
	}

	static, err := render.StaticGlyph(character, fonts.CJK, compose.CharSize)
	if err != nil {
		return nil, fmt.Errorf("static glyph for %q: %w", character, err)
	}
	return func(float64) (image.Image, error) { return static, nil }, nil
}
