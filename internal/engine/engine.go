package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bhrdj/zh/internal/clip"
	"github.com/bhrdj/zh/internal/compose"
	"github.com/bhrdj/zh/internal/config"
	"github.com/bhrdj/zh/internal/deck"
	"github.com/bhrdj/zh/internal/video"
)

// Project drives one output video: clip assembly per record, segment
// encoding, final concatenation.
type Project struct {
	Config  *config.Config
	Encoder video.Encoder
}

func NewProject(cfg *config.Config, enc video.Encoder) *Project {
	return &Project{Config: cfg, Encoder: enc}
}

// Playable filters out records without a pinyin transcription. Those
// are a documented exclusion, counted but never treated as errors.
func Playable(records []deck.Record) (kept []deck.Record, skipped int) {
	for _, r := range records {
		if r.Pinyin == "" {
			skipped++
			continue
		}
		kept = append(kept, r)
	}
	return kept, skipped
}

// newFontPool parses n independent font sets from the shared bytes.
// Font families keep internal shaping caches, so each worker checks a
// set out for the duration of its record and returns it after.
func newFontPool(data *compose.FontData, n int) (chan *compose.FontSet, error) {
	pool := make(chan *compose.FontSet, n)
	for i := 0; i < n; i++ {
		fonts, err := data.Load()
		if err != nil {
			return nil, err
		}
		pool <- fonts
	}
	return pool, nil
}

// Run produces one video from the given records. Workers assemble and
// encode segments concurrently; each record gets its own clip and a
// checked-out font set, so no mutable state crosses goroutines. The
// first fatal error cancels the rest of the batch.
func (p *Project) Run(ctx context.Context, records []deck.Record, output string) error {
	startTime := time.Now()

	kept, skipped := Playable(records)
	if skipped > 0 {
		fmt.Printf("[*] Skipped %d record(s) without pinyin\n", skipped)
	}
	if len(kept) == 0 {
		return fmt.Errorf("no renderable records")
	}

	fontData, err := compose.ReadFontData(p.Config.CJKFontPath, p.Config.LatinFontPath)
	if err != nil {
		return err
	}
	workers := p.Config.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(kept) {
		workers = len(kept)
	}
	fontSets, err := newFontPool(fontData, workers)
	if err != nil {
		return err
	}

	tempDir, err := os.MkdirTemp("", "zh_")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tempDir)

	fmt.Printf("[*] %d cards | %dx%d @ %d FPS | %s\n",
		len(kept), p.Config.Width, p.Config.Height, p.Config.FPS, p.Config.VideoEncoder)

	results := make([]string, len(kept))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, rec := range kept {
		g.Go(func() error {
			fonts := <-fontSets
			defer func() { fontSets <- fonts }()
			c, err := clip.Build(rec, p.Config, fonts)
			if err != nil {
				return err
			}
			segPath := filepath.Join(tempDir, fmt.Sprintf("s%d.mp4", i))
			if err := p.Encoder.EncodeClip(gctx, c, segPath, p.Config); err != nil {
				return err
			}
			results[i] = segPath
			fmt.Printf("[>] Ready: %d/%d (%s %s)\n", i+1, len(kept), rec.Character, rec.Pinyin)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("[*] Concatenating %d clips...\n", len(results))
	if err := p.Encoder.Concatenate(ctx, results, output, tempDir); err != nil {
		return fmt.Errorf("final assembly: %w", err)
	}

	fmt.Printf("[*] %s done in %.1fs\n", output, time.Since(startTime).Seconds())
	return nil
}
