package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bhrdj/zh/internal/clip"
	"github.com/bhrdj/zh/internal/config"
)

type Encoder interface {
	EncodeClip(ctx context.Context, c *clip.Clip, videoPath string, cfg *config.Config) error
	Concatenate(ctx context.Context, segmentPaths []string, finalPath string, tmpDir string) error
}

type FFmpegEncoder struct{}

// EncodeClip streams every output frame of the clip as raw RGBA over
// stdin and muxes the pronunciation repeat schedule alongside it.
// Silent clips get an anullsrc track so the final concat can
// stream-copy uniform segments.
func (e *FFmpegEncoder) EncodeClip(ctx context.Context, c *clip.Clip, videoPath string, cfg *config.Config) error {
	args := buildClipArgs(c, videoPath, cfg)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe error: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start error: %w", err)
	}

	fps := float64(c.FPS())
	for i := 0; i < c.FrameCount(); i++ {
		img, err := c.FrameAt(float64(i) / fps)
		if err != nil {
			stdin.Close()
			cmd.Process.Kill()
			cmd.Wait()
			return fmt.Errorf("frame %d of %q: %w", i, c.Character, err)
		}
		if err := writeRawRGBA(stdin, img); err != nil {
			stdin.Close()
			cmd.Process.Kill()
			cmd.Wait()
			return fmt.Errorf("write raw error: %w", err)
		}
	}
	stdin.Close()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg error for %q: %v\nLog: %s", c.Character, err, out.String())
	}
	return nil
}

func buildClipArgs(c *clip.Clip, videoPath string, cfg *config.Config) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"-framerate", fmt.Sprintf("%d", cfg.FPS),
		"-i", "-",
	}

	if c.Track != nil {
		args = append(args,
			"-i", c.Track.Path,
			"-filter_complex", audioFilterGraph(c.Track.Offsets),
			"-map", "0:v", "-map", "[aout]",
		)
	} else {
		args = append(args,
			"-f", "lavfi", "-i", "anullsrc=channel_layout=stereo:sample_rate=44100",
			"-map", "0:v", "-map", "1:a",
		)
	}

	args = append(args,
		"-t", fmt.Sprintf("%f", c.Duration),
		"-r", fmt.Sprintf("%d", cfg.FPS),
		"-pix_fmt", "yuv420p",
		"-c:v", cfg.VideoEncoder,
	)
	args = append(args, qualityArgs(cfg.VideoEncoder, cfg.Quality)...)
	// Concatenation stream-copies, so every segment must carry the same
	// audio parameters regardless of the recording's native layout.
	args = append(args, "-c:a", "aac", "-ar", "44100", "-ac", "2", videoPath)
	return args
}

// audioFilterGraph realizes the repeat schedule: one input split per
// play offset, delayed and mixed back together, padded with silence to
// the clip end. Repetitions past the nominal end are cut by -t, not
// truncated here.
func audioFilterGraph(offsets []float64) string {
	n := len(offsets)
	if n == 1 {
		return "[1:a]apad[aout]"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[1:a]asplit=%d", n)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "[s%d]", i)
	}
	b.WriteString(";")
	for i, off := range offsets {
		fmt.Fprintf(&b, "[s%d]adelay=%d:all=1[d%d];", i, int(off*1000+0.5), i)
	}
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "[d%d]", i)
	}
	fmt.Fprintf(&b, "amix=inputs=%d:normalize=0[mix];[mix]apad[aout]", n)
	return b.String()
}

func qualityArgs(encoder string, quality int) []string {
	switch encoder {
	case "h264_videotoolbox":
		// VideoToolbox often rejects -q:v; use a bitrate instead.
		bitrate := quality * 100
		return []string{"-b:v", fmt.Sprintf("%dk", bitrate)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default: // libx264
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}

func writeRawRGBA(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 || rgba.Rect.Min.X != 0 || rgba.Rect.Min.Y != 0 {
		// Rasterized frames are already zero-origin RGBA; this path
		// only fires for frame functions producing other image kinds.
		staging := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(staging, staging.Bounds(), img, bounds.Min, draw.Src)
		rgba = staging
	}
	_, err := w.Write(rgba.Pix)
	return err
}

// Concatenate joins the per-character segments with the concat
// demuxer. buildClipArgs pins every segment to the same codecs and
// audio layout, so the streams are copied, not re-encoded.
func (e *FFmpegEncoder) Concatenate(ctx context.Context, segmentPaths []string, finalPath string, tmpDir string) error {
	concatFilePath := filepath.Join(tmpDir, "inputs.txt")
	f, err := os.Create(concatFilePath)
	if err != nil {
		return err
	}
	for _, p := range segmentPaths {
		absPath, _ := filepath.Abs(p)
		fmt.Fprintf(f, "file '%s'\n", absPath)
	}
	f.Close()

	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-f", "concat", "-safe", "0", "-i", concatFilePath,
		"-c", "copy", finalPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg concat error: %v, output: %s", err, string(out))
	}
	return nil
}
