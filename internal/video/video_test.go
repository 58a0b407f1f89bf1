package video

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/bhrdj/zh/internal/audio"
	"github.com/bhrdj/zh/internal/clip"
	"github.com/bhrdj/zh/internal/config"
)

func TestAudioFilterGraph(t *testing.T) {
	graph := audioFilterGraph([]float64{0, 2.5, 5, 7.5})

	for _, want := range []string{
		"asplit=4",
		"adelay=0:all=1",
		"adelay=2500:all=1",
		"adelay=5000:all=1",
		"adelay=7500:all=1",
		"amix=inputs=4:normalize=0",
		"apad[aout]",
	} {
		if !strings.Contains(graph, want) {
			t.Errorf("graph missing %q:\n%s", want, graph)
		}
	}
}

func TestAudioFilterGraphSingle(t *testing.T) {
	graph := audioFilterGraph([]float64{0})
	if graph != "[1:a]apad[aout]" {
		t.Errorf("graph = %q", graph)
	}
}

func TestBuildClipArgs(t *testing.T) {
	cfg := config.Default()
	track := &audio.Track{Path: "ren2.mp3", Offsets: audio.Plan(clip.TotalDuration)}
	c := clip.New("人", clip.TotalDuration, cfg.FPS, nil, track)

	args := strings.Join(buildClipArgs(c, "out.mp4", cfg), " ")

	for _, want := range []string{
		"-f rawvideo",
		"-video_size 480x720",
		"-framerate 30",
		"-i ren2.mp3",
		"-map [aout]",
		"-crf 23",
		"-c:a aac",
		"-ac 2",
	} {
		if !strings.Contains(args, want) {
			t.Errorf("args missing %q:\n%s", want, args)
		}
	}
}

func TestBuildClipArgsSilent(t *testing.T) {
	cfg := config.Default()
	c := clip.New("人", clip.TotalDuration, cfg.FPS, nil, nil)

	args := strings.Join(buildClipArgs(c, "out.mp4", cfg), " ")

	if !strings.Contains(args, "anullsrc") {
		t.Errorf("silent clip args missing anullsrc:\n%s", args)
	}
	if strings.Contains(args, "filter_complex") {
		t.Errorf("silent clip should not carry a filter graph:\n%s", args)
	}
	// Silent and voiced segments must encode identical audio parameters
	// or the stream-copy concat breaks.
	if !strings.Contains(args, "-ac 2") || !strings.Contains(args, "-ar 44100") {
		t.Errorf("silent clip args missing the pinned audio layout:\n%s", args)
	}
}

func TestWriteRawRGBA(t *testing.T) {
	var buf bytes.Buffer
	rgba := image.NewRGBA(image.Rect(0, 0, 4, 3))
	if err := writeRawRGBA(&buf, rgba); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 4*3*4 {
		t.Errorf("wrote %d bytes, want %d", buf.Len(), 4*3*4)
	}

	// Non-RGBA and offset-origin frames are converted before writing.
	buf.Reset()
	gray := image.NewGray(image.Rect(0, 0, 4, 3))
	gray.SetGray(1, 1, color.Gray{Y: 200})
	if err := writeRawRGBA(&buf, gray); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 4*3*4 {
		t.Errorf("converted write was %d bytes, want %d", buf.Len(), 4*3*4)
	}
	if px := buf.Bytes()[(1*4+1)*4]; px != 200 {
		t.Errorf("converted pixel = %d, want 200", px)
	}

	buf.Reset()
	sub := rgba.SubImage(image.Rect(1, 1, 3, 3))
	if err := writeRawRGBA(&buf, sub); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 2*2*4 {
		t.Errorf("subimage write was %d bytes, want %d", buf.Len(), 2*2*4)
	}
}

func TestQualityArgs(t *testing.T) {
	tests := []struct {
		encoder string
		want    string
	}{
		{"libx264", "-crf 23"},
		{"h264_videotoolbox", "-b:v 2300k"},
		{"h264_nvenc", "-cq 23"},
	}
	for _, tt := range tests {
		got := strings.Join(qualityArgs(tt.encoder, 23), " ")
		if !strings.Contains(got, tt.want) {
			t.Errorf("qualityArgs(%s) = %q, want %q", tt.encoder, got, tt.want)
		}
	}
}
