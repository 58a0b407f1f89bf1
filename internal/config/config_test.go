package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileApply(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zh.yaml")
	src := `
svg_dir: /data/svgs
fps: 24
quality: 18
columns:
  character: hanzi
  pinyin: reading
`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	cfg := Default()
	f.Apply(cfg)

	if cfg.SVGDir != "/data/svgs" {
		t.Errorf("SVGDir = %q", cfg.SVGDir)
	}
	if cfg.FPS != 24 || cfg.Quality != 18 {
		t.Errorf("FPS, Quality = %d, %d, want 24, 18", cfg.FPS, cfg.Quality)
	}
	if cfg.CharColumn != "hanzi" || cfg.PinyinColumn != "reading" {
		t.Errorf("columns = %q, %q", cfg.CharColumn, cfg.PinyinColumn)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Width != 480 || cfg.Height != 720 {
		t.Errorf("Width, Height = %d, %d, want 480, 720", cfg.Width, cfg.Height)
	}
	if cfg.EnglishColumn != "english" {
		t.Errorf("EnglishColumn = %q", cfg.EnglishColumn)
	}
}

func TestLoadFileBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zh.yaml")
	if err := os.WriteFile(path, []byte("fps: [not a number"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected an error for malformed yaml")
	}
}
