package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config holds the fully resolved settings for one run. Defaults are
// layered with an optional YAML file and command-line flags in main;
// everything downstream receives this struct and never consults the
// environment on its own.
type Config struct {
	SVGDir        string
	AudioDir      string
	CJKFontPath   string
	LatinFontPath string
	Width         int
	Height        int
	FPS           int
	Workers       int
	Quality       int
	VideoEncoder  string
	BatchSize     int

	// TSV column names. An empty CharColumn means "first column".
	CharColumn    string
	PinyinColumn  string
	EnglishColumn string
}

func Default() *Config {
	return &Config{
		SVGDir:        "assets/svgsZhHans",
		AudioDir:      "assets/pinyin-audio",
		CJKFontPath:   "/usr/share/fonts/chromeos/notocjk/NotoSansCJK-Regular.ttc",
		LatinFontPath: "/usr/share/fonts/chromeos/noto/NotoSans-Regular.ttf",
		Width:         480,
		Height:        720,
		FPS:           30,
		Workers:       runtime.NumCPU(),
		Quality:       23,
		VideoEncoder:  "libx264",
		PinyinColumn:  "pinyin",
		EnglishColumn: "english",
	}
}

// File is the YAML-backed subset of Config.
type File struct {
	SVGDir    string `yaml:"svg_dir"`
	AudioDir  string `yaml:"audio_dir"`
	CJKFont   string `yaml:"cjk_font"`
	LatinFont string `yaml:"latin_font"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	FPS       int    `yaml:"fps"`
	Workers   int    `yaml:"workers"`
	Quality   int    `yaml:"quality"`
	Columns   struct {
		Character string `yaml:"character"`
		Pinyin    string `yaml:"pinyin"`
		English   string `yaml:"english"`
	} `yaml:"columns"`
}

func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &f, nil
}

// Apply copies the non-zero fields of f over cfg.
func (f *File) Apply(cfg *Config) {
	if f.SVGDir != "" {
		cfg.SVGDir = f.SVGDir
	}
	if f.AudioDir != "" {
		cfg.AudioDir = f.AudioDir
	}
	if f.CJKFont != "" {
		cfg.CJKFontPath = f.CJKFont
	}
	if f.LatinFont != "" {
		cfg.LatinFontPath = f.LatinFont
	}
	if f.Width > 0 {
		cfg.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Height = f.Height
	}
	if f.FPS > 0 {
		cfg.FPS = f.FPS
	}
	if f.Workers > 0 {
		cfg.Workers = f.Workers
	}
	if f.Quality > 0 {
		cfg.Quality = f.Quality
	}
	if f.Columns.Character != "" {
		cfg.CharColumn = f.Columns.Character
	}
	if f.Columns.Pinyin != "" {
		cfg.PinyinColumn = f.Columns.Pinyin
	}
	if f.Columns.English != "" {
		cfg.EnglishColumn = f.Columns.English
	}
}
