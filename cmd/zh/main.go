package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bhrdj/zh/internal/config"
	"github.com/bhrdj/zh/internal/deck"
	"github.com/bhrdj/zh/internal/engine"
	"github.com/bhrdj/zh/internal/system"
	"github.com/bhrdj/zh/internal/video"
)

func main() {
	system.InitResourceLimits()

	inputPtr := flag.String("input", "", "Input TSV file (default: newest .tsv in input/)")
	outputPtr := flag.String("output", "", "Output MP4 file, or directory with -batch (default: input stem + .mp4)")
	configPtr := flag.String("config", "", "YAML config file")
	batchPtr := flag.Int("batch", 0, "Split into videos of N records each")
	svgDirPtr := flag.String("svg-dir", "", "Directory of stroke-order SVGs keyed by code point")
	audioDirPtr := flag.String("audio-dir", "", "Directory of numbered-pinyin mp3 recordings")
	cjkFontPtr := flag.String("cjk-font", "", "CJK font for the static-glyph fallback")
	latinFontPtr := flag.String("latin-font", "", "Latin font for captions")
	fpsPtr := flag.Int("fps", 0, "Output frame rate")
	qualityPtr := flag.Int("quality", 0, "Video quality (x264: CRF, hardware encoders: scaled bitrate)")
	workersPtr := flag.Int("workers", 0, "Parallel clip workers")
	flag.Parse()

	cfg := config.Default()
	if *configPtr != "" {
		file, err := config.LoadFile(*configPtr)
		if err != nil {
			log.Fatalf("[-] Config error: %v", err)
		}
		file.Apply(cfg)
	}
	applyFlags(cfg, *svgDirPtr, *audioDirPtr, *cjkFontPtr, *latinFontPtr, *fpsPtr, *qualityPtr, *workersPtr)
	cfg.BatchSize = *batchPtr

	inputPath := *inputPtr
	if inputPath == "" {
		latest, err := system.FindLatestTSV("input")
		if err != nil {
			log.Fatalf("[-] Error: %v. Pass -input or put a TSV in input/", err)
		}
		inputPath = latest
		fmt.Printf("[*] Input: %s\n", inputPath)
	}

	encoderName, _ := system.GetBestH264Encoder()
	cfg.VideoEncoder = encoderName
	if encoderName != "libx264" {
		fmt.Printf("[*] Hardware encoder detected: %s\n", encoderName)
	}

	records, err := deck.Load(inputPath, deck.Columns{
		Character: cfg.CharColumn,
		Pinyin:    cfg.PinyinColumn,
		English:   cfg.EnglishColumn,
	})
	if err != nil {
		log.Fatalf("[-] Input error: %v", err)
	}

	project := engine.NewProject(cfg, &video.FFmpegEncoder{})
	ctx := context.Background()
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	if cfg.BatchSize > 0 {
		outDir := *outputPtr
		if outDir == "" {
			outDir = filepath.Dir(inputPath)
		}
		if err := os.MkdirAll(outDir, 0755); err != nil {
			log.Fatalf("[-] Output error: %v", err)
		}
		for start := 0; start < len(records); start += cfg.BatchSize {
			end := start + cfg.BatchSize
			if end > len(records) {
				end = len(records)
			}
			batchNum := start/cfg.BatchSize + 1
			outPath := filepath.Join(outDir, fmt.Sprintf("%s_%02d.mp4", stem, batchNum))
			fmt.Printf("\n=== Batch %d (%d cards) -> %s ===\n", batchNum, end-start, outPath)
			if err := project.Run(ctx, records[start:end], outPath); err != nil {
				log.Fatalf("[-] Batch %d failed: %v", batchNum, err)
			}
		}
		fmt.Printf("[+++] Done! Batches written to %s\n", outDir)
		return
	}

	output := *outputPtr
	if output == "" {
		output = filepath.Join(filepath.Dir(inputPath), stem+".mp4")
	}
	if err := project.Run(ctx, records, output); err != nil {
		log.Fatalf("[-] Error: %v", err)
	}
	fmt.Printf("[+++] Done! Result: %s\n", output)
}

// applyFlags overrides config values with explicitly set flags.
func applyFlags(cfg *config.Config, svgDir, audioDir, cjkFont, latinFont string, fps, quality, workers int) {
	if svgDir != "" {
		cfg.SVGDir = svgDir
	}
	if audioDir != "" {
		cfg.AudioDir = audioDir
	}
	if cjkFont != "" {
		cfg.CJKFontPath = cjkFont
	}
	if latinFont != "" {
		cfg.LatinFontPath = latinFont
	}
	if fps > 0 {
		cfg.FPS = fps
	}
	if quality > 0 {
		cfg.Quality = quality
	}
	if workers > 0 {
		cfg.Workers = workers
	}
}
