// Package audio builds the repeating pronunciation schedule for a
// clip. A missing recording is a data-coverage gap, never an error:
// the clip simply goes silent.
package audio

import (
	"fmt"

	"github.com/bhrdj/zh/internal/pinyin"
	"github.com/bhrdj/zh/internal/system"
)

// Interval is the spacing between repeated plays, in seconds.
const Interval = 2.5

// Track is one resolved pronunciation asset with its play offsets.
// Later offsets may extend past the nominal clip end; the encoder cuts
// at the video duration, not the audio tail.
type Track struct {
	Path    string
	Offsets []float64
}

// Plan returns the play offsets from 0 up to (but not including)
// total, spaced Interval apart.
func Plan(total float64) []float64 {
	var offsets []float64
	for t := 0.0; t < total; t += Interval {
		offsets = append(offsets, t)
	}
	return offsets
}

// Resolve looks up the recording for a tonal pinyin string and builds
// its repeat schedule for a clip of the given total duration. A nil
// return means a silent clip.
func Resolve(dir, tonal string, total float64) *Track {
	path, ok := pinyin.FindAudio(dir, tonal)
	if !ok {
		fmt.Printf("[!] No audio for %q, clip will be silent\n", tonal)
		return nil
	}
	// Overlapping repetitions are tolerated by the mixer, but worth a
	// notice since they usually mean a mistagged recording.
	if dur, err := system.GetAudioDuration(path); err == nil && dur > Interval {
		fmt.Printf("[!] %s runs %.2fs, longer than the %.1fs repeat interval\n", path, dur, Interval)
	}
	return &Track{Path: path, Offsets: Plan(total)}
}
