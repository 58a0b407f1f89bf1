// Package timeline maps the arbitrary stroke delays found in a source
// file onto the fixed animation window of a clip.
package timeline

// Schedule rescales original stroke timings so the first stroke starts
// at 0 and the last stroke ends exactly at the target duration.
type Schedule struct {
	// OriginOffset is the minimum start delay across all strokes.
	OriginOffset float64
	// ScaleFactor stretches the original span (first stroke start to
	// last stroke end) to the target duration.
	ScaleFactor float64

	strokeDur float64
}

// Rescale computes the schedule for a set of stroke delays drawn for
// strokeDur seconds each in the original timeline. It is pure; callers
// recompute it per character and never reuse it across characters.
func Rescale(delays []float64, strokeDur, target float64) Schedule {
	if len(delays) == 0 {
		return Schedule{ScaleFactor: 1, strokeDur: strokeDur}
	}
	min, max := delays[0], delays[0]
	for _, d := range delays[1:] {
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	span := (max - min) + strokeDur
	return Schedule{
		OriginOffset: min,
		ScaleFactor:  target / span,
		strokeDur:    strokeDur,
	}
}

// Window returns the rescaled [start, end) drawing interval for a
// stroke with the given original delay.
func (s Schedule) Window(delay float64) (start, end float64) {
	start = (delay - s.OriginOffset) * s.ScaleFactor
	return start, start + s.strokeDur*s.ScaleFactor
}

// Progress reports how much of the stroke is drawn at time t: 0 before
// its window, 1 at or after its end, linear in between.
func (s Schedule) Progress(delay, t float64) float64 {
	start, end := s.Window(delay)
	if t < start {
		return 0
	}
	if t >= end {
		return 1
	}
	return (t - start) / (end - start)
}
