package reminder

import "time"

// RunWindow is one scan window over event due times, in epoch seconds.
// Both ends are inclusive. Windows of consecutive runs are contiguous
// and never overlap: the next window starts one second after the last
// committed end.
type RunWindow struct {
	Start int64
	End   int64
}

// Duration returns the covered span.
func (w RunWindow) Duration() time.Duration {
	return time.Duration(w.End-w.Start+1) * time.Second
}

// Contains reports whether t falls inside the window.
func (w RunWindow) Contains(t int64) bool {
	return t >= w.Start && t <= w.End
}

// ComputeWindow derives the window for a run starting at now.
//
// With a committed watermark the window resumes right after it, so no
// second of due-time space is ever scanned twice or skipped. On the
// very first run there is nothing to resume from and the window reaches
// back a fixed cutoff instead of scanning all history.
func ComputeWindow(watermark int64, hasWatermark bool, now time.Time, firstRunCutoff time.Duration) RunWindow {
	end := now.Unix()
	if hasWatermark {
		return RunWindow{Start: watermark + 1, End: end}
	}
	return RunWindow{Start: end - int64(firstRunCutoff/time.Second), End: end}
}
