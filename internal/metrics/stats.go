package metrics

import "time"

// Window accumulates step timing and loss between log lines.
type Window struct {
	steps    int
	compute  time.Duration
	lastLoss float64
}

// Record adds one training step to the window.
func (w *Window) Record(computeTime time.Duration, loss float64) {
	w.steps++
	w.compute += computeTime
	w.lastLoss = loss
}

// Snapshot returns aggregated metrics and resets the window.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{LastLoss: w.lastLoss}
	if w.compute > 0 {
		snap.StepsPerSec = float64(w.steps) / w.compute.Seconds()
	}
	if w.steps > 0 {
		snap.AvgStepMS = (w.compute.Seconds() * 1000) / float64(w.steps)
	}
	w.steps = 0
	w.compute = 0
	return snap
}

// Snapshot represents loggable metrics.
type Snapshot struct {
	StepsPerSec float64
	AvgStepMS   float64
	LastLoss    float64
}
