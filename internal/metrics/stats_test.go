package metrics

import (
	"math"
	"testing"
	"time"
)

func TestWindowSnapshot(t *testing.T) {
	var w Window
	w.Record(20*time.Millisecond, 1.2)
	w.Record(30*time.Millisecond, 0.8)
	snap := w.Snapshot()
	if math.Abs(snap.StepsPerSec-40) > 0.01 {
		t.Fatalf("unexpected throughput %.2f", snap.StepsPerSec)
	}
	if math.Abs(snap.AvgStepMS-25) > 0.01 {
		t.Fatalf("unexpected avg step %.2f ms", snap.AvgStepMS)
	}
	if snap.LastLoss != 0.8 {
		t.Fatalf("expected last loss 0.8, got %.2f", snap.LastLoss)
	}
	if w.steps != 0 || w.compute != 0 {
		t.Fatalf("window was not reset")
	}
}

func TestEmptyWindowSnapshot(t *testing.T) {
	var w Window
	snap := w.Snapshot()
	if snap.StepsPerSec != 0 || snap.AvgStepMS != 0 || snap.LastLoss != 0 {
		t.Fatalf("empty window produced nonzero snapshot: %+v", snap)
	}
}
