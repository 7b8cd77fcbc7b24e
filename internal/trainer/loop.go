package trainer

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"laplace-dqc/internal/autograd"
	"laplace-dqc/internal/metrics"
)

// ResidualSampler produces the five scalar terms of the physics-informed
// loss. Every call draws a fresh collocation batch.
type ResidualSampler interface {
	LeftBoundary() *autograd.Value
	RightBoundary() *autograd.Value
	TopBoundary() *autograd.Value
	BottomBoundary() *autograd.Value
	Interior() *autograd.Value
}

// Optimizer adjusts the model's trainable parameters from the gradients
// accumulated by the backward pass.
type Optimizer interface {
	ZeroGrad()
	Step()
}

// RunConfig captures the knobs required by the training loop.
type RunConfig struct {
	Sampler   ResidualSampler
	Optimizer Optimizer
	Steps     int
	LogEvery  int
	Logger    *log.Logger
}

// Summary reports how a run ended.
type Summary struct {
	Steps     int
	FinalLoss float64
}

// Run executes the fixed-budget training loop: zero gradients, evaluate
// the five residual terms, backpropagate their sum, take one optimizer
// step. There is no convergence check; the loop ends by iteration count,
// or early only on context cancellation.
func Run(ctx context.Context, cfg RunConfig) (Summary, error) {
	if cfg.Sampler == nil {
		return Summary{}, errors.New("trainer: sampler must not be nil")
	}
	if cfg.Optimizer == nil {
		return Summary{}, errors.New("trainer: optimizer must not be nil")
	}
	if cfg.Steps <= 0 {
		return Summary{}, errors.New("trainer: steps must be > 0")
	}
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = 50
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	var window metrics.Window
	summary := Summary{}

	for step := 1; step <= cfg.Steps; step++ {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		start := time.Now()
		cfg.Optimizer.ZeroGrad()

		left := cfg.Sampler.LeftBoundary()
		right := cfg.Sampler.RightBoundary()
		top := cfg.Sampler.TopBoundary()
		bottom := cfg.Sampler.BottomBoundary()
		interior := cfg.Sampler.Interior()
		total := autograd.Sum([]*autograd.Value{left, right, top, bottom, interior})

		autograd.Backward(total)
		cfg.Optimizer.Step()

		window.Record(time.Since(start), total.Data())
		summary.Steps = step
		summary.FinalLoss = total.Data()

		if step%cfg.LogEvery == 0 {
			snap := window.Snapshot()
			logger.Info("train",
				"step", step,
				"loss", snap.LastLoss,
				"left", left.Data(),
				"right", right.Data(),
				"top", top.Data(),
				"bottom", bottom.Data(),
				"interior", interior.Data(),
				"steps_per_sec", snap.StepsPerSec,
				"avg_step_ms", snap.AvgStepMS,
			)
		}
	}

	return summary, nil
}
