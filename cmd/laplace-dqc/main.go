package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"laplace-dqc/internal/autograd"
	"laplace-dqc/internal/config"
	"laplace-dqc/internal/laplace"
	"laplace-dqc/internal/model"
	"laplace-dqc/internal/optim"
	"laplace-dqc/internal/plotting"
	"laplace-dqc/internal/quantum"
	"laplace-dqc/internal/trainer"
)

func main() {
	cfgPath := flag.String("config", "", "Path to optional YAML config")
	qubits := flag.Int("qubits", 0, "Override register width")
	depth := flag.Int("depth", 0, "Override ansatz depth")
	colPoints := flag.Int("colpoints", 0, "Collocation points per loss term")
	learningRate := flag.Float64("lr", 0, "Adam learning rate")
	steps := flag.Int("steps", 0, "Number of training steps")
	seed := flag.Int64("seed", 0, "PRNG seed")
	logEvery := flag.Int("log-every", 0, "Log every N steps")
	gridPoints := flag.Int("grid-points", 0, "Plot grid resolution per axis")
	out := flag.String("out", "", "Comparison plot output path")

	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "laplace-dqc",
	})

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}
	cfg.ApplyOverrides(config.Overrides{
		Qubits:       *qubits,
		Depth:        *depth,
		ColPoints:    *colPoints,
		LearningRate: *learningRate,
		Steps:        *steps,
		Seed:         *seed,
		LogEvery:     *logEvery,
		GridPoints:   *gridPoints,
		Out:          *out,
	})
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rng := rand.New(rand.NewSource(cfg.Seed))

	qnn, err := quantum.New(quantum.Config{
		Qubits: cfg.Qubits,
		Depth:  cfg.Depth,
		Inputs: cfg.Inputs,
	}, rng)
	if err != nil {
		logger.Fatal("failed to build circuit", "err", err)
	}

	opt, err := optim.NewAdam(qnn.Parameters(), cfg.LearningRate)
	if err != nil {
		logger.Fatal("failed to build optimizer", "err", err)
	}

	sampler, err := laplace.NewDomainSampler(qnn, cfg.Inputs, cfg.ColPoints, rng)
	if err != nil {
		logger.Fatal("failed to build sampler", "err", err)
	}

	logger.Info("starting run",
		"run_id", uuid.NewString(),
		"qubits", cfg.Qubits,
		"depth", cfg.Depth,
		"colpoints", cfg.ColPoints,
		"lr", cfg.LearningRate,
		"steps", cfg.Steps,
		"seed", cfg.Seed,
	)

	summary, err := trainer.Run(ctx, trainer.RunConfig{
		Sampler:   sampler,
		Optimizer: opt,
		Steps:     cfg.Steps,
		LogEvery:  cfg.LogEvery,
		Logger:    logger,
	})
	if err != nil {
		logger.Fatal("training failed", "err", err)
	}
	logger.Info("training complete", "steps", summary.Steps, "final_loss", summary.FinalLoss)

	analytic := plotting.NewFieldGrid(cfg.GridPoints, laplace.Reference)
	learned := plotting.NewFieldGrid(cfg.GridPoints, fieldOf(qnn, cfg.Inputs))
	if err := plotting.RenderComparison(cfg.Out, analytic, learned); err != nil {
		logger.Fatal("failed to render plot", "err", err)
	}
	logger.Info("wrote comparison plot", "path", cfg.Out)
}

// fieldOf evaluates the trained model pointwise. Feature dimensions past
// the two physical coordinates are held at zero.
func fieldOf(m model.Model, inputs int) func(x, y float64) float64 {
	return func(x, y float64) float64 {
		point := make([]*autograd.Value, inputs)
		point[0] = autograd.NewConst(x)
		point[1] = autograd.NewConst(y)
		for i := 2; i < inputs; i++ {
			point[i] = autograd.NewConst(0)
		}
		out := m.Evaluate(model.Batch{Points: [][]*autograd.Value{point}})
		return out[0].Data()
	}
}
