package quantum

import (
	"fmt"
	"math"
	"math/rand"

	"laplace-dqc/internal/autograd"
	"laplace-dqc/internal/model"
)

const rotationsPerQubit = 3

// Config describes the circuit shape of a QNN.
type Config struct {
	// Qubits is the register width.
	Qubits int
	// Depth is the number of ansatz layers.
	Depth int
	// Inputs is the feature dimensionality of a collocation point. The
	// first Inputs coordinates are angle-encoded; the register is split
	// into one support block per input.
	Inputs int
}

// QNN is a differentiable quantum circuit model: a Fourier feature map
// followed by a hardware-efficient ansatz, measured against an Ising cost
// observable. It implements model.Trainable.
type QNN struct {
	cfg      Config
	supports [][]int
	params   []*autograd.Value
	obs      Hamiltonian
}

// New builds a QNN with variational angles drawn uniformly from [0, 2pi).
func New(cfg Config, rng *rand.Rand) (*QNN, error) {
	if cfg.Qubits <= 0 {
		return nil, fmt.Errorf("quantum: qubits must be > 0 (got %d)", cfg.Qubits)
	}
	if cfg.Depth <= 0 {
		return nil, fmt.Errorf("quantum: depth must be > 0 (got %d)", cfg.Depth)
	}
	if cfg.Inputs <= 0 || cfg.Inputs > cfg.Qubits {
		return nil, fmt.Errorf("quantum: inputs must be in [1, qubits] (got %d)", cfg.Inputs)
	}

	// Parallel feature map: each input variable owns a disjoint block of
	// qubits. With qubits not divisible by inputs the trailing qubits
	// carry no encoding, only ansatz rotations.
	split := cfg.Qubits / cfg.Inputs
	supports := make([][]int, cfg.Inputs)
	for v := 0; v < cfg.Inputs; v++ {
		for q := v * split; q < (v+1)*split; q++ {
			supports[v] = append(supports[v], q)
		}
	}

	params := make([]*autograd.Value, cfg.Depth*cfg.Qubits*rotationsPerQubit)
	for i := range params {
		params[i] = autograd.NewParam(rng.Float64() * 2 * math.Pi)
	}

	return &QNN{
		cfg:      cfg,
		supports: supports,
		params:   params,
		obs:      NewIsingHamiltonian(cfg.Qubits),
	}, nil
}

// Parameters returns the variational angles in a fixed order.
func (m *QNN) Parameters() []*autograd.Value { return m.params }

// Evaluate runs the circuit once per point and returns the cost-observable
// expectation for each. The returned nodes are differentiable with respect
// to both the point coordinates and the variational angles.
func (m *QNN) Evaluate(batch model.Batch) []*autograd.Value {
	out := make([]*autograd.Value, batch.Len())
	for i, point := range batch.Points {
		out[i] = m.evaluatePoint(point)
	}
	return out
}

func (m *QNN) evaluatePoint(point []*autograd.Value) *autograd.Value {
	s := NewZeroState(m.cfg.Qubits)

	// Fourier feature map: angle-encode each coordinate on its support.
	for v, support := range m.supports {
		for _, q := range support {
			s.RX(q, point[v])
		}
	}

	// Hardware-efficient ansatz: RX-RY-RX rotations plus a CNOT chain.
	p := 0
	for d := 0; d < m.cfg.Depth; d++ {
		for q := 0; q < m.cfg.Qubits; q++ {
			s.RX(q, m.params[p])
			s.RY(q, m.params[p+1])
			s.RX(q, m.params[p+2])
			p += rotationsPerQubit
		}
		for q := 0; q+1 < m.cfg.Qubits; q++ {
			s.CNOT(q, q+1)
		}
	}

	return m.obs.Expectation(s)
}
