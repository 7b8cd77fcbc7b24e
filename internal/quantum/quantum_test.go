package quantum

import (
	"math"
	"math/rand"
	"testing"

	"laplace-dqc/internal/autograd"
	"laplace-dqc/internal/model"
)

func TestZeroState(t *testing.T) {
	s := NewZeroState(3)
	re, im := s.Amplitude(0)
	if re.Data() != 1 || im.Data() != 0 {
		t.Fatalf("|000> amplitude = %v+%vi", re.Data(), im.Data())
	}
	if math.Abs(s.Norm().Data()-1) > 1e-12 {
		t.Fatalf("norm = %v", s.Norm().Data())
	}
}

func TestRXHalfAngle(t *testing.T) {
	theta := 0.8
	s := NewZeroState(1)
	s.RX(0, autograd.NewConst(theta))
	re0, im0 := s.Amplitude(0)
	re1, im1 := s.Amplitude(1)
	if math.Abs(re0.Data()-math.Cos(theta/2)) > 1e-12 || im0.Data() != 0 {
		t.Fatalf("a0 = %v+%vi", re0.Data(), im0.Data())
	}
	if re1.Data() != 0 || math.Abs(im1.Data()+math.Sin(theta/2)) > 1e-12 {
		t.Fatalf("a1 = %v+%vi", re1.Data(), im1.Data())
	}
}

func TestCNOTMovesExcitation(t *testing.T) {
	s := NewZeroState(2)
	s.RX(0, autograd.NewConst(math.Pi)) // |00> -> -i|01> (qubit 0 set)
	s.CNOT(0, 1)
	_, im := s.Amplitude(3)
	if math.Abs(im.Data()+1) > 1e-12 {
		t.Fatalf("expected -i|11>, got im=%v", im.Data())
	}
	if math.Abs(s.Norm().Data()-1) > 1e-12 {
		t.Fatalf("norm drifted: %v", s.Norm().Data())
	}
}

func TestUnitaryPreservesNorm(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := NewZeroState(3)
	for i := 0; i < 6; i++ {
		q := rng.Intn(3)
		angle := autograd.NewConst(rng.Float64() * 2 * math.Pi)
		switch i % 3 {
		case 0:
			s.RX(q, angle)
		case 1:
			s.RY(q, angle)
		case 2:
			s.RZ(q, angle)
		}
	}
	s.CNOT(0, 1)
	s.CNOT(1, 2)
	if math.Abs(s.Norm().Data()-1) > 1e-10 {
		t.Fatalf("norm = %v", s.Norm().Data())
	}
}

// A single-qubit Ising observable reduces to X, so after RY(theta) the
// expectation is sin(theta) and its angle derivatives are known exactly.
func TestExpectationAndDerivatives(t *testing.T) {
	theta := autograd.NewLeaf(0.6)
	s := NewZeroState(1)
	s.RY(0, theta)
	h := NewIsingHamiltonian(1)
	exp := h.Expectation(s)
	if math.Abs(exp.Data()-math.Sin(0.6)) > 1e-12 {
		t.Fatalf("<X> = %v want %v", exp.Data(), math.Sin(0.6))
	}
	first := autograd.Grad([]*autograd.Value{exp}, []*autograd.Value{theta})
	if math.Abs(first[0].Data()-math.Cos(0.6)) > 1e-10 {
		t.Fatalf("d<X>/dtheta = %v want %v", first[0].Data(), math.Cos(0.6))
	}
	second := autograd.Grad(first, []*autograd.Value{theta})
	if math.Abs(second[0].Data()+math.Sin(0.6)) > 1e-10 {
		t.Fatalf("d2<X>/dtheta2 = %v want %v", second[0].Data(), -math.Sin(0.6))
	}
}

func TestIsingOnGroundState(t *testing.T) {
	s := NewZeroState(2)
	h := NewIsingHamiltonian(2)
	// <00| Z0Z1 + X0 + X1 |00> = 1
	if math.Abs(h.Expectation(s).Data()-1) > 1e-12 {
		t.Fatalf("expectation = %v", h.Expectation(s).Data())
	}
}

func TestNewQNNValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := New(Config{Qubits: 0, Depth: 1, Inputs: 1}, rng); err == nil {
		t.Fatalf("expected error for zero qubits")
	}
	if _, err := New(Config{Qubits: 2, Depth: 0, Inputs: 1}, rng); err == nil {
		t.Fatalf("expected error for zero depth")
	}
	if _, err := New(Config{Qubits: 2, Depth: 1, Inputs: 3}, rng); err == nil {
		t.Fatalf("expected error for inputs > qubits")
	}
}

func TestQNNEvaluate(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	qnn, err := New(Config{Qubits: 3, Depth: 2, Inputs: 2}, rng)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got, want := len(qnn.Parameters()), 2*3*rotationsPerQubit; got != want {
		t.Fatalf("parameter count %d, want %d", got, want)
	}

	batch := model.Batch{Points: [][]*autograd.Value{
		{autograd.NewLeaf(0.2), autograd.NewLeaf(0.4)},
		{autograd.NewLeaf(0.9), autograd.NewLeaf(0.1)},
	}}
	out := qnn.Evaluate(batch)
	if len(out) != 2 {
		t.Fatalf("expected one output per point, got %d", len(out))
	}
	// Spectrum bound for 3 qubits: |sum ZZ| <= 3, |sum X| <= 3.
	for i, v := range out {
		if math.IsNaN(v.Data()) || math.Abs(v.Data()) > 6 {
			t.Fatalf("output %d out of range: %v", i, v.Data())
		}
	}
}

func TestQNNSeedDeterminism(t *testing.T) {
	build := func() []float64 {
		rng := rand.New(rand.NewSource(5))
		qnn, err := New(Config{Qubits: 2, Depth: 1, Inputs: 2}, rng)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		vals := make([]float64, 0, len(qnn.Parameters()))
		for _, p := range qnn.Parameters() {
			vals = append(vals, p.Data())
		}
		return vals
	}
	a, b := build(), build()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("parameter %d differs across identically seeded builds", i)
		}
	}
}
