package quantum

import "laplace-dqc/internal/autograd"

// amp is one complex amplitude, held as graph nodes so every gate stays
// differentiable with respect to angles and encoded inputs.
type amp struct {
	re *autograd.Value
	im *autograd.Value
}

func cAdd(a, b amp) amp {
	return amp{re: autograd.Add(a.re, b.re), im: autograd.Add(a.im, b.im)}
}

func cMul(a, b amp) amp {
	return amp{
		re: autograd.Sub(autograd.Mul(a.re, b.re), autograd.Mul(a.im, b.im)),
		im: autograd.Add(autograd.Mul(a.re, b.im), autograd.Mul(a.im, b.re)),
	}
}

// State is a full statevector over n qubits. Qubit q corresponds to bit q
// of the basis index.
type State struct {
	qubits int
	amps   []amp
}

// NewZeroState prepares |0...0>.
func NewZeroState(qubits int) *State {
	amps := make([]amp, 1<<qubits)
	zero := autograd.NewConst(0)
	for i := range amps {
		amps[i] = amp{re: zero, im: zero}
	}
	amps[0] = amp{re: autograd.NewConst(1), im: zero}
	return &State{qubits: qubits, amps: amps}
}

// Qubits returns the register width.
func (s *State) Qubits() int { return s.qubits }

// Amplitude returns the (re, im) nodes of basis state z.
func (s *State) Amplitude(z int) (re, im *autograd.Value) {
	return s.amps[z].re, s.amps[z].im
}

// Norm returns <psi|psi> as a graph node. Unitary circuits keep it at 1.
func (s *State) Norm() *autograd.Value {
	terms := make([]*autograd.Value, 0, len(s.amps))
	for _, a := range s.amps {
		terms = append(terms, autograd.Add(autograd.Square(a.re), autograd.Square(a.im)))
	}
	return autograd.Sum(terms)
}

// apply1q multiplies the amplitudes of qubit q by the 2x2 matrix m.
func (s *State) apply1q(q int, m [2][2]amp) {
	bit := 1 << q
	next := make([]amp, len(s.amps))
	for z := range s.amps {
		if z&bit != 0 {
			continue
		}
		a0 := s.amps[z]
		a1 := s.amps[z|bit]
		next[z] = cAdd(cMul(m[0][0], a0), cMul(m[0][1], a1))
		next[z|bit] = cAdd(cMul(m[1][0], a0), cMul(m[1][1], a1))
	}
	s.amps = next
}

// RX applies a rotation about the X axis on qubit q.
func (s *State) RX(q int, theta *autograd.Value) {
	half := autograd.Scale(0.5, theta)
	c := autograd.Cos(half)
	sn := autograd.Sin(half)
	zero := autograd.NewConst(0)
	diag := amp{re: c, im: zero}
	off := amp{re: zero, im: autograd.Neg(sn)}
	s.apply1q(q, [2][2]amp{{diag, off}, {off, diag}})
}

// RY applies a rotation about the Y axis on qubit q.
func (s *State) RY(q int, theta *autograd.Value) {
	half := autograd.Scale(0.5, theta)
	c := autograd.Cos(half)
	sn := autograd.Sin(half)
	zero := autograd.NewConst(0)
	s.apply1q(q, [2][2]amp{
		{{re: c, im: zero}, {re: autograd.Neg(sn), im: zero}},
		{{re: sn, im: zero}, {re: c, im: zero}},
	})
}

// RZ applies a rotation about the Z axis on qubit q.
func (s *State) RZ(q int, theta *autograd.Value) {
	half := autograd.Scale(0.5, theta)
	c := autograd.Cos(half)
	sn := autograd.Sin(half)
	zero := autograd.NewConst(0)
	s.apply1q(q, [2][2]amp{
		{{re: c, im: autograd.Neg(sn)}, {re: zero, im: zero}},
		{{re: zero, im: zero}, {re: c, im: sn}},
	})
}

// CNOT flips the target qubit where the control qubit is set.
func (s *State) CNOT(control, target int) {
	cbit := 1 << control
	tbit := 1 << target
	next := make([]amp, len(s.amps))
	for z, a := range s.amps {
		if z&cbit != 0 {
			next[z^tbit] = a
		} else {
			next[z] = a
		}
	}
	s.amps = next
}
