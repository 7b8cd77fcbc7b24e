package quantum

import "laplace-dqc/internal/autograd"

// Hamiltonian is a cost observable measured against a statevector.
type Hamiltonian interface {
	Expectation(s *State) *autograd.Value
}

// IsingHamiltonian is the transverse-field Ising cost observable
//
//	H = sum_{i<j} Z_i Z_j + sum_i X_i
//
// over all qubits of the register.
type IsingHamiltonian struct {
	Qubits int
}

// NewIsingHamiltonian builds the observable for an n-qubit register.
func NewIsingHamiltonian(qubits int) *IsingHamiltonian {
	return &IsingHamiltonian{Qubits: qubits}
}

// Expectation returns <psi|H|psi> as a graph node.
func (h *IsingHamiltonian) Expectation(s *State) *autograd.Value {
	var terms []*autograd.Value

	// ZZ couplings are diagonal: each basis state contributes its
	// probability with a sign fixed by the parity of the two bits.
	for i := 0; i < h.Qubits; i++ {
		for j := i + 1; j < h.Qubits; j++ {
			var contrib []*autograd.Value
			for z := 0; z < 1<<h.Qubits; z++ {
				re, im := s.Amplitude(z)
				prob := autograd.Add(autograd.Square(re), autograd.Square(im))
				sign := 1.0
				if (z>>i)&1 != (z>>j)&1 {
					sign = -1
				}
				contrib = append(contrib, autograd.Scale(sign, prob))
			}
			terms = append(terms, autograd.Sum(contrib))
		}
	}

	// X_i pairs each basis state with its bit-flipped partner; summing
	// over all z covers both orders, so the total is real by construction.
	for i := 0; i < h.Qubits; i++ {
		bit := 1 << i
		var contrib []*autograd.Value
		for z := 0; z < 1<<h.Qubits; z++ {
			re, im := s.Amplitude(z)
			fre, fim := s.Amplitude(z ^ bit)
			contrib = append(contrib, autograd.Add(autograd.Mul(re, fre), autograd.Mul(im, fim)))
		}
		terms = append(terms, autograd.Sum(contrib))
	}

	return autograd.Sum(terms)
}
