// Package optim provides gradient-based parameter updates for autograd
// leaves. Only Adam is implemented; it is what the solver trains with.
package optim

import (
	"errors"
	"fmt"
	"math"

	"laplace-dqc/internal/autograd"
)

// Adam holds references to the model's trainable parameters and applies
// bias-corrected adaptive moment updates.
type Adam struct {
	params []*autograd.Value
	lr     float64
	beta1  float64
	beta2  float64
	eps    float64
	m      []float64
	v      []float64
	step   int
}

// NewAdam builds an optimizer over params with the standard moment decays
// (beta1=0.9, beta2=0.999, eps=1e-8).
func NewAdam(params []*autograd.Value, lr float64) (*Adam, error) {
	if len(params) == 0 {
		return nil, errors.New("optim: no parameters to optimize")
	}
	if lr <= 0 {
		return nil, fmt.Errorf("optim: learning rate must be > 0 (got %g)", lr)
	}
	return &Adam{
		params: params,
		lr:     lr,
		beta1:  0.9,
		beta2:  0.999,
		eps:    1e-8,
		m:      make([]float64, len(params)),
		v:      make([]float64, len(params)),
	}, nil
}

// ZeroGrad clears the accumulated gradient on every parameter.
func (a *Adam) ZeroGrad() {
	for _, p := range a.params {
		p.ZeroGrad()
	}
}

// Step consumes the gradients accumulated since the last ZeroGrad and
// moves every parameter one update downhill.
func (a *Adam) Step() {
	a.step++
	c1 := 1 - math.Pow(a.beta1, float64(a.step))
	c2 := 1 - math.Pow(a.beta2, float64(a.step))
	for i, p := range a.params {
		g := p.Grad()
		a.m[i] = a.beta1*a.m[i] + (1-a.beta1)*g
		a.v[i] = a.beta2*a.v[i] + (1-a.beta2)*g*g
		mHat := a.m[i] / c1
		vHat := a.v[i] / c2
		p.SetData(p.Data() - a.lr*mHat/(math.Sqrt(vHat)+a.eps))
	}
}
