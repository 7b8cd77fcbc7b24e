// Package laplace holds the physics-informed loss for the 2D Laplace
// boundary value problem on the unit square:
//
//	u_xx + u_yy = 0
//	u(0,y) = u(1,y) = u(x,1) = 0
//	u(x,0) = sin(pi*x)
package laplace

import (
	"errors"
	"fmt"
	"math"

	"laplace-dqc/internal/autograd"
	"laplace-dqc/internal/model"
)

// Source yields uniform draws in [0, 1). *rand.Rand satisfies it; tests
// substitute deterministic sources.
type Source interface {
	Float64() float64
}

// DomainSampler draws fresh collocation batches from the unit square and
// its boundary and scores the model against the boundary conditions and
// the PDE residual. The model is read-only from here; its parameters move
// only through the optimizer.
type DomainSampler struct {
	net        model.Model
	nInputs    int
	nColPoints int
	rng        Source
}

// NewDomainSampler validates the configuration fixed at construction.
// nInputs may exceed the two physical variables when the model expects
// extra encoded feature dimensions.
func NewDomainSampler(net model.Model, nInputs, nColPoints int, rng Source) (*DomainSampler, error) {
	if net == nil {
		return nil, errors.New("laplace: model must not be nil")
	}
	if nInputs < 2 {
		return nil, fmt.Errorf("laplace: need at least 2 input dimensions (got %d)", nInputs)
	}
	if nColPoints <= 0 {
		return nil, fmt.Errorf("laplace: collocation count must be > 0 (got %d)", nColPoints)
	}
	if rng == nil {
		return nil, errors.New("laplace: random source must not be nil")
	}
	return &DomainSampler{net: net, nInputs: nInputs, nColPoints: nColPoints, rng: rng}, nil
}

// sample draws a full uniform batch and then pins one coordinate, so the
// draw sequence is identical across the five operations. pin < 0 leaves
// every coordinate free.
func (d *DomainSampler) sample(pin int, pinValue float64, trackGrad bool) model.Batch {
	points := make([][]*autograd.Value, d.nColPoints)
	for i := range points {
		row := make([]*autograd.Value, d.nInputs)
		for j := range row {
			v := d.rng.Float64()
			if j == pin {
				v = pinValue
			}
			if trackGrad {
				row[j] = autograd.NewLeaf(v)
			} else {
				row[j] = autograd.NewConst(v)
			}
		}
		points[i] = row
	}
	return model.Batch{Points: points}
}

func meanSquare(vs []*autograd.Value) *autograd.Value {
	sq := make([]*autograd.Value, len(vs))
	for i, v := range vs {
		sq[i] = autograd.Square(v)
	}
	return autograd.Mean(sq)
}

// LeftBoundary enforces u(0,y) = 0.
func (d *DomainSampler) LeftBoundary() *autograd.Value {
	return meanSquare(d.net.Evaluate(d.sample(0, 0, false)))
}

// RightBoundary enforces u(1,y) = 0.
func (d *DomainSampler) RightBoundary() *autograd.Value {
	return meanSquare(d.net.Evaluate(d.sample(0, 1, false)))
}

// TopBoundary enforces u(x,1) = 0.
func (d *DomainSampler) TopBoundary() *autograd.Value {
	return meanSquare(d.net.Evaluate(d.sample(1, 1, false)))
}

// BottomBoundary enforces u(x,0) = sin(pi*x).
func (d *DomainSampler) BottomBoundary() *autograd.Value {
	batch := d.sample(1, 0, false)
	outs := d.net.Evaluate(batch)
	res := make([]*autograd.Value, len(outs))
	for i, out := range outs {
		target := autograd.Sin(autograd.Scale(math.Pi, batch.Points[i][0]))
		res[i] = autograd.Sub(out, target)
	}
	return meanSquare(res)
}

// Interior enforces the PDE residual u_xx + u_yy = 0 at points drawn from
// the open square. The batch is gradient-tracked; the output is
// differentiated against every coordinate, and the two pure second
// derivatives are taken from that result.
func (d *DomainSampler) Interior() *autograd.Value {
	batch := d.sample(-1, 0, true)
	outs := d.net.Evaluate(batch)

	flat := make([]*autograd.Value, 0, d.nColPoints*d.nInputs)
	for _, row := range batch.Points {
		flat = append(flat, row...)
	}
	first := autograd.Grad(outs, flat)

	xs := make([]*autograd.Value, d.nColPoints)
	ys := make([]*autograd.Value, d.nColPoints)
	firstX := make([]*autograd.Value, d.nColPoints)
	firstY := make([]*autograd.Value, d.nColPoints)
	for i := 0; i < d.nColPoints; i++ {
		xs[i] = batch.Points[i][0]
		ys[i] = batch.Points[i][1]
		firstX[i] = first[i*d.nInputs]
		firstY[i] = first[i*d.nInputs+1]
	}
	secondX := autograd.Grad(firstX, xs)
	secondY := autograd.Grad(firstY, ys)

	res := make([]*autograd.Value, d.nColPoints)
	for i := range res {
		res[i] = autograd.Add(secondX[i], secondY[i])
	}
	return meanSquare(res)
}
