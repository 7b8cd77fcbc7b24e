package autograd

import "math"

// Value is a node in a scalar computation graph. Forward values are computed
// eagerly at construction; the graph is retained so that gradients can be
// requested any number of times without re-running the forward pass.
type Value struct {
	data         float64
	grad         float64
	requiresGrad bool
	parents      []*Value
	// partials returns the local derivative of this node with respect to
	// each parent, as fresh graph nodes, so differentiation stays
	// differentiable.
	partials func() []*Value
}

// NewConst returns a leaf that does not track gradients.
func NewConst(v float64) *Value {
	return &Value{data: v}
}

// NewLeaf returns a gradient-tracked leaf, typically an input coordinate.
func NewLeaf(v float64) *Value {
	return &Value{data: v, requiresGrad: true}
}

// NewParam returns a trainable parameter leaf. Parameters are the only
// nodes whose data is mutated after construction (by the optimizer).
func NewParam(v float64) *Value {
	return &Value{data: v, requiresGrad: true}
}

// Data returns the forward value.
func (v *Value) Data() float64 { return v.data }

// SetData overwrites the forward value of a leaf. Graphs built before the
// update are stale and must be rebuilt by a fresh forward pass.
func (v *Value) SetData(x float64) { v.data = x }

// Grad returns the gradient accumulated by Backward.
func (v *Value) Grad() float64 { return v.grad }

// ZeroGrad clears the accumulated gradient.
func (v *Value) ZeroGrad() { v.grad = 0 }

// RequiresGrad reports whether the node participates in differentiation.
func (v *Value) RequiresGrad() bool { return v.requiresGrad }

// SetRequiresGrad flags the node for gradient tracking. Flagging an already
// tracked node is a no-op.
func (v *Value) SetRequiresGrad(on bool) { v.requiresGrad = on }

func newOp(data float64, parents []*Value, partials func() []*Value) *Value {
	tracked := false
	for _, p := range parents {
		if p.requiresGrad {
			tracked = true
			break
		}
	}
	return &Value{
		data:         data,
		requiresGrad: tracked,
		parents:      parents,
		partials:     partials,
	}
}

// Add returns v + w.
func Add(v, w *Value) *Value {
	one := NewConst(1)
	return newOp(v.data+w.data, []*Value{v, w}, func() []*Value {
		return []*Value{one, one}
	})
}

// Sub returns v - w.
func Sub(v, w *Value) *Value {
	return newOp(v.data-w.data, []*Value{v, w}, func() []*Value {
		return []*Value{NewConst(1), NewConst(-1)}
	})
}

// Mul returns v * w.
func Mul(v, w *Value) *Value {
	return newOp(v.data*w.data, []*Value{v, w}, func() []*Value {
		return []*Value{w, v}
	})
}

// Div returns v / w.
func Div(v, w *Value) *Value {
	out := newOp(v.data/w.data, []*Value{v, w}, nil)
	out.partials = func() []*Value {
		inv := Div(NewConst(1), w)
		return []*Value{inv, Neg(Div(out, w))}
	}
	return out
}

// Neg returns -v.
func Neg(v *Value) *Value {
	return newOp(-v.data, []*Value{v}, func() []*Value {
		return []*Value{NewConst(-1)}
	})
}

// Scale returns c * v for a plain float coefficient.
func Scale(c float64, v *Value) *Value {
	return newOp(c*v.data, []*Value{v}, func() []*Value {
		return []*Value{NewConst(c)}
	})
}

// Square returns v^2.
func Square(v *Value) *Value {
	return newOp(v.data*v.data, []*Value{v}, func() []*Value {
		return []*Value{Scale(2, v)}
	})
}

// Sin returns sin(v).
func Sin(v *Value) *Value {
	return newOp(math.Sin(v.data), []*Value{v}, func() []*Value {
		return []*Value{Cos(v)}
	})
}

// Cos returns cos(v).
func Cos(v *Value) *Value {
	return newOp(math.Cos(v.data), []*Value{v}, func() []*Value {
		return []*Value{Neg(Sin(v))}
	})
}

// Exp returns e^v.
func Exp(v *Value) *Value {
	out := newOp(math.Exp(v.data), []*Value{v}, nil)
	out.partials = func() []*Value {
		return []*Value{out}
	}
	return out
}

// Sum reduces a slice of nodes to their sum. An empty slice sums to a
// constant zero.
func Sum(vs []*Value) *Value {
	if len(vs) == 0 {
		return NewConst(0)
	}
	total := 0.0
	for _, v := range vs {
		total += v.data
	}
	parents := append([]*Value(nil), vs...)
	return newOp(total, parents, func() []*Value {
		ones := make([]*Value, len(parents))
		one := NewConst(1)
		for i := range ones {
			ones[i] = one
		}
		return ones
	})
}

// Mean reduces a slice of nodes to their arithmetic mean.
func Mean(vs []*Value) *Value {
	if len(vs) == 0 {
		return NewConst(0)
	}
	return Scale(1/float64(len(vs)), Sum(vs))
}
