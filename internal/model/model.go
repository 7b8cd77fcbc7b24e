package model

import "laplace-dqc/internal/autograd"

// Batch is an ordered set of collocation points. Each point is a
// fixed-dimension vector of graph nodes so the model output stays
// differentiable with respect to the coordinates.
type Batch struct {
	Points [][]*autograd.Value
}

// Len returns the number of points in the batch.
func (b Batch) Len() int { return len(b.Points) }

// Model is an opaque differentiable field: it maps a batch of points to one
// scalar node per point. Implementations expose their computation graph
// through the returned nodes; they are read-only from the caller's side and
// mutated only through gradient updates on their own parameters.
type Model interface {
	Evaluate(batch Batch) []*autograd.Value
}

// Trainable is a Model with parameters an optimizer can adjust.
type Trainable interface {
	Model
	Parameters() []*autograd.Value
}
