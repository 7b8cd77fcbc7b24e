package autograd

// topoSort returns every ancestor of roots in dependency order, parents
// before children. Iterative so that deep graphs cannot exhaust the stack.
func topoSort(roots []*Value) []*Value {
	type frame struct {
		node *Value
		next int
	}
	var order []*Value
	visited := make(map[*Value]bool)
	var stack []frame
	for _, r := range roots {
		if r == nil || visited[r] {
			continue
		}
		stack = append(stack, frame{node: r})
		visited[r] = true
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(top.node.parents) {
				p := top.node.parents[top.next]
				top.next++
				if !visited[p] {
					visited[p] = true
					stack = append(stack, frame{node: p})
				}
				continue
			}
			order = append(order, top.node)
			stack = stack[:len(stack)-1]
		}
	}
	return order
}

// Backward accumulates d(out)/d(leaf) into the grad field of every
// gradient-tracked ancestor of out. Gradients add across calls; callers
// clear them between steps via ZeroGrad.
func Backward(out *Value) {
	order := topoSort([]*Value{out})
	seed := make(map[*Value]float64, len(order))
	seed[out] = 1
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		g, ok := seed[n]
		if !ok || n.partials == nil {
			continue
		}
		if !n.requiresGrad {
			continue
		}
		parts := n.partials()
		for j, p := range n.parents {
			seed[p] += parts[j].data * g
		}
	}
	for n, g := range seed {
		if n.requiresGrad {
			n.grad += g
		}
	}
}

// Grad returns the gradient of the summed outputs with respect to each
// input, as graph nodes: the result can be differentiated again. This is
// reverse mode with unit output weights, and the forward graph is retained,
// so repeated calls over shared subgraphs are valid.
//
// Inputs that were never flagged for gradient tracking are flagged here
// rather than rejected; the fix is idempotent.
func Grad(outputs, inputs []*Value) []*Value {
	for _, in := range inputs {
		if !in.requiresGrad {
			in.SetRequiresGrad(true)
		}
	}

	order := topoSort(outputs)
	adjoint := make(map[*Value]*Value, len(order))
	one := NewConst(1)
	for _, out := range outputs {
		if a, ok := adjoint[out]; ok {
			adjoint[out] = Add(a, one)
		} else {
			adjoint[out] = one
		}
	}

	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		a, ok := adjoint[n]
		if !ok || n.partials == nil {
			continue
		}
		parts := n.partials()
		for j, p := range n.parents {
			contrib := Mul(parts[j], a)
			if prev, ok := adjoint[p]; ok {
				adjoint[p] = Add(prev, contrib)
			} else {
				adjoint[p] = contrib
			}
		}
	}

	grads := make([]*Value, len(inputs))
	for i, in := range inputs {
		if a, ok := adjoint[in]; ok {
			grads[i] = a
		} else {
			grads[i] = NewConst(0)
		}
	}
	return grads
}
