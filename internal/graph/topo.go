package graph

// TopologicalOrder returns symbols in an order where every symbol comes
// before the symbols it depends on (dependents first). Uses Kahn's
// algorithm.
//
// If there are cycles, the returned order holds only the nodes that could
// be placed; the nodes on a cycle, and every node reachable from one, are
// left out of it and returned, unordered, as the second value instead.
func (g *Graph) TopologicalOrder() (order []Symbol, cyclic []Symbol) {
	inDegree := make(map[Symbol]int)
	for sym := range g.nodes {
		inDegree[sym] = 0
	}
	for _, deps := range g.edges {
		for _, dep := range deps {
			inDegree[dep]++
		}
	}

	var queue []Symbol
	for sym, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, sym)
		}
	}

	for len(queue) > 0 {
		sym := queue[0]
		queue = queue[1:]
		order = append(order, sym)

		for _, dep := range g.edges[sym] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	for sym, degree := range inDegree {
		if degree > 0 {
			cyclic = append(cyclic, sym)
		}
	}

	return order, cyclic
}

// ResolutionOrder returns symbols in the order they should be resolved:
// dependencies before the symbols that depend on them. This is the reverse
// of TopologicalOrder (which orders dependents first).
func (g *Graph) ResolutionOrder() (order []Symbol, cyclic []Symbol) {
	topo, cyc := g.TopologicalOrder()
	for i := len(topo) - 1; i >= 0; i-- {
		order = append(order, topo[i])
	}
	return order, cyc
}
