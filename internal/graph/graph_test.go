package graph

import "testing"

func sym(module, name string) Symbol { return Symbol{Module: module, Name: name} }

func TestGraphBasic(t *testing.T) {
	g := New()
	a, b := sym("M", "a"), sym("M", "b")
	g.AddNode(a, NodeKindModule)
	g.AddNode(b, NodeKindModule)
	g.AddEdge(a, b)

	if !g.HasNode(a) || !g.HasNode(b) {
		t.Fatal("graph should have both nodes")
	}
	if len(g.Dependencies(a)) != 1 || g.Dependencies(a)[0] != b {
		t.Errorf("a dependencies = %v, want [b]", g.Dependencies(a))
	}
	if len(g.Dependents(b)) != 1 || g.Dependents(b)[0] != a {
		t.Errorf("b dependents = %v, want [a]", g.Dependents(b))
	}
}

func TestAddEdgeCreatesNodes(t *testing.T) {
	g := New()
	a, b := sym("M", "a"), sym("M", "b")
	g.AddEdge(a, b)
	if !g.HasNode(a) || !g.HasNode(b) {
		t.Error("AddEdge should create both endpoints")
	}
}

func TestAddEdgeDeduplicates(t *testing.T) {
	g := New()
	a, b := sym("M", "a"), sym("M", "b")
	g.AddEdge(a, b)
	g.AddEdge(a, b)
	g.AddEdge(a, b)
	if len(g.Dependencies(a)) != 1 {
		t.Errorf("dependencies = %d, want 1 (duplicate edges deduplicated)", len(g.Dependencies(a)))
	}
}

func TestResolutionOrderChain(t *testing.T) {
	g := New()
	a, b, c := sym("M", "a"), sym("M", "b"), sym("M", "c")
	g.AddEdge(a, b)
	g.AddEdge(b, c)

	order, cycles := g.ResolutionOrder()
	if len(cycles) != 0 {
		t.Fatalf("cycles = %d, want 0", len(cycles))
	}
	pos := map[Symbol]int{}
	for i, s := range order {
		pos[s] = i
	}
	if pos[c] > pos[b] || pos[b] > pos[a] {
		t.Errorf("order = %v, want c before b before a", order)
	}
}

func TestResolutionOrderSimpleCycle(t *testing.T) {
	g := New()
	a, b := sym("M", "a"), sym("M", "b")
	g.AddEdge(a, b)
	g.AddEdge(b, a)

	order, cycles := g.ResolutionOrder()
	if len(order) != 0 {
		t.Errorf("order = %d, want 0 (all nodes in cycle)", len(order))
	}
	if len(cycles) != 2 {
		t.Fatalf("cycles = %v, want both nodes of the 2-node cycle", cycles)
	}
}

func TestSelfLoopIsACycle(t *testing.T) {
	g := New()
	a, b := sym("M", "a"), sym("M", "b")
	g.AddEdge(a, a)
	g.AddEdge(b, a)

	if !g.HasCycles() {
		t.Error("self-loop should be reported as a cycle")
	}
	cycles := g.FindCycles()
	if len(cycles) != 1 || len(cycles[0]) != 1 || cycles[0][0] != a {
		t.Errorf("cycles = %v, want [[a]]", cycles)
	}
}

func TestResolutionOrderDiamond(t *testing.T) {
	g := New()
	a, b, c, d := sym("M", "a"), sym("M", "b"), sym("M", "c"), sym("M", "d")
	g.AddEdge(a, b)
	g.AddEdge(a, c)
	g.AddEdge(b, d)
	g.AddEdge(c, d)

	order, cycles := g.ResolutionOrder()
	if len(cycles) != 0 {
		t.Fatalf("cycles = %d, want 0", len(cycles))
	}
	pos := map[Symbol]int{}
	for i, s := range order {
		pos[s] = i
	}
	if pos[d] > pos[b] || pos[d] > pos[c] || pos[b] > pos[a] || pos[c] > pos[a] {
		t.Errorf("order = %v, want d before b,c before a", order)
	}
}

func TestMarkResolved(t *testing.T) {
	g := New()
	a := sym("M", "a")
	g.AddNode(a, NodeKindModule)
	if g.IsResolved(a) {
		t.Error("fresh node should not be resolved")
	}
	g.MarkResolved(a)
	if !g.IsResolved(a) {
		t.Error("node should be resolved after MarkResolved")
	}
}
