// Package graph builds a dependency graph over module IMPORTS clauses, so
// a multi-module load can compute the order in which to merge compiled
// modules and flag import cycles.
package graph

import "github.com/BabisK/snmpcodec/mib"

// Symbol identifies a module-level dependency node. Reuses mib.Symbol so
// callers can pass the same identifiers they use with mib.Store.
type Symbol = mib.Symbol

// NodeKind classifies what a graph node represents.
type NodeKind int

const (
	NodeKindModule NodeKind = iota
	NodeKindType
	NodeKindOid
)

// Graph is a dependency graph of symbols with forward and reverse edges.
type Graph struct {
	nodes   map[Symbol]*Node
	edges   map[Symbol][]Symbol
	reverse map[Symbol][]Symbol
}

// Node holds metadata about a symbol in the graph.
type Node struct {
	Symbol   Symbol
	Kind     NodeKind
	Resolved bool
}

// New creates an empty dependency graph.
func New() *Graph {
	return &Graph{
		nodes:   make(map[Symbol]*Node),
		edges:   make(map[Symbol][]Symbol),
		reverse: make(map[Symbol][]Symbol),
	}
}

// AddNode registers a symbol with its kind, if not already present.
func (g *Graph) AddNode(sym Symbol, kind NodeKind) {
	if _, exists := g.nodes[sym]; !exists {
		g.nodes[sym] = &Node{Symbol: sym, Kind: kind}
	}
}

// HasNode reports whether sym has been registered.
func (g *Graph) HasNode(sym Symbol) bool {
	_, ok := g.nodes[sym]
	return ok
}

// AddEdge records that "from" depends on "to", meaning "to" must be
// resolved before "from". Missing nodes are created implicitly. Duplicate
// edges are not added twice.
func (g *Graph) AddEdge(from, to Symbol) {
	if _, ok := g.nodes[from]; !ok {
		g.nodes[from] = &Node{Symbol: from}
	}
	if _, ok := g.nodes[to]; !ok {
		g.nodes[to] = &Node{Symbol: to}
	}
	for _, existing := range g.edges[from] {
		if existing == to {
			return
		}
	}
	g.edges[from] = append(g.edges[from], to)
	g.reverse[to] = append(g.reverse[to], from)
}

// Node returns the metadata for a symbol, or nil if not present.
func (g *Graph) Node(sym Symbol) *Node {
	return g.nodes[sym]
}

// Dependencies returns the symbols that sym depends on (forward edges).
func (g *Graph) Dependencies(sym Symbol) []Symbol {
	return g.edges[sym]
}

// Dependents returns the symbols that depend on sym (reverse edges).
func (g *Graph) Dependents(sym Symbol) []Symbol {
	return g.reverse[sym]
}

// Nodes returns all registered nodes, in no particular order.
func (g *Graph) Nodes() []*Node {
	result := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		result = append(result, n)
	}
	return result
}

// MarkResolved flags a symbol as fully resolved.
func (g *Graph) MarkResolved(sym Symbol) {
	if n := g.nodes[sym]; n != nil {
		n.Resolved = true
	}
}

// IsResolved reports whether the symbol has been resolved.
func (g *Graph) IsResolved(sym Symbol) bool {
	if n := g.nodes[sym]; n != nil {
		return n.Resolved
	}
	return false
}
