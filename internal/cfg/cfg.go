// Package cfg models a procedure's control-flow graph as an index-addressed
// node table. Nodes are identified by integers and edges are stored as ID
// pairs, so cyclic graphs never form ownership cycles between node values.
package cfg

import (
	"fmt"
	"sort"

	"github.com/rvheat/rvheat/internal/asm"
)

const (
	// ExitID is the virtual exit sentinel. It carries no code and exists
	// only to bound path enumeration.
	ExitID = 0
	// EntryID is the procedure entry node.
	EntryID = 1
)

// Node is the content of a CFG node: either opaque external code or a
// concrete basic block.
type Node interface {
	nodeKind()
}

// External marks a node whose code is unknown. Analyses must treat it
// pessimistically: it may clobber anything and guarantees nothing.
type External struct{}

func (External) nodeKind() {}

// BlockNode wraps a concrete basic block.
type BlockNode struct {
	Block *asm.Block
}

func (BlockNode) nodeKind() {}

// Edge is a directed edge between two node IDs.
type Edge struct {
	From int
	To   int
}

// Graph is a directed graph over integer-identified nodes.
type Graph struct {
	nodes map[int]Node
	succs map[int][]int
	preds map[int][]int
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[int]Node),
		succs: make(map[int][]int),
		preds: make(map[int][]int),
	}
}

// AddNode registers a node under the given ID, replacing any previous node
// with that ID. Edges are unaffected.
func (g *Graph) AddNode(id int, node Node) {
	g.nodes[id] = node
}

// AddEdge adds a directed edge. Duplicate edges are ignored. Endpoints may
// be added before their nodes; Validate reports dangling references.
func (g *Graph) AddEdge(from, to int) {
	for _, s := range g.succs[from] {
		if s == to {
			return
		}
	}
	g.succs[from] = append(g.succs[from], to)
	g.preds[to] = append(g.preds[to], from)
}

// Node returns the node registered under id.
func (g *Graph) Node(id int) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Len returns the number of registered nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// NodeIDs returns all registered node IDs in ascending order.
func (g *Graph) NodeIDs() []int {
	ids := make([]int, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Successors returns the targets of the node's outgoing edges, in edge
// insertion order.
func (g *Graph) Successors(id int) []int { return g.succs[id] }

// Predecessors returns the sources of the node's incoming edges, in edge
// insertion order.
func (g *Graph) Predecessors(id int) []int { return g.preds[id] }

// Validate checks the structural preconditions every analysis relies on:
// the entry and exit nodes exist and every edge endpoint is a registered
// node. A graph without an entry-to-exit path is valid; analyses simply
// produce empty results for it.
func (g *Graph) Validate() error {
	if _, ok := g.nodes[EntryID]; !ok {
		return fmt.Errorf("graph has no entry node (id %d)", EntryID)
	}
	if _, ok := g.nodes[ExitID]; !ok {
		return fmt.Errorf("graph has no exit sentinel (id %d)", ExitID)
	}
	for from, tos := range g.succs {
		if _, ok := g.nodes[from]; !ok {
			return fmt.Errorf("edge source %d is not a registered node", from)
		}
		for _, to := range tos {
			if _, ok := g.nodes[to]; !ok {
				return fmt.Errorf("edge %d -> %d targets an unregistered node", from, to)
			}
		}
	}
	return nil
}

// WithoutNodes returns a view of the graph with the given nodes and all
// their incident edges removed. The receiver is unchanged.
func (g *Graph) WithoutNodes(hidden map[int]bool) *Graph {
	view := New()
	for id, node := range g.nodes {
		if !hidden[id] {
			view.nodes[id] = node
		}
	}
	for _, from := range g.NodeIDs() {
		if hidden[from] {
			continue
		}
		for _, to := range g.succs[from] {
			if !hidden[to] {
				view.AddEdge(from, to)
			}
		}
	}
	return view
}
