package cfg

import "sort"

// BackEdges finds the loop-closing edges of the graph: a DFS from the entry
// node classifies an edge as a back edge when its target is still on the
// active DFS stack.
func (g *Graph) BackEdges() []Edge {
	const (
		white = iota // unvisited
		grey         // on the DFS stack
		black        // finished
	)
	color := make(map[int]int, len(g.nodes))

	var edges []Edge
	var visit func(id int)
	visit = func(id int) {
		color[id] = grey
		for _, succ := range g.succs[id] {
			switch color[succ] {
			case white:
				visit(succ)
			case grey:
				edges = append(edges, Edge{From: id, To: succ})
			}
		}
		color[id] = black
	}
	visit(EntryID)

	return edges
}

// SimplePaths enumerates every simple path between two nodes. Paths never
// repeat a node, so cycles are skipped naturally even on the full graph.
// Enumeration order is deterministic: successors are explored in edge
// insertion order.
func (g *Graph) SimplePaths(from, to int) [][]int {
	var paths [][]int
	onPath := make(map[int]bool, len(g.nodes))
	path := []int{}

	var walk func(id int)
	walk = func(id int) {
		path = append(path, id)
		onPath[id] = true

		if id == to {
			paths = append(paths, append([]int(nil), path...))
		} else {
			for _, succ := range g.succs[id] {
				if !onPath[succ] {
					walk(succ)
				}
			}
		}

		onPath[id] = false
		path = path[:len(path)-1]
	}
	walk(from)

	return paths
}

// LoopBackNodes returns the nodes whose only role is closing cycles:
// reachable nodes that lie on a cycle but on no simple entry-to-exit path.
// Hiding them leaves an acyclic view in which every remaining node's
// predecessor census reflects forward control flow only. Reachable dead
// ends that close no cycle are not included; they are simply never
// traversed.
func (g *Graph) LoopBackNodes() []int {
	onPath := make(map[int]bool, len(g.nodes))
	for _, path := range g.SimplePaths(EntryID, ExitID) {
		for _, id := range path {
			onPath[id] = true
		}
	}

	var nodes []int
	for id := range g.reachable(EntryID) {
		if !onPath[id] && g.onCycle(id) {
			nodes = append(nodes, id)
		}
	}
	sort.Ints(nodes)
	return nodes
}

// onCycle reports whether the node can reach itself again.
func (g *Graph) onCycle(id int) bool {
	for _, succ := range g.succs[id] {
		if succ == id || g.reachable(succ)[id] {
			return true
		}
	}
	return false
}

// MergePoints returns the set of nodes with more than one predecessor.
// Callers interested in forward control flow apply this to the view with
// loop-back nodes hidden.
func (g *Graph) MergePoints() map[int]bool {
	merges := make(map[int]bool)
	for id, preds := range g.preds {
		if len(preds) > 1 {
			merges[id] = true
		}
	}
	return merges
}

// reachable returns the set of nodes reachable from the given node.
func (g *Graph) reachable(from int) map[int]bool {
	seen := map[int]bool{from: true}
	work := []int{from}
	for len(work) > 0 {
		id := work[len(work)-1]
		work = work[:len(work)-1]
		for _, succ := range g.succs[id] {
			if !seen[succ] {
				seen[succ] = true
				work = append(work, succ)
			}
		}
	}
	return seen
}
