package heat

import (
	"errors"
	"fmt"

	"github.com/rvheat/rvheat/internal/cfg"
)

var (
	// ErrInvalidGraph reports a graph that violates the structural
	// preconditions of the analysis (missing entry or exit, dangling edges).
	ErrInvalidGraph = errors.New("invalid graph")

	// ErrNegativeMaxHeat reports a negative heat ceiling.
	ErrNegativeMaxHeat = errors.New("negative max heat")

	// ErrUnresolvableCycle reports loop-back nodes none of whose
	// predecessors ever resolve, which would otherwise retry forever.
	ErrUnresolvableCycle = errors.New("unresolvable cycle")
)

// nodeState tags a node's position in the deferred-dataflow state machine.
type nodeState int

const (
	stateUnresolved nodeState = iota
	stateDeferred
	stateResolved
)

// nodeResult is one node's finished analysis: its heat map fragment and the
// register file's heat on exit from the node.
type nodeResult struct {
	fragment Map
	final    Vector
}

// scratch is the per-invocation working table. It exists only for the
// duration of one Propagate call.
type scratch struct {
	results map[int]nodeResult
	state   map[int]nodeState
}

func newScratch() *scratch {
	return &scratch{
		results: make(map[int]nodeResult),
		state:   make(map[int]nodeState),
	}
}

func (s *scratch) resolve(id int, fragment Map, final Vector) {
	s.results[id] = nodeResult{fragment: fragment, final: final}
	s.state[id] = stateResolved
}

func (s *scratch) resolved(id int) bool { return s.state[id] == stateResolved }

func (s *scratch) allResolved(ids []int) bool {
	for _, id := range ids {
		if !s.resolved(id) {
			return false
		}
	}
	return true
}

func (s *scratch) drop(id int) {
	delete(s.results, id)
	delete(s.state, id)
}

// worklist is an explicit LIFO stack of paths awaiting processing.
type worklist struct {
	paths [][]int
}

func (w *worklist) push(path []int) {
	w.paths = append(w.paths, path)
}

func (w *worklist) pushAll(paths [][]int) {
	w.paths = append(w.paths, paths...)
}

func (w *worklist) pop() ([]int, bool) {
	if len(w.paths) == 0 {
		return nil, false
	}
	path := w.paths[len(w.paths)-1]
	w.paths = w.paths[:len(w.paths)-1]
	return path, true
}

// Propagate computes the register heat map of a whole procedure.
//
// The engine first hides the graph's loop-back nodes to obtain an acyclic
// view, then walks every simple entry-to-exit path in that view. A node
// reached by a single edge is computed directly from its predecessor's
// final vector. A merge point is deferred until every one of its
// predecessors has a finalized vector; the suffixes of paths that arrived
// early wait on a per-node list and are replayed once the merge resolves,
// seeded with the mediated mean of all incoming vectors. Loop-back nodes
// are closed afterwards against the original cyclic graph.
//
// The result maps every reachable instruction line to its heat vector. A
// graph with no entry-to-exit path yields an empty map. The computation is
// deterministic: identical inputs produce identical maps.
func Propagate(g *cfg.Graph, maxHeat int) (Map, error) {
	if maxHeat < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeMaxHeat, maxHeat)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGraph, err)
	}

	loopBack := g.LoopBackNodes()
	hidden := make(map[int]bool, len(loopBack))
	for _, id := range loopBack {
		hidden[id] = true
	}
	view := g.WithoutNodes(hidden)

	work := &worklist{}
	for _, path := range view.SimplePaths(cfg.EntryID, cfg.ExitID) {
		work.push(path)
	}
	merges := view.MergePoints()

	// The exit sentinel doubles as the pseudo-entry: its all-cold final
	// vector models "no register has ever been written" before the
	// procedure starts.
	sc := newScratch()
	sc.resolve(cfg.ExitID, Map{}, Vector{})

	// Deferred path suffixes, keyed by the merge point they stopped at.
	waiting := make(map[int][][]int)

	for {
		path, ok := work.pop()
		if !ok {
			break
		}

	walk:
		for i, id := range path {
			if sc.resolved(id) {
				continue
			}

			if !merges[id] {
				// Linear flow: seed from the node's only predecessor, or
				// from the pseudo-entry for the procedure entry itself.
				incoming := sc.results[cfg.ExitID].final
				if preds := view.Predecessors(id); len(preds) > 0 {
					incoming = sc.results[preds[0]].final
				}
				fragment, final := NodeHeat(nodeContent(view, id), maxHeat, incoming)
				sc.resolve(id, fragment, final)
				continue
			}

			stump := append([]int(nil), path[i:]...)
			switch {
			case waiting[id] == nil:
				// First arrival at an unresolved merge: park this path's
				// suffix and abandon the walk.
				waiting[id] = [][]int{stump}
				sc.state[id] = stateDeferred
				break walk
			case sc.allResolved(view.Predecessors(id)):
				// Every incoming edge has contributed: replay the parked
				// suffixes and resolve the merge from the mediated mean.
				work.pushAll(waiting[id])
				delete(waiting, id)

				preds := view.Predecessors(id)
				finals := make([]Vector, len(preds))
				for n, pred := range preds {
					finals[n] = sc.results[pred].final
				}
				fragment, final := NodeHeat(nodeContent(view, id), maxHeat, Mediate(finals))
				sc.resolve(id, fragment, final)
			default:
				waiting[id] = append(waiting[id], stump)
				break walk
			}
		}
	}

	// The pseudo-entry is not a real instruction location.
	sc.drop(cfg.ExitID)

	if err := closeCycles(g, sc, loopBack, maxHeat); err != nil {
		return nil, err
	}

	heatmap := make(Map)
	for _, result := range sc.results {
		for line, vector := range result.fragment {
			heatmap[line] = vector
		}
	}
	return heatmap, nil
}

// closeCycles extends the scratch table over the loop-back nodes, which the
// acyclic traversal skipped, resolving each against the original cyclic
// graph.
//
// A node is seeded from the first of its predecessors holding a finalized
// vector; there is no mediation here, loops are assumed not to contain
// further internal branching. Nodes without a resolved predecessor are
// retried in later rounds. A full round without progress means no pending
// node can ever resolve, and the pass fails instead of spinning.
func closeCycles(g *cfg.Graph, sc *scratch, pending []int, maxHeat int) error {
	queue := append([]int(nil), pending...)
	for len(queue) > 0 {
		var deferred []int
		for _, id := range queue {
			seeded := false
			for _, pred := range g.Predecessors(id) {
				if sc.resolved(pred) {
					fragment, final := NodeHeat(nodeContent(g, id), maxHeat, sc.results[pred].final)
					sc.resolve(id, fragment, final)
					seeded = true
					break
				}
			}
			if !seeded {
				deferred = append(deferred, id)
			}
		}

		if len(deferred) == len(queue) {
			return fmt.Errorf("%w: no predecessor of nodes %v ever resolves", ErrUnresolvableCycle, deferred)
		}
		queue = deferred
	}
	return nil
}

func nodeContent(g *cfg.Graph, id int) cfg.Node {
	node, ok := g.Node(id)
	if !ok {
		// Validate guarantees registered endpoints; an unregistered node
		// here is contained by treating it as opaque external code.
		return cfg.External{}
	}
	return node
}
