package astar

import (
	"container/heap"
	"context"
	"fmt"
	"math"
	"time"
)

// Search returns the minimum-cost START → GOAL path through g.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGraph).
//  2. g must have at least one layer (ErrNoLayers).
//  3. The heuristic must be known (ErrBadHeuristic).
//
// The loop then pops states in (f, transition, insertion) order. Before every
// pop it checks ctx, the time limit and the expansion budget, returning
// ErrSearchAborted when any is exhausted. Layer errors from g are returned
// unchanged and immediately.
func Search[N any](ctx context.Context, g Graph[N], opts ...Option) (Path[N], error) {
	// 1) Build options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate inputs.
	if g == nil {
		return Path[N]{}, ErrNilGraph
	}
	n := g.Layers()
	if n <= 0 {
		return Path[N]{}, ErrNoLayers
	}
	if cfg.Heuristic != MinNodeCost && cfg.Heuristic != Zero {
		return Path[N]{}, fmt.Errorf("%w: %d", ErrBadHeuristic, int(cfg.Heuristic))
	}
	if ctx == nil {
		ctx = context.Background()
	}

	// 3) Prepare the runner.
	r := &runner[N]{
		g:      g,
		opts:   cfg,
		n:      n,
		layers: make([][]N, n),
		loaded: make([]bool, n),
		best:   make(map[state]float64),
		trans:  make(map[state]float64),
		parent: make(map[state]state),
		closed: make(map[state]bool),
	}
	if cfg.TimeLimit > 0 {
		r.deadline = time.Now().Add(cfg.TimeLimit)
	}

	// 4) Heuristic table, when requested.
	if err := r.initHeuristic(); err != nil {
		return Path[N]{}, err
	}

	// 5) Run.
	return r.run(ctx)
}

// state identifies a search node: a layer and an index into that layer.
// START is {-1, -1}; GOAL is {n, -1}.
type state struct {
	layer int
	idx   int
}

// runner holds the mutable state of a single search.
type runner[N any] struct {
	g        Graph[N]
	opts     Options
	n        int
	deadline time.Time

	layers [][]N  // materialized layers
	loaded []bool // loaded[i] once layers[i] was fetched
	suffix []float64

	best   map[state]float64 // best known g
	trans  map[state]float64 // transition part of best g
	parent map[state]state
	closed map[state]bool

	pq       itemPQ
	seq      uint64
	expanded int
	pushed   int
}

// layer returns the nodes of layer i, fetching them on first use.
func (r *runner[N]) layer(i int) ([]N, error) {
	if r.loaded[i] {
		return r.layers[i], nil
	}
	nodes, err := r.g.Nodes(i)
	if err != nil {
		return nil, err
	}
	r.layers[i] = nodes
	r.loaded[i] = true

	return nodes, nil
}

// initHeuristic fills suffix[i] = Σ_{k≥i} min NodeCost(layer k), suffix[n] = 0.
// Layers are fetched in ascending order, so the first failing layer wins.
func (r *runner[N]) initHeuristic() error {
	r.suffix = make([]float64, r.n+1)
	if r.opts.Heuristic == Zero {
		return nil
	}

	mins := make([]float64, r.n)
	for i := 0; i < r.n; i++ {
		nodes, err := r.layer(i)
		if err != nil {
			return err
		}
		lo := math.Inf(1)
		for j := range nodes {
			if c := r.g.NodeCost(&nodes[j]); c < lo {
				lo = c
			}
		}
		if math.IsInf(lo, 1) {
			// Empty layer: no admissible estimate beyond zero; the search
			// will report ErrNoPathFound.
			lo = 0
		}
		mins[i] = lo
	}
	for i := r.n - 1; i >= 0; i-- {
		r.suffix[i] = r.suffix[i+1] + mins[i]
	}

	return nil
}

// h estimates the remaining cost from a state in the given layer.
func (r *runner[N]) h(layer int) float64 {
	if layer+1 > r.n {
		return 0
	}

	return r.suffix[layer+1]
}

// node returns a pointer to the node of s, or nil for START and GOAL.
func (r *runner[N]) node(s state) *N {
	if s.idx < 0 {
		return nil
	}

	return &r.layers[s.layer][s.idx]
}

// checkBudget reports ErrSearchAborted when ctx, deadline or budget ran out.
func (r *runner[N]) checkBudget(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSearchAborted, err)
	}
	if !r.deadline.IsZero() && time.Now().After(r.deadline) {
		return fmt.Errorf("%w: time limit %s exceeded", ErrSearchAborted, r.opts.TimeLimit)
	}
	if r.opts.MaxExpansions > 0 && r.expanded >= r.opts.MaxExpansions {
		return fmt.Errorf("%w: expansion budget %d exhausted", ErrSearchAborted, r.opts.MaxExpansions)
	}

	return nil
}

// run is the main A* loop.
func (r *runner[N]) run(ctx context.Context) (Path[N], error) {
	start := state{layer: -1, idx: -1}
	goal := state{layer: r.n, idx: -1}

	heap.Init(&r.pq)
	r.best[start] = 0
	r.trans[start] = 0
	r.push(start, 0, 0)

	for r.pq.Len() > 0 {
		// 1) Budget checks precede every pop.
		if err := r.checkBudget(ctx); err != nil {
			return Path[N]{}, err
		}

		// 2) Pop and skip stale or closed entries.
		it := heap.Pop(&r.pq).(*item)
		if r.closed[it.st] || it.g > r.best[it.st] {
			continue
		}
		r.closed[it.st] = true
		r.expanded++

		// 3) GOAL popped: the path is optimal.
		if it.st == goal {
			return r.reconstruct(goal), nil
		}

		// 4) Relax successors.
		if err := r.expand(it.st); err != nil {
			return Path[N]{}, err
		}
	}

	return Path[N]{}, ErrNoPathFound
}

// expand relaxes every arc leaving s.
func (r *runner[N]) expand(s state) error {
	next := s.layer + 1
	prev := r.node(s)
	g := r.best[s]
	tr := r.trans[s]

	// Last layer: the only successor is GOAL.
	if next == r.n {
		w := r.g.Transition(prev, nil)
		if err := checkWeight(w, s, state{layer: next, idx: -1}); err != nil {
			return err
		}
		r.relax(s, state{layer: next, idx: -1}, g+w, tr+w)

		return nil
	}

	nodes, err := r.layer(next)
	if err != nil {
		return err
	}
	for j := range nodes {
		to := state{layer: next, idx: j}
		if r.closed[to] {
			continue
		}
		t := r.g.Transition(prev, &nodes[j])
		if err := checkWeight(t, s, to); err != nil {
			return err
		}
		c := r.g.NodeCost(&nodes[j])
		if err := checkWeight(c, s, to); err != nil {
			return err
		}
		r.relax(s, to, g+t+c, tr+t)
	}

	return nil
}

// relax records a strictly better g for to and pushes it.
func (r *runner[N]) relax(from, to state, g, tr float64) {
	if old, ok := r.best[to]; ok && g >= old {
		return
	}
	r.best[to] = g
	r.trans[to] = tr
	r.parent[to] = from
	r.push(to, g, tr)
}

// push adds a state to the open set with f = g + h.
func (r *runner[N]) push(s state, g, tr float64) {
	heap.Push(&r.pq, &item{
		st:  s,
		g:   g,
		f:   g + r.h(s.layer),
		tr:  tr,
		seq: r.seq,
	})
	r.seq++
	r.pushed++
}

// reconstruct follows parents from GOAL back to START.
func (r *runner[N]) reconstruct(goal state) Path[N] {
	p := Path[N]{
		Nodes:          make([]N, r.n),
		Index:          make([]int, r.n),
		Cost:           r.best[goal],
		TransitionCost: r.trans[goal],
		Expanded:       r.expanded,
		Pushed:         r.pushed,
	}
	for s := r.parent[goal]; s.layer >= 0; s = r.parent[s] {
		p.Nodes[s.layer] = r.layers[s.layer][s.idx]
		p.Index[s.layer] = s.idx
	}

	return p
}

// checkWeight rejects negative and NaN arc weights.
func checkWeight(w float64, from, to state) error {
	if w < 0 || math.IsNaN(w) {
		return fmt.Errorf("%w: layer %d[%d] → layer %d[%d] weight=%v",
			ErrNegativeWeight, from.layer, from.idx, to.layer, to.idx, w)
	}

	return nil
}

// item is one open-set entry.
type item struct {
	st  state
	f   float64 // g + h
	g   float64 // accumulated cost
	tr  float64 // accumulated transition cost
	seq uint64  // insertion order
}

// itemPQ is a min-heap of *item ordered by (f, tr, seq).
type itemPQ []*item

// Len returns the number of items in the heap.
func (pq itemPQ) Len() int { return len(pq) }

// Less orders by f, then accumulated transition cost, then insertion order.
func (pq itemPQ) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.tr != b.tr {
		return a.tr < b.tr
	}

	return a.seq < b.seq
}

// Swap swaps two elements in the heap.
func (pq itemPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap.
func (pq *itemPQ) Push(x interface{}) { *pq = append(*pq, x.(*item)) }

// Pop removes and returns the last element of the backing slice.
func (pq *itemPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return it
}
