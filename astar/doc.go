// Package astar finds the minimum-cost path through an implicit layered DAG
// with A* search.
//
// Overview:
//
//   - The graph is never stored. A Graph[N] exposes its layers lazily: Nodes(i)
//     returns the candidates of layer i, NodeCost prices entering a node and
//     Transition prices the step between nodes of consecutive layers.
//   - Search walks from a synthetic START (layer −1) through every layer to a
//     synthetic GOAL (layer Layers()). Edges only join consecutive layers, so
//     the graph is acyclic by construction.
//   - The weight of the arc u → v is Transition(u, v) + NodeCost(v). From START
//     the previous node is nil; into GOAL the next node is nil and NodeCost is
//     not charged.
//
// Heuristics:
//
//   - MinNodeCost (default): h(layer i) = Σ_{k>i} min_{v∈layer k} NodeCost(v).
//     It ignores the non-negative transitions and credits the cheapest shape of
//     every remaining layer, so it never overestimates and satisfies
//     h(i) ≤ w(u, v) + h(i+1). Computing it materializes every layer up front.
//   - Zero: h ≡ 0. The search degenerates into Dijkstra and enumerates layer
//     i+1 only when a node of layer i is first expanded.
//
// Ordering and determinism:
//
//	The open set is a binary heap ordered by f = g + h, then by the smaller
//	accumulated transition cost (g without the node costs), then by insertion
//	order. Given a deterministic Graph, two searches return identical paths.
//
// Closed set and parents:
//
//	A best-g table keyed by (layer, node index) drops stale queue entries
//	(“lazy decrease-key”). Parent pointers are set when a state is first
//	reached and replaced whenever a strictly better g is found. The path is
//	rebuilt from GOAL when GOAL is popped.
//
// Complexity:
//
//	Let L = layers and K = max nodes per layer. Time O(L·K²·log(L·K)),
//	space O(L·K) for the tables and the heap.
//
// Errors (sentinel):
//
//   - ErrNilGraph       g is nil.
//   - ErrNoLayers       g has no layers.
//   - ErrNoPathFound    the queue emptied before GOAL (an empty layer, say).
//   - ErrSearchAborted  the context was cancelled, the time limit passed or the
//     expansion budget ran out. Checked before every pop.
//   - ErrNegativeWeight an arc weight was negative or NaN.
//   - Errors returned by Graph.Nodes abort the search and are returned as is.
package astar
