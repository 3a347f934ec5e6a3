package astar

import (
	"errors"
	"time"
)

// Sentinel errors returned by Search.
var (
	// ErrNilGraph indicates that a nil Graph was passed to Search.
	ErrNilGraph = errors.New("astar: graph is nil")

	// ErrNoLayers indicates a graph without layers.
	ErrNoLayers = errors.New("astar: graph has no layers")

	// ErrNoPathFound indicates that GOAL is unreachable.
	ErrNoPathFound = errors.New("astar: no path found")

	// ErrSearchAborted indicates cancellation, an expired time limit or an
	// exhausted expansion budget.
	ErrSearchAborted = errors.New("astar: search aborted")

	// ErrNegativeWeight indicates a negative or NaN arc weight.
	ErrNegativeWeight = errors.New("astar: negative edge weight encountered")

	// ErrBadTimeLimit indicates a negative time limit.
	ErrBadTimeLimit = errors.New("astar: TimeLimit must be non-negative")

	// ErrBadMaxExpansions indicates a negative expansion budget.
	ErrBadMaxExpansions = errors.New("astar: MaxExpansions must be non-negative")

	// ErrBadHeuristic indicates an unknown heuristic.
	ErrBadHeuristic = errors.New("astar: unknown heuristic")
)

// Graph is an implicit layered DAG.
//
// Layers returns the number of layers; layer indexes run 0..Layers()-1.
// Nodes returns the nodes of one layer. Search calls it at most once per
// layer and keeps the slice; an error aborts the search.
// NodeCost is the cost of entering n, charged once. It must be ≥ 0.
// Transition is the cost of stepping prev → next; prev is nil from START and
// next is nil into GOAL. It must be ≥ 0.
type Graph[N any] interface {
	Layers() int
	Nodes(layer int) ([]N, error)
	NodeCost(n *N) float64
	Transition(prev, next *N) float64
}

// Heuristic selects the estimate of the remaining cost.
type Heuristic int

const (
	// MinNodeCost sums the cheapest NodeCost of every remaining layer.
	MinNodeCost Heuristic = iota

	// Zero always estimates 0 (uniform-cost search).
	Zero
)

// String returns the heuristic name.
func (h Heuristic) String() string {
	switch h {
	case MinNodeCost:
		return "min-node-cost"
	case Zero:
		return "zero"
	default:
		return "unknown"
	}
}

// Path is the result of a successful search.
//
// Nodes          – one node per layer, in layer order.
// Index          – Index[i] is the position of Nodes[i] within Nodes(i).
// Cost           – total arc weight from START to GOAL.
// TransitionCost – the part of Cost spent on transitions.
// Expanded       – states popped and expanded (START and GOAL included).
// Pushed         – entries pushed onto the open set.
type Path[N any] struct {
	Nodes          []N
	Index          []int
	Cost           float64
	TransitionCost float64
	Expanded       int
	Pushed         int
}

// Options configures Search.
//
// Heuristic     – remaining-cost estimate. Default MinNodeCost.
// TimeLimit     – wall-clock budget; 0 disables it.
// MaxExpansions – cap on expanded states; 0 disables it.
type Options struct {
	Heuristic     Heuristic
	TimeLimit     time.Duration
	MaxExpansions int
}

// Option represents a functional option for Search.
type Option func(*Options)

// WithHeuristic selects the heuristic.
func WithHeuristic(h Heuristic) Option {
	return func(o *Options) {
		o.Heuristic = h
	}
}

// WithTimeLimit bounds the wall-clock time of a search.
// Panics on a negative duration.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			panic(ErrBadTimeLimit.Error())
		}
		o.TimeLimit = d
	}
}

// WithMaxExpansions bounds the number of expanded states.
// Panics on a negative budget.
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic(ErrBadMaxExpansions.Error())
		}
		o.MaxExpansions = n
	}
}

// DefaultOptions returns MinNodeCost with no time or expansion limit.
func DefaultOptions() Options {
	return Options{
		Heuristic:     MinNodeCost,
		TimeLimit:     0,
		MaxExpansions: 0,
	}
}
