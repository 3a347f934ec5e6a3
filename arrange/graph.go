package arrange

import (
	"github.com/katalvlaran/fretwork/astar"
	"github.com/katalvlaran/fretwork/cost"
	"github.com/katalvlaran/fretwork/fretboard"
	"github.com/katalvlaran/fretwork/score"
	"github.com/katalvlaran/fretwork/shape"
)

// Graph is the implicit fingering graph over a sequence of events.
// It implements astar.Graph[shape.Assignment].
//
// Layer i holds the shapes of events[i]. Nothing is enumerated until the
// search asks for a layer; enumeration goes through the cache, so repeated
// pitch sets are enumerated once.
type Graph struct {
	fb     *fretboard.Fretboard
	model  cost.Model
	events []score.Event
	cache  *shape.Cache
}

var _ astar.Graph[shape.Assignment] = (*Graph)(nil)

// NewGraph returns the fingering graph of events on fb priced by m.
// A nil cache gets a private one.
func NewGraph(fb *fretboard.Fretboard, m cost.Model, events []score.Event, c *shape.Cache) *Graph {
	if c == nil {
		c = shape.NewCache()
	}

	return &Graph{fb: fb, model: m, events: events, cache: c}
}

// Layers returns the number of events.
func (g *Graph) Layers() int { return len(g.events) }

// Nodes enumerates the shapes of event i. Failures are *shape.UnplayableEventError.
func (g *Graph) Nodes(i int) ([]shape.Assignment, error) {
	return g.cache.Enumerate(g.fb, g.events[i])
}

// NodeCost is the intra-shape cost.
func (g *Graph) NodeCost(a *shape.Assignment) float64 { return g.model.Intra(*a) }

// Transition is the movement cost between consecutive shapes.
func (g *Graph) Transition(prev, next *shape.Assignment) float64 {
	return g.model.Transition(prev, next)
}

// Assemble zips events with the shapes of a successful path.
// The path must hold one node per event.
func Assemble(events []score.Event, path astar.Path[shape.Assignment]) []Step {
	steps := make([]Step, len(events))
	for i, ev := range events {
		steps[i] = Step{Event: ev, Assignment: path.Nodes[i]}
	}

	return steps
}
