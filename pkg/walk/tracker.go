package walk

import (
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/errors"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/graph"
)

// Tracker maps source identities to the graph nodes already created for
// them during one parse. The key is the parser's notion of "this exact
// composite instance" - in practice a *value.Sequence or *value.Mapping
// pointer - never content equality: two separately-built composites with
// identical content must remain two distinct nodes.
//
// A tracker belongs to a single walk and is discarded when the parse
// completes.
type Tracker struct {
	ids map[any]graph.NodeID
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{ids: make(map[any]graph.NodeID)}
}

// Lookup returns the node already registered for identity, if any.
func (t *Tracker) Lookup(identity any) (graph.NodeID, bool) {
	id, ok := t.ids[identity]
	return id, ok
}

// Register records the node created for identity. Re-registering an
// identity under a different node is an invariant violation: each source
// identity maps to exactly one node for the lifetime of one parse.
func (t *Tracker) Register(identity any, id graph.NodeID) error {
	if prev, ok := t.ids[identity]; ok && prev != id {
		return errors.New(errors.ErrCodeInternal,
			"source identity already registered to node %d, refusing rebind to %d", prev, id)
	}
	t.ids[identity] = id
	return nil
}

// Len returns the number of registered identities.
func (t *Tracker) Len() int { return len(t.ids) }
