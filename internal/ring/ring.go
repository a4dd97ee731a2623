package ring

import (
	"errors"
	"fmt"
	"sort"

	"ChordSim/internal/logger"
)

// Errors returned by Ring's operations. They wrap a detail with %w so
// callers can still errors.Is against the sentinel.
var (
	ErrOutOfBounds = errors.New("ring: node id out of bounds")
	ErrDuplicate   = errors.New("ring: node id already present")
	ErrNotFound    = errors.New("ring: node not found")
	ErrEmptyRing   = errors.New("ring: no live nodes")
)

// Ring is the registry of live nodes sharing one identifier Space. It is the
// arena that owns every Node: nodes never reach each other except through
// the pointers Ring wires up on Join and tears down on Leave.
type Ring struct {
	space Space
	nodes map[string]*Node
	lgr   logger.Logger
}

// Option configures a Ring at construction time.
type Option func(*Ring)

// WithLogger injects a structured logger; the default is a no-op logger.
func WithLogger(lgr logger.Logger) Option {
	return func(r *Ring) { r.lgr = lgr }
}

// New builds an empty ring over a bits-wide identifier space.
func New(bits int, opts ...Option) (*Ring, error) {
	space, err := NewSpace(bits)
	if err != nil {
		return nil, err
	}
	r := &Ring{
		space: space,
		nodes: make(map[string]*Node),
		lgr:   &logger.NopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Space exposes the ring's identifier space, e.g. for hashing keys outside
// of an Insert/Lookup/Delete call.
func (r *Ring) Space() Space { return r.space }

// Size reports the number of live nodes.
func (r *Ring) Size() int { return len(r.nodes) }

// Node returns the live node with the given id, if any.
func (r *Ring) Node(id int) (*Node, bool) {
	nid, err := r.space.FromInt(id)
	if err != nil {
		return nil, false
	}
	n, ok := r.nodes[nid.String()]
	return n, ok
}

// Join admits a new node at id. The first node admitted forms a singleton
// ring; every later node bootstraps its lookup off the numerically smallest
// live node, so joins never depend on which node the caller happened to
// remember.
func (r *Ring) Join(id int) (*Node, error) {
	nid, err := r.space.FromInt(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrOutOfBounds, id)
	}
	key := nid.String()
	if _, exists := r.nodes[key]; exists {
		return nil, fmt.Errorf("%w: %d", ErrDuplicate, id)
	}

	n := newNode(nid, r.space, r.lgr.Named("node").With(logger.F("id", key)))
	if len(r.nodes) == 0 {
		n.Join(nil)
	} else {
		n.Join(r.smallestLiveNode())
	}
	r.nodes[key] = n

	r.lgr.Info("ring: node joined", logger.F("id", key), logger.F("size", len(r.nodes)))
	return n, nil
}

// Leave removes the node at id from the ring, migrating its data to its
// successor first.
func (r *Ring) Leave(id int) error {
	nid, err := r.space.FromInt(id)
	if err != nil {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	key := nid.String()
	n, ok := r.nodes[key]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	n.Leave()
	delete(r.nodes, key)

	r.lgr.Info("ring: node left", logger.F("id", key), logger.F("size", len(r.nodes)))
	return nil
}

// Insert stores value under key, entering the ring through its smallest
// live node.
func (r *Ring) Insert(key, value string) error {
	entry, err := r.entryNode()
	if err != nil {
		return err
	}
	entry.Insert(key, value)
	return nil
}

// Lookup retrieves the value stored under key, if any.
func (r *Ring) Lookup(key string) (value string, ok bool, err error) {
	entry, err := r.entryNode()
	if err != nil {
		return "", false, err
	}
	value, ok = entry.Lookup(key)
	return value, ok, nil
}

// Delete removes key from the ring, if present.
func (r *Ring) Delete(key string) error {
	entry, err := r.entryNode()
	if err != nil {
		return err
	}
	entry.Delete(key)
	return nil
}

// NodesInOrder returns every live node sorted by ascending id.
func (r *Ring) NodesInOrder() []*Node {
	out := make([]*Node, 0, len(r.nodes))
	for _, n := range r.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id.Cmp(out[j].id) < 0 })
	return out
}

func (r *Ring) entryNode() (*Node, error) {
	if len(r.nodes) == 0 {
		return nil, ErrEmptyRing
	}
	return r.smallestLiveNode(), nil
}

// smallestLiveNode always resolves the client entry point through the
// numerically smallest live id, never id 0 specifically: id 0 need not be a
// member of the ring, and treating it as the entry point regardless would
// route every operation through a node that may not exist.
func (r *Ring) smallestLiveNode() *Node {
	var smallest *Node
	for _, n := range r.nodes {
		if smallest == nil || n.id.Cmp(smallest.id) < 0 {
			smallest = n
		}
	}
	return smallest
}
