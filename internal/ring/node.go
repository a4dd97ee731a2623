package ring

import "ChordSim/internal/logger"

// Node is one member of the simulated ring. All of its links to other nodes
// — successor, predecessor, fingers — are ordinary Go pointers into the same
// in-process graph; Ring owns the collection and is the only thing that adds
// or removes a Node from it.
type Node struct {
	id    ID
	space Space

	successor   *Node
	predecessor *Node
	fingers     []*Node

	data map[string]string
	lgr  logger.Logger
}

func newNode(id ID, space Space, lgr logger.Logger) *Node {
	if lgr == nil {
		lgr = &logger.NopLogger{}
	}
	return &Node{
		id:      id,
		space:   space,
		fingers: make([]*Node, space.Bits),
		data:    make(map[string]string),
		lgr:     lgr,
	}
}

// ID returns the node's identifier.
func (n *Node) ID() ID { return n.id }

// Successor returns the node's current successor link.
func (n *Node) Successor() *Node { return n.successor }

// Predecessor returns the node's current predecessor link.
func (n *Node) Predecessor() *Node { return n.predecessor }

// Fingers returns a copy of the node's finger table, slot 0 first.
func (n *Node) Fingers() []*Node {
	out := make([]*Node, len(n.fingers))
	copy(out, n.fingers)
	return out
}

// Data returns a copy of the key/value pairs currently stored at this node.
func (n *Node) Data() map[string]string {
	out := make(map[string]string, len(n.data))
	for k, v := range n.data {
		out[k] = v
	}
	return out
}
