package ring

// FindSuccessor returns the live node responsible for target: the first node
// whose id is greater than or equal to target when walking clockwise.
func (n *Node) FindSuccessor(target ID) *Node {
	owner, _ := n.FindSuccessorPath(target)
	return owner
}

// FindSuccessorPath behaves like FindSuccessor but also returns the sequence
// of nodes the lookup forwarded through before reaching the owner. The path
// never includes the owner unless the owner also forwarded to itself (the
// singleton ring case, or a lookup whose target is the starting node's own
// id). Exposed for tests and for the lookup tracer.
func (n *Node) FindSuccessorPath(target ID) (*Node, []*Node) {
	owner, hops := n.FindSuccessorHops(target)
	path := make([]*Node, len(hops))
	for i, h := range hops {
		path[i] = h.From
	}
	return owner, path
}

// Hop records one forwarding decision made while locating target: From is
// the node that made the decision, To is where it forwarded (or itself, on
// the final hop that resolves to the owner).
type Hop struct {
	From *Node
	To   *Node
}

// FindSuccessorHops is FindSuccessor instrumented to record every forwarding
// decision, in order, for tracing and tests.
func (n *Node) FindSuccessorHops(target ID) (*Node, []Hop) {
	var hops []Hop
	cur := n
	for {
		if cur.id.Equal(target) {
			hops = append(hops, Hop{From: cur, To: cur})
			return cur, hops
		}
		if InRightClosedRange(cur.id, cur.successor.id, target) {
			hops = append(hops, Hop{From: cur, To: cur.successor})
			return cur.successor, hops
		}
		next := cur.ClosestPrecedingFinger(target)
		hops = append(hops, Hop{From: cur, To: next})
		cur = next
	}
}

// ClosestPrecedingFinger scans the finger table from the widest reach down,
// returning the first finger strictly between this node and target. If no
// finger qualifies, the node is its own closest known predecessor of target.
func (n *Node) ClosestPrecedingFinger(target ID) *Node {
	for i := len(n.fingers) - 1; i >= 0; i-- {
		f := n.fingers[i]
		if f != nil && InOpenRange(n.id, target, f.id) {
			return f
		}
	}
	return n
}

// FindPredecessor walks the ring toward the node that immediately precedes
// target, i.e. the predecessor of target's successor.
func (n *Node) FindPredecessor(target ID) *Node {
	cur := n
	for !InRightClosedRange(cur.id, cur.successor.id, target) {
		cur = cur.ClosestPrecedingFinger(target)
	}
	return cur
}
