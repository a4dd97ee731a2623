package ring

import "ChordSim/internal/logger"

// Join splices n into the ring reachable from bootstrap. A nil bootstrap
// means n is the first node: it becomes its own successor, predecessor, and
// every finger.
//
// For a non-degenerate join the steps run in a fixed order: locate the
// successor, splice into the successor/predecessor links, rebuild n's own
// finger table, rebuild every other live peer's finger table from scratch,
// then pull the keys n is now responsible for from its successor. Rebuilding
// every peer (rather than patching the O(log N) peers whose fingers could
// plausibly point at n) trades join cost, one FindSuccessor per finger slot
// of every live node, for a finger-maintenance step simple enough to state
// and verify exactly.
func (n *Node) Join(bootstrap *Node) {
	if bootstrap == nil {
		n.successor = n
		n.predecessor = n
		for i := range n.fingers {
			n.fingers[i] = n
		}
		n.lgr.Debug("join: singleton ring formed", logger.F("id", n.id.String()))
		return
	}

	n.successor = bootstrap.FindSuccessor(n.id)
	n.predecessor = n.successor.predecessor
	n.successor.predecessor = n
	n.predecessor.successor = n

	n.initFingers()
	n.updateOthersFingers()
	n.pullDataFromSuccessor()

	n.lgr.Info("join: node spliced into ring",
		logger.F("id", n.id.String()),
		logger.F("successor", n.successor.id.String()),
		logger.F("predecessor", n.predecessor.id.String()),
	)
}

// initFingers rebuilds n's own finger table by asking the ring (already
// reachable through n.successor) who owns each offset.
func (n *Node) initFingers() {
	for i := range n.fingers {
		n.fingers[i] = n.FindSuccessor(n.space.Offset(n.id, i))
	}
}

// updateOthersFingers walks every other live node, in ring order starting at
// n's successor, and rebuilds that node's entire finger table using n's own
// (now-correct) FindSuccessor.
func (n *Node) updateOthersFingers() {
	for p := n.successor; p != n; p = p.successor {
		for i := range p.fingers {
			p.fingers[i] = n.FindSuccessor(n.space.Offset(p.id, i))
		}
	}
}

// pullDataFromSuccessor takes over the keys n is now responsible for: those
// hashing into (n.predecessor, n.id].
func (n *Node) pullDataFromSuccessor() {
	succ := n.successor
	keys := make([]string, 0, len(succ.data))
	for k := range succ.data {
		keys = append(keys, k)
	}
	for _, k := range keys {
		kid := n.space.HashID(k)
		if InRightClosedRange(n.predecessor.id, n.id, kid) {
			n.data[k] = succ.data[k]
			delete(succ.data, k)
		}
	}
}
