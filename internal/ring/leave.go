package ring

import "ChordSim/internal/logger"

// Leave removes n from the ring in a fixed order: first every
// other live peer's finger table is patched wherever it pointed at n
// (replaced with n's successor, since n is about to vanish), then n's own
// data is pushed onto its successor, then the successor/predecessor links
// are unlinked, then n is reset to a singleton so it can be reused or
// rejoined independently.
//
// If n is the only node on the ring, there is nothing to splice: its data is
// simply dropped (no peer remains to receive it).
func (n *Node) Leave() {
	if n.successor == n {
		n.data = make(map[string]string)
		n.lgr.Debug("leave: singleton ring emptied", logger.F("id", n.id.String()))
		return
	}

	n.replaceInOthersFingers()
	n.pushDataToSuccessor()

	succ, pred := n.successor, n.predecessor
	succ.predecessor = pred
	pred.successor = succ

	n.successor = n
	n.predecessor = n
	for i := range n.fingers {
		n.fingers[i] = n
	}

	n.lgr.Info("leave: node unlinked from ring",
		logger.F("id", n.id.String()),
		logger.F("successor", succ.id.String()),
		logger.F("predecessor", pred.id.String()),
	)
}

// replaceInOthersFingers walks every other live node, in ring order starting
// at n's successor, replacing any finger slot pointing at n with n's own
// successor (the node that inherits n's place on the ring).
func (n *Node) replaceInOthersFingers() {
	for p := n.successor; p != n; p = p.successor {
		for i, f := range p.fingers {
			if f == n {
				p.fingers[i] = n.successor
			}
		}
	}
}

// pushDataToSuccessor hands every key n still holds to its successor, which
// becomes responsible for the arc n used to own.
func (n *Node) pushDataToSuccessor() {
	for k, v := range n.data {
		n.successor.data[k] = v
	}
	n.data = make(map[string]string)
}
