package ring

import "testing"

// oracleSuccessor finds the id's successor by linear scan over the live ids,
// independent of the finger-table-driven FindSuccessor path, so it can serve
// as a check on the recursive lookup protocol.
func oracleSuccessor(sp Space, liveIDs []ID, target ID) ID {
	for _, id := range liveIDs {
		if id.Equal(target) {
			return id
		}
	}
	// Pick the smallest id that is >= target, wrapping to the smallest id
	// overall if none is.
	var chosen ID
	found := false
	for _, id := range liveIDs {
		if id.Cmp(target) >= 0 {
			if !found || id.Cmp(chosen) < 0 {
				chosen = id
				found = true
			}
		}
	}
	if found {
		return chosen
	}
	for _, id := range liveIDs {
		if !found || id.Cmp(chosen) < 0 {
			chosen = id
			found = true
		}
	}
	return chosen
}

func liveIDs(r *Ring) []ID {
	var out []ID
	for _, n := range r.NodesInOrder() {
		out = append(out, n.ID())
	}
	return out
}

// Property: for every live node and every possible target id, FindSuccessor
// agrees with a linear-scan oracle — the finger-table shortcut never changes
// the answer, only how many hops it takes to reach it.
func TestPropertyFindSuccessorMatchesOracle(t *testing.T) {
	r := mustRing(t, 5) // N=32, small enough to exhaustively scan
	joinAll(t, r, 0, 3, 7, 12, 19, 25, 30)

	sp := r.Space()
	ids := liveIDs(r)

	for _, entry := range r.NodesInOrder() {
		for x := 0; x < 32; x++ {
			target, err := sp.FromInt(x)
			if err != nil {
				t.Fatalf("FromInt(%d): %v", x, err)
			}
			want := oracleSuccessor(sp, ids, target)
			got := entry.FindSuccessor(target)
			if !got.ID().Equal(want) {
				t.Errorf("from entry %s: FindSuccessor(%d) = %s, oracle wants %s", entry.ID(), x, got.ID(), want)
			}
		}
	}
}

// Property: every live node's successor's predecessor is itself, and vice
// versa — the doubly-linked ring never drifts out of sync across a sequence
// of joins.
func TestPropertySuccessorPredecessorSymmetry(t *testing.T) {
	r := mustRing(t, 5)
	joinAll(t, r, 4, 9, 15, 20, 27)

	for _, n := range r.NodesInOrder() {
		if n.Successor().Predecessor() != n {
			t.Errorf("node %s: successor's predecessor is %s, want itself", n.ID(), n.Successor().Predecessor().ID())
		}
		if n.Predecessor().Successor() != n {
			t.Errorf("node %s: predecessor's successor is %s, want itself", n.ID(), n.Predecessor().Successor().ID())
		}
	}
}

// Property: walking successor pointers starting from any live node visits
// every live node exactly once before returning to the start.
func TestPropertySuccessorWalkVisitsEveryNodeOnce(t *testing.T) {
	r := mustRing(t, 5)
	joinAll(t, r, 1, 6, 13, 22, 29)

	start, _ := r.Node(1)
	visited := map[string]bool{}
	cur := start
	for {
		key := cur.ID().String()
		if visited[key] {
			t.Fatalf("node %s visited twice before returning to start", key)
		}
		visited[key] = true
		cur = cur.Successor()
		if cur == start {
			break
		}
	}
	if len(visited) != r.Size() {
		t.Errorf("successor walk visited %d nodes, ring has %d", len(visited), r.Size())
	}
}

// Property: inserting the same key twice overwrites rather than duplicating,
// and the key is always owned by exactly one live node.
func TestPropertyInsertIsIdempotentAndSingleOwner(t *testing.T) {
	r := mustRing(t, 5)
	joinAll(t, r, 2, 8, 14, 21, 28)

	if err := r.Insert("dup", "first"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := r.Insert("dup", "second"); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	owners := 0
	var value string
	for _, n := range r.NodesInOrder() {
		if v, ok := n.Data()["dup"]; ok {
			owners++
			value = v
		}
	}
	if owners != 1 {
		t.Fatalf("key owned by %d nodes, want exactly 1", owners)
	}
	if value != "second" {
		t.Errorf("owned value = %q, want %q (last write wins)", value, "second")
	}
}

// Property: a key's value survives any sequence of joins and leaves that
// keep at least one node on the ring, and remains reachable from any entry
// point.
func TestPropertyDataSurvivesChurn(t *testing.T) {
	r := mustRing(t, 5)
	joinAll(t, r, 0, 10, 20)
	if err := r.Insert("steady", "value"); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	for _, id := range []int{5, 15, 25} {
		if _, err := r.Join(id); err != nil {
			t.Fatalf("Join(%d): %v", id, err)
		}
	}
	for _, id := range []int{10, 20} {
		if err := r.Leave(id); err != nil {
			t.Fatalf("Leave(%d): %v", id, err)
		}
	}

	for _, n := range r.NodesInOrder() {
		got, ok := n.Lookup("steady")
		if !ok || got != "value" {
			t.Errorf("from entry %s: Lookup(steady) = (%q,%v), want (value,true)", n.ID(), got, ok)
		}
	}
}
