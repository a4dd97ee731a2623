package ring

import (
	"errors"
	"testing"
)

func mustRing(t *testing.T, bits int) *Ring {
	t.Helper()
	r, err := New(bits)
	if err != nil {
		t.Fatalf("New(%d): %v", bits, err)
	}
	return r
}

func joinAll(t *testing.T, r *Ring, ids ...int) {
	t.Helper()
	for _, id := range ids {
		if _, err := r.Join(id); err != nil {
			t.Fatalf("Join(%d): %v", id, err)
		}
	}
}

func idOf(n *Node) string { return n.ID().String() }

// S1 — singleton.
func TestScenarioSingleton(t *testing.T) {
	r := mustRing(t, 3)
	joinAll(t, r, 0)

	if r.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", r.Size())
	}
	n, ok := r.Node(0)
	if !ok {
		t.Fatal("node 0 not found")
	}
	if idOf(n.Successor()) != "0" || idOf(n.Predecessor()) != "0" {
		t.Errorf("singleton node 0: successor=%s predecessor=%s, want both 0", idOf(n.Successor()), idOf(n.Predecessor()))
	}
	for i, f := range n.Fingers() {
		if idOf(f) != "0" {
			t.Errorf("finger[%d] = %s, want 0", i, idOf(f))
		}
	}
}

// S2 — pair.
func TestScenarioPair(t *testing.T) {
	r := mustRing(t, 3)
	joinAll(t, r, 0, 1)

	n0, _ := r.Node(0)
	n1, _ := r.Node(1)

	assertLinks(t, n0, "1", "1")
	assertFingers(t, n0, "1", "0", "0")

	assertLinks(t, n1, "0", "0")
	assertFingers(t, n1, "0", "0", "0")
}

// S3 — triple.
func TestScenarioTriple(t *testing.T) {
	r := mustRing(t, 3)
	joinAll(t, r, 0, 1, 2)

	n0, _ := r.Node(0)
	n1, _ := r.Node(1)
	n2, _ := r.Node(2)

	assertLinks(t, n0, "1", "2")
	assertFingers(t, n0, "1", "2", "0")

	assertLinks(t, n1, "2", "0")
	assertFingers(t, n1, "2", "0", "0")

	assertLinks(t, n2, "0", "1")
	assertFingers(t, n2, "0", "0", "0")
}

func assertLinks(t *testing.T, n *Node, successor, predecessor string) {
	t.Helper()
	if idOf(n.Successor()) != successor || idOf(n.Predecessor()) != predecessor {
		t.Errorf("node %s: successor=%s predecessor=%s, want successor=%s predecessor=%s",
			idOf(n), idOf(n.Successor()), idOf(n.Predecessor()), successor, predecessor)
	}
}

func assertFingers(t *testing.T, n *Node, want ...string) {
	t.Helper()
	got := n.Fingers()
	if len(got) != len(want) {
		t.Fatalf("node %s: %d fingers, want %d", idOf(n), len(got), len(want))
	}
	for i, f := range got {
		if idOf(f) != want[i] {
			t.Errorf("node %s finger[%d] = %s, want %s", idOf(n), i, idOf(f), want[i])
		}
	}
}

func fiveNodeRing(t *testing.T) *Ring {
	t.Helper()
	r := mustRing(t, 3)
	joinAll(t, r, 0, 1, 2, 4, 6)
	return r
}

// S4 — lookup on five-node ring {0,1,2,4,6}, m=3, from any entry node.
func TestScenarioLookupFiveNodeRing(t *testing.T) {
	r := fiveNodeRing(t)

	cases := []struct {
		target int
		want   string
	}{
		{0, "0"},
		{1, "1"},
		{3, "4"},
		{6, "6"},
		{7, "0"},
	}
	for _, entry := range r.NodesInOrder() {
		for _, c := range cases {
			target, err := r.space.FromInt(c.target)
			if err != nil {
				t.Fatalf("FromInt(%d): %v", c.target, err)
			}
			got := entry.FindSuccessor(target)
			if idOf(got) != c.want {
				t.Errorf("from entry %s: FindSuccessor(%d) = %s, want %s", idOf(entry), c.target, idOf(got), c.want)
			}
		}
	}
}

// S5 — predecessor on the same five-node ring.
func TestScenarioPredecessorFiveNodeRing(t *testing.T) {
	r := fiveNodeRing(t)
	entry, _ := r.Node(2)

	cases := []struct {
		target int
		want   string
	}{
		{0, "6"},
		{1, "0"},
		{3, "2"},
		{6, "4"},
		{7, "6"},
	}
	for _, c := range cases {
		target, err := r.space.FromInt(c.target)
		if err != nil {
			t.Fatalf("FromInt(%d): %v", c.target, err)
		}
		got := entry.FindPredecessor(target)
		if idOf(got) != c.want {
			t.Errorf("FindPredecessor(%d) = %s, want %s", c.target, idOf(got), c.want)
		}
	}
}

// S6 — insert and migrate: lookups return the right value regardless of entry node.
func TestScenarioInsertAndLookup(t *testing.T) {
	r := fiveNodeRing(t)

	if err := r.Insert("a", "va"); err != nil {
		t.Fatalf("Insert(a): %v", err)
	}
	if err := r.Insert("b", "vb"); err != nil {
		t.Fatalf("Insert(b): %v", err)
	}
	if err := r.Insert("c", "vc"); err != nil {
		t.Fatalf("Insert(c): %v", err)
	}

	for _, n := range r.NodesInOrder() {
		for key, want := range map[string]string{"a": "va", "b": "vb", "c": "vc"} {
			got, ok := n.Lookup(key)
			if !ok || got != want {
				t.Errorf("from entry %s: Lookup(%s) = (%q,%v), want (%q,true)", idOf(n), key, got, ok, want)
			}
		}
	}
}

func TestJoinOutOfBoundsAndDuplicate(t *testing.T) {
	r := mustRing(t, 3)
	if _, err := r.Join(8); !errors.Is(err, ErrOutOfBounds) {
		t.Error("Join(8) on an 8-id space expected ErrOutOfBounds")
	}
	if _, err := r.Join(-1); !errors.Is(err, ErrOutOfBounds) {
		t.Error("Join(-1) expected ErrOutOfBounds")
	}
	joinAll(t, r, 3)
	if _, err := r.Join(3); !errors.Is(err, ErrDuplicate) {
		t.Error("Join(3) again expected ErrDuplicate")
	}
}

func TestLeaveNotFound(t *testing.T) {
	r := mustRing(t, 3)
	joinAll(t, r, 1)
	if err := r.Leave(2); !errors.Is(err, ErrNotFound) {
		t.Error("Leave(2) on a ring without node 2 expected ErrNotFound")
	}
}

func TestEmptyRingErrors(t *testing.T) {
	r := mustRing(t, 3)
	if err := r.Insert("k", "v"); !errors.Is(err, ErrEmptyRing) {
		t.Error("Insert on empty ring expected ErrEmptyRing")
	}
	if _, _, err := r.Lookup("k"); !errors.Is(err, ErrEmptyRing) {
		t.Error("Lookup on empty ring expected ErrEmptyRing")
	}
	if err := r.Delete("k"); !errors.Is(err, ErrEmptyRing) {
		t.Error("Delete on empty ring expected ErrEmptyRing")
	}
}

// Migration: join followed by leave of the same id returns the data
// distribution to its prior state.
func TestJoinLeaveRoundTripPreservesData(t *testing.T) {
	r := fiveNodeRing(t)
	for _, kv := range []struct{ k, v string }{{"a", "va"}, {"b", "vb"}, {"c", "vc"}, {"d", "vd"}} {
		if err := r.Insert(kv.k, kv.v); err != nil {
			t.Fatalf("Insert(%s): %v", kv.k, err)
		}
	}

	before := snapshotData(r)

	if _, err := r.Join(5); err != nil {
		t.Fatalf("Join(5): %v", err)
	}
	if err := r.Leave(5); err != nil {
		t.Fatalf("Leave(5): %v", err)
	}

	after := snapshotData(r)
	if len(before) != len(after) {
		t.Fatalf("data distribution changed size: before=%d after=%d", len(before), len(after))
	}
	for k, v := range before {
		if after[k] != v {
			t.Errorf("key %s: before=%q after=%q", k, v, after[k])
		}
	}
}

// snapshotData records, for every stored key, the id of the node holding it
// together with its value, so a comparison catches a key that moved owner.
func snapshotData(r *Ring) map[string]string {
	out := make(map[string]string)
	for _, n := range r.NodesInOrder() {
		for k, v := range n.Data() {
			out[k] = idOf(n) + "=" + v
		}
	}
	return out
}
