package ring

// Insert routes key to its owning node (via FindSuccessor on the key's hash)
// and stores value there, overwriting any prior value for the same key.
func (n *Node) Insert(key, value string) {
	owner := n.FindSuccessor(n.space.HashID(key))
	owner.data[key] = value
}

// Lookup routes key to its owning node and returns the stored value, if any.
// A missing key is reported via ok == false, not an error: absence is a
// normal outcome of a lookup, not a failure of the protocol.
func (n *Node) Lookup(key string) (value string, ok bool) {
	owner := n.FindSuccessor(n.space.HashID(key))
	value, ok = owner.data[key]
	return value, ok
}

// Delete routes key to its owning node and removes it, if present. Deleting
// an absent key is a no-op, not an error.
func (n *Node) Delete(key string) {
	owner := n.FindSuccessor(n.space.HashID(key))
	delete(owner.data, key)
}
