package memorypool

// DFS visits every node reachable from start exactly once, marking each and
// calling visit (if non-nil) the first time it is seen. It uses no
// auxiliary stack or queue: the return path is remembered by temporarily
// reversing one neighbour slot per node currently on the path
// (Deutsch-Schorr-Waite pointer reversal), restored exactly once as the
// walk backs off through that node.
//
// Because a zero-neighbour node can never be on the reversal path and a
// one-neighbour node needs only a single back-link that fits in its own
// slot, the per-node counter (slot 1's tag) only exists for nodes with two
// or more neighbours. dfsForward exists to walk through runs of
// one-neighbour nodes without a counter to track progress through them.
func DFS(start NodeRef, visit func(NodeRef)) {
	if start.IsNull() || start.IsMarked() {
		return
	}
	start.mark()
	if visit != nil {
		visit(start)
	}
	if start.NeighbourCount() == 0 {
		return
	}

	var previous NodeRef
	current := start
	done := false

	if current.NeighbourCount() == 1 {
		current, previous, done = dfsForward(current, previous, visit)
	}
	if done {
		return
	}

	dfsMainLoop(current, previous, visit)
}

// dfsForward runs forward through a chain of one-neighbour nodes. current
// must have exactly one neighbour on entry. It returns either with done
// true (the whole walk is over) or with current now referring to a node
// with two or more neighbours, ready for dfsMainLoop.
func dfsForward(current, previous NodeRef, visit func(NodeRef)) (NodeRef, NodeRef, bool) {
	for {
		next := current.GetNeighbour(0)
		if next.IsNull() || next.IsMarked() {
			return dfsBackOff(current, previous, visit)
		}

		next.mark()
		if visit != nil {
			visit(next)
		}

		if next.NeighbourCount() == 0 {
			return dfsBackOff(current, previous, visit)
		}

		current.SetNeighbour(previous, 0)
		previous = current
		current = next

		if current.NeighbourCount() >= 2 {
			return current, previous, false
		}
		// else exactly one neighbour: keep running forward.
	}
}

// dfsMainLoop drives the traversal while current has two or more
// neighbours, dispatching index counter(current), counter(current)+1, ...
func dfsMainLoop(current, previous NodeRef, visit func(NodeRef)) {
	done := false
	for !current.IsNull() {
		c := current.getCounter()
		n := current.NeighbourCount()

		if c == n {
			current.resetCounter()
			current, previous, done = dfsBackOff(current, previous, visit)
			if done {
				return
			}
			continue
		}

		next := current.GetNeighbour(c)
		if next.IsNull() || next.IsMarked() {
			current.incCounter()
			continue
		}

		next.mark()
		if visit != nil {
			visit(next)
		}

		if next.NeighbourCount() == 0 {
			// leaf visited in place; no descent.
			current.incCounter()
			continue
		}

		current.SetNeighbour(previous, c)
		previous = current
		current = next

		if current.NeighbourCount() >= 2 {
			continue
		}

		current, previous, done = dfsForward(current, previous, visit)
		if done {
			return
		}
		// current now has >= 2 neighbours again; loop continues.
	}
}

// dfsBackOff retreats along the reversal path until either the path ends
// (current becomes null, the whole walk is done) or a >=2-neighbour node is
// reached with dispatch still pending (control returns to dfsMainLoop).
func dfsBackOff(current, previous NodeRef, _ func(NodeRef)) (NodeRef, NodeRef, bool) {
	for {
		next := current
		current = previous
		if current.IsNull() {
			return current, previous, true
		}

		if current.NeighbourCount() >= 2 {
			c := current.getCounter()
			previous = current.GetNeighbour(c)
			current.SetNeighbour(next, c)
			current.incCounter()
			return current, previous, false
		}

		// exactly one neighbour: keep backing off through the run.
		previous = current.GetNeighbour(0)
		current.SetNeighbour(next, 0)
	}
}
