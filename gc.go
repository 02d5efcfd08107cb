package memorypool

// Collect is a mark-and-sweep collection. Mark calls DFS from each root in
// insertion order, so by the time marking finishes every reachable node is
// marked and every neighbour edge DFS temporarily reversed has been
// restored. Sweep then walks the block list head to tail once: free blocks
// are skipped, marked allocated blocks have their mark bit cleared (marks
// only ever live for the duration of a Collect), and unmarked allocated
// blocks are finalized (if a finalizer is installed) and freed.
//
// Blocks are never coalesced on sweep — a block's size and placement are
// left intact once it is freed — matching the pool's only documented
// revision of this behaviour; reducing fragmentation by coalescing adjacent
// free blocks would not change the contract, only the results of later
// first-fit scans.
func (p *Pool) Collect() {
	for i := uintptr(0); i < p.roots.len(); i++ {
		DFS(p.roots.get(i), nil)
	}

	for b := p.head; b != nil; b = nextBlock(b) {
		if b.isFree() {
			continue
		}

		node := NodeRef{b.data()}
		if node.IsMarked() {
			node.clearMark()
			continue
		}

		if p.finalizer != nil {
			p.finalizer(node.Payload())
		}
		b.setFree(true)
	}
}
