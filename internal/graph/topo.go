package graph

// TopoOrder orders the node set ids so that every edge within the set
// points forward, using Kahn's algorithm. The FIFO queue is seeded with
// the zero-in-degree nodes in the order they appear in ids, and ties
// are broken by document edge order, so the result is deterministic for
// a given document.
//
// Cyclic inputs do not fail: any nodes left unemitted after the queue
// drains (members of a cycle, or nodes reachable only through one) are
// appended in their original set order and also returned as residue so
// the caller can surface a diagnostic. The returned order is always a
// permutation of ids.
func (m *Model) TopoOrder(ids []string) (order, residue []string) {
	inSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := m.nodes[id]; ok {
			inSet[id] = true
		}
	}

	indeg := make(map[string]int, len(inSet))
	for id := range inSet {
		indeg[id] = 0
	}
	for id := range inSet {
		for _, succ := range m.Successors(id) {
			if inSet[succ] && succ != id {
				indeg[succ]++
			}
		}
	}

	queue := make([]string, 0, len(inSet))
	for _, id := range ids {
		if inSet[id] && indeg[id] == 0 {
			queue = append(queue, id)
		}
	}

	order = make([]string, 0, len(inSet))
	emitted := make(map[string]bool, len(inSet))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if emitted[id] {
			continue
		}
		emitted[id] = true
		order = append(order, id)
		for _, succ := range m.Successors(id) {
			if !inSet[succ] || emitted[succ] || succ == id {
				continue
			}
			indeg[succ]--
			if indeg[succ] == 0 {
				queue = append(queue, succ)
			}
		}
	}

	// Cycle residue: emit leftovers in set order so every node appears
	// exactly once even when the subgraph is not a DAG.
	for _, id := range ids {
		if inSet[id] && !emitted[id] {
			emitted[id] = true
			order = append(order, id)
			residue = append(residue, id)
		}
	}
	return order, residue
}
