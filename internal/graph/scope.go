package graph

// CollectScope computes the node set belonging to one control-flow
// region: a breadth-first traversal from frontier that refuses to enter
// excluded or already-collected nodes, and refuses to cross any edge
// whose source handle is in barred (a loop's exit handle). The result
// is in traversal-encounter order, ready to be locally ordered by
// TopoOrder before emission.
//
// Branch exclusivity comes from the excluded set: the caller passes the
// full reachable set of the sibling frontier, so a node reachable from
// both sides of a condition lands in neither branch and is emitted once
// by the enclosing driver, after the construct.
func (m *Model) CollectScope(frontier []string, excluded []string, barred map[string]bool) []string {
	skip := make(map[string]bool, len(excluded))
	for _, id := range excluded {
		skip[id] = true
	}

	var collected []string
	seen := make(map[string]bool)
	queue := make([]string, 0, len(frontier))
	for _, id := range frontier {
		if _, ok := m.nodes[id]; ok && !skip[id] && !seen[id] {
			seen[id] = true
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		collected = append(collected, id)
		for _, e := range m.adj[id] {
			if barred[e.handle] {
				continue
			}
			if skip[e.target] || seen[e.target] {
				continue
			}
			seen[e.target] = true
			queue = append(queue, e.target)
		}
	}
	return collected
}

// Reachable returns every node reachable from frontier, frontier
// included, with no exclusions and no handle barring. Used to compute
// the exclusion set for a sibling branch.
func (m *Model) Reachable(frontier []string) []string {
	return m.CollectScope(frontier, nil, nil)
}
