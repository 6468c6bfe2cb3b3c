package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weaveflow/flowc/internal/workflow"
)

func buildModel(t *testing.T, nodeIDs []string, edges []workflow.Edge) *Model {
	t.Helper()
	wf := &workflow.Workflow{Edges: edges}
	for _, id := range nodeIDs {
		wf.Nodes = append(wf.Nodes, node(id))
	}
	return NewModel(quietCtx(), wf)
}

// indexOf maps each id to its position in order for before/after checks.
func indexOf(order []string) map[string]int {
	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	return pos
}

func TestTopoOrderRespectsEdges(t *testing.T) {
	m := buildModel(t,
		[]string{"d", "c", "b", "a"},
		[]workflow.Edge{
			edge("a", "b", ""),
			edge("b", "c", ""),
			edge("a", "d", ""),
			edge("d", "c", ""),
		},
	)
	ids := []string{"d", "c", "b", "a"}

	order, residue := m.TopoOrder(ids)

	require.Empty(t, residue)
	require.ElementsMatch(t, ids, order)
	pos := indexOf(order)
	assert.Less(t, pos["a"], pos["b"])
	assert.Less(t, pos["b"], pos["c"])
	assert.Less(t, pos["a"], pos["d"])
	assert.Less(t, pos["d"], pos["c"])
}

func TestTopoOrderIsRestrictedToSet(t *testing.T) {
	m := buildModel(t,
		[]string{"a", "b", "c"},
		[]workflow.Edge{edge("a", "b", ""), edge("b", "c", "")},
	)

	// b is outside the set: the a->b->c chain must not constrain c.
	order, residue := m.TopoOrder([]string{"c", "a"})

	require.Empty(t, residue)
	assert.Equal(t, []string{"c", "a"}, order)
}

func TestTopoOrderCycleResidue(t *testing.T) {
	t.Run("pure cycle", func(t *testing.T) {
		m := buildModel(t,
			[]string{"a", "b"},
			[]workflow.Edge{edge("a", "b", ""), edge("b", "a", "")},
		)

		order, residue := m.TopoOrder([]string{"a", "b"})

		// Totality holds even for cyclic input, in set order.
		assert.Equal(t, []string{"a", "b"}, order)
		assert.Equal(t, []string{"a", "b"}, residue)
	})

	t.Run("nodes behind a cycle", func(t *testing.T) {
		m := buildModel(t,
			[]string{"start", "a", "b", "tail"},
			[]workflow.Edge{
				edge("start", "a", ""),
				edge("a", "b", ""),
				edge("b", "a", ""),
				edge("b", "tail", ""),
			},
		)
		ids := []string{"start", "a", "b", "tail"}

		order, residue := m.TopoOrder(ids)

		require.ElementsMatch(t, ids, order)
		assert.Equal(t, "start", order[0])
		assert.Equal(t, []string{"a", "b", "tail"}, residue)
	})
}

func TestTopoOrderDeterministicTieBreak(t *testing.T) {
	m := buildModel(t,
		[]string{"c", "a", "b"},
		nil,
	)
	ids := []string{"c", "a", "b"}

	first, _ := m.TopoOrder(ids)
	for i := 0; i < 10; i++ {
		again, _ := m.TopoOrder(ids)
		require.Equal(t, first, again)
	}
	// With no edges, the order is exactly the set order.
	assert.Equal(t, ids, first)
}

func TestTopoOrderIgnoresUnknownIDs(t *testing.T) {
	m := buildModel(t, []string{"a"}, nil)

	order, residue := m.TopoOrder([]string{"a", "ghost"})

	assert.Empty(t, residue)
	assert.Equal(t, []string{"a"}, order)
}
