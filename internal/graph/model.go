package graph

import (
	"context"

	"github.com/weaveflow/flowc/internal/ctxlog"
	"github.com/weaveflow/flowc/internal/workflow"
)

// halfEdge is the target side of an adjacency entry. Keeping edges as a
// flat ordered slice per source preserves the document's edge order,
// which is the scheduling tie-break.
type halfEdge struct {
	handle string
	target string
}

// Model is the lookup-friendly view of one workflow document: node
// index plus adjacency index. It is rebuilt for every compilation and
// never shared between compilations.
type Model struct {
	nodes map[string]*workflow.Node
	order []string
	adj   map[string][]halfEdge
}

// NewModel indexes the document's nodes and edges in one linear pass.
// Edges whose source or target does not resolve to a known node are
// dropped: the compiler favors best-effort output over failure.
func NewModel(ctx context.Context, wf *workflow.Workflow) *Model {
	logger := ctxlog.FromContext(ctx)

	m := &Model{
		nodes: make(map[string]*workflow.Node, len(wf.Nodes)),
		order: make([]string, 0, len(wf.Nodes)),
		adj:   make(map[string][]halfEdge),
	}
	for i := range wf.Nodes {
		n := &wf.Nodes[i]
		if _, dup := m.nodes[n.ID]; dup {
			logger.Warn("duplicate node id in document, keeping first occurrence", "node", n.ID)
			continue
		}
		m.nodes[n.ID] = n
		m.order = append(m.order, n.ID)
	}
	for i := range wf.Edges {
		e := &wf.Edges[i]
		if _, ok := m.nodes[e.Source]; !ok {
			logger.Warn("dropping edge with unknown source", "edge", e.ID, "source", e.Source)
			continue
		}
		if _, ok := m.nodes[e.Target]; !ok {
			logger.Warn("dropping edge with unknown target", "edge", e.ID, "target", e.Target)
			continue
		}
		m.adj[e.Source] = append(m.adj[e.Source], halfEdge{handle: e.SourceHandle, target: e.Target})
	}
	return m
}

// Node returns the node with the given id.
func (m *Model) Node(id string) (*workflow.Node, bool) {
	n, ok := m.nodes[id]
	return n, ok
}

// NodeIDs returns every node id in document order.
func (m *Model) NodeIDs() []string {
	ids := make([]string, len(m.order))
	copy(ids, m.order)
	return ids
}

// Len returns the number of indexed nodes.
func (m *Model) Len() int { return len(m.order) }

// Successors returns the targets of every outgoing edge of id, in
// document edge order, across all handles.
func (m *Model) Successors(id string) []string {
	edges := m.adj[id]
	out := make([]string, 0, len(edges))
	for _, e := range edges {
		out = append(out, e.target)
	}
	return out
}

// Outgoing returns the targets of id's edges tagged with the given
// source handle, in document edge order. This is the frontier of one
// named output port.
func (m *Model) Outgoing(id, handle string) []string {
	var out []string
	for _, e := range m.adj[id] {
		if e.handle == handle {
			out = append(out, e.target)
		}
	}
	return out
}
