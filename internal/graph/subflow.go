package graph

import (
	"context"
	"fmt"

	"github.com/weaveflow/flowc/internal/ctxlog"
	"github.com/weaveflow/flowc/internal/workflow"
)

// Subflow is a named sub-procedure: the declaring group node plus the
// member nodes compiled into its body.
type Subflow struct {
	Name    string
	GroupID string
	Members []string
}

// Partition is the result of splitting a document into sub-procedures
// and the main flow.
type Partition struct {
	// Subflows in declaration (document) order. When two groups declare
	// the same name, both appear here but the table keeps the last one.
	Subflows []Subflow
	// Table maps sub-procedure name to its definition, last-write-wins
	// for duplicate names.
	Table map[string]Subflow
	// Main is the main-flow node set in document order: every node that
	// is neither a subflow member nor a group node.
	Main []string
	// Diagnostics lists structural anomalies worth surfacing to the
	// user, currently duplicate sub-procedure names.
	Diagnostics []string
}

// ExtractSubflows partitions the document's nodes into named
// sub-procedures and the main flow. Group nodes themselves never appear
// in any emitted set; members are claimed by parentId.
func ExtractSubflows(ctx context.Context, wf *workflow.Workflow) *Partition {
	logger := ctxlog.FromContext(ctx)

	p := &Partition{Table: make(map[string]Subflow)}
	claimed := make(map[string]bool)
	groups := make(map[string]bool)

	for i := range wf.Nodes {
		n := &wf.Nodes[i]
		if !n.IsGroup() {
			continue
		}
		groups[n.ID] = true
		name := n.SubflowName()
		if name == "" {
			continue
		}
		sf := Subflow{Name: name, GroupID: n.ID}
		for j := range wf.Nodes {
			member := &wf.Nodes[j]
			if member.ParentID == n.ID && !member.IsGroup() {
				sf.Members = append(sf.Members, member.ID)
				claimed[member.ID] = true
			}
		}
		if prev, dup := p.Table[name]; dup {
			diag := fmt.Sprintf("duplicate subflow name %q: group %s replaces group %s", name, n.ID, prev.GroupID)
			p.Diagnostics = append(p.Diagnostics, diag)
			logger.Warn("duplicate subflow name, last definition wins", "name", name, "group", n.ID, "replaces", prev.GroupID)
		}
		p.Subflows = append(p.Subflows, sf)
		p.Table[name] = sf
	}

	for i := range wf.Nodes {
		n := &wf.Nodes[i]
		if groups[n.ID] || claimed[n.ID] {
			continue
		}
		p.Main = append(p.Main, n.ID)
	}
	return p
}
