package compiler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/weaveflow/flowc/internal/config"
	"github.com/weaveflow/flowc/internal/ctxlog"
	"github.com/weaveflow/flowc/internal/emit"
	"github.com/weaveflow/flowc/internal/graph"
)

// Proc is the per-compilation context threaded through every generator:
// the output emitter, the graph indices, the subflow table, the export
// options and the globally processed node set. A Proc belongs to
// exactly one Compile call and is never shared across compilations.
type Proc struct {
	// Out is the script being assembled.
	Out *emit.Emitter
	// Model is the indexed graph of the whole document.
	Model *graph.Model
	// Subflows maps sub-procedure name to definition (last-write-wins
	// for duplicate names).
	Subflows map[string]graph.Subflow
	// Options are the export options in effect.
	Options config.Options

	ctx       context.Context
	registry  *Registry
	processed map[string]bool
	diags     *[]string
}

// Logger returns the compilation's logger.
func (p *Proc) Logger() *slog.Logger { return ctxlog.FromContext(p.ctx) }

// Processed reports whether a node was already consumed by some region.
func (p *Proc) Processed(id string) bool { return p.processed[id] }

// MarkProcessed records that a node has been consumed, so no enclosing
// driver re-emits it.
func (p *Proc) MarkProcessed(id string) { p.processed[id] = true }

// Frontier returns the nodes directly reached by following the given
// handle's edges from a control node, in document edge order.
func (p *Proc) Frontier(nodeID, handle string) []string {
	return p.Model.Outgoing(nodeID, handle)
}

// Diag records a user-facing compile diagnostic.
func (p *Proc) Diag(format string, args ...any) {
	*p.diags = append(*p.diags, fmt.Sprintf(format, args...))
}

// EmitSet topologically orders the node set and dispatches each node
// through the registry, skipping nodes already consumed by an inner
// region. Every dispatched node is marked processed before its
// generator runs, so recursion can never re-enter it. Cycle residue is
// surfaced as a diagnostic and emitted in set order.
func (p *Proc) EmitSet(ids []string) {
	order, residue := p.Model.TopoOrder(ids)
	if len(residue) > 0 {
		p.Logger().Warn("cyclic nodes scheduled best-effort", "nodes", residue)
		p.Diag("cycle detected: nodes %v were appended in document order and may need manual reordering", residue)
	}
	for _, id := range order {
		if p.processed[id] {
			continue
		}
		n, ok := p.Model.Node(id)
		if !ok {
			continue
		}
		p.processed[id] = true
		p.registry.Lookup(n.ModuleType()).Emit(p, n)
	}
}

// EmitBlock is EmitSet for an indented region that Python requires to
// contain at least one statement: when the set produces no lines (empty
// scope, or every node already consumed elsewhere) a lone no-op is
// emitted instead.
func (p *Proc) EmitBlock(ids []string) {
	before := p.Out.Len()
	p.EmitSet(ids)
	if p.Out.Len() == before {
		p.Out.Line("pass")
	}
}
