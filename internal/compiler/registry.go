package compiler

import (
	"github.com/weaveflow/flowc/internal/workflow"
)

// Generator emits the Python statements for one node. Implementations
// read their configuration keys defensively (missing keys fall back to
// documented defaults) and resolve every user-facing string field
// through pyexpr. Control-flow generators additionally collect and emit
// their scopes through the Proc and mark consumed nodes processed.
type Generator interface {
	Emit(p *Proc, n *workflow.Node)
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(p *Proc, n *workflow.Node)

// Emit implements Generator.
func (f GeneratorFunc) Emit(p *Proc, n *workflow.Node) { f(p, n) }

// Module is implemented by generator packages so they can self-register
// their module types, mirroring how the product registers automation
// modules at startup.
type Module interface {
	Register(r *Registry)
}

// Registry is the dispatch table from module type tag to generator. It
// is built once per Compiler and read-only afterwards.
type Registry struct {
	generators map[string]Generator
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{generators: make(map[string]Generator)}
}

// Register binds a module type tag to its generator. Re-registering a
// tag replaces the previous generator.
func (r *Registry) Register(moduleType string, gen Generator) {
	r.generators[moduleType] = gen
}

// Lookup returns the generator for the given module type, or the
// fallback generator when the type is unrecognized. It never fails:
// unknown capability is an output-level concern, not a compilation
// failure.
func (r *Registry) Lookup(moduleType string) Generator {
	if gen, ok := r.generators[moduleType]; ok {
		return gen
	}
	return GeneratorFunc(emitFallback)
}

// Types returns the number of registered module types.
func (r *Registry) Types() int { return len(r.generators) }

// emitFallback is the stub for module types without a dedicated
// generator: a visible marker comment naming the type plus a no-op
// statement, so the surrounding script stays runnable.
func emitFallback(p *Proc, n *workflow.Node) {
	moduleType := n.ModuleType()
	if moduleType == "" {
		moduleType = "(unknown)"
	}
	p.Out.Linef("# unsupported module type %q: translate this step manually", moduleType)
	p.Out.Line("pass")
}
