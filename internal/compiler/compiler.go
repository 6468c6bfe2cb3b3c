package compiler

import (
	"context"
	"strings"

	"github.com/weaveflow/flowc/internal/config"
	"github.com/weaveflow/flowc/internal/ctxlog"
	"github.com/weaveflow/flowc/internal/emit"
	"github.com/weaveflow/flowc/internal/graph"
	"github.com/weaveflow/flowc/internal/pyexpr"
	"github.com/weaveflow/flowc/internal/workflow"
)

// Output is the result of one compilation: the script text, a suggested
// filename derived from the workflow's display name, and any
// best-effort degradations worth telling the user about.
type Output struct {
	Script      string
	Filename    string
	Diagnostics []string
}

// Compiler compiles workflow documents into standalone scripts. A
// Compiler is immutable after construction and safe for concurrent use;
// all per-document state lives in the Proc built by each Compile call.
type Compiler struct {
	opts     config.Options
	registry *Registry
}

// New builds a compiler with the given options and generator modules.
func New(opts config.Options, modules ...Module) *Compiler {
	if opts.Indent == "" {
		opts = config.Default()
	}
	reg := NewRegistry()
	for _, m := range modules {
		m.Register(reg)
	}
	return &Compiler{opts: opts, registry: reg}
}

// Compile transforms one workflow document. It always returns an
// Output; there is no failure mode, only degraded output plus
// diagnostics.
func (c *Compiler) Compile(ctx context.Context, wf *workflow.Workflow) *Output {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("compiling workflow", "name", wf.Name, "nodes", len(wf.Nodes), "edges", len(wf.Edges))

	model := graph.NewModel(ctx, wf)
	part := graph.ExtractSubflows(ctx, wf)

	diags := append([]string(nil), part.Diagnostics...)
	out := emit.New(c.opts.Indent)
	p := &Proc{
		Out:       out,
		Model:     model,
		Subflows:  part.Table,
		Options:   c.opts,
		ctx:       ctx,
		registry:  c.registry,
		processed: make(map[string]bool),
		diags:     &diags,
	}

	c.emitHeader(out, wf)
	c.emitVariableInit(out, wf)
	for _, sf := range part.Subflows {
		c.emitSubflow(p, sf)
	}
	c.emitMain(p, part.Main)
	c.emitEntryPoint(out)

	logger.Debug("compilation finished", "lines", out.Len(), "diagnostics", len(diags))
	return &Output{
		Script:      out.String(),
		Filename:    ScriptFilename(wf.Name),
		Diagnostics: diags,
	}
}

func (c *Compiler) emitHeader(out *emit.Emitter, wf *workflow.Workflow) {
	name := wf.Name
	if name == "" {
		name = "untitled workflow"
	}
	out.Line("#!/usr/bin/env python3")
	out.Linef("# Generated from workflow %q.", name)
	out.Line("# Steps the exporter could not translate are marked with comments.")
	out.Blank()
	out.Line("import asyncio")
	out.Blank()
	out.Line("from playwright.async_api import async_playwright")
}

func (c *Compiler) emitVariableInit(out *emit.Emitter, wf *workflow.Workflow) {
	out.Blank()
	out.Blank()
	out.Line("def init_variables():")
	out.WithIndent(func() {
		out.Line("variables = {}")
		for _, v := range wf.Variables {
			if v.Name == "" {
				continue
			}
			val := pyexpr.ValueFor(v.Type, v.Value)
			out.Linef("%s = %s", pyexpr.Assign(v.Name), pyexpr.PyValue(val))
		}
		out.Line("return variables")
	})
}

func (c *Compiler) emitSubflow(p *Proc, sf graph.Subflow) {
	p.Out.Blank()
	p.Out.Blank()
	p.Out.Linef("async def %s(page, variables):", SubflowFuncName(sf.Name))
	p.Out.WithIndent(func() {
		p.EmitBlock(sf.Members)
	})
}

func (c *Compiler) emitMain(p *Proc, main []string) {
	out := p.Out
	out.Blank()
	out.Blank()
	out.Line("async def main():")
	out.WithIndent(func() {
		out.Line("variables = init_variables()")
		out.Line("async with async_playwright() as pw:")
		out.WithIndent(func() {
			out.Linef("browser = await pw.%s.launch(headless=%s)", c.opts.Browser, pyBool(c.opts.Headless))
			out.Line("page = await browser.new_page()")
			if c.opts.DefaultTimeoutMS > 0 {
				out.Linef("page.set_default_timeout(%d)", c.opts.DefaultTimeoutMS)
			}
			p.EmitSet(main)
			out.Line("await browser.close()")
		})
	})
}

func (c *Compiler) emitEntryPoint(out *emit.Emitter) {
	out.Blank()
	out.Blank()
	out.Line(`if __name__ == "__main__":`)
	out.WithIndent(func() {
		out.Line("asyncio.run(main())")
	})
}

// SubflowFuncName maps a declared sub-procedure name to the name of its
// generated routine.
func SubflowFuncName(name string) string {
	return "subflow_" + pyexpr.SanitizeIdent(name)
}

// ScriptFilename derives the suggested output filename from the
// workflow's display name.
func ScriptFilename(name string) string {
	trimmed := strings.TrimSpace(strings.ToLower(name))
	if trimmed == "" {
		return "workflow.py"
	}
	return pyexpr.SanitizeIdent(trimmed) + ".py"
}

func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
