// Package control generates the structured control flow: conditions,
// count loops, foreach loops and sub-procedure calls. These are the
// only generators that recurse, pulling their branch or body scopes out
// of the graph through the scope collector and marking every consumed
// node processed so the enclosing driver skips it.
package control

import (
	"strconv"
	"strings"

	"github.com/weaveflow/flowc/internal/compiler"
	"github.com/weaveflow/flowc/internal/pyexpr"
	"github.com/weaveflow/flowc/internal/workflow"
)

// Module registers the control-flow generators.
type Module struct{}

// Register implements compiler.Module.
func (Module) Register(r *compiler.Registry) {
	r.Register("trigger", compiler.GeneratorFunc(emitTrigger))
	r.Register("condition", compiler.GeneratorFunc(emitCondition))
	r.Register("loop", compiler.GeneratorFunc(emitLoop))
	r.Register("foreach", compiler.GeneratorFunc(emitForeach))
	r.Register("run_subflow", compiler.GeneratorFunc(emitRunSubflow))
}

// emitTrigger contributes nothing: every editor document starts with a
// trigger node, and its semantics (when to run) belong to the
// scheduler, not the exported script.
func emitTrigger(p *compiler.Proc, n *workflow.Node) {}

// operators maps the editor's comparison tags to Python operators.
var operators = map[string]string{
	"eq":  "==",
	"ne":  "!=",
	"neq": "!=",
	"gt":  ">",
	"ge":  ">=",
	"gte": ">=",
	"lt":  "<",
	"le":  "<=",
	"lte": "<=",
}

func emitCondition(p *compiler.Proc, n *workflow.Node) {
	trueFrontier := p.Frontier(n.ID, workflow.HandleTrue)
	falseFrontier := p.Frontier(n.ID, workflow.HandleFalse)

	p.Out.Linef("if %s:", conditionExpr(n))

	// Each branch excludes everything the sibling frontier can reach,
	// so shared downstream nodes belong to neither branch and run once
	// after the construct.
	trueExcluded := append(p.Model.Reachable(falseFrontier), n.ID)
	trueScope := p.Model.CollectScope(trueFrontier, trueExcluded, nil)
	p.Out.WithIndent(func() {
		p.EmitBlock(trueScope)
	})

	if len(falseFrontier) == 0 {
		return
	}
	falseExcluded := append(p.Model.Reachable(trueFrontier), n.ID)
	falseScope := p.Model.CollectScope(falseFrontier, falseExcluded, nil)
	p.Out.Line("else:")
	p.Out.WithIndent(func() {
		p.EmitBlock(falseScope)
	})
}

// conditionExpr renders the node's comparison. Configuration: "left"
// and "right" are interpolation-capable strings, "operator" one of the
// editor's comparison tags ("contains"/"not_contains" test membership).
func conditionExpr(n *workflow.Node) string {
	left := pyexpr.Resolve(n.String("left", ""))
	right := pyexpr.Resolve(n.String("right", ""))
	opTag := n.String("operator", "eq")
	switch opTag {
	case "contains":
		return right + " in " + left
	case "not_contains":
		return right + " not in " + left
	}
	op, ok := operators[opTag]
	if !ok {
		op = "=="
	}
	return left + " " + op + " " + right
}

func emitLoop(p *compiler.Proc, n *workflow.Node) {
	indexVar := pyexpr.SanitizeIdent(n.String("indexVariable", "index"))
	p.Out.Linef("for %s in range(%s):", indexVar, loopCount(n))
	p.Out.WithIndent(func() {
		p.Out.Linef("variables['%s'] = %s", indexVar, indexVar)
		p.EmitSet(loopBody(p, n))
	})
}

func emitForeach(p *compiler.Proc, n *workflow.Node) {
	itemVar := pyexpr.SanitizeIdent(n.String("itemVariable", "item"))
	items := pyexpr.ResolveDefault(n.String("items", ""), "[]")
	p.Out.Linef("for %s in %s:", itemVar, items)
	p.Out.WithIndent(func() {
		p.Out.Linef("variables['%s'] = %s", itemVar, itemVar)
		p.EmitSet(loopBody(p, n))
	})
}

// loopBody collects the loop's body scope: reachable from the body
// frontier, never through the exit frontier, the loop node itself, or
// any edge tagged with the exit handle.
func loopBody(p *compiler.Proc, n *workflow.Node) []string {
	body := p.Frontier(n.ID, workflow.HandleBody)
	exit := p.Frontier(n.ID, workflow.HandleDone)
	excluded := append(append([]string{}, exit...), n.ID)
	barred := map[string]bool{workflow.HandleDone: true}
	return p.Model.CollectScope(body, excluded, barred)
}

// loopCount renders the iteration count: a plain number stays a number,
// an interpolated string becomes an int() coercion of the lookup, and
// anything unusable degrades to zero iterations.
func loopCount(n *workflow.Node) string {
	switch v := n.Value("count", nil).(type) {
	case string:
		trimmed := strings.TrimSpace(v)
		if c, err := strconv.Atoi(trimmed); err == nil && c >= 0 {
			return strconv.Itoa(c)
		}
		if strings.Contains(trimmed, "{") {
			return "int(" + pyexpr.ResolveDefault(trimmed, "0") + ")"
		}
		return "0"
	case nil:
		return "0"
	default:
		c := n.Int("count", 0)
		if c < 0 {
			c = 0
		}
		return strconv.Itoa(c)
	}
}

func emitRunSubflow(p *compiler.Proc, n *workflow.Node) {
	name := n.String("subflow", "")
	if _, ok := p.Subflows[name]; !ok {
		p.Logger().Warn("call to undefined subflow", "node", n.ID, "subflow", name)
		p.Out.Linef("# missing subflow %q: no matching definition in this workflow", name)
		p.Out.Line("pass")
		return
	}
	p.Out.Linef("await %s(page, variables)", compiler.SubflowFuncName(name))
}
