// Package data generates the extraction and variable manipulation
// steps: reading text or attributes into variables, assigning variables
// directly, and logging.
package data

import (
	"github.com/weaveflow/flowc/internal/compiler"
	"github.com/weaveflow/flowc/internal/pyexpr"
	"github.com/weaveflow/flowc/internal/workflow"
)

// Module registers the data extraction generators.
type Module struct{}

// Register implements compiler.Module.
func (Module) Register(r *compiler.Registry) {
	r.Register("get_text", compiler.GeneratorFunc(emitGetText))
	r.Register("attribute_value", compiler.GeneratorFunc(emitAttributeValue))
	r.Register("set_variable", compiler.GeneratorFunc(emitSetVariable))
	r.Register("log_message", compiler.GeneratorFunc(emitLogMessage))
}

func emitGetText(p *compiler.Proc, n *workflow.Node) {
	selector := pyexpr.Resolve(n.String("selector", ""))
	target := pyexpr.Assign(n.String("variable", "result"))
	p.Out.Linef("%s = await page.text_content(%s)", target, selector)
}

func emitAttributeValue(p *compiler.Proc, n *workflow.Node) {
	selector := pyexpr.Resolve(n.String("selector", ""))
	attribute := pyexpr.StringLiteral(n.String("attribute", "value"))
	target := pyexpr.Assign(n.String("variable", "result"))
	p.Out.Linef("%s = await page.get_attribute(%s, %s)", target, selector, attribute)
}

// emitSetVariable assigns a value to a variable. String values go
// through the template resolver so they can reference other variables;
// everything else is rendered as a typed literal.
func emitSetVariable(p *compiler.Proc, n *workflow.Node) {
	target := pyexpr.Assign(n.String("variable", "result"))
	var rendered string
	switch v := n.Value("value", nil).(type) {
	case string:
		rendered = pyexpr.Resolve(v)
	default:
		rendered = pyexpr.PyValue(pyexpr.CtyFromGo(v))
	}
	p.Out.Linef("%s = %s", target, rendered)
}

func emitLogMessage(p *compiler.Proc, n *workflow.Node) {
	message := pyexpr.Resolve(n.String("message", ""))
	p.Out.Linef("print(%s)", message)
}
