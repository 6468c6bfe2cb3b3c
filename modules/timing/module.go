// Package timing generates the waiting steps: fixed delays and waiting
// for elements to appear.
package timing

import (
	"strconv"

	"github.com/weaveflow/flowc/internal/compiler"
	"github.com/weaveflow/flowc/internal/pyexpr"
	"github.com/weaveflow/flowc/internal/workflow"
)

// Module registers the timing generators.
type Module struct{}

// Register implements compiler.Module.
func (Module) Register(r *compiler.Registry) {
	r.Register("delay", compiler.GeneratorFunc(emitDelay))
	r.Register("wait_for_element", compiler.GeneratorFunc(emitWaitForElement))
}

func emitDelay(p *compiler.Proc, n *workflow.Node) {
	p.Out.Linef("await asyncio.sleep(%s)", delaySeconds(n))
}

// delaySeconds reads the "seconds" config value, accepting numbers or
// numeric strings and degrading to a one second pause.
func delaySeconds(n *workflow.Node) string {
	switch v := n.Value("seconds", nil).(type) {
	case float64:
		if v >= 0 {
			return strconv.FormatFloat(v, 'g', -1, 64)
		}
	case int:
		if v >= 0 {
			return strconv.Itoa(v)
		}
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
	}
	return "1"
}

func emitWaitForElement(p *compiler.Proc, n *workflow.Node) {
	selector := pyexpr.Resolve(n.String("selector", ""))
	if timeout := n.Int("timeoutMs", 0); timeout > 0 {
		p.Out.Linef("await page.wait_for_selector(%s, timeout=%d)", selector, timeout)
		return
	}
	p.Out.Linef("await page.wait_for_selector(%s)", selector)
}
