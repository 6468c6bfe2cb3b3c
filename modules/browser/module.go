// Package browser generates the navigation and interaction steps:
// opening pages, clicking, typing, key presses, screenshots and page
// closing. Every generator is a self-contained emitter of sequential
// awaited Playwright calls.
package browser

import (
	"github.com/weaveflow/flowc/internal/compiler"
	"github.com/weaveflow/flowc/internal/pyexpr"
	"github.com/weaveflow/flowc/internal/workflow"
)

// Module registers the browser interaction generators.
type Module struct{}

// Register implements compiler.Module.
func (Module) Register(r *compiler.Registry) {
	r.Register("open_page", compiler.GeneratorFunc(emitOpenPage))
	r.Register("click", compiler.GeneratorFunc(emitClick))
	r.Register("input_text", compiler.GeneratorFunc(emitInputText))
	r.Register("press_key", compiler.GeneratorFunc(emitPressKey))
	r.Register("screenshot", compiler.GeneratorFunc(emitScreenshot))
	r.Register("close_page", compiler.GeneratorFunc(emitClosePage))
}

func emitOpenPage(p *compiler.Proc, n *workflow.Node) {
	url := pyexpr.Resolve(n.String("url", ""))
	if waitUntil := n.String("waitUntil", ""); waitUntil != "" {
		p.Out.Linef("await page.goto(%s, wait_until=%s)", url, pyexpr.StringLiteral(waitUntil))
		return
	}
	p.Out.Linef("await page.goto(%s)", url)
}

func emitClick(p *compiler.Proc, n *workflow.Node) {
	selector := pyexpr.Resolve(n.String("selector", ""))
	if n.Bool("doubleClick", false) {
		p.Out.Linef("await page.dblclick(%s)", selector)
		return
	}
	p.Out.Linef("await page.click(%s)", selector)
}

func emitInputText(p *compiler.Proc, n *workflow.Node) {
	selector := pyexpr.Resolve(n.String("selector", ""))
	text := pyexpr.Resolve(n.String("text", ""))
	if delay := n.Int("delayMs", 0); delay > 0 {
		p.Out.Linef("await page.type(%s, %s, delay=%d)", selector, text, delay)
		return
	}
	p.Out.Linef("await page.fill(%s, %s)", selector, text)
}

func emitPressKey(p *compiler.Proc, n *workflow.Node) {
	key := pyexpr.Resolve(n.String("key", "Enter"))
	p.Out.Linef("await page.keyboard.press(%s)", key)
}

func emitScreenshot(p *compiler.Proc, n *workflow.Node) {
	path := pyexpr.Resolve(n.String("path", "screenshot.png"))
	if n.Bool("fullPage", false) {
		p.Out.Linef("await page.screenshot(path=%s, full_page=True)", path)
		return
	}
	p.Out.Linef("await page.screenshot(path=%s)", path)
}

func emitClosePage(p *compiler.Proc, n *workflow.Node) {
	p.Out.Line("await page.close()")
}
