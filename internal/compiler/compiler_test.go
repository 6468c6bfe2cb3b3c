package compiler_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weaveflow/flowc/internal/compiler"
	"github.com/weaveflow/flowc/internal/config"
	"github.com/weaveflow/flowc/internal/ctxlog"
	"github.com/weaveflow/flowc/internal/workflow"
	"github.com/weaveflow/flowc/modules/browser"
	"github.com/weaveflow/flowc/modules/control"
	"github.com/weaveflow/flowc/modules/data"
	"github.com/weaveflow/flowc/modules/timing"
)

func newCompiler() *compiler.Compiler {
	return compiler.New(config.Default(),
		browser.Module{}, control.Module{}, data.Module{}, timing.Module{})
}

func compile(t *testing.T, wf *workflow.Workflow) *compiler.Output {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := ctxlog.WithLogger(context.Background(), logger)
	out := newCompiler().Compile(ctx, wf)
	require.NotNil(t, out)
	return out
}

func customNode(id, moduleType string, data map[string]any) workflow.Node {
	if data == nil {
		data = map[string]any{}
	}
	data[workflow.KeyModuleType] = moduleType
	return workflow.Node{ID: id, Type: workflow.TypeCustom, Data: data}
}

func plainEdge(source, target string) workflow.Edge {
	return workflow.Edge{ID: source + "-" + target, Source: source, Target: target}
}

func handleEdge(source, target, handle string) workflow.Edge {
	e := plainEdge(source, target)
	e.SourceHandle = handle
	return e
}

// mustIndex fails the test when marker is absent, otherwise returns its
// position for emission-order assertions.
func mustIndex(t *testing.T, script, marker string) int {
	t.Helper()
	idx := strings.Index(script, marker)
	require.GreaterOrEqual(t, idx, 0, "script should contain %q:\n%s", marker, script)
	return idx
}

func TestCompileLinearFlow(t *testing.T) {
	wf := &workflow.Workflow{
		Name: "Linear",
		Nodes: []workflow.Node{
			customNode("n1", "open_page", map[string]any{"url": "https://example.com"}),
			customNode("n2", "click", map[string]any{"selector": "#btn"}),
			customNode("n3", "input_text", map[string]any{"selector": "#name", "text": "hi"}),
		},
		Edges: []workflow.Edge{plainEdge("n1", "n2"), plainEdge("n2", "n3")},
	}

	out := compile(t, wf)

	goto_ := mustIndex(t, out.Script, `await page.goto("https://example.com")`)
	click := mustIndex(t, out.Script, `await page.click("#btn")`)
	fill := mustIndex(t, out.Script, `await page.fill("#name", "hi")`)
	assert.Less(t, goto_, click)
	assert.Less(t, click, fill)

	assert.NotContains(t, out.Script, "else:")
	assert.NotContains(t, out.Script, "for ")
	assert.Empty(t, out.Diagnostics)
}

func TestCompileConditionSharedDownstream(t *testing.T) {
	// Both branches fan into the shared node x; x must run exactly once,
	// after the if/else block.
	wf := &workflow.Workflow{
		Name: "Branches",
		Nodes: []workflow.Node{
			customNode("cond", "condition", map[string]any{"left": "{x}", "operator": "eq", "right": "1"}),
			customNode("a", "click", map[string]any{"selector": "#yes"}),
			customNode("b", "input_text", map[string]any{"selector": "#no", "text": "n"}),
			customNode("x", "log_message", map[string]any{"message": "joined"}),
		},
		Edges: []workflow.Edge{
			handleEdge("cond", "a", workflow.HandleTrue),
			handleEdge("cond", "b", workflow.HandleFalse),
			plainEdge("a", "x"),
			plainEdge("b", "x"),
		},
	}

	out := compile(t, wf)
	script := out.Script

	ifIdx := mustIndex(t, script, `if variables.get('x', '') == "1":`)
	clickIdx := mustIndex(t, script, `await page.click("#yes")`)
	elseIdx := mustIndex(t, script, "else:")
	fillIdx := mustIndex(t, script, `await page.fill("#no", "n")`)
	printIdx := mustIndex(t, script, `print("joined")`)

	assert.Less(t, ifIdx, clickIdx)
	assert.Less(t, clickIdx, elseIdx)
	assert.Less(t, elseIdx, fillIdx)
	assert.Less(t, fillIdx, printIdx)

	assert.Equal(t, 1, strings.Count(script, `print("joined")`), "shared node must be emitted exactly once")
}

func TestCompileLoopBoundary(t *testing.T) {
	wf := &workflow.Workflow{
		Name: "Looped",
		Nodes: []workflow.Node{
			customNode("loop", "loop", map[string]any{"count": 3, "indexVariable": "i"}),
			customNode("body", "click", map[string]any{"selector": "#next"}),
			customNode("after", "close_page", nil),
		},
		Edges: []workflow.Edge{
			handleEdge("loop", "body", workflow.HandleBody),
			handleEdge("loop", "after", workflow.HandleDone),
		},
	}

	out := compile(t, wf)
	script := out.Script

	forIdx := mustIndex(t, script, "for i in range(3):")
	idxVar := mustIndex(t, script, "variables['i'] = i")
	clickIdx := mustIndex(t, script, `await page.click("#next")`)
	closeIdx := mustIndex(t, script, "await page.close()")

	assert.Less(t, forIdx, idxVar)
	assert.Less(t, idxVar, clickIdx)
	assert.Less(t, clickIdx, closeIdx)
	assert.Equal(t, 1, strings.Count(script, `await page.click("#next")`))
	assert.Equal(t, 1, strings.Count(script, "await page.close()"))
}

func TestCompileForeach(t *testing.T) {
	wf := &workflow.Workflow{
		Name: "Items",
		Nodes: []workflow.Node{
			customNode("fe", "foreach", map[string]any{"items": "{products}", "itemVariable": "product"}),
			customNode("log", "log_message", map[string]any{"message": "{product}"}),
		},
		Edges: []workflow.Edge{handleEdge("fe", "log", workflow.HandleBody)},
	}

	out := compile(t, wf)

	forIdx := mustIndex(t, out.Script, "for product in variables.get('products', []):")
	bindIdx := mustIndex(t, out.Script, "variables['product'] = product")
	printIdx := mustIndex(t, out.Script, "print(variables.get('product', ''))")
	assert.Less(t, forIdx, bindIdx)
	assert.Less(t, bindIdx, printIdx)
}

func TestCompileMissingSubflow(t *testing.T) {
	wf := &workflow.Workflow{
		Name: "Dangling",
		Nodes: []workflow.Node{
			customNode("call", "run_subflow", map[string]any{"subflow": "ghost"}),
		},
	}

	out := compile(t, wf)

	mustIndex(t, out.Script, `# missing subflow "ghost"`)
	assert.NotContains(t, out.Script, "await subflow_")
}

func TestCompileSubflowDefinitionAndCall(t *testing.T) {
	wf := &workflow.Workflow{
		Name: "WithSub",
		Nodes: []workflow.Node{
			{ID: "g", Type: workflow.TypeGroup, Data: map[string]any{workflow.KeySubflowName: "login"}},
			{ID: "m1", Type: workflow.TypeCustom, ParentID: "g", Data: map[string]any{
				workflow.KeyModuleType: "open_page", "url": "https://example.com/login",
			}},
			customNode("call", "run_subflow", map[string]any{"subflow": "login"}),
		},
	}

	out := compile(t, wf)
	script := out.Script

	defIdx := mustIndex(t, script, "async def subflow_login(page, variables):")
	bodyIdx := mustIndex(t, script, `await page.goto("https://example.com/login")`)
	mainIdx := mustIndex(t, script, "async def main():")
	callIdx := mustIndex(t, script, "await subflow_login(page, variables)")

	assert.Less(t, defIdx, bodyIdx)
	assert.Less(t, bodyIdx, mainIdx)
	assert.Less(t, mainIdx, callIdx)
}

func TestCompileDuplicateSubflowDiagnostic(t *testing.T) {
	wf := &workflow.Workflow{
		Name: "Dup",
		Nodes: []workflow.Node{
			{ID: "g1", Type: workflow.TypeGroup, Data: map[string]any{workflow.KeySubflowName: "login"}},
			{ID: "g2", Type: workflow.TypeGroup, Data: map[string]any{workflow.KeySubflowName: "login"}},
		},
	}

	out := compile(t, wf)

	require.Len(t, out.Diagnostics, 1)
	assert.Contains(t, out.Diagnostics[0], `duplicate subflow name "login"`)
	// Both definitions are emitted; Python's own last-definition-wins
	// mirrors the compiler's table semantics.
	assert.Equal(t, 2, strings.Count(out.Script, "async def subflow_login(page, variables):"))
}

func TestCompileUnknownModuleType(t *testing.T) {
	wf := &workflow.Workflow{
		Name: "Odd",
		Nodes: []workflow.Node{
			customNode("n1", "teleport", nil),
			customNode("n2", "click", map[string]any{"selector": "#ok"}),
		},
		Edges: []workflow.Edge{plainEdge("n1", "n2")},
	}

	out := compile(t, wf)

	stub := mustIndex(t, out.Script, `# unsupported module type "teleport"`)
	click := mustIndex(t, out.Script, `await page.click("#ok")`)
	assert.Less(t, stub, click, "the fallback stub must not abort the surrounding flow")
}

func TestCompileCycleDiagnostic(t *testing.T) {
	wf := &workflow.Workflow{
		Name: "Cycle",
		Nodes: []workflow.Node{
			customNode("a", "click", map[string]any{"selector": "#a"}),
			customNode("b", "click", map[string]any{"selector": "#b"}),
		},
		Edges: []workflow.Edge{plainEdge("a", "b"), plainEdge("b", "a")},
	}

	out := compile(t, wf)

	require.Len(t, out.Diagnostics, 1)
	assert.Contains(t, out.Diagnostics[0], "cycle detected")
	assert.Equal(t, 1, strings.Count(out.Script, `await page.click("#a")`))
	assert.Equal(t, 1, strings.Count(out.Script, `await page.click("#b")`))
}

func TestCompileEmptyBranchPlaceholder(t *testing.T) {
	wf := &workflow.Workflow{
		Name: "Lopsided",
		Nodes: []workflow.Node{
			customNode("cond", "condition", map[string]any{"left": "{x}", "operator": "eq", "right": "1"}),
			customNode("b", "click", map[string]any{"selector": "#no"}),
		},
		Edges: []workflow.Edge{handleEdge("cond", "b", workflow.HandleFalse)},
	}

	out := compile(t, wf)

	ifIdx := mustIndex(t, out.Script, `if variables.get('x', '') == "1":`)
	passIdx := mustIndex(t, out.Script, "pass")
	elseIdx := mustIndex(t, out.Script, "else:")
	assert.Less(t, ifIdx, passIdx)
	assert.Less(t, passIdx, elseIdx)
}

func TestCompileSectionOrdering(t *testing.T) {
	wf := &workflow.Workflow{
		Name: "My Flow",
		Nodes: []workflow.Node{
			customNode("n1", "log_message", map[string]any{"message": "Hello {greeting}!"}),
		},
		Variables: []workflow.Variable{
			{Name: "greeting", Value: "hello", Type: "string"},
			{Name: "retries", Value: float64(3), Type: "number"},
		},
	}

	out := compile(t, wf)
	script := out.Script

	header := mustIndex(t, script, "#!/usr/bin/env python3")
	docComment := mustIndex(t, script, `# Generated from workflow "My Flow".`)
	initIdx := mustIndex(t, script, "def init_variables():")
	greetIdx := mustIndex(t, script, `variables['greeting'] = "hello"`)
	retriesIdx := mustIndex(t, script, "variables['retries'] = 3")
	mainIdx := mustIndex(t, script, "async def main():")
	printIdx := mustIndex(t, script, `print(f"Hello {variables.get('greeting', '')}!")`)
	entryIdx := mustIndex(t, script, `if __name__ == "__main__":`)
	runIdx := mustIndex(t, script, "asyncio.run(main())")

	assert.Equal(t, 0, header)
	assert.Less(t, header, docComment)
	assert.Less(t, docComment, initIdx)
	assert.Less(t, initIdx, greetIdx)
	assert.Less(t, greetIdx, retriesIdx)
	assert.Less(t, retriesIdx, mainIdx)
	assert.Less(t, mainIdx, printIdx)
	assert.Less(t, printIdx, entryIdx)
	assert.Less(t, entryIdx, runIdx)

	assert.Equal(t, "my_flow.py", out.Filename)
}

func TestCompileBrowserScaffold(t *testing.T) {
	out := compile(t, &workflow.Workflow{Name: "Empty"})

	launch := mustIndex(t, out.Script, "browser = await pw.chromium.launch(headless=True)")
	page := mustIndex(t, out.Script, "page = await browser.new_page()")
	timeout := mustIndex(t, out.Script, "page.set_default_timeout(30000)")
	closeIdx := mustIndex(t, out.Script, "await browser.close()")
	assert.Less(t, launch, page)
	assert.Less(t, page, timeout)
	assert.Less(t, timeout, closeIdx)
}

func TestScriptFilename(t *testing.T) {
	assert.Equal(t, "my_flow.py", compiler.ScriptFilename("My Flow"))
	assert.Equal(t, "workflow.py", compiler.ScriptFilename(""))
	assert.Equal(t, "workflow.py", compiler.ScriptFilename("   "))
	assert.Equal(t, "v_7_steps.py", compiler.ScriptFilename("7 Steps"))
}

func TestCompileConcurrentDocuments(t *testing.T) {
	// Separate documents share nothing; concurrent compilations must
	// not interfere.
	c := newCompiler()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	done := make(chan *compiler.Output, 2)
	for _, sel := range []string{"#one", "#two"} {
		sel := sel
		go func() {
			wf := &workflow.Workflow{
				Name:  "P" + sel,
				Nodes: []workflow.Node{customNode("n", "click", map[string]any{"selector": sel})},
			}
			done <- c.Compile(ctx, wf)
		}()
	}
	first, second := <-done, <-done

	combined := first.Script + second.Script
	assert.Contains(t, combined, `await page.click("#one")`)
	assert.Contains(t, combined, `await page.click("#two")`)
}
