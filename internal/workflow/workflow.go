package workflow

// Node type tags with structural meaning. Everything else is treated as
// a module type in its own right.
const (
	// TypeCustom marks a generic automation step whose concrete module
	// type lives in Data under KeyModuleType.
	TypeCustom = "custom"
	// TypeGroup marks a grouping container. A group whose data carries a
	// non-empty KeySubflowName declares a named sub-procedure.
	TypeGroup = "group"
)

// Data map keys the compiler itself interprets. Module-specific keys
// belong to the individual generators.
const (
	KeyModuleType  = "moduleType"
	KeySubflowName = "subflowName"
)

// Node is a single automation step or control-flow construct in the
// graph. Data is an open configuration map whose shape depends on the
// module type; generators read it defensively via the accessors below.
type Node struct {
	ID       string         `json:"id" yaml:"id"`
	Type     string         `json:"type" yaml:"type"`
	ParentID string         `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	Data     map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
}

// ModuleType resolves the dispatch tag for this node: the generic
// "custom" tag defers to data.moduleType, any other tag stands for
// itself.
func (n *Node) ModuleType() string {
	if n.Type == TypeCustom || n.Type == "" {
		return n.String(KeyModuleType, "")
	}
	return n.Type
}

// IsGroup reports whether the node is a grouping container.
func (n *Node) IsGroup() bool { return n.Type == TypeGroup }

// SubflowName returns the declared sub-procedure name for a group node,
// or "" when the group is anonymous or the node is not a group.
func (n *Node) SubflowName() string {
	if !n.IsGroup() {
		return ""
	}
	return n.String(KeySubflowName, "")
}

// String reads a string config value, returning def when the key is
// missing or holds a non-string.
func (n *Node) String(key, def string) string {
	if v, ok := n.Data[key].(string); ok {
		return v
	}
	return def
}

// Bool reads a boolean config value with a default.
func (n *Node) Bool(key string, def bool) bool {
	if v, ok := n.Data[key].(bool); ok {
		return v
	}
	return def
}

// Int reads a numeric config value as an int. JSON numbers decode as
// float64, YAML numbers as int, so both are accepted.
func (n *Node) Int(key string, def int) int {
	switch v := n.Data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

// Value reads a raw config value with a default.
func (n *Node) Value(key string, def any) any {
	if v, ok := n.Data[key]; ok {
		return v
	}
	return def
}

// Edge is a directed connection between two nodes. SourceHandle
// distinguishes multiple named outputs of one node (a condition's
// "true"/"false", a loop's "body"/"done"); it is empty for single-output
// nodes.
type Edge struct {
	ID           string `json:"id" yaml:"id"`
	Source       string `json:"source" yaml:"source"`
	Target       string `json:"target" yaml:"target"`
	SourceHandle string `json:"sourceHandle,omitempty" yaml:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty" yaml:"targetHandle,omitempty"`
}

// Variable declares a workflow variable. Type is one of "string",
// "number", "boolean", "array" or "object"; Scope distinguishes global
// from workflow-local variables.
type Variable struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
	Scope string `json:"scope,omitempty" yaml:"scope,omitempty"`
}

// Workflow is the aggregate document: the root input to the compiler.
// It is never mutated by compilation.
type Workflow struct {
	Name      string     `json:"name" yaml:"name"`
	Nodes     []Node     `json:"nodes" yaml:"nodes"`
	Edges     []Edge     `json:"edges" yaml:"edges"`
	Variables []Variable `json:"variables,omitempty" yaml:"variables,omitempty"`
}
