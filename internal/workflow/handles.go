package workflow

// Reserved source-handle names on control-flow nodes. A "done" or
// "false" handle marks the path that must never be pulled into the
// loop body or true branch, however the graph is wired.
const (
	HandleTrue  = "true"
	HandleFalse = "false"
	HandleBody  = "body"
	HandleDone  = "done"
)
