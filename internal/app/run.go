package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/weaveflow/flowc/internal/ctxlog"
	"github.com/weaveflow/flowc/internal/workflow"
)

// Run loads the workflow document, compiles it and writes the script.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	wf, err := workflow.LoadFile(a.config.DocPath)
	if err != nil {
		return fmt.Errorf("failed to load workflow document: %w", err)
	}
	a.logger.Info("Workflow document loaded.", "name", wf.Name, "nodes", len(wf.Nodes), "edges", len(wf.Edges))

	out := a.compiler.Compile(ctx, wf)
	for _, diag := range out.Diagnostics {
		a.logger.Warn("Compile diagnostic.", "detail", diag)
	}

	if a.config.OutDir == "-" {
		if _, err := fmt.Fprint(a.outW, out.Script); err != nil {
			return fmt.Errorf("failed to write script to stdout: %w", err)
		}
		a.logger.Debug("Script streamed to stdout.")
		return nil
	}

	path := filepath.Join(a.config.OutDir, out.Filename)
	if err := os.WriteFile(path, []byte(out.Script), 0o644); err != nil {
		return fmt.Errorf("failed to write script: %w", err)
	}
	a.logger.Info("Script written.", "path", path, "diagnostics", len(out.Diagnostics))
	return nil
}
