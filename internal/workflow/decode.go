package workflow

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodeJSON parses a workflow document in the editor's JSON format.
func DecodeJSON(data []byte) (*Workflow, error) {
	var wf Workflow
	if err := json.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("failed to decode workflow JSON: %w", err)
	}
	return &wf, nil
}

// DecodeYAML parses a workflow document in YAML form. Editor exports
// circulate in both formats, so both are first-class.
func DecodeYAML(data []byte) (*Workflow, error) {
	var wf Workflow
	if err := yaml.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("failed to decode workflow YAML: %w", err)
	}
	return &wf, nil
}

// LoadFile reads and decodes a workflow document, choosing the decoder
// by file extension. Unknown extensions are treated as JSON, the
// editor's native format.
func LoadFile(path string) (*Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workflow document: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeYAML(data)
	default:
		return DecodeJSON(data)
	}
}
