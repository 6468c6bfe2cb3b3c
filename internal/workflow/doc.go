// Package workflow defines the editor document model: the nodes, edges
// and variables a visual workflow is made of, plus decoding of the JSON
// and YAML documents the graph editor produces.
//
// The types here are the compiler's input boundary. They are constructed
// once per document and never mutated during compilation; every derived
// index is rebuilt per compile call by internal/graph.
package workflow
