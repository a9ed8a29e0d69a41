package event

import (
	"slices"

	"github.com/hupe1980/hepgo/attribute"
)

// Tool describes a program that contributed to a run.
type Tool struct {
	Name        string
	Version     string
	Description string
}

// RunInfo carries run-level metadata shared by many events.
type RunInfo struct {
	weightNames []string
	weightIndex map[string]int
	tools       []Tool
	attrs       map[string]attribute.Value
}

// NewRunInfo creates empty run info.
func NewRunInfo() *RunInfo {
	return &RunInfo{}
}

// WeightNames returns a copy of the weight names.
func (r *RunInfo) WeightNames() []string { return slices.Clone(r.weightNames) }

// SetWeightNames replaces the weight names.
func (r *RunInfo) SetWeightNames(names []string) {
	r.weightNames = slices.Clone(names)
	r.weightIndex = make(map[string]int, len(names))
	for i, n := range names {
		if _, dup := r.weightIndex[n]; !dup {
			r.weightIndex[n] = i
		}
	}
}

// WeightIndex returns the position of the named weight.
func (r *RunInfo) WeightIndex(name string) (int, bool) {
	i, ok := r.weightIndex[name]
	return i, ok
}

// Tools returns a copy of the tool list.
func (r *RunInfo) Tools() []Tool { return slices.Clone(r.tools) }

// AddTool appends a tool description.
func (r *RunInfo) AddTool(t Tool) { r.tools = append(r.tools, t) }

// SetAttribute stores v under name, replacing any previous value.
func (r *RunInfo) SetAttribute(name string, v attribute.Value) error {
	if err := checkAttribute(name, v); err != nil {
		return err
	}
	if r.attrs == nil {
		r.attrs = make(map[string]attribute.Value)
	}
	r.attrs[name] = v
	return nil
}

// Attribute returns the value stored under name.
func (r *RunInfo) Attribute(name string) (attribute.Value, bool) {
	v, ok := r.attrs[name]
	return v, ok
}

// AttributeNames returns the attribute names in sorted order.
func (r *RunInfo) AttributeNames() []string {
	return sortedKeys(r.attrs)
}
