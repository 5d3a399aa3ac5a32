package registry

import (
	"fmt"
	"sort"
)

// OperationClass groups tools by how they touch the store. The dispatcher and
// the capacity accountant key their behavior off the class.
type OperationClass string

const (
	ClassTable      OperationClass = "table"
	ClassRead       OperationClass = "read"
	ClassWrite      OperationClass = "write"
	ClassBatchRead  OperationClass = "batch_read"
	ClassBatchWrite OperationClass = "batch_write"
)

// ToolDescriptor describes one tool in the fixed catalog: its name, its
// operation class, and the parameters a well-formed invocation must carry.
type ToolDescriptor struct {
	Name        string
	Class       OperationClass
	Required    []string
	Optional    []string
	Description string
}

// toolRegistry holds the mapping from tool name to its descriptor.
var toolRegistry = make(map[string]ToolDescriptor)

// RegisterTool registers a tool descriptor under its name.
// If a tool is already registered with that name, it panics to prevent
// accidental overrides.
func RegisterTool(d ToolDescriptor) {
	if d.Name == "" {
		panic("tool registry: descriptor has no name")
	}
	if _, exists := toolRegistry[d.Name]; exists {
		panic(fmt.Sprintf("tool registry: tool %q already registered", d.Name))
	}
	toolRegistry[d.Name] = d
}

// GetTool returns the registered descriptor for the given tool name.
// If no tool is registered, it returns an error.
func GetTool(name string) (ToolDescriptor, error) {
	d, ok := toolRegistry[name]
	if !ok {
		return ToolDescriptor{}, fmt.Errorf("tool registry: no tool registered with name %q", name)
	}
	return d, nil
}

// ListTools returns all registered tool names in sorted order.
func ListTools() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
