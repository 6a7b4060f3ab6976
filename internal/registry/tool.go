package registry

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool is a single invocable descriptor: a name, an input schema, a
// human-readable description, and a handler. Descriptors are immutable
// once added to a Store; re-adding under the same name overwrites.
type Tool struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
	Annotations *mcp.ToolAnnotations
	Handler     mcp.ToolHandler
}

// Info is the presentation slice of a descriptor, as returned by listing.
type Info struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	InputSchema *jsonschema.Schema `json:"inputSchema,omitempty"`
}

// Info returns the presentation slice of the descriptor.
func (t *Tool) Info() Info {
	return Info{
		Name:        t.Name,
		Description: t.Description,
		InputSchema: t.InputSchema,
	}
}

// NewTool creates a descriptor with the given parameters.
func NewTool(name, description string, inputSchema *jsonschema.Schema, handler mcp.ToolHandler) *Tool {
	return &Tool{
		Name:        name,
		Description: description,
		InputSchema: inputSchema,
		Handler:     handler,
	}
}

// schemaKinds maps the Go type names SimpleSchema accepts to JSON
// Schema type keywords. Anything not listed and not a "[]T" slice falls
// back to "string".
var schemaKinds = map[string]string{
	"string": "string",

	"int": "integer", "int8": "integer", "int16": "integer",
	"int32": "integer", "int64": "integer",
	"uint": "integer", "uint8": "integer", "uint16": "integer",
	"uint32": "integer", "uint64": "integer",

	"float": "number", "float32": "number", "float64": "number",
	"number": "number",

	"bool": "boolean", "boolean": "boolean",

	"any": "object", "object": "object", "map[string]any": "object",
}

// SimpleSchema builds an object schema from a property-name to Go-type
// map, e.g. {"name": "string", "count": "int", "tags": "[]string"}.
// Every property is required; Required is sorted so the schema is
// deterministic.
func SimpleSchema(props map[string]string) *jsonschema.Schema {
	properties := make(map[string]*jsonschema.Schema, len(props))
	required := make([]string, 0, len(props))

	for name, goType := range props {
		properties[name] = schemaForType(goType)
		required = append(required, name)
	}

	sort.Strings(required)

	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

func schemaForType(goType string) *jsonschema.Schema {
	if kind, ok := schemaKinds[goType]; ok {
		return &jsonschema.Schema{Type: kind}
	}

	if itemType, ok := strings.CutPrefix(goType, "[]"); ok && itemType != "" {
		return &jsonschema.Schema{Type: "array", Items: schemaForType(itemType)}
	}

	return &jsonschema.Schema{Type: "string"}
}

func textContent(text string) []mcp.Content {
	return []mcp.Content{&mcp.TextContent{Text: text}}
}

// TextResult creates a CallToolResult with a single text fragment.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: textContent(text)}
}

// ErrorResult creates a CallToolResult carrying a handler-level failure
// message.
func ErrorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: textContent(message), IsError: true}
}

// ParseArguments extracts a CallToolRequest's argument payload as a map.
// A nil request or empty payload yields an empty map, never nil.
func ParseArguments(req *mcp.CallToolRequest) (map[string]any, error) {
	args := make(map[string]any)

	if req == nil || req.Params == nil || len(req.Params.Arguments) == 0 {
		return args, nil
	}

	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return nil, fmt.Errorf("unmarshal arguments: %w", err)
	}

	return args, nil
}
