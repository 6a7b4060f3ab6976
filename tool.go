package dyntools

import (
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/mitchellh/mapstructure"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/dyntools-go/internal/registry"
)

// Re-export MCP SDK types for the public API.
// These are the official MCP protocol types.
type (
	// CallToolResult is the response to a tool invocation. Content holds
	// the displayable fragments; IsError flags handler-level failure.
	CallToolResult = mcp.CallToolResult

	// CallToolRequest is the request passed to tool handlers.
	CallToolRequest = mcp.CallToolRequest

	// Content is the interface for content types in tool results.
	Content = mcp.Content

	// TextContent represents text content in a tool result.
	TextContent = mcp.TextContent

	// ToolAnnotations describes optional hints about tool behavior.
	ToolAnnotations = mcp.ToolAnnotations

	// Schema is a JSON Schema object describing tool input.
	Schema = jsonschema.Schema
)

// ToolHandler is the function signature for tool handlers.
//
// Use ParseArguments or DecodeArguments to extract input from the
// request, and TextResult or ErrorResult to build results. Returning a
// non-nil error marks the invocation as a handler failure: the
// dispatcher converts it into an IsError result, the session continues,
// and the mutation pass still runs.
type ToolHandler = mcp.ToolHandler

// Tool is a single invocable descriptor in a session's registry.
type Tool = registry.Tool

// ToolInfo is the presentation slice of a descriptor returned by listing.
type ToolInfo = registry.Info

// ToolOption configures a Tool during construction.
type ToolOption func(*Tool)

// WithAnnotations sets MCP tool annotations (hints about tool behavior,
// such as ReadOnlyHint or IdempotentHint).
func WithAnnotations(annotations *mcp.ToolAnnotations) ToolOption {
	return func(t *Tool) {
		t.Annotations = annotations
	}
}

// NewTool creates a tool descriptor.
//
// The inputSchema should be a *jsonschema.Schema. Use SimpleSchema for
// convenience or build a full Schema struct for more control.
//
// Example:
//
//	greet := dyntools.NewTool("greet", "Greet someone by name",
//	    dyntools.SimpleSchema(map[string]string{"name": "string"}),
//	    func(ctx context.Context, req *dyntools.CallToolRequest) (*dyntools.CallToolResult, error) {
//	        args, _ := dyntools.ParseArguments(req)
//	        name, _ := args["name"].(string)
//	        return dyntools.TextResult(fmt.Sprintf("Hello, %s!", name)), nil
//	    },
//	)
func NewTool(name, description string, inputSchema *jsonschema.Schema, handler ToolHandler, opts ...ToolOption) *Tool {
	t := registry.NewTool(name, description, inputSchema, handler)

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// SimpleSchema creates a jsonschema.Schema from a simple type map.
//
// Input format: {"a": "float64", "b": "string"}. See the registry
// package for the full type mapping table.
func SimpleSchema(props map[string]string) *jsonschema.Schema {
	return registry.SimpleSchema(props)
}

// TextResult creates a CallToolResult with text content.
func TextResult(text string) *mcp.CallToolResult {
	return registry.TextResult(text)
}

// ErrorResult creates a CallToolResult flagging handler-level failure.
func ErrorResult(message string) *mcp.CallToolResult {
	return registry.ErrorResult(message)
}

// ParseArguments unmarshals CallToolRequest arguments into a map.
// Missing arguments yield an empty map, never nil.
func ParseArguments(req *mcp.CallToolRequest) (map[string]any, error) {
	return registry.ParseArguments(req)
}

// DecodeArguments decodes an argument map into a typed struct, weakly
// typed, matching field names case-insensitively via mapstructure tags.
//
//	var in struct {
//	    Name string `mapstructure:"name"`
//	}
//	if err := dyntools.DecodeArguments(args, &in); err != nil { ... }
func DecodeArguments(args map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(args)
}
