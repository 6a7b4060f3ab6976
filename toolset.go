package dyntools

import (
	"context"
	"fmt"

	"github.com/wagiedev/dyntools-go/internal/arith"
)

// DemoTools returns the seed toolset: just the greet tool. Invoking it
// unlocks the rest via DemoUnlockPolicy.
func DemoTools() []*Tool {
	return []*Tool{GreetTool()}
}

// DemoUnlockPolicy returns the unlock policy for the demo toolset:
// the first greet call adds farewell, status, and evaluate.
func DemoUnlockPolicy() Policy {
	return &UnlockOnFirstInvoke{
		Seed:   "greet",
		Unlock: []*Tool{FarewellTool(), StatusTool(), EvaluateTool()},
	}
}

// GreetTool greets someone by name.
func GreetTool() *Tool {
	return NewTool(
		"greet",
		"Greet someone by name",
		SimpleSchema(map[string]string{"name": "string"}),
		func(_ context.Context, req *CallToolRequest) (*CallToolResult, error) {
			args, err := ParseArguments(req)
			if err != nil {
				return ErrorResult(err.Error()), nil
			}

			var in struct {
				Name string `mapstructure:"name"`
			}

			if err := DecodeArguments(args, &in); err != nil {
				return ErrorResult(err.Error()), nil
			}

			if in.Name == "" {
				in.Name = "stranger"
			}

			return TextResult(fmt.Sprintf("Hello, %s!", in.Name)), nil
		},
	)
}

// FarewellTool says goodbye by name.
func FarewellTool() *Tool {
	return NewTool(
		"farewell",
		"Say goodbye to someone by name",
		SimpleSchema(map[string]string{"name": "string"}),
		func(_ context.Context, req *CallToolRequest) (*CallToolResult, error) {
			args, err := ParseArguments(req)
			if err != nil {
				return ErrorResult(err.Error()), nil
			}

			var in struct {
				Name string `mapstructure:"name"`
			}

			if err := DecodeArguments(args, &in); err != nil {
				return ErrorResult(err.Error()), nil
			}

			if in.Name == "" {
				in.Name = "stranger"
			}

			return TextResult(fmt.Sprintf("Goodbye, %s!", in.Name)), nil
		},
	)
}

// StatusTool reports the session ID and running call count. It reads the
// invocation record the dispatcher injects into the context, so the
// reported count includes the status call itself.
func StatusTool() *Tool {
	return NewTool(
		"status",
		"Report the session's call count",
		SimpleSchema(map[string]string{}),
		func(ctx context.Context, _ *CallToolRequest) (*CallToolResult, error) {
			inv, ok := InvocationFromContext(ctx)
			if !ok {
				return ErrorResult("no invocation record in context"), nil
			}

			return TextResult(fmt.Sprintf("session %s: call count %d", inv.SessionID, inv.Count)), nil
		},
		WithAnnotations(&ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true}),
	)
}

// EvaluateTool evaluates a small arithmetic expression. Malformed
// expressions and division by zero are handler failures: the dispatcher
// turns them into IsError results, never protocol faults.
func EvaluateTool() *Tool {
	return NewTool(
		"evaluate",
		"Evaluate an arithmetic expression (+, -, *, /, parentheses)",
		SimpleSchema(map[string]string{"expression": "string"}),
		func(_ context.Context, req *CallToolRequest) (*CallToolResult, error) {
			args, err := ParseArguments(req)
			if err != nil {
				return ErrorResult(err.Error()), nil
			}

			expr, _ := args["expression"].(string)

			v, err := arith.Eval(expr)
			if err != nil {
				return nil, err
			}

			return TextResult(arith.Format(v)), nil
		},
		WithAnnotations(&ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true}),
	)
}
