// Package agenttools defines the function-tool surface handed to the
// Live API voice agent. A tool pairs a genai function declaration with
// a handler that returns a single natural-language string; the string
// is fed back into the model's context as the tool result.
package agenttools

import (
	"context"

	"google.golang.org/genai"
)

// Handler executes one tool call. Arguments arrive loosely typed from
// the model; handlers must return a string under every input and never
// panic or propagate errors upward.
type Handler func(ctx context.Context, args map[string]any) string

// Tool is one callable function exposed to the voice agent.
type Tool struct {
	Name        string
	Description string
	Parameters  *genai.Schema
	Handler     Handler
}

// Toolset is a named collection of tools with dispatch by name.
type Toolset struct {
	tools    []Tool
	handlers map[string]Handler
}

// NewToolset creates an empty toolset.
func NewToolset() *Toolset {
	return &Toolset{handlers: make(map[string]Handler)}
}

// Add registers a tool. Later registrations with the same name win.
func (ts *Toolset) Add(tool Tool) *Toolset {
	ts.tools = append(ts.tools, tool)
	if tool.Name != "" && tool.Handler != nil {
		ts.handlers[tool.Name] = tool.Handler
	}
	return ts
}

// Declarations returns the genai function declarations for the session
// config.
func (ts *Toolset) Declarations() []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(ts.tools))
	for _, t := range ts.tools {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Parameters,
		})
	}
	return decls
}

// Dispatch runs the named tool and returns its message. Unknown tool
// names return a corrective message rather than an error so the model
// can recover conversationally.
func (ts *Toolset) Dispatch(ctx context.Context, name string, args map[string]any) string {
	handler, ok := ts.handlers[name]
	if !ok {
		return "That action is not available."
	}
	if args == nil {
		args = map[string]any{}
	}
	return handler(ctx, args)
}

// StringArg extracts a string argument, tolerating absent or
// wrongly-typed values.
func StringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// IntArg extracts an integer argument. The model sends JSON numbers, so
// float64 is the common wire type.
func IntArg(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return def
	}
}
