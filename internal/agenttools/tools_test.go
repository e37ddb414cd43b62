package agenttools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestToolset_Dispatch(t *testing.T) {
	ts := NewToolset()
	ts.Add(Tool{
		Name:        "greet",
		Description: "Greets a caller by name",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name": {Type: genai.TypeString},
			},
		},
		Handler: func(ctx context.Context, args map[string]any) string {
			return "Hello, " + StringArg(args, "name")
		},
	})

	got := ts.Dispatch(context.Background(), "greet", map[string]any{"name": "Jane"})
	assert.Equal(t, "Hello, Jane", got)
}

func TestToolset_Dispatch_UnknownTool(t *testing.T) {
	ts := NewToolset()
	got := ts.Dispatch(context.Background(), "missing", nil)
	assert.Equal(t, "That action is not available.", got)
}

func TestToolset_Dispatch_NilArgs(t *testing.T) {
	ts := NewToolset()
	ts.Add(Tool{
		Name: "echo",
		Handler: func(ctx context.Context, args map[string]any) string {
			return "ok:" + StringArg(args, "missing")
		},
	})
	assert.Equal(t, "ok:", ts.Dispatch(context.Background(), "echo", nil))
}

func TestStringArg_ToleratesWrongType(t *testing.T) {
	assert.Equal(t, "", StringArg(map[string]any{"v": 12}, "v"))
	assert.Equal(t, "x", StringArg(map[string]any{"v": "x"}, "v"))
}

func TestIntArg(t *testing.T) {
	assert.Equal(t, 20, IntArg(map[string]any{}, "sides", 20))
	assert.Equal(t, 6, IntArg(map[string]any{"sides": float64(6)}, "sides", 20))
	assert.Equal(t, 8, IntArg(map[string]any{"sides": 8}, "sides", 20))
	assert.Equal(t, 20, IntArg(map[string]any{"sides": "six"}, "sides", 20))
}

func TestToolset_Declarations(t *testing.T) {
	ts := NewToolset()
	ts.Add(Tool{Name: "a", Description: "first"})
	ts.Add(Tool{Name: "b", Description: "second"})

	decls := ts.Declarations()
	assert.Len(t, decls, 2)
	assert.Equal(t, "a", decls[0].Name)
	assert.Equal(t, "second", decls[1].Description)
}
