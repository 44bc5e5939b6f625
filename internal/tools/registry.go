package tools

import (
	"context"
	"fmt"

	"github.com/krestn/HomeAI/internal/model"
)

// Handler executes a tool for the given user. The returned value is
// serialized as the function-result payload fed back to the provider;
// lookup failures come back as an error and are surfaced to the provider
// as an {error: ...} payload by the orchestrator.
type Handler func(ctx context.Context, userID int64, args map[string]any) (any, error)

// Tool pairs a schema with its handler.
type Tool struct {
	Schema  *Schema
	Handler Handler
}

// Registry holds the closed set of tools offered to the provider.
type Registry struct {
	tools map[string]*Tool
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*Tool)}
}

// Register adds a tool. Registering the same name twice is a programming
// error.
func (r *Registry) Register(schema *Schema, handler Handler) {
	if _, exists := r.tools[schema.Name]; exists {
		panic(fmt.Sprintf("tools: duplicate registration for %q", schema.Name))
	}
	r.tools[schema.Name] = &Tool{Schema: schema, Handler: handler}
	r.order = append(r.order, schema.Name)
}

// Functions returns the provider function payload for the named tools, in
// the order given. Naming an unregistered tool is a programming error.
func (r *Registry) Functions(names ...string) []model.Function {
	out := make([]model.Function, 0, len(names))
	for _, name := range names {
		tool, ok := r.tools[name]
		if !ok {
			panic(fmt.Sprintf("tools: no such tool %q", name))
		}
		out = append(out, tool.Schema.Function())
	}
	return out
}

// Names returns all registered tool names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Execute runs a tool by name. An unknown name means the schema offered to
// the provider and this dispatch table have drifted out of sync, which is
// fatal by contract.
func (r *Registry) Execute(ctx context.Context, name string, userID int64, args map[string]any) (any, error) {
	tool, ok := r.tools[name]
	if !ok {
		panic(fmt.Sprintf("tools: provider requested unknown tool %q", name))
	}
	return tool.Handler(ctx, userID, args)
}
