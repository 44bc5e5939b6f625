// Package tools provides the agent's tool registry: one declarative record
// per tool holding both the schema offered to the generation provider and
// the handler that executes it, so the two can never drift apart.
package tools

import "github.com/krestn/HomeAI/internal/model"

// Schema defines a tool's function-calling schema.
type Schema struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Function converts the schema to the provider's function format.
func (s *Schema) Function() model.Function {
	return model.Function{
		Name:        s.Name,
		Description: s.Description,
		Parameters:  s.Parameters,
	}
}

// SchemaBuilder provides a fluent interface for building tool schemas.
type SchemaBuilder struct {
	schema *Schema
}

// NewSchema creates a new schema builder with the given name and description.
func NewSchema(name, description string) *SchemaBuilder {
	return &SchemaBuilder{
		schema: &Schema{
			Name:        name,
			Description: description,
			Parameters: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
				"required":   []string{},
			},
		},
	}
}

// AddParam adds a parameter to the schema.
func (b *SchemaBuilder) AddParam(name, paramType, description string, required bool) *SchemaBuilder {
	props := b.schema.Parameters["properties"].(map[string]any)
	props[name] = map[string]any{
		"type":        paramType,
		"description": description,
	}
	if required {
		req := b.schema.Parameters["required"].([]string)
		b.schema.Parameters["required"] = append(req, name)
	}
	return b
}

// Build returns the constructed schema.
func (b *SchemaBuilder) Build() *Schema {
	return b.schema
}
