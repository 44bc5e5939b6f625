// Package model provides types for generation-provider operations.
package model

import "context"

// Message roles for provider requests.
const (
	RoleSystem   = "system"
	RoleUser     = "user"
	RoleFunction = "function"
)

// Message is one entry in a provider conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name,omitempty"` // Set for function results
}

// Function describes one callable function offered to the provider.
type Function struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// FunctionCall is the provider's request to invoke a function.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // Raw JSON object
}

// Request represents a provider completion request.
type Request struct {
	Messages  []Message  `json:"messages"`
	Functions []Function `json:"functions,omitempty"`
	MaxTokens int        `json:"max_tokens,omitempty"`
}

// Response represents a provider completion response: either text or a
// function call, never both.
type Response struct {
	Text         string        `json:"text"`
	FunctionCall *FunctionCall `json:"function_call,omitempty"`
}

// Generator is the minimal provider surface the orchestrator depends on.
// Tests script it; production uses Client.
type Generator interface {
	Generate(ctx context.Context, req *Request) (*Response, error)
}
