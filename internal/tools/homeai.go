package tools

import (
	"context"
	"fmt"

	"github.com/krestn/HomeAI/internal/memory"
)

// Tool names. These are the exact names offered to the generation
// provider; Registry.Execute dispatches on them.
const (
	ToolHomeValue         = "get_home_value"
	ToolLocalServices     = "get_local_services"
	ToolRememberTask      = "remember_user_task"
	ToolCompleteTask      = "complete_user_task"
	ToolListDocuments     = "list_user_documents"
	ToolSummarizeDocument = "summarize_user_document"
	ToolSearchDocuments   = "search_user_documents"
)

// TaskToolNames returns the task tool set.
func TaskToolNames() []string {
	return []string{ToolRememberTask, ToolCompleteTask}
}

// DocumentToolNames returns the document tool set.
func DocumentToolNames() []string {
	return []string{ToolListDocuments, ToolSummarizeDocument, ToolSearchDocuments}
}

// PropertyToolNames returns the full tool set offered on the property
// path: lookups first, then task tools, then document tools.
func PropertyToolNames() []string {
	return append([]string{ToolHomeValue, ToolLocalServices},
		append(TaskToolNames(), DocumentToolNames()...)...)
}

// GeneralToolNames returns the tool set offered on the general path.
func GeneralToolNames() []string {
	return append(TaskToolNames(), DocumentToolNames()...)
}

// Valuer looks up estimated home values.
type Valuer interface {
	HomeValue(ctx context.Context, address string) (string, error)
}

// ServiceFinder looks up local service providers.
type ServiceFinder interface {
	FindLocalServices(ctx context.Context, service, cityState string) ([]string, error)
}

// DocumentAgent exposes the document store's agent-facing operations.
type DocumentAgent interface {
	ListForAgent(userID int64) map[string]any
	SummarizeForAgent(userID int64, documentID string) map[string]any
	SearchForAgent(userID int64, query string) map[string]any
}

// TaskMemory exposes the task store operations the tools need.
type TaskMemory interface {
	AddTask(userID int64, description string)
	CompleteTask(userID int64, description string)
	Tasks(userID int64) []memory.Task
}

// Deps are the collaborators behind the tool handlers.
type Deps struct {
	Valuer    Valuer
	Services  ServiceFinder
	Documents DocumentAgent
	Tasks     TaskMemory
}

// NewHomeRegistry builds the closed tool set for the homeowner agent.
func NewHomeRegistry(deps Deps) *Registry {
	r := NewRegistry()

	r.Register(
		NewSchema(ToolHomeValue, "Get an estimated home value for the user's current property.").
			AddParam("address", "string", "Full formatted address of the property.", true).
			Build(),
		func(ctx context.Context, _ int64, args map[string]any) (any, error) {
			address, err := stringArg(args, "address")
			if err != nil {
				return nil, err
			}
			return deps.Valuer.HomeValue(ctx, address)
		},
	)

	r.Register(
		NewSchema(ToolLocalServices, "Find local services near the user's property.").
			AddParam("service", "string", "Type of service provider, e.g. plumber.", true).
			AddParam("city_state", "string", "City and state to search near.", true).
			Build(),
		func(ctx context.Context, _ int64, args map[string]any) (any, error) {
			service, err := stringArg(args, "service")
			if err != nil {
				return nil, err
			}
			cityState, err := stringArg(args, "city_state")
			if err != nil {
				return nil, err
			}
			return deps.Services.FindLocalServices(ctx, service, cityState)
		},
	)

	r.Register(
		NewSchema(ToolRememberTask, "Store a short follow-up task or reminder for the assistant.").
			AddParam("description", "string", "A concise summary of the follow-up action.", true).
			Build(),
		func(_ context.Context, userID int64, args map[string]any) (any, error) {
			description, err := stringArg(args, "description")
			if err != nil {
				return nil, err
			}
			deps.Tasks.AddTask(userID, description)
			return map[string]any{"status": "stored", "tasks": deps.Tasks.Tasks(userID)}, nil
		},
	)

	r.Register(
		NewSchema(ToolCompleteTask, "Mark a stored follow-up task as completed.").
			AddParam("description", "string", "Specific task to complete. If omitted, completes all tasks.", false).
			Build(),
		func(_ context.Context, userID int64, args map[string]any) (any, error) {
			description, _ := args["description"].(string)
			deps.Tasks.CompleteTask(userID, description)
			return map[string]any{"status": "completed", "tasks": deps.Tasks.Tasks(userID)}, nil
		},
	)

	r.Register(
		NewSchema(ToolListDocuments, "List documents the user has uploaded, including previews.").
			Build(),
		func(_ context.Context, userID int64, _ map[string]any) (any, error) {
			return deps.Documents.ListForAgent(userID), nil
		},
	)

	r.Register(
		NewSchema(ToolSummarizeDocument, "Summarize a specific document the user uploaded.").
			AddParam("document_id", "string", "ID from list_user_documents.", true).
			Build(),
		func(_ context.Context, userID int64, args map[string]any) (any, error) {
			documentID, err := stringArg(args, "document_id")
			if err != nil {
				return nil, err
			}
			return deps.Documents.SummarizeForAgent(userID, documentID), nil
		},
	)

	r.Register(
		NewSchema(ToolSearchDocuments, "Search across all uploaded documents for a query.").
			AddParam("query", "string", "What to search for in documents.", true).
			Build(),
		func(_ context.Context, userID int64, args map[string]any) (any, error) {
			query, err := stringArg(args, "query")
			if err != nil {
				return nil, err
			}
			return deps.Documents.SearchForAgent(userID, query), nil
		},
	)

	return r
}

func stringArg(args map[string]any, name string) (string, error) {
	v, ok := args[name].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("missing required argument %q", name)
	}
	return v, nil
}
