package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krestn/HomeAI/internal/memory"
)

type fakeValuer struct{ value string }

func (f *fakeValuer) HomeValue(_ context.Context, _ string) (string, error) {
	return f.value, nil
}

type fakeFinder struct{ entries []string }

func (f *fakeFinder) FindLocalServices(_ context.Context, _, _ string) ([]string, error) {
	return f.entries, nil
}

type fakeDocs struct{}

func (fakeDocs) ListForAgent(int64) map[string]any { return map[string]any{"documents": []any{}} }
func (fakeDocs) SummarizeForAgent(int64, string) map[string]any {
	return map[string]any{"error": "Document not found."}
}
func (fakeDocs) SearchForAgent(int64, string) map[string]any {
	return map[string]any{"results": []any{}, "note": "No matching passages found."}
}

func newTestRegistry() (*Registry, *memory.TaskStore) {
	tasks := memory.NewTaskStore()
	reg := NewHomeRegistry(Deps{
		Valuer:    &fakeValuer{value: "412300"},
		Services:  &fakeFinder{entries: []string{"Ace Plumbing"}},
		Documents: fakeDocs{},
		Tasks:     tasks,
	})
	return reg, tasks
}

func TestRegistryCoversOfferedTools(t *testing.T) {
	reg, _ := newTestRegistry()

	// Every name offered to the provider must dispatch.
	for _, name := range PropertyToolNames() {
		assert.NotPanics(t, func() {
			reg.Functions(name)
		})
	}
	assert.ElementsMatch(t, PropertyToolNames(), reg.Names())
}

func TestExecuteHomeValue(t *testing.T) {
	reg, _ := newTestRegistry()

	result, err := reg.Execute(context.Background(), ToolHomeValue, 7,
		map[string]any{"address": "42 Maple St"})
	require.NoError(t, err)
	assert.Equal(t, "412300", result)
}

func TestExecuteRememberTask(t *testing.T) {
	reg, tasks := newTestRegistry()

	result, err := reg.Execute(context.Background(), ToolRememberTask, 7,
		map[string]any{"description": "call plumber"})
	require.NoError(t, err)

	payload, ok := result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "stored", payload["status"])
	require.Len(t, tasks.Tasks(7), 1)
}

func TestExecuteCompleteTaskBulk(t *testing.T) {
	reg, tasks := newTestRegistry()
	tasks.AddTask(7, "call plumber")
	tasks.AddTask(7, "order filters")

	_, err := reg.Execute(context.Background(), ToolCompleteTask, 7, map[string]any{})
	require.NoError(t, err)

	for _, task := range tasks.Tasks(7) {
		assert.True(t, task.Completed)
	}
}

func TestExecuteMissingArgument(t *testing.T) {
	reg, _ := newTestRegistry()

	_, err := reg.Execute(context.Background(), ToolHomeValue, 7, map[string]any{})
	assert.Error(t, err)
}

func TestExecuteUnknownToolPanics(t *testing.T) {
	reg, _ := newTestRegistry()

	assert.Panics(t, func() {
		reg.Execute(context.Background(), "no_such_tool", 7, nil)
	})
}

func TestFunctionsPreserveOrder(t *testing.T) {
	reg, _ := newTestRegistry()

	fns := reg.Functions(PropertyToolNames()...)
	require.Len(t, fns, 7)
	assert.Equal(t, ToolHomeValue, fns[0].Name)
	assert.Equal(t, ToolLocalServices, fns[1].Name)
	assert.Equal(t, ToolSearchDocuments, fns[6].Name)
}
