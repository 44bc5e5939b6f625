package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTaskIdempotent(t *testing.T) {
	store := NewTaskStore()

	store.AddTask(7, "call plumber")
	store.AddTask(7, "call plumber")

	tasks := store.Tasks(7)
	require.Len(t, tasks, 1)
	assert.Equal(t, Task{Description: "call plumber"}, tasks[0])
}

func TestAddTaskReopensCompleted(t *testing.T) {
	store := NewTaskStore()

	store.AddTask(7, "call plumber")
	store.CompleteTask(7, "call plumber")
	store.AddTask(7, "call plumber")

	tasks := store.Tasks(7)
	require.Len(t, tasks, 1)
	assert.False(t, tasks[0].Completed)
}

func TestAddTaskTrimsAndIgnoresBlank(t *testing.T) {
	store := NewTaskStore()

	store.AddTask(7, "  schedule roof inspection  ")
	store.AddTask(7, "   ")
	store.AddTask(7, "")

	tasks := store.Tasks(7)
	require.Len(t, tasks, 1)
	assert.Equal(t, "schedule roof inspection", tasks[0].Description)
}

func TestCompleteTaskTargeted(t *testing.T) {
	store := NewTaskStore()

	store.AddTask(7, "call plumber")
	store.AddTask(7, "order filters")
	store.CompleteTask(7, "call plumber")

	tasks := store.Tasks(7)
	require.Len(t, tasks, 2)
	assert.True(t, tasks[0].Completed)
	assert.False(t, tasks[1].Completed)

	// Unknown description is a no-op.
	store.CompleteTask(7, "paint fence")
	assert.False(t, store.Tasks(7)[1].Completed)
}

func TestCompleteTaskBulk(t *testing.T) {
	store := NewTaskStore()

	store.AddTask(7, "call plumber")
	store.AddTask(7, "order filters")
	store.CompleteTask(7, "")

	for _, task := range store.Tasks(7) {
		assert.True(t, task.Completed)
	}
}

func TestTasksReturnsCopies(t *testing.T) {
	store := NewTaskStore()
	store.AddTask(7, "call plumber")

	tasks := store.Tasks(7)
	tasks[0].Completed = true

	assert.False(t, store.Tasks(7)[0].Completed)
}

func TestTasksIsolatedPerUser(t *testing.T) {
	store := NewTaskStore()
	store.AddTask(7, "call plumber")

	assert.Empty(t, store.Tasks(8))
}
