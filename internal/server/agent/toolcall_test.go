package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeToolCall_AddTask(t *testing.T) {
	call, err := decodeToolCall("add_task", map[string]any{"title": "buy milk", "description": "2 liters"})
	require.NoError(t, err)
	require.IsType(t, AddTask{}, call)
	assert.Equal(t, "buy milk", call.(AddTask).Title)
	assert.Equal(t, "2 liters", call.(AddTask).Description)
}

func TestDecodeToolCall_AddTaskMissingTitle(t *testing.T) {
	_, err := decodeToolCall("add_task", map[string]any{"description": "no title"})
	assert.Error(t, err)
}

func TestDecodeToolCall_ListTasksDefaultsToAll(t *testing.T) {
	call, err := decodeToolCall("list_tasks", nil)
	require.NoError(t, err)
	assert.Equal(t, StatusAll, call.(ListTasks).Status)
}

func TestDecodeToolCall_ListTasksUnknownStatus(t *testing.T) {
	_, err := decodeToolCall("list_tasks", map[string]any{"status": "archived"})
	assert.Error(t, err)
}

func TestDecodeToolCall_UpdateTaskPartial(t *testing.T) {
	call, err := decodeToolCall("update_task", map[string]any{"task_id": "abc", "title": "new title"})
	require.NoError(t, err)
	ut := call.(UpdateTask)
	require.NotNil(t, ut.Title)
	assert.Equal(t, "new title", *ut.Title)
	assert.Nil(t, ut.Description)
}

func TestDecodeToolCall_UpdateTaskNothingToUpdate(t *testing.T) {
	_, err := decodeToolCall("update_task", map[string]any{"task_id": "abc"})
	assert.Error(t, err)
}

func TestDecodeToolCall_UnknownTool(t *testing.T) {
	_, err := decodeToolCall("launch_rocket", nil)
	assert.Error(t, err)
}

func TestDecodeToolCall_NonStringParamIgnored(t *testing.T) {
	_, err := decodeToolCall("complete_task", map[string]any{"task_id": 42})
	assert.Error(t, err)
}
