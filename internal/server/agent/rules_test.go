package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTaskID = "b2f9a8d0-1234-4abc-9def-0123456789ab"

func TestRuleClassifier_ListIntents(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		wantStatus string
	}{
		{"plain list", "show my tasks", StatusAll},
		{"pending", "list my pending tasks", StatusPending},
		{"completed", "show my completed tasks", StatusCompleted},
		{"what do i have", "what do i have today?", StatusAll},
	}

	c := NewRuleClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Classify(context.Background(), tt.message, nil)
			require.NoError(t, err)
			require.IsType(t, ListTasks{}, got.Call)
			assert.Equal(t, tt.wantStatus, got.Call.(ListTasks).Status)
		})
	}
}

func TestRuleClassifier_AddIntents(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		wantTitle string
	}{
		{"add a task to", "add a task to buy milk", "buy milk"},
		{"remember to", "remember to call mom", "call mom"},
		{"need to", "I need to water the plants", "water the plants"},
	}

	c := NewRuleClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Classify(context.Background(), tt.message, nil)
			require.NoError(t, err)
			require.IsType(t, AddTask{}, got.Call)
			assert.Equal(t, tt.wantTitle, got.Call.(AddTask).Title)
		})
	}
}

func TestRuleClassifier_CompleteWithID(t *testing.T) {
	c := NewRuleClassifier()
	got, err := c.Classify(context.Background(), "mark "+testTaskID+" as done", nil)
	require.NoError(t, err)
	require.IsType(t, CompleteTask{}, got.Call)
	assert.Equal(t, testTaskID, got.Call.(CompleteTask).TaskID)
}

func TestRuleClassifier_CompleteWithoutID(t *testing.T) {
	c := NewRuleClassifier()
	got, err := c.Classify(context.Background(), "finish the laundry task", nil)
	require.NoError(t, err)
	assert.Nil(t, got.Call)
	assert.Contains(t, got.Reply, "task id")
}

func TestRuleClassifier_DeleteWithID(t *testing.T) {
	c := NewRuleClassifier()
	got, err := c.Classify(context.Background(), "delete task "+testTaskID, nil)
	require.NoError(t, err)
	require.IsType(t, DeleteTask{}, got.Call)
	assert.Equal(t, testTaskID, got.Call.(DeleteTask).TaskID)
}

func TestRuleClassifier_CompletedListIsNotCompletion(t *testing.T) {
	// "completed" appears in the message but the intent is listing.
	c := NewRuleClassifier()
	got, err := c.Classify(context.Background(), "show my completed tasks", nil)
	require.NoError(t, err)
	require.IsType(t, ListTasks{}, got.Call)
	assert.Equal(t, StatusCompleted, got.Call.(ListTasks).Status)
}

func TestRuleClassifier_UnknownIntent(t *testing.T) {
	c := NewRuleClassifier()
	got, err := c.Classify(context.Background(), "how is the weather?", nil)
	require.NoError(t, err)
	assert.Nil(t, got.Call)
	assert.Equal(t, helpReply, got.Reply)
}
