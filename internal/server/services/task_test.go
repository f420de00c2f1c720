package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

func strPtr(s string) *string { return &s }

func TestTaskCreate_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{t: &fakeTasksRepo{count: 3}}
	s := NewTaskService(db, rm)

	task, err := s.Create(context.Background(), "u1", "buy milk", "2 liters")
	require.NoError(t, err)
	assert.Equal(t, "u1", task.UserID)
	assert.Equal(t, "buy milk", task.Title)
	assert.False(t, task.Completed)
}

func TestTaskCreate_Validation(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := NewTaskService(db, &fakeRepoManager{t: &fakeTasksRepo{}})

	_, err := s.Create(context.Background(), "u1", "", "")
	assert.ErrorIs(t, err, common.ErrInvalidTitle)

	_, err = s.Create(context.Background(), "u1", strings.Repeat("x", 201), "")
	assert.ErrorIs(t, err, common.ErrInvalidTitle)

	_, err = s.Create(context.Background(), "u1", "ok", strings.Repeat("x", 1001))
	assert.ErrorIs(t, err, common.ErrInvalidDescription)
}

func TestTaskCreate_BoundaryLengthsAccepted(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := NewTaskService(db, &fakeRepoManager{t: &fakeTasksRepo{}})

	_, err := s.Create(context.Background(), "u1", strings.Repeat("x", 200), strings.Repeat("y", 1000))
	assert.NoError(t, err)
}

func TestTaskCreate_LengthsCountCharactersNotBytes(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := NewTaskService(db, &fakeRepoManager{t: &fakeTasksRepo{}})

	// 200 two-byte characters (400 bytes) is within the 200-character bound.
	_, err := s.Create(context.Background(), "u1", strings.Repeat("é", 200), strings.Repeat("é", 1000))
	assert.NoError(t, err)

	_, err = s.Create(context.Background(), "u1", strings.Repeat("é", 201), "")
	assert.ErrorIs(t, err, common.ErrInvalidTitle)

	_, err = s.Create(context.Background(), "u1", "ok", strings.Repeat("é", 1001))
	assert.ErrorIs(t, err, common.ErrInvalidDescription)
}

func TestTaskCreate_LimitReached(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{t: &fakeTasksRepo{count: 1000}}
	s := NewTaskService(db, rm)

	_, err := s.Create(context.Background(), "u1", "one more", "")
	assert.ErrorIs(t, err, common.ErrTaskLimitReached)
}

func TestTaskGet_ForeignTaskLooksAbsent(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{t: &fakeTasksRepo{
		byIDOut: &models.Task{ID: "t1", UserID: "someone-else"},
	}}
	s := NewTaskService(db, rm)

	_, err := s.Get(context.Background(), "u1", "t1")
	assert.ErrorIs(t, err, common.ErrTaskNotFound)
}

func TestTaskGet_Missing(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := NewTaskService(db, &fakeRepoManager{t: &fakeTasksRepo{}})

	_, err := s.Get(context.Background(), "u1", "nope")
	assert.ErrorIs(t, err, common.ErrTaskNotFound)
}

func TestTaskList_ReturnsPageAndTotal(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{t: &fakeTasksRepo{
		listOut: []*models.Task{{ID: "t1"}, {ID: "t2"}},
		count:   7,
	}}
	s := NewTaskService(db, rm)

	items, total, err := s.List(context.Background(), "u1", 2, 0)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 7, total)
}

func TestTaskUpdate_PartialInTx(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &fakeRepoManager{t: &fakeTasksRepo{
		byIDOut: &models.Task{ID: "t1", UserID: "u1", Title: "old", Description: "keep me"},
	}}
	s := NewTaskService(db, rm)

	updated, err := s.Update(context.Background(), "u1", "t1", strPtr("new title"), nil)
	require.NoError(t, err)
	assert.Equal(t, "new title", updated.Title)
	assert.Equal(t, "keep me", updated.Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskUpdate_ForeignRollsBack(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{t: &fakeTasksRepo{
		byIDOut: &models.Task{ID: "t1", UserID: "someone-else"},
	}}
	s := NewTaskService(db, rm)

	_, err := s.Update(context.Background(), "u1", "t1", strPtr("new title"), nil)
	assert.ErrorIs(t, err, common.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskDelete_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &fakeTasksRepo{byIDOut: &models.Task{ID: "t1", UserID: "u1"}}
	s := NewTaskService(db, &fakeRepoManager{t: repo})

	err := s.Delete(context.Background(), "u1", "t1")
	require.NoError(t, err)
	assert.Equal(t, "t1", repo.deletedID)
}

func TestTaskToggle_ReturnsToggledState(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &fakeRepoManager{t: &fakeTasksRepo{
		byIDOut:   &models.Task{ID: "t1", UserID: "u1", Completed: false},
		toggleOut: &models.Task{ID: "t1", UserID: "u1", Completed: true},
	}}
	s := NewTaskService(db, rm)

	task, err := s.ToggleComplete(context.Background(), "u1", "t1")
	require.NoError(t, err)
	assert.True(t, task.Completed)
}
