package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	conversationsrepo "github.com/dmitrijs2005/taskkeeper/internal/server/repositories/conversations"
	tasksrepo "github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	usersrepo "github.com/dmitrijs2005/taskkeeper/internal/server/repositories/users"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byEmailOut *models.User
	byEmailErr error

	updateOut *models.User
	updateErr error
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	out := *u
	out.ID = "user-1"
	return &out, nil
}

func (f *fakeUsersRepo) GetByEmail(context.Context, string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	if f.byEmailOut == nil {
		return nil, common.ErrNotFound
	}
	return f.byEmailOut, nil
}

func (f *fakeUsersRepo) GetByID(context.Context, string) (*models.User, error) {
	return nil, common.ErrNotFound
}

func (f *fakeUsersRepo) Update(_ context.Context, u *models.User) (*models.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateOut != nil {
		return f.updateOut, nil
	}
	return u, nil
}

type fakeTasksRepo struct {
	insertOut *models.Task
	insertErr error

	byIDOut *models.Task
	byIDErr error

	listOut []*models.Task
	listErr error

	count    int
	countErr error

	updateOut *models.Task
	updateErr error

	deleteErr error
	deletedID string

	toggleOut *models.Task
	toggleErr error
}

func (f *fakeTasksRepo) Insert(_ context.Context, task *models.Task) (*models.Task, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	if f.insertOut != nil {
		return f.insertOut, nil
	}
	out := *task
	out.ID = "task-1"
	return &out, nil
}

func (f *fakeTasksRepo) GetByID(context.Context, string) (*models.Task, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	if f.byIDOut == nil {
		return nil, common.ErrNotFound
	}
	return f.byIDOut, nil
}

func (f *fakeTasksRepo) ListByOwner(context.Context, string, int, int) ([]*models.Task, error) {
	return f.listOut, f.listErr
}

func (f *fakeTasksRepo) CountByOwner(context.Context, string) (int, error) {
	return f.count, f.countErr
}

func (f *fakeTasksRepo) Update(_ context.Context, task *models.Task) (*models.Task, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateOut != nil {
		return f.updateOut, nil
	}
	return task, nil
}

func (f *fakeTasksRepo) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedID = id
	return nil
}

func (f *fakeTasksRepo) ToggleComplete(context.Context, string) (*models.Task, error) {
	if f.toggleErr != nil {
		return nil, f.toggleErr
	}
	return f.toggleOut, nil
}

type fakeConversationsRepo struct {
	createOut *models.Conversation
	createErr error

	getOut *models.Conversation
	getErr error

	listOut []*models.Message
	listErr error

	appendErr error
	appended  []*models.Message
}

func (f *fakeConversationsRepo) CreateConversation(_ context.Context, userID string) (*models.Conversation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return &models.Conversation{ID: "conv-1", UserID: userID}, nil
}

func (f *fakeConversationsRepo) GetConversation(context.Context, string, string) (*models.Conversation, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.getOut == nil {
		return nil, common.ErrNotFound
	}
	return f.getOut, nil
}

func (f *fakeConversationsRepo) ListMessages(context.Context, string, string) ([]*models.Message, error) {
	return f.listOut, f.listErr
}

func (f *fakeConversationsRepo) AppendMessage(_ context.Context, msg *models.Message) (*models.Message, error) {
	if f.appendErr != nil {
		return nil, f.appendErr
	}
	out := *msg
	out.ID = "msg-1"
	f.appended = append(f.appended, &out)
	return &out, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	t *fakeTasksRepo
	c *fakeConversationsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository { return m.u }

func (m *fakeRepoManager) Tasks(dbx.DBTX) tasksrepo.Repository { return m.t }

func (m *fakeRepoManager) Conversations(dbx.DBTX) conversationsrepo.Repository { return m.c }
