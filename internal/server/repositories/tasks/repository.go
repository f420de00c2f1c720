package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository is the persistence port for task records. All operations are
// keyed by task identifier; ownership is NOT enforced here — that is the
// task service's responsibility.
type Repository interface {
	Insert(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	// ListByOwner returns the owner's tasks ordered incomplete-first,
	// newest-first within each group.
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*models.Task, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	Update(ctx context.Context, task *models.Task) (*models.Task, error)
	Delete(ctx context.Context, id string) error
	ToggleComplete(ctx context.Context, id string) (*models.Task, error)
}
