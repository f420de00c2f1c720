package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
)

// Task field bounds and the per-owner limit. The limit is a soft bound: it
// is checked with a live count before insert, so concurrent creates may
// overshoot it by a small margin.
const (
	maxTitleLength       = 200
	maxDescriptionLength = 1000
	maxTasksPerOwner     = 1000

	defaultListLimit = 50
	maxListLimit     = 100
)

// TaskService enforces the task business invariants. Every operation takes
// an ownerID obtained from a validated token and verifies the fetched
// task's owner matches before returning or mutating it; a mismatch is
// reported as common.ErrTaskNotFound, indistinguishable from absence.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTaskService constructs a TaskService over the given repositories.
func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

// Bounds count characters, not bytes, so multibyte titles are not
// penalized.
func validateTitle(title string) error {
	if n := utf8.RuneCountInString(title); n < 1 || n > maxTitleLength {
		return common.ErrInvalidTitle
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return common.ErrInvalidDescription
	}
	return nil
}

// getOwned fetches the task and verifies ownership. Absence and foreign
// ownership collapse into common.ErrTaskNotFound.
func (s *TaskService) getOwned(ctx context.Context, repo tasks.Repository, ownerID, taskID string) (*models.Task, error) {
	task, err := repo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrTaskNotFound
		}
		return nil, fmt.Errorf("error fetching task: %w", err)
	}
	if task.UserID != ownerID {
		return nil, common.ErrTaskNotFound
	}
	return task, nil
}

// Create validates the fields and the soft per-owner limit, then inserts a
// new incomplete task.
func (s *TaskService) Create(ctx context.Context, ownerID, title, description string) (*models.Task, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	repo := s.repomanager.Tasks(s.db)

	count, err := repo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error counting tasks: %w", err)
	}
	if count >= maxTasksPerOwner {
		return nil, common.ErrTaskLimitReached
	}

	task, err := repo.Insert(ctx, &models.Task{
		UserID:      ownerID,
		Title:       title,
		Description: description,
		Completed:   false,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	return task, nil
}

// Get returns the owner's task or common.ErrTaskNotFound.
func (s *TaskService) Get(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	return s.getOwned(ctx, s.repomanager.Tasks(s.db), ownerID, taskID)
}

// List returns a page of the owner's tasks plus the owner's total count for
// pagination. The limit is clamped to [1,100] with a default of 50; a
// negative offset is treated as zero. Ordering is incomplete-first,
// newest-first within each group.
func (s *TaskService) List(ctx context.Context, ownerID string, limit, offset int) ([]*models.Task, int, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	repo := s.repomanager.Tasks(s.db)

	items, err := repo.ListByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing tasks: %w", err)
	}
	total, err := repo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting tasks: %w", err)
	}

	return items, total, nil
}

// Update re-validates any provided field and applies a partial update: only
// non-nil fields change. The ownership check and the write run in one
// transaction.
func (s *TaskService) Update(ctx context.Context, ownerID, taskID string, title, description *string) (*models.Task, error) {
	if title != nil {
		if err := validateTitle(*title); err != nil {
			return nil, err
		}
	}
	if description != nil {
		if err := validateDescription(*description); err != nil {
			return nil, err
		}
	}

	var updated *models.Task
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)
		task, err := s.getOwned(ctx, repo, ownerID, taskID)
		if err != nil {
			return err
		}
		if title != nil {
			task.Title = *title
		}
		if description != nil {
			task.Description = *description
		}
		updated, err = repo.Update(ctx, task)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the owner's task. Ownership is checked first, so the call
// either succeeds or fails with common.ErrTaskNotFound.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)
		if _, err := s.getOwned(ctx, repo, ownerID, taskID); err != nil {
			return err
		}
		if err := repo.Delete(ctx, taskID); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrTaskNotFound
			}
			return fmt.Errorf("error deleting task: %w", err)
		}
		return nil
	})
}

// ToggleComplete flips the owner's task between complete and incomplete.
// Two consecutive calls restore the original state.
func (s *TaskService) ToggleComplete(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	var toggled *models.Task
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)
		if _, err := s.getOwned(ctx, repo, ownerID, taskID); err != nil {
			return err
		}
		var err error
		toggled, err = repo.ToggleComplete(ctx, taskID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrTaskNotFound
			}
			return fmt.Errorf("error toggling task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toggled, nil
}
