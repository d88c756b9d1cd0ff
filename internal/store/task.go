package store

import (
	"context"

	"github.com/google/uuid"

	"taskapi/internal/domain"
)

// TaskListOptions holds the optional equality filters a caller may apply to
// a task listing, on top of the mandatory owner scoping.
type TaskListOptions struct {
	// Status restricts the listing to tasks in the given state when non-nil.
	Status *domain.TaskStatus
}

// TaskStore defines the interface for task data persistence. Every
// single-entity operation is scoped to an owner: a task that exists but
// belongs to a different user is reported as ErrTaskNotFound, identical to a
// task that does not exist at all.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetForUser retrieves a task by ID, scoped to the given owner.
	// Returns ErrTaskNotFound if the task is absent or owned by another user.
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)

	// Update writes the task's mutable fields (title, description, status,
	// updated_at), scoped to the task's owner in a single conditional
	// statement. Returns ErrTaskNotFound if the row is absent or foreign,
	// including when a concurrent delete won the race.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task, scoped to the given owner in a single
	// conditional statement.
	// Returns ErrTaskNotFound if the task is absent or owned by another user.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// List returns one page of the owner's tasks, newest first, applying the
	// optional status filter and the request's free-text search across title
	// and description. Total in the returned page counts every matching row.
	List(ctx context.Context, userID uuid.UUID, opts TaskListOptions, page PageRequest) (*Page[domain.Task], error)
}
