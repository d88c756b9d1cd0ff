package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"taskapi/internal/domain"
	"taskapi/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, task *domain.Task) error
	GetForUserFn func(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)
	UpdateFn     func(ctx context.Context, task *domain.Task) error
	DeleteFn     func(ctx context.Context, id, userID uuid.UUID) error
	ListFn       func(ctx context.Context, userID uuid.UUID, opts store.TaskListOptions, page store.PageRequest) (*store.Page[domain.Task], error)

	// Data for default implementation
	Tasks       map[uuid.UUID]*domain.Task
	CreateError error
	ListError   error
}

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[uuid.UUID]*domain.Task),
	}
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.Tasks[task.ID] = task
	return nil
}

// GetForUser implements the TaskStore interface
func (m *MockTaskStore) GetForUser(
	ctx context.Context,
	id, userID uuid.UUID,
) (*domain.Task, error) {
	if m.GetForUserFn != nil {
		return m.GetForUserFn(ctx, id, userID)
	}

	task, exists := m.Tasks[id]
	if !exists || task.UserID != userID {
		return nil, store.ErrTaskNotFound
	}

	return task, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	existing, exists := m.Tasks[task.ID]
	if !exists || existing.UserID != task.UserID {
		return store.ErrTaskNotFound
	}

	m.Tasks[task.ID] = task
	return nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id, userID)
	}

	task, exists := m.Tasks[id]
	if !exists || task.UserID != userID {
		return store.ErrTaskNotFound
	}

	delete(m.Tasks, id)
	return nil
}

// List implements the TaskStore interface. The default implementation
// mirrors the store contract: scope to the owner, apply the optional
// status filter and case-insensitive search, order newest first, then
// paginate.
func (m *MockTaskStore) List(
	ctx context.Context,
	userID uuid.UUID,
	opts store.TaskListOptions,
	page store.PageRequest,
) (*store.Page[domain.Task], error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID, opts, page)
	}

	if m.ListError != nil {
		return nil, m.ListError
	}

	page = page.Normalize()

	var matched []domain.Task
	for _, task := range m.Tasks {
		if task.UserID != userID {
			continue
		}
		if opts.Status != nil && task.Status != *opts.Status {
			continue
		}
		if page.Search != "" {
			term := strings.ToLower(page.Search)
			if !strings.Contains(strings.ToLower(task.Title), term) &&
				!strings.Contains(strings.ToLower(task.Description), term) {
				continue
			}
		}
		matched = append(matched, *task)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := page.Offset()
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}

	return store.NewPage(matched[start:end], total, page), nil
}
