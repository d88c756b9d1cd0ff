package postgres

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskapi/internal/domain"
	"taskapi/internal/store"
)

func newTaskStoreMock(t *testing.T) (*PostgresTaskStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err, "sqlmock init error")
	t.Cleanup(func() { _ = db.Close() })

	return NewPostgresTaskStore(db, nil), mock
}

func taskRows(tasks ...*domain.Task) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "title", "description", "status", "created_at", "updated_at",
	})
	for _, task := range tasks {
		rows.AddRow(task.ID, task.UserID, task.Title, task.Description,
			string(task.Status), task.CreatedAt, task.UpdatedAt)
	}
	return rows
}

func TestTaskStoreCreate(t *testing.T) {
	s, mock := newTaskStoreMock(t)

	task, err := domain.NewTask(uuid.New(), "Write report", "Quarterly numbers")
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO tasks").
		WithArgs(task.ID, task.UserID, task.Title, task.Description,
			task.Status, task.CreatedAt, task.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Create(context.Background(), task))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStoreCreateRejectsInvalidTask(t *testing.T) {
	s, mock := newTaskStoreMock(t)

	task := &domain.Task{ID: uuid.New(), UserID: uuid.New(), Status: domain.TaskStatusPending}
	err := s.Create(context.Background(), task)

	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	require.NoError(t, mock.ExpectationsWereMet(), "no SQL should run for an invalid task")
}

func TestTaskStoreGetForUser(t *testing.T) {
	s, mock := newTaskStoreMock(t)

	task, err := domain.NewTask(uuid.New(), "Write report", "")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT (.+) FROM tasks WHERE id = \\$1 AND user_id = \\$2").
		WithArgs(task.ID, task.UserID).
		WillReturnRows(taskRows(task))

	got, err := s.GetForUser(context.Background(), task.ID, task.UserID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, task.Title, got.Title)
	assert.Equal(t, domain.TaskStatusPending, got.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStoreGetForUserNotFound(t *testing.T) {
	s, mock := newTaskStoreMock(t)

	taskID, userID := uuid.New(), uuid.New()

	// Absent rows and rows owned by other users are indistinguishable: the
	// owner predicate lives in the query, so both come back as no rows.
	mock.ExpectQuery("SELECT (.+) FROM tasks WHERE id = \\$1 AND user_id = \\$2").
		WithArgs(taskID, userID).
		WillReturnRows(taskRows())

	_, err := s.GetForUser(context.Background(), taskID, userID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStoreUpdate(t *testing.T) {
	s, mock := newTaskStoreMock(t)

	task, err := domain.NewTask(uuid.New(), "Write report", "")
	require.NoError(t, err)
	task.Status = domain.TaskStatusCompleted
	task.UpdatedAt = time.Now().UTC()

	mock.ExpectExec("UPDATE tasks SET title = \\$1, description = \\$2, status = \\$3, updated_at = \\$4 WHERE id = \\$5 AND user_id = \\$6").
		WithArgs(task.Title, task.Description, task.Status, task.UpdatedAt, task.ID, task.UserID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Update(context.Background(), task))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStoreUpdateNotOwned(t *testing.T) {
	s, mock := newTaskStoreMock(t)

	task, err := domain.NewTask(uuid.New(), "Write report", "")
	require.NoError(t, err)

	mock.ExpectExec("UPDATE tasks").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, s.Update(context.Background(), task), store.ErrTaskNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStoreDelete(t *testing.T) {
	s, mock := newTaskStoreMock(t)

	taskID, userID := uuid.New(), uuid.New()

	mock.ExpectExec("DELETE FROM tasks WHERE id = \\$1 AND user_id = \\$2").
		WithArgs(taskID, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Delete(context.Background(), taskID, userID))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStoreDeleteNotFound(t *testing.T) {
	s, mock := newTaskStoreMock(t)

	mock.ExpectExec("DELETE FROM tasks").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Delete(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStoreList(t *testing.T) {
	s, mock := newTaskStoreMock(t)

	userID := uuid.New()
	first, err := domain.NewTask(userID, "Write report", "Quarterly numbers")
	require.NoError(t, err)
	second, err := domain.NewTask(userID, "Review PR", "")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM tasks WHERE user_id = \\$1").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	mock.ExpectQuery("SELECT (.+) FROM tasks WHERE user_id = \\$1 ORDER BY created_at DESC, id DESC LIMIT \\$2 OFFSET \\$3").
		WithArgs(userID, 10, 0).
		WillReturnRows(taskRows(first, second))

	page, err := s.List(context.Background(), userID, store.TaskListOptions{}, store.PageRequest{})
	require.NoError(t, err)

	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 2, page.LastPage)
	assert.Equal(t, 10, page.Limit)
	assert.Len(t, page.Items, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStoreListWithStatusAndSearch(t *testing.T) {
	s, mock := newTaskStoreMock(t)

	userID := uuid.New()
	status := domain.TaskStatusPending

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM tasks WHERE user_id = \\$1 AND status = \\$2 AND \\(title ILIKE \\$3 OR description ILIKE \\$4\\)").
		WithArgs(userID, "pending", "%report%", "%report%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery("SELECT (.+) FROM tasks WHERE user_id = \\$1 AND status = \\$2 AND \\(title ILIKE \\$3 OR description ILIKE \\$4\\) ORDER BY created_at DESC, id DESC LIMIT \\$5 OFFSET \\$6").
		WithArgs(userID, "pending", "%report%", "%report%", 10, 0).
		WillReturnRows(taskRows())

	page, err := s.List(context.Background(), userID,
		store.TaskListOptions{Status: &status},
		store.PageRequest{Search: " report "})
	require.NoError(t, err)

	assert.Equal(t, 1, page.Total)
	assert.Empty(t, page.Items)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStoreListSecondPageOffset(t *testing.T) {
	s, mock := newTaskStoreMock(t)

	userID := uuid.New()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM tasks").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	mock.ExpectQuery("LIMIT \\$2 OFFSET \\$3").
		WithArgs(userID, 10, 10).
		WillReturnRows(taskRows())

	page, err := s.List(context.Background(), userID, store.TaskListOptions{},
		store.PageRequest{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, page.CurrentPage)
	require.NoError(t, mock.ExpectationsWereMet())
}

// The limit is caller-supplied and unbounded, so a huge value must flow
// through as a plain query argument rather than sizing any allocation.
func TestTaskStoreListHugeLimit(t *testing.T) {
	s, mock := newTaskStoreMock(t)

	userID := uuid.New()
	hugeLimit := math.MaxInt

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM tasks WHERE user_id = \\$1").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectQuery("LIMIT \\$2 OFFSET \\$3").
		WithArgs(userID, hugeLimit, 0).
		WillReturnRows(taskRows())

	page, err := s.List(context.Background(), userID, store.TaskListOptions{},
		store.PageRequest{Page: 1, Limit: hugeLimit})
	require.NoError(t, err)

	assert.Equal(t, 0, page.Total)
	assert.Empty(t, page.Items)
	assert.Equal(t, hugeLimit, page.Limit)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStoreListPropagatesCountError(t *testing.T) {
	s, mock := newTaskStoreMock(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM tasks").
		WillReturnError(assert.AnError)

	_, err := s.List(context.Background(), uuid.New(), store.TaskListOptions{}, store.PageRequest{})
	assert.ErrorIs(t, err, assert.AnError)
}
