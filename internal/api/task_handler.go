package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"taskapi/internal/api/shared"
	"taskapi/internal/domain"
	"taskapi/internal/redact"
	"taskapi/internal/store"
)

// TaskHandler handles task-related HTTP requests. Every operation is
// scoped to the authenticated caller's own tasks.
type TaskHandler struct {
	taskStore store.TaskStore
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskStore store.TaskStore) *TaskHandler {
	return &TaskHandler{taskStore: taskStore}
}

// ListTasks handles GET /tasks requests. Supports page, limit, search and
// status query parameters.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	page := getPageRequest(r)

	var opts store.TaskListOptions
	if rawStatus := r.URL.Query().Get("status"); rawStatus != "" {
		status := domain.TaskStatus(rawStatus)
		if !domain.IsValidTaskStatus(status) {
			shared.RespondWithValidationErrors(w, r, []shared.FieldError{
				{Field: "status", Error: []string{"must be one of: pending, in_progress, completed"}},
			})
			return
		}
		opts.Status = &status
	}

	result, err := h.taskStore.List(r.Context(), userID, opts, page)
	if err != nil {
		slog.Error("failed to list tasks", "error", redact.Error(err), "user_id", userID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to list tasks")
		return
	}

	shared.RespondWithPage(w, r, tasksToResponses(result.Items), shared.PaginationMeta{
		Total:       result.Total,
		CurrentPage: result.CurrentPage,
		LastPage:    result.LastPage,
		Limit:       result.Limit,
	})
}

// CreateTask handles POST /tasks requests.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if errs := shared.ValidateRequest(req); errs != nil {
		shared.RespondWithValidationErrors(w, r, errs)
		return
	}

	task, err := domain.NewTask(userID, req.Title, req.Description)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task data")
		return
	}

	if err := h.taskStore.Create(r.Context(), task); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, taskToResponse(task))
}

// GetTask handles GET /tasks/{id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	taskID, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.taskStore.GetForUser(r.Context(), taskID, userID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return
		}
		slog.Error("failed to get task", "error", redact.Error(err), "task_id", taskID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to get task")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateTask handles PATCH /tasks/{id} requests. Only fields present in
// the request body are applied; the merged row is then written with the
// ownership predicate intact.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	taskID, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if errs := shared.ValidateRequest(req); errs != nil {
		shared.RespondWithValidationErrors(w, r, errs)
		return
	}

	task, err := h.taskStore.GetForUser(r.Context(), taskID, userID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return
		}
		slog.Error("failed to get task", "error", redact.Error(err), "task_id", taskID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to update task")
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = domain.TaskStatus(*req.Status)
	}
	task.UpdatedAt = time.Now().UTC()

	if err := task.Validate(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task data")
		return
	}

	if err := h.taskStore.Update(r.Context(), task); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			// Deleted between the read and the write; same answer as an
			// absent row.
			shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return
		}
		slog.Error("failed to update task", "error", redact.Error(err), "task_id", taskID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to update task")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /tasks/{id} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	taskID, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.taskStore.Delete(r.Context(), taskID, userID); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return
		}
		slog.Error("failed to delete task", "error", redact.Error(err), "task_id", taskID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to delete task")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, map[string]string{"id": taskID.String()})
}
