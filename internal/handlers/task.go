package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/crucial707/todo-web/internal/middleware"
	"github.com/crucial707/todo-web/internal/service"
)

// ==========================
// Task Handler (all routes session required)
// ==========================
type TaskHandler struct {
	Tasks *service.TaskService
	Views *Renderer
}

// ==========================
// Dashboard
// ==========================
func (h *TaskHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	h.Views.Render(w, r, http.StatusOK, pageDashboard, PageData{
		Authenticated: true,
		Tasks:         h.Tasks.List(r.Context(), userID),
	})
}

// ==========================
// Add
// ==========================

// Add creates a task from the "todo" field. Store failures are logged and the
// user lands back on the dashboard.
func (h *TaskHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		BadForm(w)
		return
	}

	if err := h.Tasks.Create(r.Context(), userID, r.FormValue("todo")); err != nil {
		slog.ErrorContext(r.Context(), "add task", "user_id", userID, "err", err)
	}
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// ==========================
// Toggle
// ==========================
func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "toggle", h.Tasks.Toggle)
}

// ==========================
// Delete
// ==========================
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "delete", h.Tasks.Delete)
}

// mutate parses the task id and applies op. Bad ids and store failures are
// logged and the user lands back on the dashboard unchanged.
func (h *TaskHandler) mutate(w http.ResponseWriter, r *http.Request, name string, op func(ctx context.Context, userID, taskID int64) error) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		BadForm(w)
		return
	}

	taskID, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		slog.WarnContext(r.Context(), "invalid task id", "op", name, "id", r.FormValue("id"))
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}

	if err := op(r.Context(), userID, taskID); err != nil {
		slog.ErrorContext(r.Context(), "task "+name, "user_id", userID, "task_id", taskID, "err", err)
	}
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}
