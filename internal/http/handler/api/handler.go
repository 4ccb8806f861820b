// Package api exposes the JSON endpoints consumed by the todo page:
// registration, login, logout and the task operations.
package api

import (
	"log/slog"
	"net/http"

	"github.com/pkg/errors"
	"github.com/tasknest/tasknest/internal/auth"
	httpCtx "github.com/tasknest/tasknest/internal/http/context"
	"github.com/tasknest/tasknest/internal/http/handler/authn"
	"github.com/tasknest/tasknest/internal/mail"
	"github.com/tasknest/tasknest/internal/slogx"
	"github.com/tasknest/tasknest/internal/store"
	"github.com/tasknest/tasknest/internal/store/repository/task"
)

type Handler struct {
	mux      *http.ServeMux
	auth     *auth.Service
	tasks    *task.Repository
	notifier mail.Notifier
	cookie   authn.Cookie
	logger   *slog.Logger
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(authService *auth.Service, tasks *task.Repository, notifier mail.Notifier, cookie authn.Cookie, authenticate func(http.Handler) http.Handler, logger *slog.Logger) *Handler {
	h := &Handler{
		mux:      http.NewServeMux(),
		auth:     authService,
		tasks:    tasks,
		notifier: notifier,
		cookie:   cookie,
		logger:   logger.With("component", "api-handler"),
	}

	h.mux.HandleFunc("POST /register", h.handleRegister)
	h.mux.HandleFunc("POST /login", h.handleLogin)
	h.mux.HandleFunc("GET /logout", h.handleLogout)

	h.mux.Handle("GET /task", authenticate(http.HandlerFunc(h.handleListTasks)))
	h.mux.Handle("POST /task", authenticate(http.HandlerFunc(h.handleCreateTask)))
	h.mux.Handle("PATCH /task/{id}", authenticate(http.HandlerFunc(h.handleToggleTask)))
	h.mux.Handle("DELETE /task/{id}", authenticate(http.HandlerFunc(h.handleDeleteTask)))

	return h
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name := r.FormValue("name")
	email := r.FormValue("email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		handleValidationError(w, "email and password are required")
		return
	}

	credential, err := h.auth.Register(ctx, name, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			writeStatusResponse(w, http.StatusConflict, "User Already Exists!")
			return
		}

		handleInternalError(h, w, r, err, "could not register user")
		return
	}

	h.cookie.Write(w, credential)

	writeStatusResponse(w, http.StatusCreated, "User Created Successfully!")
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email := r.FormValue("email")
	password := r.FormValue("password")

	credential, err := h.auth.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			writeStatusResponse(w, http.StatusConflict, "Wrong Email or Password! Try Again")
			return
		}

		handleInternalError(h, w, r, err, "could not log user in")
		return
	}

	h.cookie.Write(w, credential)

	writeStatusResponse(w, http.StatusOK, "Log In Successfully!")
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.cookie.Clear(w)

	writeStatusResponse(w, http.StatusOK, "Cookie Deleted")
}

func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user := httpCtx.User(ctx)

	tasks, err := h.tasks.ListByCreator(ctx, user.ID)
	if err != nil {
		handleInternalError(h, w, r, err, "could not list tasks")
		return
	}

	response := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		response = append(response, TaskResponse{
			ID:          t.ID,
			Text:        t.Text,
			IsCompleted: t.IsCompleted,
			CreatedBy:   t.CreatedByID,
			CreatedAt:   t.CreatedAt,
		})
	}

	writeJSONResponse(w, http.StatusOK, response)
}

func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user := httpCtx.User(ctx)

	text := r.FormValue("task")
	if text == "" {
		handleValidationError(w, "task is required")
		return
	}

	newTask := &store.Task{
		Text:        text,
		CreatedByID: user.ID,
	}

	if err := h.tasks.Create(ctx, newTask); err != nil {
		handleInternalError(h, w, r, err, "could not create task")
		return
	}

	// Best effort, the task is created either way.
	if err := h.notifier.TaskCreated(ctx, user.Email, text); err != nil {
		h.logger.WarnContext(ctx, "could not send task notification", slogx.Error(errors.WithStack(err)))
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := getTaskIDFromPath(r)
	if err != nil {
		handleValidationError(w, err.Error())
		return
	}

	if err := h.tasks.Toggle(ctx, id); err != nil {
		handleInternalError(h, w, r, err, "could not toggle task")
		return
	}

	writeStatusResponse(w, http.StatusOK, "Task Updated")
}

func (h *Handler) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := getTaskIDFromPath(r)
	if err != nil {
		handleValidationError(w, err.Error())
		return
	}

	if err := h.tasks.Delete(ctx, id); err != nil {
		handleInternalError(h, w, r, err, "could not delete task")
		return
	}

	writeStatusResponse(w, http.StatusOK, "Task Deleted")
}

var _ http.Handler = &Handler{}
