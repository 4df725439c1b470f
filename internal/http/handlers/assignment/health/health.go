package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/homeworkhub/assignment-tracker/internal/http/response"
	"github.com/homeworkhub/assignment-tracker/internal/lib/sl"
)

// Checker проверяет готовность хранилища принимать запросы.
type Checker interface {
	CheckDatabaseReady(ctx context.Context) error
}

type Handler struct {
	log     *slog.Logger
	checker Checker
}

func New(log *slog.Logger, checker Checker) *Handler {
	return &Handler{
		log:     log,
		checker: checker,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.assignment.health"

	if err := h.checker.CheckDatabaseReady(r.Context()); err != nil {
		h.log.Error("database is not ready", slog.String("op", op), sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("database is not ready"))
		return
	}

	w.WriteHeader(http.StatusOK)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"status": "ok",
	}))
}
