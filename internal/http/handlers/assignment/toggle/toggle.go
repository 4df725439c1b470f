// Package toggle реализует HTTP-обработчик для переключения статуса задания.
//
// Незавершённое задание помечается как выполненное, выполненное возвращается
// в статус pending.
package toggle

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/homeworkhub/assignment-tracker/internal/http/middlewarectx"
	"github.com/homeworkhub/assignment-tracker/internal/http/response"
	"github.com/homeworkhub/assignment-tracker/internal/lib/sl"
	"github.com/homeworkhub/assignment-tracker/internal/models"
	"github.com/homeworkhub/assignment-tracker/internal/storage"
)

// Handler управляет HTTP-запросами на переключение статуса задания.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики переключения статуса.
type Service interface {
	ToggleStatus(ctx context.Context, ownerUID, id string) (*models.Assignment, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Переключить статус задания
// @Description Помечает незавершённое задание выполненным, выполненное возвращает в pending.
// @Tags Assignments
// @Produce  json
// @Param id path string true "ID задания"
// @Success 200 {object} map[string]any "Задание с новым статусом"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Задание не найдено"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /assignments/{id}/toggle [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.assignment.toggle"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if id == "" {
		log.Error("missing assignment id")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing assignment id"))
		return
	}

	ownerUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || ownerUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	assignment, err := h.service.ToggleStatus(r.Context(), ownerUID, id)
	if err != nil {
		if errors.Is(err, storage.ErrAssignmentNotFound) {
			log.Error("assignment not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("assignment not found"))
			return
		}
		log.Error("failed to toggle assignment status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not toggle assignment status"))
		return
	}

	log.Info("success to toggle assignment status",
		slog.String("id", id),
		slog.String("status", assignment.Status))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"assignment": assignment,
	}))
}
