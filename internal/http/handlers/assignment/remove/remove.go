// Package remove реализует HTTP-обработчик для удаления задания пользователя.
package remove

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
	"github.com/homeworkhub/assignment-tracker/internal/storage"
)

// Handler управляет HTTP-запросами на удаление задания.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления задания.
type Service interface {
	Remove(ctx context.Context, ownerUID, id string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить задание
// @Description Удаляет задание текущего пользователя по его идентификатору.
// @Tags Assignments
// @Produce  json
// @Param id path string true "ID задания"
// @Success 200 {object} response.Response "Успешное удаление"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Задание не найдено"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /assignments/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.assignment.remove"
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

	if err := h.service.Remove(r.Context(), ownerUID, id); err != nil {
		if errors.Is(err, storage.ErrAssignmentNotFound) {
			log.Error("assignment not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("assignment not found"))
			return
		}
		log.Error("failed to remove assignment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove assignment"))
		return
	}

	log.Info("success to remove assignment", slog.String("id", id))
	render.JSON(w, r, response.OK())
}
