// Package list реализует HTTP-обработчик для получения списка заданий пользователя.
//
// Поддерживает фильтрацию по статусу и приоритету, а также пагинацию через
// параметры limit и offset строки запроса.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/homeworkhub/assignment-tracker/internal/http/middlewarectx"
	"github.com/homeworkhub/assignment-tracker/internal/http/response"
	"github.com/homeworkhub/assignment-tracker/internal/lib/sl"
	"github.com/homeworkhub/assignment-tracker/internal/models"
)

const defaultLimit = 50

// Handler управляет HTTP-запросами на получение списка заданий.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики получения списка заданий.
type Service interface {
	List(ctx context.Context, ownerUID string, filter models.ListFilter) ([]*models.Assignment, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список заданий
// @Description Возвращает список заданий текущего пользователя, отсортированный по сроку сдачи.
// @Tags Assignments
// @Produce  json
// @Param status query string false "Фильтр по статусу (pending, in-progress, completed)"
// @Param priority query string false "Фильтр по приоритету (low, medium, high)"
// @Param limit query int false "Максимальное число записей"
// @Param offset query int false "Смещение от начала списка"
// @Success 200 {object} map[string]any "Список заданий"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /assignments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.assignment.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ownerUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || ownerUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	filter := parseFilter(r)

	assignments, err := h.service.List(r.Context(), ownerUID, filter)
	if err != nil {
		log.Error("failed to list assignments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list assignments"))
		return
	}

	log.Info("success to list assignments", slog.Int("count", len(assignments)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"assignments": assignments,
		"count":       len(assignments),
	}))
}

func parseFilter(r *http.Request) models.ListFilter {
	filter := models.ListFilter{Limit: defaultLimit}

	filter.Status = r.URL.Query().Get("status")
	filter.Priority = r.URL.Query().Get("priority")

	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}
	return filter
}
