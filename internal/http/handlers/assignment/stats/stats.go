// Package stats реализует HTTP-обработчик для получения сводной статистики
// по заданиям текущего пользователя.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/homeworkhub/assignment-tracker/internal/http/middlewarectx"
	"github.com/homeworkhub/assignment-tracker/internal/http/response"
	"github.com/homeworkhub/assignment-tracker/internal/lib/sl"
	"github.com/homeworkhub/assignment-tracker/internal/models"
)

// Handler управляет HTTP-запросами на получение статистики.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики подсчета статистики.
type Service interface {
	Stats(ctx context.Context, ownerUID string) (*models.Stats, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Статистика по заданиям
// @Description Возвращает количество заданий по статусам, высокому приоритету и просроченных.
// @Tags Assignments
// @Produce  json
// @Success 200 {object} map[string]any "Сводная статистика"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /assignments/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.assignment.stats"
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

	stats, err := h.service.Stats(r.Context(), ownerUID)
	if err != nil {
		log.Error("failed to count stats", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not count stats"))
		return
	}

	log.Info("success to count stats", slog.Int("total", stats.Total))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"stats": stats,
	}))
}
