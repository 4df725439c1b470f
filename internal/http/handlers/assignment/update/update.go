// Package update реализует HTTP-обработчик для частичного обновления задания.
//
// Обработчик принимает JSON с подмножеством полей задания: отсутствующие поля
// остаются без изменений, переданные проходят валидацию и применяются к записи.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/homeworkhub/assignment-tracker/internal/http/middlewarectx"
	"github.com/homeworkhub/assignment-tracker/internal/http/response"
	"github.com/homeworkhub/assignment-tracker/internal/lib/sl"
	"github.com/homeworkhub/assignment-tracker/internal/models"
	assignmentservice "github.com/homeworkhub/assignment-tracker/internal/services/assignment"
	"github.com/homeworkhub/assignment-tracker/internal/storage"
)

// Handler управляет HTTP-запросами на обновление задания.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления задания.
type Service interface {
	Update(ctx context.Context, ownerUID, id string, req models.UpdateAssignment) (*models.Assignment, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить задание
// @Description Частично обновляет задание текущего пользователя. Непереданные поля не меняются.
// @Tags Assignments
// @Accept  json
// @Produce  json
// @Param id path string true "ID задания"
// @Param request body models.UpdateAssignment true "Изменяемые поля задания"
// @Success 200 {object} map[string]any "Обновлённое задание"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или дата в прошлом"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Задание не найдено"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /assignments/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.assignment.update"
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

	var req models.UpdateAssignment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	ownerUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || ownerUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	assignment, err := h.service.Update(r.Context(), ownerUID, id, req)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAssignmentNotFound):
			log.Error("assignment not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("assignment not found"))
		case errors.Is(err, assignmentservice.ErrInvalidDueDate):
			log.Error("invalid due date", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("due date must be a date in format 2006-01-02"))
		case errors.Is(err, assignmentservice.ErrDueDateInPast):
			log.Error("due date in past", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("due date must not be earlier than today"))
		default:
			log.Error("failed to update assignment", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update assignment"))
		}
		return
	}

	log.Info("success to update assignment", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"assignment": assignment,
	}))
}
