// Package create реализует HTTP-обработчик для создания новых заданий пользователя.
//
// Handler принимает JSON-запрос с данными задания, валидирует их, извлекает UID
// пользователя из контекста, вызывает бизнес-логику создания задания через сервис
// и возвращает сохранённую запись в JSON-формате.
//
// В случае ошибок формируются соответствующие HTTP-ответы с описанием проблемы.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/homeworkhub/assignment-tracker/internal/http/middlewarectx"
	"github.com/homeworkhub/assignment-tracker/internal/http/response"
	"github.com/homeworkhub/assignment-tracker/internal/lib/sl"
	"github.com/homeworkhub/assignment-tracker/internal/models"
	assignmentservice "github.com/homeworkhub/assignment-tracker/internal/services/assignment"
)

// Handler управляет HTTP-запросами на создание новых заданий.
//
// Использует логгер для записи операций и ошибок,
// сервис бизнес-логики для создания задания,
// а также валидатор для проверки структуры входных данных.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для создания заданий
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания задания.
type Service interface {
	Create(ctx context.Context, ownerUID string, req models.DummyAssignment) (*models.Assignment, error)
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
// @Summary Создать новое задание
// @Description Создает новое задание для текущего пользователя. Возвращает сохранённую запись.
// @Tags Assignments
// @Accept  json
// @Produce  json
// @Param request body models.DummyAssignment true "Данные нового задания"
// @Success 201 {object} map[string]any "Успешное создание задания"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или дата в прошлом"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании задания"
// @Router /assignments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.assignment.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyAssignment
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

	assignment, err := h.service.Create(r.Context(), ownerUID, req)
	if err != nil {
		switch {
		case errors.Is(err, assignmentservice.ErrInvalidDueDate):
			log.Error("invalid due date", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("due date must be a date in format 2006-01-02"))
		case errors.Is(err, assignmentservice.ErrDueDateInPast):
			log.Error("due date in past", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("due date must not be earlier than today"))
		default:
			log.Error("failed to create assignment", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create assignment"))
		}
		return
	}

	log.Info("success to create assignment", slog.String("id", assignment.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"assignment": assignment,
	}))
}
