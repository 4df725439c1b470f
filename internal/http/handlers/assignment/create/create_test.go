package create

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/homeworkhub/assignment-tracker/internal/http/middlewarectx"
	"github.com/homeworkhub/assignment-tracker/internal/models"
	assignmentservice "github.com/homeworkhub/assignment-tracker/internal/services/assignment"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, ownerUID string, req models.DummyAssignment) (*models.Assignment, error) {
	args := m.Called(ctx, ownerUID, req)
	if res := args.Get(0); res != nil {
		return res.(*models.Assignment), args.Error(1)
	}
	return nil, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCreateHandler(t *testing.T) {
	logger := newNoopLogger()
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")

	validBody := models.DummyAssignment{
		Title:    "Linear algebra problem set",
		Course:   "MATH-201",
		DueDate:  tomorrow,
		Priority: "high",
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		withUser       bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешное создание задания",
			requestBody: validBody,
			withUser:    true,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "uid-1", mock.Anything).
					Return(&models.Assignment{
						ID:       "a-1",
						OwnerUID: "uid-1",
						Title:    "Linear algebra problem set",
						Course:   "MATH-201",
						Priority: "high",
						Status:   "pending",
					}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"title":"Linear algebra problem set"`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			withUser:       true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name: "ошибка валидации - нет названия",
			requestBody: models.DummyAssignment{
				Course:  "MATH-201",
				DueDate: tomorrow,
			},
			withUser:       true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Title is a required field`,
		},
		{
			name: "ошибка валидации - неизвестный приоритет",
			requestBody: models.DummyAssignment{
				Title:    "Essay",
				Course:   "HIST-101",
				DueDate:  tomorrow,
				Priority: "urgent",
			},
			withUser:       true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Priority must be one of: low medium high`,
		},
		{
			name:           "нет пользователя в контексте",
			requestBody:    validBody,
			withUser:       false,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name: "некорректный формат даты",
			requestBody: models.DummyAssignment{
				Title:   "Essay",
				Course:  "HIST-101",
				DueDate: "31-12-2026",
			},
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "uid-1", mock.Anything).
					Return(nil, assignmentservice.ErrInvalidDueDate).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"due date must be a date in format 2006-01-02"`,
		},
		{
			name:        "срок сдачи в прошлом",
			requestBody: validBody,
			withUser:    true,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "uid-1", mock.Anything).
					Return(nil, assignmentservice.ErrDueDateInPast).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"due date must not be earlier than today"`,
		},
		{
			name:        "ошибка сервиса",
			requestBody: validBody,
			withUser:    true,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "uid-1", mock.Anything).
					Return(nil, errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not create assignment"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/assignments", bytes.NewReader(bodyBytes))
			if tt.withUser {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, "uid-1"))
			}

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
