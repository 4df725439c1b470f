package remove

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/homeworkhub/assignment-tracker/internal/http/middlewarectx"
	"github.com/homeworkhub/assignment-tracker/internal/storage"
)

// MockService реализует интерфейс remove.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Remove(ctx context.Context, ownerUID, id string) error {
	args := m.Called(ctx, ownerUID, id)
	return args.Error(0)
}

func TestRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		id             string
		withUser       bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешное удаление задания",
			id:       "a-1",
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, "uid-1", "a-1").Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"OK"`,
		},
		{
			name:           "нет пользователя в контексте",
			id:             "a-1",
			withUser:       false,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:     "задание не найдено",
			id:       "missing",
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, "uid-1", "missing").
					Return(storage.ErrAssignmentNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"assignment not found"`,
		},
		{
			name:     "ошибка сервиса удаления",
			id:       "a-2",
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, "uid-1", "a-2").
					Return(errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not remove assignment"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodDelete, "/assignments/"+tt.id, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.withUser {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, "uid-1")
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
