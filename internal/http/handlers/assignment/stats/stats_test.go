package stats

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/homeworkhub/assignment-tracker/internal/http/middlewarectx"
	"github.com/homeworkhub/assignment-tracker/internal/models"
)

// MockService реализует интерфейс stats.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Stats(ctx context.Context, ownerUID string) (*models.Stats, error) {
	args := m.Called(ctx, ownerUID)
	if res := args.Get(0); res != nil {
		return res.(*models.Stats), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestStatsHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		withUser       bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешный подсчет статистики",
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("Stats", mock.Anything, "uid-1").
					Return(&models.Stats{
						Total:        7,
						Pending:      3,
						Completed:    2,
						HighPriority: 1,
						Overdue:      1,
					}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"total":7`,
		},
		{
			name:           "нет пользователя в контексте",
			withUser:       false,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:     "ошибка сервиса",
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("Stats", mock.Anything, "uid-1").
					Return(nil, errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not count stats"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/assignments/stats", nil)
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
