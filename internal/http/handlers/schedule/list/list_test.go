package list

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
	"github.com/magabrotheeeer/adminstudio/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, filter models.ScheduleFilter) ([]*models.Schedule, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Schedule), args.Error(1)
}

func TestListSchedulesHandler(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "no filters",
			url:  "/api/v1/schedules",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, models.ScheduleFilter{}).
					Return([]*models.Schedule{{ID: "sc-1"}}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":"sc-1"`,
		},
		{
			name: "all filters",
			url:  "/api/v1/schedules?start_time=2026-03-01T03:00:00%2B03:00&instructor=anna&room=hall",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, mock.MatchedBy(func(f models.ScheduleFilter) bool {
					return f.StartFrom != nil && f.StartFrom.Equal(from) &&
						f.InstructorUsername == "anna" && f.RoomName == "hall"
				})).Return([]*models.Schedule{}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"OK"`,
		},
		{
			name:           "bad start time",
			url:            "/api/v1/schedules?start_time=yesterday",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `RFC3339`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)
			rr := httptest.NewRecorder()

			New(sl.Discard(), svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
