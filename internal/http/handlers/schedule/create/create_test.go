package create

import (
	"bytes"
	"context"
	"fmt"
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

func (m *MockService) Create(ctx context.Context, sc models.Schedule) (*models.Schedule, error) {
	args := m.Called(ctx, sc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Schedule), args.Error(1)
}

const (
	instructorID = "6f1c1b8e-6a3e-4a53-9d3b-2b8f0f0c1a11"
	roomID       = "0b0e7c8a-5a43-4a7e-8d0a-0f3c2e1b9d22"
)

func TestCreateScheduleHandler(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	base := `"instructor_id":"` + instructorID + `","room_id":"` + roomID + `","start_time":"2026-03-02T09:00:00Z"`

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "default duration",
			body: `{` + base + `}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, models.Schedule{
					InstructorID: instructorID, RoomID: roomID, StartTime: start, DurationMinutes: 45,
				}).Return(&models.Schedule{ID: "sc-1", DurationMinutes: 45, Status: models.ScheduleDraft}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"duration_minutes":45`,
		},
		{
			name: "explicit duration and status",
			body: `{` + base + `,"duration_minutes":60,"status":"scheduled"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, models.Schedule{
					InstructorID: instructorID, RoomID: roomID, StartTime: start, DurationMinutes: 60, Status: models.ScheduleScheduled,
				}).Return(&models.Schedule{ID: "sc-1", DurationMinutes: 60, Status: models.ScheduleScheduled}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"status":"scheduled"`,
		},
		{
			name: "negative duration",
			body: `{` + base + `,"duration_minutes":-5}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("schedule.Create: %w",
					&models.InputError{Reason: "duration_minutes must be a positive integer."})).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `duration_minutes must be a positive integer.`,
		},
		{
			name: "unknown room",
			body: `{` + base + `}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("schedule.Create: %w",
					&models.InputError{Reason: "Room does not exist."})).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `Room does not exist.`,
		},
		{
			name:           "no start time",
			body:           `{"instructor_id":"` + instructorID + `","room_id":"` + roomID + `"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `StartTime`,
		},
		{
			name:           "bad instructor id",
			body:           `{"instructor_id":"nope","room_id":"` + roomID + `","start_time":"2026-03-02T09:00:00Z"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field InstructorID can contain only uuid`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)
			rr := httptest.NewRecorder()

			New(sl.Discard(), svc).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/schedules", bytes.NewBufferString(tt.body)))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
