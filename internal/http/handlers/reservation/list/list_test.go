package list

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
	"github.com/magabrotheeeer/adminstudio/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ListActive(ctx context.Context, memberID, scheduleID string) ([]*models.Reservation, error) {
	args := m.Called(ctx, memberID, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Reservation), args.Error(1)
}

const (
	memberID   = "6f1c1b8e-6a3e-4a53-9d3b-2b8f0f0c1a11"
	scheduleID = "0b0e7c8a-5a43-4a7e-8d0a-0f3c2e1b9d22"
)

func TestListHandler(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "active reservations",
			url:  "/api/v1/reservations?member_id=" + memberID + "&schedule_id=" + scheduleID,
			setupMock: func(m *MockService) {
				m.On("ListActive", mock.Anything, memberID, scheduleID).
					Return([]*models.Reservation{{ID: "res-1", Status: models.ReservationReserved}}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":"res-1"`,
		},
		{
			name:           "missing schedule",
			url:            "/api/v1/reservations?member_id=" + memberID,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field ScheduleID is a required field`,
		},
		{
			name: "service error",
			url:  "/api/v1/reservations?member_id=" + memberID + "&schedule_id=" + scheduleID,
			setupMock: func(m *MockService) {
				m.On("ListActive", mock.Anything, memberID, scheduleID).Return(nil, errors.New("db down")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
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
