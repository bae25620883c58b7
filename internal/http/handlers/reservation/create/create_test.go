package create

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/adminstudio/internal/http/middlewarectx"
	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
	"github.com/magabrotheeeer/adminstudio/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, accountID, scheduleID, notes string) (*models.Reservation, error) {
	args := m.Called(ctx, accountID, scheduleID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

const (
	accountID  = "6f1c1b8e-6a3e-4a53-9d3b-2b8f0f0c1a11"
	scheduleID = "0b0e7c8a-5a43-4a7e-8d0a-0f3c2e1b9d22"
)

func TestCreateHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		tokenAccount   string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:         "reserved",
			body:         `{"user_id":"` + accountID + `","schedule_id":"` + scheduleID + `","notes":"mat needed"}`,
			tokenAccount: accountID,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, accountID, scheduleID, "mat needed").
					Return(&models.Reservation{ID: "res-1", Status: models.ReservationReserved, Notes: "mat needed"}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"status":"RESERVED"`,
		},
		{
			name:           "token of another account",
			body:           `{"user_id":"` + accountID + `","schedule_id":"` + scheduleID + `"}`,
			tokenAccount:   "11111111-1111-4111-8111-111111111111",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `"status":"Error"`,
		},
		{
			name:           "malformed ids",
			body:           `{"user_id":"abc","schedule_id":"def"}`,
			tokenAccount:   accountID,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `can contain only uuid`,
		},
		{
			name:         "unknown schedule",
			body:         `{"user_id":"` + accountID + `","schedule_id":"` + scheduleID + `"}`,
			tokenAccount: accountID,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, accountID, scheduleID, "").Return(nil, models.ErrNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"detail":"Not found."`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", bytes.NewBufferString(tt.body))
			req = req.WithContext(context.WithValue(req.Context(), middlewarectx.Account, tt.tokenAccount))
			rr := httptest.NewRecorder()

			New(sl.Discard(), svc).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
