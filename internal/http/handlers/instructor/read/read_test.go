package read

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
	"github.com/magabrotheeeer/adminstudio/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) GetInstructor(ctx context.Context, id string) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func TestReadInstructorHandler(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "found",
			id:   "ins-1",
			setupMock: func(m *MockService) {
				m.On("GetInstructor", mock.Anything, "ins-1").Return(&models.Profile{
					ID: "ins-1", Role: models.RoleInstructor, Account: &models.Account{ID: "acc-1", FirstName: "Anna"},
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"first_name":"Anna"`,
		},
		{
			name: "not found",
			id:   "ins-2",
			setupMock: func(m *MockService) {
				m.On("GetInstructor", mock.Anything, "ins-2").Return(nil, models.ErrNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"detail":"Not found."`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/instructors/"+tt.id, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			rr := httptest.NewRecorder()

			New(sl.Discard(), svc).ServeHTTP(rr, req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx)))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
