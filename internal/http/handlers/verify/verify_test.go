package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/adminstudio/internal/lib/jwt"
	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
	"github.com/magabrotheeeer/adminstudio/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Validate(ctx context.Context, verificationID, code string) (*models.Account, error) {
	args := m.Called(ctx, verificationID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func newRequest(id, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/verifications/"+id+"/verify", bytes.NewBufferString(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("verification_id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestVerifyHandler(t *testing.T) {
	maker := jwt.NewJWTMaker("test_secret", time.Minute)

	t.Run("success returns token", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Validate", mock.Anything, "ver-1", "ABC123").
			Return(&models.Account{ID: "acc-1", Email: "m@example.com", IsActive: true}, nil).Once()

		rr := httptest.NewRecorder()
		New(sl.Discard(), svc, maker).ServeHTTP(rr, newRequest("ver-1", `{"code":"ABC123"}`))

		require.Equal(t, http.StatusOK, rr.Code)
		var body struct {
			Status string `json:"status"`
			Data   Result `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "acc-1", body.Data.AccountID)
		claims, err := maker.ParseToken(body.Data.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "acc-1", claims.AccountID())
	})

	rejections := []error{
		models.ErrRejectedVerification,
		fmt.Errorf("verification.Validate: %w", models.ErrRejectedVerification),
	}
	for i, rejection := range rejections {
		t.Run(fmt.Sprintf("uniform rejection %d", i), func(t *testing.T) {
			svc := new(MockService)
			svc.On("Validate", mock.Anything, "ver-1", "WRONG1").Return(nil, rejection).Once()

			rr := httptest.NewRecorder()
			New(sl.Discard(), svc, maker).ServeHTTP(rr, newRequest("ver-1", `{"code":"WRONG1"}`))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.JSONEq(t, `{"status":"Error","detail":"invalid or expired verification code"}`, rr.Body.String())
		})
	}

	t.Run("surrounding whitespace is stripped", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Validate", mock.Anything, "ver-1", "ABC123").
			Return(&models.Account{ID: "acc-1", Email: "m@example.com", IsActive: true}, nil).Once()

		rr := httptest.NewRecorder()
		New(sl.Discard(), svc, maker).ServeHTTP(rr, newRequest("ver-1", `{"code":"  ABC123\n"}`))

		assert.Equal(t, http.StatusOK, rr.Code)
		svc.AssertExpectations(t)
	})

	t.Run("whitespace only code", func(t *testing.T) {
		svc := new(MockService)
		rr := httptest.NewRecorder()
		New(sl.Discard(), svc, maker).ServeHTTP(rr, newRequest("ver-1", `{"code":"   "}`))

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		svc.AssertNotCalled(t, "Validate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing code", func(t *testing.T) {
		svc := new(MockService)
		rr := httptest.NewRecorder()
		New(sl.Discard(), svc, maker).ServeHTTP(rr, newRequest("ver-1", `{}`))

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		svc.AssertNotCalled(t, "Validate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("internal error", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Validate", mock.Anything, "ver-1", "ABC123").Return(nil, errors.New("db down")).Once()

		rr := httptest.NewRecorder()
		New(sl.Discard(), svc, maker).ServeHTTP(rr, newRequest("ver-1", `{"code":"ABC123"}`))
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
