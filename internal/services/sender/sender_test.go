package sender

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/adminstudio/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
	"github.com/magabrotheeeer/adminstudio/internal/lib/smtp"
	"github.com/magabrotheeeer/adminstudio/internal/metrics"
	"github.com/magabrotheeeer/adminstudio/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ClaimNotification(ctx context.Context, id string, now time.Time, lease time.Duration) (*models.Notification, error) {
	args := m.Called(ctx, id, now, lease)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *RepoMock) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *RepoMock) MarkNotificationSent(ctx context.Context, id, provider string) error {
	return m.Called(ctx, id, provider).Error(0)
}

func (m *RepoMock) MarkNotificationUndeliverable(ctx context.Context, id, reason string) error {
	return m.Called(ctx, id, reason).Error(0)
}

func (m *RepoMock) RecordNotificationFailure(ctx context.Context, id, lastError string, maxAttempts int) (*models.Notification, error) {
	args := m.Called(ctx, id, lastError, maxAttempts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

type TransportMock struct {
	mock.Mock
	name string
}

func (m *TransportMock) Name() string { return m.name }

func (m *TransportMock) Send(ctx context.Context, subject, message string, to []string) error {
	return m.Called(ctx, subject, message, to).Error(0)
}

type CollectorMock struct {
	metrics.Nop
	notifications []string
}

func (c *CollectorMock) RecordNotification(provider, outcome string) {
	c.notifications = append(c.notifications, provider+":"+outcome)
}

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newService(repo *RepoMock, collector metrics.Collector, transports ...Transport) *Service {
	s := New(repo, transports, Config{MaxAttempts: 3, SendTimeout: time.Second}, collector, sl.Discard())
	s.now = func() time.Time { return fixedNow }
	return s
}

func pending(id string) *models.Notification {
	return &models.Notification{ID: id, AccountID: "acc-1", Subject: "Hello", Message: "Body", Status: models.NotificationEnqueued}
}

func TestService_Deliver(t *testing.T) {
	account := &models.Account{ID: "acc-1", Email: "m@example.com"}
	to := []string{"m@example.com"}

	t.Run("first transport succeeds", func(t *testing.T) {
		repo := new(RepoMock)
		primary := &TransportMock{name: "smtp"}
		fallback := &TransportMock{name: "relay"}
		collector := &CollectorMock{}
		repo.On("ClaimNotification", mock.Anything, "n-1", fixedNow, time.Minute).Return(pending("n-1"), nil).Once()
		repo.On("GetAccount", mock.Anything, "acc-1").Return(account, nil).Once()
		primary.On("Send", mock.Anything, "Hello", "Body", to).Return(nil).Once()
		repo.On("MarkNotificationSent", mock.Anything, "n-1", "smtp").Return(nil).Once()

		err := newService(repo, collector, primary, fallback).Deliver(context.Background(), "n-1")
		require.NoError(t, err)
		fallback.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		assert.Equal(t, []string{"smtp:sent"}, collector.notifications)
		repo.AssertExpectations(t)
	})

	t.Run("falls back to next transport", func(t *testing.T) {
		repo := new(RepoMock)
		primary := &TransportMock{name: "smtp"}
		fallback := &TransportMock{name: "relay"}
		collector := &CollectorMock{}
		repo.On("ClaimNotification", mock.Anything, "n-1", fixedNow, time.Minute).Return(pending("n-1"), nil).Once()
		repo.On("GetAccount", mock.Anything, "acc-1").Return(account, nil).Once()
		primary.On("Send", mock.Anything, "Hello", "Body", to).Return(errors.New("tls handshake")).Once()
		fallback.On("Send", mock.Anything, "Hello", "Body", to).Return(nil).Once()
		repo.On("MarkNotificationSent", mock.Anything, "n-1", "relay").Return(nil).Once()

		err := newService(repo, collector, primary, fallback).Deliver(context.Background(), "n-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"smtp:failed", "relay:sent"}, collector.notifications)
		repo.AssertExpectations(t)
	})

	t.Run("log transport as last resort", func(t *testing.T) {
		repo := new(RepoMock)
		primary := &TransportMock{name: "smtp"}
		repo.On("ClaimNotification", mock.Anything, "n-1", fixedNow, time.Minute).Return(pending("n-1"), nil).Once()
		repo.On("GetAccount", mock.Anything, "acc-1").Return(account, nil).Once()
		primary.On("Send", mock.Anything, "Hello", "Body", to).Return(errors.New("refused")).Once()
		repo.On("MarkNotificationSent", mock.Anything, "n-1", smtp.ProviderLog).Return(nil).Once()

		err := newService(repo, metrics.Nop{}, primary, smtp.NewLogTransport(sl.Discard())).Deliver(context.Background(), "n-1")
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("all transports fail", func(t *testing.T) {
		repo := new(RepoMock)
		primary := &TransportMock{name: "smtp"}
		collector := &CollectorMock{}
		repo.On("ClaimNotification", mock.Anything, "n-1", fixedNow, time.Minute).Return(pending("n-1"), nil).Once()
		repo.On("GetAccount", mock.Anything, "acc-1").Return(account, nil).Once()
		primary.On("Send", mock.Anything, "Hello", "Body", to).Return(errors.New("refused")).Once()
		repo.On("RecordNotificationFailure", mock.Anything, "n-1", "refused", 3).
			Return(&models.Notification{ID: "n-1", Status: models.NotificationEnqueued, Attempts: 1}, nil).Once()

		err := newService(repo, collector, primary).Deliver(context.Background(), "n-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"smtp:failed"}, collector.notifications)
		repo.AssertNotCalled(t, "MarkNotificationSent", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("attempts exhausted", func(t *testing.T) {
		repo := new(RepoMock)
		primary := &TransportMock{name: "smtp"}
		collector := &CollectorMock{}
		repo.On("ClaimNotification", mock.Anything, "n-1", fixedNow, time.Minute).Return(pending("n-1"), nil).Once()
		repo.On("GetAccount", mock.Anything, "acc-1").Return(account, nil).Once()
		primary.On("Send", mock.Anything, "Hello", "Body", to).Return(errors.New("refused")).Once()
		repo.On("RecordNotificationFailure", mock.Anything, "n-1", "refused", 3).
			Return(&models.Notification{ID: "n-1", Status: models.NotificationUndeliverable, Attempts: 3}, nil).Once()

		err := newService(repo, collector, primary).Deliver(context.Background(), "n-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"smtp:failed", ":undeliverable"}, collector.notifications)
	})

	t.Run("recipient without email", func(t *testing.T) {
		repo := new(RepoMock)
		primary := &TransportMock{name: "smtp"}
		repo.On("ClaimNotification", mock.Anything, "n-1", fixedNow, time.Minute).Return(pending("n-1"), nil).Once()
		repo.On("GetAccount", mock.Anything, "acc-1").Return(&models.Account{ID: "acc-1"}, nil).Once()
		repo.On("MarkNotificationUndeliverable", mock.Anything, "n-1", mock.Anything).Return(nil).Once()

		err := newService(repo, metrics.Nop{}, primary).Deliver(context.Background(), "n-1")
		require.NoError(t, err)
		primary.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("already handled", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ClaimNotification", mock.Anything, "n-1", fixedNow, time.Minute).Return(nil, models.ErrNotFound).Once()

		err := newService(repo, metrics.Nop{}, &TransportMock{name: "smtp"}).Deliver(context.Background(), "n-1")
		require.NoError(t, err)
		repo.AssertNotCalled(t, "GetAccount", mock.Anything, mock.Anything)
	})

	t.Run("storage failure", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ClaimNotification", mock.Anything, "n-1", fixedNow, time.Minute).Return(nil, errors.New("db down")).Once()

		err := newService(repo, metrics.Nop{}, &TransportMock{name: "smtp"}).Deliver(context.Background(), "n-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db down")
	})
}

func TestService_Lease(t *testing.T) {
	transports := []Transport{&TransportMock{name: "a"}, &TransportMock{name: "b"}}
	s := New(new(RepoMock), transports, Config{MaxAttempts: 1, SendTimeout: 45 * time.Second}, metrics.Nop{}, sl.Discard())
	assert.Equal(t, 3*time.Minute, s.lease)

	s = New(new(RepoMock), transports, Config{MaxAttempts: 1, SendTimeout: time.Second}, metrics.Nop{}, sl.Discard())
	assert.Equal(t, time.Minute, s.lease)
}

func TestService_HandleBatch(t *testing.T) {
	t.Run("malformed body is discarded", func(t *testing.T) {
		err := newService(new(RepoMock), metrics.Nop{}).HandleBatch(context.Background(), []byte("{not json"))
		assert.ErrorIs(t, err, rabbitmq.ErrDiscard)
	})

	t.Run("every notification is attempted", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ClaimNotification", mock.Anything, "n-1", fixedNow, time.Minute).Return(nil, errors.New("db down")).Once()
		repo.On("ClaimNotification", mock.Anything, "n-2", fixedNow, time.Minute).Return(nil, models.ErrNotFound).Once()

		body, err := json.Marshal(models.DispatchBatch{Notifications: []models.Notification{{ID: "n-1"}, {ID: "n-2"}}})
		require.NoError(t, err)

		err = newService(repo, metrics.Nop{}, &TransportMock{name: "smtp"}).HandleBatch(context.Background(), body)
		require.Error(t, err)
		assert.NotErrorIs(t, err, rabbitmq.ErrDiscard)
		repo.AssertExpectations(t)
	})

	t.Run("empty batch", func(t *testing.T) {
		err := newService(new(RepoMock), metrics.Nop{}).HandleBatch(context.Background(), []byte(`{"notifications":[]}`))
		assert.NoError(t, err)
	})
}
