// Package verification выдаёт и погашает одноразовые коды подтверждения учётных записей.
package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/adminstudio/internal/lib/password"
	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
	"github.com/magabrotheeeer/adminstudio/internal/metrics"
	"github.com/magabrotheeeer/adminstudio/internal/models"
)

// Тема и текст письма с кодом.
const (
	Subject         = "Please confirm your subscription"
	messageTemplate = "Your verification code is: %s and expires in %d minutes."
)

// Repository описывает операции хранилища, нужные для кодов подтверждения.
type Repository interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	// CreateVerificationCode возвращает models.ErrAlreadyExists при совпадении кода.
	CreateVerificationCode(ctx context.Context, code models.VerificationCode) (*models.VerificationCode, error)
	ConsumeVerificationCode(ctx context.Context, id, code string, now time.Time) (*models.VerificationCode, error)
	ActivateAccount(ctx context.Context, id string) error
	GetAccount(ctx context.Context, id string) (*models.Account, error)
}

// Notifier ставит уведомления в очередь на доставку.
type Notifier interface {
	Request(ctx context.Context, subject, message string, recipients []string) error
}

// Config параметры выдачи кодов.
type Config struct {
	CodeLength          int
	TTL                 time.Duration
	MaxGenerateAttempts int
}

// Service выдаёт коды и проверяет их.
type Service struct {
	repo     Repository
	notifier Notifier
	cfg      Config
	metrics  metrics.Collector
	log      *slog.Logger
	now      func() time.Time
}

// New создает новый экземпляр Service.
func New(repo Repository, notifier Notifier, cfg Config, collector metrics.Collector, log *slog.Logger) *Service {
	if cfg.MaxGenerateAttempts <= 0 {
		cfg.MaxGenerateAttempts = 1
	}
	return &Service{
		repo:     repo,
		notifier: notifier,
		cfg:      cfg,
		metrics:  collector,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// IssueCode создаёт новый код для учётной записи и запрашивает его отправку.
// Ранее выданные коды остаются действительными до истечения срока.
func (s *Service) IssueCode(ctx context.Context, account *models.Account) (*models.VerificationCode, error) {
	const op = "verification.IssueCode"
	log := s.log.With(slog.String("op", op), slog.String("account_id", account.ID))

	var (
		created *models.VerificationCode
		err     error
	)
	for attempt := 1; attempt <= s.cfg.MaxGenerateAttempts; attempt++ {
		var code string
		code, err = password.GenerateCode(s.cfg.CodeLength, password.CodeAlphabet)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		created, err = s.repo.CreateVerificationCode(ctx, models.VerificationCode{
			Code:      code,
			AccountID: account.ID,
			ExpiresAt: s.now().Add(s.cfg.TTL),
		})
		if !errors.Is(err, models.ErrAlreadyExists) {
			break
		}
		log.Warn("verification code collision, regenerating", slog.Int("attempt", attempt))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	message := fmt.Sprintf(messageTemplate, created.Code, int(s.cfg.TTL/time.Minute))
	if err := s.notifier.Request(ctx, Subject, message, []string{account.ID}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("verification code issued", slog.String("verification_id", created.ID))
	return created, nil
}

// Validate погашает код и активирует учётную запись в одной транзакции.
// Любая неудача проверки возвращает models.ErrRejectedVerification.
func (s *Service) Validate(ctx context.Context, verificationID, code string) (*models.Account, error) {
	const op = "verification.Validate"
	log := s.log.With(slog.String("op", op), slog.String("verification_id", verificationID))

	var account *models.Account
	err := s.repo.RunInTx(ctx, func(ctx context.Context) error {
		consumed, err := s.repo.ConsumeVerificationCode(ctx, verificationID, code, s.now())
		if err != nil {
			return err
		}
		if err := s.repo.ActivateAccount(ctx, consumed.AccountID); err != nil {
			return err
		}
		account, err = s.repo.GetAccount(ctx, consumed.AccountID)
		return err
	})
	if err != nil {
		if errors.Is(err, models.ErrRejectedVerification) {
			s.metrics.RecordVerification(metrics.OutcomeRejected)
			log.Info("verification rejected")
			return nil, fmt.Errorf("%s: %w", op, models.ErrRejectedVerification)
		}
		log.Error("verification failed", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.metrics.RecordVerification(metrics.OutcomeAccepted)
	log.Info("account activated", slog.String("account_id", account.ID))
	return account, nil
}
