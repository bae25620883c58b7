// Package identity находит учётную запись по email или создаёт новую.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/adminstudio/internal/lib/password"
	"github.com/magabrotheeeer/adminstudio/internal/models"
)

// Repository описывает операции хранилища с учётными записями.
type Repository interface {
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	// CreateAccount возвращает models.ErrAlreadyExists, если email занят.
	CreateAccount(ctx context.Context, account models.Account) (*models.Account, error)
	UpdateAccountPhone(ctx context.Context, id, phone string) error
}

// Service разрешает учётные записи по email.
type Service struct {
	repo         Repository
	entropyBytes int
	log          *slog.Logger
}

// New создает новый экземпляр Service. entropyBytes задаёт длину случайного
// пароля, который выдаётся, если клиент не передал свой.
func New(repo Repository, entropyBytes int, log *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		entropyBytes: entropyBytes,
		log:          log,
	}
}

// ResolveOrCreate возвращает учётную запись с точно таким email. Если её нет,
// создаёт неактивную запись с username равным email. Существующая запись
// возвращается без изменений, даже если остальные поля data отличаются.
func (s *Service) ResolveOrCreate(ctx context.Context, data models.ProfileData) (*models.Account, error) {
	const op = "identity.ResolveOrCreate"
	log := s.log.With(slog.String("op", op))

	account, err := s.repo.GetAccountByEmail(ctx, data.Email)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	account, err = s.create(ctx, data)
	if errors.Is(err, models.ErrAlreadyExists) {
		// запись с этим email создана параллельным запросом
		log.Debug("account created concurrently, resolving again")
		account, err = s.repo.GetAccountByEmail(ctx, data.Email)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return account, nil
}

func (s *Service) create(ctx context.Context, data models.ProfileData) (*models.Account, error) {
	raw := strings.TrimSpace(data.Password)
	if raw == "" {
		generated, err := password.GenerateToken(s.entropyBytes)
		if err != nil {
			return nil, err
		}
		raw = generated
	}
	hash, err := password.GetHash(raw)
	if errors.Is(err, password.ErrPasswordTooLong) {
		return nil, &models.InputError{Reason: "Password is too long."}
	}
	if err != nil {
		return nil, err
	}

	account, err := s.repo.CreateAccount(ctx, models.Account{
		Email:        data.Email,
		Username:     data.Email,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		PasswordHash: hash,
		IsActive:     false,
	})
	if err != nil {
		return nil, err
	}

	if data.PhoneNumber != "" {
		if err := s.repo.UpdateAccountPhone(ctx, account.ID, data.PhoneNumber); err != nil {
			return nil, err
		}
		account.PhoneNumber = data.PhoneNumber
	}

	s.log.Info("account created", slog.String("account_id", account.ID))
	return account, nil
}

// GetAccount возвращает учётную запись по ID или models.ErrNotFound.
func (s *Service) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	const op = "identity.GetAccount"
	account, err := s.repo.GetAccount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return account, nil
}

// Authenticate проверяет пару email/пароль. Неизвестный email и неверный пароль
// дают одну и ту же models.ErrInvalidCredentials. Неактивная учётная запись
// с верным паролем даёт models.ErrInactiveAccount.
func (s *Service) Authenticate(ctx context.Context, email, rawPassword string) (*models.Account, error) {
	const op = "identity.Authenticate"

	account, err := s.repo.GetAccountByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := password.CompareHash(account.PasswordHash, rawPassword); err != nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%s: %w", op, models.ErrInactiveAccount)
	}
	return account, nil
}
