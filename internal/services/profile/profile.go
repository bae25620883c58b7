// Package profile создаёт и читает ролевые профили (участник, райдер, инструктор).
package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/adminstudio/internal/metrics"
	"github.com/magabrotheeeer/adminstudio/internal/models"
)

// Repository описывает операции хранилища с профилями.
type Repository interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetProfileByAccount(ctx context.Context, role models.Role, accountID string) (*models.Profile, error)
	// CreateProfile возвращает models.ErrAlreadyExists, если профиль роли уже есть.
	CreateProfile(ctx context.Context, role models.Role, accountID string) (*models.Profile, error)
	GetProfile(ctx context.Context, role models.Role, id string) (*models.Profile, error)
	ListProfiles(ctx context.Context, role models.Role) ([]*models.Profile, error)
	UpdateAccount(ctx context.Context, id string, upd models.AccountUpdate) (*models.Account, error)
}

// Resolver находит или создаёт учётную запись по данным регистрации.
type Resolver interface {
	ResolveOrCreate(ctx context.Context, data models.ProfileData) (*models.Account, error)
}

// Issuer выдаёт код подтверждения учётной записи.
type Issuer interface {
	IssueCode(ctx context.Context, account *models.Account) (*models.VerificationCode, error)
}

// Service управляет профилями ролей.
type Service struct {
	repo                Repository
	resolver            Resolver
	issuer              Issuer
	issueForInstructors bool
	metrics             metrics.Collector
	log                 *slog.Logger
}

// New создает новый экземпляр Service. issueForInstructors включает выдачу
// кода подтверждения при создании профиля инструктора.
func New(repo Repository, resolver Resolver, issuer Issuer, issueForInstructors bool, collector metrics.Collector, log *slog.Logger) *Service {
	return &Service{
		repo:                repo,
		resolver:            resolver,
		issuer:              issuer,
		issueForInstructors: issueForInstructors,
		metrics:             collector,
		log:                 log,
	}
}

func (s *Service) issuesVerification(role models.Role) bool {
	if role == models.RoleInstructor {
		return s.issueForInstructors
	}
	return true
}

// GetOrCreate находит или создаёт учётную запись и профиль роли в одной
// транзакции. created сообщает, был ли профиль создан этим вызовом.
// Новый участник или райдер получает код подтверждения.
func (s *Service) GetOrCreate(ctx context.Context, role models.Role, data models.ProfileData) (*models.Profile, bool, error) {
	const op = "profile.GetOrCreate"
	if !role.Valid() {
		return nil, false, fmt.Errorf("%s: %w", op, &models.InputError{Reason: fmt.Sprintf("unknown role %q", role)})
	}

	var (
		profile *models.Profile
		created bool
	)
	err := s.repo.RunInTx(ctx, func(ctx context.Context) error {
		account, err := s.resolver.ResolveOrCreate(ctx, data)
		if err != nil {
			return err
		}
		profile, created, err = s.EnsureForAccount(ctx, role, account)
		return err
	})
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	outcome := metrics.OutcomeExisting
	if created {
		outcome = metrics.OutcomeCreated
	}
	s.metrics.RecordRegistration(string(role), outcome)
	return profile, created, nil
}

// EnsureForAccount возвращает профиль роли учётной записи, создавая его при
// отсутствии. Вызывается внутри транзакции вызывающего.
func (s *Service) EnsureForAccount(ctx context.Context, role models.Role, account *models.Account) (*models.Profile, bool, error) {
	const op = "profile.EnsureForAccount"
	log := s.log.With(slog.String("op", op), slog.String("role", string(role)), slog.String("account_id", account.ID))

	profile, err := s.repo.GetProfileByAccount(ctx, role, account.ID)
	if err == nil {
		return profile, false, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	profile, err = s.repo.CreateProfile(ctx, role, account.ID)
	if errors.Is(err, models.ErrAlreadyExists) {
		log.Debug("profile created concurrently, fetching")
		profile, err = s.repo.GetProfileByAccount(ctx, role, account.ID)
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", op, err)
		}
		return profile, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	profile.Account = account

	if s.issuesVerification(role) {
		if _, err := s.issuer.IssueCode(ctx, account); err != nil {
			return nil, false, fmt.Errorf("%s: %w", op, err)
		}
	}
	log.Info("profile created", slog.String("profile_id", profile.ID))
	return profile, true, nil
}

// GetMember возвращает профиль участника по ID.
func (s *Service) GetMember(ctx context.Context, id string) (*models.Profile, error) {
	const op = "profile.GetMember"
	p, err := s.repo.GetProfile(ctx, models.RoleMember, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// ListInstructors возвращает всех инструкторов.
func (s *Service) ListInstructors(ctx context.Context) ([]*models.Profile, error) {
	const op = "profile.ListInstructors"
	list, err := s.repo.ListProfiles(ctx, models.RoleInstructor)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// GetInstructor возвращает инструктора по ID профиля.
func (s *Service) GetInstructor(ctx context.Context, id string) (*models.Profile, error) {
	const op = "profile.GetInstructor"
	p, err := s.repo.GetProfile(ctx, models.RoleInstructor, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// UpdateInstructor меняет переданные поля учётной записи инструктора.
func (s *Service) UpdateInstructor(ctx context.Context, id string, upd models.AccountUpdate) (*models.Profile, error) {
	const op = "profile.UpdateInstructor"
	p, err := s.repo.GetProfile(ctx, models.RoleInstructor, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if upd.Empty() {
		return p, nil
	}

	account, err := s.repo.UpdateAccount(ctx, p.AccountID, upd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	p.Account = account
	s.log.Info("instructor updated", slog.String("op", op), slog.String("instructor_id", id))
	return p, nil
}
