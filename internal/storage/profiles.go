package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/adminstudio/internal/models"
)

func profileTable(role models.Role) (string, error) {
	switch role {
	case models.RoleMember:
		return "members", nil
	case models.RoleRider:
		return "riders", nil
	case models.RoleInstructor:
		return "instructors", nil
	}
	return "", &models.InputError{Reason: fmt.Sprintf("unknown role %q", role)}
}

const profileJoinColumns = `p.id, p.account_id, p.created, p.modified,
	a.id, a.email, a.username, a.first_name, a.last_name, a.phone_number,
	a.password_hash, a.is_active, a.created, a.modified`

func scanProfile(row rowScanner, role models.Role) (*models.Profile, error) {
	p := models.Profile{Role: role, Account: &models.Account{}}
	a := p.Account
	if err := row.Scan(&p.ID, &p.AccountID, &p.Created, &p.Modified,
		&a.ID, &a.Email, &a.Username, &a.FirstName, &a.LastName, &a.PhoneNumber,
		&a.PasswordHash, &a.IsActive, &a.Created, &a.Modified); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProfileByAccount возвращает профиль роли, привязанный к учётной записи.
func (s *Storage) GetProfileByAccount(ctx context.Context, role models.Role, accountID string) (*models.Profile, error) {
	const op = "storage.GetProfileByAccount"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	table, err := profileTable(role)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := validID(accountID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT ` + profileJoinColumns + `
			  FROM ` + table + ` p
			  JOIN accounts a ON a.id = p.account_id
			  WHERE p.account_id = $1`
	p, err := scanProfile(s.conn(ctx).QueryRowContext(ctx, query, accountID), role)
	if err != nil {
		return nil, notFound(op, err)
	}
	return p, nil
}

// GetProfile возвращает профиль роли по его ID.
func (s *Storage) GetProfile(ctx context.Context, role models.Role, id string) (*models.Profile, error) {
	const op = "storage.GetProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	table, err := profileTable(role)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := validID(id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT ` + profileJoinColumns + `
			  FROM ` + table + ` p
			  JOIN accounts a ON a.id = p.account_id
			  WHERE p.id = $1`
	p, err := scanProfile(s.conn(ctx).QueryRowContext(ctx, query, id), role)
	if err != nil {
		return nil, notFound(op, err)
	}
	return p, nil
}

// ListProfiles возвращает все профили роли, упорядоченные по дате создания.
func (s *Storage) ListProfiles(ctx context.Context, role models.Role) ([]*models.Profile, error) {
	const op = "storage.ListProfiles"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	table, err := profileTable(role)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT ` + profileJoinColumns + `
			  FROM ` + table + ` p
			  JOIN accounts a ON a.id = p.account_id
			  ORDER BY p.created, p.id`
	rows, err := s.conn(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows, role)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateProfile создаёт профиль роли для учётной записи. Если профиль уже
// существует, возвращает models.ErrAlreadyExists.
func (s *Storage) CreateProfile(ctx context.Context, role models.Role, accountID string) (*models.Profile, error) {
	const op = "storage.CreateProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	table, err := profileTable(role)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO ` + table + ` (account_id)
			  VALUES ($1)
			  ON CONFLICT (account_id) DO NOTHING
			  RETURNING id, account_id, created, modified`
	p := models.Profile{Role: role}
	err = s.conn(ctx).QueryRowContext(ctx, query, accountID).
		Scan(&p.ID, &p.AccountID, &p.Created, &p.Modified)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, fmt.Errorf("%s: %w", op, models.ErrAlreadyExists)
		case isForeignKeyViolation(err):
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}
