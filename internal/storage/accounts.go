package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/adminstudio/internal/models"
)

const accountColumns = `id, email, username, first_name, last_name, phone_number,
	password_hash, is_active, created, modified`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var a models.Account
	if err := row.Scan(&a.ID, &a.Email, &a.Username, &a.FirstName, &a.LastName,
		&a.PhoneNumber, &a.PasswordHash, &a.IsActive, &a.Created, &a.Modified); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAccountByEmail возвращает учётную запись с точным совпадением email.
func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	const op = "storage.GetAccountByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + accountColumns + `
			  FROM accounts
			  WHERE email = $1 AND NOT is_removed`
	a, err := scanAccount(s.conn(ctx).QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, notFound(op, err)
	}
	return a, nil
}

// GetAccount возвращает учётную запись по ID.
func (s *Storage) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	const op = "storage.GetAccount"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	if err := validID(id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT ` + accountColumns + `
			  FROM accounts
			  WHERE id = $1 AND NOT is_removed`
	a, err := scanAccount(s.conn(ctx).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(op, err)
	}
	return a, nil
}

// CreateAccount сохраняет новую учётную запись. Если email уже занят,
// возвращает models.ErrAlreadyExists, не прерывая текущую транзакцию.
func (s *Storage) CreateAccount(ctx context.Context, account models.Account) (*models.Account, error) {
	const op = "storage.CreateAccount"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO accounts (email, username, first_name, last_name, phone_number,
			      password_hash, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  ON CONFLICT (email) DO NOTHING
			  RETURNING ` + accountColumns
	a, err := scanAccount(s.conn(ctx).QueryRowContext(ctx, query,
		account.Email, account.Username, account.FirstName, account.LastName,
		account.PhoneNumber, account.PasswordHash, account.IsActive))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// UpdateAccountPhone обновляет только номер телефона.
func (s *Storage) UpdateAccountPhone(ctx context.Context, id, phone string) error {
	const op = "storage.UpdateAccountPhone"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE accounts SET phone_number = $2, modified = $3 WHERE id = $1`
	return s.execOne(ctx, op, query, id, phone, time.Now().UTC())
}

// ActivateAccount помечает учётную запись активной.
func (s *Storage) ActivateAccount(ctx context.Context, id string) error {
	const op = "storage.ActivateAccount"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE accounts SET is_active = TRUE, modified = $2 WHERE id = $1`
	return s.execOne(ctx, op, query, id, time.Now().UTC())
}

// UpdateAccount меняет только переданные поля и возвращает обновлённую запись.
func (s *Storage) UpdateAccount(ctx context.Context, id string, upd models.AccountUpdate) (*models.Account, error) {
	const op = "storage.UpdateAccount"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	if err := validID(id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE accounts
			  SET first_name = COALESCE($2, first_name),
			      last_name = COALESCE($3, last_name),
			      email = COALESCE($4, email),
			      phone_number = COALESCE($5, phone_number),
			      modified = $6
			  WHERE id = $1 AND NOT is_removed
			  RETURNING ` + accountColumns
	a, err := scanAccount(s.conn(ctx).QueryRowContext(ctx, query, id,
		upd.FirstName, upd.LastName, upd.Email, upd.PhoneNumber, time.Now().UTC()))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrAlreadyExists)
		}
		return nil, notFound(op, err)
	}
	return a, nil
}

// execOne выполняет запрос и возвращает models.ErrNotFound, если строка не затронута.
func (s *Storage) execOne(ctx context.Context, op, query string, args ...any) error {
	result, err := s.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}
