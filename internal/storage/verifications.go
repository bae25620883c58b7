package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/adminstudio/internal/models"
)

const verificationColumns = `id, code, account_id, has_confirmed, expires_at, is_removed, created, modified`

func scanVerification(row rowScanner) (*models.VerificationCode, error) {
	var c models.VerificationCode
	if err := row.Scan(&c.ID, &c.Code, &c.AccountID, &c.HasConfirmed, &c.ExpiresAt,
		&c.IsRemoved, &c.Created, &c.Modified); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateVerificationCode сохраняет код подтверждения. При совпадении кода
// с уже существующим возвращает models.ErrAlreadyExists.
func (s *Storage) CreateVerificationCode(ctx context.Context, code models.VerificationCode) (*models.VerificationCode, error) {
	const op = "storage.CreateVerificationCode"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO verification_codes (code, account_id, has_confirmed, expires_at)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (code) DO NOTHING
			  RETURNING ` + verificationColumns
	c, err := scanVerification(s.conn(ctx).QueryRowContext(ctx, query,
		code.Code, code.AccountID, code.HasConfirmed, code.ExpiresAt))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, fmt.Errorf("%s: %w", op, models.ErrAlreadyExists)
		case isForeignKeyViolation(err):
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// ConsumeVerificationCode атомарно гасит код: совпадают id и код, код не
// погашен, не подтверждён и не истёк к моменту now. Любое несовпадение
// возвращает models.ErrRejectedVerification без изменений в базе.
func (s *Storage) ConsumeVerificationCode(ctx context.Context, id, code string, now time.Time) (*models.VerificationCode, error) {
	const op = "storage.ConsumeVerificationCode"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	if err := validID(id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrRejectedVerification)
	}

	query := `UPDATE verification_codes
			  SET has_confirmed = TRUE, is_removed = TRUE, modified = $3
			  WHERE id = $1 AND code = $2
			    AND NOT is_removed AND NOT has_confirmed
			    AND expires_at > $3
			  RETURNING ` + verificationColumns
	c, err := scanVerification(s.conn(ctx).QueryRowContext(ctx, query, id, code, now))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrRejectedVerification)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// GetVerificationCode возвращает код подтверждения по ID, включая погашенные.
func (s *Storage) GetVerificationCode(ctx context.Context, id string) (*models.VerificationCode, error) {
	const op = "storage.GetVerificationCode"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	if err := validID(id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT ` + verificationColumns + ` FROM verification_codes WHERE id = $1`
	c, err := scanVerification(s.conn(ctx).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(op, err)
	}
	return c, nil
}
