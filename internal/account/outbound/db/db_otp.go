package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tixgo/tixgo/internal/account/entity"
	"github.com/tixgo/tixgo/internal/pkg/goerror"
)

// VerifyOtpAttempt evaluates one verification attempt against the newest
// unused, unexpired token for the email and type. Expired and consumed tokens
// are invisible to callers.
//
// The whole attempt runs in one transaction holding the token's row lock, so
// concurrent guesses are serialized: each one sees the attempt counter left by
// the previous one, and the cap cannot be raced past. Outcomes: no active
// token reports goerror.ErrNotFound, an exhausted token entity.ErrOtpLocked
// (verify is never called), a failed comparison increments the counter and
// reports entity.ErrOtpMismatch, a match returns the token unchanged.
func (s *DB) VerifyOtpAttempt(ctx context.Context, email string, otpType entity.OtpType, now time.Time, verify func(codeHash string) bool) (_ *entity.OtpToken, err error) {
	ctx, span := s.startSpan(ctx, "VerifyOtpAttempt")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer s.rollback(ctx, tx)

	row := tx.QueryRow(ctx, `
		SELECT id, user_id, email, code_hash, otp_type, created_at, expires_at,
		       attempt_count, max_attempt, is_used, used_at
		FROM otp_tokens
		WHERE email = $1 AND otp_type = $2 AND NOT is_used AND expires_at > $3
		ORDER BY created_at DESC
		LIMIT 1
		FOR UPDATE`,
		email, otpType.String(), now,
	)

	var token entity.OtpToken
	if err = s.mapError(row.Scan(
		&token.ID, &token.UserID, &token.Email, &token.CodeHash, &token.Type,
		&token.CreatedAt, &token.ExpiresAt, &token.AttemptCount, &token.MaxAttempt,
		&token.IsUsed, &token.UsedAt,
	)); err != nil {
		return nil, err
	}

	if token.Locked() {
		err = entity.ErrOtpLocked
		return &token, err
	}

	if !verify(token.CodeHash) {
		if err = tx.QueryRow(ctx, `
			UPDATE otp_tokens
			SET attempt_count = attempt_count + 1
			WHERE id = $1 AND NOT is_used
			RETURNING attempt_count`,
			token.ID,
		).Scan(&token.AttemptCount); err != nil {
			return nil, s.mapError(err)
		}
		if err = tx.Commit(ctx); err != nil {
			return nil, err
		}

		err = entity.ErrOtpMismatch
		return &token, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &token, nil
}

// UpsertOtpToken replaces the user's active token of the given type, or
// inserts a fresh row when none exists. The row lock serializes concurrent
// re-issues so only one active token survives.
func (s *DB) UpsertOtpToken(ctx context.Context, in entity.NewOtpToken) (err error) {
	ctx, span := s.startSpan(ctx, "UpsertOtpToken")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer s.rollback(ctx, tx)

	var existingID int64
	err = tx.QueryRow(ctx, `
		SELECT id FROM otp_tokens
		WHERE user_id = $1 AND otp_type = $2 AND NOT is_used
		ORDER BY created_at DESC
		LIMIT 1
		FOR UPDATE`,
		in.UserID, in.Type.String(),
	).Scan(&existingID)

	switch {
	case err == nil:
		_, err = tx.Exec(ctx, `
			UPDATE otp_tokens
			SET code_hash = $2, created_at = $3, expires_at = $4,
			    attempt_count = 0, max_attempt = $5, used_at = NULL
			WHERE id = $1`,
			existingID, in.CodeHash, in.CreatedAt, in.ExpiresAt, in.MaxAttempt,
		)
		if err != nil {
			return s.mapError(err)
		}
	case errors.Is(err, pgx.ErrNoRows):
		_, err = tx.Exec(ctx, `
			INSERT INTO otp_tokens (id, user_id, email, code_hash, otp_type,
			                        created_at, expires_at, attempt_count, max_attempt, is_used)
			VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, FALSE)`,
			in.ID, in.UserID, in.Email, in.CodeHash, in.Type.String(),
			in.CreatedAt, in.ExpiresAt, in.MaxAttempt,
		)
		if err != nil {
			return s.mapError(err)
		}
	default:
		return s.mapError(err)
	}

	return s.mapError(tx.Commit(ctx))
}

// ConsumeOtpResetPassword marks the token used and replaces the user's
// password in one transaction. Returns goerror.ErrNotFound when the token was
// already consumed, so callers can treat the race as an invalid token.
func (s *DB) ConsumeOtpResetPassword(ctx context.Context, otpID, userID int64, newHash string, usedAt time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "ConsumeOtpResetPassword")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer s.rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE otp_tokens
		SET is_used = TRUE, used_at = $2
		WHERE id = $1 AND NOT is_used`,
		otpID, usedAt,
	)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	if _, err = tx.Exec(ctx, `
		UPDATE users
		SET password = $2, updated_at = $3
		WHERE id = $1`,
		userID, newHash, usedAt,
	); err != nil {
		return s.mapError(err)
	}

	return s.mapError(tx.Commit(ctx))
}
