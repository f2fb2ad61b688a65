package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

func (r *tokenRepository) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiry time.Time) error {
	query := `
		INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, uuid.New(), userID, tokenHash, expiry, time.Now())
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (r *tokenRepository) ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	query := `
		SELECT user_id
		FROM refresh_tokens
		WHERE token_hash = $1 AND expires_at > $2 AND revoked_at IS NULL
	`
	var userID uuid.UUID
	if err := r.db.GetContext(ctx, &userID, query, tokenHash, time.Now()); err != nil {
		return uuid.Nil, fmt.Errorf("invalid or expired refresh token: %w", err)
	}
	return userID, nil
}

func (r *tokenRepository) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	query := `
		UPDATE refresh_tokens
		SET revoked_at = $1
		WHERE token_hash = $2 AND revoked_at IS NULL
	`
	if _, err := r.db.ExecContext(ctx, query, time.Now(), tokenHash); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}
