package repository

import (
	"context"
	"errors"
	"time"

	"github.com/pawmarket/api/internal/database"
	"github.com/pawmarket/api/internal/service"
)

// TokenRepository stores refresh tokens. Tokens minted at login start a
// family; rotations carry the family forward so a replayed token can revoke
// its whole chain without touching the user's other sessions.
type TokenRepository struct {
	db database.Database
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db database.Database) *TokenRepository {
	return &TokenRepository{db: db}
}

// CreateRefreshToken stores a token and fills in its ID and creation time.
func (r *TokenRepository) CreateRefreshToken(ctx context.Context, token *service.RefreshToken) error {
	result, err := r.db.Query(ctx, `
		CREATE refresh_token CONTENT {
			user: type::record($user),
			token_hash: $token_hash,
			family: $family,
			expires_at: <datetime>$expires_at,
			created_at: time::now(),
			revoked: false
		}
	`, map[string]interface{}{
		"user":       token.UserID,
		"token_hash": token.TokenHash,
		"family":     token.Family,
		"expires_at": token.ExpiresAt.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	token.ID = created.ID
	token.CreatedAt = created.CreatedOn
	return nil
}

// GetRefreshTokenByHash looks a token up by its hash. A miss returns
// (nil, nil) so the service can treat unknown and revoked tokens uniformly.
func (r *TokenRepository) GetRefreshTokenByHash(ctx context.Context, hash string) (*service.RefreshToken, error) {
	result, err := r.db.QueryOne(ctx,
		`SELECT * FROM refresh_token WHERE token_hash = $hash LIMIT 1`,
		map[string]interface{}{"hash": hash})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	token, err := refreshTokenFromRow(result)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	return token, err
}

// RevokeRefreshToken marks a single token as revoked.
func (r *TokenRepository) RevokeRefreshToken(ctx context.Context, hash string) error {
	return r.db.Execute(ctx,
		`UPDATE refresh_token SET revoked = true WHERE token_hash = $hash`,
		map[string]interface{}{"hash": hash})
}

// RevokeFamily revokes every token descended from the same login.
func (r *TokenRepository) RevokeFamily(ctx context.Context, family string) error {
	return r.db.Execute(ctx,
		`UPDATE refresh_token SET revoked = true WHERE family = $family`,
		map[string]interface{}{"family": family})
}

// RevokeAllUserTokens revokes every session a user holds, used on logout
// and password change.
func (r *TokenRepository) RevokeAllUserTokens(ctx context.Context, userID string) error {
	return r.db.Execute(ctx,
		`UPDATE refresh_token SET revoked = true WHERE user = type::record($user)`,
		map[string]interface{}{"user": userID})
}

// DeleteExpiredTokens drops tokens past their expiry.
func (r *TokenRepository) DeleteExpiredTokens(ctx context.Context) error {
	return r.db.Execute(ctx, `DELETE refresh_token WHERE expires_at < time::now()`, nil)
}

// CleanupRevokedTokens drops tokens revoked more than a week ago. Recently
// revoked rows are kept so replay detection still sees them.
func (r *TokenRepository) CleanupRevokedTokens(ctx context.Context) error {
	cutoff := time.Now().Add(-7 * 24 * time.Hour).Format(time.RFC3339)
	return r.db.Execute(ctx,
		`DELETE refresh_token WHERE revoked = true AND created_at < <datetime>$cutoff`,
		map[string]interface{}{"cutoff": cutoff})
}

func refreshTokenFromRow(result interface{}) (*service.RefreshToken, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}

	// QueryOne may hand back an enveloped response or a bare row.
	if resp, ok := result.(map[string]interface{}); ok {
		if status, ok := resp["status"].(string); ok && status == "OK" {
			rows, ok := resp["result"].([]interface{})
			if ok {
				if len(rows) == 0 {
					return nil, database.ErrNotFound
				}
				result = rows[0]
			}
		}
	}
	if rows, ok := result.([]interface{}); ok {
		if len(rows) == 0 {
			return nil, database.ErrNotFound
		}
		result = rows[0]
	}

	row, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	token := &service.RefreshToken{
		TokenHash: getString(row, "token_hash"),
		Family:    getString(row, "family"),
		Revoked:   getBool(row, "revoked"),
	}
	if id, ok := row["id"]; ok {
		token.ID = convertSurrealID(id)
	}
	if user, ok := row["user"]; ok {
		token.UserID = convertSurrealID(user)
	}
	if t := getTime(row, "expires_at"); t != nil {
		token.ExpiresAt = *t
	}
	if t := getTime(row, "created_at"); t != nil {
		token.CreatedAt = *t
	}
	return token, nil
}
