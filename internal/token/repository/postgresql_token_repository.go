// Package repository implements AuthToken persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/syter/media/internal/database"
	apperrors "github.com/syter/media/internal/errors"
	tokenDomain "github.com/syter/media/internal/token/domain"
)

// PostgreSQLTokenRepository implements AuthToken persistence for PostgreSQL.
// Uses transaction support via database.GetTx().
type PostgreSQLTokenRepository struct {
	db *sql.DB
}

// NewPostgreSQLTokenRepository creates a new PostgreSQL AuthToken repository.
func NewPostgreSQLTokenRepository(db *sql.DB) *PostgreSQLTokenRepository {
	return &PostgreSQLTokenRepository{db: db}
}

// Create inserts a new AuthToken. Returns ErrTokenNameUsed when the unique
// constraint on name is violated.
func (p *PostgreSQLTokenRepository) Create(ctx context.Context, token *tokenDomain.AuthToken) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO auth_tokens (token, name, expires_at, permissions, is_active, created_on, updated_on)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		token.Token,
		token.Name,
		token.ExpiresAt,
		token.Permissions,
		token.IsActive,
		token.CreatedOn,
		token.UpdatedOn,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return tokenDomain.ErrTokenNameUsed
		}
		return apperrors.Wrap(err, "failed to create auth token")
	}
	return nil
}

// GetByToken retrieves an AuthToken by its token string.
// Returns ErrTokenNotFound if the token doesn't exist.
func (p *PostgreSQLTokenRepository) GetByToken(ctx context.Context, token string) (*tokenDomain.AuthToken, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT token, name, expires_at, permissions, is_active, created_on, updated_on
			  FROM auth_tokens WHERE token = $1`

	var authToken tokenDomain.AuthToken

	err := querier.QueryRowContext(ctx, query, token).Scan(
		&authToken.Token,
		&authToken.Name,
		&authToken.ExpiresAt,
		&authToken.Permissions,
		&authToken.IsActive,
		&authToken.CreatedOn,
		&authToken.UpdatedOn,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tokenDomain.ErrTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get auth token")
	}

	return &authToken, nil
}

// NameExists reports whether any token already carries the given name.
// The lookup is case-sensitive.
func (p *PostgreSQLTokenRepository) NameExists(ctx context.Context, name string) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT EXISTS (SELECT 1 FROM auth_tokens WHERE name = $1)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, name).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check auth token name")
	}

	return exists, nil
}

// Update persists the mutable fields of an existing AuthToken (permissions and
// activation state) and stamps updated_on.
func (p *PostgreSQLTokenRepository) Update(ctx context.Context, token *tokenDomain.AuthToken) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE auth_tokens
			  SET permissions = $1,
			  	  is_active = $2,
				  updated_on = $3
			  WHERE token = $4`

	_, err := querier.ExecContext(
		ctx,
		query,
		token.Permissions,
		token.IsActive,
		token.UpdatedOn,
		token.Token,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update auth token")
	}

	return nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique
// constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505" // unique_violation
}
