package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/syter/media/internal/database"
	apperrors "github.com/syter/media/internal/errors"
	tokenDomain "github.com/syter/media/internal/token/domain"
)

// MySQLTokenRepository implements AuthToken persistence for MySQL.
// Uses transaction support via database.GetTx().
type MySQLTokenRepository struct {
	db *sql.DB
}

// NewMySQLTokenRepository creates a new MySQL AuthToken repository.
func NewMySQLTokenRepository(db *sql.DB) *MySQLTokenRepository {
	return &MySQLTokenRepository{db: db}
}

// Create inserts a new AuthToken. Returns ErrTokenNameUsed when the unique
// constraint on name is violated.
func (m *MySQLTokenRepository) Create(ctx context.Context, token *tokenDomain.AuthToken) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO auth_tokens (token, name, expires_at, permissions, is_active, created_on, updated_on)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

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
		if isMySQLUniqueViolation(err) {
			return tokenDomain.ErrTokenNameUsed
		}
		return apperrors.Wrap(err, "failed to create auth token")
	}
	return nil
}

// GetByToken retrieves an AuthToken by its token string.
// Returns ErrTokenNotFound if the token doesn't exist.
func (m *MySQLTokenRepository) GetByToken(ctx context.Context, token string) (*tokenDomain.AuthToken, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT token, name, expires_at, permissions, is_active, created_on, updated_on
			  FROM auth_tokens WHERE token = ?`

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
// Uses a BINARY comparison so the lookup stays case-sensitive regardless of
// the column collation.
func (m *MySQLTokenRepository) NameExists(ctx context.Context, name string) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT EXISTS (SELECT 1 FROM auth_tokens WHERE BINARY name = ?)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, name).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check auth token name")
	}

	return exists, nil
}

// Update persists the mutable fields of an existing AuthToken (permissions and
// activation state) and stamps updated_on.
func (m *MySQLTokenRepository) Update(ctx context.Context, token *tokenDomain.AuthToken) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE auth_tokens
			  SET permissions = ?,
			  	  is_active = ?,
				  updated_on = ?
			  WHERE token = ?`

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

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation.
func isMySQLUniqueViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 // ER_DUP_ENTRY
}
