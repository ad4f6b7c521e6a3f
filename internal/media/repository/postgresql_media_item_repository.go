// Package repository implements MediaItem persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/syter/media/internal/database"
	apperrors "github.com/syter/media/internal/errors"
	mediaDomain "github.com/syter/media/internal/media/domain"
)

// PostgreSQLMediaItemRepository implements MediaItem persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLMediaItemRepository struct {
	db *sql.DB
}

// NewPostgreSQLMediaItemRepository creates a new PostgreSQL MediaItem repository.
func NewPostgreSQLMediaItemRepository(db *sql.DB) *PostgreSQLMediaItemRepository {
	return &PostgreSQLMediaItemRepository{db: db}
}

// Create inserts a new MediaItem. Uses transaction support via database.GetTx().
func (p *PostgreSQLMediaItemRepository) Create(ctx context.Context, item *mediaDomain.MediaItem) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO media_items (id, created_by_token, title, description, created_on, updated_on)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		item.ID,
		item.CreatedByToken,
		item.Title,
		item.Description,
		item.CreatedOn,
		item.UpdatedOn,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create media item")
	}
	return nil
}

// GetByID retrieves a MediaItem by ID.
// Returns ErrMediaItemNotFound if the item doesn't exist.
func (p *PostgreSQLMediaItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*mediaDomain.MediaItem, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, created_by_token, title, description, created_on, updated_on
			  FROM media_items WHERE id = $1`

	var item mediaDomain.MediaItem

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.CreatedByToken,
		&item.Title,
		&item.Description,
		&item.CreatedOn,
		&item.UpdatedOn,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, mediaDomain.ErrMediaItemNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get media item")
	}

	return &item, nil
}

// Update persists the mutable metadata of an existing MediaItem.
func (p *PostgreSQLMediaItemRepository) Update(ctx context.Context, item *mediaDomain.MediaItem) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE media_items
			  SET title = $1,
			  	  description = $2,
				  updated_on = $3
			  WHERE id = $4`

	_, err := querier.ExecContext(ctx, query, item.Title, item.Description, item.UpdatedOn, item.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update media item")
	}

	return nil
}

// Delete removes the MediaItem row.
func (p *PostgreSQLMediaItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM media_items WHERE id = $1`

	if _, err := querier.ExecContext(ctx, query, id); err != nil {
		return apperrors.Wrap(err, "failed to delete media item")
	}

	return nil
}

// ListByToken returns the items owned by token in creation order ascending,
// sliced by offset and limit.
func (p *PostgreSQLMediaItemRepository) ListByToken(
	ctx context.Context,
	token string,
	offset, limit int,
) ([]*mediaDomain.MediaItem, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, created_by_token, title, description, created_on, updated_on
			  FROM media_items
			  WHERE created_by_token = $1
			  ORDER BY created_on ASC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, token, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list media items")
	}
	defer rows.Close()

	var items []*mediaDomain.MediaItem
	for rows.Next() {
		var item mediaDomain.MediaItem
		if err := rows.Scan(
			&item.ID,
			&item.CreatedByToken,
			&item.Title,
			&item.Description,
			&item.CreatedOn,
			&item.UpdatedOn,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan media item")
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate media items")
	}

	return items, nil
}

// CountByToken returns the total number of items owned by token.
func (p *PostgreSQLMediaItemRepository) CountByToken(ctx context.Context, token string) (int, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*) FROM media_items WHERE created_by_token = $1`

	var count int
	if err := querier.QueryRowContext(ctx, query, token).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count media items")
	}

	return count, nil
}
