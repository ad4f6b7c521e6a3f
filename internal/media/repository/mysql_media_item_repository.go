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

// MySQLMediaItemRepository implements MediaItem persistence for MySQL.
// Uses BINARY(16) for UUIDs with transaction support via database.GetTx().
type MySQLMediaItemRepository struct {
	db *sql.DB
}

// NewMySQLMediaItemRepository creates a new MySQL MediaItem repository.
func NewMySQLMediaItemRepository(db *sql.DB) *MySQLMediaItemRepository {
	return &MySQLMediaItemRepository{db: db}
}

// Create inserts a new MediaItem using BINARY(16) for the UUID primary key.
func (m *MySQLMediaItemRepository) Create(ctx context.Context, item *mediaDomain.MediaItem) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO media_items (id, created_by_token, title, description, created_on, updated_on)
			  VALUES (?, ?, ?, ?, ?, ?)`

	id, err := item.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal media item id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLMediaItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*mediaDomain.MediaItem, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, created_by_token, title, description, created_on, updated_on
			  FROM media_items WHERE id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal media item id")
	}

	var item mediaDomain.MediaItem
	var scannedID []byte

	err = querier.QueryRowContext(ctx, query, idBytes).Scan(
		&scannedID,
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

	if err := item.ID.UnmarshalBinary(scannedID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal media item id")
	}

	return &item, nil
}

// Update persists the mutable metadata of an existing MediaItem.
func (m *MySQLMediaItemRepository) Update(ctx context.Context, item *mediaDomain.MediaItem) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE media_items
			  SET title = ?,
			  	  description = ?,
				  updated_on = ?
			  WHERE id = ?`

	id, err := item.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal media item id")
	}

	if _, err := querier.ExecContext(ctx, query, item.Title, item.Description, item.UpdatedOn, id); err != nil {
		return apperrors.Wrap(err, "failed to update media item")
	}

	return nil
}

// Delete removes the MediaItem row.
func (m *MySQLMediaItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM media_items WHERE id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal media item id")
	}

	if _, err := querier.ExecContext(ctx, query, idBytes); err != nil {
		return apperrors.Wrap(err, "failed to delete media item")
	}

	return nil
}

// ListByToken returns the items owned by token in creation order ascending,
// sliced by offset and limit.
func (m *MySQLMediaItemRepository) ListByToken(
	ctx context.Context,
	token string,
	offset, limit int,
) ([]*mediaDomain.MediaItem, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, created_by_token, title, description, created_on, updated_on
			  FROM media_items
			  WHERE created_by_token = ?
			  ORDER BY created_on ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, token, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list media items")
	}
	defer rows.Close()

	var items []*mediaDomain.MediaItem
	for rows.Next() {
		var item mediaDomain.MediaItem
		var scannedID []byte

		if err := rows.Scan(
			&scannedID,
			&item.CreatedByToken,
			&item.Title,
			&item.Description,
			&item.CreatedOn,
			&item.UpdatedOn,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan media item")
		}

		if err := item.ID.UnmarshalBinary(scannedID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal media item id")
		}

		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate media items")
	}

	return items, nil
}

// CountByToken returns the total number of items owned by token.
func (m *MySQLMediaItemRepository) CountByToken(ctx context.Context, token string) (int, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT COUNT(*) FROM media_items WHERE created_by_token = ?`

	var count int
	if err := querier.QueryRowContext(ctx, query, token).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count media items")
	}

	return count, nil
}
