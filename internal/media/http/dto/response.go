package dto

import (
	"time"

	"github.com/syter/media/internal/media/domain"
)

// UploadMediaItemResponse carries the identifier of a freshly uploaded item.
type UploadMediaItemResponse struct {
	ID string `json:"id"`
}

// MediaItemInfoResponse represents the metadata view of an item.
type MediaItemInfoResponse struct {
	ID             string  `json:"id"`
	CreatedByToken string  `json:"created_by_token"`
	Title          *string `json:"title,omitempty"`
	Description    *string `json:"description,omitempty"`
}

// MediaItemResponse represents one item in a listing.
type MediaItemResponse struct {
	ID          string     `json:"id"`
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	CreatedOn   time.Time  `json:"created_on"`
	UpdatedOn   *time.Time `json:"updated_on,omitempty"`
}

// PageResponse represents one page of a token's items.
type PageResponse struct {
	Items      []MediaItemResponse `json:"items"`
	PageNumber int                 `json:"page_number"`
	PageSize   int                 `json:"page_size"`
	TotalItems int                 `json:"total_items"`
	TotalPages int                 `json:"total_pages"`
}

// NewPageResponse maps a domain page to its response shape.
func NewPageResponse(page *domain.Page) PageResponse {
	items := make([]MediaItemResponse, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, MediaItemResponse{
			ID:          item.ID.String(),
			Title:       item.Title,
			Description: item.Description,
			CreatedOn:   item.CreatedOn,
			UpdatedOn:   item.UpdatedOn,
		})
	}

	return PageResponse{
		Items:      items,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}
}
