// Package http provides HTTP handlers for media item operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/syter/media/internal/errors"
	"github.com/syter/media/internal/httputil"
	mediaDomain "github.com/syter/media/internal/media/domain"
	"github.com/syter/media/internal/media/http/dto"
	mediaUseCase "github.com/syter/media/internal/media/usecase"
	tokenHTTP "github.com/syter/media/internal/token/http"
)

// MediaHandler handles HTTP requests for media item operations.
type MediaHandler struct {
	useCase mediaUseCase.UseCase
	logger  *slog.Logger
}

// NewMediaHandler creates a new media handler with required dependencies.
func NewMediaHandler(useCase mediaUseCase.UseCase, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{useCase: useCase, logger: logger}
}

// UploadHandler stores a new media item from a multipart form.
// POST /media/upload - requires TokenValid.
// Form fields: file (required), title, description.
func (h *MediaHandler) UploadHandler(c *gin.Context) {
	bearer, ok := tokenHTTP.GetBearer(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	req := dto.UploadMediaItemRequest{
		Title:       formField(c, "title"),
		Description: formField(c, "description"),
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httputil.HandleErrorGin(c, mediaDomain.ErrFileNullOrEmpty, h.logger)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrInvalidInput, "could not read uploaded file"), h.logger)
		return
	}
	defer file.Close()

	input := &mediaDomain.UploadInput{
		Title:       req.Title,
		Description: req.Description,
		FileName:    fileHeader.Filename,
		File:        file,
		FileSize:    fileHeader.Size,
	}

	id, err := h.useCase.Upload(c.Request.Context(), bearer.Token, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.UploadMediaItemResponse{ID: id.String()})
}

// PreviewHandler streams a previewable rendition of the item's content.
// GET /media/:id/preview
func (h *MediaHandler) PreviewHandler(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	preview, err := h.useCase.PreviewStream(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	defer preview.Stream.Close()

	c.DataFromReader(http.StatusOK, -1, preview.ContentType, preview.Stream, nil)
}

// DownloadHandler streams the item's content as an attachment.
// GET /media/:id/download
func (h *MediaHandler) DownloadHandler(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	download, err := h.useCase.DownloadStream(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	defer download.Stream.Close()

	headers := map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", download.FileName),
	}
	c.DataFromReader(http.StatusOK, -1, download.ContentType, download.Stream, headers)
}

// InfoHandler returns the metadata view of an item.
// GET /media/:id/info
func (h *MediaHandler) InfoHandler(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	info, err := h.useCase.GetInfo(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MediaItemInfoResponse{
		ID:             info.ID.String(),
		CreatedByToken: info.CreatedByToken,
		Title:          info.Title,
		Description:    info.Description,
	})
}

// ItemsByTokenHandler lists the caller's items in creation order.
// GET /media/items-by-token - requires TokenValid.
// Query parameters: page (default 1), page_size (default 10).
func (h *MediaHandler) ItemsByTokenHandler(c *gin.Context) {
	bearer, ok := tokenHTTP.GetBearer(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	page, pageSize, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	result, err := h.useCase.ByToken(c.Request.Context(), bearer.Token, page, pageSize)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(result))
}

// ModifyHandler replaces the item's title and description.
// PUT /media/:id/modify - requires TokenValid.
func (h *MediaHandler) ModifyHandler(c *gin.Context) {
	bearer, ok := tokenHTTP.GetBearer(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	id, ok := h.itemID(c)
	if !ok {
		return
	}

	var req dto.ModifyMediaItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	input := &mediaDomain.ModifyInput{
		Title:       req.Title,
		Description: req.Description,
	}

	if err := h.useCase.Modify(c.Request.Context(), id, bearer.Token, input); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteHandler removes the item's metadata and content.
// DELETE /media/:id/delete - requires TokenValid.
func (h *MediaHandler) DeleteHandler(c *gin.Context) {
	bearer, ok := tokenHTTP.GetBearer(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	id, ok := h.itemID(c)
	if !ok {
		return
	}

	if err := h.useCase.Delete(c.Request.Context(), id, bearer.Token); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// itemID parses the :id path parameter. On failure the response is already
// written.
func (h *MediaHandler) itemID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid id format: must be a valid UUID"),
			h.logger)
		return uuid.Nil, false
	}

	return id, true
}

// formField returns a pointer to the form field value, or nil when the field
// was not sent.
func formField(c *gin.Context, name string) *string {
	if value, ok := c.GetPostForm(name); ok {
		return &value
	}
	return nil
}
