package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/syter/media/internal/errors"
	"github.com/syter/media/internal/httputil"
	tokenDomain "github.com/syter/media/internal/token/domain"
	"github.com/syter/media/internal/token/http/dto"
	tokenUseCase "github.com/syter/media/internal/token/usecase"
)

// TokenHandler handles HTTP requests for token operations.
type TokenHandler struct {
	useCase tokenUseCase.UseCase
	logger  *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(useCase tokenUseCase.UseCase, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{useCase: useCase, logger: logger}
}

// CreateTokenHandler creates a new named token.
// POST /tokens/create-token
// Returns 201 Created with the plain token, the only time it is exposed.
func (h *TokenHandler) CreateTokenHandler(c *gin.Context) {
	var req dto.CreateTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	input := &tokenDomain.CreateTokenInput{
		Name:      req.Name,
		ExpiresAt: req.ExpiresAt,
	}

	output, err := h.useCase.Create(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateTokenResponse{Token: output.Token})
}

// TokenInfoHandler returns the read-only view of the caller's token.
// GET /tokens/info - requires TokenRequired.
func (h *TokenHandler) TokenInfoHandler(c *gin.Context) {
	bearer, ok := GetBearer(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.TokenInfoResponse{
		Name:        bearer.Info.Name,
		ExpiresAt:   bearer.Info.ExpiresAt,
		IsActive:    bearer.Info.IsActive,
		Permissions: int(bearer.Info.Permissions),
	})
}

// ChangePermissionsHandler replaces the permission bitset of a target token.
// PUT /tokens/change-permissions - requires TokenRequired; the caller must hold
// the manage-permissions capability.
func (h *TokenHandler) ChangePermissionsHandler(c *gin.Context) {
	bearer, ok := GetBearer(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.ChangePermissionsRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	err := h.useCase.ChangePermissions(
		c.Request.Context(),
		req.TargetToken,
		tokenDomain.Permission(req.Permissions),
		bearer.Token,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeactivateTokenHandler permanently deactivates the caller's token.
// DELETE /tokens/deactivate-token
func (h *TokenHandler) DeactivateTokenHandler(c *gin.Context) {
	token := ExtractToken(c)
	if token == "" {
		httputil.HandleErrorGin(
			c,
			apperrors.Wrap(apperrors.ErrUnauthorized, "authorization token is required"),
			h.logger,
		)
		return
	}

	if err := h.useCase.Deactivate(c.Request.Context(), token); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
