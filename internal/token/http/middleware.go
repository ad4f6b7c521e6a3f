package http

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/syter/media/internal/errors"
	"github.com/syter/media/internal/httputil"
	tokenDomain "github.com/syter/media/internal/token/domain"
	tokenUseCase "github.com/syter/media/internal/token/usecase"
)

// ExtractToken returns the bearer token from the Authorization header.
// The header may carry the raw token or prefix it with "Bearer "
// (case-insensitive); both forms resolve to the same token.
func ExtractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")

	const bearerPrefix = "bearer "
	if len(header) >= len(bearerPrefix) && strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return header[len(bearerPrefix):]
	}

	return header
}

// TokenRequired ensures the request carries a token that exists. The resolved
// bearer is stored in the request context for downstream handlers.
//
// Activity and expiry are deliberately not checked here; use TokenValid for
// routes that require a live token.
func TokenRequired(useCase tokenUseCase.UseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := resolveBearer(c, useCase, logger); !ok {
			return
		}

		c.Next()
	}
}

// TokenValid ensures the request carries a token that exists, is active, and
// is not expired.
func TokenValid(useCase tokenUseCase.UseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer, ok := resolveBearer(c, useCase, logger)
		if !ok {
			return
		}

		if !bearer.Info.IsActive {
			httputil.HandleErrorGin(c, tokenDomain.ErrTokenDeactivated, logger)
			c.Abort()
			return
		}

		if bearer.Info.ExpiresAt != nil && bearer.Info.ExpiresAt.Before(time.Now().UTC()) {
			httputil.HandleErrorGin(c, tokenDomain.ErrTokenExpired, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

// resolveBearer extracts and looks up the request token, storing the bearer in
// the request context. On failure the response is already written and the
// request aborted.
func resolveBearer(c *gin.Context, useCase tokenUseCase.UseCase, logger *slog.Logger) (*Bearer, bool) {
	token := ExtractToken(c)
	if token == "" {
		logger.Debug("guard rejected request: missing authorization header")
		httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrUnauthorized, "authorization token is required"), logger)
		c.Abort()
		return nil, false
	}

	info, err := useCase.FindInfo(c.Request.Context(), token)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			// An unknown token is an authentication failure, not a missing
			// resource.
			err = apperrors.Wrap(apperrors.ErrUnauthorized, "invalid authorization token")
		}
		logger.Debug("guard rejected request", slog.Any("error", err))
		httputil.HandleErrorGin(c, err, logger)
		c.Abort()
		return nil, false
	}

	bearer := &Bearer{Token: token, Info: info}
	c.Request = c.Request.WithContext(WithBearer(c.Request.Context(), bearer))

	return bearer, true
}
