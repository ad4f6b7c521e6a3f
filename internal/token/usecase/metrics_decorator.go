package usecase

import (
	"context"
	"time"

	"github.com/syter/media/internal/metrics"
	tokenDomain "github.com/syter/media/internal/token/domain"
)

// tokenUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a token UseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *tokenUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "token", operation, status)
	u.metrics.RecordDuration(ctx, "token", operation, time.Since(start), status)
}

// Create records metrics for token creation.
func (u *tokenUseCaseWithMetrics) Create(
	ctx context.Context,
	input *tokenDomain.CreateTokenInput,
) (*tokenDomain.CreateTokenOutput, error) {
	start := time.Now()
	output, err := u.next.Create(ctx, input)
	u.record(ctx, "create", start, err)
	return output, err
}

// FindInfo records metrics for token lookups.
func (u *tokenUseCaseWithMetrics) FindInfo(ctx context.Context, token string) (*tokenDomain.TokenInfo, error) {
	start := time.Now()
	info, err := u.next.FindInfo(ctx, token)
	u.record(ctx, "find_info", start, err)
	return info, err
}

// Deactivate records metrics for token deactivation.
func (u *tokenUseCaseWithMetrics) Deactivate(ctx context.Context, token string) error {
	start := time.Now()
	err := u.next.Deactivate(ctx, token)
	u.record(ctx, "deactivate", start, err)
	return err
}

// GetRoles records metrics for permission resolution.
func (u *tokenUseCaseWithMetrics) GetRoles(ctx context.Context, token string) (tokenDomain.Permission, error) {
	start := time.Now()
	permission, err := u.next.GetRoles(ctx, token)
	u.record(ctx, "get_roles", start, err)
	return permission, err
}

// ChangePermissions records metrics for permission changes.
func (u *tokenUseCaseWithMetrics) ChangePermissions(
	ctx context.Context,
	targetToken string,
	permissions tokenDomain.Permission,
	actingToken string,
) error {
	start := time.Now()
	err := u.next.ChangePermissions(ctx, targetToken, permissions, actingToken)
	u.record(ctx, "change_permissions", start, err)
	return err
}
