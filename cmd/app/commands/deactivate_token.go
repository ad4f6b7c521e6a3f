package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	tokenUseCase "github.com/syter/media/internal/token/usecase"
)

// RunDeactivateToken permanently deactivates an authorization token.
// Deactivation is idempotent: deactivating an already-inactive token succeeds.
//
// Requirements: Database must be migrated and accessible.
func RunDeactivateToken(
	ctx context.Context,
	useCase tokenUseCase.UseCase,
	logger *slog.Logger,
	writer io.Writer,
	token string,
) error {
	if token == "" {
		return fmt.Errorf("token is required")
	}

	logger.Info("deactivating token")

	if err := useCase.Deactivate(ctx, token); err != nil {
		return fmt.Errorf("failed to deactivate token: %w", err)
	}

	fmt.Fprintf(writer, "Token deactivated successfully.\n")

	logger.Info("token deactivated successfully")

	return nil
}
