package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	tokenDomain "github.com/syter/media/internal/token/domain"
	tokenUseCase "github.com/syter/media/internal/token/usecase"
)

// RunCreateToken creates a new authorization token under a unique name.
// The token string is printed exactly once; it cannot be recovered later.
// An expiresIn of zero creates a non-expiring token.
//
// Requirements: Database must be migrated and accessible.
func RunCreateToken(
	ctx context.Context,
	useCase tokenUseCase.UseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	expiresIn time.Duration,
	format string,
) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if expiresIn < 0 {
		return fmt.Errorf("expires-in must not be negative")
	}

	logger.Info("creating new token", slog.String("name", name))

	input := &tokenDomain.CreateTokenInput{Name: name}
	if expiresIn > 0 {
		expiresAt := time.Now().UTC().Add(expiresIn)
		input.ExpiresAt = &expiresAt
	}

	output, err := useCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}

	if format == "json" {
		result := map[string]any{
			"name":  name,
			"token": output.Token,
		}
		if input.ExpiresAt != nil {
			result["expires_at"] = input.ExpiresAt.Format(time.RFC3339)
		}
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
	} else {
		fmt.Fprintf(writer, "Token created successfully.\n")
		fmt.Fprintf(writer, "Name:  %s\n", name)
		fmt.Fprintf(writer, "Token: %s\n", output.Token)
		if input.ExpiresAt != nil {
			fmt.Fprintf(writer, "Expires at: %s\n", input.ExpiresAt.Format(time.RFC3339))
		}
		fmt.Fprintf(writer, "\nStore this token securely, it will not be shown again.\n")
	}

	logger.Info("token created successfully", slog.String("name", name))

	return nil
}
