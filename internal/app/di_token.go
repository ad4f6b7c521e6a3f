package app

import (
	"fmt"

	tokenRepository "github.com/syter/media/internal/token/repository"
	tokenUseCase "github.com/syter/media/internal/token/usecase"
)

// TokenRepository returns the auth token repository based on database driver.
func (c *Container) TokenRepository() (tokenUseCase.AuthTokenRepository, error) {
	var err error
	c.tokenRepoInit.Do(func() {
		c.tokenRepo, err = c.initTokenRepository()
		if err != nil {
			c.initErrors["tokenRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenRepo"]; exists {
		return nil, storedErr
	}
	return c.tokenRepo, nil
}

// TokenUseCase returns the token use case.
func (c *Container) TokenUseCase() (tokenUseCase.UseCase, error) {
	var err error
	c.tokenUCInit.Do(func() {
		c.tokenUC, err = c.initTokenUseCase()
		if err != nil {
			c.initErrors["tokenUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.tokenUC, nil
}

// initTokenRepository creates the auth token repository instance.
func (c *Container) initTokenRepository() (tokenUseCase.AuthTokenRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for token repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return tokenRepository.NewMySQLTokenRepository(db), nil
	case "postgres":
		return tokenRepository.NewPostgreSQLTokenRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initTokenUseCase creates the token use case with all its dependencies.
func (c *Container) initTokenUseCase() (tokenUseCase.UseCase, error) {
	tokenRepo, err := c.TokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get token repository for token use case: %w", err)
	}

	baseUseCase := tokenUseCase.NewTokenUseCase(tokenRepo)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for token use case: %w", err)
		}
		return tokenUseCase.NewTokenUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
