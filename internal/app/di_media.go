package app

import (
	"fmt"

	"github.com/syter/media/internal/media/filestore"
	mediaRepository "github.com/syter/media/internal/media/repository"
	mediaUseCase "github.com/syter/media/internal/media/usecase"
)

// MediaRepository returns the media item repository based on database driver.
func (c *Container) MediaRepository() (mediaUseCase.MediaItemRepository, error) {
	var err error
	c.mediaRepoInit.Do(func() {
		c.mediaRepo, err = c.initMediaRepository()
		if err != nil {
			c.initErrors["mediaRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["mediaRepo"]; exists {
		return nil, storedErr
	}
	return c.mediaRepo, nil
}

// MediaUseCase returns the media use case.
func (c *Container) MediaUseCase() (mediaUseCase.UseCase, error) {
	var err error
	c.mediaUCInit.Do(func() {
		c.mediaUC, err = c.initMediaUseCase()
		if err != nil {
			c.initErrors["mediaUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["mediaUseCase"]; exists {
		return nil, storedErr
	}
	return c.mediaUC, nil
}

// initMediaRepository creates the media item repository instance.
func (c *Container) initMediaRepository() (mediaUseCase.MediaItemRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for media repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return mediaRepository.NewMySQLMediaItemRepository(db), nil
	case "postgres":
		return mediaRepository.NewPostgreSQLMediaItemRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initMediaUseCase creates the media use case with all its dependencies.
func (c *Container) initMediaUseCase() (mediaUseCase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for media use case: %w", err)
	}

	mediaRepo, err := c.MediaRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get media repository for media use case: %w", err)
	}

	tokenUC, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for media use case: %w", err)
	}

	blobs := filestore.New(c.config.StorageRoot, c.config.StorageFallbackImage)

	policy := mediaUseCase.UploadPolicy{
		MaxFileSize:       c.config.UploadMaxFileSize,
		BlockedExtensions: c.config.BlockedExtensions(),
	}

	baseUseCase := mediaUseCase.NewMediaUseCase(mediaRepo, blobs, tokenUC, txManager, policy)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for media use case: %w", err)
		}
		return mediaUseCase.NewMediaUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
