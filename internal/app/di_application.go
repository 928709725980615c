package app

import (
	"fmt"

	applicationHTTP "github.com/addislabs/placement/internal/application/http"
	applicationRepository "github.com/addislabs/placement/internal/application/repository"
	applicationUsecase "github.com/addislabs/placement/internal/application/usecase"
)

// ApplicationRepository returns the job application repository based on the
// database driver.
func (c *Container) ApplicationRepository() (applicationUsecase.ApplicationRepository, error) {
	c.applicationRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["applicationRepo"] = fmt.Errorf("failed to get database for application repository: %w", err)
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.applicationRepo = applicationRepository.NewMySQLApplicationRepository(db)
		case "postgres":
			c.applicationRepo = applicationRepository.NewPostgreSQLApplicationRepository(db)
		default:
			c.initErrors["applicationRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["applicationRepo"]; exists {
		return nil, storedErr
	}
	return c.applicationRepo, nil
}

// ApplicationUseCase returns the job application use case wrapped with
// business metrics.
func (c *Container) ApplicationUseCase() (applicationUsecase.ApplicationUseCase, error) {
	c.applicationUseCaseInit.Do(func() {
		applicationRepo, err := c.ApplicationRepository()
		if err != nil {
			c.initErrors["applicationUseCase"] = fmt.Errorf("failed to get application repository for application use case: %w", err)
			return
		}
		jobRepo, err := c.JobRepository()
		if err != nil {
			c.initErrors["applicationUseCase"] = fmt.Errorf("failed to get job repository for application use case: %w", err)
			return
		}
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["applicationUseCase"] = fmt.Errorf("failed to get tx manager for application use case: %w", err)
			return
		}
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["applicationUseCase"] = fmt.Errorf("failed to get business metrics for application use case: %w", err)
			return
		}

		useCase := applicationUsecase.NewApplicationUseCase(applicationRepo, jobRepo, txManager)
		c.applicationUseCase = applicationUsecase.NewApplicationUseCaseWithMetrics(useCase, businessMetrics)
	})
	if storedErr, exists := c.initErrors["applicationUseCase"]; exists {
		return nil, storedErr
	}
	return c.applicationUseCase, nil
}

// ApplicationHandler returns the job application HTTP handler.
func (c *Container) ApplicationHandler() (*applicationHTTP.ApplicationHandler, error) {
	c.applicationHandlerInit.Do(func() {
		useCase, err := c.ApplicationUseCase()
		if err != nil {
			c.initErrors["applicationHandler"] = fmt.Errorf("failed to get application use case for application handler: %w", err)
			return
		}
		c.applicationHandler = applicationHTTP.NewApplicationHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["applicationHandler"]; exists {
		return nil, storedErr
	}
	return c.applicationHandler, nil
}
