package app

import (
	"fmt"

	jobHTTP "github.com/addislabs/placement/internal/job/http"
	jobRepository "github.com/addislabs/placement/internal/job/repository"
	jobUsecase "github.com/addislabs/placement/internal/job/usecase"
)

// JobRepository returns the job posting repository based on the database
// driver.
func (c *Container) JobRepository() (jobUsecase.JobRepository, error) {
	c.jobRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["jobRepo"] = fmt.Errorf("failed to get database for job repository: %w", err)
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.jobRepo = jobRepository.NewMySQLJobRepository(db)
		case "postgres":
			c.jobRepo = jobRepository.NewPostgreSQLJobRepository(db)
		default:
			c.initErrors["jobRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["jobRepo"]; exists {
		return nil, storedErr
	}
	return c.jobRepo, nil
}

// JobUseCase returns the job posting use case.
func (c *Container) JobUseCase() (jobUsecase.JobUseCase, error) {
	c.jobUseCaseInit.Do(func() {
		jobRepo, err := c.JobRepository()
		if err != nil {
			c.initErrors["jobUseCase"] = fmt.Errorf("failed to get job repository for job use case: %w", err)
			return
		}
		c.jobUseCase = jobUsecase.NewJobUseCase(jobRepo)
	})
	if storedErr, exists := c.initErrors["jobUseCase"]; exists {
		return nil, storedErr
	}
	return c.jobUseCase, nil
}

// JobHandler returns the job posting HTTP handler.
func (c *Container) JobHandler() (*jobHTTP.JobHandler, error) {
	c.jobHandlerInit.Do(func() {
		useCase, err := c.JobUseCase()
		if err != nil {
			c.initErrors["jobHandler"] = fmt.Errorf("failed to get job use case for job handler: %w", err)
			return
		}
		c.jobHandler = jobHTTP.NewJobHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["jobHandler"]; exists {
		return nil, storedErr
	}
	return c.jobHandler, nil
}
