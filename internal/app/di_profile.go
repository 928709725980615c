package app

import (
	"fmt"

	profileHTTP "github.com/addislabs/placement/internal/profile/http"
	profileRepository "github.com/addislabs/placement/internal/profile/repository"
	profileUsecase "github.com/addislabs/placement/internal/profile/usecase"
)

// MaidRepository returns the maid profile repository based on the database
// driver.
func (c *Container) MaidRepository() (profileUsecase.MaidRepository, error) {
	c.maidRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["maidRepo"] = fmt.Errorf("failed to get database for maid repository: %w", err)
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.maidRepo = profileRepository.NewMySQLMaidRepository(db)
		case "postgres":
			c.maidRepo = profileRepository.NewPostgreSQLMaidRepository(db)
		default:
			c.initErrors["maidRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["maidRepo"]; exists {
		return nil, storedErr
	}
	return c.maidRepo, nil
}

// SponsorRepository returns the sponsor profile repository based on the
// database driver.
func (c *Container) SponsorRepository() (profileUsecase.SponsorRepository, error) {
	c.sponsorRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["sponsorRepo"] = fmt.Errorf("failed to get database for sponsor repository: %w", err)
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.sponsorRepo = profileRepository.NewMySQLSponsorRepository(db)
		case "postgres":
			c.sponsorRepo = profileRepository.NewPostgreSQLSponsorRepository(db)
		default:
			c.initErrors["sponsorRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["sponsorRepo"]; exists {
		return nil, storedErr
	}
	return c.sponsorRepo, nil
}

// AgencyRepository returns the agency profile repository based on the
// database driver.
func (c *Container) AgencyRepository() (profileUsecase.AgencyRepository, error) {
	c.agencyRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["agencyRepo"] = fmt.Errorf("failed to get database for agency repository: %w", err)
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.agencyRepo = profileRepository.NewMySQLAgencyRepository(db)
		case "postgres":
			c.agencyRepo = profileRepository.NewPostgreSQLAgencyRepository(db)
		default:
			c.initErrors["agencyRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["agencyRepo"]; exists {
		return nil, storedErr
	}
	return c.agencyRepo, nil
}

// MaidUseCase returns the maid profile use case.
func (c *Container) MaidUseCase() (profileUsecase.MaidProfileUseCase, error) {
	c.maidUseCaseInit.Do(func() {
		maidRepo, err := c.MaidRepository()
		if err != nil {
			c.initErrors["maidUseCase"] = fmt.Errorf("failed to get maid repository for maid use case: %w", err)
			return
		}
		documentStore, err := c.DocumentStore()
		if err != nil {
			c.initErrors["maidUseCase"] = fmt.Errorf("failed to get document store for maid use case: %w", err)
			return
		}
		c.maidUseCase = profileUsecase.NewMaidProfileUseCase(maidRepo, documentStore)
	})
	if storedErr, exists := c.initErrors["maidUseCase"]; exists {
		return nil, storedErr
	}
	return c.maidUseCase, nil
}

// SponsorUseCase returns the sponsor profile use case.
func (c *Container) SponsorUseCase() (profileUsecase.SponsorProfileUseCase, error) {
	c.sponsorUseCaseInit.Do(func() {
		sponsorRepo, err := c.SponsorRepository()
		if err != nil {
			c.initErrors["sponsorUseCase"] = fmt.Errorf("failed to get sponsor repository for sponsor use case: %w", err)
			return
		}
		maidRepo, err := c.MaidRepository()
		if err != nil {
			c.initErrors["sponsorUseCase"] = fmt.Errorf("failed to get maid repository for sponsor use case: %w", err)
			return
		}
		c.sponsorUseCase = profileUsecase.NewSponsorProfileUseCase(sponsorRepo, maidRepo)
	})
	if storedErr, exists := c.initErrors["sponsorUseCase"]; exists {
		return nil, storedErr
	}
	return c.sponsorUseCase, nil
}

// AgencyUseCase returns the agency profile use case.
func (c *Container) AgencyUseCase() (profileUsecase.AgencyProfileUseCase, error) {
	c.agencyUseCaseInit.Do(func() {
		agencyRepo, err := c.AgencyRepository()
		if err != nil {
			c.initErrors["agencyUseCase"] = fmt.Errorf("failed to get agency repository for agency use case: %w", err)
			return
		}
		documentStore, err := c.DocumentStore()
		if err != nil {
			c.initErrors["agencyUseCase"] = fmt.Errorf("failed to get document store for agency use case: %w", err)
			return
		}
		c.agencyUseCase = profileUsecase.NewAgencyProfileUseCase(agencyRepo, documentStore)
	})
	if storedErr, exists := c.initErrors["agencyUseCase"]; exists {
		return nil, storedErr
	}
	return c.agencyUseCase, nil
}

// MaidHandler returns the maid profile HTTP handler.
func (c *Container) MaidHandler() (*profileHTTP.MaidHandler, error) {
	c.maidHandlerInit.Do(func() {
		useCase, err := c.MaidUseCase()
		if err != nil {
			c.initErrors["maidHandler"] = fmt.Errorf("failed to get maid use case for maid handler: %w", err)
			return
		}
		c.maidHandler = profileHTTP.NewMaidHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["maidHandler"]; exists {
		return nil, storedErr
	}
	return c.maidHandler, nil
}

// SponsorHandler returns the sponsor profile HTTP handler.
func (c *Container) SponsorHandler() (*profileHTTP.SponsorHandler, error) {
	c.sponsorHandlerInit.Do(func() {
		useCase, err := c.SponsorUseCase()
		if err != nil {
			c.initErrors["sponsorHandler"] = fmt.Errorf("failed to get sponsor use case for sponsor handler: %w", err)
			return
		}
		c.sponsorHandler = profileHTTP.NewSponsorHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["sponsorHandler"]; exists {
		return nil, storedErr
	}
	return c.sponsorHandler, nil
}

// AgencyHandler returns the agency profile HTTP handler.
func (c *Container) AgencyHandler() (*profileHTTP.AgencyHandler, error) {
	c.agencyHandlerInit.Do(func() {
		useCase, err := c.AgencyUseCase()
		if err != nil {
			c.initErrors["agencyHandler"] = fmt.Errorf("failed to get agency use case for agency handler: %w", err)
			return
		}
		c.agencyHandler = profileHTTP.NewAgencyHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["agencyHandler"]; exists {
		return nil, storedErr
	}
	return c.agencyHandler, nil
}
