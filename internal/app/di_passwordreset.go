package app

import (
	"fmt"

	resetHTTP "github.com/addislabs/placement/internal/passwordreset/http"
	resetRepository "github.com/addislabs/placement/internal/passwordreset/repository"
	resetService "github.com/addislabs/placement/internal/passwordreset/service"
	resetUsecase "github.com/addislabs/placement/internal/passwordreset/usecase"
)

// TokenService returns the reset token generation service.
func (c *Container) TokenService() resetService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = resetService.NewTokenService()
	})
	return c.tokenService
}

// ResetNotifier returns the reset token delivery channel. Tokens go to the
// application log until a mail provider is wired in.
func (c *Container) ResetNotifier() resetUsecase.ResetNotifier {
	c.resetNotifierInit.Do(func() {
		c.resetNotifier = resetService.NewLogNotifier(c.Logger())
	})
	return c.resetNotifier
}

// ResetRepository returns the password reset repository based on the database
// driver.
func (c *Container) ResetRepository() (resetUsecase.ResetRepository, error) {
	c.resetRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["resetRepo"] = fmt.Errorf("failed to get database for reset repository: %w", err)
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.resetRepo = resetRepository.NewMySQLResetRepository(db)
		case "postgres":
			c.resetRepo = resetRepository.NewPostgreSQLResetRepository(db)
		default:
			c.initErrors["resetRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["resetRepo"]; exists {
		return nil, storedErr
	}
	return c.resetRepo, nil
}

// ResetUseCase returns the password reset use case.
func (c *Container) ResetUseCase() (resetUsecase.PasswordResetUseCase, error) {
	c.resetUseCaseInit.Do(func() {
		resetRepo, err := c.ResetRepository()
		if err != nil {
			c.initErrors["resetUseCase"] = fmt.Errorf("failed to get reset repository for reset use case: %w", err)
			return
		}
		userRepo, err := c.UserRepository()
		if err != nil {
			c.initErrors["resetUseCase"] = fmt.Errorf("failed to get user repository for reset use case: %w", err)
			return
		}
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["resetUseCase"] = fmt.Errorf("failed to get tx manager for reset use case: %w", err)
			return
		}

		c.resetUseCase = resetUsecase.NewPasswordResetUseCase(
			resetRepo,
			userRepo,
			c.TokenService(),
			c.PasswordService(),
			c.ResetNotifier(),
			txManager,
			c.config.PasswordResetTTL,
		)
	})
	if storedErr, exists := c.initErrors["resetUseCase"]; exists {
		return nil, storedErr
	}
	return c.resetUseCase, nil
}

// ResetHandler returns the password reset HTTP handler.
func (c *Container) ResetHandler() (*resetHTTP.ResetHandler, error) {
	c.resetHandlerInit.Do(func() {
		useCase, err := c.ResetUseCase()
		if err != nil {
			c.initErrors["resetHandler"] = fmt.Errorf("failed to get reset use case for reset handler: %w", err)
			return
		}
		c.resetHandler = resetHTTP.NewResetHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["resetHandler"]; exists {
		return nil, storedErr
	}
	return c.resetHandler, nil
}
