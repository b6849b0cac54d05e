package router

import (
	userapp "github.com/CamiloTello002/Talent-Trade/internal/application"
	"github.com/CamiloTello002/Talent-Trade/internal/container"
	pginfra "github.com/CamiloTello002/Talent-Trade/internal/infrastructure/postgres"
	handlers "github.com/CamiloTello002/Talent-Trade/internal/interface/http"
	"github.com/CamiloTello002/Talent-Trade/internal/router/modules"
)

// InitModules constructs repositories, services and handlers from the
// container's infra handles and registers every feature module.
// Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	tradeRepo := pginfra.NewTradeRepository(container.GetPGPool())
	categoryRepo := pginfra.NewCategoryRepository(container.GetPGPool())

	authSvc := userapp.NewAuthService(userRepo, container.GetJWT(), container.GetRedis(), logger)
	userSvc := userapp.NewUserService(
		userRepo,
		tradeRepo,
		container.GetJWT(),
		container.GetRabbitPub(),
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetRedis(),
		logger,
		container.GetES(),
		cfg.ESUsersIndex,
		cfg,
	)
	tradeSvc := userapp.NewTradeService(tradeRepo, userRepo, logger)

	userHandler := handlers.NewUserHandler(userSvc, authSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	authHandler := handlers.NewAuthHandler(authSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	tradeHandler := handlers.NewTradeHandler(tradeSvc, logger)
	categoryHandler := handlers.NewCategoryHandler(categoryRepo, logger)

	r.Add(modules.NewUserModule(userHandler, categoryRepo, container.GetJWT()))
	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
	r.Add(modules.NewTradeModule(tradeHandler, container.GetJWT()))
	r.Add(modules.NewCategoryModule(categoryHandler))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
