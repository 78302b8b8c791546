package fx

import (
	"context"
	"errors"
	"net/http"

	"Finboard/config"
	"Finboard/internal/logger"
	"Finboard/internal/middleware"
	"Finboard/internal/routes"

	docs "Finboard/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"go.uber.org/fx"
)

// ServerModule builds the gin router and runs the HTTP server for the app lifetime.
var ServerModule = fx.Module("server",
	fx.Provide(
		newRouter,
	),
	fx.Invoke(
		setupRoutes,
		startServer,
	),
)

func newRouter(cfg *config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS))
	return router
}

func setupRoutes(
	router *gin.Engine,
	handler *routes.Handler,
	publicLimiter middleware.PublicRateLimiter,
	userLimiter middleware.UserRateLimiter,
) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.Register(router, handler, publicLimiter.RateLimiter, userLimiter.RateLimiter)
}

func startServer(lc fx.Lifecycle, cfg *config.Config, router *gin.Engine) {
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info().
				Str("address", server.Addr).
				Str("environment", cfg.App.Environment).
				Msg("server_starting")

			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal().Err(err).Msg("server_failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("server_stopping")

			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}
