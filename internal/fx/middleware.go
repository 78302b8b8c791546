package fx

import (
	"context"
	"time"

	"Finboard/config"
	"Finboard/internal/middleware"

	"go.uber.org/fx"
)

var MiddlewareModule = fx.Module("middleware",
	fx.Provide(
		middleware.NewJwtService,
		newPublicRateLimiter,
		newUserRateLimiter,
	),
)

func newPublicRateLimiter(lc fx.Lifecycle, cfg *config.Config) middleware.PublicRateLimiter {
	limiter := middleware.NewRateLimiter(cfg.RateLimit.PublicPerMinute, time.Minute)
	stopOnShutdown(lc, limiter)
	return middleware.PublicRateLimiter{RateLimiter: limiter}
}

func newUserRateLimiter(lc fx.Lifecycle, cfg *config.Config) middleware.UserRateLimiter {
	limiter := middleware.NewRateLimiter(cfg.RateLimit.UserPerMinute, time.Minute)
	stopOnShutdown(lc, limiter)
	return middleware.UserRateLimiter{RateLimiter: limiter}
}

func stopOnShutdown(lc fx.Lifecycle, limiter *middleware.RateLimiter) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			limiter.Stop()
			return nil
		},
	})
}
