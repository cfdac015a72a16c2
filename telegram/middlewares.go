package telegram

import (
	"strings"
	"time"

	"github.com/m3rciful/themebot/config"
	"github.com/m3rciful/themebot/telegram/middleware"
)

// DefaultMiddlewares builds the shared middleware chain for the bot.
func DefaultMiddlewares(cfg *config.Config, counters *middleware.Counters) []Middleware {
	mws := []Middleware{
		{Name: "recover", Use: middleware.Recover},
	}

	if cfg != nil {
		interval := time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond
		if interval > 0 {
			ex := make(map[string]struct{}, len(cfg.RateLimit.ExcludeUpdates))
			for _, t := range cfg.RateLimit.ExcludeUpdates {
				ex[strings.ToLower(t)] = struct{}{}
			}
			mws = append(mws, Middleware{
				Name: "rate_limit",
				Use: middleware.RateLimit(middleware.RateLimitOptions{
					Interval: interval,
					Exclude:  ex,
				}),
			})
		}
	}

	mws = append(mws, Middleware{Name: "logger", Use: middleware.Logger})
	if counters != nil {
		mws = append(mws, Middleware{Name: "metrics", Use: middleware.Metrics(counters)})
	}

	return mws
}
