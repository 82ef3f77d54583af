package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	libredis "github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.uber.org/zap"

	"storefront-api/apierror"
	"storefront-api/config"
)

// RateLimiters holds one sliding-window gate per route class. Limits are
// enforced strictly before validation and business logic; a rejection has no
// side effects on any downstream store.
type RateLimiters struct {
	// Generic covers every API route: 100 requests / 15 min / client address.
	Generic gin.HandlerFunc
	// Auth covers register and login: 8 / 15 min, keyed by the submitted
	// email so an attacker cannot rotate source addresses, with the client
	// address as fallback.
	Auth gin.HandlerFunc
	// Search covers catalog search: 30 / 1 min / client address.
	Search gin.HandlerFunc
	// CatalogMutation covers the admin add path: 10 / 60 min / client address.
	CatalogMutation gin.HandlerFunc
}

// NewRateLimiters builds the admission-control tiers. When rate limiting is
// disabled (anything but production unless forced on) every tier degrades to a
// pass-through; that bypass is an intentional escape hatch for local
// development and test runs. Counters live in memory unless REDIS_ADDR points
// at a shared store.
func NewRateLimiters(cfg config.Config) *RateLimiters {
	if !cfg.RateLimitEnabled {
		pass := func(c *gin.Context) { c.Next() }
		return &RateLimiters{Generic: pass, Auth: pass, Search: pass, CatalogMutation: pass}
	}

	store := newStore(cfg)

	byIP := func(c *gin.Context) string { return c.ClientIP() }

	return &RateLimiters{
		Generic: tier(store, limiter.Rate{Period: 15 * time.Minute, Limit: 100}, byIP,
			"Too many requests from this IP, please try again after 15 minutes"),
		Auth: tier(store, limiter.Rate{Period: 15 * time.Minute, Limit: 8}, emailOrIP,
			"Too many login/register attempts. Please try again after 15 minutes"),
		Search: tier(store, limiter.Rate{Period: time.Minute, Limit: 30}, byIP,
			"Too many search requests. Please wait before searching again"),
		CatalogMutation: tier(store, limiter.Rate{Period: time.Hour, Limit: 10}, byIP,
			"Too many product uploads. Please try again later"),
	}
}

func newStore(cfg config.Config) limiter.Store {
	if cfg.RedisAddr == "" {
		return memorystore.NewStore()
	}
	client := libredis.NewClient(&libredis.Options{Addr: cfg.RedisAddr})
	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix: "storefront:ratelimit",
	})
	if err != nil {
		zap.L().Warn("redis limiter store unavailable, using memory store", zap.Error(err))
		return memorystore.NewStore()
	}
	return store
}

func tier(store limiter.Store, rate limiter.Rate, key func(*gin.Context) string, message string) gin.HandlerFunc {
	return mgin.NewMiddleware(
		limiter.New(store, rate),
		mgin.WithKeyGetter(key),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			apierror.Write(c, apierror.New(apierror.RateLimited, message))
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			// A broken counter store must not take the API down.
			zap.L().Error("rate limiter store error", zap.Error(err))
			c.Next()
		}),
	)
}

// emailOrIP keys auth attempts by the submitted email. The body is restored
// after peeking so binding downstream still sees it.
func emailOrIP(c *gin.Context) string {
	if c.Request.Body == nil {
		return c.ClientIP()
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
	if err != nil {
		return c.ClientIP()
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	var probe struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &probe); err != nil || probe.Email == "" {
		return c.ClientIP()
	}
	return probe.Email
}
