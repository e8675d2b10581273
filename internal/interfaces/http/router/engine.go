package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/salescrm/backend/internal/infrastructure/cache"
	"github.com/salescrm/backend/internal/infrastructure/config"
	"github.com/salescrm/backend/internal/infrastructure/logger"
	"github.com/salescrm/backend/internal/interfaces/http/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Options configures the engine's middleware stack
type Options struct {
	ServiceName    string
	HTTP           config.HTTPConfig
	SwaggerEnabled bool
	HSTS           bool
	Profiling      bool
	Logger         *zap.Logger
	Auth           *middleware.Authenticator
	RateLimiter    cache.RateLimiter
	Metrics        *middleware.HTTPMetrics
}

// NewEngine builds the gin engine with the global middleware, the public
// system routes and the authenticated /api/v1 tree.
func NewEngine(opts Options, h Handlers) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if len(opts.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(opts.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Order matters: the request id and span must exist before the request logger is built.
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(opts.ServiceName))
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SpanAttributes())
	if opts.Metrics != nil {
		engine.Use(opts.Metrics.Middleware())
	}
	engine.Use(middleware.Secure(opts.HSTS))
	engine.Use(middleware.CORS(middleware.CORSConfigFrom(opts.HTTP)))
	if opts.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(opts.HTTP.MaxBodySize))
	}

	engine.GET("/health", h.System.Health)
	engine.GET("/swagger/*any", middleware.SwaggerGate(opts.SwaggerEnabled), ginSwagger.WrapHandler(swaggerFiles.Handler))

	r := NewRouter(engine, WithAPIVersion("v1"))
	r.Register(NewDomainGroup("system", "").GET("/ping", h.System.Ping))
	g := guards(opts, log)
	r.Register(SessionRoutes(h, g), WorkspaceRoutes(h, g))
	r.Setup()

	return engine
}

func guards(opts Options, log *zap.Logger) Guards {
	chain := []gin.HandlerFunc{opts.Auth.RequireWorkspace()}
	if opts.HTTP.RateLimitEnabled && opts.RateLimiter != nil {
		window := opts.HTTP.RateLimitWindow
		if window <= 0 {
			window = time.Minute
		}
		chain = append(chain, middleware.RateLimit(opts.RateLimiter, opts.HTTP.RateLimitRequests, window))
		log.Info("Rate limiting enabled",
			zap.Int("requests", opts.HTTP.RateLimitRequests),
			zap.Duration("window", window),
		)
	}
	if opts.Profiling {
		chain = append(chain, middleware.Profiling())
	}
	return Guards{
		Session:   []gin.HandlerFunc{opts.Auth.RequireSession()},
		Workspace: chain,
		Manager:   middleware.RequireManager(),
	}
}
