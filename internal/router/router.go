package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/physiocare/physiocare-api/internal/config"
	"github.com/physiocare/physiocare-api/internal/handler/auth"
	"github.com/physiocare/physiocare-api/internal/handler/billing"
	"github.com/physiocare/physiocare-api/internal/handler/health"
	"github.com/physiocare/physiocare-api/internal/middleware"
	"github.com/physiocare/physiocare-api/pkg/metrics"
)

// Handler is anything that can attach its routes to a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine   *gin.Engine
	authMW   *middleware.AuthMiddleware
	authH    *auth.Handler
	billingH *billing.Handler
	healthH  *health.Handler
	handlers []Handler
	cfg      *config.Config
}

func NewRouter(
	cfg *config.Config,
	authMW *middleware.AuthMiddleware,
	m *metrics.Metrics,
	authH *auth.Handler,
	billingH *billing.Handler,
	healthH *health.Handler,
	handlers ...Handler,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	middleware.RegisterValidations()

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(middleware.DefaultCORSConfig()),
		middleware.Timeout(cfg.Server.RequestTimeout),
		middleware.Metrics(m),
	)

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  rate.Limit(cfg.RateLimit.RequestsPerSecond),
			Burst: cfg.RateLimit.Burst,
		})
		engine.Use(limiter.RateLimit())
	}

	return &Router{
		engine:   engine,
		authMW:   authMW,
		authH:    authH,
		billingH: billingH,
		healthH:  healthH,
		handlers: handlers,
		cfg:      cfg,
	}
}

func (r *Router) Setup() {
	if r.cfg.Monitoring.PrometheusEnabled {
		path := r.cfg.Monitoring.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.engine.GET(path, gin.WrapH(promhttp.Handler()))
	}

	api := r.engine.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.healthH.RegisterRoutes(api)

	// Public routes: authentication and the gateway callback.
	r.authH.RegisterRoutes(api)
	r.billingH.RegisterPublicRoutes(api)

	protected := api.Group("")
	protected.Use(r.authMW.Authenticate())

	r.billingH.RegisterRoutes(protected)
	for _, h := range r.handlers {
		h.RegisterRoutes(protected)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
