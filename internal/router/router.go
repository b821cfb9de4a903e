package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clinicsync/records-api/internal/handler"
	authHandler "github.com/clinicsync/records-api/internal/handler/auth"
	consultationHandler "github.com/clinicsync/records-api/internal/handler/consultation"
	dashboardHandler "github.com/clinicsync/records-api/internal/handler/dashboard"
	followupHandler "github.com/clinicsync/records-api/internal/handler/followup"
	patientHandler "github.com/clinicsync/records-api/internal/handler/patient"
	"github.com/clinicsync/records-api/internal/middleware"
)

type Router struct {
	engine        *gin.Engine
	auth          *middleware.AuthMiddleware
	authH         *authHandler.Handler
	patientH      *patientHandler.Handler
	consultationH *consultationHandler.Handler
	followupH     *followupHandler.Handler
	dashboardH    *dashboardHandler.Handler
	h             *handler.Handler
	metrics       *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
	MetricsPrefix  string
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH *authHandler.Handler,
	patientH *patientHandler.Handler,
	consultationH *consultationHandler.Handler,
	followupH *followupHandler.Handler,
	dashboardH *dashboardHandler.Handler,
	h *handler.Handler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	r := &Router{
		engine:        engine,
		auth:          auth,
		authH:         authH,
		patientH:      patientH,
		consultationH: consultationH,
		followupH:     followupH,
		dashboardH:    dashboardH,
		h:             h,
		metrics:       initRouterMetrics(config.MetricsPrefix),
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
	)

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:   config.RateLimitRPS,
		Burst: config.RateLimitBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.GET("/health", r.h.HealthCheck)
	api.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	r.authH.RegisterRoutes(api)

	// Protected routes
	protected := api.Group("")
	protected.Use(r.auth.Authenticate())

	r.authH.RegisterProtectedRoutes(protected)
	r.patientH.RegisterRoutes(protected)
	r.consultationH.RegisterRoutes(protected)
	r.followupH.RegisterRoutes(protected)
	r.dashboardH.RegisterRoutes(protected)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	if prefix == "" {
		prefix = "records_api"
	}
	return &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	prometheus.MustRegister(r.metrics.requestDuration, r.metrics.requestTotal, r.metrics.errorTotal)

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		if c.Writer.Status() >= 500 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path).Inc()
		}
	}
}
