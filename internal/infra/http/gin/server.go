package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"stieregg/internal/infra/config"
	"stieregg/internal/infra/obs"
)

type AvailabilityHTTP interface {
	BookedRanges(c *gin.Context)
}

type CatalogHTTP interface {
	List(c *gin.Context)
	Get(c *gin.Context)
}

type InquiryHTTP interface {
	Compose(c *gin.Context)
}

type Handlers struct {
	Availability AvailabilityHTTP
	Catalog      CatalogHTTP
	Inquiry      InquiryHTTP
}

// NewServer wires the gin router: recovery, request-ID and logging
// middleware, permissive CORS (the site frontend is served from another
// origin), health endpoints and the API routes.
func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Availability != nil {
		api.GET("/availability", h.Availability.BookedRanges)
	}
	if h.Catalog != nil {
		api.GET("/apartments", h.Catalog.List)
		api.GET("/apartments/:slug", h.Catalog.Get)
	}
	if h.Inquiry != nil {
		api.GET("/inquiry", h.Inquiry.Compose)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
