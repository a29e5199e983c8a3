package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chat4g/internal/app/infrastructure/config"
	"chat4g/internal/app/ports"
	"chat4g/pkg/logger"
)

// Router is the admin surface: a status page, basic-auth metrics and pprof.
type Router struct {
	router *gin.Engine

	log      logger.Logger
	manager  *config.Manager
	registry ports.RegistryPort
	started  time.Time
}

func NewRouter(log logger.Logger, manager *config.Manager, registry ports.RegistryPort) *Router {
	r := &Router{
		router:   gin.Default(),
		log:      log,
		manager:  manager,
		registry: registry,
		started:  time.Now(),
	}
	cfg := manager.Get()

	pprofGroup := r.router.Group("/", gin.BasicAuth(gin.Accounts{
		"admin": cfg.HTTP.AuthToken,
	}))
	pprof.Register(pprofGroup)

	r.router.GET("/metrics", gin.BasicAuth(gin.Accounts{
		"admin": cfg.HTTP.AuthToken,
	}), gin.WrapH(promhttp.Handler()))

	r.router.GET("/", r.statusHandler)
	return r
}

func (r *Router) statusHandler(c *gin.Context) {
	cfg := r.manager.Get()

	c.JSON(http.StatusOK, gin.H{
		"channel":        cfg.App.Channel,
		"uptime_seconds": int(time.Since(r.started).Seconds()),
		"viewers":        r.registry.Len(),
		"log_level":      r.log.GetLogLevel(),
	})
}

func (r *Router) Run() error {
	return r.router.Run(r.manager.Get().HTTP.Addr)
}
