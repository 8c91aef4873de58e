package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"alumni-reunion/internal/core/server"
	mdw "alumni-reunion/internal/transport/http/middleware"
)

func NewAPIEngine(d *Deps) *gin.Engine {
	r := server.NewRouter(d.Log, server.Options{AllowOrigins: d.CORSOrigins})
	r.Use(commonMiddleware(d)...)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	Modules(d).MountAllAPI(api)
	return r
}

func commonMiddleware(d *Deps) []gin.HandlerFunc {
	timeout := d.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	limit := d.BodyLimit
	if limit <= 0 {
		limit = 16 << 20
	}
	return []gin.HandlerFunc{
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.RateLimitPerIP(20, 40),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(limit, map[string]int64{UploadRoute: d.UploadLimit}),
		mdw.Timeout(timeout),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
		mdw.Identity(d.Resolver),
	}
}
