package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alumni-reunion/internal/core/server"
)

// NewAdminEngine serves /admin/v1. Every admin action carries an admin-only policy.
func NewAdminEngine(d *Deps) *gin.Engine {
	r := server.NewRouter(d.Log, server.Options{AllowOrigins: d.CORSOrigins})
	r.Use(commonMiddleware(d)...)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	admin := r.Group("/admin/v1")
	Modules(d).MountAllAdmin(admin)
	return r
}
