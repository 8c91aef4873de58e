package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"alumni-reunion/internal/core/auth"
	"alumni-reunion/internal/core/cache"
	"alumni-reunion/internal/core/config"
	"alumni-reunion/internal/feature/geo"
	"alumni-reunion/internal/feature/media"
	mdw "alumni-reunion/internal/transport/http/middleware"
)

// Page paths whose cached payloads go stale after a mutation.
const (
	PageEvents   = "/events"
	PageHotels   = "/hotels"
	PageMemories = "/memories"
)

type Deps struct {
	Log      *zap.Logger
	DB       *gorm.DB
	JWT      *auth.JWTer
	Resolver mdw.IdentityResolver
	Pages    cache.Pages
	PageTTL  time.Duration
	Uploader *media.Uploader
	Geo      *geo.Dataset
	Session  config.Session

	CORSOrigins    []string
	// BodyLimit caps request bodies; UploadLimit replaces it on the upload route.
	BodyLimit      int64
	UploadLimit    int64
	RequestTimeout time.Duration
}

// invalidate never fails the request: the mutation already committed.
func (d *Deps) invalidate(c *gin.Context, paths ...string) {
	if err := d.Pages.Invalidate(c.Request.Context(), paths...); err != nil {
		d.Log.Warn("page invalidation failed", zap.Strings("paths", paths), zap.Error(err))
	}
}
