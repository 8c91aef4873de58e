package router

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"alumni-reunion/internal/access"
	"alumni-reunion/internal/core/cache"
	"alumni-reunion/internal/domain"
	"alumni-reunion/internal/repo"
	httpez "alumni-reunion/internal/transport/http/ez"
	"alumni-reunion/pkg/utils"
)

type eventsModule struct{ d *Deps }

type eventsOut struct {
	Events []domain.Event `json:"events"`
}

func (m eventsModule) MountAPI(api *gin.RouterGroup) {
	ez := httpez.New(api, m.d.Log)

	httpez.RegisterAction(ez, m.d.DB, httpez.Action[struct{}, *eventsOut]{
		Method: http.MethodGet,
		Path:   "/events",
		Binder: httpez.BindNone,
		Policy: access.ListEvents,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (*eventsOut, error) {
			out, err := cache.GetOrLoadJSON(m.d.Pages, c.Request.Context(), PageEvents, m.d.PageTTL,
				func(context.Context) (*eventsOut, error) {
					events, err := repo.NewEventRepo(tx).List()
					if err != nil {
						return nil, err
					}
					return &eventsOut{Events: events}, nil
				})
			if err != nil {
				return nil, httpez.Internal("list events failed", err)
			}
			return out, nil
		},
	})

	httpez.RegisterAction(ez, m.d.DB, httpez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/events/:id",
		Binder: httpez.BindNone,
		Policy: access.DeleteEvent,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
			id := strings.TrimSpace(c.Param("id"))
			if id == "" {
				return nil, httpez.BadRequest("event id is required")
			}
			n, err := repo.NewEventRepo(tx).Delete(id)
			if err != nil {
				return nil, httpez.Internal("delete event failed", err)
			}
			m.d.Log.Info("event deleted", zap.String("id", id), zap.Int64("rows", n))
			return gin.H{"success": true, "id": id}, nil
		},
		After: func(c *gin.Context, _ gin.H) { m.d.invalidate(c, PageEvents) },
	})
}

func (m eventsModule) MountAdmin(admin *gin.RouterGroup) {
	ez := httpez.New(admin, m.d.Log)

	type createIn struct {
		ID          string     `json:"id"          binding:"omitempty,max=64"`
		Title       string     `json:"title"       binding:"required,max=191"`
		Description string     `json:"description"`
		Location    string     `json:"location"    binding:"omitempty,max=255"`
		StartsAt    *time.Time `json:"startsAt"`
	}
	httpez.RegisterAction(ez, m.d.DB, httpez.Action[createIn, gin.H]{
		Method: http.MethodPost,
		Path:   "/events",
		Binder: httpez.BindJSON,
		Policy: access.CreateEvent,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, tx *gorm.DB, in *createIn) (gin.H, error) {
			e := &domain.Event{
				ID:          strings.TrimSpace(in.ID),
				Title:       strings.TrimSpace(in.Title),
				Description: in.Description,
				Location:    strings.TrimSpace(in.Location),
				StartsAt:    in.StartsAt,
			}
			if e.ID == "" {
				e.ID = utils.NewID()
			}
			if err := repo.NewEventRepo(tx).Create(e); err != nil {
				return nil, err
			}
			return gin.H{"success": true, "data": e}, nil
		},
		After: func(c *gin.Context, _ gin.H) { m.d.invalidate(c, PageEvents) },
	})
}
