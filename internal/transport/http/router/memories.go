package router

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"alumni-reunion/internal/access"
	"alumni-reunion/internal/core/cache"
	"alumni-reunion/internal/domain"
	"alumni-reunion/internal/repo"
	httpez "alumni-reunion/internal/transport/http/ez"
	mdw "alumni-reunion/internal/transport/http/middleware"
	"alumni-reunion/pkg/utils"
)

type memoriesModule struct{ d *Deps }

type memoriesOut struct {
	Memories []domain.Memory `json:"memories"`
}

func (m memoriesModule) MountAPI(api *gin.RouterGroup) {
	ez := httpez.New(api, m.d.Log)

	httpez.RegisterAction(ez, m.d.DB, httpez.Action[struct{}, *memoriesOut]{
		Method: http.MethodGet,
		Path:   "/memories",
		Binder: httpez.BindNone,
		Policy: access.ListMemories,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (*memoriesOut, error) {
			out, err := cache.GetOrLoadJSON(m.d.Pages, c.Request.Context(), PageMemories, m.d.PageTTL,
				func(context.Context) (*memoriesOut, error) {
					ms, err := repo.NewMemoryRepo(tx).ListNewest()
					if err != nil {
						return nil, err
					}
					return &memoriesOut{Memories: ms}, nil
				})
			if err != nil {
				return nil, httpez.Internal("list memories failed", err)
			}
			return out, nil
		},
	})

	type createIn struct {
		ImageTitle       string `json:"imageTitle" binding:"required"`
		ImageDescription string `json:"imageDescription"`
		ImageDate        string `json:"imageDate"`
		UploadPhotoURL   string `json:"uploadPhotoUrl" binding:"required_without=UploadVideoURL"`
		UploadVideoURL   string `json:"uploadVideoUrl"`
	}
	httpez.RegisterAction(ez, m.d.DB, httpez.Action[createIn, gin.H]{
		Method: http.MethodPost,
		Path:   "/memories",
		Binder: httpez.BindJSON,
		Policy: access.CreateMemory,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, tx *gorm.DB, in *createIn) (gin.H, error) {
			mem := &domain.Memory{
				ID:               utils.NewID(),
				ImageTitle:       strings.TrimSpace(in.ImageTitle),
				ImageDescription: strings.TrimSpace(in.ImageDescription),
				UploadPhotoURL:   strings.TrimSpace(in.UploadPhotoURL),
				UploadVideoURL:   strings.TrimSpace(in.UploadVideoURL),
				UploadedBy:       mdw.CurrentIdentity(c).ID,
			}
			if mem.ImageTitle == "" {
				return nil, httpez.BadRequest("imageTitle is required")
			}
			if mem.UploadPhotoURL == "" && mem.UploadVideoURL == "" {
				return nil, httpez.BadRequest("uploadPhotoUrl or uploadVideoUrl is required")
			}
			if s := strings.TrimSpace(in.ImageDate); s != "" {
				d, err := parseDate(s)
				if err != nil {
					return nil, httpez.BadRequest("imageDate must be YYYY-MM-DD or RFC3339")
				}
				mem.ImageDate = &d
			}
			if err := repo.NewMemoryRepo(tx).Create(mem); err != nil {
				return nil, httpez.Internal("create memory failed", err)
			}
			return gin.H{"success": true, "data": mem}, nil
		},
		After: func(c *gin.Context, _ gin.H) { m.d.invalidate(c, PageMemories) },
	})

	// The owner check needs the stored record, so it runs after the lookup.
	httpez.RegisterAction(ez, m.d.DB, httpez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/memories/:id",
		Binder: httpez.BindNone,
		Policy: access.DeleteMemory,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
			id := strings.TrimSpace(c.Param("id"))
			memories := repo.NewMemoryRepo(tx)
			mem, err := memories.FindByID(id)
			switch {
			case errors.Is(err, domain.ErrNotFound):
				return nil, httpez.NotFound("memory not found")
			case err != nil:
				return nil, httpez.Internal("load memory failed", err)
			}
			if err := httpez.Authorize(c, access.DeleteMemory, &access.Resource{OwnerID: mem.UploadedBy}); err != nil {
				return nil, err
			}
			if _, err := memories.Delete(id); err != nil {
				return nil, httpez.Internal("delete memory failed", err)
			}
			return gin.H{"success": true, "id": id}, nil
		},
		After: func(c *gin.Context, _ gin.H) { m.d.invalidate(c, PageMemories) },
	})
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
