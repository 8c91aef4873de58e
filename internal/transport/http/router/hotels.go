package router

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"alumni-reunion/internal/access"
	"alumni-reunion/internal/core/cache"
	"alumni-reunion/internal/domain"
	"alumni-reunion/internal/repo"
	httpez "alumni-reunion/internal/transport/http/ez"
	mdw "alumni-reunion/internal/transport/http/middleware"
	"alumni-reunion/pkg/utils"
)

type hotelsModule struct{ d *Deps }

type hotelRow struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type hotelsOut struct {
	Hotels []hotelRow `json:"hotels"`
}

func (m hotelsModule) MountAPI(api *gin.RouterGroup) {
	ez := httpez.New(api, m.d.Log)

	type createIn struct {
		HotelName   string `json:"hotelName" binding:"required"`
		WebsiteURL  string `json:"websiteUrl" binding:"required,http_url"`
		Description string `json:"description"`
	}
	httpez.RegisterAction(ez, m.d.DB, httpez.Action[createIn, gin.H]{
		Method: http.MethodPost,
		Path:   "/hotels",
		Binder: httpez.BindJSON,
		Policy: access.CreateHotel,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, tx *gorm.DB, in *createIn) (gin.H, error) {
			name := strings.TrimSpace(in.HotelName)
			if name == "" {
				return nil, httpez.BadRequest("hotelName is required")
			}
			h := &domain.Hotel{
				ID:          utils.NewID(),
				HotelName:   name,
				Description: strings.TrimSpace(in.Description),
				WebsiteURL:  in.WebsiteURL,
			}
			if id := mdw.CurrentIdentity(c); !id.Anonymous() {
				h.UserID = &id.ID
			}
			if err := repo.NewHotelRepo(tx).Create(h); err != nil {
				return nil, httpez.Internal("create hotel failed", err)
			}
			return gin.H{"success": true, "data": h}, nil
		},
		After: func(c *gin.Context, _ gin.H) { m.d.invalidate(c, PageHotels) },
	})

	httpez.RegisterAction(ez, m.d.DB, httpez.Action[struct{}, *hotelsOut]{
		Method: http.MethodGet,
		Path:   "/hotels",
		Binder: httpez.BindNone,
		Policy: access.ListHotels,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (*hotelsOut, error) {
			out, err := cache.GetOrLoadJSON(m.d.Pages, c.Request.Context(), PageHotels, m.d.PageTTL,
				func(context.Context) (*hotelsOut, error) {
					hs, err := repo.NewHotelRepo(tx).ListByName()
					if err != nil {
						return nil, err
					}
					out := &hotelsOut{Hotels: make([]hotelRow, 0, len(hs))}
					for _, h := range hs {
						out.Hotels = append(out.Hotels, hotelRow{ID: h.ID, Name: h.HotelName})
					}
					return out, nil
				})
			if err != nil {
				return nil, httpez.Internal("list hotels failed", err)
			}
			return out, nil
		},
	})

	// Profiles pointing at the hotel are cleared in the same transaction.
	httpez.RegisterAction(ez, m.d.DB, httpez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/hotels/:id",
		Binder: httpez.BindNone,
		Policy: access.DeleteHotel,
		UseTx:  true,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
			id := strings.TrimSpace(c.Param("id"))
			if id == "" {
				return nil, httpez.BadRequest("hotel id is required")
			}
			n, err := repo.NewHotelRepo(tx).Delete(id)
			if err != nil {
				return nil, httpez.Internal("delete hotel failed", err)
			}
			cleared, err := repo.NewProfileRepo(tx).ClearHotelSelection(id)
			if err != nil {
				return nil, httpez.Internal("clear hotel selections failed", err)
			}
			m.d.Log.Info("hotel deleted", zap.String("id", id), zap.Int64("rows", n), zap.Int64("profiles_cleared", cleared))
			return gin.H{"success": true, "id": id}, nil
		},
		After: func(c *gin.Context, _ gin.H) { m.d.invalidate(c, PageHotels) },
	})
}
