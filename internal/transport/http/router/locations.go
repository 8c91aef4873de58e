package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"alumni-reunion/internal/access"
	httpez "alumni-reunion/internal/transport/http/ez"
)

type locationsModule struct{ d *Deps }

func (m locationsModule) MountAPI(api *gin.RouterGroup) {
	ez := httpez.New(api, m.d.Log)
	geo := m.d.Geo

	httpez.RegisterAction(ez, m.d.DB, httpez.Action[struct{}, gin.H]{
		Method: http.MethodGet,
		Path:   "/locations/countries",
		Binder: httpez.BindNone,
		Policy: access.LookupLocation,
		Handler: func(*gin.Context, *gorm.DB, *struct{}) (gin.H, error) {
			return gin.H{"countries": geo.Countries()}, nil
		},
	})

	type statesQ struct {
		Country string `form:"country" binding:"required"`
	}
	httpez.RegisterAction(ez, m.d.DB, httpez.Action[statesQ, gin.H]{
		Method: http.MethodGet,
		Path:   "/locations/states",
		Binder: httpez.BindQuery,
		Policy: access.LookupLocation,
		Handler: func(_ *gin.Context, _ *gorm.DB, in *statesQ) (gin.H, error) {
			return gin.H{"states": geo.States(in.Country)}, nil
		},
	})

	type citiesQ struct {
		Country string `form:"country" binding:"required"`
		State   string `form:"state" binding:"required"`
	}
	httpez.RegisterAction(ez, m.d.DB, httpez.Action[citiesQ, gin.H]{
		Method: http.MethodGet,
		Path:   "/locations/cities",
		Binder: httpez.BindQuery,
		Policy: access.LookupLocation,
		Handler: func(_ *gin.Context, _ *gorm.DB, in *citiesQ) (gin.H, error) {
			return gin.H{"cities": geo.Cities(in.Country, in.State)}, nil
		},
	})
}
