package router

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"alumni-reunion/internal/access"
	"alumni-reunion/internal/domain"
	"alumni-reunion/internal/repo"
	httpez "alumni-reunion/internal/transport/http/ez"
	mdw "alumni-reunion/internal/transport/http/middleware"
	"alumni-reunion/pkg/utils"
)

type profileModule struct{ d *Deps }

type profileOut struct {
	User    *domain.User          `json:"user,omitempty"`
	Profile *domain.AlumniProfile `json:"profile"`
}

func (m profileModule) MountAPI(api *gin.RouterGroup) {
	ez := httpez.New(api, m.d.Log)

	httpez.RegisterAction(ez, m.d.DB, httpez.Action[struct{}, profileOut]{
		Method: http.MethodGet,
		Path:   "/profile/me",
		Binder: httpez.BindNone,
		Policy: access.ReadProfile,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (profileOut, error) {
			who := mdw.CurrentIdentity(c)
			u, err := repo.NewUserRepo(tx).FindByID(who.ID)
			switch {
			case errors.Is(err, domain.ErrNotFound):
				return profileOut{}, httpez.NotFound("user not found")
			case err != nil:
				return profileOut{}, httpez.Internal("load user failed", err)
			}
			p, err := repo.NewProfileRepo(tx).FindByUserID(who.ID)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return profileOut{}, httpez.Internal("load profile failed", err)
			}
			return profileOut{User: u, Profile: p}, nil
		},
	})

	type profileIn struct {
		FullName       string `json:"fullName"       binding:"omitempty,max=128"`
		GraduationYear int    `json:"graduationYear" binding:"omitempty,min=1900,max=2100"`
		Phone          string `json:"phone"          binding:"omitempty,max=32"`
	}
	httpez.RegisterAction(ez, m.d.DB, httpez.Action[profileIn, profileOut]{
		Method: http.MethodPut,
		Path:   "/profile/me",
		Binder: httpez.BindJSON,
		Policy: access.WriteProfile,
		Handler: func(c *gin.Context, tx *gorm.DB, in *profileIn) (profileOut, error) {
			who := mdw.CurrentIdentity(c)
			p := &domain.AlumniProfile{
				ID:             utils.NewID(),
				UserID:         who.ID,
				Email:          who.Email,
				FullName:       strings.TrimSpace(in.FullName),
				GraduationYear: in.GraduationYear,
				Phone:          strings.TrimSpace(in.Phone),
			}
			if err := repo.NewProfileRepo(tx).Upsert(p); err != nil {
				return profileOut{}, httpez.Internal("save profile failed", err)
			}
			return profileOut{Profile: p}, nil
		},
	})
}
