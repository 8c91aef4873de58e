package router

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"alumni-reunion/internal/access"
	"alumni-reunion/internal/domain"
	"alumni-reunion/internal/repo"
	httpez "alumni-reunion/internal/transport/http/ez"
	mdw "alumni-reunion/internal/transport/http/middleware"
)

// usersModule is admin-only: listing accounts and assigning roles.
type usersModule struct{ d *Deps }

func (m usersModule) MountAdmin(admin *gin.RouterGroup) {
	ez := httpez.New(admin, m.d.Log)

	type listQ struct {
		Offset int    `form:"offset,default=0"`
		Limit  int    `form:"limit,default=20"`
		Q      string `form:"q"` // email/name substring
	}
	type row struct {
		ID    string      `json:"id"`
		Email string      `json:"email"`
		Name  string      `json:"name"`
		Role  access.Role `json:"role"`
	}
	type listOut struct {
		Total int64 `json:"total"`
		Items []row `json:"items"`
	}
	httpez.RegisterAction(ez, m.d.DB, httpez.Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: httpez.BindQuery,
		Policy: access.ListUsers,
		Handler: func(c *gin.Context, tx *gorm.DB, in *listQ) (listOut, error) {
			if in.Limit <= 0 || in.Limit > 100 {
				in.Limit = 20
			}
			if in.Offset < 0 {
				in.Offset = 0
			}
			us, total, err := repo.NewUserRepo(tx).List(in.Offset, in.Limit, in.Q)
			if err != nil {
				return listOut{}, httpez.Internal("list users failed", err)
			}
			out := listOut{Total: total, Items: make([]row, 0, len(us))}
			for _, u := range us {
				out.Items = append(out.Items, row{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role})
			}
			return out, nil
		},
	})

	type roleIn struct {
		Role access.Role `json:"role" binding:"required"`
	}
	httpez.RegisterAction(ez, m.d.DB, httpez.Action[roleIn, gin.H]{
		Method: http.MethodPut,
		Path:   "/users/:id/role",
		Binder: httpez.BindJSON,
		Policy: access.ChangeRole,
		Handler: func(c *gin.Context, tx *gorm.DB, in *roleIn) (gin.H, error) {
			id := strings.TrimSpace(c.Param("id"))
			if !in.Role.Valid() {
				return nil, httpez.BadRequest("role must be one of user, alumni, admin")
			}
			who := mdw.CurrentIdentity(c)
			if id == who.ID {
				return nil, httpez.BadRequest("cannot change your own role")
			}
			if err := repo.NewUserRepo(tx).SetRole(id, in.Role); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, httpez.NotFound("user not found")
				}
				return nil, httpez.Internal("set role failed", err)
			}
			m.d.Log.Info("role changed", zap.String("by", who.ID), zap.String("user", id), zap.String("role", string(in.Role)))
			return gin.H{"id": id, "role": in.Role}, nil
		},
	})
}
