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
	"alumni-reunion/pkg/utils"
)

// authModule issues and clears the session cookie. It stands in for the identity provider.
type authModule struct{ d *Deps }

func (authModule) Priority() int { return 10 }

func (m authModule) MountAPI(api *gin.RouterGroup) {
	ez := httpez.New(api, m.d.Log)

	type signupIn struct {
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Name     string `json:"name"     binding:"omitempty,max=64"`
	}
	type userOut struct {
		User *domain.User `json:"user"`
	}
	httpez.RegisterAction(ez, m.d.DB, httpez.Action[signupIn, userOut]{
		Method: http.MethodPost,
		Path:   "/auth/signup",
		Binder: httpez.BindJSON,
		Policy: access.Session,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, tx *gorm.DB, in *signupIn) (userOut, error) {
			email := strings.ToLower(strings.TrimSpace(in.Email))
			name := strings.TrimSpace(in.Name)
			if name == "" {
				name = email[:strings.IndexByte(email, '@')]
			}
			hash, err := utils.HashPassword(in.Password)
			if err != nil {
				return userOut{}, httpez.Internal("hash password failed", err)
			}
			u := &domain.User{
				ID:           utils.NewID(),
				Email:        email,
				Name:         name,
				PasswordHash: hash,
				Role:         access.RoleUser,
			}
			if err := repo.NewUserRepo(tx).Create(u); err != nil {
				if errors.Is(err, domain.ErrConflict) {
					return userOut{}, httpez.Conflict("email already registered")
				}
				return userOut{}, httpez.Internal("create user failed", err)
			}
			if _, err := m.startSession(c, u); err != nil {
				return userOut{}, err
			}
			return userOut{User: u}, nil
		},
	})

	type loginIn struct {
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	type loginOut struct {
		User  *domain.User `json:"user"`
		Token string       `json:"token"`
	}
	httpez.RegisterAction(ez, m.d.DB, httpez.Action[loginIn, loginOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: httpez.BindJSON,
		Policy: access.Session,
		Handler: func(c *gin.Context, tx *gorm.DB, in *loginIn) (loginOut, error) {
			u, err := repo.NewUserRepo(tx).FindByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
			switch {
			case errors.Is(err, domain.ErrNotFound):
				return loginOut{}, httpez.Unauthorized("invalid credentials")
			case err != nil:
				return loginOut{}, httpez.Internal("find user failed", err)
			}
			if !utils.CheckPassword(in.Password, u.PasswordHash) {
				return loginOut{}, httpez.Unauthorized("invalid credentials")
			}
			tok, err := m.startSession(c, u)
			if err != nil {
				return loginOut{}, err
			}
			return loginOut{User: u, Token: tok}, nil
		},
	})

	httpez.RegisterAction(ez, m.d.DB, httpez.Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/auth/logout",
		Binder: httpez.BindNone,
		Policy: access.Session,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (gin.H, error) {
			m.setCookie(c, "", -1)
			return gin.H{"success": true}, nil
		},
	})
}

func (m authModule) startSession(c *gin.Context, u *domain.User) (string, error) {
	tok, err := m.d.JWT.Issue(u.Identity())
	if err != nil {
		return "", httpez.Internal("issue token failed", err)
	}
	m.setCookie(c, tok, int(m.d.JWT.TTL.Seconds()))
	return tok, nil
}

func (m authModule) setCookie(c *gin.Context, value string, maxAge int) {
	s := m.d.Session
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.CookieName, value, maxAge, "/", s.Domain, s.Secure, true)
}
