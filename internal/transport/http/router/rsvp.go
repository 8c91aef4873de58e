package router

import (
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

type rsvpModule struct{ d *Deps }

func (m rsvpModule) MountAPI(api *gin.RouterGroup) {
	ez := httpez.New(api, m.d.Log)

	// Counts absent from the body are stored as zero; a submission replaces the previous one.
	type rsvpIn struct {
		Adults      *int    `json:"adults"`
		Kids        *int    `json:"kids"`
		HotelID     *string `json:"hotelId"`
		SpecialReqs *string `json:"specialReqs"`
	}
	httpez.RegisterAction(ez, m.d.DB, httpez.Action[rsvpIn, gin.H]{
		Method: http.MethodPost,
		Path:   "/rsvp",
		Binder: httpez.BindJSON,
		Policy: access.SubmitRSVP,
		Handler: func(c *gin.Context, tx *gorm.DB, in *rsvpIn) (gin.H, error) {
			r := domain.RSVP{Adults: deref(in.Adults), Kids: deref(in.Kids), SpecialReqs: in.SpecialReqs}
			if r.Adults < 0 || r.Kids < 0 {
				return nil, httpez.BadRequest("adults and kids must not be negative")
			}
			if in.HotelID != nil {
				if id := strings.TrimSpace(*in.HotelID); id != "" {
					ok, err := repo.NewHotelRepo(tx).Exists(id)
					if err != nil {
						return nil, httpez.Internal("lookup hotel failed", err)
					}
					if !ok {
						return nil, httpez.BadRequest("hotel not found")
					}
					r.HotelID = &id
				}
			}

			who := mdw.CurrentIdentity(c)
			matched, err := repo.NewProfileRepo(tx).UpdateRSVPByEmail(who.Email, r)
			if err != nil {
				return nil, httpez.Internal("update rsvp failed", err)
			}
			if !matched {
				m.d.Log.Warn("rsvp matched no profile", zap.String("uid", who.ID), zap.String("email", who.Email))
			}
			return gin.H{"message": "RSVP updated successfully"}, nil
		},
	})
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
