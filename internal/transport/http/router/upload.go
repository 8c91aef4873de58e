package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"alumni-reunion/internal/access"
	"alumni-reunion/internal/feature/media"
	httpez "alumni-reunion/internal/transport/http/ez"
)

// UploadRoute is the one route allowed bodies above Deps.BodyLimit.
const UploadRoute = "/api/v1/upload"

type uploadModule struct{ d *Deps }

type uploadOut struct {
	Success bool `json:"success"`
	*media.Result
}

func (m uploadModule) MountAPI(api *gin.RouterGroup) {
	ez := httpez.New(api, m.d.Log)

	httpez.RegisterAction(ez, m.d.DB, httpez.Action[struct{}, uploadOut]{
		Method: http.MethodPost,
		Path:   "/upload",
		Binder: httpez.BindNone,
		Policy: access.UploadFile,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (uploadOut, error) {
			fh, err := c.FormFile("file")
			if err != nil {
				var mbe *http.MaxBytesError
				if errors.As(err, &mbe) {
					return uploadOut{}, httpez.BadRequest("request body too large")
				}
				return uploadOut{}, httpez.BadRequest("no file provided")
			}
			res, err := m.d.Uploader.Upload(c.Request.Context(), fh)
			if err != nil {
				var ve *media.ValidationError
				if errors.As(err, &ve) {
					return uploadOut{}, httpez.BadRequest(ve.Msg)
				}
				return uploadOut{}, httpez.Internal("upload failed", err)
			}
			return uploadOut{Success: true, Result: res}, nil
		},
	})
}
