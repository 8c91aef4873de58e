package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"alumni-reunion/internal/access"
	"alumni-reunion/internal/domain"
	mdw "alumni-reunion/internal/transport/http/middleware"
	resp "alumni-reunion/internal/transport/http/response"
)

type EZ struct {
	g   *gin.RouterGroup
	log *zap.Logger
}

func New(g *gin.RouterGroup, l *zap.Logger) EZ { return EZ{g: g, log: l} }

type Binder string

const (
	BindJSON  Binder = "json"
	BindQuery Binder = "query"
	BindNone  Binder = "none" // handler reads c.Param / c.FormFile itself
)

// AErr is a handler error with an HTTP status. Msg is shown to the caller except for 5xx.
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: http.StatusUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: http.StatusForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: http.StatusNotFound, Msg: msg} }
func Conflict(msg string) error     { return &AErr{Code: http.StatusConflict, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: http.StatusInternalServerError, Msg: msg, Err: err}
}

// Action declares one route. I is the bound input, O the JSON body on success.
type Action[I any, O any] struct {
	Method  string
	Path    string
	Binder  Binder
	Policy  access.Action // evaluated before binding, without a resource
	Status  int           // success status, 200 when zero
	UseTx   bool
	Handler func(c *gin.Context, db *gorm.DB, in *I) (O, error)
	// After runs once the handler succeeded and any transaction committed.
	After func(c *gin.Context, out O)
}

func RegisterAction[I any, O any](e EZ, db *gorm.DB, a Action[I, O]) {
	if a.Policy == "" {
		panic("ez: action " + a.Method + " " + a.Path + " has no policy")
	}
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}

	h := func(c *gin.Context) {
		if err := access.Authorize(mdw.CurrentIdentity(c), a.Policy, nil); err != nil {
			e.fail(c, err)
			return
		}

		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		}
		if bindErr != nil {
			e.fail(c, BadRequest(bindMessage(bindErr)))
			return
		}

		var out O
		var err error
		if a.UseTx {
			err = db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
				o, herr := a.Handler(c, tx, &in)
				out = o
				return herr
			})
		} else {
			out, err = a.Handler(c, db.WithContext(c.Request.Context()), &in)
		}
		if err != nil {
			e.fail(c, err)
			return
		}
		if a.After != nil {
			a.After(c, out)
		}
		c.JSON(status, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}

// Authorize runs the resource half of a rule inside a handler.
func Authorize(c *gin.Context, a access.Action, res *access.Resource) error {
	return access.Authorize(mdw.CurrentIdentity(c), a, res)
}

func (e EZ) fail(c *gin.Context, err error) {
	var (
		ae     *AErr
		denied *access.Denied
	)
	switch {
	case errors.As(err, &denied):
		resp.Abort(c, denied.Status, denied.Reason)
	case errors.As(err, &ae) && ae.Code < http.StatusInternalServerError:
		resp.Abort(c, ae.Code, ae.Msg)
	case errors.Is(err, domain.ErrNotFound):
		resp.Abort(c, http.StatusNotFound, "")
	case errors.Is(err, domain.ErrConflict):
		resp.Abort(c, http.StatusConflict, "")
	default:
		msg := "unhandled error"
		if ae != nil && ae.Msg != "" {
			msg = ae.Msg
		}
		_ = c.Error(err)
		e.log.Error(msg,
			zap.Error(err),
			zap.String("rid", c.GetString(mdw.KeyRequestID)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
		)
		resp.Abort(c, http.StatusInternalServerError, "")
	}
}

func bindMessage(err error) string {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return "request body too large"
	}
	return "invalid request: " + err.Error()
}
