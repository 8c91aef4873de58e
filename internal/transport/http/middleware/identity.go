package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alumni-reunion/internal/access"
)

const KeyIdentity = "identity"

// IdentityResolver yields the caller of a request, anonymous when there is no valid session.
type IdentityResolver interface {
	Resolve(req *http.Request) access.Identity
}

// Identity attaches the resolved caller to the context. It never aborts; the guard decides.
func Identity(r IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(KeyIdentity, r.Resolve(c.Request))
		c.Next()
	}
}

func CurrentIdentity(c *gin.Context) access.Identity {
	if v, ok := c.Get(KeyIdentity); ok {
		if id, ok := v.(access.Identity); ok {
			return id
		}
	}
	return access.Identity{}
}
