package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxBodyBytes caps the request body at n, or at perRoute[c.FullPath()] when the
// matched route has its own cap. Reads past the cap fail inside the handler.
func MaxBodyBytes(n int64, perRoute map[string]int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := n
		if v, ok := perRoute[c.FullPath()]; ok && v > 0 {
			limit = v
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
