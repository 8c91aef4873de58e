package response

import "github.com/gin-gonic/gin"

// Err is the body of every non-2xx response.
type Err struct {
	Error string `json:"error"`
}

func Error(code int, customMsg string) Err {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return Err{Error: msg}
}

func Abort(c *gin.Context, code int, customMsg string) {
	c.AbortWithStatusJSON(code, Error(code, customMsg))
}
