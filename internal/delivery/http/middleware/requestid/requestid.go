package http_requestid_middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	contextKey = "requestID"
	header     = "X-Request-Id"
)

// RequestID assigns a correlation id to every request so failures can
// be tied back to a trace by operators.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(header)
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Set(contextKey, id)
		ctx.Header(header, id)
		ctx.Next()
	}
}

func FromContext(ctx *gin.Context) string {
	return ctx.GetString(contextKey)
}
