package middleware

import (
	"github.com/gin-gonic/gin"

	"supasocial/internal/utils"
)

const HeaderRequestID = "X-Request-ID"

// RequestID keeps an incoming X-Request-ID or assigns a snowflake one.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = utils.GenRequestID()
		}
		ctx.Set("request_id", id)
		ctx.Header(HeaderRequestID, id)
		ctx.Next()
	}
}
