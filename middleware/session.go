package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	common "supasocial/controller/Common"
	"supasocial/dao/backend"
	"supasocial/internal/utils"
	"supasocial/session"
)

type SessionConfig struct {
	CookieName string
	Secure     bool
	TTL        time.Duration
}

// Session identifies the browser by an opaque cookie and mounts a session
// bridge for the length of the request. Platform calls made with the request
// context act as the signed-in user.
func Session(auth backend.Auth, cfg SessionConfig) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sid, err := ctx.Cookie(cfg.CookieName)
		if err != nil || uuid.Validate(sid) != nil {
			sid = uuid.NewString()
		}
		// refresh the cookie on every request so it expires with the session
		http.SetCookie(ctx.Writer, &http.Cookie{
			Name:     cfg.CookieName,
			Value:    sid,
			Path:     "/",
			MaxAge:   int(cfg.TTL / time.Second),
			HttpOnly: true,
			Secure:   cfg.Secure,
			SameSite: http.SameSiteLaxMode,
		})

		bridge := session.NewBridge(auth, sid)
		bridge.Mount(ctx.Request.Context())
		defer bridge.Close()

		reqCtx := session.WithBridge(ctx.Request.Context(), bridge)
		if s := bridge.Session(); s != nil {
			reqCtx = utils.WithAccessToken(reqCtx, s.AccessToken)
		}
		ctx.Request = ctx.Request.WithContext(reqCtx)
		ctx.Set("session_id", sid)

		ctx.Next()
	}
}

// NeedLogin rejects JSON API calls made without a signed-in user.
func NeedLogin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if session.MustFromContext(ctx.Request.Context()).User() == nil {
			common.ResponseError(ctx, common.CodeNeedLogin)
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
