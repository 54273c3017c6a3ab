package controller

import (
	"github.com/gin-gonic/gin"

	common "supasocial/controller/Common"
	"supasocial/logger"
	"supasocial/models"
)

// SignInHandler starts the Google sign-in. Failures are logged and the
// browser goes back to the page it came from.
func (h *Handler) SignInHandler(ctx *gin.Context) {
	url, err := bridgeOf(ctx).SignInWithGoogle(ctx.Request.Context())
	if err != nil {
		logger.ErrorWithStack(err)
		redirect(ctx, backTo(ctx))
		return
	}
	redirect(ctx, url)
}

// OAuthCallbackHandler GET /auth/callback
func (h *Handler) OAuthCallbackHandler(ctx *gin.Context) {
	params := new(models.ParamOAuthCallback)
	_ = ctx.ShouldBindQuery(params)
	switch {
	case params.Error != "":
		logger.Warnf("controller:OAuthCallbackHandler: provider error %s: %s", params.Error, params.Desc)
	case params.Code == "":
		logger.Warnf("controller:OAuthCallbackHandler: missing code")
	default:
		if err := bridgeOf(ctx).CompleteSignIn(ctx.Request.Context(), params.Code); err != nil {
			logger.ErrorWithStack(err)
		}
	}
	redirect(ctx, "/")
}

func (h *Handler) SignOutHandler(ctx *gin.Context) {
	if err := bridgeOf(ctx).SignOut(ctx.Request.Context()); err != nil {
		logger.ErrorWithStack(err)
	}
	redirect(ctx, "/")
}

// SessionHandler returns the signed-in user of this browser session
//
//	@Summary		Current session
//	@Description	Returns the signed-in user, or a null user when signed out
//	@Tags			session
//	@Produce		application/json
//	@Success		200	{object}	common.Response{data=common.ResponseSession}
//	@Router			/session [get]
func (h *Handler) SessionHandler(ctx *gin.Context) {
	common.ResponseSuccess(ctx, common.ResponseSession{User: currentUser(ctx)})
}

// SignInURLHandler starts the Google sign-in for script clients
//
//	@Summary		Start Google sign-in
//	@Description	Returns the provider URL to send the browser to
//	@Tags			session
//	@Produce		application/json
//	@Success		200	{object}	common.Response{data=common.ResponseSignIn}
//	@Router			/session/signin [post]
func (h *Handler) SignInURLHandler(ctx *gin.Context) {
	url, err := bridgeOf(ctx).SignInWithGoogle(ctx.Request.Context())
	if err != nil {
		common.ResponseErrorFromErr(ctx, err)
		return
	}
	common.ResponseSuccess(ctx, common.ResponseSignIn{RedirectURL: url})
}

// backTo is the local page a form was posted from, or the root listing.
func backTo(ctx *gin.Context) string {
	ref := ctx.Request.Referer()
	if ref == "" {
		return "/"
	}
	u, err := ctx.Request.URL.Parse(ref)
	if err != nil || u.Host != ctx.Request.Host {
		return "/"
	}
	return u.RequestURI()
}
