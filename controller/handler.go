package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"supasocial/logic"
	"supasocial/models"
	"supasocial/session"
)

// Handler serves the pages and the JSON API on top of the logic service.
type Handler struct {
	svc *logic.Service
}

func New(svc *logic.Service) *Handler {
	return &Handler{svc: svc}
}

func bridgeOf(ctx *gin.Context) *session.Bridge {
	return session.MustFromContext(ctx.Request.Context())
}

func currentUser(ctx *gin.Context) *models.User {
	return bridgeOf(ctx).User()
}

// render adds what every page shows to data.
func render(ctx *gin.Context, code int, name string, data gin.H) {
	data["User"] = currentUser(ctx)
	data["RequestID"] = ctx.GetString("request_id")
	ctx.HTML(code, name, data)
}

// errorText is the one line an error is shown as, without wrapping context.
func errorText(err error) string {
	return errors.Cause(err).Error()
}

func redirect(ctx *gin.Context, location string) {
	ctx.Redirect(http.StatusSeeOther, location)
}
