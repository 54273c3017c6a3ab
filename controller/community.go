package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	common "supasocial/controller/Common"
	supasocial "supasocial/errors"
	"supasocial/internal/utils"
	"supasocial/logger"
	"supasocial/models"
)

func (h *Handler) CommunityListPageHandler(ctx *gin.Context) {
	res := h.svc.GetCommunityList(ctx.Request.Context())
	data := gin.H{"Title": "Communities", "Pending": res.IsPending(), "Communities": res.Data}
	if res.IsError() {
		logger.ErrorWithStack(res.Err)
		data["Error"] = errorText(res.Err)
	}
	render(ctx, http.StatusOK, "communities", data)
}

func (h *Handler) CommunityPageHandler(ctx *gin.Context) {
	params := new(models.ParamCommunityID)
	if err := ctx.ShouldBindUri(params); err != nil {
		render(ctx, http.StatusNotFound, "community", gin.H{"Error": supasocial.ErrNoSuchCommunity.Error()})
		return
	}

	res := h.svc.GetCommunityPosts(ctx.Request.Context(), params.CommunityID)
	data := gin.H{"Pending": res.IsPending()}
	switch {
	case res.IsError():
		if !errors.Is(res.Err, supasocial.ErrNoSuchCommunity) {
			logger.ErrorWithStack(res.Err)
		}
		data["Error"] = errorText(res.Err)
	case res.IsSuccess():
		data["Title"] = res.Data.Community.Name
		data["Community"] = res.Data.Community
		data["Posts"] = res.Data.Posts
	}
	render(ctx, http.StatusOK, "community", data)
}

// CommunityListHandler lists every community
//
//	@Summary		Community list
//	@Tags			community
//	@Produce		application/json
//	@Success		200	{object}	common.Response{data=[]models.Community}
//	@Router			/community/list [get]
func (h *Handler) CommunityListHandler(ctx *gin.Context) {
	res := h.svc.GetCommunityList(ctx.Request.Context())
	if res.IsError() {
		common.ResponseErrorFromErr(ctx, res.Err)
		return
	}
	common.ResponseSuccess(ctx, res.Data)
}

// CommunityPostsHandler returns a community with its posts
//
//	@Summary		Community detail
//	@Tags			community
//	@Produce		application/json
//	@Param			id	path		int	true	"community id"
//	@Success		200	{object}	common.Response{data=models.CommunityPosts}
//	@Router			/community/{id} [get]
func (h *Handler) CommunityPostsHandler(ctx *gin.Context) {
	params := new(models.ParamCommunityID)
	if err := ctx.ShouldBindUri(params); err != nil {
		common.ResponseErrorWithMsg(ctx, common.CodeInvalidParam, utils.ParseToValidationError(err))
		return
	}
	res := h.svc.GetCommunityPosts(ctx.Request.Context(), params.CommunityID)
	if res.IsError() {
		common.ResponseErrorFromErr(ctx, res.Err)
		return
	}
	common.ResponseSuccess(ctx, res.Data)
}
