package controller

import (
	"fmt"

	"github.com/gin-gonic/gin"

	common "supasocial/controller/Common"
	"supasocial/internal/utils"
	"supasocial/logger"
	"supasocial/models"
)

// VoteHandler POST /post/:post_id/vote from the vote widget.
func (h *Handler) VoteHandler(ctx *gin.Context) {
	post := new(models.ParamPostID)
	params := new(models.ParamVote)
	if err := ctx.ShouldBindUri(post); err != nil {
		redirect(ctx, "/")
		return
	}
	back := fmt.Sprintf("/post/%d", post.PostID)
	if err := ctx.ShouldBind(params); err != nil {
		redirect(ctx, back)
		return
	}
	user := currentUser(ctx)
	if user == nil {
		redirect(ctx, back)
		return
	}
	if err := h.svc.ToggleVote(ctx.Request.Context(), post.PostID, user, params.Vote); err != nil {
		logger.ErrorWithStack(err)
	}
	redirect(ctx, back)
}

// VoteAPIHandler toggles the caller's vote on a post
//
//	@Summary		Vote on a post
//	@Description	The same vote again removes it, the opposite one switches it. Needs a signed-in session
//	@Tags			post
//	@Accept			application/json
//	@Produce		application/json
//	@Param			post_id	path		int				true	"post id"
//	@Param			object	body		models.ParamVote	true	"1 or -1"
//	@Success		200		{object}	common.Response{data=models.VoteCount}
//	@Router			/post/{post_id}/vote [post]
func (h *Handler) VoteAPIHandler(ctx *gin.Context) {
	post := new(models.ParamPostID)
	params := new(models.ParamVote)
	if err := ctx.ShouldBindUri(post); err != nil {
		common.ResponseErrorWithMsg(ctx, common.CodeInvalidParam, utils.ParseToValidationError(err))
		return
	}
	if err := ctx.ShouldBindJSON(params); err != nil {
		common.ResponseErrorWithMsg(ctx, common.CodeInvalidParam, utils.ParseToValidationError(err))
		return
	}
	reqCtx := ctx.Request.Context()
	user := currentUser(ctx)
	if err := h.svc.ToggleVote(reqCtx, post.PostID, user, params.Vote); err != nil {
		common.ResponseErrorFromErr(ctx, err)
		return
	}
	votes := h.svc.GetVotes(reqCtx, post.PostID, user)
	if votes.IsError() {
		common.ResponseErrorFromErr(ctx, votes.Err)
		return
	}
	common.ResponseSuccess(ctx, votes.Data)
}
