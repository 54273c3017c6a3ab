package controller

import (
	"fmt"

	"github.com/gin-gonic/gin"

	common "supasocial/controller/Common"
	"supasocial/internal/utils"
	"supasocial/logger"
	"supasocial/models"
)

// CommentHandler POST /post/:post_id/comments from the comment widget.
func (h *Handler) CommentHandler(ctx *gin.Context) {
	post := new(models.ParamPostID)
	if err := ctx.ShouldBindUri(post); err != nil {
		redirect(ctx, "/")
		return
	}
	back := fmt.Sprintf("/post/%d", post.PostID)
	params := new(models.ParamComment)
	if err := ctx.ShouldBind(params); err != nil {
		logger.Debugf("controller:CommentHandler: %s", utils.ValidationMessage(err))
		redirect(ctx, back)
		return
	}
	user := currentUser(ctx)
	if user == nil {
		redirect(ctx, back)
		return
	}
	if err := h.svc.CreateComment(ctx.Request.Context(), post.PostID, user, params); err != nil {
		logger.ErrorWithStack(err)
	}
	redirect(ctx, back)
}

// CommentListHandler lists the comments of a post as a reply tree
//
//	@Summary		Comments of a post
//	@Description	Comments oldest first, replies nested under their parent
//	@Tags			comment
//	@Produce		application/json
//	@Param			post_id	path		int	true	"post id"
//	@Success		200		{object}	common.Response{data=[]models.CommentDTO}
//	@Router			/post/{post_id}/comments [get]
func (h *Handler) CommentListHandler(ctx *gin.Context) {
	post := new(models.ParamPostID)
	if err := ctx.ShouldBindUri(post); err != nil {
		common.ResponseErrorWithMsg(ctx, common.CodeInvalidParam, utils.ParseToValidationError(err))
		return
	}
	res := h.svc.GetCommentTree(ctx.Request.Context(), post.PostID)
	if res.IsError() {
		common.ResponseErrorFromErr(ctx, res.Err)
		return
	}
	common.ResponseSuccess(ctx, res.Data)
}

// CreateCommentHandler comments on a post or replies to a comment
//
//	@Summary		Create comment
//	@Description	Needs a signed-in session
//	@Tags			comment
//	@Accept			application/json
//	@Produce		application/json
//	@Param			post_id	path		int					true	"post id"
//	@Param			object	body		models.ParamComment	true	"comment"
//	@Success		200		{object}	common.Response
//	@Router			/post/{post_id}/comments [post]
func (h *Handler) CreateCommentHandler(ctx *gin.Context) {
	post := new(models.ParamPostID)
	if err := ctx.ShouldBindUri(post); err != nil {
		common.ResponseErrorWithMsg(ctx, common.CodeInvalidParam, utils.ParseToValidationError(err))
		return
	}
	params := new(models.ParamComment)
	if err := ctx.ShouldBindJSON(params); err != nil {
		common.ResponseErrorWithMsg(ctx, common.CodeInvalidParam, utils.ParseToValidationError(err))
		return
	}
	if err := h.svc.CreateComment(ctx.Request.Context(), post.PostID, currentUser(ctx), params); err != nil {
		common.ResponseErrorFromErr(ctx, err)
		return
	}
	common.ResponseSuccess(ctx, nil)
}
