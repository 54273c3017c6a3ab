package controller

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	common "supasocial/controller/Common"
	supasocial "supasocial/errors"
	"supasocial/internal/utils"
	"supasocial/logger"
	"supasocial/models"
	"supasocial/query"
)

// MaxImageSize bounds the image read into memory for one upload.
const MaxImageSize = 10 << 20

// HomePageHandler lists all posts, newest first or by ?sort=hot.
func (h *Handler) HomePageHandler(ctx *gin.Context) {
	hot := ctx.Query("sort") == "hot"
	res := h.postList(ctx, hot)
	data := gin.H{"Pending": res.IsPending(), "Posts": res.Data, "Hot": hot}
	if res.IsError() {
		logger.ErrorWithStack(res.Err)
		data["Error"] = errorText(res.Err)
	}
	render(ctx, http.StatusOK, "home", data)
}

func (h *Handler) postList(ctx *gin.Context, hot bool) query.Result[[]*models.PostDetail] {
	if hot {
		return h.svc.GetHotPostList(ctx.Request.Context())
	}
	return h.svc.GetPostList(ctx.Request.Context())
}

func (h *Handler) createPage(ctx *gin.Context, code int, form *models.ParamCreatePost, data gin.H) {
	communities := h.svc.GetCommunityList(ctx.Request.Context())
	if communities.IsError() {
		logger.Warnf("controller:createPage: community list: %v", communities.Err)
	}
	data["Title"] = "Create Post"
	data["Form"] = form
	data["Communities"] = communities.Data
	data["Pending"] = h.svc.IsCreatingPost(bridgeOf(ctx).SessionID())
	render(ctx, code, "create", data)
}

func (h *Handler) CreatePostPageHandler(ctx *gin.Context) {
	h.createPage(ctx, http.StatusOK, &models.ParamCreatePost{}, gin.H{})
}

// CreatePostHandler takes the create form. Without a signed-in user the
// submission is ignored and the empty form is shown again.
func (h *Handler) CreatePostHandler(ctx *gin.Context) {
	user := currentUser(ctx)
	if user == nil {
		redirect(ctx, "/create")
		return
	}

	params := new(models.ParamCreatePost)
	if err := ctx.ShouldBind(params); err != nil {
		h.createPage(ctx, http.StatusBadRequest, params, gin.H{"Invalid": utils.ValidationMessage(err)})
		return
	}

	image, err := readImage(ctx)
	if err != nil {
		msg := "Please select an image."
		if !errors.Is(err, supasocial.ErrMissingImage) {
			logger.ErrorWithStack(err)
			msg = "The image could not be read."
		}
		h.createPage(ctx, http.StatusBadRequest, params, gin.H{"Invalid": msg})
		return
	}

	err = h.svc.CreatePost(ctx.Request.Context(), bridgeOf(ctx).SessionID(), user, params, image)
	if err != nil {
		logger.ErrorWithStack(err)
		h.createPage(ctx, http.StatusOK, params, gin.H{"Failed": true})
		return
	}
	redirect(ctx, "/")
}

func readImage(ctx *gin.Context) (*models.ImageFile, error) {
	fh, err := ctx.FormFile("image")
	if err != nil {
		return nil, supasocial.ErrMissingImage
	}
	if fh.Size > MaxImageSize {
		return nil, errors.Wrapf(supasocial.ErrInvalidParam, "image of %d bytes", fh.Size)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, errors.Wrap(err, "controller:readImage: open")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxImageSize))
	if err != nil {
		return nil, errors.Wrap(err, "controller:readImage: read")
	}
	return &models.ImageFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// PostDetailPageHandler shows one post with its votes and comments.
func (h *Handler) PostDetailPageHandler(ctx *gin.Context) {
	params := new(models.ParamPostID)
	if err := ctx.ShouldBindUri(params); err != nil {
		render(ctx, http.StatusNotFound, "post", gin.H{"Error": supasocial.ErrNoSuchPost.Error()})
		return
	}
	reqCtx := ctx.Request.Context()
	user := currentUser(ctx)

	data := gin.H{"PostID": params.PostID}
	detail := h.svc.GetPostDetail(reqCtx, params.PostID)
	switch {
	case detail.IsPending():
		data["Pending"] = true
	case detail.IsError():
		if !errors.Is(detail.Err, supasocial.ErrNoSuchPost) {
			logger.ErrorWithStack(detail.Err)
		}
		data["Error"] = errorText(detail.Err)
	default:
		data["Title"] = detail.Data.Title
		data["Post"] = detail.Data
	}

	// the widgets load independently of the post itself
	if votes := h.svc.GetVotes(reqCtx, params.PostID, user); votes.IsError() {
		data["VotesError"] = errorText(votes.Err)
	} else {
		data["Votes"] = votes.Data
	}
	if comments := h.svc.GetCommentTree(reqCtx, params.PostID); comments.IsError() {
		data["CommentsError"] = errorText(comments.Err)
	} else {
		data["Comments"] = comments.Data
	}

	render(ctx, http.StatusOK, "post", data)
}

// PostListHandler lists all posts
//
//	@Summary		Post list
//	@Description	Newest first, or by hot score with sort=hot
//	@Tags			post
//	@Produce		application/json
//	@Param			sort	query		string	false	"hot"
//	@Success		200		{object}	common.Response{data=[]models.PostDetail}
//	@Router			/post/list [get]
func (h *Handler) PostListHandler(ctx *gin.Context) {
	res := h.postList(ctx, ctx.Query("sort") == "hot")
	if res.IsError() {
		common.ResponseErrorFromErr(ctx, res.Err)
		return
	}
	common.ResponseSuccess(ctx, res.Data)
}

// PostDetailHandler returns a post with its votes and comments
//
//	@Summary		Post detail
//	@Description	Reads the post through get_post_details
//	@Tags			post
//	@Produce		application/json
//	@Param			post_id	path		int	true	"post id"
//	@Success		200		{object}	common.Response{data=common.ResponsePostDetail}
//	@Router			/post/{post_id} [get]
func (h *Handler) PostDetailHandler(ctx *gin.Context) {
	params := new(models.ParamPostID)
	if err := ctx.ShouldBindUri(params); err != nil {
		common.ResponseErrorWithMsg(ctx, common.CodeInvalidParam, utils.ParseToValidationError(err))
		return
	}
	reqCtx := ctx.Request.Context()

	detail := h.svc.GetPostDetail(reqCtx, params.PostID)
	if detail.IsError() {
		common.ResponseErrorFromErr(ctx, detail.Err)
		return
	}

	resp := common.ResponsePostDetail{Post: detail.Data}
	if votes := h.svc.GetVotes(reqCtx, params.PostID, currentUser(ctx)); votes.IsSuccess() {
		resp.Votes = votes.Data
	}
	if comments := h.svc.GetCommentTree(reqCtx, params.PostID); comments.IsSuccess() {
		resp.Comments = comments.Data
	}
	common.ResponseSuccess(ctx, resp)
}
