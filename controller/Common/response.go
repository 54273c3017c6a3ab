package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	supasocial "supasocial/errors"
	"supasocial/logger"
)

type Response struct {
	Code `json:"code"`
	Msg  any `json:"msg"`
	Data any `json:"data,omitempty"`
}

func ResponseSuccess(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusOK, &Response{
		Code: CodeSuccess,
		Msg:  CodeSuccess.getMsg(),
		Data: data,
	})
}

func ResponseError(ctx *gin.Context, code Code) {
	ctx.JSON(http.StatusOK, &Response{
		Code: code,
		Msg:  code.getMsg(),
		Data: nil,
	})
}

func ResponseErrorWithMsg(ctx *gin.Context, code Code, msg any) {
	ctx.JSON(http.StatusOK, &Response{
		Code: code,
		Msg:  msg,
		Data: nil,
	})
}

var sentinelCodes = map[error]Code{
	supasocial.ErrNeedLogin:       CodeNeedLogin,
	supasocial.ErrInvalidToken:    CodeInvalidToken,
	supasocial.ErrExpiredToken:    CodeExpiredToken,
	supasocial.ErrInvalidOAuthCB:  CodeInvalidOAuthCallback,
	supasocial.ErrInvalidParam:    CodeInvalidParam,
	supasocial.ErrMissingImage:    CodeMissingImage,
	supasocial.ErrNoSuchCommunity: CodeNoSuchCommunity,
	supasocial.ErrNoSuchPost:      CodeNoSuchPost,
}

// ResponseErrorFromErr maps a known error to its code. Anything else is a
// platform failure: it is logged and its message passed through.
func ResponseErrorFromErr(ctx *gin.Context, err error) {
	cause := errors.Cause(err)
	if code, ok := sentinelCodes[cause]; ok {
		ResponseError(ctx, code)
		return
	}
	logger.ErrorWithStack(err)
	ResponseErrorWithMsg(ctx, CodeBackendErr, cause.Error())
}
