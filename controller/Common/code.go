package controller

type Code uint

const (
	CodeSuccess Code = iota + 1000
	CodeInternalErr
	CodeInvalidParam
	CodeInvalidToken
	CodeExpiredToken

	CodeNeedLogin
	CodeInvalidOAuthCallback

	CodeNoSuchCommunity

	CodeNoSuchPost
	CodeMissingImage
	CodeBackendErr
)

var codeMsgMap = map[Code]string{
	CodeSuccess:      "success",
	CodeInternalErr:  "server busy",
	CodeInvalidParam: "invalid param",
	CodeInvalidToken: "invalid token",
	CodeExpiredToken: "expired token",

	CodeNeedLogin:            "need login",
	CodeInvalidOAuthCallback: "invalid oauth callback",

	CodeNoSuchCommunity: "Community not found",

	CodeNoSuchPost:   "Post not found",
	CodeMissingImage: "missing image",
	CodeBackendErr:   "backend error",
}

func (c Code) getMsg() string {
	msg, ok := codeMsgMap[c]
	if !ok {
		return "unknown code"
	}
	return msg
}
