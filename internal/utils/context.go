package utils

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

type accessTokenKey struct{}

// WithAccessToken makes platform calls issued with ctx act as the signed-in
// user instead of the anonymous role.
func WithAccessToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, accessTokenKey{}, token)
}

func AccessTokenFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	token, _ := ctx.Value(accessTokenKey{}).(string)
	return token
}

// ViewerScope names whose view of the data ctx reads: "anon" without an
// access token, "uid:<sub>" for a token carrying a subject, otherwise a hash
// of the opaque token.
func ViewerScope(ctx context.Context) string {
	token := AccessTokenFrom(ctx)
	if token == "" {
		return "anon"
	}
	if claims, err := ParseAccessToken(token, nil); err == nil && claims.Subject != "" {
		return "uid:" + claims.Subject
	}
	sum := sha256.Sum256([]byte(token))
	return "tok:" + hex.EncodeToString(sum[:8])
}
